// Package importer runs vision-board imports in the background. A job
// fetches pins from the selected boards, assigns each to a category with the
// keyword mapper, and merges the image references into the session store.
// Jobs are fire-and-forget: the caller gets a job id immediately, keeps
// editing unrelated state while the job runs, and polls for pending/failed
// status. Abandoning a job simply lets it time out.
package importer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"alquimia/internal/app"
	"alquimia/internal/logging"
	"alquimia/internal/pinterest"
	"alquimia/internal/store"
)

// boardConcurrency bounds parallel board fetches within one job.
const boardConcurrency = 4

// Fetcher is the slice of the Pinterest client the importer needs.
type Fetcher interface {
	ListBoards(ctx context.Context, accessToken string) ([]pinterest.Board, error)
	ListPins(ctx context.Context, accessToken, boardID string) ([]pinterest.Pin, error)
}

// JobState tracks a job through its lifecycle.
type JobState string

const (
	StatePending   JobState = "pending"
	StateCompleted JobState = "completed"
	StateFailed    JobState = "failed"
)

// Job is the pollable status of one import run. Errors holds per-board
// failure messages; a job with some errors but at least one imported pin
// still completes.
type Job struct {
	ID         string    `json:"id"`
	BoardIDs   []string  `json:"board_ids"`
	State      JobState  `json:"state"`
	Imported   int       `json:"imported"`
	Errors     []string  `json:"errors,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitzero"`
}

// Importer owns the job registry for one session.
type Importer struct {
	client  Fetcher
	store   *store.Store
	logger  logging.Logger
	timeout time.Duration

	mu   sync.RWMutex
	jobs map[string]*Job
}

// New builds an importer. A nil client means the feature is not configured:
// Start and Boards report ErrConfigMissing and everything else keeps working.
func New(client Fetcher, st *store.Store, timeout time.Duration, logger logging.Logger) *Importer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Importer{
		client:  client,
		store:   st,
		logger:  logging.OrNop(logger),
		timeout: timeout,
		jobs:    make(map[string]*Job),
	}
}

// Enabled reports whether the import source is configured.
func (im *Importer) Enabled() bool {
	return im.client != nil
}

// Boards lists the available source boards.
func (im *Importer) Boards(ctx context.Context, accessToken string) ([]pinterest.Board, error) {
	if im.client == nil {
		return nil, app.ConfigMissingError("import source not configured")
	}
	return im.client.ListBoards(ctx, accessToken)
}

// Start launches a background import of the given boards and returns the job
// id. The job carries its own timeout; the caller's context only guards the
// synchronous validation here.
func (im *Importer) Start(accessToken string, boardIDs []string) (string, error) {
	if im.client == nil {
		return "", app.ConfigMissingError("import source not configured")
	}
	if accessToken == "" {
		return "", app.ValidationError("access token is required")
	}
	if len(boardIDs) == 0 {
		return "", app.ValidationError("at least one board id is required")
	}

	job := &Job{
		ID:        uuid.NewString(),
		BoardIDs:  append([]string(nil), boardIDs...),
		State:     StatePending,
		StartedAt: time.Now(),
	}
	im.mu.Lock()
	im.jobs[job.ID] = job
	im.mu.Unlock()

	go im.run(job.ID, accessToken, job.BoardIDs)
	return job.ID, nil
}

// Job returns a copy of a job's current status.
func (im *Importer) Job(id string) (Job, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	job, ok := im.jobs[id]
	if !ok {
		return Job{}, app.NotFoundError(fmt.Sprintf("import job %q", id))
	}
	return copyJob(job), nil
}

// Jobs returns copies of all jobs, newest first not guaranteed.
func (im *Importer) Jobs() []Job {
	im.mu.RLock()
	defer im.mu.RUnlock()
	out := make([]Job, 0, len(im.jobs))
	for _, job := range im.jobs {
		out = append(out, copyJob(job))
	}
	return out
}

func (im *Importer) run(jobID, accessToken string, boardIDs []string) {
	ctx, cancel := context.WithTimeout(context.Background(), im.timeout)
	defer cancel()

	var (
		mu       sync.Mutex
		imported int
		failures []string
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(boardConcurrency)
	for _, boardID := range boardIDs {
		g.Go(func() error {
			pins, err := im.client.ListPins(ctx, accessToken, boardID)
			if err != nil {
				im.logger.Warn("Import of board %s failed: %v", boardID, err)
				mu.Lock()
				failures = append(failures, fmt.Sprintf("board %s: %v", boardID, err))
				mu.Unlock()
				return nil // other boards keep going
			}
			count := im.merge(pins)
			mu.Lock()
			imported += count
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	state := StateCompleted
	if imported == 0 && len(failures) > 0 {
		state = StateFailed
	}

	im.mu.Lock()
	if job, ok := im.jobs[jobID]; ok {
		job.State = state
		job.Imported = imported
		job.Errors = failures
		job.FinishedAt = time.Now()
	}
	im.mu.Unlock()

	im.logger.Info("Import job %s finished: state=%s imported=%d failures=%d", jobID, state, imported, len(failures))
}

// merge assigns each pin to a category and attaches its image reference.
func (im *Importer) merge(pins []pinterest.Pin) int {
	count := 0
	for _, assignment := range pinterest.MapPins(pins) {
		if assignment.Pin.ImageURL == "" {
			continue
		}
		img := store.VisionImage{
			Source: store.ImageSourceImported,
			URL:    assignment.Pin.ImageURL,
			Title:  assignment.Pin.Title,
		}
		if err := im.store.AttachVisionImage(assignment.CategoryKey, img); err != nil {
			im.logger.Warn("Failed to attach pin %s: %v", assignment.Pin.ID, err)
			continue
		}
		count++
	}
	return count
}

func copyJob(job *Job) Job {
	out := *job
	out.BoardIDs = append([]string(nil), job.BoardIDs...)
	out.Errors = append([]string(nil), job.Errors...)
	return out
}
