package importer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alquimia/internal/app"
	"alquimia/internal/pinterest"
	"alquimia/internal/store"
)

// fakeFetcher serves canned pins per board without any HTTP.
type fakeFetcher struct {
	boards []pinterest.Board
	pins   map[string][]pinterest.Pin
	errs   map[string]error
}

func (f *fakeFetcher) ListBoards(ctx context.Context, accessToken string) ([]pinterest.Board, error) {
	return f.boards, nil
}

func (f *fakeFetcher) ListPins(ctx context.Context, accessToken, boardID string) ([]pinterest.Pin, error) {
	if err := f.errs[boardID]; err != nil {
		return nil, err
	}
	return f.pins[boardID], nil
}

func waitForJob(t *testing.T, im *Importer, id string) Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, err := im.Job(id)
		require.NoError(t, err)
		if job.State != StatePending {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("import job did not finish in time")
	return Job{}
}

func TestStartValidation(t *testing.T) {
	st := store.New()
	im := New(&fakeFetcher{}, st, time.Second, nil)

	_, err := im.Start("", []string{"b1"})
	assert.ErrorIs(t, err, app.ErrValidation)

	_, err = im.Start("token", nil)
	assert.ErrorIs(t, err, app.ErrValidation)
}

func TestDisabledImporter(t *testing.T) {
	im := New(nil, store.New(), time.Second, nil)

	assert.False(t, im.Enabled())

	_, err := im.Start("token", []string{"b1"})
	assert.ErrorIs(t, err, app.ErrConfigMissing)

	_, err = im.Boards(context.Background(), "token")
	assert.ErrorIs(t, err, app.ErrConfigMissing)
}

func TestImportMergesPinsIntoVision(t *testing.T) {
	st := store.New()
	fetcher := &fakeFetcher{
		pins: map[string][]pinterest.Pin{
			"b1": {
				{ID: "p1", Title: "moon work rituals", ImageURL: "https://img/p1.jpg"},
				{ID: "p2", Title: "gentle movement self-care", ImageURL: "https://img/p2.jpg"},
				{ID: "p3", Title: "no image pin"},
			},
		},
	}
	im := New(fetcher, st, time.Second, nil)

	jobID, err := im.Start("token", []string{"b1"})
	require.NoError(t, err)

	job := waitForJob(t, im, jobID)
	assert.Equal(t, StateCompleted, job.State)
	assert.Equal(t, 2, job.Imported, "pins without an image are skipped")
	assert.Empty(t, job.Errors)
	assert.False(t, job.FinishedAt.IsZero())

	spirituality, err := st.VisionEntry("spirituality")
	require.NoError(t, err)
	require.Len(t, spirituality.Images, 1)
	assert.Equal(t, store.ImageSourceImported, spirituality.Images[0].Source)
	assert.Equal(t, "https://img/p1.jpg", spirituality.Images[0].URL)

	health, err := st.VisionEntry("health")
	require.NoError(t, err)
	require.Len(t, health.Images, 1)
	assert.Equal(t, "https://img/p2.jpg", health.Images[0].URL)
}

func TestImportPartialFailureStillCompletes(t *testing.T) {
	st := store.New()
	fetcher := &fakeFetcher{
		pins: map[string][]pinterest.Pin{
			"good": {{ID: "p1", Title: "travel italy", ImageURL: "https://img/p1.jpg"}},
		},
		errs: map[string]error{
			"bad": errors.New("board gone"),
		},
	}
	im := New(fetcher, st, time.Second, nil)

	jobID, err := im.Start("token", []string{"good", "bad"})
	require.NoError(t, err)

	job := waitForJob(t, im, jobID)
	assert.Equal(t, StateCompleted, job.State)
	assert.Equal(t, 1, job.Imported)
	require.Len(t, job.Errors, 1)
	assert.Contains(t, job.Errors[0], "bad")
}

func TestImportAllBoardsFailing(t *testing.T) {
	st := store.New()
	fetcher := &fakeFetcher{
		errs: map[string]error{
			"b1": errors.New("nope"),
			"b2": errors.New("also nope"),
		},
	}
	im := New(fetcher, st, time.Second, nil)

	jobID, err := im.Start("token", []string{"b1", "b2"})
	require.NoError(t, err)

	job := waitForJob(t, im, jobID)
	assert.Equal(t, StateFailed, job.State)
	assert.Zero(t, job.Imported)
	assert.Len(t, job.Errors, 2)

	// The failed import changed nothing.
	for _, entry := range st.VisionEntries() {
		assert.Empty(t, entry.Images)
	}
}

func TestJobNotFound(t *testing.T) {
	im := New(&fakeFetcher{}, store.New(), time.Second, nil)
	_, err := im.Job("missing")
	assert.ErrorIs(t, err, app.ErrNotFound)
}

func TestStoreStaysUsableDuringImport(t *testing.T) {
	st := store.New()
	fetcher := &fakeFetcher{
		pins: map[string][]pinterest.Pin{
			"b1": {{ID: "p1", Title: "prosperity", ImageURL: "https://img/p1.jpg"}},
		},
	}
	im := New(fetcher, st, time.Second, nil)

	jobID, err := im.Start("token", []string{"b1"})
	require.NoError(t, err)

	// Unrelated edits interleave with the running job.
	require.NoError(t, st.SetAreaScore("Health", 9))
	_, err = st.AddGoal(store.GoalDraft{Title: "Run 5k"})
	require.NoError(t, err)

	waitForJob(t, im, jobID)

	got, err := st.AreaScore("Health")
	require.NoError(t, err)
	assert.Equal(t, 9, got)
}
