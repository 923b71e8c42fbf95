package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"alquimia/internal/app"
)

// GoalPriority ranks a goal. The zero value is treated as PriorityMedium.
type GoalPriority string

const (
	PriorityLow      GoalPriority = "low"
	PriorityMedium   GoalPriority = "medium"
	PriorityHigh     GoalPriority = "high"
	PriorityCritical GoalPriority = "critical"
)

// dateLayout is the wire format for goal target dates.
const dateLayout = "2006-01-02"

// Goal is a user-authored SMART goal. Area and Archetype are optional
// references into the fixed enumerations; TargetDate is YYYY-MM-DD.
type Goal struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Area       string       `json:"area,omitempty"`
	TargetDate string       `json:"target_date,omitempty"`
	Criterion  string       `json:"criterion,omitempty"`
	Archetype  string       `json:"archetype,omitempty"`
	Priority   GoalPriority `json:"priority"`
	Completed  bool         `json:"completed"`
	CreatedAt  time.Time    `json:"created_at"`
}

// GoalDraft carries the user-supplied fields of a new goal; the store assigns
// identity and creation time.
type GoalDraft struct {
	Title      string       `json:"title"`
	Area       string       `json:"area,omitempty"`
	TargetDate string       `json:"target_date,omitempty"`
	Criterion  string       `json:"criterion,omitempty"`
	Archetype  string       `json:"archetype,omitempty"`
	Priority   GoalPriority `json:"priority,omitempty"`
}

func validateDraft(draft GoalDraft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return app.ValidationError("goal title is required")
	}
	if draft.Area != "" && !isKnownArea(draft.Area) {
		return app.ValidationError(fmt.Sprintf("unknown life area %q", draft.Area))
	}
	if draft.Archetype != "" && !isKnownArchetype(draft.Archetype) {
		return app.ValidationError(fmt.Sprintf("unknown archetype %q", draft.Archetype))
	}
	if draft.TargetDate != "" {
		if _, err := time.Parse(dateLayout, draft.TargetDate); err != nil {
			return app.ValidationError(fmt.Sprintf("malformed target date %q, want YYYY-MM-DD", draft.TargetDate))
		}
	}
	switch draft.Priority {
	case "", PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
	default:
		return app.ValidationError(fmt.Sprintf("unknown priority %q", draft.Priority))
	}
	return nil
}

// AddGoal validates a draft, assigns a fresh unique id, and appends the goal
// preserving insertion order.
func (s *Store) AddGoal(draft GoalDraft) (Goal, error) {
	if err := validateDraft(draft); err != nil {
		return Goal{}, err
	}
	priority := draft.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	goal := Goal{
		ID:         uuid.NewString(),
		Title:      strings.TrimSpace(draft.Title),
		Area:       draft.Area,
		TargetDate: draft.TargetDate,
		Criterion:  draft.Criterion,
		Archetype:  draft.Archetype,
		Priority:   priority,
		CreatedAt:  time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = append(s.goals, goal)
	return goal, nil
}

// PutGoal inserts a fully-formed goal, keeping its id. Used when rebuilding a
// session from an exported record; duplicate ids are rejected.
func (s *Store) PutGoal(goal Goal) error {
	if goal.ID == "" {
		return app.ValidationError("goal id is required")
	}
	if err := validateDraft(GoalDraft{
		Title:      goal.Title,
		Area:       goal.Area,
		TargetDate: goal.TargetDate,
		Criterion:  goal.Criterion,
		Archetype:  goal.Archetype,
		Priority:   goal.Priority,
	}); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.goals {
		if existing.ID == goal.ID {
			return app.ValidationError(fmt.Sprintf("duplicate goal id %q", goal.ID))
		}
	}
	s.goals = append(s.goals, goal)
	return nil
}

// RemoveGoal deletes a goal by id. Removing an absent id is a no-op, so a
// duplicate delete click cannot fail.
func (s *Store) RemoveGoal(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, goal := range s.goals {
		if goal.ID == id {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			return
		}
	}
}

// ToggleGoalComplete flips the completion flag and returns the updated goal.
func (s *Store) ToggleGoalComplete(id string) (Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals {
		if s.goals[i].ID == id {
			s.goals[i].Completed = !s.goals[i].Completed
			return s.goals[i], nil
		}
	}
	return Goal{}, app.NotFoundError(fmt.Sprintf("goal %q", id))
}

// GoalStatus filters goals by completion state.
type GoalStatus string

const (
	StatusAny       GoalStatus = ""
	StatusCompleted GoalStatus = "completed"
	StatusPending   GoalStatus = "pending"
)

// GoalFilter narrows the Goals listing. Zero values match everything.
type GoalFilter struct {
	Area     string
	Status   GoalStatus
	Priority GoalPriority
}

// Goals returns the goals matching filter, in insertion order.
func (s *Store) Goals(filter GoalFilter) []Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Goal, 0, len(s.goals))
	for _, goal := range s.goals {
		if filter.Area != "" && goal.Area != filter.Area {
			continue
		}
		if filter.Status == StatusCompleted && !goal.Completed {
			continue
		}
		if filter.Status == StatusPending && goal.Completed {
			continue
		}
		if filter.Priority != "" && goal.Priority != filter.Priority {
			continue
		}
		out = append(out, goal)
	}
	return out
}
