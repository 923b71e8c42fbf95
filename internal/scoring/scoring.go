// Package scoring computes derived metrics over a session snapshot. Every
// function here is pure and deterministic: the underlying data is small, so
// views are recomputed on demand and never cached.
package scoring

import (
	"alquimia/internal/store"
)

// UnassignedBucket groups goals whose area was left unset.
const UnassignedBucket = "unassigned"

// Dashboard is the derived overview of the whole session. It has no
// lifecycle of its own; build one from a fresh snapshot whenever needed.
type Dashboard struct {
	AverageScore    float64                             `json:"average_score"`
	StrongestArea   string                              `json:"strongest_area"`
	WeakestArea     string                              `json:"weakest_area"`
	GoalCount       int                                 `json:"goal_count"`
	CompletedGoals  int                                 `json:"completed_goals"`
	CompletionRate  float64                             `json:"completion_rate"`
	GoalsByArea     map[string]int                      `json:"goals_by_area"`
	GoalsByPriority map[store.GoalPriority]int          `json:"goals_by_priority"`
}

// AverageScore returns the arithmetic mean of the ratings, or 0 for an empty
// set. The empty case is a documented default, not an error.
func AverageScore(scores map[string]int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, score := range scores {
		sum += score
	}
	return float64(sum) / float64(len(scores))
}

// CompletionRate returns completed/total, or 0 when there are no goals.
func CompletionRate(goals []store.Goal) float64 {
	if len(goals) == 0 {
		return 0
	}
	completed := 0
	for _, goal := range goals {
		if goal.Completed {
			completed++
		}
	}
	return float64(completed) / float64(len(goals))
}

// GoalsByArea counts goals per target area. Goals without an area land in
// UnassignedBucket.
func GoalsByArea(goals []store.Goal) map[string]int {
	out := make(map[string]int)
	for _, goal := range goals {
		area := goal.Area
		if area == "" {
			area = UnassignedBucket
		}
		out[area]++
	}
	return out
}

// GoalsByPriority counts goals per priority level.
func GoalsByPriority(goals []store.Goal) map[store.GoalPriority]int {
	out := make(map[store.GoalPriority]int)
	for _, goal := range goals {
		out[goal.Priority]++
	}
	return out
}

// StrongestArea returns the highest-rated life area. Ties resolve to the
// first area in the fixed enumeration order, so the result is deterministic.
func StrongestArea(scores map[string]int) string {
	best, bestScore := "", -1
	for _, area := range store.LifeAreas {
		score, ok := scores[area]
		if !ok {
			continue
		}
		if score > bestScore {
			best, bestScore = area, score
		}
	}
	return best
}

// WeakestArea returns the lowest-rated life area, with the same tie-break.
func WeakestArea(scores map[string]int) string {
	worst := ""
	worstScore := store.RatingMax + 1
	for _, area := range store.LifeAreas {
		score, ok := scores[area]
		if !ok {
			continue
		}
		if score < worstScore {
			worst, worstScore = area, score
		}
	}
	return worst
}

// BuildDashboard assembles the full overview from one snapshot.
func BuildDashboard(snap store.Snapshot) Dashboard {
	completed := 0
	for _, goal := range snap.Goals {
		if goal.Completed {
			completed++
		}
	}
	return Dashboard{
		AverageScore:    AverageScore(snap.AreaScores),
		StrongestArea:   StrongestArea(snap.AreaScores),
		WeakestArea:     WeakestArea(snap.AreaScores),
		GoalCount:       len(snap.Goals),
		CompletedGoals:  completed,
		CompletionRate:  CompletionRate(snap.Goals),
		GoalsByArea:     GoalsByArea(snap.Goals),
		GoalsByPriority: GoalsByPriority(snap.Goals),
	}
}
