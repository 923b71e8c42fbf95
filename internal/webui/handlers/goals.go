package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"alquimia/internal/store"
)

// GoalsHandler serves SMART goal CRUD plus completion toggling.
type GoalsHandler struct {
	store *store.Store
}

func NewGoalsHandler(st *store.Store) *GoalsHandler {
	return &GoalsHandler{store: st}
}

// ListGoals returns goals matching the optional area/status/priority filters.
func (h *GoalsHandler) ListGoals(c *gin.Context) {
	filter := store.GoalFilter{
		Area:     c.Query("area"),
		Status:   store.GoalStatus(c.Query("status")),
		Priority: store.GoalPriority(c.Query("priority")),
	}
	switch filter.Status {
	case store.StatusAny, store.StatusCompleted, store.StatusPending:
	default:
		FailStatus(c, http.StatusBadRequest, fmt.Sprintf("unknown status %q", filter.Status))
		return
	}

	goals := h.store.Goals(filter)
	OK(c, gin.H{"goals": goals, "count": len(goals)})
}

// CreateGoal adds a goal from a draft and returns it with its assigned id.
func (h *GoalsHandler) CreateGoal(c *gin.Context) {
	var draft store.GoalDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		FailStatus(c, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	goal, err := h.store.AddGoal(draft)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, goal)
}

// DeleteGoal removes a goal. Deleting an unknown id succeeds.
func (h *GoalsHandler) DeleteGoal(c *gin.Context) {
	h.store.RemoveGoal(c.Param("id"))
	c.JSON(http.StatusOK, APIResponse{Success: true, Message: "goal removed"})
}

// ToggleGoal flips a goal's completion flag and returns the updated goal.
func (h *GoalsHandler) ToggleGoal(c *gin.Context) {
	goal, err := h.store.ToggleGoalComplete(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, goal)
}
