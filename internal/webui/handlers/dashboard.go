package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alquimia/internal/scoring"
	"alquimia/internal/store"
)

// DashboardHandler serves the aggregated dashboard and check-in history.
type DashboardHandler struct {
	store *store.Store
}

func NewDashboardHandler(st *store.Store) *DashboardHandler {
	return &DashboardHandler{store: st}
}

// GetDashboard computes the metric block from a consistent snapshot.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	snap := h.store.Snapshot()
	OK(c, gin.H{
		"dashboard":     scoring.BuildDashboard(snap),
		"personal_year": store.CurrentPersonalYear,
	})
}

// PostCheckIn records a check-in of the current wheel scores.
func (h *DashboardHandler) PostCheckIn(c *gin.Context) {
	Created(c, h.store.RecordCheckIn())
}

// ListCheckIns returns the retained check-in history, oldest first.
func (h *DashboardHandler) ListCheckIns(c *gin.Context) {
	entries := h.store.CheckIns()
	OK(c, gin.H{"check_ins": entries, "count": len(entries)})
}

// ClearCheckIns drops the whole history.
func (h *DashboardHandler) ClearCheckIns(c *gin.Context) {
	h.store.ClearCheckIns()
	c.JSON(http.StatusOK, APIResponse{Success: true, Message: "history cleared"})
}
