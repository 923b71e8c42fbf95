package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"alquimia/internal/export"
	"alquimia/internal/store"
)

// ExportHandler serves downloadable snapshots of the session.
type ExportHandler struct {
	store *store.Store
}

func NewExportHandler(st *store.Store) *ExportHandler {
	return &ExportHandler{store: st}
}

// GetRecord downloads the full session as a structured JSON record.
func (h *ExportHandler) GetRecord(c *gin.Context) {
	artifact, err := export.RecordArtifact(h.store.Snapshot())
	if err != nil {
		Fail(c, err)
		return
	}
	download(c, artifact)
}

// GetGoalsCSV downloads the goal list as CSV.
func (h *ExportHandler) GetGoalsCSV(c *gin.Context) {
	artifact, err := export.GoalsCSV(h.store.Snapshot())
	if err != nil {
		Fail(c, err)
		return
	}
	download(c, artifact)
}

// ListFormats describes the available export formats.
func (h *ExportHandler) ListFormats(c *gin.Context) {
	OK(c, gin.H{"formats": export.FormatRegistry})
}

func download(c *gin.Context, artifact export.Artifact) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.MIMEType, artifact.Data)
}
