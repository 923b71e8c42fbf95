package handlers

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"alquimia/internal/app"
	"alquimia/internal/importer"
	"alquimia/internal/pinterest"
)

// ImportHandler drives the optional Pinterest import flow: OAuth handshake,
// board listing, and background import jobs. The handler holds the session's
// access token; client is nil when credentials are not configured.
type ImportHandler struct {
	client   *pinterest.Client
	importer *importer.Importer

	mu          sync.RWMutex
	accessToken string
}

func NewImportHandler(client *pinterest.Client, imp *importer.Importer) *ImportHandler {
	return &ImportHandler{client: client, importer: imp}
}

// ImportRequest selects the boards to import.
type ImportRequest struct {
	BoardIDs []string `json:"board_ids"`
}

// TokenRequest carries the OAuth authorization code.
type TokenRequest struct {
	Code string `json:"code"`
}

// GetAuthURL returns the OAuth consent URL with a fresh state value.
func (h *ImportHandler) GetAuthURL(c *gin.Context) {
	if h.client == nil {
		Fail(c, app.ConfigMissingError("import source not configured"))
		return
	}
	state := uuid.NewString()
	OK(c, gin.H{"url": h.client.AuthorizationURL(state), "state": state})
}

// PostAuthToken exchanges an authorization code and keeps the access token
// for the rest of the session.
func (h *ImportHandler) PostAuthToken(c *gin.Context) {
	if h.client == nil {
		Fail(c, app.ConfigMissingError("import source not configured"))
		return
	}

	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailStatus(c, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if req.Code == "" {
		FailStatus(c, http.StatusBadRequest, "authorization code is required")
		return
	}

	token, err := h.client.ExchangeCode(c.Request.Context(), req.Code)
	if err != nil {
		Fail(c, err)
		return
	}

	h.mu.Lock()
	h.accessToken = token
	h.mu.Unlock()

	c.JSON(http.StatusOK, APIResponse{Success: true, Message: "authorized"})
}

// ListBoards lists the boards available under the stored token.
func (h *ImportHandler) ListBoards(c *gin.Context) {
	token, err := h.token()
	if err != nil {
		Fail(c, err)
		return
	}

	boards, err := h.importer.Boards(c.Request.Context(), token)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"boards": boards, "count": len(boards)})
}

// StartImport launches a background job and returns its id immediately.
func (h *ImportHandler) StartImport(c *gin.Context) {
	token, err := h.token()
	if err != nil {
		Fail(c, err)
		return
	}

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailStatus(c, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	jobID, err := h.importer.Start(token, req.BoardIDs)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, APIResponse{Success: true, Data: gin.H{"job_id": jobID}})
}

// GetJob reports the status of one import job.
func (h *ImportHandler) GetJob(c *gin.Context) {
	job, err := h.importer.Job(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, job)
}

func (h *ImportHandler) token() (string, error) {
	if h.client == nil {
		return "", app.ConfigMissingError("import source not configured")
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.accessToken == "" {
		return "", app.ValidationError("not authorized, complete the auth flow first")
	}
	return h.accessToken, nil
}
