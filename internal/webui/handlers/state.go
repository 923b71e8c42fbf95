package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"alquimia/internal/scoring"
	"alquimia/internal/store"
)

// StateHandler serves the wheel, archetype, reflection and vision endpoints.
type StateHandler struct {
	store *store.Store
}

func NewStateHandler(st *store.Store) *StateHandler {
	return &StateHandler{store: st}
}

// WheelResponse carries all life-area scores plus the running average.
type WheelResponse struct {
	Areas   []string       `json:"areas"`
	Scores  map[string]int `json:"scores"`
	Average float64        `json:"average"`
}

// ScoreRequest sets a single rating.
type ScoreRequest struct {
	Rating int `json:"rating"`
}

// ArchetypeRequest sets a rating and/or a note. Pointers distinguish
// "not sent" from zero values so one endpoint serves both updates.
type ArchetypeRequest struct {
	Rating *int    `json:"rating,omitempty"`
	Note   *string `json:"note,omitempty"`
}

// TextRequest carries free-form text for reflections and vision intentions.
type TextRequest struct {
	Text string `json:"text"`
}

// ImageRequest attaches an image reference to a vision entry.
type ImageRequest struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// GetWheel returns the full wheel.
func (h *StateHandler) GetWheel(c *gin.Context) {
	scores := h.store.AreaScores()
	OK(c, WheelResponse{
		Areas:   store.LifeAreas,
		Scores:  scores,
		Average: scoring.AverageScore(scores),
	})
}

// PutArea sets the score of one life area.
func (h *StateHandler) PutArea(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailStatus(c, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	area := c.Param("area")
	if err := h.store.SetAreaScore(area, req.Rating); err != nil {
		Fail(c, err)
		return
	}

	scores := h.store.AreaScores()
	OK(c, WheelResponse{
		Areas:   store.LifeAreas,
		Scores:  scores,
		Average: scoring.AverageScore(scores),
	})
}

// GetArchetypes returns ratings and notes for every archetype.
func (h *StateHandler) GetArchetypes(c *gin.Context) {
	OK(c, gin.H{
		"archetypes": store.Archetypes,
		"ratings":    h.store.ArchetypeRatings(),
	})
}

// PutArchetype updates the rating and/or note of one archetype.
func (h *StateHandler) PutArchetype(c *gin.Context) {
	var req ArchetypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailStatus(c, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if req.Rating == nil && req.Note == nil {
		FailStatus(c, http.StatusBadRequest, "rating or note is required")
		return
	}

	name := c.Param("name")
	if req.Rating != nil {
		if err := h.store.SetArchetypeScore(name, *req.Rating); err != nil {
			Fail(c, err)
			return
		}
	}
	if req.Note != nil {
		if err := h.store.SetArchetypeNote(name, *req.Note); err != nil {
			Fail(c, err)
			return
		}
	}

	rating, err := h.store.Archetype(name)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"name": name, "rating": rating.Rating, "note": rating.Note})
}

// GetReflections returns every prompt with its current answer.
func (h *StateHandler) GetReflections(c *gin.Context) {
	OK(c, gin.H{
		"prompts": store.ReflectionPrompts,
		"order":   store.ReflectionKeys,
		"answers": h.store.Reflections(),
	})
}

// PutReflection replaces the answer for one prompt.
func (h *StateHandler) PutReflection(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailStatus(c, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	key := c.Param("key")
	if err := h.store.SetReflection(key, req.Text); err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"key": key, "text": req.Text})
}

// GetVision returns all vision entries in canonical category order.
func (h *StateHandler) GetVision(c *gin.Context) {
	OK(c, gin.H{
		"categories": store.VisionCategories,
		"entries":    h.store.VisionEntries(),
	})
}

// PutVisionText sets the intention text of a category.
func (h *StateHandler) PutVisionText(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailStatus(c, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	key := c.Param("category")
	if err := h.store.SetVisionText(key, req.Text); err != nil {
		Fail(c, err)
		return
	}
	entry, err := h.store.VisionEntry(key)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, entry)
}

// PostVisionImage attaches an uploaded image reference to a category.
func (h *StateHandler) PostVisionImage(c *gin.Context) {
	var req ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailStatus(c, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	key := c.Param("category")
	img := store.VisionImage{
		Source: store.ImageSourceUpload,
		URL:    req.URL,
		Title:  req.Title,
	}
	if err := h.store.AttachVisionImage(key, img); err != nil {
		Fail(c, err)
		return
	}
	entry, err := h.store.VisionEntry(key)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, entry)
}

// DeleteVision clears the text and images of a category.
func (h *StateHandler) DeleteVision(c *gin.Context) {
	key := c.Param("category")
	if err := h.store.ClearVisionEntry(key); err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Message: "entry cleared"})
}
