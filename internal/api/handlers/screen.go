package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wanderlink/admin-gateway/internal/api/middleware"
	"github.com/wanderlink/admin-gateway/internal/resources"
	"github.com/wanderlink/admin-gateway/internal/screen"
	"github.com/wanderlink/admin-gateway/internal/upstream"
)

// ScreenHandler exposes the per-session screen state machines to the
// browser: the client posts events (keystrokes settle server-side, page
// clicks, modal and delete actions) and renders snapshots.
type ScreenHandler struct {
	registry *screen.Registry
}

func NewScreenHandler(registry *screen.Registry) *ScreenHandler {
	return &ScreenHandler{registry: registry}
}

func (h *ScreenHandler) screen(c *gin.Context) (*screen.Screen, bool) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	token, _ := middleware.GetAccessToken(c)

	sc, err := h.registry.Screen(sessionID, token, c.Param("resource"))
	if err != nil {
		if errors.Is(err, screen.ErrUnknownResource) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown resource"})
			return nil, false
		}
		respondError(c, err)
		return nil, false
	}
	return sc, true
}

func (h *ScreenHandler) Snapshot(c *gin.Context) {
	sc, ok := h.screen(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sc.State())
}

type searchRequest struct {
	Term string `json:"term"`
}

func (h *ScreenHandler) Search(c *gin.Context) {
	sc, ok := h.screen(c)
	if !ok {
		return
	}

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sc.List.SetSearch(req.Term)
	c.JSON(http.StatusOK, sc.State())
}

type pageRequest struct {
	Page int `json:"page" binding:"required"`
}

func (h *ScreenHandler) Page(c *gin.Context) {
	sc, ok := h.screen(c)
	if !ok {
		return
	}

	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !sc.List.SetPage(req.Page) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page out of range"})
		return
	}
	c.JSON(http.StatusOK, sc.State())
}

type filterRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *ScreenHandler) Filter(c *gin.Context) {
	sc, ok := h.screen(c)
	if !ok {
		return
	}

	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	def, _ := resources.Lookup(c.Param("resource"))
	if req.Status != "all" && !def.HasStatusValue(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status value"})
		return
	}

	sc.List.SetStatusFilter(req.Status)
	c.JSON(http.StatusOK, sc.State())
}

type modalOpenRequest struct {
	Mode string `json:"mode" binding:"required,oneof=create edit"`
	ID   string `json:"id"`
}

func (h *ScreenHandler) ModalOpen(c *gin.Context) {
	sc, ok := h.screen(c)
	if !ok {
		return
	}

	var req modalOpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Mode == "edit" {
		if req.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "edit requires an id"})
			return
		}
		if err := sc.Modal.OpenEdit(c.Request.Context(), req.ID); err != nil {
			respondError(c, err)
			return
		}
	} else {
		sc.Modal.OpenCreate()
	}
	c.JSON(http.StatusOK, sc.State())
}

type draftRequest struct {
	Fields map[string]any `json:"fields" binding:"required"`
}

func (h *ScreenHandler) ModalDraft(c *gin.Context) {
	sc, ok := h.screen(c)
	if !ok {
		return
	}

	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := sc.Modal.UpdateDraft(req.Fields); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sc.State())
}

// ModalSubmit submits the modal draft. The body may be JSON (extra draft
// fields) or multipart (fields plus files). Validation and upstream
// failures land in the snapshot as field errors and notices, so the
// response is the state either way.
func (h *ScreenHandler) ModalSubmit(c *gin.Context) {
	sc, ok := h.screen(c)
	if !ok {
		return
	}
	def, _ := resources.Lookup(c.Param("resource"))

	var files []upstream.File
	if c.Request.ContentLength > 0 {
		draft, parsed, err := parseDraft(c, def)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		files = parsed
		if len(draft) > 0 {
			if err := sc.Modal.UpdateDraft(draft); err != nil {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
		}
	}

	err := sc.Modal.Submit(c.Request.Context(), files)
	if errors.Is(err, screen.ErrModalClosed) || errors.Is(err, screen.ErrSubmitInFlight) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sc.State())
}

func (h *ScreenHandler) ModalClose(c *gin.Context) {
	sc, ok := h.screen(c)
	if !ok {
		return
	}
	sc.Modal.Close()
	c.JSON(http.StatusOK, sc.State())
}

type armRequest struct {
	ID string `json:"id" binding:"required"`
}

func (h *ScreenHandler) DeleteArm(c *gin.Context) {
	sc, ok := h.screen(c)
	if !ok {
		return
	}

	var req armRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sc.Delete.Arm(req.ID)
	c.JSON(http.StatusOK, sc.State())
}

func (h *ScreenHandler) DeleteConfirm(c *gin.Context) {
	sc, ok := h.screen(c)
	if !ok {
		return
	}

	err := sc.Delete.Confirm(c.Request.Context())
	if errors.Is(err, screen.ErrNoTarget) || errors.Is(err, screen.ErrDeleteInFlight) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sc.State())
}

func (h *ScreenHandler) DeleteCancel(c *gin.Context) {
	sc, ok := h.screen(c)
	if !ok {
		return
	}
	sc.Delete.Cancel()
	c.JSON(http.StatusOK, sc.State())
}
