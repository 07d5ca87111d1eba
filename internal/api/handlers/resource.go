package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wanderlink/admin-gateway/internal/api/middleware"
	"github.com/wanderlink/admin-gateway/internal/resources"
)

// ResourceHandler serves the generic CRUD surface for every catalog
// resource; per-resource behavior comes from the Definition, not from
// per-resource code.
type ResourceHandler struct {
	svc *resources.Service
}

func NewResourceHandler(svc *resources.Service) *ResourceHandler {
	return &ResourceHandler{svc: svc}
}

func (h *ResourceHandler) lookup(c *gin.Context) (*resources.Definition, bool) {
	def, ok := resources.Lookup(c.Param("resource"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown resource"})
		return nil, false
	}
	return def, true
}

func (h *ResourceHandler) List(c *gin.Context) {
	def, ok := h.lookup(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	search := c.Query("searchTerm")
	status := c.DefaultQuery("status", "all")

	token, _ := middleware.GetAccessToken(c)
	result, err := h.svc.ListPage(c.Request.Context(), def, token, page, search, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"meta": result.Meta, "data": result.Items})
}

func (h *ResourceHandler) Get(c *gin.Context) {
	def, ok := h.lookup(c)
	if !ok {
		return
	}

	token, _ := middleware.GetAccessToken(c)
	record, err := h.svc.Get(c.Request.Context(), def, token, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": record})
}

func (h *ResourceHandler) Create(c *gin.Context) {
	def, ok := h.lookup(c)
	if !ok {
		return
	}

	draft, files, err := parseDraft(c, def)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, _ := middleware.GetAccessToken(c)
	message, err := h.svc.Create(c.Request.Context(), def, token, draft, files)
	if err != nil {
		h.respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": message})
}

func (h *ResourceHandler) Update(c *gin.Context) {
	def, ok := h.lookup(c)
	if !ok {
		return
	}

	draft, files, err := parseDraft(c, def)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, _ := middleware.GetAccessToken(c)
	message, err := h.svc.Update(c.Request.Context(), def, token, c.Param("id"), draft, files)
	if err != nil {
		h.respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *ResourceHandler) Delete(c *gin.Context) {
	def, ok := h.lookup(c)
	if !ok {
		return
	}

	token, _ := middleware.GetAccessToken(c)
	message, err := h.svc.Delete(c.Request.Context(), def, token, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *ResourceHandler) UpdateStatus(c *gin.Context) {
	def, ok := h.lookup(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, _ := middleware.GetAccessToken(c)
	message, err := h.svc.UpdateStatus(c.Request.Context(), def, token, c.Param("id"), req.Status)
	if err != nil {
		h.respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *ResourceHandler) respondMutationError(c *gin.Context, err error) {
	if errors.Is(err, resources.ErrNotSupported) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, resources.ErrBadStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respondError(c, err)
}
