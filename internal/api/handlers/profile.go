package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wanderlink/admin-gateway/internal/api/middleware"
	"github.com/wanderlink/admin-gateway/internal/forms"
	"github.com/wanderlink/admin-gateway/internal/session"
)

type ProfileHandler struct {
	sessions *session.Service
}

func NewProfileHandler(sessions *session.Service) *ProfileHandler {
	return &ProfileHandler{sessions: sessions}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	token, ok := middleware.GetAccessToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.sessions.Profile(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": profile})
}

func (h *ProfileHandler) Update(c *gin.Context) {
	token, _ := middleware.GetAccessToken(c)

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.sessions.UpdateProfile(c.Request.Context(), token, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	token, _ := middleware.GetAccessToken(c)

	var draft map[string]any
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := forms.ChangePasswordForm().Validate(draft); err != nil {
		respondError(c, err)
		return
	}

	message, err := h.sessions.ChangePassword(c.Request.Context(), token,
		draft["oldPassword"].(string), draft["newPassword"].(string))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	token, _ := middleware.GetAccessToken(c)

	fh, err := c.FormFile("profileImage")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "profileImage file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.sessions.UploadAvatar(c.Request.Context(), token, fh.Filename, content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}
