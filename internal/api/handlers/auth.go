package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wanderlink/admin-gateway/internal/api/middleware"
	"github.com/wanderlink/admin-gateway/internal/forms"
	"github.com/wanderlink/admin-gateway/internal/screen"
	"github.com/wanderlink/admin-gateway/internal/session"
)

type AuthHandler struct {
	sessions *session.Service
	registry *screen.Registry
}

func NewAuthHandler(sessions *session.Service, registry *screen.Registry) *AuthHandler {
	return &AuthHandler{sessions: sessions, registry: registry}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		if errors.Is(err, session.ErrNotAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "only admin can access this page"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Logout drops the session's screens; the token itself simply expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID, ok := middleware.GetSessionID(c); ok {
		h.registry.Drop(sessionID)
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	draft, ok := h.validated(c, forms.ForgotPasswordForm())
	if !ok {
		return
	}

	message, err := h.sessions.ForgotPassword(c.Request.Context(), draft["email"].(string))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	draft, ok := h.validated(c, forms.VerifyOTPForm())
	if !ok {
		return
	}

	message, err := h.sessions.VerifyOTP(c.Request.Context(), draft["email"].(string), draft["otp"].(string))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// ResetPassword validates the draft, including the confirmPassword match,
// before anything goes upstream; a mismatch never issues a request.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	draft, ok := h.validated(c, forms.ResetPasswordForm())
	if !ok {
		return
	}

	message, err := h.sessions.ResetPassword(c.Request.Context(), draft["email"].(string), draft["newPassword"].(string))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// validated binds the JSON body as a draft and checks it against the form.
func (h *AuthHandler) validated(c *gin.Context, form *forms.Form) (map[string]any, bool) {
	var draft map[string]any
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	if err := form.Validate(draft); err != nil {
		respondError(c, err)
		return nil, false
	}
	return draft, true
}
