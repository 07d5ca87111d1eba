// Package session owns gateway sessions. Credentials are verified by the
// upstream platform; the gateway mints its own signed token wrapping the
// upstream bearer so handlers never handle raw credentials.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/wanderlink/admin-gateway/config"
	"github.com/wanderlink/admin-gateway/internal/upstream"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAdmin           = errors.New("only admin can access this dashboard")
	ErrUnauthorized       = errors.New("unauthorized")
)

// User is the upstream account attached to a session.
type User struct {
	ID           string `json:"_id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	ProfileImage string `json:"profileImage,omitempty"`
	Verified     bool   `json:"verified"`
}

// Claims are carried inside the gateway session token. AccessToken is the
// upstream bearer; the resource layer reads it, never writes it.
type Claims struct {
	SessionID   string `json:"sid"`
	UserID      string `json:"uid"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	AccessToken string `json:"access_token"`
	jwt.RegisteredClaims
}

type Service struct {
	client *upstream.Client
	config *config.SessionConfig
}

func NewService(client *upstream.Client, cfg *config.SessionConfig) *Service {
	return &Service{client: client, config: cfg}
}

type loginPayload struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}

// Login verifies credentials upstream and mints a gateway session token.
// Accounts with the plain "user" role are not admins and are rejected.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	env, err := s.client.Do(ctx, http.MethodPost, "/auth/login", upstream.Options{
		JSON: map[string]string{"email": email, "password": password},
	})
	if err != nil {
		var rf *upstream.RequestFailed
		if errors.As(err, &rf) && (rf.Status == http.StatusUnauthorized || rf.Status == http.StatusBadRequest) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	var payload loginPayload
	if err := env.Record(&payload); err != nil {
		return "", nil, err
	}
	if payload.User.Role == "user" {
		return "", nil, ErrNotAdmin
	}

	token, err := s.generateToken(&payload.User, payload.AccessToken)
	if err != nil {
		return "", nil, err
	}
	return token, &payload.User, nil
}

func (s *Service) generateToken(user *User, accessToken string) (string, error) {
	claims := Claims{
		SessionID:   uuid.NewString(),
		UserID:      user.ID,
		Name:        user.FirstName + " " + user.LastName,
		Role:        user.Role,
		AccessToken: accessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.TTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

// Validate parses and verifies a gateway session token.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrUnauthorized
}

// ForgotPassword asks the upstream to mail a reset OTP.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	return s.passthrough(ctx, "/auth/forgot-password", map[string]string{"email": email})
}

// VerifyOTP confirms the emailed reset code.
func (s *Service) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	return s.passthrough(ctx, "/auth/verify-email", map[string]string{"email": email, "otp": otp})
}

// ResetPassword sets a new password after OTP verification.
func (s *Service) ResetPassword(ctx context.Context, email, newPassword string) (string, error) {
	return s.passthrough(ctx, "/auth/reset-password-change", map[string]string{
		"email":       email,
		"newPassword": newPassword,
	})
}

func (s *Service) passthrough(ctx context.Context, path string, body map[string]string) (string, error) {
	env, err := s.client.Do(ctx, http.MethodPost, path, upstream.Options{JSON: body})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// Profile fetches the signed-in account.
func (s *Service) Profile(ctx context.Context, accessToken string) (json.RawMessage, error) {
	env, err := s.client.Do(ctx, http.MethodGet, "/user/profile", upstream.Options{Token: accessToken})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// UpdateProfile submits edited account fields.
func (s *Service) UpdateProfile(ctx context.Context, accessToken string, fields map[string]any) (string, error) {
	env, err := s.client.Do(ctx, http.MethodPut, "/user/update-profile", upstream.Options{
		JSON:  fields,
		Token: accessToken,
	})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// ChangePassword rotates the account password.
func (s *Service) ChangePassword(ctx context.Context, accessToken, oldPassword, newPassword string) (string, error) {
	env, err := s.client.Do(ctx, http.MethodPost, "/auth/change-password", upstream.Options{
		JSON:  map[string]string{"oldPassword": oldPassword, "newPassword": newPassword},
		Token: accessToken,
	})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// UploadAvatar replaces the account image. The upstream expects a flat
// multipart body with a single "profileImage" part.
func (s *Service) UploadAvatar(ctx context.Context, accessToken, filename string, content []byte) (string, error) {
	env, err := s.client.Do(ctx, http.MethodPatch, "/user/upload-avatar", upstream.Options{
		Form: &upstream.Form{
			Style: upstream.StyleFlat,
			Files: []upstream.File{{Field: "profileImage", Name: filename, Content: content}},
		},
		Token: accessToken,
	})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}
