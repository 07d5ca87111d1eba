package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/wanderlink/admin-gateway/config"
	"github.com/wanderlink/admin-gateway/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "middleware-test-secret"

func newTestSessions() *session.Service {
	return session.NewService(nil, &config.SessionConfig{Secret: testSecret, TTL: time.Hour})
}

func signedToken(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()
	claims := session.Claims{
		SessionID:   "sid-1",
		UserID:      "u-1",
		Name:        "Ada Admin",
		Role:        "admin",
		AccessToken: "upstream-bearer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

// Helper to run the middleware against a request with the given header
func runAuthenticate(authHeader string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}

	m := NewAuthMiddleware(newTestSessions())
	m.Authenticate()(c)
	return c, w
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	c, w := runAuthenticate("")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if !c.IsAborted() {
		t.Error("request should be aborted without an authorization header")
	}
}

func TestAuthenticate_WrongScheme(t *testing.T) {
	token := signedToken(t, testSecret, time.Hour)
	_, w := runAuthenticate("Basic " + token)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	_, w := runAuthenticate("Bearer")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	_, w := runAuthenticate("Bearer not-a-token")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthenticate_ForeignSignature(t *testing.T) {
	token := signedToken(t, "some-other-secret", time.Hour)
	_, w := runAuthenticate("Bearer " + token)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	token := signedToken(t, testSecret, -time.Minute)
	_, w := runAuthenticate("Bearer " + token)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthenticate_ValidTokenPopulatesContext(t *testing.T) {
	token := signedToken(t, testSecret, time.Hour)
	c, w := runAuthenticate("Bearer " + token)

	if c.IsAborted() {
		t.Fatalf("valid token should not abort, got status %d", w.Code)
	}

	if sid, ok := GetSessionID(c); !ok || sid != "sid-1" {
		t.Errorf("GetSessionID returned (%q, %v), expected (sid-1, true)", sid, ok)
	}
	if uid, ok := GetUserID(c); !ok || uid != "u-1" {
		t.Errorf("GetUserID returned (%q, %v), expected (u-1, true)", uid, ok)
	}
	if tok, ok := GetAccessToken(c); !ok || tok != "upstream-bearer" {
		t.Errorf("GetAccessToken returned (%q, %v), expected (upstream-bearer, true)", tok, ok)
	}
	if role := GetRole(c); role != "admin" {
		t.Errorf("GetRole returned %q, expected admin", role)
	}
}

func TestAuthenticate_LowercaseBearerScheme(t *testing.T) {
	token := signedToken(t, testSecret, time.Hour)
	c, _ := runAuthenticate("bearer " + token)

	if c.IsAborted() {
		t.Error("scheme matching should be case-insensitive")
	}
}

func TestGetAccessToken_NotSet(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	if _, ok := GetAccessToken(c); ok {
		t.Error("GetAccessToken should return false when not set")
	}
}

func TestGetRole_NotSet(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	if role := GetRole(c); role != "" {
		t.Errorf("GetRole should return empty string when not set, got %q", role)
	}
}
