package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-session-secret"

func mintToken(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  "42",
		"role": "admin",
		"exp":  time.Now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func runSession(t *testing.T, mw echo.MiddlewareFunc, req *http.Request) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)
	return c, err
}

func TestSession_BearerTokenAnnotatesContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/data/42", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, testSecret, time.Hour))

	c, err := runSession(t, Session(testSecret), req)
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}

	if c.Get("user_id") != "42" || c.Get("role") != "admin" {
		t.Fatalf("claims not injected: %v %v", c.Get("user_id"), c.Get("role"))
	}
}

func TestSession_CookieFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/data/42", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: mintToken(t, testSecret, time.Hour)})

	c, err := runSession(t, Session(testSecret), req)
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if c.Get("role") != "admin" {
		t.Fatalf("cookie token not honoured: %v", c.Get("role"))
	}
}

func TestSession_NoTokenPassesThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/data/42", nil)

	c, err := runSession(t, Session(testSecret), req)
	if err != nil {
		t.Fatalf("anonymous request must pass: %v", err)
	}
	if c.Get("user_id") != nil || c.Get("role") != nil {
		t.Fatalf("context must stay unannotated: %v %v", c.Get("user_id"), c.Get("role"))
	}
}

func TestSession_BadTokenPassesThroughUnannotated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/data/42", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "wrong-secret", time.Hour))

	c, err := runSession(t, Session(testSecret), req)
	if err != nil {
		t.Fatalf("forged token must not fail the request: %v", err)
	}
	if c.Get("role") != nil {
		t.Fatalf("forged claims must not be injected: %v", c.Get("role"))
	}
}

func TestRequireSession_MissingToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/message", nil)

	_, err := runSession(t, RequireSession(testSecret), req)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestRequireSession_ExpiredToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/message", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, testSecret, -time.Minute))

	_, err := runSession(t, RequireSession(testSecret), req)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestRequireSession_ValidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/message", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, testSecret, time.Hour))

	c, err := runSession(t, RequireSession(testSecret), req)
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if c.Get("role") != "admin" {
		t.Fatalf("claims not injected: %v", c.Get("role"))
	}
}

func TestBearerToken_MalformedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	if got := bearerToken(req); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
}
