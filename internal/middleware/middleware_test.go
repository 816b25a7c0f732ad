package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joshua-takyi/trailmate/internal/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubValidator map[string]*helpers.CustomClaims

func (s stubValidator) ValidateToken(token string) (*helpers.CustomClaims, error) {
	if claims, ok := s[token]; ok {
		return claims, nil
	}
	return nil, errors.New("token is malformed")
}

func newTestAuthenticator() *Authenticator {
	validator := stubValidator{
		"good": {
			Email:            "hiker@example.com",
			UserMetadata:     map[string]interface{}{"display_name": "Hiker"},
			RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
		},
	}
	return NewAuthenticator(validator, nil, slog.New(slog.NewTextHandler(io.Discard, nil)), false)
}

func whoami(c *gin.Context) {
	claims, ok := CurrentUser(c)
	if !ok {
		c.String(http.StatusOK, "anonymous")
		return
	}
	c.String(http.StatusOK, claims.UserID+":"+claims.Name()+":"+claims.AccessToken)
}

func TestRequireAuth(t *testing.T) {
	r := gin.New()
	r.GET("/private", newTestAuthenticator().RequireAuth(), whoami)

	tests := []struct {
		name     string
		setup    func(req *http.Request)
		wantCode int
		wantBody string
	}{
		{"no token", func(req *http.Request) {}, http.StatusUnauthorized, ""},
		{"bad token", func(req *http.Request) { req.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized, ""},
		{"bearer header", func(req *http.Request) { req.Header.Set("Authorization", "Bearer good") }, http.StatusOK, "u1:Hiker:good"},
		{"cookie", func(req *http.Request) { req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "good"}) }, http.StatusOK, "u1:Hiker:good"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	r := gin.New()
	r.GET("/maybe", newTestAuthenticator().OptionalAuth(), whoami)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/maybe", nil))
	if w.Code != http.StatusOK || w.Body.String() != "anonymous" {
		t.Errorf("anonymous: %d %q", w.Code, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/maybe", nil)
	req.Header.Set("Authorization", "Bearer good")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "u1:Hiker:good" {
		t.Errorf("authenticated: %q", w.Body.String())
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID not generated")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}
}

func TestErrorHandlerWritesFallback(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := gin.New()
	r.Use(RequestID(), ErrorHandler(logger))
	r.GET("/boom", func(c *gin.Context) { _ = c.Error(errors.New("boom")) })
	r.GET("/handled", func(c *gin.Context) {
		_ = c.Error(errors.New("logged only"))
		c.String(http.StatusTeapot, "handled")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/handled", nil))
	if w.Code != http.StatusTeapot || w.Body.String() != "handled" {
		t.Errorf("handled response overwritten: %d %q", w.Code, w.Body.String())
	}
}

func TestSessionCookies(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	SetSessionCookies(c, "access", 3600, "refresh", true)

	cookies := w.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("got %d cookies, want 2", len(cookies))
	}
	for _, ck := range cookies {
		if !ck.HttpOnly || !ck.Secure {
			t.Errorf("cookie %s should be secure and http-only", ck.Name)
		}
	}
}
