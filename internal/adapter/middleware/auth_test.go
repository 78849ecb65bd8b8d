package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"quote-workflow/internal/domain/profile"
	"quote-workflow/internal/usecase/identity"
	"quote-workflow/pkg/apperr"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type resolverFunc func(ctx context.Context, token string) (*profile.RequestContext, error)

func (f resolverFunc) Resolve(ctx context.Context, token string) (*profile.RequestContext, error) {
	return f(ctx, token)
}

func TestAuth(t *testing.T) {
	resolver := resolverFunc(func(_ context.Context, token string) (*profile.RequestContext, error) {
		switch token {
		case "":
			return nil, apperr.Unauthenticated("Missing authorization token")
		case "good":
			return &profile.RequestContext{UserID: "A1", Role: profile.RoleAdmin}, nil
		case "orphan":
			return nil, apperr.NotFound("Profile not found")
		}
		return nil, apperr.Internal(errors.New("db down"))
	})

	tests := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{"ok", "Bearer good", http.StatusOK, ""},
		{"missing", "", http.StatusUnauthorized, "Missing authorization token"},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, "Missing authorization token"},
		{"no profile", "Bearer orphan", http.StatusNotFound, "Profile not found"},
		{"store failure hidden", "Bearer boom", http.StatusInternalServerError, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Use(Auth(resolver, zerolog.Nop()))
			e.GET("/x", func(c echo.Context) error {
				a, ok := Actor(c)
				fromCtx, ok2 := identity.ActorFrom(c.Request().Context())
				if !ok || !ok2 || a.UserID != "A1" || fromCtx.UserID != "A1" {
					t.Fatalf("actor not propagated")
				}
				return c.NoContent(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.message != "" {
				var body map[string]string
				_ = json.Unmarshal(rec.Body.Bytes(), &body)
				if body["error"] != tt.message {
					t.Fatalf("error = %q, want %q", body["error"], tt.message)
				}
			}
		})
	}
}

func TestCORS(t *testing.T) {
	e := echo.New()
	e.Pre(CORS())
	e.POST("/submit", func(c echo.Context) error { return c.JSON(http.StatusOK, map[string]bool{"success": true}) })

	// preflight without an Origin header, on a route that only has POST
	req := httptest.NewRequest(http.MethodOptions, "/submit", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("OPTIONS status = %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing allow-origin on preflight")
	}

	req = httptest.NewRequest(http.MethodPost, "/submit", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("POST: status=%d allow-origin=%q", rec.Code, rec.Header().Get("Access-Control-Allow-Origin"))
	}

	req = httptest.NewRequest(http.MethodGet, "/unknown", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("error responses also carry CORS headers")
	}
}
