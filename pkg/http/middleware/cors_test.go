package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func corsServer(origins ...string) *echo.Echo {
	e := echo.New()
	e.Use(CORS(origins...))
	e.GET("/api/leaders", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return e
}

func TestCORSOpenByDefault(t *testing.T) {
	e := corsServer()
	req := httptest.NewRequest(http.MethodGet, "/api/leaders", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-origin = %q, want *", got)
	}
	methods := rec.Header().Get("Access-Control-Allow-Methods")
	for _, m := range []string{http.MethodGet, http.MethodPost, http.MethodOptions} {
		if !strings.Contains(methods, m) {
			t.Errorf("allow-methods %q missing %s", methods, m)
		}
	}
	if strings.Contains(methods, http.MethodDelete) {
		t.Errorf("allow-methods %q exceeds the API surface", methods)
	}
}

func TestCORSPreflight(t *testing.T) {
	e := corsServer()
	req := httptest.NewRequest(http.MethodOptions, "/api/leaders", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", rec.Code)
	}
}

func TestCORSUnlistedOriginPassesThrough(t *testing.T) {
	e := corsServer("http://trusted.local")
	req := httptest.NewRequest(http.MethodGet, "/api/leaders", nil)
	req.Header.Set("Origin", "http://evil.local")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, the request itself must not be blocked", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("allow-origin = %q, want no CORS header", got)
	}
}

func TestCORSListedOriginEchoedBack(t *testing.T) {
	e := corsServer("http://trusted.local")
	req := httptest.NewRequest(http.MethodGet, "/api/leaders", nil)
	req.Header.Set("Origin", "http://trusted.local")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://trusted.local" {
		t.Fatalf("allow-origin = %q", got)
	}
}
