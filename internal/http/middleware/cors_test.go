package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func preflight(t *testing.T, h gin.HandlerFunc, origin string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.Use(h)
	r.POST("/api/enroll", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodOptions, "/api/enroll", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCORSAllowsConfiguredOrigins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := CORS([]string{" https://learn.example.com/ ", ""})

	rec := preflight(t, h, "https://learn.example.com")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://learn.example.com" {
		t.Fatalf("unexpected allow-origin header: %q", got)
	}

	rec = preflight(t, h, "https://evil.example.com")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign origin: got=%d want=%d", rec.Code, http.StatusForbidden)
	}
}

func TestCORSDefaultsToLocalDevOrigins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, origin := range []string{"http://localhost:5173", "http://127.0.0.1:3000"} {
		rec := preflight(t, CORS(nil), origin)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != origin {
			t.Fatalf("%s: unexpected allow-origin header %q", origin, got)
		}
	}
}

func TestCORSWildcard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := preflight(t, CORS([]string{"*"}), "https://anywhere.example.com")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected allow-origin header %q", got)
	}
}
