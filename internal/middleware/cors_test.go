package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsStack(allowed []string, called *bool) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
	return CORS(allowed)(next)
}

func TestCORSPreflightAllowedOrigin(t *testing.T) {
	var called bool
	stack := corsStack([]string{"http://localhost:5173"}, &called)

	req := httptest.NewRequest("OPTIONS", "/create-payment-intent", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	stack.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if called {
		t.Error("preflight must not reach the handler")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("allow-origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type, "+csrfHeader {
		t.Errorf("allow-headers = %q", got)
	}
}

func TestCORSActualRequestAllowedOrigin(t *testing.T) {
	var called bool
	stack := corsStack([]string{"https://frostlineair.com"}, &called)

	req := httptest.NewRequest("GET", "/api/session", nil)
	req.Header.Set("Origin", "https://frostlineair.com")
	rec := httptest.NewRecorder()
	stack.ServeHTTP(rec, req)

	if !called {
		t.Fatal("handler not reached")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://frostlineair.com" {
		t.Errorf("allow-origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("allow-credentials = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Expose-Headers"); got != csrfHeader {
		t.Errorf("expose-headers = %q", got)
	}
}

func TestCORSDisallowedOriginGetsNoHeaders(t *testing.T) {
	var called bool
	stack := corsStack([]string{"https://frostlineair.com"}, &called)

	req := httptest.NewRequest("GET", "/api/session", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	stack.ServeHTTP(rec, req)

	// The server still answers; the missing headers make the browser
	// withhold the response from the page.
	if !called {
		t.Fatal("handler not reached")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("allow-origin = %q, want empty", got)
	}
}

func TestCORSNoOriginPassesThrough(t *testing.T) {
	var called bool
	stack := corsStack([]string{"https://frostlineair.com"}, &called)

	rec := httptest.NewRecorder()
	stack.ServeHTTP(rec, httptest.NewRequest("POST", "/webhook", nil))

	if !called {
		t.Fatal("handler not reached")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("allow-origin = %q, want empty", got)
	}
}
