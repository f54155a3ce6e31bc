package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/msomdec/waitlist-backend/internal/handler"
	"github.com/msomdec/waitlist-backend/internal/service"
)

func TestRateLimit_KeysOnForwardedFor(t *testing.T) {
	limiter := service.NewSlidingWindow(1, time.Minute)
	wrapped := handler.RateLimit(limiter, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/contact/subscribe", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.254")
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, req)
		return w.Code
	}

	if code := send("203.0.113.7"); code != http.StatusOK {
		t.Fatalf("first request from client should pass, got %d", code)
	}
	if code := send("203.0.113.7"); code != http.StatusTooManyRequests {
		t.Fatalf("second request from same client should be limited, got %d", code)
	}

	// A different first hop is a different client.
	if code := send("203.0.113.8"); code != http.StatusOK {
		t.Fatalf("request from other client should pass, got %d", code)
	}
}

func TestRateLimit_FallsBackToRemoteAddr(t *testing.T) {
	limiter := service.NewSlidingWindow(1, time.Minute)
	wrapped := handler.RateLimit(limiter, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact/subscribe", nil)
	req.RemoteAddr = "192.0.2.4:51234"
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", w.Code)
	}

	// Same host, different ephemeral port: still the same client.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/contact/subscribe", nil)
	req.RemoteAddr = "192.0.2.4:51235"
	w = httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request from same host should be limited, got %d", w.Code)
	}
}

func TestCORS_AllowsListedOriginWithCredentials(t *testing.T) {
	h := handler.CORS([]string{"http://localhost:3000"})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/contact/subscribe", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("expected origin echoed back, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("expected credentials allowed, got %q", got)
	}
}

func TestCORS_RejectsUnlistedOrigin(t *testing.T) {
	h := handler.CORS([]string{"http://localhost:3000"})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/contact/subscribe", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow-origin header for unlisted origin, got %q", got)
	}
}
