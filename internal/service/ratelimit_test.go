package service_test

import (
	"testing"
	"time"

	"github.com/msomdec/waitlist-backend/internal/service"
)

func TestSlidingWindow_AllowsUpToLimit(t *testing.T) {
	sw := service.NewSlidingWindow(5, time.Minute)

	for i := 0; i < 5; i++ {
		if !sw.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed (limit not yet reached)", i+1)
		}
	}

	if sw.Allow("10.0.0.1") {
		t.Fatal("6th request inside the window should be denied")
	}
}

func TestSlidingWindow_DifferentKeysAreIndependent(t *testing.T) {
	sw := service.NewSlidingWindow(1, time.Minute)

	if !sw.Allow("ip-a") {
		t.Fatal("ip-a first request should be allowed")
	}
	if sw.Allow("ip-a") {
		t.Fatal("ip-a second request should be denied")
	}

	// ip-b has its own window.
	if !sw.Allow("ip-b") {
		t.Fatal("ip-b first request should be allowed (independent key)")
	}
}

func TestSlidingWindow_WindowSlides(t *testing.T) {
	sw := service.NewSlidingWindow(2, 50*time.Millisecond)

	if !sw.Allow("k") || !sw.Allow("k") {
		t.Fatal("first two requests should be allowed")
	}
	if sw.Allow("k") {
		t.Fatal("third request inside the window should be denied")
	}

	time.Sleep(60 * time.Millisecond)

	if !sw.Allow("k") {
		t.Fatal("request after the window slid past should be allowed")
	}
}

func TestSlidingWindow_DeniedRequestDoesNotExtendWindow(t *testing.T) {
	sw := service.NewSlidingWindow(1, 50*time.Millisecond)

	if !sw.Allow("k") {
		t.Fatal("first request should be allowed")
	}

	// Hammering while blocked must not push the window forward.
	for i := 0; i < 3; i++ {
		if sw.Allow("k") {
			t.Fatal("request inside the window should be denied")
		}
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(50 * time.Millisecond)

	if !sw.Allow("k") {
		t.Fatal("request after the original window expired should be allowed")
	}
}

func TestSlidingWindow_Describe(t *testing.T) {
	if got := service.NewSlidingWindow(5, time.Minute).Describe(); got != "5 per 1 minute" {
		t.Fatalf("expected %q, got %q", "5 per 1 minute", got)
	}
	if got := service.NewSlidingWindow(100, time.Hour).Describe(); got != "100 per 60 minutes" {
		t.Fatalf("expected %q, got %q", "100 per 60 minutes", got)
	}
	if got := service.NewSlidingWindow(2, 30*time.Second).Describe(); got != "2 per 30 seconds" {
		t.Fatalf("expected %q, got %q", "2 per 30 seconds", got)
	}
}
