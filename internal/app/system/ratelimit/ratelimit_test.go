package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_AllowAndReset(t *testing.T) {
	l := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("key") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("key") {
		t.Error("fourth request should be blocked")
	}
	if !l.Allow("other") {
		t.Error("different key should be unaffected")
	}

	l.Reset("key")
	if !l.Allow("key") {
		t.Error("request after reset should be allowed")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{"remote addr with port", "10.0.0.1:1234", "", "", "10.0.0.1"},
		{"x-forwarded-for wins", "10.0.0.1:1234", "203.0.113.9, 10.0.0.2", "", "203.0.113.9"},
		{"x-real-ip fallback", "10.0.0.1:1234", "", "203.0.113.7", "203.0.113.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSigninLimiter_EmailLimit(t *testing.T) {
	sl := NewSigninLimiter()

	r := httptest.NewRequest("POST", "/credentials/signin", nil)
	r.RemoteAddr = "10.0.0.1:1234"

	// Five attempts fill the email window while staying under the
	// per-IP limit of ten.
	for i := 0; i < 5; i++ {
		if ok, _ := sl.Check(r, "Target@Example.com"); !ok {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if ok, reason := sl.Check(r, "target@example.com"); ok || reason == "" {
		t.Error("sixth attempt for the same email should be blocked with a reason")
	}

	sl.ResetEmail("target@example.com")
	if ok, _ := sl.Check(r, "target@example.com"); !ok {
		t.Error("attempt after reset should be allowed")
	}
}
