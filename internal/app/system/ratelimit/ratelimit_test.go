package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_AllowsBurstThenBlocks(t *testing.T) {
	l := New(3, time.Minute)
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !l.Allow("k") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("k") {
		t.Fatal("fourth attempt should be blocked")
	}
	if !l.Allow("other") {
		t.Error("keys must be independent")
	}

	now = now.Add(30 * time.Second)
	if !l.Allow("k") {
		t.Error("a token should refill within half the window")
	}
}

func TestLimiter_ResetAndSweep(t *testing.T) {
	l := New(1, time.Minute)
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	l.Allow("a")
	l.Allow("b")
	l.Reset("a")
	if !l.Allow("a") {
		t.Error("Reset should restore the bucket")
	}

	now = now.Add(2 * time.Minute)
	if n := l.Sweep(); n != 2 || l.Len() != 0 {
		t.Errorf("Sweep removed %d, %d left", n, l.Len())
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	if got := ClientIP(r); got != "10.0.0.1" {
		t.Errorf("RemoteAddr: %q", got)
	}
	r.Header.Set("X-Real-IP", "10.0.0.2")
	if got := ClientIP(r); got != "10.0.0.2" {
		t.Errorf("X-Real-IP: %q", got)
	}
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.3")
	if got := ClientIP(r); got != "203.0.113.9" {
		t.Errorf("X-Forwarded-For: %q", got)
	}
}

func TestLoginLimiter_PerEmail(t *testing.T) {
	ll := NewLoginLimiter(10)
	r := httptest.NewRequest("POST", "/login", nil)

	for i := 0; i < 5; i++ {
		if ok, _ := ll.Check(r, "A@example.com"); !ok {
			t.Fatalf("attempt %d blocked early", i+1)
		}
	}
	if ok, reason := ll.Check(r, "a@example.com "); ok || reason == "" {
		t.Error("email limit should apply case-insensitively")
	}
	ll.ResetEmail("a@example.com")
	if ok, _ := ll.Check(r, "a@example.com"); !ok {
		t.Error("ResetEmail should clear the email limit")
	}
}
