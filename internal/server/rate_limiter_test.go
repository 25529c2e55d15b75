package server

import (
	"testing"
	"time"
)

func TestSigningThrottleLimitsPerSource(t *testing.T) {
	throttle := newSigningThrottle(2, time.Minute)

	if !throttle.Allow("203.0.113.7") || !throttle.Allow("203.0.113.7") {
		t.Fatal("requests within the limit must pass")
	}
	if throttle.Allow("203.0.113.7") {
		t.Fatal("third request in the window must be rejected")
	}
	if !throttle.Allow("203.0.113.8") {
		t.Fatal("other sources keep their own window")
	}
}

func TestSigningThrottleResetsAfterWindow(t *testing.T) {
	throttle := newSigningThrottle(1, time.Minute)
	at := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	throttle.now = func() time.Time { return at }

	if !throttle.Allow("203.0.113.7") {
		t.Fatal("first request must pass")
	}
	if throttle.Allow("203.0.113.7") {
		t.Fatal("window exhausted")
	}

	at = at.Add(61 * time.Second)
	if !throttle.Allow("203.0.113.7") {
		t.Fatal("a fresh window must open after the old one expires")
	}
}

func TestSigningThrottleRejectsEmptySource(t *testing.T) {
	throttle := newSigningThrottle(5, time.Minute)

	if throttle.Allow("") {
		t.Fatal("requests without a source address must be rejected")
	}
}
