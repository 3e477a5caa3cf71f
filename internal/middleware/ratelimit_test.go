package middleware

import (
	"testing"
	"time"
)

func TestRateLimiter_AllowsUpToMax(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    5,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})

	for i := 0; i < 5; i++ {
		if !rl.Allow("test-ip") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_BlocksAfterMax(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    3,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})

	for i := 0; i < 3; i++ {
		rl.Allow("test-ip")
	}

	if rl.Allow("test-ip") {
		t.Fatal("4th request should be blocked")
	}
}

func TestRateLimiter_DifferentKeysIndependent(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    2,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})

	rl.Allow("identity:a")
	rl.Allow("identity:a")

	// identity:a is exhausted
	if rl.Allow("identity:a") {
		t.Fatal("identity:a should be blocked")
	}

	// identity:b has its own budget
	if !rl.Allow("identity:b") {
		t.Fatal("identity:b should be allowed")
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    1,
		Window: 10 * time.Millisecond,
		KeyFn:  KeyByIP,
	})

	if !rl.Allow("test-ip") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("test-ip") {
		t.Fatal("second request should be blocked")
	}

	time.Sleep(15 * time.Millisecond)

	if !rl.Allow("test-ip") {
		t.Fatal("request after window reset should be allowed")
	}
}
