package surface

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCorrelatorResolvesWithReplyPayload(t *testing.T) {
	c := NewCorrelator(time.Second)
	done := make(chan struct{})
	var payload *string
	var err error
	go func() {
		defer close(done)
		payload, err = c.Request(context.Background(), KindContent, func() bool {
			go c.Resolve(KindContent, String("package main"))
			return true
		})
	}()
	<-done
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload == nil || *payload != "package main" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestCorrelatorNilReplyIsNotATimeout(t *testing.T) {
	c := NewCorrelator(time.Second)
	payload, err := c.Request(context.Background(), KindContent, func() bool {
		go c.Resolve(KindContent, nil)
		return true
	})
	if err != nil {
		t.Fatalf("expected nil payload to resolve successfully, got %v", err)
	}
	if payload != nil {
		t.Fatalf("expected nil payload, got %q", *payload)
	}
}

func TestCorrelatorTimeout(t *testing.T) {
	c := NewCorrelator(20 * time.Millisecond)
	start := time.Now()
	payload, err := c.Request(context.Background(), KindContent, func() bool { return true })
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v (payload %v)", err, payload)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("returned before the deadline: %v", elapsed)
	}

	// The slot was consumed; a late reply has no observable effect.
	if c.Resolve(KindContent, String("late")) {
		t.Fatalf("expected late reply discarded")
	}
}

func TestCorrelatorNewRequestSupersedesOld(t *testing.T) {
	c := NewCorrelator(time.Second)
	firstErr := make(chan error, 1)
	started := make(chan struct{})
	go func() {
		_, err := c.Request(context.Background(), KindContent, func() bool {
			close(started)
			return true
		})
		firstErr <- err
	}()
	<-started

	payload, err := c.Request(context.Background(), KindContent, func() bool {
		go c.Resolve(KindContent, String("second"))
		return true
	})
	if err != nil || payload == nil || *payload != "second" {
		t.Fatalf("unexpected second result: %v / %v", payload, err)
	}
	if err := <-firstErr; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected first request superseded, got %v", err)
	}
}

func TestCorrelatorHonoursContextCancellation(t *testing.T) {
	c := NewCorrelator(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	go cancel()
	_, err := c.Request(ctx, KindContent, func() bool { return true })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestCorrelatorDefaultTimeout(t *testing.T) {
	c := NewCorrelator(0)
	if c.timeout != DefaultRequestTimeout {
		t.Fatalf("expected default timeout %v, got %v", DefaultRequestTimeout, c.timeout)
	}
}
