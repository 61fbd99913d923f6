package internal

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestWaitUntilImmediateCondition(t *testing.T) {
	err := WaitUntil(context.Background(), func() bool { return true }, time.Millisecond, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("WaitUntil failed: %v", err)
	}
}

func TestWaitUntilEventualCondition(t *testing.T) {
	var calls atomic.Int64
	err := WaitUntil(context.Background(), func() bool {
		return calls.Add(1) >= 3
	}, time.Millisecond, time.Second)
	if err != nil {
		t.Fatalf("WaitUntil failed: %v", err)
	}
}

func TestWaitUntilTimeout(t *testing.T) {
	err := WaitUntil(context.Background(), func() bool { return false }, time.Millisecond, 20*time.Millisecond)
	if !errors.Is(err, ErrWaitTimeout) {
		t.Fatalf("expected ErrWaitTimeout, got %v", err)
	}
}

func TestWaitUntilContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WaitUntil(ctx, func() bool { return false }, time.Millisecond, time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
