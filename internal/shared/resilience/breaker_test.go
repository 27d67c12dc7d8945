package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestExecuteRunsOnce(t *testing.T) {
	b := NewBreakers(DefaultConfig())
	calls := 0
	wantErr := errors.New("upstream down")

	err := b.Execute(context.Background(), "llm.generate", func(context.Context) error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single call, got %d", calls)
	}
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	b := NewBreakers(Config{MinRequests: 2, FailureRatio: 0.5, OpenTimeout: time.Minute})
	fail := func(context.Context) error { return errors.New("boom") }

	for i := 0; i < 2; i++ {
		_ = b.Execute(context.Background(), "llm.generate", fail)
	}

	calls := 0
	err := b.Execute(context.Background(), "llm.generate", func(context.Context) error {
		calls++
		return nil
	})
	if !IsOpen(err) {
		t.Fatalf("expected open breaker error, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("open breaker must not invoke fn, got %d calls", calls)
	}

	if err := b.Execute(context.Background(), "other", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("breakers are per operation, got %v", err)
	}
}

func TestNilBreakersPassThrough(t *testing.T) {
	var b *Breakers
	called := false
	if err := b.Execute(context.Background(), "x", func(context.Context) error {
		called = true
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("expected fn to run")
	}
}
