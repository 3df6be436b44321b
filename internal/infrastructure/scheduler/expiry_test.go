package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeExpirer struct {
	calls []time.Time
	n     int
	err   error
}

func (f *fakeExpirer) ExpireOverdue(_ context.Context, now time.Time) (int, error) {
	f.calls = append(f.calls, now)
	return f.n, f.err
}

func TestExpiryScheduler_RunOnce(t *testing.T) {
	fixed := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("passes the clock through", func(t *testing.T) {
		f := &fakeExpirer{n: 3}
		s := NewExpiryScheduler(f, "@hourly")
		s.now = func() time.Time { return fixed }

		if got := s.RunOnce(context.Background()); got != 3 {
			t.Fatalf("expected 3 expired, got %d", got)
		}
		if len(f.calls) != 1 || !f.calls[0].Equal(fixed) {
			t.Fatalf("unexpected calls: %v", f.calls)
		}
	})

	t.Run("partial failure still reports count", func(t *testing.T) {
		f := &fakeExpirer{n: 1, err: errors.New("save failed")}
		s := NewExpiryScheduler(f, "@hourly")

		if got := s.RunOnce(context.Background()); got != 1 {
			t.Fatalf("expected 1 expired, got %d", got)
		}
	})

	t.Run("cancelled context skips the sweep", func(t *testing.T) {
		f := &fakeExpirer{}
		s := NewExpiryScheduler(f, "@hourly")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s.RunOnce(ctx)
		if len(f.calls) != 0 {
			t.Fatalf("expected no calls, got %d", len(f.calls))
		}
	})
}

func TestExpiryScheduler_Start(t *testing.T) {
	t.Run("invalid schedule", func(t *testing.T) {
		s := NewExpiryScheduler(&fakeExpirer{}, "every now and then")
		if err := s.Start(context.Background()); err == nil {
			t.Fatalf("expected error for invalid cron spec")
		}
	})

	t.Run("empty schedule disables", func(t *testing.T) {
		s := NewExpiryScheduler(&fakeExpirer{}, "")
		if err := s.Start(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s.Stop()
	})

	t.Run("valid schedule", func(t *testing.T) {
		s := NewExpiryScheduler(&fakeExpirer{}, "@every 1h")
		if err := s.Start(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s.Stop()
	})
}
