package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Expirer moves overdue estimates to expired. The estimate use case implements it.
type Expirer interface {
	ExpireOverdue(ctx context.Context, now time.Time) (int, error)
}

// ExpiryScheduler runs the expiry sweep on a cron schedule.
type ExpiryScheduler struct {
	expirer Expirer
	spec    string
	cron    *cron.Cron
	now     func() time.Time
}

func NewExpiryScheduler(expirer Expirer, spec string) *ExpiryScheduler {
	return &ExpiryScheduler{
		expirer: expirer,
		spec:    spec,
		cron:    cron.New(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Start registers the sweep and starts the cron loop. An empty spec disables it.
func (s *ExpiryScheduler) Start(ctx context.Context) error {
	if s.spec == "" {
		log.Printf("[estimate][scheduler] no expiry schedule configured")
		return nil
	}

	log.Printf("[estimate][scheduler] starting expiry sweep cron=%s", s.spec)
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	s.cron.Start()
	return nil
}

// RunOnce performs a single sweep and returns how many estimates expired.
func (s *ExpiryScheduler) RunOnce(ctx context.Context) int {
	if ctx.Err() != nil {
		return 0
	}
	n, err := s.expirer.ExpireOverdue(ctx, s.now())
	if err != nil {
		log.Printf("[estimate][scheduler] expiry sweep error expired=%d err=%v", n, err)
		return n
	}
	if n > 0 {
		log.Printf("[estimate][scheduler] expiry sweep done expired=%d", n)
	}
	return n
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (s *ExpiryScheduler) Stop() {
	<-s.cron.Stop().Done()
}
