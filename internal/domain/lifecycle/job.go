package lifecycle

import (
	"fmt"
	"time"

	"fieldservice/internal/domain/entities"
)

var jobNext = map[entities.JobStatus][]entities.JobStatus{
	entities.JobStatusDraft:      {entities.JobStatusQuote, entities.JobStatusScheduled, entities.JobStatusCancelled},
	entities.JobStatusQuote:      {entities.JobStatusScheduled, entities.JobStatusCancelled},
	entities.JobStatusScheduled:  {entities.JobStatusInProgress, entities.JobStatusCancelled},
	entities.JobStatusInProgress: {entities.JobStatusCompleted, entities.JobStatusCancelled},
	entities.JobStatusCompleted:  {entities.JobStatusInvoiced},
}

func CanTransitionJob(from, to entities.JobStatus) bool {
	for _, s := range jobNext[from] {
		if s == to {
			return true
		}
	}
	return false
}

// AdvanceJob moves j to status to, stamping completed_date on completion.
func AdvanceJob(j *entities.Job, to entities.JobStatus, now time.Time) error {
	if !CanTransitionJob(j.Status, to) {
		return fmt.Errorf("%w: job cannot move from %s to %s", ErrInvalidTransition, j.Status, to)
	}
	j.Status = to
	if to == entities.JobStatusCompleted {
		j.CompletedDate = stamp(now)
	}
	j.UpdatedAt = now
	return nil
}

// DerivePaymentStatus is unpaid when nothing was paid, paid once paid covers
// total, and partial in between.
func DerivePaymentStatus(total, paid float64) entities.JobPaymentStatus {
	switch {
	case paid <= 0:
		return entities.JobPaymentUnpaid
	case paid >= total:
		return entities.JobPaymentPaid
	default:
		return entities.JobPaymentPartial
	}
}
