// Package lifecycle holds the status machines for estimates and jobs and the
// read-side projections derived from them.
package lifecycle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fieldservice/internal/domain/entities"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyConverted  = errors.New("estimate already converted to a job")
	ErrNotExpired        = errors.New("estimate is still valid")
)

// Transition is a user or system action on an estimate.
type Transition string

const (
	TransitionSend    Transition = "send"
	TransitionView    Transition = "view"
	TransitionAccept  Transition = "accept"
	TransitionDecline Transition = "decline"
	TransitionExpire  Transition = "expire"
	TransitionRevise  Transition = "revise"
	TransitionConvert Transition = "convert"
)

var allowedFrom = map[Transition][]entities.EstimateStatus{
	TransitionSend:    {entities.EstimateStatusDraft, entities.EstimateStatusRevised, entities.EstimateStatusSent},
	TransitionView:    {entities.EstimateStatusSent, entities.EstimateStatusViewed},
	TransitionAccept:  {entities.EstimateStatusSent, entities.EstimateStatusViewed},
	TransitionDecline: {entities.EstimateStatusSent, entities.EstimateStatusViewed},
	TransitionExpire:  {entities.EstimateStatusDraft, entities.EstimateStatusSent, entities.EstimateStatusViewed, entities.EstimateStatusRevised},
	TransitionRevise:  {entities.EstimateStatusSent, entities.EstimateStatusViewed, entities.EstimateStatusDeclined, entities.EstimateStatusExpired},
	TransitionConvert: {entities.EstimateStatusAccepted},
}

// TransitionForStatus maps a requested target status (PATCH) to its transition.
func TransitionForStatus(s entities.EstimateStatus) (Transition, bool) {
	switch s {
	case entities.EstimateStatusSent:
		return TransitionSend, true
	case entities.EstimateStatusViewed:
		return TransitionView, true
	case entities.EstimateStatusAccepted:
		return TransitionAccept, true
	case entities.EstimateStatusDeclined:
		return TransitionDecline, true
	case entities.EstimateStatusExpired:
		return TransitionExpire, true
	case entities.EstimateStatusRevised:
		return TransitionRevise, true
	}
	return "", false
}

// CanTransition reports whether t may be applied to an estimate in status from.
func CanTransition(from entities.EstimateStatus, t Transition) bool {
	for _, s := range allowedFrom[t] {
		if s == from {
			return true
		}
	}
	return false
}

// Editable reports whether estimate content may be changed in status s.
func Editable(s entities.EstimateStatus) bool {
	return s == entities.EstimateStatusDraft || s == entities.EstimateStatusRevised
}

func guard(e *entities.Estimate, t Transition) error {
	if !CanTransition(e.Status, t) {
		return fmt.Errorf("%w: cannot %s an estimate in status %s", ErrInvalidTransition, t, e.Status)
	}
	return nil
}

// Send moves e to sent. Re-sending a sent estimate re-stamps sent_date.
func Send(e *entities.Estimate, now time.Time) error {
	if err := guard(e, TransitionSend); err != nil {
		return err
	}
	e.Status = entities.EstimateStatusSent
	e.SentDate = stamp(now)
	e.UpdatedAt = now
	return nil
}

// View moves a sent estimate to viewed. It reports false when e was already viewed.
func View(e *entities.Estimate, now time.Time) (bool, error) {
	if err := guard(e, TransitionView); err != nil {
		return false, err
	}
	if e.Status == entities.EstimateStatusViewed {
		return false, nil
	}
	e.Status = entities.EstimateStatusViewed
	e.ViewedDate = stamp(now)
	e.UpdatedAt = now
	return true, nil
}

func Accept(e *entities.Estimate, now time.Time) error {
	if err := guard(e, TransitionAccept); err != nil {
		return err
	}
	e.Status = entities.EstimateStatusAccepted
	e.AcceptedDate = stamp(now)
	e.UpdatedAt = now
	return nil
}

func Decline(e *entities.Estimate, now time.Time, reason string) error {
	if err := guard(e, TransitionDecline); err != nil {
		return err
	}
	e.Status = entities.EstimateStatusDeclined
	e.DeclinedDate = stamp(now)
	e.DeclineReason = strings.TrimSpace(reason)
	e.UpdatedAt = now
	return nil
}

// Expire moves e to expired once its valid_until is before now.
func Expire(e *entities.Estimate, now time.Time) error {
	if err := guard(e, TransitionExpire); err != nil {
		return err
	}
	if !IsOverdue(*e, now) {
		return ErrNotExpired
	}
	e.Status = entities.EstimateStatusExpired
	e.ExpiredDate = stamp(now)
	e.UpdatedAt = now
	return nil
}

// IsOverdue reports whether valid_until has elapsed.
func IsOverdue(e entities.Estimate, now time.Time) bool {
	return e.ValidUntil != nil && e.ValidUntil.Before(now)
}

func Revise(e *entities.Estimate, now time.Time) error {
	if err := guard(e, TransitionRevise); err != nil {
		return err
	}
	e.Status = entities.EstimateStatusRevised
	e.UpdatedAt = now
	return nil
}

// MarkConverted links an accepted estimate to the job created from it.
func MarkConverted(e *entities.Estimate, jobID string, now time.Time) error {
	if err := guard(e, TransitionConvert); err != nil {
		return err
	}
	if e.ConvertedToJobID != "" {
		return ErrAlreadyConverted
	}
	e.ConvertedToJobID = jobID
	e.UpdatedAt = now
	return nil
}

func stamp(now time.Time) *time.Time {
	t := now.UTC()
	return &t
}
