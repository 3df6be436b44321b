package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/pricing"
	"fieldservice/internal/usecase/interfaces"
)

var (
	ErrValidationFailed  = errors.New("estimate validation failed")
	ErrReviewUnavailable = errors.New("estimate review service unavailable")
	ErrReviewFailed      = errors.New("estimate review failed")
)

// ValidationError carries every message from a failed quick validation.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidationFailed.Error(), strings.Join(e.Errors, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidationFailed }

// ReviewRecorder observes advisory review outcomes. Metrics implement it.
type ReviewRecorder interface {
	ObserveReview(outcome string)
}

// IReviewUseCase is the estimate review advisor.
//
// Validate is deterministic and blocks submission when it returns anything.
// Review is advisory only and never blocks.
type IReviewUseCase interface {
	Validate(draft entities.EstimateDraft) []string
	Review(ctx context.Context, draft entities.EstimateDraft) (entities.EstimateReview, error)
}

type ReviewUseCase struct {
	reviewer  interfaces.IEstimateReviewer
	pricebook IPricebookUseCase
	recorder  ReviewRecorder
	now       func() time.Time
}

var _ IReviewUseCase = (*ReviewUseCase)(nil)

func NewReviewUseCase(reviewer interfaces.IEstimateReviewer, pricebook IPricebookUseCase, recorder ReviewRecorder) *ReviewUseCase {
	return &ReviewUseCase{
		reviewer:  reviewer,
		pricebook: pricebook,
		recorder:  recorder,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *ReviewUseCase) Validate(draft entities.EstimateDraft) []string {
	return ValidateEstimateDraft(draft, u.now())
}

func (u *ReviewUseCase) Review(ctx context.Context, draft entities.EstimateDraft) (entities.EstimateReview, error) {
	if u.reviewer == nil {
		u.observe("unavailable")
		return entities.EstimateReview{}, ErrReviewUnavailable
	}
	if errs := u.Validate(draft); len(errs) > 0 {
		return entities.EstimateReview{}, &ValidationError{Errors: errs}
	}

	// The reviewer sees the figures the estimate would be saved with.
	res, err := priceDraft(ctx, u.pricebook, draft)
	if err != nil {
		return entities.EstimateReview{}, err
	}
	priced := entities.Estimate{LineItems: append([]entities.LineItem(nil), draft.LineItems...)}
	pricing.Apply(&priced, res)
	draft.LineItems = priced.LineItems

	review, err := u.reviewer.Review(ctx, draft, res.Totals())
	if err != nil {
		log.Printf("[review][usecase] review failed title=%q err=%v", draft.Title, err)
		u.observe("failed")
		return entities.EstimateReview{}, fmt.Errorf("%w: %v", ErrReviewFailed, err)
	}
	u.observe("ok")
	return review, nil
}

func (u *ReviewUseCase) observe(outcome string) {
	if u.recorder != nil {
		u.recorder.ObserveReview(outcome)
	}
}

// ValidateEstimateDraft runs the deterministic checks that must pass before an
// estimate is saved. It returns nil when the draft is valid.
func ValidateEstimateDraft(d entities.EstimateDraft, now time.Time) []string {
	var errs []string
	if d.Recipient.IsZero() {
		errs = append(errs, entities.ErrRecipientMissing.Error())
	}
	if strings.TrimSpace(d.Title) == "" {
		errs = append(errs, "title is required")
	}
	if len(d.LineItems) == 0 {
		errs = append(errs, "at least one line item is required")
	}
	for i, li := range d.LineItems {
		n := i + 1
		if strings.TrimSpace(li.Description) == "" {
			errs = append(errs, fmt.Sprintf("line item %d: description is required", n))
		}
		if li.Quantity <= 0 {
			errs = append(errs, fmt.Sprintf("line item %d: quantity must be greater than zero", n))
		}
		if li.UnitPrice < 0 {
			errs = append(errs, fmt.Sprintf("line item %d: unit price cannot be negative", n))
		}
		if li.MaterialCostValue() < 0 {
			errs = append(errs, fmt.Sprintf("line item %d: material cost cannot be negative", n))
		}
		if _, ok := entities.ParseTier(string(li.Tier)); !ok {
			errs = append(errs, fmt.Sprintf("line item %d: unknown tier %q", n, li.Tier))
		}
	}
	if d.TaxRate < 0 || d.TaxRate > 100 {
		errs = append(errs, "tax rate must be between 0 and 100")
	}
	if d.DiscountAmount < 0 {
		errs = append(errs, "discount cannot be negative")
	} else if !pricing.UsesPricebook(d.LineItems) && d.DiscountAmount > pricing.ManualSubtotal(d.LineItems) {
		errs = append(errs, "discount cannot exceed the subtotal")
	}
	if d.ValidUntil != nil && d.ValidUntil.Before(now) {
		errs = append(errs, "valid until date is in the past")
	}
	return errs
}
