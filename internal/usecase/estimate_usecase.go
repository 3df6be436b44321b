package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/lifecycle"
	"fieldservice/internal/domain/pricing"
	"fieldservice/internal/usecase/interfaces"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEstimateNotFound      = errors.New("estimate not found")
	ErrInvalidEstimateID     = errors.New("invalid estimate id")
	ErrInvalidEstimateStatus = errors.New("invalid estimate status")
	ErrEstimateNotEditable   = errors.New("only draft or revised estimates can be edited")
)

const estimateSequence = "estimate"

// TransitionRecorder observes estimate lifecycle transitions. Metrics implement it.
type TransitionRecorder interface {
	ObserveTransition(name string)
}

// EstimatePatch is a status change requested through PATCH /estimates/:id.
type EstimatePatch struct {
	Status        entities.EstimateStatus
	DeclineReason string
}

// IEstimateUseCase exposes the estimate lifecycle.
//
// Reads return EstimateView so callers always get the derived display status.
// Every transition logs an activity on the recipient, and failures there never
// undo the transition.
type IEstimateUseCase interface {
	Create(ctx context.Context, draft entities.EstimateDraft) (entities.Estimate, error)
	Update(ctx context.Context, id string, draft entities.EstimateDraft) (entities.Estimate, error)
	Patch(ctx context.Context, id string, patch EstimatePatch) (entities.Estimate, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (entities.EstimateView, error)
	Render(ctx context.Context, e entities.Estimate) entities.EstimateView
	List(ctx context.Context) ([]entities.EstimateView, error)
	Search(ctx context.Context, query string) ([]entities.EstimateView, error)
	Stats(ctx context.Context) (entities.EstimateStats, error)
	Send(ctx context.Context, id string) (entities.Estimate, error)
	View(ctx context.Context, id string) (entities.Estimate, error)
	Accept(ctx context.Context, id string) (entities.Estimate, error)
	Decline(ctx context.Context, id string, reason string) (entities.Estimate, error)
	Revise(ctx context.Context, id string) (entities.Estimate, error)
	Convert(ctx context.Context, id string, clientEmail string) (entities.Estimate, entities.Job, error)
	ExpireOverdue(ctx context.Context, now time.Time) (int, error)
}

type EstimateUseCase struct {
	repo       interfaces.IEstimateRepository
	sequences  interfaces.ISequenceRepository
	pricebook  IPricebookUseCase
	activities IActivityUseCase
	jobs       IJobUseCase
	recorder   TransitionRecorder
	now        func() time.Time
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

func NewEstimateUseCase(
	repo interfaces.IEstimateRepository,
	sequences interfaces.ISequenceRepository,
	pricebook IPricebookUseCase,
	activities IActivityUseCase,
	jobs IJobUseCase,
	recorder TransitionRecorder,
) *EstimateUseCase {
	return &EstimateUseCase{
		repo:       repo,
		sequences:  sequences,
		pricebook:  pricebook,
		activities: activities,
		jobs:       jobs,
		recorder:   recorder,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (u *EstimateUseCase) Create(ctx context.Context, draft entities.EstimateDraft) (entities.Estimate, error) {
	now := u.now()
	if errs := ValidateEstimateDraft(draft, now); len(errs) > 0 {
		return entities.Estimate{}, &ValidationError{Errors: errs}
	}
	result, err := u.price(ctx, draft)
	if err != nil {
		return entities.Estimate{}, err
	}

	seq, err := u.sequences.Next(ctx, estimateSequence)
	if err != nil {
		log.Printf("[estimate][usecase] sequence failed err=%v", err)
		return entities.Estimate{}, err
	}

	e := entities.Estimate{
		ID:             uuid.NewString(),
		EstimateNumber: fmt.Sprintf("EST-%05d", seq),
		Status:         entities.EstimateStatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	applyDraft(&e, draft)
	pricing.Apply(&e, result)

	created, err := u.repo.Create(ctx, e)
	if err != nil {
		log.Printf("[estimate][usecase] create failed estimate_id=%s err=%v", e.ID, err)
		return entities.Estimate{}, err
	}
	log.Printf("[estimate][usecase] created estimate_id=%s number=%s total=%.2f mode=%s", created.ID, created.EstimateNumber, created.Total, created.PricingMode)

	u.logActivity(ctx, created, entities.ActivityEstimateCreated, fmt.Sprintf("Estimate %s created", created.EstimateNumber), "")
	return created, nil
}

func (u *EstimateUseCase) Update(ctx context.Context, id string, draft entities.EstimateDraft) (entities.Estimate, error) {
	current, err := u.get(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if !lifecycle.Editable(current.Status) {
		return entities.Estimate{}, ErrEstimateNotEditable
	}
	now := u.now()
	if errs := ValidateEstimateDraft(draft, now); len(errs) > 0 {
		return entities.Estimate{}, &ValidationError{Errors: errs}
	}
	result, err := u.price(ctx, draft)
	if err != nil {
		return entities.Estimate{}, err
	}

	applyDraft(&current, draft)
	pricing.Apply(&current, result)
	current.UpdatedAt = now
	return u.save(ctx, current)
}

// price resolves the valuation of draft. Line items that all reference a catalog
// service go through the pricebook, everything else is priced manually.
func (u *EstimateUseCase) price(ctx context.Context, draft entities.EstimateDraft) (pricing.Result, error) {
	return priceDraft(ctx, u.pricebook, draft)
}

// priceDraft resolves the valuation a draft would be saved with.
func priceDraft(ctx context.Context, pricebook IPricebookUseCase, draft entities.EstimateDraft) (pricing.Result, error) {
	if !pricing.UsesPricebook(draft.LineItems) {
		return pricing.Resolve(draft.LineItems, draft.TaxRate, draft.DiscountAmount, nil), nil
	}
	if pricebook == nil {
		return nil, ErrNoPricebookItems
	}
	res, err := pricebook.Calculate(ctx, pricing.PricebookItems(draft.LineItems))
	if err != nil {
		log.Printf("[estimate][usecase] pricebook calculation failed err=%v", err)
		return nil, err
	}
	return pricing.Resolve(draft.LineItems, draft.TaxRate, draft.DiscountAmount, &res), nil
}

func applyDraft(e *entities.Estimate, d entities.EstimateDraft) {
	e.Recipient = d.Recipient
	e.Title = strings.TrimSpace(d.Title)
	e.Description = strings.TrimSpace(d.Description)
	e.LineItems = append([]entities.LineItem(nil), d.LineItems...)
	e.TaxRate = d.TaxRate
	e.DiscountAmount = d.DiscountAmount
	e.ValidUntil = d.ValidUntil
	e.PaymentTerms = d.PaymentTerms
	e.TermsAndConditions = d.TermsAndConditions
	e.Notes = d.Notes
}

// Patch dispatches a requested status to the matching transition.
func (u *EstimateUseCase) Patch(ctx context.Context, id string, patch EstimatePatch) (entities.Estimate, error) {
	t, ok := lifecycle.TransitionForStatus(patch.Status)
	if !ok {
		return entities.Estimate{}, ErrInvalidEstimateStatus
	}
	switch t {
	case lifecycle.TransitionSend:
		return u.Send(ctx, id)
	case lifecycle.TransitionView:
		return u.View(ctx, id)
	case lifecycle.TransitionAccept:
		return u.Accept(ctx, id)
	case lifecycle.TransitionDecline:
		return u.Decline(ctx, id, patch.DeclineReason)
	case lifecycle.TransitionRevise:
		return u.Revise(ctx, id)
	case lifecycle.TransitionExpire:
		return u.expire(ctx, id, u.now())
	}
	return entities.Estimate{}, ErrInvalidEstimateStatus
}

func (u *EstimateUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidEstimateID
	}
	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEstimateNotFound
	}
	log.Printf("[estimate][usecase] deleted estimate_id=%s", id)
	return nil
}

func (u *EstimateUseCase) GetByID(ctx context.Context, id string) (entities.EstimateView, error) {
	e, err := u.get(ctx, id)
	if err != nil {
		return entities.EstimateView{}, err
	}
	var tasks []entities.Activity
	if e.Status == entities.EstimateStatusSent {
		if tasks, err = u.pendingTasks(ctx); err != nil {
			return entities.EstimateView{}, err
		}
	}
	return entities.EstimateView{Estimate: e, DisplayStatus: lifecycle.DeriveDisplayStatus(e, tasks)}, nil
}

// Render projects an estimate returned by a write with its display status taken
// from the current pending tasks. A failed lookup is logged and the estimate
// renders without follow-up context, since the write already happened.
func (u *EstimateUseCase) Render(ctx context.Context, e entities.Estimate) entities.EstimateView {
	var tasks []entities.Activity
	if e.Status == entities.EstimateStatusSent {
		var err error
		if tasks, err = u.pendingTasks(ctx); err != nil {
			log.Printf("[estimate][usecase] pending tasks lookup failed estimate_id=%s err=%v", e.ID, err)
		}
	}
	return entities.EstimateView{Estimate: e, DisplayStatus: lifecycle.DeriveDisplayStatus(e, tasks)}
}

func (u *EstimateUseCase) List(ctx context.Context) ([]entities.EstimateView, error) {
	return u.views(ctx, u.repo.List)
}

func (u *EstimateUseCase) Search(ctx context.Context, query string) ([]entities.EstimateView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return u.List(ctx)
	}
	return u.views(ctx, func(ctx context.Context) ([]entities.Estimate, error) {
		return u.repo.Search(ctx, query)
	})
}

// views loads estimates and the pending task set concurrently and projects the
// display status of each estimate.
func (u *EstimateUseCase) views(ctx context.Context, load func(context.Context) ([]entities.Estimate, error)) ([]entities.EstimateView, error) {
	var (
		estimates []entities.Estimate
		tasks     []entities.Activity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		estimates, err = load(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = u.pendingTasks(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]entities.EstimateView, 0, len(estimates))
	for _, e := range estimates {
		out = append(out, entities.EstimateView{Estimate: e, DisplayStatus: lifecycle.DeriveDisplayStatus(e, tasks)})
	}
	return out, nil
}

func (u *EstimateUseCase) pendingTasks(ctx context.Context) ([]entities.Activity, error) {
	if u.activities == nil {
		return nil, nil
	}
	return u.activities.ListPendingTasks(ctx)
}

// Stats aggregates the pipeline. Pipeline value is the total of open (sent or
// viewed) estimates; acceptance rate is accepted over decided, in percent.
func (u *EstimateUseCase) Stats(ctx context.Context) (entities.EstimateStats, error) {
	var (
		estimates []entities.Estimate
		tasks     []entities.Activity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		estimates, err = u.repo.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = u.pendingTasks(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return entities.EstimateStats{}, err
	}

	stats := entities.EstimateStats{ByStatus: map[entities.EstimateStatus]int{}}
	for _, e := range estimates {
		stats.Total++
		stats.ByStatus[e.Status]++
		switch e.Status {
		case entities.EstimateStatusSent, entities.EstimateStatusViewed:
			stats.PipelineValue += e.Total
		case entities.EstimateStatusAccepted:
			stats.AcceptedValue += e.Total
		}
	}
	stats.PipelineValue = pricing.Round2(stats.PipelineValue)
	stats.AcceptedValue = pricing.Round2(stats.AcceptedValue)
	accepted := stats.ByStatus[entities.EstimateStatusAccepted]
	if decided := accepted + stats.ByStatus[entities.EstimateStatusDeclined]; decided > 0 {
		stats.AcceptanceRate = pricing.Round2(float64(accepted) / float64(decided) * 100)
	}
	for _, t := range tasks {
		if t.IsPending() && t.Metadata[entities.MetaTaskType] == entities.TaskTypeEstimateFollowUp {
			stats.FollowUpsDue++
		}
	}
	return stats, nil
}

// Send marks the estimate sent and makes sure a follow-up task is pending for it.
func (u *EstimateUseCase) Send(ctx context.Context, id string) (entities.Estimate, error) {
	log.Printf("[estimate][usecase] send start estimate_id=%q", id)
	e, err := u.get(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if err := lifecycle.Send(&e, u.now()); err != nil {
		return entities.Estimate{}, err
	}
	saved, err := u.save(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}
	u.observe(lifecycle.TransitionSend)
	u.logActivity(ctx, saved, entities.ActivityEstimateSent, fmt.Sprintf("Estimate %s sent", saved.EstimateNumber), "")
	u.ensureFollowUp(ctx, saved)
	return saved, nil
}

func (u *EstimateUseCase) ensureFollowUp(ctx context.Context, e entities.Estimate) {
	if u.activities == nil {
		return
	}
	tasks, err := u.activities.ListPendingTasks(ctx)
	if err != nil {
		log.Printf("[estimate][usecase] pending tasks lookup failed estimate_id=%s err=%v", e.ID, err)
		return
	}
	if lifecycle.HasPendingFollowUp(e.ID, tasks) {
		log.Printf("[estimate][usecase] follow-up already pending estimate_id=%s", e.ID)
		return
	}
	if _, err := u.activities.ScheduleEstimateFollowUp(ctx, e); err != nil {
		log.Printf("[estimate][usecase] follow-up scheduling failed estimate_id=%s err=%v", e.ID, err)
	}
}

func (u *EstimateUseCase) View(ctx context.Context, id string) (entities.Estimate, error) {
	e, err := u.get(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	changed, err := lifecycle.View(&e, u.now())
	if err != nil {
		return entities.Estimate{}, err
	}
	if !changed {
		return e, nil
	}
	saved, err := u.save(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}
	u.observe(lifecycle.TransitionView)
	u.logActivity(ctx, saved, entities.ActivityEstimateViewed, fmt.Sprintf("Estimate %s viewed", saved.EstimateNumber), "")
	return saved, nil
}

func (u *EstimateUseCase) Accept(ctx context.Context, id string) (entities.Estimate, error) {
	e, err := u.get(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if err := lifecycle.Accept(&e, u.now()); err != nil {
		return entities.Estimate{}, err
	}
	saved, err := u.save(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}
	u.observe(lifecycle.TransitionAccept)
	u.logActivity(ctx, saved, entities.ActivityEstimateAccepted, fmt.Sprintf("Estimate %s accepted (%.2f)", saved.EstimateNumber, saved.Total), "")
	return saved, nil
}

func (u *EstimateUseCase) Decline(ctx context.Context, id string, reason string) (entities.Estimate, error) {
	e, err := u.get(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if err := lifecycle.Decline(&e, u.now(), reason); err != nil {
		return entities.Estimate{}, err
	}
	saved, err := u.save(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}
	u.observe(lifecycle.TransitionDecline)
	title := fmt.Sprintf("Estimate %s declined", saved.EstimateNumber)
	if saved.DeclineReason != "" {
		title += ": " + saved.DeclineReason
	}
	u.logActivity(ctx, saved, entities.ActivityEstimateDeclined, title, saved.DeclineReason)
	return saved, nil
}

func (u *EstimateUseCase) Revise(ctx context.Context, id string) (entities.Estimate, error) {
	e, err := u.get(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if err := lifecycle.Revise(&e, u.now()); err != nil {
		return entities.Estimate{}, err
	}
	saved, err := u.save(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}
	u.observe(lifecycle.TransitionRevise)
	return saved, nil
}

// Convert turns an accepted estimate into a job. The job use case logs
// job_created; acceptance is not logged again here.
func (u *EstimateUseCase) Convert(ctx context.Context, id string, clientEmail string) (entities.Estimate, entities.Job, error) {
	e, err := u.get(ctx, id)
	if err != nil {
		return entities.Estimate{}, entities.Job{}, err
	}
	if !lifecycle.CanTransition(e.Status, lifecycle.TransitionConvert) {
		return entities.Estimate{}, entities.Job{}, fmt.Errorf("%w: cannot convert an estimate in status %s", lifecycle.ErrInvalidTransition, e.Status)
	}
	if e.ConvertedToJobID != "" {
		return entities.Estimate{}, entities.Job{}, lifecycle.ErrAlreadyConverted
	}

	job, err := u.jobs.CreateFromEstimate(ctx, e, clientEmail)
	if err != nil {
		log.Printf("[estimate][usecase] job creation failed estimate_id=%s err=%v", e.ID, err)
		return entities.Estimate{}, entities.Job{}, err
	}
	if err := lifecycle.MarkConverted(&e, job.ID, u.now()); err != nil {
		return entities.Estimate{}, entities.Job{}, err
	}
	saved, err := u.save(ctx, e)
	if err != nil {
		// no compensation: the job stays and a retry creates another one
		log.Printf("[estimate][usecase] link to job failed, orphan job left in place estimate_id=%s orphan_job_id=%s orphan_job_number=%s err=%v",
			e.ID, job.ID, job.JobNumber, err)
		return entities.Estimate{}, entities.Job{}, err
	}
	u.observe(lifecycle.TransitionConvert)
	log.Printf("[estimate][usecase] converted estimate_id=%s job_id=%s", saved.ID, job.ID)
	return saved, job, nil
}

// ExpireOverdue expires every non-terminal estimate whose valid_until is before
// now. Failures on one estimate do not stop the sweep.
func (u *EstimateUseCase) ExpireOverdue(ctx context.Context, now time.Time) (int, error) {
	candidates, err := u.repo.ListByStatus(ctx,
		entities.EstimateStatusDraft,
		entities.EstimateStatusSent,
		entities.EstimateStatusViewed,
		entities.EstimateStatusRevised,
	)
	if err != nil {
		return 0, err
	}

	var (
		expired int
		errs    []error
	)
	for _, e := range candidates {
		if !lifecycle.IsOverdue(e, now) {
			continue
		}
		if _, err := u.expireEstimate(ctx, e, now); err != nil {
			log.Printf("[estimate][usecase] expire failed estimate_id=%s err=%v", e.ID, err)
			errs = append(errs, err)
			continue
		}
		expired++
	}
	log.Printf("[estimate][usecase] expiry sweep done candidates=%d expired=%d", len(candidates), expired)
	return expired, errors.Join(errs...)
}

func (u *EstimateUseCase) expire(ctx context.Context, id string, now time.Time) (entities.Estimate, error) {
	e, err := u.get(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	return u.expireEstimate(ctx, e, now)
}

func (u *EstimateUseCase) expireEstimate(ctx context.Context, e entities.Estimate, now time.Time) (entities.Estimate, error) {
	if err := lifecycle.Expire(&e, now); err != nil {
		return entities.Estimate{}, err
	}
	saved, err := u.save(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}
	u.observe(lifecycle.TransitionExpire)
	u.logActivity(ctx, saved, entities.ActivityEstimateExpired, fmt.Sprintf("Estimate %s expired", saved.EstimateNumber), "")
	return saved, nil
}

func (u *EstimateUseCase) get(ctx context.Context, id string) (entities.Estimate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}
	e, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	return e, nil
}

func (u *EstimateUseCase) save(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	saved, err := u.repo.Save(ctx, e)
	if err != nil {
		log.Printf("[estimate][usecase] save failed estimate_id=%s status=%s err=%v", e.ID, e.Status, err)
		return entities.Estimate{}, err
	}
	if saved.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	return saved, nil
}

func (u *EstimateUseCase) observe(t lifecycle.Transition) {
	if u.recorder != nil {
		u.recorder.ObserveTransition(string(t))
	}
}

func (u *EstimateUseCase) logActivity(ctx context.Context, e entities.Estimate, t entities.ActivityType, title, reason string) {
	if u.activities == nil {
		return
	}
	a := entities.Activity{
		ActivityType: t,
		Title:        title,
		Related: entities.EstimateRef{
			EstimateID:     e.ID,
			EstimateNumber: e.EstimateNumber,
			Amount:         e.Total,
			Reason:         reason,
		},
	}
	a.ForRecipient(e.Recipient)
	if _, err := u.activities.Create(ctx, a); err != nil {
		log.Printf("[estimate][usecase] activity log failed estimate_id=%s type=%s err=%v", e.ID, t, err)
	}
}
