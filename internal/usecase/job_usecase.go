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
	"fieldservice/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrJobNotFound                = errors.New("job not found")
	ErrInvalidJobID               = errors.New("invalid job id")
	ErrInvalidJobStatus           = errors.New("invalid job status")
	ErrEstimateRecipientNotClient = errors.New("only estimates addressed to a client can become jobs")
)

const jobSequence = "job"

// IJobUseCase covers the job operations the estimate workflow depends on.
type IJobUseCase interface {
	CreateFromEstimate(ctx context.Context, e entities.Estimate, clientEmail string) (entities.Job, error)
	GetByID(ctx context.Context, id string) (entities.Job, error)
	ListByClient(ctx context.Context, clientID string) ([]entities.Job, error)
	UpdateStatus(ctx context.Context, id string, status entities.JobStatus) (entities.Job, error)
}

type JobUseCase struct {
	repo       interfaces.IJobRepository
	sequences  interfaces.ISequenceRepository
	activities IActivityUseCase
	now        func() time.Time
}

var _ IJobUseCase = (*JobUseCase)(nil)

func NewJobUseCase(repo interfaces.IJobRepository, sequences interfaces.ISequenceRepository, activities IActivityUseCase) *JobUseCase {
	return &JobUseCase{repo: repo, sequences: sequences, activities: activities, now: func() time.Time { return time.Now().UTC() }}
}

// CreateFromEstimate copies an accepted estimate into a new draft job and logs
// job_created on the client.
func (u *JobUseCase) CreateFromEstimate(ctx context.Context, e entities.Estimate, clientEmail string) (entities.Job, error) {
	if !e.Recipient.IsClient() {
		return entities.Job{}, ErrEstimateRecipientNotClient
	}

	seq, err := u.sequences.Next(ctx, jobSequence)
	if err != nil {
		return entities.Job{}, err
	}

	now := u.now()
	j := entities.Job{
		ID:            uuid.NewString(),
		JobNumber:     fmt.Sprintf("JOB-%05d", seq),
		ClientID:      e.Recipient.ClientID(),
		ClientEmail:   strings.TrimSpace(clientEmail),
		EstimateID:    e.ID,
		Title:         e.Title,
		Description:   e.Description,
		LineItems:     append([]entities.LineItem(nil), e.LineItems...),
		Subtotal:      e.Subtotal,
		TaxAmount:     e.TaxAmount,
		Total:         e.Total,
		PaymentStatus: lifecycle.DerivePaymentStatus(e.Total, 0),
		Status:        entities.JobStatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	created, err := u.repo.Create(ctx, j)
	if err != nil {
		return entities.Job{}, err
	}
	log.Printf("[job][usecase] created from estimate job_id=%s estimate_id=%s total=%.2f", created.ID, e.ID, created.Total)

	u.logActivity(ctx, created, entities.ActivityJobCreated, fmt.Sprintf("Job %s created from estimate %s", created.JobNumber, e.EstimateNumber))
	return created, nil
}

func (u *JobUseCase) GetByID(ctx context.Context, id string) (entities.Job, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Job{}, ErrInvalidJobID
	}
	j, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Job{}, err
	}
	if j.ID == "" {
		return entities.Job{}, ErrJobNotFound
	}
	return j, nil
}

func (u *JobUseCase) ListByClient(ctx context.Context, clientID string) ([]entities.Job, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, ErrInvalidClientID
	}
	return u.repo.ListByClient(ctx, clientID)
}

// UpdateStatus advances the job status machine. Completing a job schedules the
// post-completion tasks.
func (u *JobUseCase) UpdateStatus(ctx context.Context, id string, status entities.JobStatus) (entities.Job, error) {
	if !status.Valid() {
		return entities.Job{}, ErrInvalidJobStatus
	}
	j, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Job{}, err
	}
	if err := lifecycle.AdvanceJob(&j, status, u.now()); err != nil {
		return entities.Job{}, err
	}

	saved, err := u.repo.Save(ctx, j)
	if err != nil {
		return entities.Job{}, err
	}
	if saved.ID == "" {
		return entities.Job{}, ErrJobNotFound
	}

	switch status {
	case entities.JobStatusScheduled:
		u.logActivity(ctx, saved, entities.ActivityJobScheduled, fmt.Sprintf("Job %s scheduled", saved.JobNumber))
	case entities.JobStatusInProgress:
		u.logActivity(ctx, saved, entities.ActivityJobStarted, fmt.Sprintf("Job %s started", saved.JobNumber))
	case entities.JobStatusCancelled:
		u.logActivity(ctx, saved, entities.ActivityJobCancelled, fmt.Sprintf("Job %s cancelled", saved.JobNumber))
	case entities.JobStatusCompleted:
		u.logActivity(ctx, saved, entities.ActivityJobCompleted, fmt.Sprintf("Job %s completed", saved.JobNumber))
		if u.activities != nil {
			if _, err := u.activities.ScheduleJobCompletionTasks(ctx, saved); err != nil {
				log.Printf("[job][usecase] completion tasks failed job_id=%s err=%v", saved.ID, err)
			}
		}
	}
	return saved, nil
}

func (u *JobUseCase) logActivity(ctx context.Context, j entities.Job, t entities.ActivityType, title string) {
	if u.activities == nil {
		return
	}
	_, err := u.activities.Create(ctx, entities.Activity{
		ClientID:     j.ClientID,
		ActivityType: t,
		Title:        title,
		Related:      entities.JobRef{JobID: j.ID, JobNumber: j.JobNumber, Status: string(j.Status)},
	})
	if err != nil {
		log.Printf("[job][usecase] activity log failed job_id=%s type=%s err=%v", j.ID, t, err)
	}
}
