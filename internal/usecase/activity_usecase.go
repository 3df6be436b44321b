package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrActivityNotFound     = errors.New("activity not found")
	ErrInvalidActivityID    = errors.New("invalid activity id")
	ErrInvalidActivityType  = errors.New("invalid activity type")
	ErrInvalidActivityTitle = errors.New("activity title is required")
	ErrActivityOwnerMissing = errors.New("activity needs a client or lead")
	ErrInvalidClientID      = errors.New("invalid client id")
	ErrActivityNotTask      = errors.New("only tasks can be completed")
)

const (
	DefaultEstimateFollowUpDays = 7
	jobFollowUpCallDays         = 30
	satisfactionSurveyDays      = 7
	maintenanceReminderDays     = 90
)

var maintenanceTitle = regexp.MustCompile(`(?i)\b(lawn|mow|mowing|maintenance|landscap\w*|hedge|garden|irrigation|seasonal)`)

// IActivityUseCase records client activities and generates follow-up tasks.
//
// Every lifecycle transition on estimates, jobs and payments lands here, and the
// pending task set it exposes drives the estimate display status.
type IActivityUseCase interface {
	Create(ctx context.Context, a entities.Activity) (entities.Activity, error)
	ScheduleEstimateFollowUp(ctx context.Context, e entities.Estimate) (entities.Activity, error)
	ScheduleJobCompletionTasks(ctx context.Context, j entities.Job) ([]entities.Activity, error)
	ListPendingTasks(ctx context.Context) ([]entities.Activity, error)
	ListByClient(ctx context.Context, clientID string) ([]entities.Activity, error)
	Complete(ctx context.Context, id string) (entities.Activity, error)
	Delete(ctx context.Context, id string) error
}

type ActivityUseCase struct {
	repo         interfaces.IActivityRepository
	followUpDays int
	now          func() time.Time
}

var _ IActivityUseCase = (*ActivityUseCase)(nil)

func NewActivityUseCase(repo interfaces.IActivityRepository, followUpDays int) *ActivityUseCase {
	if followUpDays <= 0 {
		followUpDays = DefaultEstimateFollowUpDays
	}
	return &ActivityUseCase{repo: repo, followUpDays: followUpDays, now: func() time.Time { return time.Now().UTC() }}
}

func (u *ActivityUseCase) Create(ctx context.Context, a entities.Activity) (entities.Activity, error) {
	a.Title = strings.TrimSpace(a.Title)
	a.ClientID = strings.TrimSpace(a.ClientID)
	a.LeadID = strings.TrimSpace(a.LeadID)
	if !a.ActivityType.Valid() {
		return entities.Activity{}, ErrInvalidActivityType
	}
	if a.Title == "" {
		return entities.Activity{}, ErrInvalidActivityTitle
	}
	if a.ClientID == "" && a.LeadID == "" {
		return entities.Activity{}, ErrActivityOwnerMissing
	}

	a.ID = uuid.NewString()
	a.CreatedAt = u.now()
	if !a.IsTask() {
		a.DueDate = nil
	}
	a.CompletedAt = nil
	return u.repo.Create(ctx, a)
}

// ScheduleEstimateFollowUp creates a reminder task due followUpDays after now.
func (u *ActivityUseCase) ScheduleEstimateFollowUp(ctx context.Context, e entities.Estimate) (entities.Activity, error) {
	due := u.now().AddDate(0, 0, u.followUpDays)
	a := entities.Activity{
		ActivityType: entities.ActivityTask,
		Title:        fmt.Sprintf("Follow up on estimate %s", e.EstimateNumber),
		Description:  fmt.Sprintf("Check in about %q (total %.2f).", e.Title, e.Total),
		Related:      entities.EstimateRef{EstimateID: e.ID, EstimateNumber: e.EstimateNumber, Amount: e.Total},
		Metadata: map[string]string{
			entities.MetaTaskType:   entities.TaskTypeEstimateFollowUp,
			entities.MetaEstimateID: e.ID,
		},
		DueDate: &due,
	}
	a.ForRecipient(e.Recipient)
	return u.Create(ctx, a)
}

// ScheduleJobCompletionTasks creates the post-completion tasks for j: a follow-up
// call, a satisfaction survey when an email is on file, and a maintenance reminder
// for recurring-service jobs. Tasks that fail to persist are logged and skipped.
func (u *ActivityUseCase) ScheduleJobCompletionTasks(ctx context.Context, j entities.Job) ([]entities.Activity, error) {
	if strings.TrimSpace(j.ClientID) == "" {
		return nil, ErrActivityOwnerMissing
	}
	now := u.now()
	plan := []entities.Activity{
		jobTask(j, entities.TaskTypeJobFollowUpCall, "Follow-up call: "+j.Title, now.AddDate(0, 0, jobFollowUpCallDays)),
	}
	if strings.TrimSpace(j.ClientEmail) != "" {
		plan = append(plan, jobTask(j, entities.TaskTypeSatisfactionSurvey, "Send satisfaction survey: "+j.Title, now.AddDate(0, 0, satisfactionSurveyDays)))
	}
	if maintenanceTitle.MatchString(j.Title) {
		plan = append(plan, jobTask(j, entities.TaskTypeMaintenanceReminder, "Maintenance reminder: "+j.Title, now.AddDate(0, 0, maintenanceReminderDays)))
	}

	created := make([]entities.Activity, 0, len(plan))
	for _, a := range plan {
		out, err := u.Create(ctx, a)
		if err != nil {
			log.Printf("[activity][usecase] schedule job task failed job_id=%s task_type=%s err=%v", j.ID, a.Metadata[entities.MetaTaskType], err)
			continue
		}
		created = append(created, out)
	}
	return created, nil
}

func jobTask(j entities.Job, taskType, title string, due time.Time) entities.Activity {
	return entities.Activity{
		ClientID:     j.ClientID,
		ActivityType: entities.ActivityTask,
		Title:        title,
		Related:      entities.JobRef{JobID: j.ID, JobNumber: j.JobNumber, Status: string(j.Status)},
		Metadata: map[string]string{
			entities.MetaTaskType: taskType,
			entities.MetaJobID:    j.ID,
		},
		DueDate: &due,
	}
}

func (u *ActivityUseCase) ListPendingTasks(ctx context.Context) ([]entities.Activity, error) {
	return u.repo.ListPendingTasks(ctx)
}

func (u *ActivityUseCase) ListByClient(ctx context.Context, clientID string) ([]entities.Activity, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, ErrInvalidClientID
	}
	return u.repo.ListByClient(ctx, clientID)
}

func (u *ActivityUseCase) Complete(ctx context.Context, id string) (entities.Activity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Activity{}, ErrInvalidActivityID
	}
	current, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Activity{}, err
	}
	if current.ID == "" {
		return entities.Activity{}, ErrActivityNotFound
	}
	if !current.IsTask() {
		return entities.Activity{}, ErrActivityNotTask
	}
	if current.CompletedAt != nil {
		return current, nil
	}

	updated, err := u.repo.MarkCompleted(ctx, id, u.now())
	if err != nil {
		return entities.Activity{}, err
	}
	if updated.ID == "" {
		return entities.Activity{}, ErrActivityNotFound
	}
	return updated, nil
}

func (u *ActivityUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidActivityID
	}
	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrActivityNotFound
	}
	return nil
}
