package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/lifecycle"
	mock_interfaces "fieldservice/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestJobUseCase_UpdateStatus(t *testing.T) {
	setup := func(t *testing.T) (*JobUseCase, *mock_interfaces.MockIJobRepository, *mock_interfaces.MockIActivityRepository) {
		ctrl := gomock.NewController(t)
		jobRepo := mock_interfaces.NewMockIJobRepository(ctrl)
		activityRepo := mock_interfaces.NewMockIActivityRepository(ctrl)
		activities := NewActivityUseCase(activityRepo, 7)
		activities.now = func() time.Time { return fixedNow }
		uc := NewJobUseCase(jobRepo, mock_interfaces.NewMockISequenceRepository(ctrl), activities)
		uc.now = func() time.Time { return fixedNow }
		return uc, jobRepo, activityRepo
	}

	t.Run("invalid status", func(t *testing.T) {
		uc, _, _ := setup(t)
		_, err := uc.UpdateStatus(context.Background(), "j1", "paused")
		if !errors.Is(err, ErrInvalidJobStatus) {
			t.Fatalf("expected ErrInvalidJobStatus, got %v", err)
		}
	})

	t.Run("guarded transition", func(t *testing.T) {
		uc, jobRepo, _ := setup(t)
		jobRepo.EXPECT().GetByID(gomock.Any(), "j1").Return(entities.Job{ID: "j1", Status: entities.JobStatusDraft}, nil)

		_, err := uc.UpdateStatus(context.Background(), "j1", entities.JobStatusCompleted)
		if !errors.Is(err, lifecycle.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("completion schedules follow-up tasks", func(t *testing.T) {
		uc, jobRepo, activityRepo := setup(t)
		jobRepo.EXPECT().GetByID(gomock.Any(), "j1").Return(entities.Job{
			ID: "j1", JobNumber: "JOB-00001", ClientID: "c1", ClientEmail: "a@b.c", Title: "Lawn maintenance", Status: entities.JobStatusInProgress,
		}, nil)
		jobRepo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, j entities.Job) (entities.Job, error) { return j, nil },
		)

		var types []entities.ActivityType
		activityRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(4).DoAndReturn(
			func(_ context.Context, a entities.Activity) (entities.Activity, error) {
				types = append(types, a.ActivityType)
				return a, nil
			},
		)

		got, err := uc.UpdateStatus(context.Background(), "j1", entities.JobStatusCompleted)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.CompletedDate == nil || !got.CompletedDate.Equal(fixedNow) {
			t.Fatalf("expected completed date, got %v", got.CompletedDate)
		}
		if types[0] != entities.ActivityJobCompleted {
			t.Fatalf("expected job_completed first, got %v", types)
		}
		for _, tp := range types[1:] {
			if tp != entities.ActivityTask {
				t.Fatalf("expected tasks after completion, got %v", types)
			}
		}
	})
}

func TestJobUseCase_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	jobRepo := mock_interfaces.NewMockIJobRepository(ctrl)
	uc := NewJobUseCase(jobRepo, nil, nil)

	jobRepo.EXPECT().GetByID(gomock.Any(), "j1").Return(entities.Job{}, nil)
	if _, err := uc.GetByID(context.Background(), "j1"); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if _, err := uc.GetByID(context.Background(), " "); !errors.Is(err, ErrInvalidJobID) {
		t.Fatalf("expected ErrInvalidJobID, got %v", err)
	}
}
