package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"fieldservice/internal/domain/entities"
	mock_interfaces "fieldservice/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func newActivityUseCase(t *testing.T) (*ActivityUseCase, *mock_interfaces.MockIActivityRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockIActivityRepository(ctrl)
	uc := NewActivityUseCase(repo, 0)
	uc.now = func() time.Time { return fixedNow }
	return uc, repo
}

func TestActivityUseCase_Create(t *testing.T) {
	tests := []struct {
		name    string
		in      entities.Activity
		wantErr error
	}{
		{name: "invalid type", in: entities.Activity{ActivityType: "fax", Title: "x", ClientID: "c1"}, wantErr: ErrInvalidActivityType},
		{name: "missing title", in: entities.Activity{ActivityType: entities.ActivityNote, Title: "  ", ClientID: "c1"}, wantErr: ErrInvalidActivityTitle},
		{name: "missing owner", in: entities.Activity{ActivityType: entities.ActivityNote, Title: "x"}, wantErr: ErrActivityOwnerMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newActivityUseCase(t)
			_, err := uc.Create(context.Background(), tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("non-task drops due date", func(t *testing.T) {
		uc, repo := newActivityUseCase(t)
		due := fixedNow
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(echoActivity)

		got, err := uc.Create(context.Background(), entities.Activity{ActivityType: entities.ActivityCall, Title: "Called", LeadID: "l1", DueDate: &due})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID == "" || got.DueDate != nil || !got.CreatedAt.Equal(fixedNow) {
			t.Fatalf("unexpected activity: %+v", got)
		}
	})
}

func TestActivityUseCase_ScheduleJobCompletionTasks(t *testing.T) {
	tests := []struct {
		name  string
		job   entities.Job
		types []string
	}{
		{
			name:  "call only",
			job:   entities.Job{ID: "j1", ClientID: "c1", Title: "Roof repair"},
			types: []string{entities.TaskTypeJobFollowUpCall},
		},
		{
			name:  "survey when email on file",
			job:   entities.Job{ID: "j1", ClientID: "c1", ClientEmail: "a@b.c", Title: "Roof repair"},
			types: []string{entities.TaskTypeJobFollowUpCall, entities.TaskTypeSatisfactionSurvey},
		},
		{
			name:  "maintenance reminder for lawn work",
			job:   entities.Job{ID: "j1", ClientID: "c1", ClientEmail: "a@b.c", Title: "Weekly Lawn Mowing"},
			types: []string{entities.TaskTypeJobFollowUpCall, entities.TaskTypeSatisfactionSurvey, entities.TaskTypeMaintenanceReminder},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo := newActivityUseCase(t)
			repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(len(tt.types)).DoAndReturn(echoActivity)

			got, err := uc.ScheduleJobCompletionTasks(context.Background(), tt.job)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.types) {
				t.Fatalf("expected %d tasks, got %d", len(tt.types), len(got))
			}
			for i, a := range got {
				if a.Metadata[entities.MetaTaskType] != tt.types[i] || a.Metadata[entities.MetaJobID] != "j1" || !a.IsPending() {
					t.Fatalf("unexpected task %d: %+v", i, a)
				}
			}
		})
	}

	t.Run("due dates", func(t *testing.T) {
		uc, repo := newActivityUseCase(t)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(3).DoAndReturn(echoActivity)

		got, _ := uc.ScheduleJobCompletionTasks(context.Background(), entities.Job{ID: "j1", ClientID: "c1", ClientEmail: "a@b.c", Title: "Garden cleanup"})
		want := []time.Time{fixedNow.AddDate(0, 0, 30), fixedNow.AddDate(0, 0, 7), fixedNow.AddDate(0, 0, 90)}
		for i, a := range got {
			if !a.DueDate.Equal(want[i]) {
				t.Fatalf("task %d: expected due %v, got %v", i, want[i], a.DueDate)
			}
		}
	})

	t.Run("persist failures are skipped", func(t *testing.T) {
		uc, repo := newActivityUseCase(t)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Activity{}, errors.New("db"))

		got, err := uc.ScheduleJobCompletionTasks(context.Background(), entities.Job{ID: "j1", ClientID: "c1", Title: "Roof"})
		if err != nil || len(got) != 0 {
			t.Fatalf("expected no tasks and no error, got %v err=%v", got, err)
		}
	})
}

func TestActivityUseCase_Complete(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		uc, repo := newActivityUseCase(t)
		repo.EXPECT().GetByID(gomock.Any(), "a1").Return(entities.Activity{}, nil)

		_, err := uc.Complete(context.Background(), "a1")
		if !errors.Is(err, ErrActivityNotFound) {
			t.Fatalf("expected ErrActivityNotFound, got %v", err)
		}
	})

	t.Run("only tasks", func(t *testing.T) {
		uc, repo := newActivityUseCase(t)
		repo.EXPECT().GetByID(gomock.Any(), "a1").Return(entities.Activity{ID: "a1", ActivityType: entities.ActivityNote}, nil)

		_, err := uc.Complete(context.Background(), "a1")
		if !errors.Is(err, ErrActivityNotTask) {
			t.Fatalf("expected ErrActivityNotTask, got %v", err)
		}
	})

	t.Run("marks completed", func(t *testing.T) {
		uc, repo := newActivityUseCase(t)
		repo.EXPECT().GetByID(gomock.Any(), "a1").Return(entities.Activity{ID: "a1", ActivityType: entities.ActivityTask}, nil)
		repo.EXPECT().MarkCompleted(gomock.Any(), "a1", fixedNow).DoAndReturn(
			func(_ context.Context, id string, at time.Time) (entities.Activity, error) {
				return entities.Activity{ID: id, ActivityType: entities.ActivityTask, CompletedAt: &at}, nil
			},
		)

		got, err := uc.Complete(context.Background(), "a1")
		if err != nil || got.IsPending() {
			t.Fatalf("expected completed task, got %+v err=%v", got, err)
		}
	})

	t.Run("already completed is returned as is", func(t *testing.T) {
		uc, repo := newActivityUseCase(t)
		done := fixedNow.Add(-time.Hour)
		repo.EXPECT().GetByID(gomock.Any(), "a1").Return(entities.Activity{ID: "a1", ActivityType: entities.ActivityTask, CompletedAt: &done}, nil)

		got, err := uc.Complete(context.Background(), "a1")
		if err != nil || !got.CompletedAt.Equal(done) {
			t.Fatalf("unexpected result %+v err=%v", got, err)
		}
	})
}

func TestActivityUseCase_DeleteAndList(t *testing.T) {
	t.Run("delete missing", func(t *testing.T) {
		uc, repo := newActivityUseCase(t)
		repo.EXPECT().Delete(gomock.Any(), "a1").Return(false, nil)
		if err := uc.Delete(context.Background(), "a1"); !errors.Is(err, ErrActivityNotFound) {
			t.Fatalf("expected ErrActivityNotFound, got %v", err)
		}
	})

	t.Run("list requires client id", func(t *testing.T) {
		uc, _ := newActivityUseCase(t)
		if _, err := uc.ListByClient(context.Background(), ""); !errors.Is(err, ErrInvalidClientID) {
			t.Fatalf("expected ErrInvalidClientID, got %v", err)
		}
	})
}
