package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"fieldservice/internal/adapter/http/handlers/mocks"
	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestActivityHandler_CreateActivity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing title", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewActivityHandler(mocks.NewMockIActivityUseCase(ctrl))

		r := gin.New()
		r.POST("/api/activities", h.CreateActivity)

		w := performRequest(r, http.MethodPost, "/api/activities", bytes.NewBufferString(`{"client_id":"c","activity_type":"call"}`))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown related type", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewActivityHandler(mocks.NewMockIActivityUseCase(ctrl))

		r := gin.New()
		r.POST("/api/activities", h.CreateActivity)

		w := performRequest(r, http.MethodPost, "/api/activities",
			bytes.NewBufferString(`{"client_id":"c","activity_type":"note","title":"x","related_type":"invoice","related_id":"i-1"}`))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("owner missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIActivityUseCase(ctrl)
		h := NewActivityHandler(uc)

		r := gin.New()
		r.POST("/api/activities", h.CreateActivity)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Activity{}, usecase.ErrActivityOwnerMissing)

		w := performRequest(r, http.MethodPost, "/api/activities", bytes.NewBufferString(`{"activity_type":"note","title":"x"}`))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("task with due date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIActivityUseCase(ctrl)
		h := NewActivityHandler(uc)

		r := gin.New()
		r.POST("/api/activities", h.CreateActivity)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, a entities.Activity) (entities.Activity, error) {
			if a.ActivityType != entities.ActivityTask || a.DueDate == nil || a.Related == nil {
				t.Fatalf("unexpected activity: %+v", a)
			}
			a.ID = "act-1"
			a.CreatedAt = time.Now().UTC()
			return a, nil
		})

		w := performRequest(r, http.MethodPost, "/api/activities", bytes.NewBufferString(
			`{"client_id":"client-1","activity_type":"Task","title":"Call back","due_date":"2026-04-01","related_type":"estimate","related_id":"est-1"}`))
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["id"] != "act-1" || body["pending"] != true || body["related_type"] != "estimate" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestActivityHandler_Lists(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("client timeline", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIActivityUseCase(ctrl)
		h := NewActivityHandler(uc)

		r := gin.New()
		r.GET("/api/clients/:client_id/activities", h.ListClientActivities)

		uc.EXPECT().ListByClient(gomock.Any(), "client-1").Return([]entities.Activity{
			{ID: "a-2", ClientID: "client-1", ActivityType: entities.ActivityCall, Title: "Called"},
			{ID: "a-1", ClientID: "client-1", ActivityType: entities.ActivityNote, Title: "Noted"},
		}, nil)

		w := performRequest(r, http.MethodGet, "/api/clients/client-1/activities", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body) != 2 || body[0]["id"] != "a-2" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("pending tasks", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIActivityUseCase(ctrl)
		h := NewActivityHandler(uc)

		r := gin.New()
		r.GET("/api/activities/tasks/pending", h.ListPendingTasks)

		uc.EXPECT().ListPendingTasks(gomock.Any()).Return(nil, nil)

		w := performRequest(r, http.MethodGet, "/api/activities/tasks/pending", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w.Body.String() != "[]" {
			t.Fatalf("expected empty array, got %s", w.Body.String())
		}
	})
}

func TestActivityHandler_CompleteAndDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("complete non task", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIActivityUseCase(ctrl)
		h := NewActivityHandler(uc)

		r := gin.New()
		r.POST("/api/activities/:id/complete", h.CompleteTask)

		uc.EXPECT().Complete(gomock.Any(), "a-1").Return(entities.Activity{}, usecase.ErrActivityNotTask)

		w := performRequest(r, http.MethodPost, "/api/activities/a-1/complete", nil)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("complete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIActivityUseCase(ctrl)
		h := NewActivityHandler(uc)

		r := gin.New()
		r.POST("/api/activities/:id/complete", h.CompleteTask)

		done := time.Now().UTC()
		uc.EXPECT().Complete(gomock.Any(), "a-1").Return(entities.Activity{
			ID: "a-1", ClientID: "client-1", ActivityType: entities.ActivityTask, Title: "Follow up", CompletedAt: &done,
		}, nil)

		w := performRequest(r, http.MethodPost, "/api/activities/a-1/complete", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if decodeBody(t, w)["pending"] != false {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("delete missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIActivityUseCase(ctrl)
		h := NewActivityHandler(uc)

		r := gin.New()
		r.DELETE("/api/activities/:id", h.DeleteActivity)

		uc.EXPECT().Delete(gomock.Any(), "a-9").Return(usecase.ErrActivityNotFound)

		w := performRequest(r, http.MethodDelete, "/api/activities/a-9", nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
