package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fieldservice/internal/adapter/http/handlers/mocks"
	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/lifecycle"
	"fieldservice/internal/domain/pricing"
	"fieldservice/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func performRequest(r http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body %q: %v", w.Body.String(), err)
	}
	return body
}

func sampleEstimate(status entities.EstimateStatus) entities.Estimate {
	recipient, _ := entities.NewRecipient("client-1", "")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return entities.Estimate{
		ID:             "est-1",
		EstimateNumber: "EST-00001",
		Recipient:      recipient,
		Title:          "Water heater",
		LineItems:      []entities.LineItem{{Description: "install", Quantity: 1, UnitPrice: 500}},
		Subtotal:       500,
		Total:          500,
		PricingMode:    entities.PricingModeManual,
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// expectRender lets transition responses render without pending-task context.
func expectRender(uc *mocks.MockIEstimateUseCase) {
	uc.EXPECT().Render(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(
		func(_ context.Context, e entities.Estimate) entities.EstimateView {
			return entities.EstimateView{Estimate: e, DisplayStatus: lifecycle.DeriveDisplayStatus(e, nil)}
		},
	)
}

const validEstimateBody = `{"client_id":"client-1","title":"Water heater","line_items":[{"description":"install","quantity":1,"unit_price":500}]}`

func TestEstimateHandler_CreateEstimate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/api/estimates", h.CreateEstimate)

		w := performRequest(r, http.MethodPost, "/api/estimates", bytes.NewBufferString("{"))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("both recipients rejected before the usecase", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/api/estimates", h.CreateEstimate)

		w := performRequest(r, http.MethodPost, "/api/estimates", bytes.NewBufferString(`{"client_id":"c","lead_id":"l","title":"x"}`))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if got := decodeBody(t, w)["code"]; got != "VALIDATION_FAILED" {
			t.Fatalf("expected VALIDATION_FAILED, got %v", got)
		}
	})

	t.Run("validation errors are listed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/api/estimates", h.CreateEstimate)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(entities.Estimate{}, &usecase.ValidationError{Errors: []string{"Title is required", "At least one line item is required"}})

		w := performRequest(r, http.MethodPost, "/api/estimates", bytes.NewBufferString(`{"client_id":"client-1"}`))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		details, _ := decodeBody(t, w)["details"].([]any)
		if len(details) != 2 {
			t.Fatalf("expected 2 details, got %s", w.Body.String())
		}
	})

	t.Run("unknown pricebook entry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/api/estimates", h.CreateEstimate)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Estimate{}, pricing.ErrUnknownCatalogEntry)

		w := performRequest(r, http.MethodPost, "/api/estimates", bytes.NewBufferString(validEstimateBody))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/api/estimates", h.CreateEstimate)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, d entities.EstimateDraft) (entities.Estimate, error) {
			if d.Title != "Water heater" || len(d.LineItems) != 1 {
				t.Fatalf("unexpected draft: %+v", d)
			}
			return sampleEstimate(entities.EstimateStatusDraft), nil
		})

		w := performRequest(r, http.MethodPost, "/api/estimates", bytes.NewBufferString(validEstimateBody))
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["estimate_number"] != "EST-00001" || body["status"] != "draft" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestEstimateHandler_ListEstimates(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("list includes display status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.GET("/api/estimates", h.ListEstimates)

		uc.EXPECT().List(gomock.Any()).Return([]entities.EstimateView{{
			Estimate:      sampleEstimate(entities.EstimateStatusSent),
			DisplayStatus: entities.DisplayStatusFollowUpPending,
		}}, nil)

		w := performRequest(r, http.MethodGet, "/api/estimates", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body) != 1 || body[0]["display_status"] != "followup_pending" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("search", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.GET("/api/estimates", h.ListEstimates)

		uc.EXPECT().Search(gomock.Any(), "heater").Return(nil, nil)

		w := performRequest(r, http.MethodGet, "/api/estimates?q=heater", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("stats", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.GET("/api/estimates", h.ListEstimates)

		uc.EXPECT().Stats(gomock.Any()).Return(entities.EstimateStats{Total: 4, AcceptanceRate: 50}, nil)

		w := performRequest(r, http.MethodGet, "/api/estimates?action=stats", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if got := decodeBody(t, w)["total"]; got != float64(4) {
			t.Fatalf("unexpected total: %v", got)
		}
	})

	t.Run("repository failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.GET("/api/estimates", h.ListEstimates)

		uc.EXPECT().List(gomock.Any()).Return(nil, errors.New("boom"))

		w := performRequest(r, http.MethodGet, "/api/estimates", nil)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestEstimateHandler_GetUpdateDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("get not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.GET("/api/estimates/:id", h.GetEstimate)

		uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.EstimateView{}, usecase.ErrEstimateNotFound)

		w := performRequest(r, http.MethodGet, "/api/estimates/missing", nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("update not editable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.PUT("/api/estimates/:id", h.UpdateEstimate)

		uc.EXPECT().Update(gomock.Any(), "est-1", gomock.Any()).Return(entities.Estimate{}, usecase.ErrEstimateNotEditable)

		w := performRequest(r, http.MethodPut, "/api/estimates/est-1", bytes.NewBufferString(validEstimateBody))
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("patch invalid transition", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.PATCH("/api/estimates/:id", h.PatchEstimate)

		uc.EXPECT().Patch(gomock.Any(), "est-1", usecase.EstimatePatch{Status: entities.EstimateStatusAccepted}).
			Return(entities.Estimate{}, lifecycle.ErrInvalidTransition)

		w := performRequest(r, http.MethodPatch, "/api/estimates/est-1", bytes.NewBufferString(`{"status":" Accepted "}`))
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("patch requires status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.PATCH("/api/estimates/:id", h.PatchEstimate)

		w := performRequest(r, http.MethodPatch, "/api/estimates/est-1", bytes.NewBufferString(`{}`))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("delete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.DELETE("/api/estimates/:id", h.DeleteEstimate)

		uc.EXPECT().Delete(gomock.Any(), "est-1").Return(nil)

		w := performRequest(r, http.MethodDelete, "/api/estimates/est-1", nil)
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})
}

func TestEstimateHandler_Transitions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("send", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/api/estimates/:id/send", h.SendEstimate)

		sent := sampleEstimate(entities.EstimateStatusSent)
		uc.EXPECT().Send(gomock.Any(), "est-1").Return(sent, nil)
		uc.EXPECT().Render(gomock.Any(), sent).Return(entities.EstimateView{
			Estimate: sent, DisplayStatus: entities.DisplayStatusFollowUpPending,
		})

		w := performRequest(r, http.MethodPost, "/api/estimates/est-1/send", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["status"] != "sent" || body["display_status"] != "followup_pending" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("patch to sent renders follow-up status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.PATCH("/api/estimates/:id", h.PatchEstimate)

		sent := sampleEstimate(entities.EstimateStatusSent)
		uc.EXPECT().Patch(gomock.Any(), "est-1", usecase.EstimatePatch{Status: entities.EstimateStatusSent}).Return(sent, nil)
		uc.EXPECT().Render(gomock.Any(), sent).Return(entities.EstimateView{
			Estimate: sent, DisplayStatus: entities.DisplayStatusFollowUpPending,
		})

		w := performRequest(r, http.MethodPatch, "/api/estimates/est-1", bytes.NewBufferString(`{"status":"sent"}`))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if got := decodeBody(t, w)["display_status"]; got != "followup_pending" {
			t.Fatalf("expected followup_pending, got %v", got)
		}
	})

	t.Run("accept from draft conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/api/estimates/:id/accept", h.AcceptEstimate)

		uc.EXPECT().Accept(gomock.Any(), "est-1").Return(entities.Estimate{}, lifecycle.ErrInvalidTransition)

		w := performRequest(r, http.MethodPost, "/api/estimates/est-1/accept", nil)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		if got := decodeBody(t, w)["code"]; got != "INVALID_TRANSITION" {
			t.Fatalf("expected INVALID_TRANSITION, got %v", got)
		}
	})

	t.Run("decline without body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/api/estimates/:id/decline", h.DeclineEstimate)

		uc.EXPECT().Decline(gomock.Any(), "est-1", "").Return(sampleEstimate(entities.EstimateStatusDeclined), nil)
		expectRender(uc)

		w := performRequest(r, http.MethodPost, "/api/estimates/est-1/decline", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("decline with reason", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/api/estimates/:id/decline", h.DeclineEstimate)

		uc.EXPECT().Decline(gomock.Any(), "est-1", "too expensive").Return(sampleEstimate(entities.EstimateStatusDeclined), nil)
		expectRender(uc)

		w := performRequest(r, http.MethodPost, "/api/estimates/est-1/decline", bytes.NewBufferString(`{"reason":"too expensive"}`))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("convert", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/api/estimates/:id/convert", h.ConvertEstimate)

		converted := sampleEstimate(entities.EstimateStatusAccepted)
		converted.ConvertedToJobID = "job-1"
		uc.EXPECT().Convert(gomock.Any(), "est-1", "a@b.com").Return(converted, entities.Job{
			ID: "job-1", JobNumber: "JOB-00001", ClientID: "client-1", EstimateID: "est-1",
			Status: entities.JobStatusQuote, PaymentStatus: entities.JobPaymentUnpaid,
		}, nil)

		w := performRequest(r, http.MethodPost, "/api/estimates/est-1/convert", bytes.NewBufferString(`{"client_email":" a@b.com "}`))
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		job, _ := decodeBody(t, w)["job"].(map[string]any)
		if job["job_number"] != "JOB-00001" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("convert twice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/api/estimates/:id/convert", h.ConvertEstimate)

		uc.EXPECT().Convert(gomock.Any(), "est-1", "").Return(entities.Estimate{}, entities.Job{}, lifecycle.ErrAlreadyConverted)

		w := performRequest(r, http.MethodPost, "/api/estimates/est-1/convert", nil)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("convert lead recipient", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateUseCase(ctrl)
		h := NewEstimateHandler(uc)

		r := gin.New()
		r.POST("/api/estimates/:id/convert", h.ConvertEstimate)

		uc.EXPECT().Convert(gomock.Any(), "est-1", "").Return(entities.Estimate{}, entities.Job{}, usecase.ErrEstimateRecipientNotClient)

		w := performRequest(r, http.MethodPost, "/api/estimates/est-1/convert", nil)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestMapEstimateError(t *testing.T) {
	cases := map[string]struct {
		err    error
		status int
		code   string
	}{
		"validation":   {err: &usecase.ValidationError{Errors: []string{"x"}}, status: http.StatusBadRequest, code: "VALIDATION_FAILED"},
		"invalid id":   {err: usecase.ErrInvalidEstimateID, status: http.StatusBadRequest, code: "INVALID_REQUEST"},
		"not found":    {err: usecase.ErrEstimateNotFound, status: http.StatusNotFound, code: "ESTIMATE_NOT_FOUND"},
		"quantity":     {err: pricing.ErrInvalidQuantity, status: http.StatusBadRequest, code: "INVALID_LINE_ITEM"},
		"not expired":  {err: lifecycle.ErrNotExpired, status: http.StatusConflict, code: "ESTIMATE_NOT_EXPIRED"},
		"wrapped":      {err: errors.Join(errors.New("ctx"), usecase.ErrEstimateNotFound), status: http.StatusNotFound, code: "ESTIMATE_NOT_FOUND"},
		"unknown fail": {err: errors.New("boom"), status: http.StatusInternalServerError, code: "INTERNAL_ERROR"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := mapEstimateError(tc.err)
			if got.HTTPStatus != tc.status || got.Code != tc.code {
				t.Fatalf("expected %d/%s, got %d/%s", tc.status, tc.code, got.HTTPStatus, got.Code)
			}
		})
	}
}
