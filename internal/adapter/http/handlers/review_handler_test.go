package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"

	"fieldservice/internal/adapter/http/handlers/mocks"
	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/pricing"
	"fieldservice/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestReviewHandler_ValidateEstimate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("valid draft", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIReviewUseCase(ctrl)
		h := NewReviewHandler(uc)

		r := gin.New()
		r.POST("/api/estimates/validate", h.ValidateEstimate)

		uc.EXPECT().Validate(gomock.Any()).Return(nil)

		w := performRequest(r, http.MethodPost, "/api/estimates/validate", bytes.NewBufferString(validEstimateBody))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["valid"] != true {
			t.Fatalf("expected valid, got %s", w.Body.String())
		}
		if errs, _ := body["errors"].([]any); len(errs) != 0 {
			t.Fatalf("expected empty errors, got %v", errs)
		}
	})

	t.Run("problems are still 200", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIReviewUseCase(ctrl)
		h := NewReviewHandler(uc)

		r := gin.New()
		r.POST("/api/estimates/validate", h.ValidateEstimate)

		uc.EXPECT().Validate(gomock.Any()).Return([]string{"Title is required"})

		w := performRequest(r, http.MethodPost, "/api/estimates/validate", bytes.NewBufferString(`{"client_id":"c"}`))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if decodeBody(t, w)["valid"] != false {
			t.Fatalf("expected invalid, got %s", w.Body.String())
		}
	})

	t.Run("bad date is reported without calling the usecase", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIReviewUseCase(ctrl)
		h := NewReviewHandler(uc)

		r := gin.New()
		r.POST("/api/estimates/validate", h.ValidateEstimate)

		w := performRequest(r, http.MethodPost, "/api/estimates/validate", bytes.NewBufferString(`{"client_id":"c","valid_until":"next week"}`))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if errs, _ := decodeBody(t, w)["errors"].([]any); len(errs) != 1 {
			t.Fatalf("expected one error, got %s", w.Body.String())
		}
	})
}

func TestReviewHandler_ReviewEstimate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := map[string]struct {
		err    error
		status int
	}{
		"not configured":  {err: usecase.ErrReviewUnavailable, status: http.StatusServiceUnavailable},
		"upstream failed": {err: fmt.Errorf("%w: timeout", usecase.ErrReviewFailed), status: http.StatusBadGateway},
		"invalid draft":   {err: &usecase.ValidationError{Errors: []string{"Title is required"}}, status: http.StatusBadRequest},
		"unknown service": {err: fmt.Errorf("line 1: %w", pricing.ErrUnknownCatalogEntry), status: http.StatusBadRequest},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockIReviewUseCase(ctrl)
			h := NewReviewHandler(uc)

			r := gin.New()
			r.POST("/api/estimates/review", h.ReviewEstimate)

			uc.EXPECT().Review(gomock.Any(), gomock.Any()).Return(entities.EstimateReview{}, tc.err)

			w := performRequest(r, http.MethodPost, "/api/estimates/review", bytes.NewBufferString(validEstimateBody))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
		})
	}

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIReviewUseCase(ctrl)
		h := NewReviewHandler(uc)

		r := gin.New()
		r.POST("/api/estimates/review", h.ReviewEstimate)

		uc.EXPECT().Review(gomock.Any(), gomock.Any()).Return(entities.EstimateReview{
			OverallAssessment: "Reasonable",
			Warnings:          []string{},
			Suggestions:       []string{"Add a warranty line"},
		}, nil)

		w := performRequest(r, http.MethodPost, "/api/estimates/review", bytes.NewBufferString(validEstimateBody))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if decodeBody(t, w)["overall_assessment"] != "Reasonable" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}
