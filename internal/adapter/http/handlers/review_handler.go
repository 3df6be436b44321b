package handlers

import (
	"errors"
	request "fieldservice/internal/adapter/http/dto/request"
	response "fieldservice/internal/adapter/http/dto/response"
	"fieldservice/internal/usecase"
	"fieldservice/pkg"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReviewHandler exposes the quick validation and the advisory AI review.
type ReviewHandler struct {
	usecase usecase.IReviewUseCase
}

func NewReviewHandler(uc usecase.IReviewUseCase) *ReviewHandler {
	return &ReviewHandler{usecase: uc}
}

// ValidateEstimate runs the deterministic checks. It always answers 200 with
// the list of problems, empty when the draft can be saved.
//
// @Summary  Quick-validate an estimate draft
// @Tags     review
// @Accept   json
// @Produce  json
// @Param    body  body  request.EstimateRequest  true  "estimate draft"
// @Success  200  {object}  response.ValidationResponse
// @Router   /estimates/validate [post]
func (h *ReviewHandler) ValidateEstimate(c *gin.Context) {
	var payload request.EstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidEstimatePayload)
		return
	}
	draft, err := payload.ToDraft()
	if err != nil {
		c.JSON(http.StatusOK, response.NewValidationResponse([]string{err.Error()}))
		return
	}
	c.JSON(http.StatusOK, response.NewValidationResponse(h.usecase.Validate(draft)))
}

// ReviewEstimate asks the AI advisor for a critique. Failures never block saving.
//
// @Summary  AI review of an estimate draft
// @Tags     review
// @Accept   json
// @Produce  json
// @Param    body  body  request.EstimateRequest  true  "estimate draft"
// @Success  200  {object}  entities.EstimateReview
// @Failure  400  {object}  pkg.HTTPError
// @Failure  502  {object}  pkg.HTTPError
// @Failure  503  {object}  pkg.HTTPError
// @Router   /estimates/review [post]
func (h *ReviewHandler) ReviewEstimate(c *gin.Context) {
	draft, ok := bindDraft(c)
	if !ok {
		return
	}

	review, err := h.usecase.Review(c.Request.Context(), draft)
	if err != nil {
		log.Printf("[review][handler] review failed err=%v", err)
		writeError(c, mapReviewError(err))
		return
	}
	c.JSON(http.StatusOK, review)
}

func mapReviewError(err error) *pkg.AppError {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		return validationFailed(verr.Errors)
	case errors.Is(err, usecase.ErrReviewUnavailable):
		return pkg.NewDomainErrorSimple("REVIEW_FAILED", "Estimate review is not available", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrReviewFailed):
		return pkg.NewDomainError("REVIEW_FAILED", "Estimate review failed", err, http.StatusBadGateway)
	default:
		// pricing the draft fails the same way saving it would
		return mapEstimateError(err)
	}
}
