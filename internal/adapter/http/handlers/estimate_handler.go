package handlers

import (
	"context"
	"errors"
	request "fieldservice/internal/adapter/http/dto/request"
	response "fieldservice/internal/adapter/http/dto/response"
	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/lifecycle"
	"fieldservice/internal/domain/pricing"
	"fieldservice/internal/usecase"
	"fieldservice/pkg"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidEstimatePayload = pkg.NewDomainErrorSimple("INVALID_ESTIMATE_INPUT", "Invalid estimate payload", http.StatusBadRequest)
)

// EstimateHandler handles HTTP requests for estimates and their lifecycle.
type EstimateHandler struct {
	usecase usecase.IEstimateUseCase
}

func NewEstimateHandler(uc usecase.IEstimateUseCase) *EstimateHandler {
	return &EstimateHandler{usecase: uc}
}

// ListEstimates lists estimates with their display status.
//
// @Summary  List estimates
// @Tags     estimates
// @Produce  json
// @Param    action  query  string  false  "stats returns the pipeline aggregate instead"
// @Param    q       query  string  false  "search by estimate number or title"
// @Success  200  {array}   response.EstimateResponse
// @Failure  500  {object}  pkg.HTTPError
// @Router   /estimates [get]
func (h *EstimateHandler) ListEstimates(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("action") == "stats" {
		stats, err := h.usecase.Stats(ctx)
		if err != nil {
			writeError(c, mapEstimateError(err))
			return
		}
		c.JSON(http.StatusOK, stats)
		return
	}

	var (
		views []entities.EstimateView
		err   error
	)
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		views, err = h.usecase.Search(ctx, q)
	} else {
		views, err = h.usecase.List(ctx)
	}
	if err != nil {
		log.Printf("[estimate][handler] list failed err=%v", err)
		writeError(c, mapEstimateError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromEstimateViews(views))
}

// CreateEstimate prices and stores a new draft estimate.
//
// @Summary  Create estimate
// @Tags     estimates
// @Accept   json
// @Produce  json
// @Param    body  body  request.EstimateRequest  true  "estimate"
// @Success  201  {object}  response.EstimateResponse
// @Failure  400  {object}  pkg.HTTPError
// @Router   /estimates [post]
func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	draft, ok := bindDraft(c)
	if !ok {
		return
	}

	estimate, err := h.usecase.Create(c.Request.Context(), draft)
	if err != nil {
		log.Printf("[estimate][handler] create failed err=%v", err)
		writeError(c, mapEstimateError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromEstimate(estimate))
}

// @Summary  Get estimate
// @Tags     estimates
// @Produce  json
// @Param    id  path  string  true  "estimate id"
// @Success  200  {object}  response.EstimateResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /estimates/{id} [get]
func (h *EstimateHandler) GetEstimate(c *gin.Context) {
	view, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapEstimateError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromEstimateView(view))
}

// UpdateEstimate replaces the content of a draft or revised estimate.
//
// @Summary  Update estimate
// @Tags     estimates
// @Accept   json
// @Produce  json
// @Param    id    path  string                   true  "estimate id"
// @Param    body  body  request.EstimateRequest  true  "estimate"
// @Success  200  {object}  response.EstimateResponse
// @Failure  400  {object}  pkg.HTTPError
// @Failure  409  {object}  pkg.HTTPError
// @Router   /estimates/{id} [put]
func (h *EstimateHandler) UpdateEstimate(c *gin.Context) {
	draft, ok := bindDraft(c)
	if !ok {
		return
	}

	estimate, err := h.usecase.Update(c.Request.Context(), c.Param("id"), draft)
	if err != nil {
		log.Printf("[estimate][handler] update failed estimate_id=%s err=%v", c.Param("id"), err)
		writeError(c, mapEstimateError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

// PatchEstimate applies a status change through the lifecycle machine.
//
// @Summary  Change estimate status
// @Tags     estimates
// @Accept   json
// @Produce  json
// @Param    id    path  string                        true  "estimate id"
// @Param    body  body  request.EstimatePatchRequest  true  "status"
// @Success  200  {object}  response.EstimateResponse
// @Failure  409  {object}  pkg.HTTPError
// @Router   /estimates/{id} [patch]
func (h *EstimateHandler) PatchEstimate(c *gin.Context) {
	var payload request.EstimatePatchRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidEstimatePayload)
		return
	}

	estimate, err := h.usecase.Patch(c.Request.Context(), c.Param("id"), usecase.EstimatePatch{
		Status:        entities.EstimateStatus(strings.ToLower(strings.TrimSpace(payload.Status))),
		DeclineReason: payload.DeclineReason,
	})
	if err != nil {
		writeError(c, mapEstimateError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromEstimateView(h.usecase.Render(c.Request.Context(), estimate)))
}

// @Summary  Delete estimate
// @Tags     estimates
// @Param    id  path  string  true  "estimate id"
// @Success  204
// @Failure  404  {object}  pkg.HTTPError
// @Router   /estimates/{id} [delete]
func (h *EstimateHandler) DeleteEstimate(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, mapEstimateError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// SendEstimate marks the estimate sent and schedules its follow-up task.
//
// @Summary  Send estimate
// @Tags     estimates
// @Produce  json
// @Param    id  path  string  true  "estimate id"
// @Success  200  {object}  response.EstimateResponse
// @Failure  409  {object}  pkg.HTTPError
// @Router   /estimates/{id}/send [post]
func (h *EstimateHandler) SendEstimate(c *gin.Context) {
	h.transition(c, "send", h.usecase.Send)
}

func (h *EstimateHandler) ViewEstimate(c *gin.Context) {
	h.transition(c, "view", h.usecase.View)
}

func (h *EstimateHandler) AcceptEstimate(c *gin.Context) {
	h.transition(c, "accept", h.usecase.Accept)
}

func (h *EstimateHandler) ReviseEstimate(c *gin.Context) {
	h.transition(c, "revise", h.usecase.Revise)
}

// DeclineEstimate declines with an optional reason.
//
// @Summary  Decline estimate
// @Tags     estimates
// @Accept   json
// @Produce  json
// @Param    id    path  string                  true   "estimate id"
// @Param    body  body  request.DeclineRequest  false  "reason"
// @Success  200  {object}  response.EstimateResponse
// @Failure  409  {object}  pkg.HTTPError
// @Router   /estimates/{id}/decline [post]
func (h *EstimateHandler) DeclineEstimate(c *gin.Context) {
	var payload request.DeclineRequest
	if err := bindOptionalJSON(c, &payload); err != nil {
		writeError(c, errInvalidEstimatePayload)
		return
	}
	h.transition(c, "decline", func(ctx context.Context, id string) (entities.Estimate, error) {
		return h.usecase.Decline(ctx, id, payload.Reason)
	})
}

// ConvertEstimate turns an accepted estimate into a job.
//
// @Summary  Convert estimate to job
// @Tags     estimates
// @Accept   json
// @Produce  json
// @Param    id    path  string                  true   "estimate id"
// @Param    body  body  request.ConvertRequest  false  "client email for the job"
// @Success  201  {object}  response.ConvertResponse
// @Failure  409  {object}  pkg.HTTPError
// @Router   /estimates/{id}/convert [post]
func (h *EstimateHandler) ConvertEstimate(c *gin.Context) {
	var payload request.ConvertRequest
	if err := bindOptionalJSON(c, &payload); err != nil {
		writeError(c, errInvalidEstimatePayload)
		return
	}

	id := c.Param("id")
	log.Printf("[estimate][handler] convert start estimate_id=%s", id)
	estimate, job, err := h.usecase.Convert(c.Request.Context(), id, strings.TrimSpace(payload.ClientEmail))
	if err != nil {
		log.Printf("[estimate][handler] convert failed estimate_id=%s err=%v", id, err)
		writeError(c, mapEstimateError(err))
		return
	}
	c.JSON(http.StatusCreated, response.ConvertResponse{
		Estimate: response.FromEstimate(estimate),
		Job:      response.FromJob(job),
	})
}

func (h *EstimateHandler) transition(
	c *gin.Context,
	name string,
	apply func(ctx context.Context, id string) (entities.Estimate, error),
) {
	id := c.Param("id")
	estimate, err := apply(c.Request.Context(), id)
	if err != nil {
		log.Printf("[estimate][handler] %s failed estimate_id=%s err=%v", name, id, err)
		writeError(c, mapEstimateError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromEstimateView(h.usecase.Render(c.Request.Context(), estimate)))
}

// bindDraft decodes an EstimateRequest and writes the 400 itself on failure.
func bindDraft(c *gin.Context) (entities.EstimateDraft, bool) {
	var payload request.EstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidEstimatePayload)
		return entities.EstimateDraft{}, false
	}
	draft, err := payload.ToDraft()
	if err != nil {
		writeError(c, validationFailed([]string{err.Error()}))
		return entities.EstimateDraft{}, false
	}
	return draft, true
}

func mapEstimateError(err error) *pkg.AppError {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		return validationFailed(verr.Errors)
	case errors.Is(err, usecase.ErrInvalidEstimateID), errors.Is(err, usecase.ErrInvalidEstimateStatus):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, pricing.ErrUnknownCatalogEntry):
		return pkg.NewDomainErrorSimple("UNKNOWN_PRICEBOOK_ENTRY", "Line item references an unknown pricebook entry", http.StatusBadRequest)
	case errors.Is(err, pricing.ErrInvalidQuantity), errors.Is(err, pricing.ErrNegativeMaterial):
		return pkg.NewDomainErrorSimple("INVALID_LINE_ITEM", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Status change not allowed from the current status", http.StatusConflict)
	case errors.Is(err, lifecycle.ErrAlreadyConverted):
		return pkg.NewDomainErrorSimple("ESTIMATE_ALREADY_CONVERTED", "Estimate already converted to a job", http.StatusConflict)
	case errors.Is(err, lifecycle.ErrNotExpired):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_EXPIRED", "Estimate is still valid", http.StatusConflict)
	case errors.Is(err, usecase.ErrEstimateNotEditable):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_EDITABLE", "Only draft or revised estimates can be edited", http.StatusConflict)
	case errors.Is(err, usecase.ErrEstimateRecipientNotClient):
		return pkg.NewDomainErrorSimple("ESTIMATE_RECIPIENT_NOT_CLIENT", "Convert the lead to a client before creating a job", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
