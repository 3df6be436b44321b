package handlers

import (
	"encoding/json"
	"errors"
	request "fieldservice/internal/adapter/http/dto/request"
	response "fieldservice/internal/adapter/http/dto/response"
	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/lifecycle"
	"fieldservice/internal/usecase"
	"fieldservice/pkg"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// JobHandler serves jobs and the payments recorded against them.
type JobHandler struct {
	jobs     usecase.IJobUseCase
	payments usecase.IPaymentUseCase
}

func NewJobHandler(jobs usecase.IJobUseCase, payments usecase.IPaymentUseCase) *JobHandler {
	return &JobHandler{jobs: jobs, payments: payments}
}

// @Summary  Get job
// @Tags     jobs
// @Produce  json
// @Param    id  path  string  true  "job id"
// @Success  200  {object}  response.JobResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobs.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromJob(job))
}

// @Summary  List a client's jobs
// @Tags     jobs
// @Produce  json
// @Param    client_id  path  string  true  "client id"
// @Success  200  {array}  response.JobResponse
// @Router   /clients/{client_id}/jobs [get]
func (h *JobHandler) ListClientJobs(c *gin.Context) {
	jobs, err := h.jobs.ListByClient(c.Request.Context(), c.Param("client_id"))
	if err != nil {
		writeError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromJobs(jobs))
}

// UpdateJobStatus moves a job through its status machine. Completing a job
// schedules its follow-up tasks.
//
// @Summary  Change job status
// @Tags     jobs
// @Accept   json
// @Produce  json
// @Param    id    path  string                    true  "job id"
// @Param    body  body  request.JobStatusRequest  true  "status"
// @Success  200  {object}  response.JobResponse
// @Failure  409  {object}  pkg.HTTPError
// @Router   /jobs/{id}/status [patch]
func (h *JobHandler) UpdateJobStatus(c *gin.Context) {
	var payload request.JobStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest))
		return
	}

	id := c.Param("id")
	status := entities.JobStatus(strings.ToLower(strings.TrimSpace(payload.Status)))
	job, err := h.jobs.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		log.Printf("[job][handler] status update failed job_id=%s status=%s err=%v", id, status, err)
		writeError(c, mapJobError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromJob(job))
}

// RecordPayment records a payment; method mercadopago charges through the gateway first.
//
// @Summary  Record a job payment
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    id    path  string                  true  "job id"
// @Param    body  body  request.PaymentRequest  true  "payment"
// @Success  201  {object}  response.PaymentResponse
// @Failure  400  {object}  pkg.HTTPError
// @Failure  409  {object}  pkg.HTTPError
// @Router   /jobs/{id}/payments [post]
func (h *JobHandler) RecordPayment(c *gin.Context) {
	jobID := c.Param("id")
	log.Printf("[payment][handler] record start job_id=%s", jobID)

	var payload request.PaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[payment][handler] invalid payload job_id=%s err=%v", jobID, err)
		writeError(c, pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest))
		return
	}
	in, err := payload.ToInput(jobID)
	if err != nil {
		writeError(c, pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest))
		return
	}
	if len(in.ProviderPayload) > 0 && !json.Valid(in.ProviderPayload) {
		writeError(c, pkg.NewDomainErrorSimple("INVALID_REQUEST", "mp_payload is not valid json", http.StatusBadRequest))
		return
	}

	created, err := h.payments.Record(c.Request.Context(), in)
	if err != nil {
		log.Printf("[payment][handler] record failed job_id=%s err=%v", jobID, err)
		writeError(c, mapPaymentError(err))
		return
	}
	log.Printf("[payment][handler] record success job_id=%s payment_id=%s", jobID, created.ID)
	c.JSON(http.StatusCreated, response.FromPayment(created))
}

// @Summary  List job payments
// @Tags     payments
// @Produce  json
// @Param    id  path  string  true  "job id"
// @Success  200  {array}  response.PaymentResponse
// @Router   /jobs/{id}/payments [get]
func (h *JobHandler) ListPayments(c *gin.Context) {
	payments, err := h.payments.ListByJobID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(payments))
}

func mapJobError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidJobID), errors.Is(err, usecase.ErrInvalidJobStatus), errors.Is(err, usecase.ErrInvalidClientID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrJobNotFound):
		return pkg.NewDomainErrorSimple("JOB_NOT_FOUND", "Job not found", http.StatusNotFound)
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Status change not allowed from the current status", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidJobID), errors.Is(err, usecase.ErrInvalidPaymentAmount),
		errors.Is(err, usecase.ErrInvalidPaymentMethod), errors.Is(err, usecase.ErrInvalidProviderPayload),
		errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrPaymentNotApproved):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_APPROVED", "Payment was not approved by the provider", http.StatusPaymentRequired)
	case errors.Is(err, usecase.ErrJobNotFound):
		return pkg.NewDomainErrorSimple("JOB_NOT_FOUND", "Job not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrJobNotPayable):
		return pkg.NewDomainErrorSimple("JOB_NOT_PAYABLE", "Cancelled jobs cannot receive payments", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
