package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/domain/lifecycle"
	"fieldservice/internal/domain/pricing"
	"fieldservice/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrPaymentNotFound                = errors.New("payment not found")
	ErrInvalidPaymentID               = errors.New("invalid payment id")
	ErrInvalidPaymentAmount           = errors.New("payment amount must be greater than zero")
	ErrInvalidPaymentMethod           = errors.New("invalid payment method")
	ErrInvalidProviderPayload         = errors.New("invalid mercado pago payload")
	ErrJobNotPayable                  = errors.New("cancelled jobs cannot receive payments")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentNotApproved             = errors.New("payment not approved by provider")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// RecordPaymentInput is a payment to record against a job.
type RecordPaymentInput struct {
	JobID           string
	Amount          float64
	Method          entities.PaymentMethod
	Date            time.Time
	Notes           string
	ProviderPayload json.RawMessage
}

// IPaymentUseCase records job payments and keeps the job payment status current.
type IPaymentUseCase interface {
	Record(ctx context.Context, in RecordPaymentInput) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByJobID(ctx context.Context, jobID string) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	repo         interfaces.IPaymentRepository
	jobRepo      interfaces.IJobRepository
	gateway      interfaces.IPaymentGateway
	activities   IActivityUseCase
	sandboxPayer string
	now          func() time.Time
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

// NewPaymentUseCase builds the use case. sandboxPayer is the payer email used for
// Mercado Pago sandbox payments that arrive without a payer; it may be empty.
func NewPaymentUseCase(repo interfaces.IPaymentRepository, jobRepo interfaces.IJobRepository, gateway interfaces.IPaymentGateway, activities IActivityUseCase, sandboxPayer string) *PaymentUseCase {
	return &PaymentUseCase{
		repo:         repo,
		jobRepo:      jobRepo,
		gateway:      gateway,
		activities:   activities,
		sandboxPayer: strings.TrimSpace(sandboxPayer),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (u *PaymentUseCase) Record(ctx context.Context, in RecordPaymentInput) (entities.Payment, error) {
	in.JobID = strings.TrimSpace(in.JobID)
	log.Printf("[payment][usecase] record start job_id=%q amount=%.2f method=%s", in.JobID, in.Amount, in.Method)
	if in.JobID == "" {
		return entities.Payment{}, ErrInvalidJobID
	}
	if in.Amount <= 0 {
		return entities.Payment{}, ErrInvalidPaymentAmount
	}
	if _, ok := entities.ParsePaymentMethod(string(in.Method)); !ok {
		return entities.Payment{}, ErrInvalidPaymentMethod
	}

	job, err := u.jobRepo.GetByID(ctx, in.JobID)
	if err != nil {
		log.Printf("[payment][usecase] failed loading job job_id=%s err=%v", in.JobID, err)
		return entities.Payment{}, err
	}
	if job.ID == "" {
		return entities.Payment{}, ErrJobNotFound
	}
	if job.Status == entities.JobStatusCancelled {
		return entities.Payment{}, ErrJobNotPayable
	}

	p := entities.Payment{
		ID:     uuid.NewString(),
		JobID:  job.ID,
		Amount: pricing.Round2(in.Amount),
		Method: in.Method,
		Date:   in.Date,
		Notes:  strings.TrimSpace(in.Notes),
	}
	if p.Date.IsZero() {
		p.Date = u.now()
	}

	if in.Method == entities.PaymentMethodMercadoPago {
		if err := u.chargeProvider(ctx, job, &p, in.ProviderPayload); err != nil {
			return entities.Payment{}, err
		}
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[payment][usecase] payment repository create failed job_id=%s payment_id=%s err=%v", job.ID, p.ID, err)
		return entities.Payment{}, err
	}

	job.AmountPaid = pricing.Round2(job.AmountPaid + created.Amount)
	job.PaymentStatus = lifecycle.DerivePaymentStatus(job.Total, job.AmountPaid)
	job.UpdatedAt = u.now()
	if _, err := u.jobRepo.Save(ctx, job); err != nil {
		log.Printf("[payment][usecase] job payment status update failed job_id=%s payment_id=%s err=%v", job.ID, created.ID, err)
		return entities.Payment{}, err
	}
	log.Printf("[payment][usecase] record success job_id=%s payment_id=%s amount_paid=%.2f payment_status=%s", job.ID, created.ID, job.AmountPaid, job.PaymentStatus)

	if u.activities != nil {
		_, err := u.activities.Create(ctx, entities.Activity{
			ClientID:     job.ClientID,
			ActivityType: entities.ActivityPaymentReceived,
			Title:        fmt.Sprintf("Payment of %.2f received for job %s", created.Amount, job.JobNumber),
			Related:      entities.PaymentRef{PaymentID: created.ID, JobID: job.ID, Amount: created.Amount, Method: string(created.Method)},
		})
		if err != nil {
			log.Printf("[payment][usecase] activity log failed payment_id=%s err=%v", created.ID, err)
		}
	}
	return created, nil
}

// chargeProvider sends the payment to Mercado Pago. The job is the source of
// truth for the reference and the amount charged.
func (u *PaymentUseCase) chargeProvider(ctx context.Context, job entities.Job, p *entities.Payment, payload json.RawMessage) error {
	if u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured job_id=%s", job.ID)
		return ErrPaymentGatewayNotConfigured
	}
	if len(payload) == 0 || !json.Valid(payload) {
		return ErrInvalidProviderPayload
	}

	var reqMap map[string]any
	if err := json.Unmarshal(payload, &reqMap); err != nil || reqMap == nil {
		return ErrInvalidProviderPayload
	}
	if !hasNonEmptyString(reqMap, "payment_method_id") {
		log.Printf("[payment][usecase] missing payment_method_id job_id=%s", job.ID)
		return ErrInvalidProviderPayload
	}
	ensurePayerDefaults(reqMap, u.sandboxPayer)
	if !hasPayer(reqMap) {
		log.Printf("[payment][usecase] missing/invalid payer job_id=%s", job.ID)
		return ErrInvalidProviderPayload
	}
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = job.ID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Job %s", job.JobNumber)
	}
	reqMap["transaction_amount"] = p.Amount

	body, err := json.Marshal(reqMap)
	if err != nil {
		return err
	}

	log.Printf("[payment][usecase] calling payment gateway job_id=%s", job.ID)
	providerID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, body)
	if err != nil {
		log.Printf("[payment][usecase] payment gateway failed job_id=%s err=%v", job.ID, err)
		return classifyGatewayError(err)
	}
	if !strings.EqualFold(providerStatus, "approved") {
		log.Printf("[payment][usecase] payment not approved job_id=%s provider_payment_id=%s provider_status=%s", job.ID, providerID, providerStatus)
		return fmt.Errorf("%w: status %s", ErrPaymentNotApproved, providerStatus)
	}

	p.ProviderPaymentID = providerID
	p.ProviderPayloadRaw = providerResp
	var parsed map[string]any
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Printf("[payment][usecase] provider response unmarshal failed job_id=%s err=%v", job.ID, err)
	}
	p.ProviderPayload = parsed
	return nil
}

func classifyGatewayError(err error) error {
	switch {
	case isGatewayCustomerNotFound(err):
		return ErrPaymentGatewayCustomerNotFound
	case isGatewayInvalidUsers(err):
		return ErrPaymentGatewayInvalidUsers
	case isGatewayUnauthorized(err):
		return ErrPaymentGatewayUnauthorized
	case isGatewayBadRequest(err):
		return ErrPaymentGatewayBadRequest
	}
	return err
}

func hasNonEmptyString(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	v, ok := m["payer"]
	if !ok {
		return false
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

// ensurePayerDefaults fills payer.type and, when neither id nor email is set,
// the sandbox payer email.
func ensurePayerDefaults(m map[string]any, sandboxEmail string) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	if !hasPayerID(payer) && !hasNonEmptyString(payer, "email") && sandboxEmail != "" {
		payer["email"] = sandboxEmail
	}
}

func isGatewayBadRequest(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}

func isGatewayInvalidUsers(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034")
}

func isGatewayCustomerNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002")
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentUseCase) ListByJobID(ctx context.Context, jobID string) ([]entities.Payment, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, ErrInvalidJobID
	}
	return u.repo.ListByJobID(ctx, jobID)
}
