package repository

import (
	"context"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const (
	defaultJobsTableName = "jobs"
	jobsClientIDIndex    = "client_id-index"
)

type jobItem struct {
	ID            string         `dynamodbav:"id"`
	JobNumber     string         `dynamodbav:"job_number"`
	ClientID      string         `dynamodbav:"client_id"`
	ClientEmail   string         `dynamodbav:"client_email,omitempty"`
	EstimateID    string         `dynamodbav:"estimate_id,omitempty"`
	Title         string         `dynamodbav:"title"`
	Description   string         `dynamodbav:"description,omitempty"`
	LineItems     []lineItemAttr `dynamodbav:"line_items"`
	Subtotal      string         `dynamodbav:"subtotal"`
	TaxAmount     string         `dynamodbav:"tax_amount"`
	Total         string         `dynamodbav:"total"`
	AmountPaid    string         `dynamodbav:"amount_paid"`
	PaymentStatus string         `dynamodbav:"payment_status"`
	Status        string         `dynamodbav:"status"`
	ScheduledDate string         `dynamodbav:"scheduled_date,omitempty"`
	CompletedDate string         `dynamodbav:"completed_date,omitempty"`
	CreatedAt     string         `dynamodbav:"created_at"`
	UpdatedAt     string         `dynamodbav:"updated_at"`
}

// JobDynamoRepository persists Job entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: client_id-index (PK: client_id)
type JobDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IJobRepository = (*JobDynamoRepository)(nil)

func NewJobDynamoRepository(ddb *dynamodb.Client) *JobDynamoRepository {
	return &JobDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("JOBS_TABLE", defaultJobsTableName),
	}
}

func (r *JobDynamoRepository) Create(ctx context.Context, j entities.Job) (entities.Job, error) {
	if err := putNew(ctx, r.ddb, r.tableName, toJobItem(j)); err != nil {
		return entities.Job{}, err
	}
	return j, nil
}

func (r *JobDynamoRepository) GetByID(ctx context.Context, id string) (entities.Job, error) {
	it, ok, err := getItem[jobItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !ok {
		return entities.Job{}, err
	}
	return fromJobItem(it), nil
}

func (r *JobDynamoRepository) Save(ctx context.Context, j entities.Job) (entities.Job, error) {
	ok, err := replaceExisting(ctx, r.ddb, r.tableName, toJobItem(j))
	if err != nil || !ok {
		return entities.Job{}, err
	}
	return j, nil
}

func (r *JobDynamoRepository) ListByClient(ctx context.Context, clientID string) ([]entities.Job, error) {
	items, err := queryIndex[jobItem](ctx, r.ddb, r.tableName, jobsClientIDIndex, "client_id", clientID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Job, 0, len(items))
	for _, it := range items {
		out = append(out, fromJobItem(it))
	}
	return out, nil
}

func toJobItem(j entities.Job) jobItem {
	return jobItem{
		ID:            j.ID,
		JobNumber:     j.JobNumber,
		ClientID:      j.ClientID,
		ClientEmail:   j.ClientEmail,
		EstimateID:    j.EstimateID,
		Title:         j.Title,
		Description:   j.Description,
		LineItems:     toLineItemAttrs(j.LineItems),
		Subtotal:      floatToString(j.Subtotal),
		TaxAmount:     floatToString(j.TaxAmount),
		Total:         floatToString(j.Total),
		AmountPaid:    floatToString(j.AmountPaid),
		PaymentStatus: string(j.PaymentStatus),
		Status:        string(j.Status),
		ScheduledDate: formatTimePtr(j.ScheduledDate),
		CompletedDate: formatTimePtr(j.CompletedDate),
		CreatedAt:     formatTime(j.CreatedAt),
		UpdatedAt:     formatTime(j.UpdatedAt),
	}
}

func fromJobItem(it jobItem) entities.Job {
	return entities.Job{
		ID:            it.ID,
		JobNumber:     it.JobNumber,
		ClientID:      it.ClientID,
		ClientEmail:   it.ClientEmail,
		EstimateID:    it.EstimateID,
		Title:         it.Title,
		Description:   it.Description,
		LineItems:     fromLineItemAttrs(it.LineItems),
		Subtotal:      parseFloat(it.Subtotal),
		TaxAmount:     parseFloat(it.TaxAmount),
		Total:         parseFloat(it.Total),
		AmountPaid:    parseFloat(it.AmountPaid),
		PaymentStatus: entities.JobPaymentStatus(it.PaymentStatus),
		Status:        entities.JobStatus(it.Status),
		ScheduledDate: parseTimePtr(it.ScheduledDate),
		CompletedDate: parseTimePtr(it.CompletedDate),
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
}
