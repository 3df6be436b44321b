package repository

import (
	"context"
	"fmt"
	"strings"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultEstimatesTableName = "estimates"

type estimateItem struct {
	ID                 string         `dynamodbav:"id"`
	EstimateNumber     string         `dynamodbav:"estimate_number"`
	ClientID           string         `dynamodbav:"client_id,omitempty"`
	LeadID             string         `dynamodbav:"lead_id,omitempty"`
	Title              string         `dynamodbav:"title"`
	Description        string         `dynamodbav:"description,omitempty"`
	LineItems          []lineItemAttr `dynamodbav:"line_items"`
	TaxRate            string         `dynamodbav:"tax_rate"`
	DiscountAmount     string         `dynamodbav:"discount_amount"`
	Subtotal           string         `dynamodbav:"subtotal"`
	TaxAmount          string         `dynamodbav:"tax_amount"`
	Total              string         `dynamodbav:"total"`
	PricingMode        string         `dynamodbav:"pricing_mode,omitempty"`
	AppliedMinimum     bool           `dynamodbav:"applied_minimum"`
	ValidUntil         string         `dynamodbav:"valid_until,omitempty"`
	PaymentTerms       string         `dynamodbav:"payment_terms,omitempty"`
	TermsAndConditions string         `dynamodbav:"terms_and_conditions,omitempty"`
	Notes              string         `dynamodbav:"notes,omitempty"`
	Status             string         `dynamodbav:"status"`
	SentDate           string         `dynamodbav:"sent_date,omitempty"`
	ViewedDate         string         `dynamodbav:"viewed_date,omitempty"`
	AcceptedDate       string         `dynamodbav:"accepted_date,omitempty"`
	DeclinedDate       string         `dynamodbav:"declined_date,omitempty"`
	DeclineReason      string         `dynamodbav:"decline_reason,omitempty"`
	ExpiredDate        string         `dynamodbav:"expired_date,omitempty"`
	ConvertedToJobID   string         `dynamodbav:"converted_to_job_id,omitempty"`
	SearchText         string         `dynamodbav:"search_text"`
	CreatedAt          string         `dynamodbav:"created_at"`
	UpdatedAt          string         `dynamodbav:"updated_at"`
}

// lineItemAttr is the stored shape of a line item on estimates and jobs.
// Records written before unit_price existed carry price instead.
type lineItemAttr struct {
	Description  string `dynamodbav:"description"`
	Quantity     string `dynamodbav:"quantity"`
	UnitPrice    string `dynamodbav:"unit_price,omitempty"`
	Price        string `dynamodbav:"price,omitempty"`
	Unit         string `dynamodbav:"unit,omitempty"`
	ServiceID    string `dynamodbav:"service_id,omitempty"`
	MaterialCost string `dynamodbav:"material_cost,omitempty"`
	Tier         string `dynamodbav:"tier,omitempty"`
	Total        string `dynamodbav:"total,omitempty"`
	Code         string `dynamodbav:"code,omitempty"`
}

// EstimateDynamoRepository persists Estimate entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// search_text holds the lowercased number and title so Search can filter with
// contains() without a secondary search engine.
type EstimateDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IEstimateRepository = (*EstimateDynamoRepository)(nil)

func NewEstimateDynamoRepository(ddb *dynamodb.Client) *EstimateDynamoRepository {
	return &EstimateDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ESTIMATES_TABLE", defaultEstimatesTableName),
	}
}

func (r *EstimateDynamoRepository) Create(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	if err := putNew(ctx, r.ddb, r.tableName, toEstimateItem(e)); err != nil {
		return entities.Estimate{}, err
	}
	return e, nil
}

func (r *EstimateDynamoRepository) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	it, ok, err := getItem[estimateItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !ok {
		return entities.Estimate{}, err
	}
	return fromEstimateItem(it), nil
}

func (r *EstimateDynamoRepository) Save(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	ok, err := replaceExisting(ctx, r.ddb, r.tableName, toEstimateItem(e))
	if err != nil || !ok {
		return entities.Estimate{}, err
	}
	return e, nil
}

func (r *EstimateDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteExisting(ctx, r.ddb, r.tableName, id)
}

func (r *EstimateDynamoRepository) List(ctx context.Context) ([]entities.Estimate, error) {
	items, err := scanAll[estimateItem](ctx, r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	return fromEstimateItems(items), nil
}

func (r *EstimateDynamoRepository) Search(ctx context.Context, query string) ([]entities.Estimate, error) {
	items, err := scanAll[estimateItem](ctx, r.ddb, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("contains(#search, :q)"),
		ExpressionAttributeNames: map[string]string{
			"#search": "search_text",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":q": &types.AttributeValueMemberS{Value: strings.ToLower(strings.TrimSpace(query))},
		},
	})
	if err != nil {
		return nil, err
	}
	return fromEstimateItems(items), nil
}

func (r *EstimateDynamoRepository) ListByStatus(ctx context.Context, statuses ...entities.EstimateStatus) ([]entities.Estimate, error) {
	if len(statuses) == 0 {
		return r.List(ctx)
	}
	placeholders := make([]string, 0, len(statuses))
	values := make(map[string]types.AttributeValue, len(statuses))
	for i, s := range statuses {
		ph := fmt.Sprintf(":s%d", i)
		placeholders = append(placeholders, ph)
		values[ph] = &types.AttributeValueMemberS{Value: string(s)}
	}
	items, err := scanAll[estimateItem](ctx, r.ddb, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String(fmt.Sprintf("#status IN (%s)", strings.Join(placeholders, ", "))),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: values,
	})
	if err != nil {
		return nil, err
	}
	return fromEstimateItems(items), nil
}

func toEstimateItem(e entities.Estimate) estimateItem {
	return estimateItem{
		ID:                 e.ID,
		EstimateNumber:     e.EstimateNumber,
		ClientID:           e.Recipient.ClientID(),
		LeadID:             e.Recipient.LeadID(),
		Title:              e.Title,
		Description:        e.Description,
		LineItems:          toLineItemAttrs(e.LineItems),
		TaxRate:            floatToString(e.TaxRate),
		DiscountAmount:     floatToString(e.DiscountAmount),
		Subtotal:           floatToString(e.Subtotal),
		TaxAmount:          floatToString(e.TaxAmount),
		Total:              floatToString(e.Total),
		PricingMode:        string(e.PricingMode),
		AppliedMinimum:     e.AppliedMinimum,
		ValidUntil:         formatTimePtr(e.ValidUntil),
		PaymentTerms:       e.PaymentTerms,
		TermsAndConditions: e.TermsAndConditions,
		Notes:              e.Notes,
		Status:             string(e.Status),
		SentDate:           formatTimePtr(e.SentDate),
		ViewedDate:         formatTimePtr(e.ViewedDate),
		AcceptedDate:       formatTimePtr(e.AcceptedDate),
		DeclinedDate:       formatTimePtr(e.DeclinedDate),
		DeclineReason:      e.DeclineReason,
		ExpiredDate:        formatTimePtr(e.ExpiredDate),
		ConvertedToJobID:   e.ConvertedToJobID,
		SearchText:         strings.ToLower(e.EstimateNumber + " " + e.Title),
		CreatedAt:          formatTime(e.CreatedAt),
		UpdatedAt:          formatTime(e.UpdatedAt),
	}
}

func fromEstimateItem(it estimateItem) entities.Estimate {
	var recipient entities.Recipient
	switch {
	case it.ClientID != "":
		recipient = entities.ClientRecipient(it.ClientID)
	case it.LeadID != "":
		recipient = entities.LeadRecipient(it.LeadID)
	}
	mode := entities.PricingMode(it.PricingMode)
	if mode == "" {
		mode = entities.PricingModeManual
	}
	return entities.Estimate{
		ID:                 it.ID,
		EstimateNumber:     it.EstimateNumber,
		Recipient:          recipient,
		Title:              it.Title,
		Description:        it.Description,
		LineItems:          fromLineItemAttrs(it.LineItems),
		TaxRate:            parseFloat(it.TaxRate),
		DiscountAmount:     parseFloat(it.DiscountAmount),
		Subtotal:           parseFloat(it.Subtotal),
		TaxAmount:          parseFloat(it.TaxAmount),
		Total:              parseFloat(it.Total),
		PricingMode:        mode,
		AppliedMinimum:     it.AppliedMinimum,
		ValidUntil:         parseTimePtr(it.ValidUntil),
		PaymentTerms:       it.PaymentTerms,
		TermsAndConditions: it.TermsAndConditions,
		Notes:              it.Notes,
		Status:             entities.EstimateStatus(it.Status),
		SentDate:           parseTimePtr(it.SentDate),
		ViewedDate:         parseTimePtr(it.ViewedDate),
		AcceptedDate:       parseTimePtr(it.AcceptedDate),
		DeclinedDate:       parseTimePtr(it.DeclinedDate),
		DeclineReason:      it.DeclineReason,
		ExpiredDate:        parseTimePtr(it.ExpiredDate),
		ConvertedToJobID:   it.ConvertedToJobID,
		CreatedAt:          parseTime(it.CreatedAt),
		UpdatedAt:          parseTime(it.UpdatedAt),
	}
}

func fromEstimateItems(items []estimateItem) []entities.Estimate {
	out := make([]entities.Estimate, 0, len(items))
	for _, it := range items {
		out = append(out, fromEstimateItem(it))
	}
	return out
}

func toLineItemAttrs(items []entities.LineItem) []lineItemAttr {
	out := make([]lineItemAttr, 0, len(items))
	for _, li := range items {
		a := lineItemAttr{
			Description: li.Description,
			Quantity:    floatToString(li.Quantity),
			UnitPrice:   floatToString(li.UnitPrice),
			Unit:        li.Unit,
			ServiceID:   li.ServiceID,
			Tier:        string(li.Tier),
			Code:        li.Code,
		}
		if li.MaterialCost != nil {
			a.MaterialCost = floatToString(*li.MaterialCost)
		}
		if li.Total != nil {
			a.Total = floatToString(*li.Total)
		}
		out = append(out, a)
	}
	return out
}

func fromLineItemAttrs(attrs []lineItemAttr) []entities.LineItem {
	out := make([]entities.LineItem, 0, len(attrs))
	for _, a := range attrs {
		price := a.UnitPrice
		if price == "" {
			price = a.Price
		}
		li := entities.LineItem{
			Description: a.Description,
			Quantity:    parseFloat(a.Quantity),
			UnitPrice:   parseFloat(price),
			Unit:        a.Unit,
			ServiceID:   a.ServiceID,
			Tier:        entities.Tier(a.Tier),
			Code:        a.Code,
		}
		if a.MaterialCost != "" {
			v := parseFloat(a.MaterialCost)
			li.MaterialCost = &v
		}
		if a.Total != "" {
			v := parseFloat(a.Total)
			li.Total = &v
		}
		out = append(out, li)
	}
	return out
}
