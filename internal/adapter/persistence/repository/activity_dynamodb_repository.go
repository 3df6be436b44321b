package repository

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultActivitiesTableName = "activities"
	activitiesClientIDIndex    = "client_id-index"
)

type activityItem struct {
	ID             string            `dynamodbav:"id"`
	ClientID       string            `dynamodbav:"client_id,omitempty"`
	LeadID         string            `dynamodbav:"lead_id,omitempty"`
	ActivityType   string            `dynamodbav:"activity_type"`
	Title          string            `dynamodbav:"title"`
	Description    string            `dynamodbav:"description,omitempty"`
	RelatedType    string            `dynamodbav:"related_type,omitempty"`
	RelatedID      string            `dynamodbav:"related_id,omitempty"`
	RelatedPayload string            `dynamodbav:"related_payload,omitempty"`
	Metadata       map[string]string `dynamodbav:"metadata,omitempty"`
	DueDate        string            `dynamodbav:"due_date,omitempty"`
	CompletedAt    string            `dynamodbav:"completed_at,omitempty"`
	CreatedAt      string            `dynamodbav:"created_at"`
}

// ActivityDynamoRepository persists client activities and tasks in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: client_id-index (PK: client_id)
//
// The related reference is stored as type, id and a JSON payload with the
// variant-specific fields.
type ActivityDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IActivityRepository = (*ActivityDynamoRepository)(nil)

func NewActivityDynamoRepository(ddb *dynamodb.Client) *ActivityDynamoRepository {
	return &ActivityDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ACTIVITIES_TABLE", defaultActivitiesTableName),
	}
}

func (r *ActivityDynamoRepository) Create(ctx context.Context, a entities.Activity) (entities.Activity, error) {
	it, err := toActivityItem(a)
	if err != nil {
		return entities.Activity{}, err
	}
	if err := putNew(ctx, r.ddb, r.tableName, it); err != nil {
		return entities.Activity{}, err
	}
	return a, nil
}

func (r *ActivityDynamoRepository) GetByID(ctx context.Context, id string) (entities.Activity, error) {
	it, ok, err := getItem[activityItem](ctx, r.ddb, r.tableName, id)
	if err != nil || !ok {
		return entities.Activity{}, err
	}
	return fromActivityItem(it), nil
}

func (r *ActivityDynamoRepository) ListByClient(ctx context.Context, clientID string) ([]entities.Activity, error) {
	items, err := queryIndex[activityItem](ctx, r.ddb, r.tableName, activitiesClientIDIndex, "client_id", clientID)
	if err != nil {
		return nil, err
	}
	return fromActivityItems(items), nil
}

// ListPendingTasks scans for task activities without completed_at.
func (r *ActivityDynamoRepository) ListPendingTasks(ctx context.Context) ([]entities.Activity, error) {
	items, err := scanAll[activityItem](ctx, r.ddb, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("#type = :task AND attribute_not_exists(#completed_at)"),
		ExpressionAttributeNames: map[string]string{
			"#type":         "activity_type",
			"#completed_at": "completed_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":task": &types.AttributeValueMemberS{Value: string(entities.ActivityTask)},
		},
	})
	if err != nil {
		return nil, err
	}
	return fromActivityItems(items), nil
}

func (r *ActivityDynamoRepository) MarkCompleted(ctx context.Context, id string, at time.Time) (entities.Activity, error) {
	return r.update(ctx, id, func() (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #completed_at = :completed_at"
		vals := map[string]types.AttributeValue{
			":completed_at": &types.AttributeValueMemberS{Value: formatTime(at)},
		}
		names := map[string]string{
			"#completed_at": "completed_at",
		}
		return expr, vals, names
	})
}

func (r *ActivityDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteExisting(ctx, r.ddb, r.tableName, id)
}

func (r *ActivityDynamoRepository) update(
	ctx context.Context,
	id string,
	build func() (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Activity, error) {
	updateExpr, values, names := build()

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(id),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.Activity{}, nil
		}
		return entities.Activity{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Activity{}, nil
	}
	var it activityItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Activity{}, err
	}
	return fromActivityItem(it), nil
}

func toActivityItem(a entities.Activity) (activityItem, error) {
	it := activityItem{
		ID:           a.ID,
		ClientID:     a.ClientID,
		LeadID:       a.LeadID,
		ActivityType: string(a.ActivityType),
		Title:        a.Title,
		Description:  a.Description,
		Metadata:     a.Metadata,
		DueDate:      formatTimePtr(a.DueDate),
		CompletedAt:  formatTimePtr(a.CompletedAt),
		CreatedAt:    formatTime(a.CreatedAt),
	}
	if a.Related != nil {
		payload, err := json.Marshal(a.Related)
		if err != nil {
			return activityItem{}, err
		}
		it.RelatedType = string(a.Related.RelatedType())
		it.RelatedID = a.Related.RelatedID()
		it.RelatedPayload = string(payload)
	}
	return it, nil
}

func fromActivityItem(it activityItem) entities.Activity {
	related, err := entities.DecodeRelated(entities.RelatedType(it.RelatedType), it.RelatedID, []byte(it.RelatedPayload))
	if err != nil {
		log.Printf("[activity][repository] related payload decode failed activity_id=%s err=%v", it.ID, err)
	}
	return entities.Activity{
		ID:           it.ID,
		ClientID:     it.ClientID,
		LeadID:       it.LeadID,
		ActivityType: entities.ActivityType(it.ActivityType),
		Title:        it.Title,
		Description:  it.Description,
		Related:      related,
		Metadata:     it.Metadata,
		DueDate:      parseTimePtr(it.DueDate),
		CompletedAt:  parseTimePtr(it.CompletedAt),
		CreatedAt:    parseTime(it.CreatedAt),
	}
}

func fromActivityItems(items []activityItem) []entities.Activity {
	out := make([]entities.Activity, 0, len(items))
	for _, it := range items {
		out = append(out, fromActivityItem(it))
	}
	return out
}
