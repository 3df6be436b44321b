package repository

import (
	"context"
	"fmt"
	"sort"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPricebookTableName = "pricebook"
	batchGetLimit             = 100
	maxBatchGetAttempts       = 5
)

type catalogItem struct {
	ID           string `dynamodbav:"id"`
	Code         string `dynamodbav:"code"`
	Name         string `dynamodbav:"name"`
	Category     string `dynamodbav:"category,omitempty"`
	Unit         string `dynamodbav:"unit,omitempty"`
	LaborRate    string `dynamodbav:"labor_rate"`
	MaterialRate string `dynamodbav:"material_rate"`
	Active       bool   `dynamodbav:"active"`
}

// CatalogDynamoRepository reads and writes pricebook entries in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
type CatalogDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICatalogRepository = (*CatalogDynamoRepository)(nil)

func NewCatalogDynamoRepository(ddb *dynamodb.Client) *CatalogDynamoRepository {
	return &CatalogDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PRICEBOOK_TABLE", defaultPricebookTableName),
	}
}

// GetByIDs loads entries in BatchGetItem chunks and retries unprocessed keys a
// bounded number of times.
func (r *CatalogDynamoRepository) GetByIDs(ctx context.Context, ids []string) (map[string]entities.CatalogEntry, error) {
	out := make(map[string]entities.CatalogEntry, len(ids))
	for start := 0; start < len(ids); start += batchGetLimit {
		end := start + batchGetLimit
		if end > len(ids) {
			end = len(ids)
		}
		keys := make([]map[string]types.AttributeValue, 0, end-start)
		for _, id := range ids[start:end] {
			keys = append(keys, idKey(id))
		}

		request := map[string]types.KeysAndAttributes{
			r.tableName: {Keys: keys, ConsistentRead: aws.Bool(true)},
		}
		for attempt := 0; len(request) > 0; attempt++ {
			if attempt == maxBatchGetAttempts {
				return nil, fmt.Errorf("pricebook batch get: unprocessed keys after %d attempts", attempt)
			}
			resp, err := r.ddb.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: request})
			if err != nil {
				return nil, err
			}
			var items []catalogItem
			if err := attributevalue.UnmarshalListOfMaps(resp.Responses[r.tableName], &items); err != nil {
				return nil, err
			}
			for _, it := range items {
				out[it.ID] = fromCatalogItem(it)
			}
			request = resp.UnprocessedKeys
		}
	}
	return out, nil
}

func (r *CatalogDynamoRepository) List(ctx context.Context) ([]entities.CatalogEntry, error) {
	items, err := scanAll[catalogItem](ctx, r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	out := make([]entities.CatalogEntry, 0, len(items))
	for _, it := range items {
		out = append(out, fromCatalogItem(it))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// Put upserts entry.
func (r *CatalogDynamoRepository) Put(ctx context.Context, entry entities.CatalogEntry) error {
	av, err := attributevalue.MarshalMap(toCatalogItem(entry))
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func toCatalogItem(e entities.CatalogEntry) catalogItem {
	return catalogItem{
		ID:           e.ID,
		Code:         e.Code,
		Name:         e.Name,
		Category:     e.Category,
		Unit:         e.Unit,
		LaborRate:    floatToString(e.LaborRate),
		MaterialRate: floatToString(e.MaterialRate),
		Active:       e.Active,
	}
}

func fromCatalogItem(it catalogItem) entities.CatalogEntry {
	return entities.CatalogEntry{
		ID:           it.ID,
		Code:         it.Code,
		Name:         it.Name,
		Category:     it.Category,
		Unit:         it.Unit,
		LaborRate:    parseFloat(it.LaborRate),
		MaterialRate: parseFloat(it.MaterialRate),
		Active:       it.Active,
	}
}
