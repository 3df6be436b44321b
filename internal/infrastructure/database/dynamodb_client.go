package database

import (
	"context"
	"fmt"
	"log"

	"fieldservice/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// ConnectDynamoDB creates a DynamoDB client from cfg and exits the process when
// the SDK configuration cannot be loaded.
func ConnectDynamoDB(ctx context.Context, cfg config.AWSConfig) *dynamodb.Client {
	client, err := NewDynamoDBClient(ctx, cfg)
	if err != nil {
		log.Fatalf("[database] failed to create dynamodb client: %v", err)
	}
	return client
}

// NewDynamoDBClient builds the client. Static credentials are always set since
// DynamoDB Local ignores them but the SDK still requires some.
func NewDynamoDBClient(ctx context.Context, cfg config.AWSConfig) (*dynamodb.Client, error) {
	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	var opts []func(*dynamodb.Options)
	if cfg.DynamoDBEndpoint != "" {
		log.Printf("[database] using dynamodb endpoint=%s", cfg.DynamoDBEndpoint)
		opts = append(opts, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		})
	}
	return dynamodb.NewFromConfig(awsCfg, opts...), nil
}
