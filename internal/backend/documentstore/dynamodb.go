package documentstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jo-hoe/colorstash/internal/common"
)

// dynamoAPI is the subset of *dynamodb.Client the store calls.
type dynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	dynamodb.ScanAPIClient
}

type DynamoDBStore struct {
	client    dynamoAPI
	tableName string
	now       func() time.Time
}

// NewDynamoDBStore resolves credentials and region from the default AWS chain;
// Region and Endpoint in cfg override it.
func NewDynamoDBStore(ctx context.Context, cfg Config) (*DynamoDBStore, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return newDynamoDBStore(client, cfg.TableName), nil
}

func newDynamoDBStore(client dynamoAPI, tableName string) *DynamoDBStore {
	return &DynamoDBStore{
		client:    client,
		tableName: tableName,
		now:       time.Now,
	}
}

func (s *DynamoDBStore) InsertColor(ctx context.Context, color common.Color) error {
	item, err := attributevalue.MarshalMap(newItem(color, s.now()))
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put %s into %s: %w", color, s.tableName, err)
	}
	return nil
}

// CountByColor scans the whole table; it exists for verification, not for
// the request path.
func (s *DynamoDBStore) CountByColor(ctx context.Context, color common.Color) (int, error) {
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName:        aws.String(s.tableName),
		Select:           types.SelectCount,
		FilterExpression: aws.String("r = :r and g = :g and b = :b"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":r": numberValue(color.R),
			":g": numberValue(color.G),
			":b": numberValue(color.B),
		},
	})

	count := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to scan %s: %w", s.tableName, err)
		}
		count += int(page.Count)
	}
	return count, nil
}

func (s *DynamoDBStore) Close() error {
	return nil
}

func numberValue(v uint8) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.Itoa(int(v))}
}
