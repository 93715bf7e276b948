package bounce

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ignite/mailgate/internal/domain"
)

// dynamoAPI is the slice of the DynamoDB client the store uses.
type dynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// DynamoStore implements Store against a DynamoDB table. Records are keyed
// PK = address (verbatim, case-sensitive), SK = domain.BounceCategory. The
// numeric suppressed_until attribute doubles as the table's TTL attribute,
// so DynamoDB garbage-collects expired records; the store never filters on
// the deadline itself.
type DynamoStore struct {
	client dynamoAPI
	table  string
}

// NewDynamoStore creates a DynamoDB-backed bounce store.
func NewDynamoStore(ctx context.Context, table, region, profile string) (*DynamoStore, error) {
	var cfg aws.Config
	var err error

	if profile != "" {
		cfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(region),
			awsconfig.WithSharedConfigProfile(profile),
		)
	} else {
		cfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &DynamoStore{
		client: dynamodb.NewFromConfig(cfg),
		table:  table,
	}, nil
}

func (s *DynamoStore) key(address string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: address},
		"SK": &types.AttributeValueMemberS{Value: domain.BounceCategory},
	}
}

// Get returns the bounce record for the address, or nil if none exists.
func (s *DynamoStore) Get(ctx context.Context, address string) (*domain.BounceRecord, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       s.key(address),
	})
	if err != nil {
		return nil, fmt.Errorf("getting item from DynamoDB: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var rec domain.BounceRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshaling bounce record: %w", err)
	}
	return &rec, nil
}

// Refresh sets suppressed_until via an update expression. UpdateItem creates
// the item when absent, which gives Refresh its create-if-absent semantics.
func (s *DynamoStore) Refresh(ctx context.Context, address string, until int64) error {
	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(s.table),
		Key:              s.key(address),
		UpdateExpression: aws.String("SET suppressed_until = :until"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":until": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", until)},
		},
	})
	if err != nil {
		return fmt.Errorf("updating item in DynamoDB: %w", err)
	}
	return nil
}
