package invoices

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/Davlis/Invoice-SVC/internal/aws"
)

// tagAttribute is the partition key of the configuration table.
const tagAttribute = "tag"

// DynamoStore reads default configurations from a DynamoDB table keyed by tag. Every
// attribute other than the key is part of the configuration record.
type DynamoStore struct {
	client    aws.DynamoDBAPI
	tableName string
}

// NewDynamoStore creates a store over tableName.
func NewDynamoStore(client aws.DynamoDBAPI, tableName string) *DynamoStore {
	return &DynamoStore{
		client:    client,
		tableName: tableName,
	}
}

// Lookup fetches the item for Tag(buyerID, sellerID). A missing item yields an error
// wrapping ErrInvoiceNotFound.
func (s *DynamoStore) Lookup(ctx context.Context, buyerID, sellerID string) (DefaultConfig, error) {
	tag := Tag(buyerID, sellerID)
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			tagAttribute: &types.AttributeValueMemberS{Value: tag},
		},
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("get item %s: %s: %w", tag, apiErr.ErrorCode(), err)
		}
		return nil, fmt.Errorf("get item %s: %w", tag, err)
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvoiceNotFound, tag)
	}

	var cfg map[string]interface{}
	if err := attributevalue.UnmarshalMap(out.Item, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config %s: %w", tag, err)
	}
	delete(cfg, tagAttribute)

	return DefaultConfig(cfg), nil
}
