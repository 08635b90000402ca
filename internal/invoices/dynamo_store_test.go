package invoices

import (
	"context"
	"errors"
	"testing"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamo serves GetItem from a single in-memory table keyed by tag.
type mockDynamo struct {
	items map[string]map[string]types.AttributeValue
	err   error
	calls int
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	key, ok := params.Key[tagAttribute].(*types.AttributeValueMemberS)
	if !ok {
		return nil, errors.New("no key attribute")
	}
	item, ok := m.items[key.Value]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func TestDynamoStore_Lookup(t *testing.T) {
	mock := &mockDynamo{items: map[string]map[string]types.AttributeValue{
		"s1@b1": {
			"tag":      &types.AttributeValueMemberS{Value: "s1@b1"},
			"country":  &types.AttributeValueMemberS{Value: "PL"},
			"currency": &types.AttributeValueMemberS{Value: "PLN"},
			"seller": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
				"name": &types.AttributeValueMemberS{Value: "ACME"},
			}},
		},
	}}
	store := NewDynamoStore(mock, "invoice-configs")

	cfg, err := store.Lookup(context.Background(), "b1", "s1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if cfg.Country() != "PL" || cfg.Currency() != "PLN" {
		t.Fatalf("unexpected config: %v", cfg)
	}
	if _, ok := cfg["tag"]; ok {
		t.Fatalf("key attribute leaked into config: %v", cfg)
	}
	seller, ok := cfg["seller"].(map[string]interface{})
	if !ok || seller["name"] != "ACME" {
		t.Fatalf("nested seller not decoded: %v", cfg["seller"])
	}
}

func TestDynamoStore_Miss(t *testing.T) {
	store := NewDynamoStore(&mockDynamo{}, "invoice-configs")

	_, err := store.Lookup(context.Background(), "b1", "s1")
	if !errors.Is(err, ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}

func TestDynamoStore_ClientError(t *testing.T) {
	boom := errors.New("throttled")
	store := NewDynamoStore(&mockDynamo{err: boom}, "invoice-configs")

	_, err := store.Lookup(context.Background(), "b1", "s1")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped client error, got %v", err)
	}
	if errors.Is(err, ErrInvoiceNotFound) {
		t.Fatal("client error must not be reported as not found")
	}
}
