package invoices

import (
	"context"
	"errors"
	"testing"
)

type countingStore struct {
	ConfigStore
	calls int
}

func (s *countingStore) Lookup(ctx context.Context, buyerID, sellerID string) (DefaultConfig, error) {
	s.calls++
	return s.ConfigStore.Lookup(ctx, buyerID, sellerID)
}

func newTestResolver() (*Resolver, *countingStore) {
	store := &countingStore{ConfigStore: NewDirStore(map[string]DefaultConfig{
		"s1@b1": {
			"country":  "PL",
			"currency": "PLN",
			"seller":   map[string]interface{}{"name": "ACME", "nip": "123"},
		},
	})}
	return NewResolver(store, NewFieldsComputerWithClock(fixedClock)), store
}

func TestResolve_MergesAllSources(t *testing.T) {
	r, store := newTestResolver()
	req := &Request{
		BuyerID: "b1", SellerID: "s1", Date: "2023-03-15", Hours: 5, Price: 100,
		Raw: map[string]interface{}{
			"buyerId": "b1", "sellerId": "s1", "date": "2023-03-15", "hours": 5.0, "price": 100.0,
			"seller": map[string]interface{}{"nip": "999"},
		},
	}

	ctx, err := r.Resolve(context.Background(), req)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if store.calls != 1 {
		t.Fatalf("expected a single lookup, got %d", store.calls)
	}

	product := ctx["product"].(map[string]interface{})
	if product["information"] != "5h" || product["price"] != "100.00" {
		t.Fatalf("unexpected product: %v", product)
	}
	payment := ctx["payment"].(map[string]interface{})
	if s, _ := payment["toPayInNumbers"].(string); s == "" {
		t.Fatalf("toPayInNumbers missing: %v", payment)
	}
	seller := ctx["seller"].(map[string]interface{})
	if seller["name"] != "ACME" || seller["nip"] != "999" {
		t.Fatalf("request should override field by field, got %v", seller)
	}
	if ctx["currency"] != "PLN" || ctx["buyerId"] != "b1" {
		t.Fatalf("default config and request keys expected, got %v", ctx)
	}
}

func TestResolve_RequestOverridesComputed(t *testing.T) {
	r, _ := newTestResolver()
	req := &Request{
		BuyerID: "b1", SellerID: "s1", Date: "2023-03-15", Hours: 5, Price: 100,
		Raw: map[string]interface{}{"dateOfSell": "custom", "payment": map[string]interface{}{"method": "transfer"}},
	}

	ctx, err := r.Resolve(context.Background(), req)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if ctx["dateOfSell"] != "custom" {
		t.Fatalf("request must win over computed field, got %v", ctx["dateOfSell"])
	}
	payment := ctx["payment"].(map[string]interface{})
	if payment["method"] != "transfer" || payment["toPayInNumbers"] == "" {
		t.Fatalf("payment objects should merge, got %v", payment)
	}
}

func TestResolve_NotFound(t *testing.T) {
	r, store := newTestResolver()

	ctx, err := r.Resolve(context.Background(), &Request{BuyerID: "nobody", SellerID: "s1", Date: "2023-03-15"})
	if !errors.Is(err, ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
	if ctx != nil {
		t.Fatalf("no context expected on miss, got %v", ctx)
	}
	if store.calls != 1 {
		t.Fatalf("expected a single lookup, got %d", store.calls)
	}
}
