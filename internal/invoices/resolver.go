package invoices

import (
	"context"
)

// Resolver builds the invoice context for a validated request.
type Resolver struct {
	store    ConfigStore
	computer *FieldsComputer
}

// NewResolver wires a resolver over store and computer.
func NewResolver(store ConfigStore, computer *FieldsComputer) *Resolver {
	return &Resolver{
		store:    store,
		computer: computer,
	}
}

// Resolve looks up the default configuration, computes the derived fields and deep-merges
// default config, computed fields and the raw request in that order of precedence.
// Store errors, including ErrInvoiceNotFound, are returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, req *Request) (Context, error) {
	defaultCfg, err := r.store.Lookup(ctx, req.BuyerID, req.SellerID)
	if err != nil {
		return nil, err
	}

	computed, err := r.computer.Compute(req, defaultCfg)
	if err != nil {
		return nil, err
	}

	return Context(DeepMerge(defaultCfg, computed.Map(), req.Raw)), nil
}
