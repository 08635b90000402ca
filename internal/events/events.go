// Package events announces generated invoices on a queue.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Davlis/Invoice-SVC/internal/invoices"
)

// TypeInvoiceGenerated is the event type attribute.
const TypeInvoiceGenerated = "invoice.generated"

// InvoiceGenerated is the message body. It never carries the document itself.
type InvoiceGenerated struct {
	EventID     string    `json:"eventId"`
	Tag         string    `json:"tag"`
	BuyerID     string    `json:"buyerId"`
	SellerID    string    `json:"sellerId"`
	Date        string    `json:"date"`
	Bytes       int       `json:"bytes"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Sender delivers a message body with string attributes.
type Sender interface {
	SendInvoiceMessage(ctx context.Context, messageBody string, attributes map[string]string) error
}

// Notifier builds and sends invoice.generated events.
type Notifier struct {
	sender  Sender
	nowFunc func() time.Time
}

// NewNotifier returns a notifier over sender.
func NewNotifier(sender Sender) *Notifier {
	return &Notifier{sender: sender, nowFunc: time.Now}
}

// InvoiceGenerated sends one event for req. requestID is forwarded as correlation id.
func (n *Notifier) InvoiceGenerated(ctx context.Context, req *invoices.Request, size int, requestID string) (InvoiceGenerated, error) {
	evt := InvoiceGenerated{
		EventID:     uuid.NewString(),
		Tag:         req.Tag(),
		BuyerID:     req.BuyerID,
		SellerID:    req.SellerID,
		Date:        req.Date,
		Bytes:       size,
		GeneratedAt: n.nowFunc().UTC(),
	}
	body, err := json.Marshal(evt)
	if err != nil {
		return evt, fmt.Errorf("marshal event: %w", err)
	}

	attrs := map[string]string{
		"event_type":     TypeInvoiceGenerated,
		"event_id":       evt.EventID,
		"tag":            evt.Tag,
		"correlation_id": requestID,
	}
	if err := n.sender.SendInvoiceMessage(ctx, string(body), attrs); err != nil {
		return evt, err
	}
	return evt, nil
}
