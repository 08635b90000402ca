package events

import (
	"context"
	"encoding/json"
	"fmt"

	lambdaevents "github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

// Consumer reads invoice.generated events from an SQS batch and writes one audit log line
// per event.
type Consumer struct {
	log *zap.Logger
}

// NewConsumer returns a consumer logging to log.
func NewConsumer(log *zap.Logger) *Consumer {
	return &Consumer{log: log}
}

// Handle processes a batch. Messages that cannot be decoded are reported as batch item
// failures so only they are redelivered.
func (c *Consumer) Handle(ctx context.Context, ev lambdaevents.SQSEvent) (lambdaevents.SQSEventResponse, error) {
	var resp lambdaevents.SQSEventResponse
	for _, rec := range ev.Records {
		evt, err := decode(rec)
		if err != nil {
			c.log.Warn("invalid invoice event", zap.String("message_id", rec.MessageId), zap.Error(err))
			resp.BatchItemFailures = append(resp.BatchItemFailures, lambdaevents.SQSBatchItemFailure{
				ItemIdentifier: rec.MessageId,
			})
			continue
		}
		c.log.Info("invoice generated",
			zap.String("event_id", evt.EventID),
			zap.String("tag", evt.Tag),
			zap.String("date", evt.Date),
			zap.Int("bytes", evt.Bytes),
			zap.Time("generated_at", evt.GeneratedAt),
		)
	}
	return resp, nil
}

func decode(rec lambdaevents.SQSMessage) (InvoiceGenerated, error) {
	if attr, ok := rec.MessageAttributes["event_type"]; ok && attr.StringValue != nil && *attr.StringValue != TypeInvoiceGenerated {
		return InvoiceGenerated{}, fmt.Errorf("unexpected event type %q", *attr.StringValue)
	}
	var evt InvoiceGenerated
	if err := json.Unmarshal([]byte(rec.Body), &evt); err != nil {
		return InvoiceGenerated{}, fmt.Errorf("invalid message body: %w", err)
	}
	if evt.EventID == "" || evt.Tag == "" {
		return InvoiceGenerated{}, fmt.Errorf("event id and tag are required")
	}
	return evt, nil
}
