package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/Davlis/Invoice-SVC/internal/config"
	invoiceevents "github.com/Davlis/Invoice-SVC/internal/events"
	"github.com/Davlis/Invoice-SVC/internal/logger"
)

func main() {
	zl, err := logger.New(config.Getenv("LOGGING_LEVEL", "info"), config.Getenv("LOGGING_FORMAT", "json"))
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	consumer := invoiceevents.NewConsumer(zl)

	// If RUN_LOCAL=true, run a single simulated SQS event for local testing.
	if os.Getenv("RUN_LOCAL") == "true" {
		body := os.Getenv("LOCAL_SQS_BODY")
		if body == "" {
			body = `{"eventId":"local-event-1","tag":"s1@b1","date":"2023-03-15","bytes":0}`
		}
		event := events.SQSEvent{Records: []events.SQSMessage{{MessageId: "local-1", Body: body}}}
		resp, err := consumer.Handle(context.Background(), event)
		if err != nil {
			zl.Fatal("local handler error", zap.Error(err))
		}
		if len(resp.BatchItemFailures) > 0 {
			zl.Fatal("local event rejected")
		}
		return
	}

	lambda.Start(consumer.Handle)
}
