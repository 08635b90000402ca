// Package app wires configuration into the components shared by the binaries.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Davlis/Invoice-SVC/internal/aws"
	"github.com/Davlis/Invoice-SVC/internal/config"
	"github.com/Davlis/Invoice-SVC/internal/events"
	"github.com/Davlis/Invoice-SVC/internal/handlers"
	"github.com/Davlis/Invoice-SVC/internal/invoices"
	"github.com/Davlis/Invoice-SVC/internal/metrics"
	"github.com/Davlis/Invoice-SVC/internal/render"
	"github.com/Davlis/Invoice-SVC/internal/validation"
)

// ClientFactory creates AWS clients; replaced in tests.
type ClientFactory func(ctx context.Context, region, endpointOverride string) (*aws.AWSClients, error)

// Build creates every component described by cfg. AWS clients are created only when a
// component needs them.
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger, newClients ClientFactory) (handlers.HandlerConfig, error) {
	var clients *aws.AWSClients
	if cfg.NeedsAWS() {
		var err error
		if clients, err = newClients(ctx, cfg.AWS.Region, cfg.AWS.EndpointOverride); err != nil {
			return handlers.HandlerConfig{}, fmt.Errorf("init aws clients: %w", err)
		}
	}

	store, err := newStore(cfg, clients, log)
	if err != nil {
		return handlers.HandlerConfig{}, err
	}

	v, err := validation.New()
	if err != nil {
		return handlers.HandlerConfig{}, err
	}

	hc := handlers.HandlerConfig{
		Validator: v,
		Resolver:  invoices.NewResolver(store, invoices.NewFieldsComputer()),
		Pipeline: &render.Pipeline{
			Renderer:     render.NewHTMLRenderer(),
			Converter:    render.NewChromeConverter(cfg.PDF.ChromeURL, cfg.PDF.ChromePath, cfg.PDF.Timeout),
			TemplatePath: cfg.Invoice.TemplatePath,
			Options:      render.Options{PrintBackground: cfg.PDF.PrintBackground},
		},
		Logger: log,
	}

	var sink metrics.RenderSink
	if cfg.Metrics.CloudWatchNamespace != "" {
		sink = aws.NewMetricsPublisher(clients.CloudWatch, cfg.Metrics.CloudWatchNamespace)
	}
	hc.Metrics = metrics.NewRecorder(sink, log)

	if cfg.Events.QueueURL != "" {
		hc.Notifier = events.NewNotifier(aws.NewPublisher(clients.SQS, cfg.Events.QueueURL))
	}

	return hc, nil
}

func newStore(cfg *config.Config, clients *aws.AWSClients, log *zap.Logger) (invoices.ConfigStore, error) {
	switch cfg.Invoice.Store {
	case config.StoreDynamoDB:
		log.Info("using dynamodb config store", zap.String("table", cfg.Invoice.DynamoDBTable))
		return invoices.NewDynamoStore(clients.DynamoDB, cfg.Invoice.DynamoDBTable), nil
	default:
		store, err := invoices.LoadDirStore(cfg.Invoice.ConfigDir, log)
		if err != nil {
			return nil, fmt.Errorf("load config store: %w", err)
		}
		return store, nil
	}
}
