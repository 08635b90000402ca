package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Outcome label for a request that produced a PDF.
const OutcomeOK = "ok"

var (
	InvoiceRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoice_requests_total",
			Help: "Total number of invoice requests by outcome",
		},
		[]string{"outcome"},
	)

	InvoiceRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "invoice_render_duration_seconds",
			Help:    "Duration of template rendering and PDF conversion in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)
)

// RenderSink receives per-invoice render measurements, e.g. a CloudWatch publisher.
type RenderSink interface {
	PutRenderMetrics(ctx context.Context, latency time.Duration, sizeBytes int) error
}

// Recorder updates the Prometheus collectors and forwards render measurements to an
// optional sink. A nil *Recorder is a no-op.
type Recorder struct {
	sink RenderSink
	log  *zap.Logger
}

// NewRecorder returns a recorder; sink may be nil.
func NewRecorder(sink RenderSink, log *zap.Logger) *Recorder {
	return &Recorder{sink: sink, log: log}
}

// Request counts one finished request.
func (r *Recorder) Request(outcome string) {
	if r == nil {
		return
	}
	InvoiceRequests.WithLabelValues(outcome).Inc()
}

// Rendered records a successful render. Sink failures are logged only.
func (r *Recorder) Rendered(ctx context.Context, latency time.Duration, sizeBytes int) {
	if r == nil {
		return
	}
	InvoiceRenderDuration.Observe(latency.Seconds())
	if r.sink == nil {
		return
	}
	if err := r.sink.PutRenderMetrics(ctx, latency, sizeBytes); err != nil {
		r.log.Warn("render metrics not published", zap.Error(err))
	}
}
