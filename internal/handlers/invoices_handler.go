package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Davlis/Invoice-SVC/internal/events"
	"github.com/Davlis/Invoice-SVC/internal/invoices"
	"github.com/Davlis/Invoice-SVC/internal/metrics"
	"github.com/Davlis/Invoice-SVC/internal/render"
	"github.com/Davlis/Invoice-SVC/internal/validation"
)

const (
	contentTypePDF     = "application/pdf"
	contentDisposition = `inline; filename="invoice.pdf"`
)

// HandlerConfig groups dependencies for the invoice handler.
type HandlerConfig struct {
	Validator *validation.Validator
	Resolver  *invoices.Resolver
	Pipeline  *render.Pipeline
	Notifier  *events.Notifier  // optional
	Metrics   *metrics.Recorder // optional
	Logger    *zap.Logger
}

type lener interface {
	Len() int
}

// RegisterInvoiceRoutes registers POST / which answers with the generated PDF.
func RegisterInvoiceRoutes(r *gin.Engine, cfg HandlerConfig) {
	fail := func(c *gin.Context, err error) {
		_, kind := StatusFromErr(err)
		cfg.Metrics.Request(kind)
		_ = c.Error(err)
		c.Abort()
	}

	r.POST("/", func(c *gin.Context) {
		ctx := c.Request.Context()

		req, err := validation.BindAndValidate(c, cfg.Validator)
		if err != nil {
			fail(c, err)
			return
		}

		invoiceCtx, err := cfg.Resolver.Resolve(ctx, req)
		if err != nil {
			fail(c, err)
			return
		}

		start := time.Now()
		pdf, err := cfg.Pipeline.Generate(ctx, invoiceCtx)
		if err != nil {
			fail(c, err)
			return
		}

		elapsed := time.Since(start)
		size := -1
		if l, ok := pdf.(lener); ok {
			size = l.Len()
		}
		cfg.Metrics.Rendered(ctx, elapsed, max(size, 0))
		cfg.Metrics.Request(metrics.OutcomeOK)

		c.DataFromReader(http.StatusOK, int64(size), contentTypePDF, pdf, map[string]string{
			"Content-Disposition": contentDisposition,
		})

		if cfg.Notifier == nil {
			return
		}
		if _, err := cfg.Notifier.InvoiceGenerated(ctx, req, size, RequestIDFrom(c)); err != nil {
			cfg.Logger.Warn("invoice event not sent",
				zap.String("request_id", RequestIDFrom(c)),
				zap.String("tag", req.Tag()),
				zap.Error(err),
			)
		}
	})
}
