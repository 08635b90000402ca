package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Davlis/Invoice-SVC/internal/invoices"
)

// KindError is reported for errors without a more specific kind.
const KindError = "Error"

type statusCoder interface {
	StatusCode() int
}

type kinder interface {
	Kind() string
}

// StatusFromErr maps an error to its HTTP status and kind name. Errors carrying their own
// status code keep it; everything else is a 500.
func StatusFromErr(err error) (int, string) {
	status, kind := http.StatusInternalServerError, KindError

	if errors.Is(err, invoices.ErrInvoiceNotFound) {
		kind = invoices.KindInvoiceNotFound
	}
	var k kinder
	if errors.As(err, &k) {
		kind = k.Kind()
	}
	var sc statusCoder
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}
	return status, kind
}

func writeError(c *gin.Context, status int, kind, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"statusCode": status,
		"error":      kind,
		"message":    message,
	})
}

// ErrorHandler writes the last error attached to the context as
// {statusCode, error, message}.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, kind := StatusFromErr(err)

		fields := []zap.Field{
			zap.String("request_id", RequestIDFrom(c)),
			zap.String("kind", kind),
			zap.Int("status", status),
			zap.Error(err),
		}
		if status >= http.StatusInternalServerError {
			log.Error("request failed", fields...)
		} else {
			log.Info("request rejected", fields...)
		}

		writeError(c, status, kind, err.Error())
	}
}

// Recovery turns a panic into a 500 in the same error shape.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("panic recovered",
			zap.String("request_id", RequestIDFrom(c)),
			zap.Any("panic", recovered),
		)
		writeError(c, http.StatusInternalServerError, KindError, fmt.Sprint(recovered))
	})
}
