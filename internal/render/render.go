// Package render turns an invoice context into a PDF: an HTML template is executed with
// the context and the resulting document is printed by a PDF converter.
package render

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/Davlis/Invoice-SVC/internal/invoices"
)

// Error kind names reported to HTTP callers.
const (
	KindRenderError     = "RenderError"
	KindConversionError = "ConversionError"
)

// TemplateRenderer executes the template at path with data.
type TemplateRenderer interface {
	Render(path string, data invoices.Context) (string, error)
}

// Options controls PDF output.
type Options struct {
	PrintBackground bool
}

// PDFConverter prints an HTML document to PDF.
type PDFConverter interface {
	Convert(ctx context.Context, html string, opts Options) (io.Reader, error)
}

// RenderError is returned when a template cannot be loaded or executed.
type RenderError struct {
	Template string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render template %s: %v", e.Template, e.Err)
}

func (e *RenderError) Unwrap() error   { return e.Err }
func (e *RenderError) Kind() string    { return KindRenderError }
func (e *RenderError) StatusCode() int { return http.StatusInternalServerError }

// ConversionError is returned when HTML cannot be converted to PDF.
type ConversionError struct {
	Err error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert to pdf: %v", e.Err)
}

func (e *ConversionError) Unwrap() error   { return e.Err }
func (e *ConversionError) Kind() string    { return KindConversionError }
func (e *ConversionError) StatusCode() int { return http.StatusInternalServerError }

// Pipeline renders a fixed template and converts the result.
type Pipeline struct {
	Renderer     TemplateRenderer
	Converter    PDFConverter
	TemplatePath string
	Options      Options
}

// Generate renders data and returns the PDF stream.
func (p *Pipeline) Generate(ctx context.Context, data invoices.Context) (io.Reader, error) {
	html, err := p.Renderer.Render(p.TemplatePath, data)
	if err != nil {
		return nil, err
	}
	return p.Converter.Convert(ctx, html, p.Options)
}
