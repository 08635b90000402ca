package render

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/Davlis/Invoice-SVC/internal/invoices"
)

func sampleContext() invoices.Context {
	return invoices.Context{
		"seller":  map[string]interface{}{"name": "ACME <sp. z o.o.>"},
		"product": map[string]interface{}{"information": "5h", "price": "100.00"},
		"payment": map[string]interface{}{"toPayInNumbers": "PLN 100.00"},
	}
}

func TestHTMLRenderer_Render(t *testing.T) {
	out, err := NewHTMLRenderer().Render("testdata/invoice.html", sampleContext())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"5h / 100.00", "PLN 100.00", "ACME &lt;sp. z o.o.&gt;"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestHTMLRenderer_Errors(t *testing.T) {
	r := NewHTMLRenderer()

	for _, path := range []string{"testdata/missing.html", "testdata/broken.html"} {
		_, err := r.Render(path, sampleContext())
		var rerr *RenderError
		if !errors.As(err, &rerr) {
			t.Fatalf("%s: expected *RenderError, got %T (%v)", path, err, err)
		}
		if rerr.Kind() != KindRenderError || rerr.StatusCode() != 500 {
			t.Fatalf("%s: unexpected kind/status %s %d", path, rerr.Kind(), rerr.StatusCode())
		}
	}
}

type recordingConverter struct {
	html string
	opts Options
	err  error
}

func (c *recordingConverter) Convert(ctx context.Context, html string, opts Options) (io.Reader, error) {
	c.html, c.opts = html, opts
	if c.err != nil {
		return nil, c.err
	}
	return strings.NewReader("%PDF-1.4"), nil
}

func TestPipeline_Generate(t *testing.T) {
	conv := &recordingConverter{}
	p := &Pipeline{
		Renderer:     NewHTMLRenderer(),
		Converter:    conv,
		TemplatePath: "testdata/invoice.html",
		Options:      Options{PrintBackground: true},
	}

	r, err := p.Generate(context.Background(), sampleContext())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	body, _ := io.ReadAll(r)
	if string(body) != "%PDF-1.4" {
		t.Fatalf("unexpected body %q", body)
	}
	if !conv.opts.PrintBackground || !strings.Contains(conv.html, "5h") {
		t.Fatalf("converter got %+v / %q", conv.opts, conv.html)
	}
}

func TestPipeline_RenderFailureSkipsConversion(t *testing.T) {
	conv := &recordingConverter{}
	p := &Pipeline{Renderer: NewHTMLRenderer(), Converter: conv, TemplatePath: "testdata/missing.html"}

	if _, err := p.Generate(context.Background(), sampleContext()); err == nil {
		t.Fatal("expected error")
	}
	if conv.html != "" {
		t.Fatal("converter must not run after a render failure")
	}
}

func TestConversionError_Unwrap(t *testing.T) {
	cause := errors.New("chrome gone")
	err := error(&ConversionError{Err: cause})
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to unwrap")
	}
	if !strings.Contains(err.Error(), "chrome gone") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
