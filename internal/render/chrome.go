package render

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ChromeConverter prints HTML through headless Chrome. With RemoteURL set it attaches to a
// running DevTools endpoint; otherwise a browser is started per conversion.
type ChromeConverter struct {
	RemoteURL string
	ExecPath  string
	Timeout   time.Duration
}

// NewChromeConverter returns a converter; timeout <= 0 disables the conversion deadline.
func NewChromeConverter(remoteURL, execPath string, timeout time.Duration) *ChromeConverter {
	return &ChromeConverter{
		RemoteURL: remoteURL,
		ExecPath:  execPath,
		Timeout:   timeout,
	}
}

func (c *ChromeConverter) allocator(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.RemoteURL != "" {
		return chromedp.NewRemoteAllocator(ctx, c.RemoteURL)
	}
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}
	return chromedp.NewExecAllocator(ctx, opts...)
}

// Convert loads html into a blank page and prints it.
func (c *ChromeConverter) Convert(ctx context.Context, html string, opts Options) (io.Reader, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	allocCtx, cancelAlloc := c.allocator(ctx)
	defer cancelAlloc()
	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	var pdf []byte
	err := chromedp.Run(taskCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().WithPrintBackground(opts.PrintBackground).Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &ConversionError{Err: err}
	}
	if len(pdf) == 0 {
		return nil, &ConversionError{Err: errors.New("empty document")}
	}
	return bytes.NewReader(pdf), nil
}
