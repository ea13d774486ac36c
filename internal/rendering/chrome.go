package rendering

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultRenderTimeout bounds a single print-to-PDF pass
const DefaultRenderTimeout = 30 * time.Second

// pageTemplate wraps the canonical text in minimal print styling. The layout
// deliberately stays close to the plain text so ATS parsers read the PDF the
// same way they would read the text.
const pageTemplate = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><style>
body { font-family: Arial, Helvetica, sans-serif; font-size: 11pt; margin: 1in; color: #111; }
pre { font-family: inherit; white-space: pre-wrap; word-wrap: break-word; margin: 0; }
</style></head><body><pre>%s</pre></body></html>`

// ChromeRenderer prints documents to PDF through a headless Chrome instance.
// Requires Chrome/Chromium to be installed on the system.
type ChromeRenderer struct {
	Timeout time.Duration
	Verbose bool
}

// NewChromeRenderer returns a renderer with the default timeout
func NewChromeRenderer(verbose bool) *ChromeRenderer {
	return &ChromeRenderer{Timeout: DefaultRenderTimeout, Verbose: verbose}
}

// Render loads the styled document into a headless browser and prints it to
// PDF with Letter-size pages.
func (r *ChromeRenderer) Render(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &RenderError{Message: "nothing to render"}
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	doc := fmt.Sprintf(pageTemplate, html.EscapeString(text))
	dataURL := "data:text/html;charset=utf-8," + url.PathEscape(doc)

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(false).
				WithPaperWidth(8.5).
				WithPaperHeight(11).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &RenderError{Message: "print to PDF failed", Cause: err}
	}
	return pdf, nil
}
