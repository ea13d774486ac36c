package attach

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jonathan/ats-tailor/internal/types"
)

// DriveOptions configures one browser attachment drive.
type DriveOptions struct {
	Headless     bool
	FastInterval time.Duration
	SlowInterval time.Duration
}

// DriveURL opens the page in a browser and runs the scheduler against it
// until attachment settles or the context expires. Requires Chrome/Chromium
// to be installed on the system.
func DriveURL(ctx context.Context, url string, docs *types.GeneratedDocuments, opts DriveOptions) error {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", opts.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(time.Second),
	); err != nil {
		return fmt.Errorf("loading page: %w", err)
	}

	fast := opts.FastInterval
	if fast <= 0 {
		fast = DefaultFastInterval
	}
	slow := opts.SlowInterval
	if slow <= 0 {
		slow = DefaultSlowInterval
	}

	scheduler := NewScheduler(NewChromePage(docs), WithIntervals(fast, slow))
	scheduler.Start(browserCtx)
	defer scheduler.Stop()

	select {
	case <-scheduler.Settled():
		return nil
	case <-browserCtx.Done():
		return fmt.Errorf("attachment did not settle: %w", browserCtx.Err())
	}
}
