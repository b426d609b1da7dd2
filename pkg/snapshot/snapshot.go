// Package snapshot renders SVG markup to PNG with headless Chrome.
package snapshot

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

// Options controls the browser used for snapshots
type Options struct {
	Timeout   time.Duration // Upper bound for the whole render, 0 means none
	NoSandbox bool          // Needed when running as root in containers
	Logger    zerolog.Logger
}

// dataURI embeds svg in a data URI so no temporary file is needed
func dataURI(svg string) string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

// PNG screenshots the first svg element of the markup and writes the image
// to w.
func PNG(ctx context.Context, svg string, w io.Writer, opts Options) error {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Headless)
	if opts.NoSandbox {
		allocOpts = append(allocOpts, chromedp.NoSandbox)
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var buf []byte
	tasks := chromedp.Tasks{
		chromedp.Navigate(dataURI(svg)),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.Screenshot(`svg`, &buf, chromedp.ByQuery),
	}

	opts.Logger.Debug().Int("svg_bytes", len(svg)).Msg("running headless browser")
	if err := chromedp.Run(browserCtx, tasks); err != nil {
		return fmt.Errorf("chromedp execution failed: %w", err)
	}
	if len(buf) == 0 {
		return fmt.Errorf("screenshot buffer is empty, screenshot failed")
	}

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write PNG screenshot data: %w", err)
	}
	return nil
}
