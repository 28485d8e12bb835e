// Package render loads a saved schedule page in headless Chrome and returns the DOM
// after its scripts have run. Testudo builds the schedule client-side, so a page
// saved with "Save Page As (HTML only)" contains no course cards until rendered.
//
// Only local files are opened; nothing is fetched over the network on the
// caller's behalf.
package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
)

// Options configures a render.
type Options struct {
	Timeout      time.Duration // Whole render, including browser start-up
	WaitSelector string        // Element that must be ready before the DOM is read
	ChromePath   string        // Browser binary; empty uses chromedp's lookup
}

// DefaultOptions returns the settings used when none are configured.
func DefaultOptions() Options {
	return Options{
		Timeout:      30 * time.Second,
		WaitSelector: "body",
	}
}

// File renders the HTML file at path and returns the outer HTML of the document.
func File(ctx context.Context, path string, opts Options) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("opening page: %w", err)
	}
	if info.IsDir() {
		return "", errors.New("page path is a directory")
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOptions().Timeout
	}
	if opts.WaitSelector == "" {
		opts.WaitSelector = DefaultOptions().WaitSelector
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("allow-file-access-from-files", true),
	)
	if opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ChromePath))
	}
	actx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()
	bctx, cancelBrowser := chromedp.NewContext(actx)
	defer cancelBrowser()

	var html string
	err = chromedp.Run(bctx,
		chromedp.Navigate("file://"+filepath.ToSlash(abs)),
		chromedp.WaitReady(opts.WaitSelector, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", path, err)
	}
	return html, nil
}
