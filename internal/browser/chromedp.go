package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// ChromeManager keeps one headless Chrome alive; each page load gets its
// own tab.
type ChromeManager struct {
	browserCtx    context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc
}

// PageOptions tune a single ChromeManager.HTML call.
type PageOptions struct {
	WaitFor     string
	LoadTimeout time.Duration
	WaitTimeout time.Duration
	Settle      time.Duration
}

func NewChrome(headless bool, userAgent string) (*ChromeManager, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
	)
	if userAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(userAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	//an empty Run starts the browser so setup errors surface here
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("could not start chrome: %w", err)
	}

	return &ChromeManager{
		browserCtx:    browserCtx,
		cancelBrowser: cancelBrowser,
		cancelAlloc:   cancelAlloc,
	}, nil
}

// HTML loads url in a fresh tab and returns the rendered document markup.
// A WaitFor selector that never shows up is not an error.
func (cm *ChromeManager) HTML(ctx context.Context, url string, opts PageOptions) (string, error) {
	tabCtx, cancelTab := chromedp.NewContext(cm.browserCtx)
	defer cancelTab()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = 30 * time.Second
	}
	loadCtx, cancelLoad := context.WithTimeout(tabCtx, opts.LoadTimeout)
	defer cancelLoad()
	if err := chromedp.Run(loadCtx, chromedp.Navigate(url)); err != nil {
		return "", fmt.Errorf("navigate %s: %w", url, err)
	}

	if opts.WaitFor != "" && opts.WaitTimeout > 0 {
		waitCtx, cancelWait := context.WithTimeout(tabCtx, opts.WaitTimeout)
		_ = chromedp.Run(waitCtx, chromedp.WaitVisible(opts.WaitFor, chromedp.ByQuery))
		cancelWait()
	}

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Sleep(opts.Settle),
		chromedp.Evaluate(`window.scrollTo(0, document.body ? document.body.scrollHeight : 0)`, nil),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}
	return html, nil
}

func (cm *ChromeManager) Close() error {
	cm.cancelBrowser()
	cm.cancelAlloc()
	return nil
}
