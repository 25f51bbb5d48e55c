package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ScrollToBottom nudges lazily rendered listings into the DOM.
func ScrollToBottom(page playwright.Page) error {
	_, err := page.Evaluate("window.scrollTo(0, document.body ? document.body.scrollHeight : 0)")
	return err
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Screenshotter writes full-page debug screenshots into a directory.
type Screenshotter struct {
	outputDir string
}

func NewScreenshotter(dir string) (*Screenshotter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create screenshot dir: %w", err)
	}
	return &Screenshotter{outputDir: dir}, nil
}

// Capture saves page as <name>_<timestamp>.png and returns the path.
func (s *Screenshotter) Capture(page playwright.Page, name string) (string, error) {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.png", unsafeName.ReplaceAllString(name, "_"), timestamp)
	path := filepath.Join(s.outputDir, filename)

	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", fmt.Errorf("could not capture screenshot: %w", err)
	}
	return path, nil
}
