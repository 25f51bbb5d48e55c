package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go-career-scraper/internal/config"
)

// promptTarget asks for one career page on the terminal.
func promptTarget(in io.Reader, out io.Writer) (config.Target, error) {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "Enter company career page URL: ")
	raw, err := reader.ReadString('\n')
	if err != nil && raw == "" {
		return config.Target{}, fmt.Errorf("read career page url: %w", err)
	}
	url := strings.TrimSpace(raw)
	if err := config.ValidateURL(url); err != nil {
		return config.Target{}, err
	}

	fmt.Fprint(out, "Use a headless browser for dynamic content? (y/n): ")
	answer, _ := reader.ReadString('\n')
	useBrowser := strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y")

	return config.Target{URL: url, UseBrowser: &useBrowser}, nil
}
