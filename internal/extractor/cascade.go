package extractor

import (
	"strings"

	"go-career-scraper/internal/document"
)

const (
	minShortLen = 2
	maxShortLen = 5000
	minLongLen  = 50
	// accepted long text is capped here, then again by the cleaning pass
	maxLongLen = 2000
)

var blockedPrefixes = []string{"cookie", "privacy", "terms"}

type acceptFunc func(text string) bool

// firstMatch walks selectors in order and their matches in document order,
// returning the first normalized text accept allows.
func firstMatch(doc *document.Document, selectors []string, sep string, accept acceptFunc) (string, bool) {
	for _, selector := range selectors {
		matches := doc.Select(selector)
		for i := range matches.Nodes {
			text := document.CollapseSpace(document.NodeText(matches.Eq(i), sep))
			if accept(text) {
				return text, true
			}
		}
	}
	return "", false
}

func acceptShort(text string) bool {
	n := document.Len(text)
	if n <= minShortLen || n >= maxShortLen {
		return false
	}
	lower := strings.ToLower(text)
	for _, prefix := range blockedPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}
	return true
}

func acceptLong(text string) bool {
	return document.Len(text) > minLongLen
}

func extractShort(doc *document.Document, selectors []string) (string, bool) {
	return firstMatch(doc, selectors, " ", acceptShort)
}

func extractLong(doc *document.Document, selectors []string) (string, bool) {
	text, ok := firstMatch(doc, selectors, "\n", acceptLong)
	if !ok {
		return "", false
	}
	return document.Truncate(text, maxLongLen), true
}
