// Package discovery finds links to individual postings on a career page.
package discovery

import (
	"go-career-scraper/internal/document"
)

// DefaultMaxLinks bounds a discovered link set.
const DefaultMaxLinks = 100

// DefaultLinkSelectors are tried all together, not first-match.
var DefaultLinkSelectors = []string{
	`a[href*="/job/"]`,
	`a[href*="/jobs/"]`,
	`a[href*="/career/"]`,
	`a[href*="/careers/"]`,
	`a[href*="/position/"]`,
	`a[href*="/positions/"]`,
	`a[href*="/opening/"]`,
	`a[href*="/openings/"]`,
	`a[href*="/apply/"]`,
	".job-link",
	".career-link",
	".position-link",
	".job-card a",
	".job-listing a",
	".position-card a",
	".opening-link",
	"a[data-job-id]",
	"a[data-position-id]",
	"a[data-career-id]",
	".job-title a",
	".position-title a",
	".role-title a",
}

// Candidates resolves the href of every node matched by any selector,
// deduplicated in first-seen order. Nothing is filtered yet.
func Candidates(doc *document.Document, selectors []string) []string {
	if doc == nil {
		return nil
	}
	if len(selectors) == 0 {
		selectors = DefaultLinkSelectors
	}

	seen := make(map[string]bool)
	var links []string
	for _, selector := range selectors {
		matches := doc.Select(selector)
		for i := range matches.Nodes {
			href, ok := matches.Eq(i).Attr("href")
			if !ok {
				continue
			}
			abs, ok := doc.Resolve(href)
			if !ok || seen[abs] {
				continue
			}
			seen[abs] = true
			links = append(links, abs)
		}
	}
	return links
}

// Discover returns at most max job links found on doc. max <= 0 means
// DefaultMaxLinks.
func Discover(doc *document.Document, selectors []string, max int) []string {
	if max <= 0 {
		max = DefaultMaxLinks
	}
	links := Filter(Candidates(doc, selectors))
	if len(links) > max {
		links = links[:max]
	}
	return links
}
