// Package document wraps a parsed HTML page together with the URL it was
// fetched from. Documents are read-only once built.
package document

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

type Document struct {
	doc  *goquery.Document
	base *url.URL
}

// New parses UTF-8 HTML from r. pageURL is used to resolve relative links.
func New(r io.Reader, pageURL string) (*Document, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page url %q: %w", pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html from %s: %w", pageURL, err)
	}

	return &Document{doc: doc, base: base}, nil
}

func FromString(content, pageURL string) (*Document, error) {
	return New(strings.NewReader(content), pageURL)
}

// Select returns the nodes matching selector in document order. A selector
// that cannot be compiled matches nothing.
func (d *Document) Select(selector string) (sel *goquery.Selection) {
	defer func() {
		if r := recover(); r != nil {
			sel = d.doc.FindNodes()
		}
	}()
	return d.doc.Find(selector)
}

// Title returns the raw text of the first <title> element.
func (d *Document) Title() (string, bool) {
	t := d.doc.Find("title").First()
	if t.Length() == 0 {
		return "", false
	}
	return t.Text(), true
}

// PageText concatenates every visible text node of the page without
// separators or trimming.
func (d *Document) PageText() string {
	var parts []string
	for _, n := range d.doc.Nodes {
		collectText(n, &parts, false)
	}
	return strings.Join(parts, "")
}

// Resolve turns href into an absolute URL against the page URL.
func (d *Document) Resolve(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	return d.base.ResolveReference(ref).String(), true
}

// NodeText joins the trimmed text nodes below every node of sel with sep.
func NodeText(sel *goquery.Selection, sep string) string {
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts, true)
	}
	return strings.Join(parts, sep)
}

func collectText(n *html.Node, parts *[]string, trim bool) {
	switch n.Type {
	case html.TextNode:
		text := n.Data
		if trim {
			text = strings.TrimSpace(text)
			if text == "" {
				return
			}
		}
		*parts = append(*parts, text)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		if skippedElements[n.Data] {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts, trim)
	}
}

// contents of these never count as page text
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"template": true,
	"noscript": true,
}
