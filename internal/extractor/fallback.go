package extractor

import (
	"regexp"
	"strings"
)

var workLocationKeywords = []struct {
	keywords []string
	label    string
}{
	{keywords: []string{"remote"}, label: "Remote"},
	{keywords: []string{"hybrid"}, label: "Hybrid"},
	{keywords: []string{"on-site", "onsite"}, label: "On-site"},
}

var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s*(?:of\s*)?experience`),
	regexp.MustCompile(`(?i)(\d+)\s*to\s*(\d+)\s*years?`),
	regexp.MustCompile(`(?i)entry\s*level|junior|senior|mid\s*level`),
}

// inferWorkLocation maps the first arrangement keyword found in the page
// text to its label.
func inferWorkLocation(pageText string) (string, bool) {
	lower := strings.ToLower(pageText)
	for _, wl := range workLocationKeywords {
		for _, kw := range wl.keywords {
			if strings.Contains(lower, kw) {
				return wl.label, true
			}
		}
	}
	return "", false
}

// inferExperience returns the first full match of the experience patterns,
// tried in priority order.
func inferExperience(pageText string) (string, bool) {
	for _, re := range experiencePatterns {
		if m := re.FindString(pageText); m != "" {
			return m, true
		}
	}
	return "", false
}

// splitTitle reads "<title> - <company>" or "<company> | <title>" page titles.
func splitTitle(title string) (jobTitle, company string, ok bool) {
	switch {
	case strings.Contains(title, " - "):
		parts := strings.Split(title, " - ")
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[len(parts)-1]), true
	case strings.Contains(title, " | "):
		parts := strings.Split(title, " | ")
		return strings.TrimSpace(parts[len(parts)-1]), strings.TrimSpace(parts[0]), true
	}
	return "", "", false
}
