package discovery

import "strings"

var (
	includeKeywords = []string{"job", "career", "position", "apply", "opening", "role", "vacancy"}
	excludeKeywords = []string{"login", "register", "contact", "about", "privacy", "terms"}
)

// IsJobLink keeps a URL that mentions a job keyword and none of the
// navigation or legal keywords. Matching is case-insensitive substring.
func IsJobLink(link string) bool {
	lower := strings.ToLower(link)

	//must not point at site chrome
	for _, kw := range excludeKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}

	for _, kw := range includeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Filter keeps the job links of links, preserving order.
func Filter(links []string) []string {
	kept := make([]string, 0, len(links))
	for _, link := range links {
		if IsJobLink(link) {
			kept = append(kept, link)
		}
	}
	return kept
}
