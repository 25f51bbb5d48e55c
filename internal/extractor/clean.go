package extractor

import (
	"go-career-scraper/internal/document"
	"go-career-scraper/internal/models"
)

const (
	maxCleanLongLen = 1000
	ellipsis        = "..."
)

// Clean collapses whitespace in every text field and caps the long-text
// fields at maxCleanLongLen characters, ellipsis included. ApplyLink is
// left untouched.
func Clean(r models.JobRecord) models.JobRecord {
	r.CompanyName = document.CollapseSpace(r.CompanyName)
	r.JobTitle = document.CollapseSpace(r.JobTitle)
	r.WorkLocation = document.CollapseSpace(r.WorkLocation)
	r.JobLocation = document.CollapseSpace(r.JobLocation)
	r.Experience = document.CollapseSpace(r.Experience)
	r.JobDescription = capLong(document.CollapseSpace(r.JobDescription))
	r.Responsibilities = capLong(document.CollapseSpace(r.Responsibilities))
	r.Qualifications = capLong(document.CollapseSpace(r.Qualifications))
	return r
}

func capLong(s string) string {
	if document.Len(s) <= maxCleanLongLen {
		return s
	}
	return document.Truncate(s, maxCleanLongLen-len(ellipsis)) + ellipsis
}
