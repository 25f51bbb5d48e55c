// Package extractor pulls the fields of a job posting out of arbitrary HTML
// with ranked selector cascades, page-text heuristics and the page title.
package extractor

import (
	"go-career-scraper/internal/document"
	"go-career-scraper/internal/models"
)

// Extract builds the record for the posting at url. selectors overrides the
// default cascades per field and may be nil. A nil doc yields nil.
func Extract(doc *document.Document, url string, selectors *SelectorConfig) *models.JobRecord {
	if doc == nil {
		return nil
	}
	cfg := Resolve(selectors)
	rec := models.NewJobRecord(url)

	short := func(dst *string, list []string) {
		if text, ok := extractShort(doc, list); ok {
			*dst = text
		}
	}
	long := func(dst *string, list []string) {
		if text, ok := extractLong(doc, list); ok {
			*dst = text
		}
	}

	short(&rec.CompanyName, cfg.CompanyName)
	short(&rec.JobTitle, cfg.JobTitle)
	short(&rec.WorkLocation, cfg.WorkLocation)
	short(&rec.JobLocation, cfg.JobLocation)
	short(&rec.Experience, cfg.Experience)
	long(&rec.JobDescription, cfg.JobDescription)
	long(&rec.Responsibilities, cfg.Responsibilities)
	long(&rec.Qualifications, cfg.Qualifications)

	if rec.WorkLocation == models.NotSpecified || rec.Experience == models.NotSpecified {
		pageText := doc.PageText()
		if rec.WorkLocation == models.NotSpecified {
			if label, ok := inferWorkLocation(pageText); ok {
				rec.WorkLocation = label
			}
		}
		if rec.Experience == models.NotSpecified {
			if exp, ok := inferExperience(pageText); ok {
				rec.Experience = exp
			}
		}
	}

	if rec.JobTitle == models.NotSpecified || rec.CompanyName == models.NotSpecified {
		if title, ok := doc.Title(); ok {
			if jobTitle, company, ok := splitTitle(title); ok {
				if rec.JobTitle == models.NotSpecified && jobTitle != "" {
					rec.JobTitle = jobTitle
				}
				if rec.CompanyName == models.NotSpecified && company != "" {
					rec.CompanyName = company
				}
			}
		}
	}

	cleaned := Clean(rec)
	return &cleaned
}
