package extractor

import (
	"strings"
	"testing"

	"go-career-scraper/internal/document"
	"go-career-scraper/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingURL = "https://acme.example/jobs/42"

func parse(t *testing.T, content string) *document.Document {
	t.Helper()
	doc, err := document.FromString(content, postingURL)
	require.NoError(t, err)
	return doc
}

func missingNames() *SelectorConfig {
	return &SelectorConfig{
		CompanyName: []string{".no-company"},
		JobTitle:    []string{".no-title"},
	}
}

func TestExtract_TitleFallback(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		wantTitle   string
		wantCompany string
	}{
		{name: "dash separator", title: "Senior Engineer - Acme Corp", wantTitle: "Senior Engineer", wantCompany: "Acme Corp"},
		{name: "pipe separator", title: "Acme Corp | Platform Engineer", wantTitle: "Platform Engineer", wantCompany: "Acme Corp"},
		{name: "several dashes use first and last", title: "Data Engineer - Berlin - Acme", wantTitle: "Data Engineer", wantCompany: "Acme"},
		{name: "no separator", title: "Careers", wantTitle: models.NotSpecified, wantCompany: models.NotSpecified},
		{name: "empty half keeps sentinel", title: "Engineer - ", wantTitle: "Engineer", wantCompany: models.NotSpecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, "<html><head><title>"+tt.title+"</title></head><body><p>Nothing here</p></body></html>")
			rec := Extract(doc, postingURL, missingNames())
			require.NotNil(t, rec)
			assert.Equal(t, tt.wantTitle, rec.JobTitle)
			assert.Equal(t, tt.wantCompany, rec.CompanyName)
		})
	}
}

func TestExtract_TitleFallbackOnlyFillsSentinels(t *testing.T) {
	doc := parse(t, `<html><head><title>Senior Engineer - Acme Corp</title></head>
		<body><div class="real-title">Principal Engineer</div></body></html>`)

	rec := Extract(doc, postingURL, &SelectorConfig{
		CompanyName: []string{".no-company"},
		JobTitle:    []string{".real-title"},
	})

	assert.Equal(t, "Principal Engineer", rec.JobTitle)
	assert.Equal(t, "Acme Corp", rec.CompanyName)
}

func TestExtract_PatternFallbacks(t *testing.T) {
	doc := parse(t, `<html><body><div class="details">
		<p>We need 5+ years experience with Go.</p>
		<p>This position is fully remote.</p>
	</div></body></html>`)

	rec := Extract(doc, postingURL, nil)

	assert.Equal(t, "5+ years experience", rec.Experience)
	assert.Equal(t, "Remote", rec.WorkLocation)
}

func TestInferWorkLocation(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{text: "Fully REMOTE, hybrid optional", want: "Remote", ok: true},
		{text: "Hybrid or onsite", want: "Hybrid", ok: true},
		{text: "Work on-site in Lyon", want: "On-site", ok: true},
		{text: "Onsite only", want: "On-site", ok: true},
		{text: "Office in Lyon", ok: false},
	}
	for _, tt := range tests {
		got, ok := inferWorkLocation(tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestInferExperience(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{text: "at least 2 years of experience", want: "2 years of experience", ok: true},
		{text: "3 to 5 years of experience", want: "5 years of experience", ok: true},
		{text: "3 to 5 years in backend", want: "3 to 5 years", ok: true},
		{text: "Great for Entry Level candidates", want: "Entry Level", ok: true},
		{text: "mid level or SENIOR", want: "mid level", ok: true},
		{text: "no requirement stated", ok: false},
	}
	for _, tt := range tests {
		got, ok := inferExperience(tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestExtract_CascadeOrderAndAcceptance(t *testing.T) {
	doc := parse(t, `<html><body>
		<span class="b">Second choice</span>
		<span class="a">ab</span>
		<span class="a">Cookie preferences</span>
		<span class="a">  Lead
			Designer </span>
	</body></html>`)

	rec := Extract(doc, postingURL, &SelectorConfig{JobTitle: []string{".a", ".b"}})

	assert.Equal(t, "Lead Designer", rec.JobTitle)
}

func TestAcceptShort(t *testing.T) {
	assert.False(t, acceptShort("ab"))
	assert.True(t, acceptShort("Dev"))
	assert.False(t, acceptShort("Privacy notice"))
	assert.False(t, acceptShort("TERMS apply"))
	assert.True(t, acceptShort(strings.Repeat("x", 4999)))
	assert.False(t, acceptShort(strings.Repeat("x", 5000)))
}

func TestExtract_LongFields(t *testing.T) {
	short := "Build services."
	long := strings.Repeat("Design and operate distributed systems. ", 60)
	doc := parse(t, `<html><body>
		<div class="responsibilities">`+short+`</div>
		<div class="job-description"><p>`+long+`</p></div>
		<div class="requirements"><ul><li>Go</li><li>SQL and a lot of patience for legacy code, honestly quite a lot</li></ul></div>
	</body></html>`)

	rec := Extract(doc, postingURL, nil)

	assert.Equal(t, models.NotSpecified, rec.Responsibilities)
	assert.Equal(t, 1000, document.Len(rec.JobDescription))
	assert.True(t, strings.HasSuffix(rec.JobDescription, "..."))
	assert.True(t, strings.HasPrefix(rec.JobDescription, "Design and operate distributed systems."))
	assert.Equal(t, "Go SQL and a lot of patience for legacy code, honestly quite a lot", rec.Qualifications)
}

func TestExtract_EmptyPageUsesSentinels(t *testing.T) {
	rec := Extract(parse(t, "<html><body></body></html>"), postingURL, nil)
	require.NotNil(t, rec)

	row := rec.Row()
	require.Len(t, row, len(models.Columns))
	for i, v := range row[:8] {
		assert.Equal(t, models.NotSpecified, v, models.Columns[i])
	}
	assert.Equal(t, postingURL, rec.ApplyLink)
}

func TestExtract_ApplyLinkIsInputURL(t *testing.T) {
	doc := parse(t, `<html><body><a class="apply" href="https://ats.example/apply/9">Apply now</a></body></html>`)
	rec := Extract(doc, "https://acme.example/jobs/42?src=list", nil)
	assert.Equal(t, "https://acme.example/jobs/42?src=list", rec.ApplyLink)
}

func TestExtract_Idempotent(t *testing.T) {
	doc := parse(t, `<html><head><title>Backend Engineer - Acme</title></head><body>
		<h1>Backend Engineer</h1>
		<div class="job-location">Berlin, Germany</div>
		<section class="job-description">`+strings.Repeat("You will own the billing platform end to end. ", 30)+`</section>
		<p>Hybrid, 3 to 5 years</p>
	</body></html>`)

	first := Extract(doc, postingURL, nil)
	second := Extract(doc, postingURL, nil)
	assert.Equal(t, *first, *second)
	assert.Equal(t, "Berlin, Germany", first.JobLocation)
	assert.Equal(t, "Hybrid", first.WorkLocation)
	assert.Equal(t, "3 to 5 years", first.Experience)
}

func TestExtract_NilDocument(t *testing.T) {
	assert.Nil(t, Extract(nil, postingURL, nil))
}

func TestSelectorConfig_Merge(t *testing.T) {
	merged := Resolve(&SelectorConfig{
		JobTitle:       []string{".posting-title"},
		Qualifications: []string{".must-have"},
	})
	defaults := DefaultSelectors()

	assert.Equal(t, []string{".posting-title"}, merged.JobTitle)
	assert.Equal(t, []string{".must-have"}, merged.Qualifications)
	assert.Equal(t, defaults.CompanyName, merged.CompanyName)
	assert.Equal(t, defaults.JobDescription, merged.JobDescription)
	assert.Equal(t, defaults, Resolve(nil))
	assert.True(t, SelectorConfig{}.IsZero())
	assert.False(t, SelectorConfig{Experience: []string{".x"}}.IsZero())
}

func TestClean(t *testing.T) {
	rec := models.NewJobRecord("https://acme.example/jobs/1")
	rec.JobTitle = "  Go\n\tDeveloper "
	rec.Responsibilities = strings.Repeat("a", 1000)
	rec.Qualifications = strings.Repeat("é", 1001)

	cleaned := Clean(rec)

	assert.Equal(t, "Go Developer", cleaned.JobTitle)
	assert.Equal(t, strings.Repeat("a", 1000), cleaned.Responsibilities)
	assert.Equal(t, 1000, document.Len(cleaned.Qualifications))
	assert.True(t, strings.HasSuffix(cleaned.Qualifications, "..."))
	assert.Equal(t, cleaned, Clean(cleaned))
}
