package models

// NotSpecified marks a field no selector or fallback could resolve.
const NotSpecified = "Not specified"

// Columns is the fixed output column order.
var Columns = []string{
	"company_name",
	"job_title",
	"work_location",
	"job_location",
	"experience",
	"job_description",
	"responsibilities",
	"qualifications",
	"apply_link",
}

// JobRecord is one extracted posting. Every field always carries a value,
// NotSpecified when nothing was found.
type JobRecord struct {
	CompanyName      string `json:"company_name"`
	JobTitle         string `json:"job_title"`
	WorkLocation     string `json:"work_location"`
	JobLocation      string `json:"job_location"`
	Experience       string `json:"experience"`
	JobDescription   string `json:"job_description"`
	Responsibilities string `json:"responsibilities"`
	Qualifications   string `json:"qualifications"`
	ApplyLink        string `json:"apply_link"`
}

// NewJobRecord returns a record for url with every other field unresolved.
func NewJobRecord(url string) JobRecord {
	return JobRecord{
		CompanyName:      NotSpecified,
		JobTitle:         NotSpecified,
		WorkLocation:     NotSpecified,
		JobLocation:      NotSpecified,
		Experience:       NotSpecified,
		JobDescription:   NotSpecified,
		Responsibilities: NotSpecified,
		Qualifications:   NotSpecified,
		ApplyLink:        url,
	}
}

// Row returns the field values in Columns order.
func (r JobRecord) Row() []string {
	return []string{
		r.CompanyName,
		r.JobTitle,
		r.WorkLocation,
		r.JobLocation,
		r.Experience,
		r.JobDescription,
		r.Responsibilities,
		r.Qualifications,
		r.ApplyLink,
	}
}

// FromRow is the inverse of Row. Missing trailing cells become NotSpecified.
func FromRow(row []string) JobRecord {
	get := func(i int) string {
		if i < len(row) && row[i] != "" {
			return row[i]
		}
		return NotSpecified
	}
	return JobRecord{
		CompanyName:      get(0),
		JobTitle:         get(1),
		WorkLocation:     get(2),
		JobLocation:      get(3),
		Experience:       get(4),
		JobDescription:   get(5),
		Responsibilities: get(6),
		Qualifications:   get(7),
		ApplyLink:        get(8),
	}
}

// DedupKey identifies a posting for persistence-level deduplication.
func (r JobRecord) DedupKey() [2]string {
	return [2]string{r.JobTitle, r.CompanyName}
}
