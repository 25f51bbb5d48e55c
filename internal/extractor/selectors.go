package extractor

// SelectorConfig holds one ranked selector list per extracted field.
// An empty list means "use the default for that field" when merged.
type SelectorConfig struct {
	CompanyName      []string `yaml:"company_name" json:"company_name,omitempty"`
	JobTitle         []string `yaml:"job_title" json:"job_title,omitempty"`
	WorkLocation     []string `yaml:"work_location" json:"work_location,omitempty"`
	JobLocation      []string `yaml:"job_location" json:"job_location,omitempty"`
	Experience       []string `yaml:"experience" json:"experience,omitempty"`
	JobDescription   []string `yaml:"job_description" json:"job_description,omitempty"`
	Responsibilities []string `yaml:"responsibilities" json:"responsibilities,omitempty"`
	Qualifications   []string `yaml:"qualifications" json:"qualifications,omitempty"`
}

// DefaultSelectors returns the built-in cascades. Each call returns fresh
// slices so callers may modify the result.
func DefaultSelectors() SelectorConfig {
	return SelectorConfig{
		CompanyName: []string{
			"h1", ".company-name", ".company-title", ".employer-name",
			`[class*="company"]`, `[data-testid*="company"]`, ".brand-name",
			".organization-name", "title",
		},
		JobTitle: []string{
			"h1", "h2", ".job-title", ".position-title", ".role-title",
			`[class*="title"]`, `[class*="role"]`, `[class*="position"]`,
			`[data-testid*="title"]`, ".posting-headline",
		},
		WorkLocation: []string{
			`[class*="remote"]`, `[class*="hybrid"]`, `[class*="onsite"]`,
			`[class*="work-type"]`, `[class*="employment-type"]`,
			".location-type", ".work-arrangement",
		},
		JobLocation: []string{
			`[class*="location"]`, `[class*="city"]`, `[class*="address"]`,
			".job-location", ".office-location", ".workplace-location",
			`[data-testid*="location"]`, ".geographic-location",
		},
		Experience: []string{
			`[class*="experience"]`, `[class*="years"]`, `[class*="level"]`,
			".experience-level", ".seniority-level", ".career-level",
			`[class*="seniority"]`, ".job-level",
		},
		JobDescription: []string{
			`[class*="description"]`, `[class*="summary"]`, ".job-content",
			".posting-content", ".role-description", ".job-details",
			".content", "main", ".description-text",
		},
		Responsibilities: []string{
			`[class*="responsibilities"]`, `[class*="duties"]`, `[class*="role"]`,
			".what-you-will-do", ".key-responsibilities",
			".job-responsibilities", ".role-duties",
		},
		Qualifications: []string{
			`[class*="qualifications"]`, `[class*="requirements"]`,
			`[class*="skills"]`, ".what-we-need", ".required-skills",
			".job-requirements", ".minimum-qualifications",
		},
	}
}

// Merge returns c with every non-empty list of override replacing the
// corresponding list of c.
func (c SelectorConfig) Merge(override SelectorConfig) SelectorConfig {
	pick := func(base, over []string) []string {
		if len(over) > 0 {
			return append([]string(nil), over...)
		}
		return base
	}
	return SelectorConfig{
		CompanyName:      pick(c.CompanyName, override.CompanyName),
		JobTitle:         pick(c.JobTitle, override.JobTitle),
		WorkLocation:     pick(c.WorkLocation, override.WorkLocation),
		JobLocation:      pick(c.JobLocation, override.JobLocation),
		Experience:       pick(c.Experience, override.Experience),
		JobDescription:   pick(c.JobDescription, override.JobDescription),
		Responsibilities: pick(c.Responsibilities, override.Responsibilities),
		Qualifications:   pick(c.Qualifications, override.Qualifications),
	}
}

// Resolve merges override (may be nil) over the defaults.
func Resolve(override *SelectorConfig) SelectorConfig {
	if override == nil {
		return DefaultSelectors()
	}
	return DefaultSelectors().Merge(*override)
}

// IsZero reports whether no field carries an override.
func (c SelectorConfig) IsZero() bool {
	return len(c.CompanyName) == 0 && len(c.JobTitle) == 0 &&
		len(c.WorkLocation) == 0 && len(c.JobLocation) == 0 &&
		len(c.Experience) == 0 && len(c.JobDescription) == 0 &&
		len(c.Responsibilities) == 0 && len(c.Qualifications) == 0
}
