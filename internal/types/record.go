// Package types provides type definitions for structured data used throughout the cv-ranker system.
package types

// EducationItem is a single education entry extracted from a CV.
type EducationItem struct {
	Degree       string  `json:"degree,omitempty"`
	Field        string  `json:"field,omitempty"`
	University   string  `json:"university,omitempty"`
	GPA          float64 `json:"gpa,omitempty"`
	Scale        float64 `json:"scale,omitempty"`
	EvidenceSpan string  `json:"evidence_span,omitempty"`
}

// ExperienceItem is a single work experience entry extracted from a CV.
type ExperienceItem struct {
	Title          string `json:"title,omitempty"`
	Org            string `json:"org,omitempty"`
	Start          string `json:"start,omitempty"`
	End            string `json:"end,omitempty"`
	DurationMonths int    `json:"duration_months,omitempty"`
	Domain         string `json:"domain,omitempty"`
	EvidenceSpan   string `json:"evidence_span,omitempty"`
}

// PublicationItem is a single publication entry extracted from a CV.
type PublicationItem struct {
	Title          string  `json:"title,omitempty"`
	Venue          string  `json:"venue,omitempty"`
	Year           int     `json:"year,omitempty"`
	Type           string  `json:"type,omitempty"`
	AuthorPosition int     `json:"author_position,omitempty"`
	JournalIF      float64 `json:"journal_if,omitempty"`
	Domain         string  `json:"domain,omitempty"`
	EvidenceSpan   string  `json:"evidence_span,omitempty"`
}

// AwardItem is a single award or achievement entry extracted from a CV.
type AwardItem struct {
	Title        string `json:"title,omitempty"`
	Issuer       string `json:"issuer,omitempty"`
	Year         int    `json:"year,omitempty"`
	Type         string `json:"type,omitempty"`
	EvidenceSpan string `json:"evidence_span,omitempty"`
}

// CVRecord is the extraction output for one CV. It is immutable input to the
// scoring core; empty sections mean "no data", not zero-valued entries.
type CVRecord struct {
	Education    []EducationItem   `json:"education,omitempty"`
	Experience   []ExperienceItem  `json:"experience,omitempty"`
	Publications []PublicationItem `json:"publications,omitempty"`
	Awards       []AwardItem       `json:"awards,omitempty"`
}
