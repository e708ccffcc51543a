package types

// Criterion names. Scoring, comparison and explanation always operate over
// exactly these five, in this order.
const (
	CriterionEducation    = "education"
	CriterionExperience   = "experience"
	CriterionPublications = "publications"
	CriterionCoherence    = "coherence"
	CriterionAwards       = "awards_other"
)

// CriterionOrder is the canonical criterion ordering, used for deterministic
// iteration and tie-breaking.
var CriterionOrder = []string{
	CriterionEducation,
	CriterionExperience,
	CriterionPublications,
	CriterionCoherence,
	CriterionAwards,
}

// CriterionDetails carries the diagnostic breakdown attached to every
// criterion score. SubScores, HasData and Evidence are always populated;
// the remaining fields are criterion-specific.
type CriterionDetails struct {
	SubScores             map[string]float64 `json:"sub_scores"`
	FinalScore            float64            `json:"final_score"`
	HasData               bool               `json:"has_data"`
	MissingPenaltyApplied bool               `json:"missing_penalty_applied"`
	Evidence              []string           `json:"evidence"`
	TotalMonths           int                `json:"total_months,omitempty"`
	TotalYears            float64            `json:"total_years,omitempty"`
	TotalPublications     int                `json:"total_publications,omitempty"`
	TotalAwards           int                `json:"total_awards,omitempty"`
	DominantDomain        string             `json:"dominant_domain,omitempty"`
	Breakdown             any                `json:"breakdown,omitempty"`
}

// CriterionResult is one criterion's contribution to a final score.
type CriterionResult struct {
	Score                float64          `json:"score"`
	Weight               float64          `json:"weight"`
	WeightedContribution float64          `json:"weighted_contribution"`
	Details              CriterionDetails `json:"details"`
}

// ConfigUsed records the configuration a ScoringResult was produced under.
type ConfigUsed struct {
	Weights      map[string]float64 `json:"weights"`
	TargetDomain string             `json:"target_domain,omitempty"`
}

// ScoringResult is the full explainable score for one CV. It is created once
// per record per scoring run and never mutated afterwards.
type ScoringResult struct {
	CVFilename           string                     `json:"cv_filename,omitempty"`
	FinalScore           float64                    `json:"final_score"`
	FinalScorePercentage float64                    `json:"final_score_percentage"`
	CriterionScores      map[string]CriterionResult `json:"criterion_scores"`
	ConfigUsed           ConfigUsed                 `json:"config_used"`
}

// Criterion returns the named criterion result, or a zero value when the
// result predates the criterion (defensive read used by comparison).
func (r *ScoringResult) Criterion(name string) CriterionResult {
	if r == nil || r.CriterionScores == nil {
		return CriterionResult{}
	}
	return r.CriterionScores[name]
}

// EducationBreakdownRow is the per-entry education breakdown.
type EducationBreakdownRow struct {
	Degree      string  `json:"degree"`
	University  string  `json:"university"`
	GPA         string  `json:"gpa"`
	TierScore   float64 `json:"tier_score"`
	DegreeLevel int     `json:"degree_level"`
}

// ExperienceBreakdownRow is the per-entry experience breakdown.
type ExperienceBreakdownRow struct {
	Title          string `json:"title"`
	Org            string `json:"org"`
	DurationMonths int    `json:"duration_months"`
	Domain         string `json:"domain"`
	SeniorityLevel string `json:"seniority_level"`
}

// PublicationBreakdownRow is the per-entry publication breakdown.
type PublicationBreakdownRow struct {
	Title          string  `json:"title"`
	Venue          string  `json:"venue"`
	Year           int     `json:"year,omitempty"`
	Type           string  `json:"type"`
	AuthorPosition int     `json:"author_position,omitempty"`
	QualityMetric  float64 `json:"quality_metric"`
	QualityType    string  `json:"quality_type"`
	Domain         string  `json:"domain,omitempty"`
}

// AwardBreakdownRow is the per-entry award breakdown.
type AwardBreakdownRow struct {
	Title         string `json:"title"`
	Issuer        string `json:"issuer"`
	Year          int    `json:"year,omitempty"`
	Type          string `json:"type"`
	PrestigeLevel string `json:"prestige_level"`
}

// CareerStep is one experience entry in the coherence breakdown.
type CareerStep struct {
	Title     string `json:"title"`
	Domain    string `json:"domain"`
	Seniority string `json:"seniority"`
}

// CoherenceBreakdown summarizes the coherence factors for one CV.
type CoherenceBreakdown struct {
	TotalExperiences   int            `json:"total_experiences"`
	DomainDistribution map[string]int `json:"domain_distribution"`
	CareerPath         []CareerStep   `json:"career_path"`
}
