package types

// CandidateSummary identifies one side of a comparison.
type CandidateSummary struct {
	Filename             string  `json:"filename"`
	FinalScore           float64 `json:"final_score"`
	FinalScorePercentage float64 `json:"final_score_percentage"`
}

// OverallDelta is the headline score gap between two compared CVs.
type OverallDelta struct {
	Absolute   float64 `json:"absolute"`
	Percentage float64 `json:"percentage"`
	Winner     string  `json:"winner"` // "A", "B" or "Tie"
}

// CriterionDelta holds per-criterion score and contribution deltas (A minus B).
type CriterionDelta struct {
	ScoreDelta        float64 `json:"score_delta"`
	ContributionDelta float64 `json:"contribution_delta"`
	AScore            float64 `json:"a_score"`
	BScore            float64 `json:"b_score"`
	AContribution     float64 `json:"a_contribution"`
	BContribution     float64 `json:"b_contribution"`
}

// KeyDifference is one of the criteria that matter most to a comparison gap.
type KeyDifference struct {
	Criterion            string  `json:"criterion"`
	ContributionDelta    float64 `json:"contribution_delta"`
	ScoreDelta           float64 `json:"score_delta"`
	AbsContributionDelta float64 `json:"abs_contribution_delta"`
}

// DeltaRow is one display row of the full five-criterion delta table.
type DeltaRow struct {
	Criterion         string  `json:"criterion"`
	Weight            float64 `json:"weight"`
	CVAScore          float64 `json:"cv_a_score"`
	CVBScore          float64 `json:"cv_b_score"`
	ScoreDelta        float64 `json:"score_delta"`
	CVAContribution   float64 `json:"cv_a_contribution"`
	CVBContribution   float64 `json:"cv_b_contribution"`
	ContributionDelta float64 `json:"contribution_delta"`
	Winner            string  `json:"winner"`
}

// ComparisonResult is the delta analysis between two scored CVs. It is a
// derived view over two ScoringResults and holds no independent state.
type ComparisonResult struct {
	CVA             CandidateSummary          `json:"cv_a"`
	CVB             CandidateSummary          `json:"cv_b"`
	OverallDelta    OverallDelta              `json:"overall_delta"`
	CriterionDeltas map[string]CriterionDelta `json:"criterion_deltas"`
	KeyDifferences  []KeyDifference           `json:"key_differences"`
	DeltaTable      []DeltaRow                `json:"delta_table"`
}

// ReasonEvidence carries the supporting spans for one explanation reason.
type ReasonEvidence struct {
	CVA []string `json:"cv_a"`
	CVB []string `json:"cv_b"`
}

// Reason is one human-readable explanation for a ranking gap.
type Reason struct {
	Rank              int            `json:"rank"`
	Criterion         string         `json:"criterion"`
	Reason            string         `json:"reason"`
	ScoreDelta        float64        `json:"score_delta"`
	ContributionDelta float64        `json:"contribution_delta"`
	Impact            string         `json:"impact"` // "High", "Medium" or "Low"
	Evidence          ReasonEvidence `json:"evidence"`
}

// Explanation renders a comparison into human-readable reasons with evidence.
type Explanation struct {
	Summary      string       `json:"summary"`
	TopReasons   []Reason     `json:"top_reasons"`
	DeltaTable   []DeltaRow   `json:"delta_table"`
	OverallDelta OverallDelta `json:"overall_delta"`
	CVAFilename  string       `json:"cv_a_filename"`
	CVBFilename  string       `json:"cv_b_filename"`
}
