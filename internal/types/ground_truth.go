package types

import (
	"github.com/go-playground/validator/v10"
)

// GroundTruth is a reference ranking plus relevance table used to evaluate
// predicted ranking quality.
type GroundTruth struct {
	Description     string             `json:"description,omitempty"`
	SampleSize      int                `json:"sample_size,omitempty"`
	Ranking         []string           `json:"ranking" validate:"required,min=1"`
	RelevanceScores map[string]float64 `json:"relevance_scores" validate:"required,min=1"`
}

// Validate checks that the ground truth carries a usable ranking and
// relevance table.
func (g *GroundTruth) Validate() error {
	validate := validator.New()
	return validate.Struct(g)
}

// PreferencePair is one annotated pairwise judgment: better should outrank worse.
type PreferencePair struct {
	Better string `json:"better" validate:"required"`
	Worse  string `json:"worse" validate:"required"`
	Reason string `json:"reason,omitempty"`
}

// PairwisePreferences is the preference-pairs artifact.
type PairwisePreferences struct {
	Description string           `json:"description,omitempty"`
	TotalPairs  int              `json:"total_pairs"`
	Pairs       []PreferencePair `json:"pairs" validate:"dive"`
}

// Validate checks that every pair names both sides.
func (p *PairwisePreferences) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
