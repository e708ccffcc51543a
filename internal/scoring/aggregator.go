package scoring

import (
	"sort"

	"github.com/jonathan/cv-ranker/internal/config"
	"github.com/jonathan/cv-ranker/internal/types"
)

// Aggregator runs all five criterion scorers over a record and combines
// their scores with the configured weights into one ScoringResult.
type Aggregator struct {
	cfg     *config.Config
	scorers []Scorer
}

// NewAggregator constructs an aggregator with the five standard scorers
// wired to the given configuration and catalogue resolver.
func NewAggregator(cfg *config.Config, resolver Resolver) *Aggregator {
	return &Aggregator{
		cfg: cfg,
		scorers: []Scorer{
			NewEducationScorer(cfg, resolver),
			NewExperienceScorer(cfg),
			NewPublicationScorer(cfg, resolver),
			NewCoherenceScorer(cfg),
			NewAwardsScorer(cfg),
		},
	}
}

// CalculateFinalScore scores rec on all five criteria and returns the
// weighted combination. The configuration is assumed valid (weights summing
// to 1); the result is clamped to [0,1] regardless.
func (a *Aggregator) CalculateFinalScore(rec *types.CVRecord) *types.ScoringResult {
	criterionScores := make(map[string]types.CriterionResult, len(a.scorers))
	finalScore := 0.0

	for _, scorer := range a.scorers {
		score, details := scorer.Score(rec)
		weight := a.cfg.Weight(scorer.Name())
		criterionScores[scorer.Name()] = types.CriterionResult{
			Score:                round4(score),
			Weight:               weight,
			WeightedContribution: round4(score * weight),
			Details:              details,
		}
		finalScore += score * weight
	}

	finalScore = clampUnit(finalScore)

	return &types.ScoringResult{
		FinalScore:           round4(finalScore),
		FinalScorePercentage: round2(finalScore * 100),
		CriterionScores:      criterionScores,
		ConfigUsed: types.ConfigUsed{
			Weights:      a.cfg.Weights,
			TargetDomain: a.cfg.Policies.TargetDomain,
		},
	}
}

// Strength is one entry of a strengths or improvement-areas summary.
type Strength struct {
	Criterion    string  `json:"criterion"`
	Score        float64 `json:"score"`
	Contribution float64 `json:"contribution,omitempty"`
	HasData      bool    `json:"has_data"`
}

// TopStrengths returns the n criteria with the largest weighted
// contributions. Pure read over an already-computed result.
func TopStrengths(result *types.ScoringResult, n int) []Strength {
	strengths := collect(result)
	sort.SliceStable(strengths, func(i, j int) bool {
		return strengths[i].Contribution > strengths[j].Contribution
	})
	if n < len(strengths) {
		strengths = strengths[:n]
	}
	return strengths
}

// ImprovementAreas returns the n criteria with the lowest raw scores. Pure
// read over an already-computed result.
func ImprovementAreas(result *types.ScoringResult, n int) []Strength {
	areas := collect(result)
	sort.SliceStable(areas, func(i, j int) bool {
		return areas[i].Score < areas[j].Score
	})
	if n < len(areas) {
		areas = areas[:n]
	}
	return areas
}

// collect walks criteria in canonical order so equal values sort stably.
func collect(result *types.ScoringResult) []Strength {
	strengths := make([]Strength, 0, len(types.CriterionOrder))
	for _, criterion := range types.CriterionOrder {
		cr := result.Criterion(criterion)
		strengths = append(strengths, Strength{
			Criterion:    criterion,
			Score:        cr.Score,
			Contribution: cr.WeightedContribution,
			HasData:      cr.Details.HasData,
		})
	}
	return strengths
}
