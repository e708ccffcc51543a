// Package comparison computes per-criterion deltas between two scored CVs
// and renders them into human-readable explanations.
package comparison

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/cv-ranker/internal/types"
)

const keyDifferenceLimit = 3

// Compare produces the delta analysis between two scoring results. All five
// criteria are compared regardless of what the underlying records contain.
func Compare(a, b *types.ScoringResult) *types.ComparisonResult {
	overallDelta := a.FinalScore - b.FinalScore

	winner := "Tie"
	if overallDelta > 0 {
		winner = "A"
	} else if overallDelta < 0 {
		winner = "B"
	}

	deltas := criterionDeltas(a, b)

	return &types.ComparisonResult{
		CVA:          summarize(a),
		CVB:          summarize(b),
		OverallDelta: types.OverallDelta{
			Absolute:   round4(overallDelta),
			Percentage: round2(overallDelta * 100),
			Winner:     winner,
		},
		CriterionDeltas: deltas,
		KeyDifferences:  keyDifferences(deltas),
		DeltaTable:      deltaTable(a, b),
	}
}

func summarize(r *types.ScoringResult) types.CandidateSummary {
	filename := r.CVFilename
	if filename == "" {
		filename = "Unknown"
	}
	return types.CandidateSummary{
		Filename:             filename,
		FinalScore:           r.FinalScore,
		FinalScorePercentage: r.FinalScorePercentage,
	}
}

func criterionDeltas(a, b *types.ScoringResult) map[string]types.CriterionDelta {
	deltas := make(map[string]types.CriterionDelta, len(types.CriterionOrder))
	for _, criterion := range types.CriterionOrder {
		ca := a.Criterion(criterion)
		cb := b.Criterion(criterion)
		deltas[criterion] = types.CriterionDelta{
			ScoreDelta:        round4(ca.Score - cb.Score),
			ContributionDelta: round4(ca.WeightedContribution - cb.WeightedContribution),
			AScore:            round4(ca.Score),
			BScore:            round4(cb.Score),
			AContribution:     round4(ca.WeightedContribution),
			BContribution:     round4(cb.WeightedContribution),
		}
	}
	return deltas
}

// keyDifferences picks the top criteria by absolute contribution delta.
// Ties keep the canonical criterion ordering.
func keyDifferences(deltas map[string]types.CriterionDelta) []types.KeyDifference {
	differences := make([]types.KeyDifference, 0, len(types.CriterionOrder))
	for _, criterion := range types.CriterionOrder {
		delta := deltas[criterion]
		differences = append(differences, types.KeyDifference{
			Criterion:            criterion,
			ContributionDelta:    delta.ContributionDelta,
			ScoreDelta:           delta.ScoreDelta,
			AbsContributionDelta: round4(math.Abs(delta.ContributionDelta)),
		})
	}

	sort.SliceStable(differences, func(i, j int) bool {
		return differences[i].AbsContributionDelta > differences[j].AbsContributionDelta
	})

	if len(differences) > keyDifferenceLimit {
		differences = differences[:keyDifferenceLimit]
	}
	return differences
}

func deltaTable(a, b *types.ScoringResult) []types.DeltaRow {
	rows := make([]types.DeltaRow, 0, len(types.CriterionOrder))
	for _, criterion := range types.CriterionOrder {
		ca := a.Criterion(criterion)
		cb := b.Criterion(criterion)
		contributionDelta := ca.WeightedContribution - cb.WeightedContribution

		winner := "Tie"
		if contributionDelta > 0 {
			winner = "A"
		} else if contributionDelta < 0 {
			winner = "B"
		}

		rows = append(rows, types.DeltaRow{
			Criterion:         displayName(criterion),
			Weight:            round2(ca.Weight),
			CVAScore:          round4(ca.Score),
			CVBScore:          round4(cb.Score),
			ScoreDelta:        round4(ca.Score - cb.Score),
			CVAContribution:   round4(ca.WeightedContribution),
			CVBContribution:   round4(cb.WeightedContribution),
			ContributionDelta: round4(contributionDelta),
			Winner:            winner,
		})
	}
	return rows
}

// ComparePairwise returns 1 if a outscores b, -1 if b outscores a, else 0.
func ComparePairwise(a, b *types.ScoringResult) int {
	switch {
	case a.FinalScore > b.FinalScore:
		return 1
	case b.FinalScore > a.FinalScore:
		return -1
	default:
		return 0
	}
}

// displayName renders a criterion id for human display, e.g.
// "awards_other" -> "Awards Other".
func displayName(criterion string) string {
	words := strings.Split(criterion, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
