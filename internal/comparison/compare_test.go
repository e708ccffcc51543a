package comparison

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-ranker/internal/types"
)

// mkResult builds a scoring result with uniform 0.2 weights so contribution
// deltas track score deltas directly.
func mkResult(filename string, scores map[string]float64) *types.ScoringResult {
	final := 0.0
	criteria := make(map[string]types.CriterionResult, len(types.CriterionOrder))
	for _, criterion := range types.CriterionOrder {
		score := scores[criterion]
		criteria[criterion] = types.CriterionResult{
			Score:                score,
			Weight:               0.2,
			WeightedContribution: score * 0.2,
		}
		final += score * 0.2
	}
	return &types.ScoringResult{
		CVFilename:           filename,
		FinalScore:           final,
		FinalScorePercentage: final * 100,
		CriterionScores:      criteria,
	}
}

func TestCompare_WinnerAndOverallDelta(t *testing.T) {
	a := mkResult("cv_a", map[string]float64{types.CriterionEducation: 1.0})
	b := mkResult("cv_b", map[string]float64{types.CriterionEducation: 0.5})

	cmp := Compare(a, b)

	assert.Equal(t, "A", cmp.OverallDelta.Winner)
	assert.InDelta(t, 0.1, cmp.OverallDelta.Absolute, 1e-9)
	assert.InDelta(t, 10.0, cmp.OverallDelta.Percentage, 1e-9)
	assert.Equal(t, "cv_a", cmp.CVA.Filename)
	assert.Equal(t, "cv_b", cmp.CVB.Filename)
}

func TestCompare_Tie(t *testing.T) {
	a := mkResult("cv_a", map[string]float64{types.CriterionEducation: 0.5})
	b := mkResult("cv_b", map[string]float64{types.CriterionEducation: 0.5})

	cmp := Compare(a, b)

	assert.Equal(t, "Tie", cmp.OverallDelta.Winner)
	assert.Equal(t, 0.0, cmp.OverallDelta.Absolute)
}

func TestCompare_UnnamedResultsDisplayAsUnknown(t *testing.T) {
	cmp := Compare(mkResult("", nil), mkResult("", nil))

	assert.Equal(t, "Unknown", cmp.CVA.Filename)
}

func TestCompare_CriterionDeltasCoverAllFive(t *testing.T) {
	a := mkResult("cv_a", map[string]float64{
		types.CriterionEducation:  0.8,
		types.CriterionExperience: 0.4,
	})
	b := mkResult("cv_b", map[string]float64{
		types.CriterionEducation:  0.5,
		types.CriterionExperience: 0.6,
	})

	cmp := Compare(a, b)

	require.Len(t, cmp.CriterionDeltas, 5)
	edu := cmp.CriterionDeltas[types.CriterionEducation]
	assert.InDelta(t, 0.3, edu.ScoreDelta, 1e-9)
	assert.InDelta(t, 0.06, edu.ContributionDelta, 1e-9)
	assert.Equal(t, 0.8, edu.AScore)
	assert.Equal(t, 0.5, edu.BScore)
}

func TestKeyDifferences_TopThreeByAbsoluteContribution(t *testing.T) {
	a := mkResult("cv_a", map[string]float64{
		types.CriterionEducation:  0.6, // delta +0.1
		types.CriterionExperience: 0.2, // delta -0.5
		types.CriterionCoherence:  0.9, // delta +0.3
		types.CriterionAwards:     0.5, // delta +0.2
	})
	b := mkResult("cv_b", map[string]float64{
		types.CriterionEducation:  0.5,
		types.CriterionExperience: 0.7,
		types.CriterionCoherence:  0.6,
		types.CriterionAwards:     0.3,
	})

	cmp := Compare(a, b)

	require.Len(t, cmp.KeyDifferences, 3)
	assert.Equal(t, types.CriterionExperience, cmp.KeyDifferences[0].Criterion)
	assert.Equal(t, types.CriterionCoherence, cmp.KeyDifferences[1].Criterion)
	assert.Equal(t, types.CriterionAwards, cmp.KeyDifferences[2].Criterion)
	assert.InDelta(t, 0.1, cmp.KeyDifferences[0].AbsContributionDelta, 1e-9)
}

func TestKeyDifferences_TiesKeepCanonicalOrder(t *testing.T) {
	a := mkResult("cv_a", map[string]float64{
		types.CriterionExperience: 0.5,
		types.CriterionCoherence:  0.5,
	})
	b := mkResult("cv_b", nil)

	cmp := Compare(a, b)

	assert.Equal(t, types.CriterionExperience, cmp.KeyDifferences[0].Criterion)
	assert.Equal(t, types.CriterionCoherence, cmp.KeyDifferences[1].Criterion)
	assert.Equal(t, types.CriterionEducation, cmp.KeyDifferences[2].Criterion)
}

func TestDeltaTable(t *testing.T) {
	a := mkResult("cv_a", map[string]float64{types.CriterionEducation: 0.8})
	b := mkResult("cv_b", map[string]float64{types.CriterionExperience: 0.8})

	cmp := Compare(a, b)

	require.Len(t, cmp.DeltaTable, 5)
	assert.Equal(t, "Education", cmp.DeltaTable[0].Criterion)
	assert.Equal(t, "A", cmp.DeltaTable[0].Winner)
	assert.Equal(t, "B", cmp.DeltaTable[1].Winner)
	assert.Equal(t, "Tie", cmp.DeltaTable[2].Winner)
	assert.Equal(t, "Awards Other", cmp.DeltaTable[4].Criterion)
	assert.Equal(t, 0.2, cmp.DeltaTable[0].Weight)
}

func TestComparePairwise(t *testing.T) {
	high := mkResult("high", map[string]float64{types.CriterionEducation: 0.9})
	low := mkResult("low", map[string]float64{types.CriterionEducation: 0.1})

	assert.Equal(t, 1, ComparePairwise(high, low))
	assert.Equal(t, -1, ComparePairwise(low, high))
	assert.Equal(t, 0, ComparePairwise(high, high))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Education", displayName("education"))
	assert.Equal(t, "Awards Other", displayName("awards_other"))
}
