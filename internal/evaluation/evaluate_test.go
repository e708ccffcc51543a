package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-ranker/internal/types"
)

func TestEvaluate_FullInput(t *testing.T) {
	list := rankedList(6)
	gt := &types.GroundTruth{
		Ranking:         []string{"cv_a", "cv_b", "cv_c", "cv_d", "cv_e", "cv_f"},
		RelevanceScores: map[string]float64{"cv_a": 3, "cv_b": 2, "cv_c": 1, "cv_d": 1, "cv_e": 1, "cv_f": 1},
	}
	pairs := &types.PairwisePreferences{
		TotalPairs: 2,
		Pairs: []types.PreferencePair{
			{Better: "cv_a", Worse: "cv_c"},
			{Better: "cv_b", Worse: "cv_e"},
		},
	}
	explanations := []*types.Explanation{
		{TopReasons: []types.Reason{{Evidence: types.ReasonEvidence{CVA: []string{"span"}}}}},
	}

	report := Evaluate(Input{
		Ranked:       list,
		GroundTruth:  gt,
		Pairs:        pairs,
		Explanations: explanations,
		Source:       "annotated",
	})

	assert.Equal(t, 6, report.TotalCVs)
	assert.Equal(t, "annotated", report.GroundTruthSource)
	assert.NotEmpty(t, report.EvaluationDate)

	require.NotNil(t, report.Metrics.KendallTau)
	assert.Equal(t, 1.0, report.Metrics.KendallTau.Value)
	assert.True(t, report.Metrics.KendallTau.Significant)

	require.NotNil(t, report.Metrics.SpearmanRho)
	assert.Equal(t, 1.0, report.Metrics.SpearmanRho.Value)

	require.Len(t, report.Metrics.NDCG, 3)
	assert.Equal(t, 1.0, report.Metrics.NDCG["ndcg@5"])
	assert.Contains(t, report.Metrics.NDCG, "ndcg@10")
	assert.Contains(t, report.Metrics.NDCG, "ndcg@20")

	require.NotNil(t, report.Metrics.MAP)
	assert.Equal(t, 1.0, *report.Metrics.MAP)

	require.NotNil(t, report.Metrics.PairwiseAccuracy)
	assert.Equal(t, 1.0, report.Metrics.PairwiseAccuracy.Value)
	assert.Equal(t, 2, report.Metrics.PairwiseAccuracy.TotalPairs)

	require.NotNil(t, report.Metrics.Faithfulness)
	assert.Equal(t, 1.0, report.Metrics.Faithfulness.EvidenceMatchRate)

	require.NotNil(t, report.ScoreDistribution)
	assert.Equal(t, 6, report.ScoreDistribution.TotalCandidates)
	assert.Len(t, report.ScoreDistribution.TopCandidates, 5)
}

func TestEvaluate_OmitsSectionsWithoutInputs(t *testing.T) {
	report := Evaluate(Input{Ranked: rankedList(4)})

	assert.Nil(t, report.Metrics.KendallTau)
	assert.Nil(t, report.Metrics.SpearmanRho)
	assert.Nil(t, report.Metrics.NDCG)
	assert.Nil(t, report.Metrics.MAP)
	assert.Nil(t, report.Metrics.PairwiseAccuracy)
	assert.Nil(t, report.Metrics.Faithfulness)
	assert.NotNil(t, report.ScoreDistribution, "distribution statistics never need annotations")
}

func TestEvaluate_CustomNDCGCutoffs(t *testing.T) {
	gt := &types.GroundTruth{
		Ranking:         []string{"cv_a", "cv_b"},
		RelevanceScores: map[string]float64{"cv_a": 2, "cv_b": 1},
	}

	report := Evaluate(Input{
		Ranked:      rankedList(2),
		GroundTruth: gt,
		NDCGKs:      []int{1},
	})

	require.Len(t, report.Metrics.NDCG, 1)
	assert.Contains(t, report.Metrics.NDCG, "ndcg@1")
}

func TestEvaluate_EmptyPairsListStaysNil(t *testing.T) {
	report := Evaluate(Input{
		Ranked: rankedList(3),
		Pairs:  &types.PairwisePreferences{},
	})

	assert.Nil(t, report.Metrics.PairwiseAccuracy)
}
