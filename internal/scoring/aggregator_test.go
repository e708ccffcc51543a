package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-ranker/internal/config"
	"github.com/jonathan/cv-ranker/internal/types"
)

func TestCalculateFinalScore_EducationOnlyRecord(t *testing.T) {
	agg := NewAggregator(config.Default(), stubResolver{
		levels: map[string]int{"MSc": 2},
	})

	rec := &types.CVRecord{Education: []types.EducationItem{
		{Degree: "MSc", University: "Somewhere", GPA: 3.6, Scale: 4.0},
	}}

	result := agg.CalculateFinalScore(rec)

	// education 0.72*0.3, coherence neutral 0.5*0.1, the rest zero.
	assert.InDelta(t, 0.266, result.FinalScore, 1e-9)
	assert.InDelta(t, 26.6, result.FinalScorePercentage, 1e-9)
	require.Len(t, result.CriterionScores, 5)

	edu := result.Criterion(types.CriterionEducation)
	assert.InDelta(t, 0.72, edu.Score, 1e-9)
	assert.Equal(t, 0.3, edu.Weight)
	assert.InDelta(t, 0.216, edu.WeightedContribution, 1e-9)

	exp := result.Criterion(types.CriterionExperience)
	assert.Equal(t, 0.0, exp.Score)
	assert.False(t, exp.Details.HasData)

	assert.Equal(t, "machine learning", result.ConfigUsed.TargetDomain)
	assert.Equal(t, config.Default().Weights, result.ConfigUsed.Weights)
}

func TestCalculateFinalScore_ResultStaysInUnitRange(t *testing.T) {
	agg := NewAggregator(config.Default(), stubResolver{
		tiers:  map[string]float64{"MIT": 1.0},
		venues: map[string]float64{"NeurIPS": 1.0},
		levels: map[string]int{"PhD": 3},
	})

	rec := &types.CVRecord{
		Education: []types.EducationItem{{Degree: "PhD", University: "MIT", GPA: 4.0, Scale: 4.0}},
		Experience: []types.ExperienceItem{
			{Title: "Director of ML", DurationMonths: 120, Domain: "machine learning"},
		},
		Publications: []types.PublicationItem{
			{Venue: "NeurIPS", Type: "conference", AuthorPosition: 1},
		},
		Awards: []types.AwardItem{{Title: "Gold Medal", Type: "international", Issuer: "IEEE"}},
	}

	result := agg.CalculateFinalScore(rec)

	assert.LessOrEqual(t, result.FinalScore, 1.0)
	assert.Greater(t, result.FinalScore, 0.9)
}

func TestTopStrengths(t *testing.T) {
	agg := NewAggregator(config.Default(), stubResolver{levels: map[string]int{"MSc": 2}})
	result := agg.CalculateFinalScore(&types.CVRecord{Education: []types.EducationItem{
		{Degree: "MSc", GPA: 3.6, Scale: 4.0},
	}})

	top := TopStrengths(result, 2)

	require.Len(t, top, 2)
	assert.Equal(t, types.CriterionEducation, top[0].Criterion)
	assert.Equal(t, types.CriterionCoherence, top[1].Criterion)
}

func TestImprovementAreas_TiesKeepCanonicalOrder(t *testing.T) {
	agg := NewAggregator(config.Default(), stubResolver{levels: map[string]int{"MSc": 2}})
	result := agg.CalculateFinalScore(&types.CVRecord{Education: []types.EducationItem{
		{Degree: "MSc", GPA: 3.6, Scale: 4.0},
	}})

	areas := ImprovementAreas(result, 3)

	// experience, publications and awards all score zero; canonical
	// criterion order breaks the tie.
	require.Len(t, areas, 3)
	assert.Equal(t, types.CriterionExperience, areas[0].Criterion)
	assert.Equal(t, types.CriterionPublications, areas[1].Criterion)
	assert.Equal(t, types.CriterionAwards, areas[2].Criterion)
	assert.False(t, areas[0].HasData)
}
