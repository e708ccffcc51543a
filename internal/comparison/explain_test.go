package comparison

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-ranker/internal/types"
)

func withDetails(r *types.ScoringResult, criterion string, details types.CriterionDetails) *types.ScoringResult {
	cr := r.CriterionScores[criterion]
	cr.Details = details
	r.CriterionScores[criterion] = cr
	return r
}

func TestExplain_SummaryAndReasons(t *testing.T) {
	a := mkResult("brilliant_cv", map[string]float64{types.CriterionEducation: 1.0})
	b := mkResult("average_cv", map[string]float64{types.CriterionEducation: 0.4})

	expl := Explain(a, b)

	assert.Equal(t,
		"brilliant_cv (Score: 20.00%) ranks higher than average_cv (Score: 8.00%) by 12.00 percentage points. "+
			"The primary advantage is in Education.",
		expl.Summary)
	assert.Equal(t, "brilliant_cv", expl.CVAFilename)
	assert.Equal(t, "average_cv", expl.CVBFilename)
	require.Len(t, expl.TopReasons, 3)
	assert.Equal(t, 1, expl.TopReasons[0].Rank)
	assert.Equal(t, "Education", expl.TopReasons[0].Criterion)
	require.Len(t, expl.DeltaTable, 5)
}

func TestImpact(t *testing.T) {
	assert.Equal(t, "High", impact(0.11))
	assert.Equal(t, "High", impact(-0.2))
	assert.Equal(t, "Medium", impact(0.1))
	assert.Equal(t, "Medium", impact(0.06))
	assert.Equal(t, "Low", impact(0.05))
	assert.Equal(t, "Low", impact(0.0))
}

func TestExplainEducation_NamesDrivers(t *testing.T) {
	a := types.CriterionDetails{SubScores: map[string]float64{
		"university_tier": 1.0, "gpa": 0.9, "degree_level": 0.5,
	}}
	b := types.CriterionDetails{SubScores: map[string]float64{
		"university_tier": 0.4, "gpa": 0.5, "degree_level": 0.5,
	}}

	text := explainEducation(a, b, 0.3)

	assert.Equal(t, "Stronger education due to higher-tier university, better GPA.", text)
}

func TestExplainEducation_GenericFallback(t *testing.T) {
	a := types.CriterionDetails{SubScores: map[string]float64{"gpa": 0.55}}
	b := types.CriterionDetails{SubScores: map[string]float64{"gpa": 0.5}}

	text := explainEducation(a, b, 0.05)

	assert.Equal(t, "Better overall education profile (score advantage: 5.00%).", text)
}

func TestExplainExperience_YearsDifference(t *testing.T) {
	a := types.CriterionDetails{
		SubScores:   map[string]float64{"duration": 0.8, "domain_match": 0.5, "seniority": 0.5},
		TotalMonths: 60,
	}
	b := types.CriterionDetails{
		SubScores:   map[string]float64{"duration": 0.3, "domain_match": 0.5, "seniority": 0.5},
		TotalMonths: 30,
	}

	text := explainExperience(a, b, 0.25)

	assert.Equal(t, "Stronger experience: 2.5 more years of experience.", text)
}

func TestExplainPublications_CountAndQuality(t *testing.T) {
	a := types.CriterionDetails{
		SubScores:         map[string]float64{"if": 0.9, "author_position": 0.5, "venue_quality": 0.5},
		TotalPublications: 3,
	}
	b := types.CriterionDetails{
		SubScores:         map[string]float64{"if": 0.4, "author_position": 0.5, "venue_quality": 0.5},
		TotalPublications: 0,
	}

	text := explainPublications(a, b, 0.3)

	assert.Equal(t, "Stronger research profile: 3 more publications, higher impact factor journals.", text)
}

func TestExplainCoherence(t *testing.T) {
	a := types.CriterionDetails{SubScores: map[string]float64{
		"domain_consistency": 0.9, "progression": 0.8,
	}}
	b := types.CriterionDetails{SubScores: map[string]float64{
		"domain_consistency": 0.5, "progression": 0.5,
	}}

	text := explainCoherence(a, b, 0.2)

	assert.Equal(t, "Better career coherence: more consistent domain focus, better career progression.", text)
}

func TestExplainAwards(t *testing.T) {
	more := explainAwards(
		types.CriterionDetails{TotalAwards: 3},
		types.CriterionDetails{TotalAwards: 1},
		0.2,
	)
	assert.Equal(t, "2 more awards and achievements.", more)

	equal := explainAwards(
		types.CriterionDetails{TotalAwards: 2},
		types.CriterionDetails{TotalAwards: 2},
		0.1,
	)
	assert.Equal(t, "Higher quality awards.", equal)

	none := explainAwards(types.CriterionDetails{}, types.CriterionDetails{}, 0.1)
	assert.Equal(t, "Better awards profile (score advantage: 10.00%).", none)
}

func TestReasonEvidence_LimitsToTwoSpansPerSide(t *testing.T) {
	a := withDetails(mkResult("cv_a", map[string]float64{types.CriterionEducation: 1.0}),
		types.CriterionEducation,
		types.CriterionDetails{Evidence: []string{"one", "two", "three"}})
	b := mkResult("cv_b", nil)

	expl := Explain(a, b)

	require.NotEmpty(t, expl.TopReasons)
	education := expl.TopReasons[0]
	assert.Equal(t, []string{"one", "two"}, education.Evidence.CVA)
	assert.Empty(t, education.Evidence.CVB)
}
