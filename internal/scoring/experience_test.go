package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cv-ranker/internal/config"
	"github.com/jonathan/cv-ranker/internal/types"
)

func TestExperienceScorer_SeniorMatchedDomain(t *testing.T) {
	scorer := NewExperienceScorer(config.Default())

	rec := &types.CVRecord{Experience: []types.ExperienceItem{
		{Title: "Senior ML Engineer", Org: "Acme", DurationMonths: 36, Domain: "machine learning"},
	}}

	score, details := scorer.Score(rec)

	// duration 0.3*0.5 + domain 1.0*0.3 + seniority 1.0*0.2 = 0.65,
	// plus tenure bonus 0.05 for 36 months.
	assert.InDelta(t, 0.70, score, 1e-9)
	assert.Equal(t, 36, details.TotalMonths)
	assert.Equal(t, 3.0, details.TotalYears)
	assert.True(t, details.HasData)
}

func TestExperienceScorer_NoTenureBonusBelowMinimum(t *testing.T) {
	scorer := NewExperienceScorer(config.Default())

	rec := &types.CVRecord{Experience: []types.ExperienceItem{
		{Title: "Intern", DurationMonths: 12, Domain: "finance"},
	}}

	score, _ := scorer.Score(rec)

	// duration 0.1*0.5 + domain 0*0.3 + seniority 0*0.2, no bonus at 12 months.
	assert.InDelta(t, 0.05, score, 1e-9)
}

func TestExperienceScorer_EmptySection(t *testing.T) {
	scorer := NewExperienceScorer(config.Default())

	score, details := scorer.Score(&types.CVRecord{})

	assert.Equal(t, 0.0, score)
	assert.False(t, details.HasData)
	assert.True(t, details.MissingPenaltyApplied)
}

func TestTotalMonths_EstimatesOngoingEntries(t *testing.T) {
	months := totalMonths([]types.ExperienceItem{
		{DurationMonths: 24},
		{End: "Present"},
		{End: "2019"},
	})

	assert.Equal(t, 36, months, "ongoing entries without duration count as 12 months")
}

func TestDomainScore_BonusNeedsHalfMatching(t *testing.T) {
	scorer := NewExperienceScorer(config.Default())

	below := scorer.domainScore([]types.ExperienceItem{
		{Domain: "machine learning"},
		{Domain: "finance"},
		{Domain: "logistics"},
	})
	assert.InDelta(t, 1.0/3.0, below, 1e-9, "under half matching gets no bonus")

	at := scorer.domainScore([]types.ExperienceItem{
		{Domain: "machine learning"},
		{Domain: "finance"},
	})
	assert.InDelta(t, 0.6, at, 1e-9, "half matching gets the domain bonus")
}

func TestDomainScore_NoTargetDomainIsNeutral(t *testing.T) {
	cfg := config.Default()
	cfg.Policies.TargetDomain = ""
	scorer := NewExperienceScorer(cfg)

	assert.Equal(t, 0.5, scorer.domainScore([]types.ExperienceItem{{Domain: "anything"}}))
}

func TestSeniorityLevel(t *testing.T) {
	assert.Equal(t, 3, seniorityLevel("Senior Software Engineer"))
	assert.Equal(t, 3, seniorityLevel("Head of Research"))
	assert.Equal(t, 2, seniorityLevel("Software Engineer"))
	assert.Equal(t, 2, seniorityLevel("Data Analyst"))
	assert.Equal(t, 1, seniorityLevel("Intern"))
	assert.Equal(t, 1, seniorityLevel(""))
}

func TestExperienceScorer_Breakdown(t *testing.T) {
	scorer := NewExperienceScorer(config.Default())

	_, details := scorer.Score(&types.CVRecord{Experience: []types.ExperienceItem{
		{Title: "Lead Scientist", Org: "Lab", End: "present", Domain: "machine learning"},
	}})

	rows, ok := details.Breakdown.([]types.ExperienceBreakdownRow)
	assert.True(t, ok)
	assert.Equal(t, 12, rows[0].DurationMonths)
	assert.Equal(t, "Senior", rows[0].SeniorityLevel)
}
