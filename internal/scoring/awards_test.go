package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cv-ranker/internal/config"
	"github.com/jonathan/cv-ranker/internal/types"
)

func TestAwardsScorer_SingleAcademicAward(t *testing.T) {
	scorer := NewAwardsScorer(config.Default())

	rec := &types.CVRecord{Awards: []types.AwardItem{
		{Title: "Best Paper Award", Issuer: "Some University", Type: "research"},
	}}

	score, details := scorer.Score(rec)

	// Academic base 0.6 plus title bonus 0.2, log-compressed:
	// ln(1.8)/ln(2.5).
	assert.InDelta(t, 0.6415, score, 1e-4)
	assert.Equal(t, 1, details.TotalAwards)
	assert.True(t, details.HasData)
}

func TestAwardsScorer_EmptySection(t *testing.T) {
	scorer := NewAwardsScorer(config.Default())

	score, details := scorer.Score(&types.CVRecord{})

	assert.Equal(t, 0.0, score)
	assert.False(t, details.HasData)
	assert.False(t, details.MissingPenaltyApplied, "absent awards are not penalized")
}

func TestAwardScore(t *testing.T) {
	assert.InDelta(t, 0.3, awardScore(types.AwardItem{Title: "Participation Certificate"}), 1e-9)
	assert.InDelta(t, 0.6, awardScore(types.AwardItem{Type: "academic"}), 1e-9)
	assert.InDelta(t, 0.8, awardScore(types.AwardItem{Type: "international"}), 1e-9)
	assert.InDelta(t, 0.5, awardScore(types.AwardItem{Title: "Gold Medal"}), 1e-9)
	assert.InDelta(t, 0.4, awardScore(types.AwardItem{Issuer: "IEEE"}), 1e-9)

	capped := awardScore(types.AwardItem{
		Title:  "Gold Medal",
		Issuer: "IEEE",
		Type:   "international",
	})
	assert.Equal(t, 1.0, capped, "bonuses cap at 1 per award")
}

func TestAggregateAwards_LogCompression(t *testing.T) {
	many := make([]types.AwardItem, 10)
	for i := range many {
		many[i] = types.AwardItem{Title: "Participation Certificate"}
	}

	score := aggregateAwards(many)

	assert.Less(t, score, 1.0, "many low-value awards never max the score")
	assert.Greater(t, score, aggregateAwards(many[:1]))
}

func TestPrestigeLevel(t *testing.T) {
	assert.Equal(t, "High", prestigeLevel(types.AwardItem{Title: "Gold Medal in Informatics"}))
	assert.Equal(t, "Medium", prestigeLevel(types.AwardItem{Title: "Dean's List"}))
	assert.Equal(t, "Standard", prestigeLevel(types.AwardItem{Title: "Participant Certificate"}))
}
