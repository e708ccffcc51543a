package scoring

import (
	"math"
	"strings"

	"github.com/jonathan/cv-ranker/internal/config"
	"github.com/jonathan/cv-ranker/internal/types"
)

// Award keyword tables. Category keywords raise the base score; prestige
// keywords in the title or issuer add bonuses on top.
var (
	academicTypeKeywords      = []string{"research", "academic", "professional"}
	internationalTypeKeywords = []string{"national", "international"}

	prestigiousTitleKeywords = []string{
		"gold", "medal", "best", "outstanding", "excellence",
		"dean's list", "honors", "scholarship", "fellowship",
		"distinguished", "achievement", "recognition",
	}
	prestigiousIssuerKeywords = []string{
		"ieee", "acm", "google", "microsoft", "amazon",
		"national", "international", "government",
	}

	highPrestigeKeywords = []string{
		"gold", "medal", "best", "outstanding", "excellence",
		"national", "international", "distinguished",
	}
	mediumPrestigeKeywords = []string{
		"dean's list", "honors", "scholarship", "fellowship",
		"achievement", "recognition", "academic", "professional",
	}
)

// AwardsScorer scores awards and achievements with per-award category and
// prestige scoring and log-scaled aggregation.
type AwardsScorer struct {
	cfg *config.Config
}

// NewAwardsScorer constructs an awards scorer.
func NewAwardsScorer(cfg *config.Config) *AwardsScorer {
	return &AwardsScorer{cfg: cfg}
}

// Name implements Scorer.
func (s *AwardsScorer) Name() string { return types.CriterionAwards }

// Score implements Scorer. No awards means a zero score; absence is
// evidence of no achievement but is never penalized further.
func (s *AwardsScorer) Score(rec *types.CVRecord) (float64, types.CriterionDetails) {
	items := rec.Awards

	if len(items) == 0 {
		return 0.0, types.CriterionDetails{
			SubScores: map[string]float64{},
			HasData:   false,
			Evidence:  []string{},
		}
	}

	score := clampUnit(aggregateAwards(items))

	spans := make([]string, 0, len(items))
	for _, award := range items {
		spans = append(spans, award.EvidenceSpan)
	}

	details := types.CriterionDetails{
		SubScores:   map[string]float64{"awards": round3(score)},
		FinalScore:  round3(score),
		HasData:     true,
		Evidence:    evidenceSpans(spans),
		TotalAwards: len(items),
		Breakdown:   breakdownAwards(items),
	}

	return score, details
}

// awardScore rates one award: a category base (0.3 default, 0.6 academic,
// 0.8 national/international) plus prestige bonuses, capped at 1.
func awardScore(award types.AwardItem) float64 {
	awardType := strings.ToLower(award.Type)
	title := strings.ToLower(award.Title)
	issuer := strings.ToLower(award.Issuer)

	score := 0.3
	if containsAny(awardType, academicTypeKeywords) {
		score = 0.6
	}
	if containsAny(awardType, internationalTypeKeywords) {
		score = 0.8
	}
	if containsAny(title, prestigiousTitleKeywords) {
		score += 0.2
	}
	if containsAny(issuer, prestigiousIssuerKeywords) {
		score += 0.1
	}

	return math.Min(1.0, score)
}

// aggregateAwards sums per-award scores and compresses with a logarithmic
// scale so many low-value awards cannot grow the score without bound.
func aggregateAwards(items []types.AwardItem) float64 {
	total := 0.0
	for _, award := range items {
		total += awardScore(award)
	}
	return math.Log(1+total) / math.Log(1+float64(len(items))*1.5)
}

func breakdownAwards(items []types.AwardItem) []types.AwardBreakdownRow {
	rows := make([]types.AwardBreakdownRow, 0, len(items))
	for _, award := range items {
		rows = append(rows, types.AwardBreakdownRow{
			Title:         award.Title,
			Issuer:        award.Issuer,
			Year:          award.Year,
			Type:          award.Type,
			PrestigeLevel: prestigeLevel(award),
		})
	}
	return rows
}

// prestigeLevel buckets an award by the strongest keyword found anywhere in
// its title, type or issuer.
func prestigeLevel(award types.AwardItem) string {
	combined := strings.ToLower(award.Title + " " + award.Type + " " + award.Issuer)
	if containsAny(combined, highPrestigeKeywords) {
		return "High"
	}
	if containsAny(combined, mediumPrestigeKeywords) {
		return "Medium"
	}
	return "Standard"
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
