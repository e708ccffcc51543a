package scoring

import (
	"strings"

	"github.com/jonathan/cv-ranker/internal/config"
	"github.com/jonathan/cv-ranker/internal/types"
)

// Seniority keyword tables shared by the experience and coherence scorers.
var (
	seniorKeywords = []string{"senior", "lead", "principal", "director", "manager", "head", "chief", "vp"}
	midKeywords    = []string{"associate", "specialist", "analyst", "engineer", "developer"}
)

// ongoingKeywords mark an experience entry as still running.
var ongoingKeywords = []string{"current", "present", "now"}

// ExperienceScorer scores work experience from total duration, domain match
// and seniority, with a tenure bonus.
type ExperienceScorer struct {
	cfg *config.Config
}

// NewExperienceScorer constructs an experience scorer.
func NewExperienceScorer(cfg *config.Config) *ExperienceScorer {
	return &ExperienceScorer{cfg: cfg}
}

// Name implements Scorer.
func (s *ExperienceScorer) Name() string { return types.CriterionExperience }

// Score implements Scorer.
func (s *ExperienceScorer) Score(rec *types.CVRecord) (float64, types.CriterionDetails) {
	items := rec.Experience

	if len(items) == 0 {
		return 0.0, types.CriterionDetails{
			SubScores:             map[string]float64{"duration": 0.0, "domain_match": 0.0, "seniority": 0.0},
			HasData:               false,
			MissingPenaltyApplied: true,
			Evidence:              []string{},
		}
	}

	durationScore := s.durationScore(items)
	domainScore := s.domainScore(items)
	seniorityScore := s.seniorityScore(items)

	finalScore := durationScore*s.cfg.Subweight(types.CriterionExperience, "duration", 0.5) +
		domainScore*s.cfg.Subweight(types.CriterionExperience, "domain_match", 0.3) +
		seniorityScore*s.cfg.Subweight(types.CriterionExperience, "seniority", 0.2)

	totalMonths := totalMonths(items)
	if totalMonths >= s.cfg.Policies.MinMonthsExperienceForBonus {
		finalScore += s.cfg.Policies.ExperienceBonus
	}
	finalScore = clampUnit(finalScore)

	spans := make([]string, 0, len(items))
	for _, exp := range items {
		spans = append(spans, exp.EvidenceSpan)
	}

	details := types.CriterionDetails{
		SubScores: map[string]float64{
			"duration":     round3(durationScore),
			"domain_match": round3(domainScore),
			"seniority":    round3(seniorityScore),
		},
		FinalScore:  round3(finalScore),
		HasData:     true,
		Evidence:    evidenceSpans(spans),
		TotalMonths: totalMonths,
		TotalYears:  round1(float64(totalMonths) / 12),
		Breakdown:   s.breakdown(items),
	}

	return finalScore, details
}

// totalMonths sums declared durations, estimating entries without one.
func totalMonths(items []types.ExperienceItem) int {
	total := 0
	for _, exp := range items {
		if exp.DurationMonths > 0 {
			total += exp.DurationMonths
		} else {
			total += estimateDuration(exp)
		}
	}
	return total
}

// estimateDuration guesses the tenure of an entry without duration_months:
// 12 months when the end marker says it is ongoing, else 0. Guessing exact
// tenure from free-text dates is deliberately avoided.
func estimateDuration(exp types.ExperienceItem) int {
	end := strings.ToLower(exp.End)
	for _, keyword := range ongoingKeywords {
		if strings.Contains(end, keyword) {
			return 12
		}
	}
	return 0
}

func (s *ExperienceScorer) durationScore(items []types.ExperienceItem) float64 {
	return normalizeScore(float64(totalMonths(items)), s.cfg.Normalization.MaxExperienceMonths)
}

// domainScore is the fraction of entries whose domain contains the target
// domain, boosted when at least half the entries match.
func (s *ExperienceScorer) domainScore(items []types.ExperienceItem) float64 {
	target := strings.ToLower(s.cfg.Policies.TargetDomain)
	if target == "" {
		return 0.5
	}

	matches := 0
	for _, exp := range items {
		if strings.Contains(strings.ToLower(exp.Domain), target) {
			matches++
		}
	}

	ratio := float64(matches) / float64(len(items))
	if ratio >= 0.5 {
		return clampUnit(ratio + s.cfg.Policies.DomainMatchBonus)
	}
	return ratio
}

// seniorityScore maps the highest title seniority onto [0,1]: junior 0,
// mid 0.5, senior 1.
func (s *ExperienceScorer) seniorityScore(items []types.ExperienceItem) float64 {
	maxLevel := 0
	for _, exp := range items {
		level := seniorityLevel(exp.Title)
		if level > maxLevel {
			maxLevel = level
		}
	}
	if maxLevel == 0 {
		return 0.0
	}
	return float64(maxLevel-1) / 2.0
}

// seniorityLevel classifies a job title: 3 senior, 2 mid, 1 junior.
func seniorityLevel(title string) int {
	lower := strings.ToLower(title)
	for _, keyword := range seniorKeywords {
		if strings.Contains(lower, keyword) {
			return 3
		}
	}
	for _, keyword := range midKeywords {
		if strings.Contains(lower, keyword) {
			return 2
		}
	}
	return 1
}

func seniorityLabel(level int) string {
	switch level {
	case 3:
		return "Senior"
	case 2:
		return "Mid"
	default:
		return "Junior"
	}
}

func (s *ExperienceScorer) breakdown(items []types.ExperienceItem) []types.ExperienceBreakdownRow {
	rows := make([]types.ExperienceBreakdownRow, 0, len(items))
	for _, exp := range items {
		duration := exp.DurationMonths
		if duration == 0 {
			duration = estimateDuration(exp)
		}
		rows = append(rows, types.ExperienceBreakdownRow{
			Title:          exp.Title,
			Org:            exp.Org,
			DurationMonths: duration,
			Domain:         exp.Domain,
			SeniorityLevel: seniorityLabel(seniorityLevel(exp.Title)),
		})
	}
	return rows
}
