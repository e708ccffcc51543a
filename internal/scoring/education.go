package scoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-ranker/internal/config"
	"github.com/jonathan/cv-ranker/internal/types"
)

// EducationScorer scores education background from GPA, degree level and
// university tier, with additive degree bonuses.
type EducationScorer struct {
	cfg      *config.Config
	resolver Resolver
}

// NewEducationScorer constructs an education scorer.
func NewEducationScorer(cfg *config.Config, resolver Resolver) *EducationScorer {
	return &EducationScorer{cfg: cfg, resolver: resolver}
}

// Name implements Scorer.
func (s *EducationScorer) Name() string { return types.CriterionEducation }

// Score implements Scorer.
func (s *EducationScorer) Score(rec *types.CVRecord) (float64, types.CriterionDetails) {
	items := rec.Education

	if len(items) == 0 {
		return 0.0, types.CriterionDetails{
			SubScores:             map[string]float64{"gpa": 0.0, "degree_level": 0.0, "university_tier": 0.0},
			HasData:               false,
			MissingPenaltyApplied: true,
			Evidence:              []string{},
		}
	}

	gpaScore := s.gpaScore(items)
	degreeScore := s.degreeScore(items)
	universityScore := s.universityScore(items)

	finalScore := gpaScore*s.cfg.Subweight(types.CriterionEducation, "gpa", 0.5) +
		degreeScore*s.cfg.Subweight(types.CriterionEducation, "degree_level", 0.2) +
		universityScore*s.cfg.Subweight(types.CriterionEducation, "university_tier", 0.3)

	finalScore = clampUnit(s.applyBonuses(finalScore, items))

	spans := make([]string, 0, len(items))
	for _, edu := range items {
		spans = append(spans, edu.EvidenceSpan)
	}

	details := types.CriterionDetails{
		SubScores: map[string]float64{
			"gpa":             round3(gpaScore),
			"degree_level":    round3(degreeScore),
			"university_tier": round3(universityScore),
		},
		FinalScore: round3(finalScore),
		HasData:    true,
		Evidence:   evidenceSpans(spans),
		Breakdown:  s.breakdown(items),
	}

	return finalScore, details
}

// gpaScore is the best normalized GPA across entries.
func (s *EducationScorer) gpaScore(items []types.EducationItem) float64 {
	maxNormalized := 0.0
	for _, edu := range items {
		if edu.GPA > 0 && edu.Scale > 0 {
			normalized := edu.GPA / edu.Scale
			if normalized > maxNormalized {
				maxNormalized = normalized
			}
		}
	}
	return maxNormalized
}

// degreeScore maps the highest degree level onto [0,1]: bachelor 0,
// master 0.5, doctorate 1.
func (s *EducationScorer) degreeScore(items []types.EducationItem) float64 {
	maxLevel := 0
	for _, edu := range items {
		level := s.resolver.DegreeLevel(edu.Degree)
		if level > maxLevel {
			maxLevel = level
		}
	}
	if maxLevel == 0 {
		return 0.0
	}
	return float64(maxLevel-1) / 2.0
}

// universityScore is the best resolved tier score across entries.
func (s *EducationScorer) universityScore(items []types.EducationItem) float64 {
	maxTier := 0.0
	for _, edu := range items {
		tier := s.resolver.UniversityTier(edu.University)
		if tier > maxTier {
			maxTier = tier
		}
	}
	return maxTier
}

// applyBonuses adds the PhD bonus when any entry is a doctorate, else the
// masters bonus when any entry is a masters. The result may exceed 1 here;
// the caller clamps.
func (s *EducationScorer) applyBonuses(base float64, items []types.EducationItem) float64 {
	hasPhD := false
	hasMasters := false
	for _, edu := range items {
		degree := strings.ToLower(edu.Degree)
		if strings.Contains(degree, "phd") || strings.Contains(degree, "doctorate") {
			hasPhD = true
		} else if strings.Contains(degree, "msc") || strings.Contains(degree, "master") || strings.Contains(degree, "ms") {
			hasMasters = true
		}
	}

	if hasPhD {
		return base + s.cfg.Policies.PhDBonus
	}
	if hasMasters {
		return base + s.cfg.Policies.MastersBonus
	}
	return base
}

func (s *EducationScorer) breakdown(items []types.EducationItem) []types.EducationBreakdownRow {
	rows := make([]types.EducationBreakdownRow, 0, len(items))
	for _, edu := range items {
		scale := edu.Scale
		if scale == 0 {
			scale = 4
		}
		rows = append(rows, types.EducationBreakdownRow{
			Degree:      edu.Degree,
			University:  edu.University,
			GPA:         fmt.Sprintf("%g/%g", edu.GPA, scale),
			TierScore:   s.resolver.UniversityTier(edu.University),
			DegreeLevel: s.resolver.DegreeLevel(edu.Degree),
		})
	}
	return rows
}
