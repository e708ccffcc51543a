package scoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-ranker/internal/config"
	"github.com/jonathan/cv-ranker/internal/types"
)

// consistencyBonus is added when domain consistency meets the configured
// minimum ratio.
const consistencyBonus = 0.1

// CoherenceScorer scores career coherence: how consistently the CV sticks to
// one domain, and whether seniority trends upward across experience entries.
type CoherenceScorer struct {
	cfg *config.Config
}

// NewCoherenceScorer constructs a coherence scorer.
func NewCoherenceScorer(cfg *config.Config) *CoherenceScorer {
	return &CoherenceScorer{cfg: cfg}
}

// Name implements Scorer.
func (s *CoherenceScorer) Name() string { return types.CriterionCoherence }

// Score implements Scorer. Coherence measures trajectory, not presence, so a
// record without experience gets a neutral 0.5 rather than a zero.
func (s *CoherenceScorer) Score(rec *types.CVRecord) (float64, types.CriterionDetails) {
	if len(rec.Experience) == 0 {
		return 0.5, types.CriterionDetails{
			SubScores: map[string]float64{"domain_consistency": 0.5, "progression": 0.5},
			HasData:   false,
			Evidence:  []string{},
		}
	}

	domainScore := s.domainConsistency(rec)
	progressionScore := progressionScore(rec.Experience)

	finalScore := domainScore*s.cfg.Subweight(types.CriterionCoherence, "domain_consistency", 0.6) +
		progressionScore*s.cfg.Subweight(types.CriterionCoherence, "progression", 0.4)
	finalScore = clampUnit(finalScore)

	details := types.CriterionDetails{
		SubScores: map[string]float64{
			"domain_consistency": round3(domainScore),
			"progression":        round3(progressionScore),
		},
		FinalScore:     round3(finalScore),
		HasData:        true,
		Evidence:       coherenceEvidence(rec.Experience),
		DominantDomain: dominantDomain(rec),
		Breakdown:      s.breakdown(rec.Experience),
	}

	return finalScore, details
}

// pooledDomains collects lowercased domain tokens from experience,
// education fields and publication domains.
func pooledDomains(rec *types.CVRecord) []string {
	var domains []string
	for _, exp := range rec.Experience {
		if d := strings.ToLower(strings.TrimSpace(exp.Domain)); d != "" {
			domains = append(domains, d)
		}
	}
	for _, edu := range rec.Education {
		if d := strings.ToLower(strings.TrimSpace(edu.Field)); d != "" {
			domains = append(domains, d)
		}
	}
	for _, pub := range rec.Publications {
		if d := strings.ToLower(strings.TrimSpace(pub.Domain)); d != "" {
			domains = append(domains, d)
		}
	}
	return domains
}

// domainConsistency is the share of the most frequent domain among all
// pooled domain tokens, with a small bonus when it meets the configured
// minimum.
func (s *CoherenceScorer) domainConsistency(rec *types.CVRecord) float64 {
	domains := pooledDomains(rec)
	if len(domains) == 0 {
		return 0.5
	}

	counts := make(map[string]int)
	for _, d := range domains {
		counts[d]++
	}
	mostCommon := 0
	for _, n := range counts {
		if n > mostCommon {
			mostCommon = n
		}
	}

	consistency := float64(mostCommon) / float64(len(domains))
	if consistency >= s.cfg.Policies.MinDomainConsistency {
		return clampUnit(consistency + consistencyBonus)
	}
	return consistency
}

// progressionScore is the fraction of adjacent experience pairs, in the order
// given, where the later entry's seniority is at least the earlier one's.
// Input order is trusted as chronological; entries are not re-sorted by date.
func progressionScore(items []types.ExperienceItem) float64 {
	if len(items) < 2 {
		return 0.5
	}

	upward := 0
	comparisons := len(items) - 1
	for i := 0; i < comparisons; i++ {
		current := seniorityLevel(items[i].Title)
		previous := seniorityLevel(items[i+1].Title)
		if current >= previous {
			upward++
		}
	}
	return float64(upward) / float64(comparisons)
}

// dominantDomain is the most frequent domain across all CV sections,
// preserving the original casing of the token counted.
func dominantDomain(rec *types.CVRecord) string {
	var domains []string
	for _, exp := range rec.Experience {
		if d := strings.TrimSpace(exp.Domain); d != "" {
			domains = append(domains, d)
		}
	}
	for _, edu := range rec.Education {
		if d := strings.TrimSpace(edu.Field); d != "" {
			domains = append(domains, d)
		}
	}
	for _, pub := range rec.Publications {
		if d := strings.TrimSpace(pub.Domain); d != "" {
			domains = append(domains, d)
		}
	}
	if len(domains) == 0 {
		return "Unknown"
	}

	counts := make(map[string]int)
	best := domains[0]
	for _, d := range domains {
		counts[d]++
		if counts[d] > counts[best] {
			best = d
		}
	}
	return best
}

func coherenceEvidence(items []types.ExperienceItem) []string {
	limit := len(items)
	if limit > evidenceLimit {
		limit = evidenceLimit
	}
	evidence := make([]string, 0, limit)
	for _, exp := range items[:limit] {
		evidence = append(evidence, fmt.Sprintf("%s at %s (%s)", exp.Title, exp.Org, exp.Domain))
	}
	return evidence
}

func (s *CoherenceScorer) breakdown(items []types.ExperienceItem) types.CoherenceBreakdown {
	distribution := make(map[string]int)
	path := make([]types.CareerStep, 0, len(items))
	for _, exp := range items {
		if exp.Domain != "" {
			distribution[exp.Domain]++
		}
		path = append(path, types.CareerStep{
			Title:     exp.Title,
			Domain:    exp.Domain,
			Seniority: seniorityLabel(seniorityLevel(exp.Title)),
		})
	}
	return types.CoherenceBreakdown{
		TotalExperiences:   len(items),
		DomainDistribution: distribution,
		CareerPath:         path,
	}
}
