// Package scoring implements the five criterion scorers and the score
// aggregator that combines them into a final explainable CV score.
package scoring

import (
	"math"

	"github.com/jonathan/cv-ranker/internal/types"
)

// Resolver is the catalogue lookup capability scorers depend on. It is
// satisfied by catalog.Resolver and injected at construction so matching
// behavior is swappable in tests.
type Resolver interface {
	UniversityTier(name string) float64
	JournalImpact(name string) float64
	VenueQuality(name string) float64
	DegreeLevel(degree string) int
}

// Scorer turns one CV record into a criterion score in [0,1] plus an
// evidence/diagnostic breakdown. Implementations are pure functions of
// (record, config, catalogue) and safe for concurrent use.
type Scorer interface {
	Name() string
	Score(rec *types.CVRecord) (float64, types.CriterionDetails)
}

const (
	evidenceLimit = 3
	spanMaxLen    = 200
)

// normalizeScore maps value into [0,1] against an expected maximum.
func normalizeScore(value, maxValue float64) float64 {
	if maxValue == 0 {
		return 0.0
	}
	return math.Min(1.0, value/maxValue)
}

// clampUnit clamps a score into [0,1].
func clampUnit(score float64) float64 {
	return math.Max(0.0, math.Min(1.0, score))
}

// evidenceSpans keeps the spans of the first evidenceLimit entries, dropping
// empty ones and truncating long ones.
func evidenceSpans(spans []string) []string {
	if len(spans) > evidenceLimit {
		spans = spans[:evidenceLimit]
	}
	evidence := make([]string, 0, len(spans))
	for _, span := range spans {
		if span == "" {
			continue
		}
		if runes := []rune(span); len(runes) > spanMaxLen {
			span = string(runes[:spanMaxLen])
		}
		evidence = append(evidence, span)
	}
	return evidence
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
