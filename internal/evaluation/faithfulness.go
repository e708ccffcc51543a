package evaluation

import (
	"github.com/jonathan/cv-ranker/internal/types"
)

// EvidenceMatchRate measures how often explanation reasons are backed by
// record evidence: the fraction of top reasons, pooled across all
// explanations, whose evidence carries at least one non-empty side. Returns
// the rate and the pooled reason count.
func EvidenceMatchRate(explanations []*types.Explanation) (float64, int) {
	total := 0
	matched := 0
	for _, explanation := range explanations {
		if explanation == nil {
			continue
		}
		for _, reason := range explanation.TopReasons {
			total++
			if hasEvidence(reason.Evidence) {
				matched++
			}
		}
	}

	if total == 0 {
		return 0.0, 0
	}
	return float64(matched) / float64(total), total
}

func hasEvidence(ev types.ReasonEvidence) bool {
	for _, span := range ev.CVA {
		if span != "" {
			return true
		}
	}
	for _, span := range ev.CVB {
		if span != "" {
			return true
		}
	}
	return false
}
