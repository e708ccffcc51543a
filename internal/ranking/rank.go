// Package ranking orders scored CVs, assigns dense ranks and produces
// distribution statistics over a batch.
package ranking

import (
	"math"
	"sort"
	"time"

	"github.com/jonathan/cv-ranker/internal/types"
)

// histogram bucket labels, in ascending score order.
var bucketLabels = []string{"0.0-0.2", "0.2-0.4", "0.4-0.6", "0.6-0.8", "0.8-1.0"}

// Rank orders scored records by final score descending and assigns dense
// 1-based ranks. The sort is stable: ties keep input order. The input slice
// is not modified.
func Rank(results []*types.ScoringResult) *types.RankedList {
	ordered := make([]*types.ScoringResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].FinalScore > ordered[j].FinalScore
	})

	entries := make([]types.RankedEntry, 0, len(ordered))
	for i, result := range ordered {
		entries = append(entries, types.RankedEntry{
			ScoringResult: *result,
			Rank:          i + 1,
		})
	}

	return &types.RankedList{
		TotalCandidates:  len(entries),
		RankingDate:      time.Now().Format("2006-01-02 15:04:05"),
		RankedCandidates: entries,
	}
}

// TopN returns the n best-ranked entries.
func TopN(list *types.RankedList, n int) []types.RankedEntry {
	if n > len(list.RankedCandidates) {
		n = len(list.RankedCandidates)
	}
	return list.RankedCandidates[:n]
}

// BottomN returns the n worst-ranked entries.
func BottomN(list *types.RankedList, n int) []types.RankedEntry {
	total := len(list.RankedCandidates)
	if n > total {
		n = total
	}
	return list.RankedCandidates[total-n:]
}

// ByRank returns the entry at a 1-based rank position, or nil when out of range.
func ByRank(list *types.RankedList, rank int) *types.RankedEntry {
	if rank < 1 || rank > len(list.RankedCandidates) {
		return nil
	}
	return &list.RankedCandidates[rank-1]
}

// ByFilename returns the entry for a record id, or nil when absent.
func ByFilename(list *types.RankedList, filename string) *types.RankedEntry {
	for i := range list.RankedCandidates {
		if list.RankedCandidates[i].CVFilename == filename {
			return &list.RankedCandidates[i]
		}
	}
	return nil
}

// Report computes distribution statistics over a ranked list: mean, median,
// standard deviation, min/max, a fixed five-bucket histogram and a top-N
// summary. The median is the middle element of the sorted score list; even
// counts take the upper-middle element rather than averaging.
func Report(list *types.RankedList, topN int) *types.RankingReport {
	if len(list.RankedCandidates) == 0 {
		return &types.RankingReport{ScoreDistribution: emptyDistribution()}
	}

	scores := make([]float64, 0, len(list.RankedCandidates))
	for _, entry := range list.RankedCandidates {
		scores = append(scores, entry.FinalScore)
	}

	mean := 0.0
	for _, s := range scores {
		mean += s
	}
	mean /= float64(len(scores))

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)
	median := sorted[len(sorted)/2]

	variance := 0.0
	for _, s := range scores {
		variance += (s - mean) * (s - mean)
	}
	variance /= float64(len(scores))

	distribution := emptyDistribution()
	for _, s := range scores {
		distribution[bucketLabel(s)]++
	}

	if topN > len(list.RankedCandidates) {
		topN = len(list.RankedCandidates)
	}
	top := make([]types.TopCandidate, 0, topN)
	for _, entry := range list.RankedCandidates[:topN] {
		top = append(top, types.TopCandidate{
			Rank:     entry.Rank,
			Filename: entry.CVFilename,
			Score:    entry.FinalScorePercentage,
		})
	}

	return &types.RankingReport{
		TotalCandidates: len(list.RankedCandidates),
		Statistics: types.RankingStatistics{
			MeanScore:    round4(mean),
			MedianScore:  round4(median),
			StdDeviation: round4(math.Sqrt(variance)),
			MinScore:     round4(sorted[0]),
			MaxScore:     round4(sorted[len(sorted)-1]),
		},
		ScoreDistribution: distribution,
		TopCandidates:     top,
	}
}

func emptyDistribution() map[string]int {
	distribution := make(map[string]int, len(bucketLabels))
	for _, label := range bucketLabels {
		distribution[label] = 0
	}
	return distribution
}

func bucketLabel(score float64) string {
	switch {
	case score < 0.2:
		return bucketLabels[0]
	case score < 0.4:
		return bucketLabels[1]
	case score < 0.6:
		return bucketLabels[2]
	case score < 0.8:
		return bucketLabels[3]
	default:
		return bucketLabels[4]
	}
}

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
