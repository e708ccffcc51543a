package types

// RankedEntry is a ScoringResult with its assigned rank (1 = best). Ranks are
// dense and contiguous over the full ranked set.
type RankedEntry struct {
	ScoringResult
	Rank int `json:"rank"`
}

// RankedList is the ranked-candidates output artifact.
type RankedList struct {
	TotalCandidates  int           `json:"total_candidates"`
	RankingDate      string        `json:"ranking_date,omitempty"`
	RankedCandidates []RankedEntry `json:"ranked_candidates"`
}

// RankingStatistics holds distribution statistics over final scores.
type RankingStatistics struct {
	MeanScore float64 `json:"mean_score"`
	// MedianScore is the middle element of the sorted score list; for even
	// counts the upper-middle element is taken rather than averaging the two
	// central elements.
	MedianScore  float64 `json:"median_score"`
	StdDeviation float64 `json:"std_deviation"`
	MinScore     float64 `json:"min_score"`
	MaxScore     float64 `json:"max_score"`
}

// TopCandidate is one row of a ranking report's top-N summary.
type TopCandidate struct {
	Rank     int     `json:"rank"`
	Filename string  `json:"filename"`
	Score    float64 `json:"score"`
}

// RankingReport is the statistical report over a ranked batch.
type RankingReport struct {
	TotalCandidates   int               `json:"total_candidates"`
	Statistics        RankingStatistics `json:"statistics"`
	ScoreDistribution map[string]int    `json:"score_distribution"`
	TopCandidates     []TopCandidate    `json:"top_candidates"`
}
