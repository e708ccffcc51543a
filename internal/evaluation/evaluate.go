// Package evaluation measures ranking quality against ground truth
// annotations and checks that generated explanations stay grounded in
// record evidence.
package evaluation

import (
	"fmt"
	"math"
	"time"

	"github.com/jonathan/cv-ranker/internal/ranking"
	"github.com/jonathan/cv-ranker/internal/types"
)

// nDCG cutoffs reported by default.
var defaultNDCGKs = []int{5, 10, 20}

const reportTopN = 5

// Input bundles everything an evaluation run can consume. GroundTruth,
// Pairs and Explanations are optional; metric sections whose inputs are
// absent are omitted from the report rather than reported as zero.
type Input struct {
	Ranked       *types.RankedList
	GroundTruth  *types.GroundTruth
	Pairs        *types.PairwisePreferences
	Explanations []*types.Explanation
	NDCGKs       []int
	Source       string
}

// Evaluate computes all available metrics over the predicted ranking and
// bundles them with score-distribution statistics.
func Evaluate(in Input) *types.EvaluationReport {
	predicted := make([]string, 0, len(in.Ranked.RankedCandidates))
	for _, entry := range in.Ranked.RankedCandidates {
		predicted = append(predicted, entry.CVFilename)
	}

	report := &types.EvaluationReport{
		TotalCVs:          len(predicted),
		EvaluationDate:    time.Now().Format("2006-01-02 15:04:05"),
		GroundTruthSource: in.Source,
		ScoreDistribution: ranking.Report(in.Ranked, reportTopN),
	}

	if in.GroundTruth != nil {
		tau, tauP := KendallTau(predicted, in.GroundTruth.Ranking)
		report.Metrics.KendallTau = &types.CorrelationMetric{
			Value:       round4(tau),
			PValue:      round4(tauP),
			Significant: tauP < significanceLevel,
		}

		rho, rhoP := SpearmanRho(predicted, in.GroundTruth.Ranking)
		report.Metrics.SpearmanRho = &types.CorrelationMetric{
			Value:       round4(rho),
			PValue:      round4(rhoP),
			Significant: rhoP < significanceLevel,
		}

		if len(in.GroundTruth.RelevanceScores) > 0 {
			ks := in.NDCGKs
			if len(ks) == 0 {
				ks = defaultNDCGKs
			}
			report.Metrics.NDCG = make(map[string]float64, len(ks))
			for _, k := range ks {
				report.Metrics.NDCG[ndcgKey(k)] = round4(NDCGAtK(predicted, in.GroundTruth.RelevanceScores, k))
			}

			mapScore := round4(MeanAveragePrecision(predicted, relevantItems(in.GroundTruth.RelevanceScores)))
			report.Metrics.MAP = &mapScore
		}
	}

	if in.Pairs != nil && len(in.Pairs.Pairs) > 0 {
		accuracy, evaluable := PairwiseAccuracy(predicted, in.Pairs.Pairs)
		report.Metrics.PairwiseAccuracy = &types.PairwiseAccuracyMetric{
			Value:      round4(accuracy),
			TotalPairs: evaluable,
		}
	}

	if len(in.Explanations) > 0 {
		rate, total := EvidenceMatchRate(in.Explanations)
		report.Metrics.Faithfulness = &types.FaithfulnessMetric{
			EvidenceMatchRate: round4(rate),
			TotalReasons:      total,
		}
	}

	return report
}

// relevantItems treats every id with positive relevance as relevant.
func relevantItems(relevance map[string]float64) []string {
	items := make([]string, 0, len(relevance))
	for id, rel := range relevance {
		if rel > 0 {
			items = append(items, id)
		}
	}
	return items
}

func ndcgKey(k int) string {
	return fmt.Sprintf("ndcg@%d", k)
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
