package evaluation

import (
	"math"
	"sort"

	"github.com/jonathan/cv-ranker/internal/types"
)

// Correlation p-values below this mark the result significant.
const significanceLevel = 0.05

// KendallTau computes Kendall's tau-b between the predicted ranking and the
// ground truth ranking, with a large-sample normal-approximation p-value.
// Items absent from the ground truth are dropped; with fewer than two
// overlapping items the result is (0, 1).
func KendallTau(predicted, groundTruth []string) (tau, pValue float64) {
	x := convertToRanks(predicted, groundTruth)
	n := len(x)
	if n < 2 {
		return 0.0, 1.0
	}

	var concordant, discordant, tiesX, tiesY float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := x[i] - x[j]
			dy := i - j
			if dx == 0 {
				tiesX++
			}
			if dy == 0 {
				tiesY++
			}
			if dx == 0 || dy == 0 {
				continue
			}
			if (dx > 0) == (dy > 0) {
				concordant++
			} else {
				discordant++
			}
		}
	}

	fn := float64(n)
	pairs := fn * (fn - 1) / 2
	denom := math.Sqrt((pairs - tiesX) * (pairs - tiesY))
	if denom == 0 {
		return 0.0, 1.0
	}
	tau = (concordant - discordant) / denom

	z := 3 * (concordant - discordant) / math.Sqrt(fn*(fn-1)*(2*fn+5)/2)
	return tau, twoSidedP(z)
}

// SpearmanRho computes Spearman's rank correlation between the predicted
// ranking and the ground truth ranking, with a normal-approximation p-value.
func SpearmanRho(predicted, groundTruth []string) (rho, pValue float64) {
	x := convertToRanks(predicted, groundTruth)
	n := len(x)
	if n < 2 {
		return 0.0, 1.0
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, r := range x {
		xs[i] = float64(r)
		ys[i] = float64(i + 1)
	}

	rho = pearson(xs, ys)
	z := rho * math.Sqrt(float64(n-1))
	return rho, twoSidedP(z)
}

// NDCGAtK computes normalized discounted cumulative gain over the top k
// predicted positions. The ideal gain is taken from the top k of the entire
// relevance table, not just the predicted items, so predictions missing
// high-relevance items are penalized.
func NDCGAtK(predicted []string, relevance map[string]float64, k int) float64 {
	topK := predicted
	if len(topK) > k {
		topK = topK[:k]
	}

	dcg := 0.0
	for i, id := range topK {
		dcg += relevance[id] / math.Log2(float64(i)+2)
	}

	sorted := make([]float64, 0, len(relevance))
	for _, rel := range relevance {
		sorted = append(sorted, rel)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	if len(sorted) > k {
		sorted = sorted[:k]
	}

	idcg := 0.0
	for i, rel := range sorted {
		idcg += rel / math.Log2(float64(i)+2)
	}

	if idcg == 0 {
		return 0.0
	}
	return dcg / idcg
}

// MeanAveragePrecision accumulates precision@i at each predicted position
// holding a relevant item and divides by the total relevant count, so
// relevant items missing from the prediction lower the score.
func MeanAveragePrecision(predicted []string, relevant []string) float64 {
	if len(relevant) == 0 {
		return 0.0
	}

	relevantSet := make(map[string]struct{}, len(relevant))
	for _, id := range relevant {
		relevantSet[id] = struct{}{}
	}

	found := 0
	precisionSum := 0.0
	for i, id := range predicted {
		if _, ok := relevantSet[id]; ok {
			found++
			precisionSum += float64(found) / float64(i+1)
		}
	}

	if found == 0 {
		return 0.0
	}
	return precisionSum / float64(len(relevantSet))
}

// PairwiseAccuracy counts a preference pair correct when both ids appear in
// the predicted ranking and the preferred id ranks higher. Pairs with an id
// missing from the prediction are not evaluable and count toward neither the
// numerator nor the denominator. Returns the accuracy and the number of
// evaluable pairs.
func PairwiseAccuracy(predicted []string, pairs []types.PreferencePair) (float64, int) {
	rankOf := make(map[string]int, len(predicted))
	for i, id := range predicted {
		rankOf[id] = i
	}

	correct := 0
	evaluable := 0
	for _, pair := range pairs {
		better, okB := rankOf[pair.Better]
		worse, okW := rankOf[pair.Worse]
		if !okB || !okW {
			continue
		}
		evaluable++
		if better < worse {
			correct++
		}
	}

	if evaluable == 0 {
		return 0.0, 0
	}
	return float64(correct) / float64(evaluable), evaluable
}

// convertToRanks maps each predicted id that appears in the ground truth to
// its 1-based ground-truth position, preserving predicted order.
func convertToRanks(predicted, groundTruth []string) []int {
	position := make(map[string]int, len(groundTruth))
	for i, id := range groundTruth {
		position[id] = i + 1
	}

	ranks := make([]int, 0, len(predicted))
	for _, id := range predicted {
		if rank, ok := position[id]; ok {
			ranks = append(ranks, rank)
		}
	}
	return ranks
}

func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	var meanX, meanY float64
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= n
	meanY /= n

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	denom := math.Sqrt(varX * varY)
	if denom == 0 {
		return 0.0
	}
	return cov / denom
}

// twoSidedP converts a standard-normal z statistic to a two-sided p-value.
func twoSidedP(z float64) float64 {
	return math.Erfc(math.Abs(z) / math.Sqrt2)
}
