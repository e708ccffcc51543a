package types

// CorrelationMetric is one rank-correlation result with significance.
type CorrelationMetric struct {
	Value       float64 `json:"value"`
	PValue      float64 `json:"p_value"`
	Significant bool    `json:"significant"`
}

// PairwiseAccuracyMetric reports preference-pair agreement with the ranking.
type PairwiseAccuracyMetric struct {
	Value      float64 `json:"value"`
	TotalPairs int     `json:"total_pairs"`
}

// FaithfulnessMetric reports how often explanation reasons carry evidence.
type FaithfulnessMetric struct {
	EvidenceMatchRate float64 `json:"evidence_match_rate"`
	TotalReasons      int     `json:"total_reasons"`
}

// EvaluationMetrics bundles the available ranking-quality metrics. Sections
// are nil when their required inputs were absent.
type EvaluationMetrics struct {
	KendallTau       *CorrelationMetric      `json:"kendall_tau,omitempty"`
	SpearmanRho      *CorrelationMetric      `json:"spearman_rho,omitempty"`
	NDCG             map[string]float64      `json:"ndcg,omitempty"`
	MAP              *float64                `json:"map,omitempty"`
	PairwiseAccuracy *PairwiseAccuracyMetric `json:"pairwise_accuracy,omitempty"`
	Faithfulness     *FaithfulnessMetric     `json:"faithfulness,omitempty"`
}

// EvaluationReport is the evaluation output artifact.
type EvaluationReport struct {
	TotalCVs          int               `json:"total_cvs"`
	EvaluationDate    string            `json:"evaluation_date,omitempty"`
	GroundTruthSource string            `json:"ground_truth_source,omitempty"`
	Metrics           EvaluationMetrics `json:"metrics"`
	ScoreDistribution *RankingReport    `json:"score_distribution,omitempty"`
}
