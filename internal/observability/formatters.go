// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-ranker/internal/scoring"
	"github.com/jonathan/cv-ranker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScoringResult outputs a human-readable summary of one scored CV.
func (p *Printer) PrintScoringResult(result *types.ScoringResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("CV:     %s\n", result.CVFilename))
	sb.WriteString(fmt.Sprintf("Score:  %.2f%%\n", result.FinalScorePercentage))
	sb.WriteString("\n")

	sb.WriteString("Criterion Scores:\n")
	for _, criterion := range types.CriterionOrder {
		cr := result.Criterion(criterion)
		sb.WriteString(fmt.Sprintf("  %-14s %.4f (weight %.2f, contributes %.4f)\n",
			criterion, cr.Score, cr.Weight, cr.WeightedContribution))
	}

	strengths := scoring.TopStrengths(result, 2)
	if len(strengths) > 0 {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Strengths:    %s\n", strengthNames(strengths)))
	}
	areas := scoring.ImprovementAreas(result, 2)
	if len(areas) > 0 {
		sb.WriteString(fmt.Sprintf("Improvement:  %s\n", strengthNames(areas)))
	}

	missing := missingCriteria(result)
	if len(missing) > 0 {
		sb.WriteString(fmt.Sprintf("No data:      %s\n", strings.Join(missing, ", ")))
	}

	p.printBox("CV SCORING RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedList outputs the top of a ranked candidate list.
func (p *Printer) PrintRankedList(list *types.RankedList) {
	if list == nil || len(list.RankedCandidates) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates ranked: %d\n\n", list.TotalCandidates))

	count := min(len(list.RankedCandidates), maxItemsToShow)
	for i := 0; i < count; i++ {
		entry := list.RankedCandidates[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", entry.Rank, entry.CVFilename))
		sb.WriteString(fmt.Sprintf("    Score: %.2f%%\n", entry.FinalScorePercentage))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(list.RankedCandidates) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(list.RankedCandidates)-maxItemsToShow))
	}

	p.printBox("RANKED CANDIDATES", sb.String())
}

// PrintRankingReport outputs distribution statistics over a ranked batch.
func (p *Printer) PrintRankingReport(report *types.RankingReport) {
	if report == nil || report.TotalCandidates == 0 {
		return
	}

	var sb strings.Builder
	stats := report.Statistics

	sb.WriteString(fmt.Sprintf("Candidates: %d\n\n", report.TotalCandidates))
	sb.WriteString(fmt.Sprintf("Mean:    %.4f\n", stats.MeanScore))
	sb.WriteString(fmt.Sprintf("Median:  %.4f\n", stats.MedianScore))
	sb.WriteString(fmt.Sprintf("Std:     %.4f\n", stats.StdDeviation))
	sb.WriteString(fmt.Sprintf("Range:   %.4f - %.4f\n", stats.MinScore, stats.MaxScore))

	if len(report.ScoreDistribution) > 0 {
		sb.WriteString("\nDistribution:\n")
		for _, bucket := range []string{"0.0-0.2", "0.2-0.4", "0.4-0.6", "0.6-0.8", "0.8-1.0"} {
			sb.WriteString(fmt.Sprintf("  %s  %d\n", bucket, report.ScoreDistribution[bucket]))
		}
	}

	p.printBox("RANKING REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExplanation outputs the comparison explanation with its top reasons.
func (p *Printer) PrintExplanation(explanation *types.Explanation) {
	if explanation == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(explanation.Summary)
	sb.WriteString("\n")

	for _, reason := range explanation.TopReasons {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("#%d  %s [%s]\n", reason.Rank, reason.Criterion, reason.Impact))
		sb.WriteString(fmt.Sprintf("    %s\n", reason.Reason))
	}

	p.printBox("COMPARISON EXPLANATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEvaluation outputs the available evaluation metrics.
func (p *Printer) PrintEvaluation(report *types.EvaluationReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("CVs evaluated: %d\n\n", report.TotalCVs))

	m := report.Metrics
	if m.KendallTau != nil {
		sb.WriteString(fmt.Sprintf("Kendall's Tau:      %.4f (p=%.4f)\n", m.KendallTau.Value, m.KendallTau.PValue))
	}
	if m.SpearmanRho != nil {
		sb.WriteString(fmt.Sprintf("Spearman's Rho:     %.4f (p=%.4f)\n", m.SpearmanRho.Value, m.SpearmanRho.PValue))
	}
	if m.PairwiseAccuracy != nil {
		sb.WriteString(fmt.Sprintf("Pairwise Accuracy:  %.4f (%d pairs)\n", m.PairwiseAccuracy.Value, m.PairwiseAccuracy.TotalPairs))
	}
	for _, k := range []string{"ndcg@5", "ndcg@10", "ndcg@20"} {
		if value, ok := m.NDCG[k]; ok {
			sb.WriteString(fmt.Sprintf("%-19s %.4f\n", strings.ToUpper(k[:4])+k[4:]+":", value))
		}
	}
	if m.MAP != nil {
		sb.WriteString(fmt.Sprintf("MAP:                %.4f\n", *m.MAP))
	}
	if m.Faithfulness != nil {
		sb.WriteString(fmt.Sprintf("Evidence Match:     %.4f (%d reasons)\n",
			m.Faithfulness.EvidenceMatchRate, m.Faithfulness.TotalReasons))
	}

	p.printBox("EVALUATION SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

func strengthNames(strengths []scoring.Strength) string {
	names := make([]string, 0, len(strengths))
	for _, s := range strengths {
		names = append(names, s.Criterion)
	}
	return strings.Join(names, ", ")
}

func missingCriteria(result *types.ScoringResult) []string {
	var missing []string
	for _, criterion := range types.CriterionOrder {
		if !result.Criterion(criterion).Details.HasData {
			missing = append(missing, criterion)
		}
	}
	return missing
}
