package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/cv-ranker/internal/comparison"
	"github.com/jonathan/cv-ranker/internal/observability"
	"github.com/jonathan/cv-ranker/internal/schemas"
	"github.com/jonathan/cv-ranker/internal/types"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two scored CVs and explain the gap",
	Long:  "Computes per-criterion score and contribution deltas between two ScoringResults and generates a human-readable explanation with the top reasons, impact classification and supporting evidence.",
	RunE:  runCompare,
}

var (
	compareCVA        string
	compareCVB        string
	compareOutput     string
	compareComparison string
	compareVerbose    bool
)

func init() {
	compareCmd.Flags().StringVarP(&compareCVA, "cv-a", "a", "", "Path to first ScoringResult JSON file (required)")
	compareCmd.Flags().StringVarP(&compareCVB, "cv-b", "b", "", "Path to second ScoringResult JSON file (required)")
	compareCmd.Flags().StringVarP(&compareOutput, "out", "o", "", "Path to output Explanation JSON file (required)")
	compareCmd.Flags().StringVar(&compareComparison, "comparison-out", "", "Path to output raw ComparisonResult JSON file (optional)")
	compareCmd.Flags().BoolVarP(&compareVerbose, "verbose", "v", false, "Print the explanation")

	if err := compareCmd.MarkFlagRequired("cv-a"); err != nil {
		panic(fmt.Sprintf("failed to mark cv-a flag as required: %v", err))
	}
	if err := compareCmd.MarkFlagRequired("cv-b"); err != nil {
		panic(fmt.Sprintf("failed to mark cv-b flag as required: %v", err))
	}
	if err := compareCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(compareCmd)
}

func runCompare(_ *cobra.Command, _ []string) error {
	// 1. Load both scoring results
	a, err := loadScoringResult(compareCVA)
	if err != nil {
		return err
	}
	b, err := loadScoringResult(compareCVB)
	if err != nil {
		return err
	}

	// 2. Generate explanation (includes the comparison deltas)
	explanation := comparison.Explain(a, b)

	// 3. Write outputs
	if err := writeJSONArtifact(compareOutput, explanation); err != nil {
		return err
	}
	validateOutput(schemas.ExplanationSchema, compareOutput)

	if compareComparison != "" {
		if err := writeJSONArtifact(compareComparison, comparison.Compare(a, b)); err != nil {
			return err
		}
	}

	if compareVerbose {
		observability.NewPrinter(os.Stdout).PrintExplanation(explanation)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Compared %s vs %s -> %s\n", a.CVFilename, b.CVFilename, compareOutput)

	return nil
}

// loadScoringResult reads one ScoringResult JSON from disk.
func loadScoringResult(path string) (*types.ScoringResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scoring result %s: %w", path, err)
	}

	var result types.ScoringResult
	if err := json.Unmarshal(content, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scoring result %s: %w", path, err)
	}
	if result.CVFilename == "" {
		result.CVFilename = baseName(path)
	}
	return &result, nil
}
