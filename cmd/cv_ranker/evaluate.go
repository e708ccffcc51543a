package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/cv-ranker/internal/evaluation"
	"github.com/jonathan/cv-ranker/internal/observability"
	"github.com/jonathan/cv-ranker/internal/schemas"
	"github.com/jonathan/cv-ranker/internal/types"
	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate ranking quality against ground truth",
	Long: `Computes Kendall's Tau, Spearman's Rho, nDCG@k, MAP, pairwise accuracy and explanation faithfulness for a ranked candidate list.

With --sample, ground truth annotations are synthesized from the ranking itself; the resulting metrics measure consistency with the system's own prior output rather than independent truth.`,
	RunE: runEvaluate,
}

var (
	evaluateRanked       string
	evaluateAnnotations  string
	evaluateExplanations string
	evaluateOutput       string
	evaluateSample       bool
	evaluateVerbose      bool
)

func init() {
	evaluateCmd.Flags().StringVarP(&evaluateRanked, "ranked", "r", "", "Path to ranked candidates JSON file (required)")
	evaluateCmd.Flags().StringVarP(&evaluateOutput, "out", "o", "", "Path to output evaluation report JSON file (required)")
	evaluateCmd.Flags().StringVarP(&evaluateAnnotations, "annotations", "g", "", "Path to annotations directory with ground truth files (required)")
	evaluateCmd.Flags().StringVarP(&evaluateExplanations, "explanations", "e", "", "Path to directory of explanation JSON files (optional, enables faithfulness)")
	evaluateCmd.Flags().BoolVar(&evaluateSample, "sample", false, "Synthesize sample ground truth from the ranking itself")
	evaluateCmd.Flags().BoolVarP(&evaluateVerbose, "verbose", "v", false, "Print the evaluation summary")

	if err := evaluateCmd.MarkFlagRequired("ranked"); err != nil {
		panic(fmt.Sprintf("failed to mark ranked flag as required: %v", err))
	}
	if err := evaluateCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}
	if err := evaluateCmd.MarkFlagRequired("annotations"); err != nil {
		panic(fmt.Sprintf("failed to mark annotations flag as required: %v", err))
	}

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(_ *cobra.Command, _ []string) error {
	// 1. Load ranked list
	rankedContent, err := os.ReadFile(evaluateRanked)
	if err != nil {
		return fmt.Errorf("failed to read ranked candidates file %s: %w", evaluateRanked, err)
	}

	var ranked types.RankedList
	if err := json.Unmarshal(rankedContent, &ranked); err != nil {
		return fmt.Errorf("failed to unmarshal ranked candidates JSON: %w", err)
	}
	if len(ranked.RankedCandidates) == 0 {
		return fmt.Errorf("ranked candidates file %s holds no candidates", evaluateRanked)
	}

	// 2. Load or synthesize annotations
	manager := evaluation.NewManager(evaluateAnnotations, nil)

	source := "annotated"
	if evaluateSample {
		if _, err := manager.CreateSampleGroundTruth(&ranked, 0); err != nil {
			return err
		}
		if _, err := manager.CreateSamplePairwisePreferences(&ranked, 0); err != nil {
			return err
		}
		source = "sample (self-referential)"
	}

	groundTruth, err := manager.LoadGroundTruth()
	if err != nil {
		return err
	}
	pairs, err := manager.LoadPairwisePreferences()
	if err != nil {
		return err
	}
	if groundTruth == nil && pairs == nil {
		return fmt.Errorf("no ground truth annotations found in %s (use --sample to synthesize)", evaluateAnnotations)
	}

	// 3. Load explanations if provided
	var explanations []*types.Explanation
	if evaluateExplanations != "" {
		explanations, err = loadExplanationsDir(evaluateExplanations)
		if err != nil {
			return err
		}
	}

	// 4. Evaluate and write report
	report := evaluation.Evaluate(evaluation.Input{
		Ranked:       &ranked,
		GroundTruth:  groundTruth,
		Pairs:        pairs,
		Explanations: explanations,
		Source:       source,
	})

	if err := writeJSONArtifact(evaluateOutput, report); err != nil {
		return err
	}
	validateOutput(schemas.EvaluationReportSchema, evaluateOutput)

	if evaluateVerbose {
		observability.NewPrinter(os.Stdout).PrintEvaluation(report)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Evaluated %d candidates -> %s\n", report.TotalCVs, evaluateOutput)

	return nil
}

// loadExplanationsDir reads every explanation JSON in dir, sorted by name.
func loadExplanationsDir(dir string) ([]*types.Explanation, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read explanations directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)

	explanations := make([]*types.Explanation, 0, len(files))
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read explanation %s: %w", file, err)
		}

		var explanation types.Explanation
		if err := json.Unmarshal(content, &explanation); err != nil {
			return nil, fmt.Errorf("failed to unmarshal explanation %s: %w", file, err)
		}
		explanations = append(explanations, &explanation)
	}
	return explanations, nil
}
