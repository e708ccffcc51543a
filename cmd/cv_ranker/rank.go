package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/cv-ranker/internal/observability"
	"github.com/jonathan/cv-ranker/internal/ranking"
	"github.com/jonathan/cv-ranker/internal/schemas"
	"github.com/jonathan/cv-ranker/internal/types"
	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank a batch of scored CVs",
	Long:  "Joins a directory of ScoringResult JSONs into a single ranked candidate list sorted by final score, with dense 1-based ranks, plus a statistical ranking report.",
	RunE:  runRank,
}

var (
	rankScoredDir string
	rankOutput    string
	rankReport    string
	rankTopN      int
	rankVerbose   bool
)

func init() {
	rankCmd.Flags().StringVarP(&rankScoredDir, "scored", "s", "", "Path to directory of ScoringResult JSON files (required)")
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "", "Path to output ranked candidates JSON file (required)")
	rankCmd.Flags().StringVar(&rankReport, "report", "", "Path to output ranking report JSON file (optional)")
	rankCmd.Flags().IntVarP(&rankTopN, "top", "n", 10, "Number of top candidates in the report")
	rankCmd.Flags().BoolVarP(&rankVerbose, "verbose", "v", false, "Print the ranked list and report")

	if err := rankCmd.MarkFlagRequired("scored"); err != nil {
		panic(fmt.Sprintf("failed to mark scored flag as required: %v", err))
	}
	if err := rankCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(_ *cobra.Command, _ []string) error {
	// 1. Load all scoring results
	results, err := loadScoredDir(rankScoredDir)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no scoring result files found in %s", rankScoredDir)
	}

	// 2. Rank
	ranked := ranking.Rank(results)

	// 3. Write ranked list
	if err := writeJSONArtifact(rankOutput, ranked); err != nil {
		return err
	}
	validateOutput(schemas.RankedCandidatesSchema, rankOutput)

	// 4. Optional report
	var report *types.RankingReport
	if rankReport != "" {
		report = ranking.Report(ranked, rankTopN)
		if err := writeJSONArtifact(rankReport, report); err != nil {
			return err
		}
	}

	if rankVerbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintRankedList(ranked)
		printer.PrintRankingReport(report)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Ranked %d candidates to %s\n", ranked.TotalCandidates, rankOutput)

	return nil
}

// loadScoredDir reads every ScoringResult JSON in dir, sorted by file name.
func loadScoredDir(dir string) ([]*types.ScoringResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scored directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)

	results := make([]*types.ScoringResult, 0, len(files))
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read scoring result %s: %w", file, err)
		}

		var result types.ScoringResult
		if err := json.Unmarshal(content, &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scoring result %s: %w", file, err)
		}
		results = append(results, &result)
	}
	return results, nil
}
