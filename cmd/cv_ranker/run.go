package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/cv-ranker/internal/pipeline"
	"github.com/spf13/cobra"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full scoring pipeline end-to-end",
	Long: `Orchestrates the entire batch process: scoring -> ranking -> explanations -> evaluation.

Reads every CVRecord JSON in the records directory, scores them concurrently, ranks the batch, generates explanations for the top adjacent pairs and optionally evaluates the ranking against ground truth annotations.`,
	RunE: runPipelineCmd,
}

var (
	runRecordsDir  string
	runOutputDir   string
	runConfigPath  string
	runMappingsDir string
	runAnnotations string
	runBatchName   string
	runTopN        int
	runWorkers     int
	runNoExplain   bool
	runEvaluateFlag bool
	runSampleGT    bool
	runVerbose     bool
	runDatabaseURL string
)

func init() {
	runCommand.Flags().StringVarP(&runRecordsDir, "records", "r", "", "Path to directory of CVRecord JSON files (required)")
	runCommand.Flags().StringVarP(&runOutputDir, "out-dir", "o", "", "Output directory for all artifacts (required)")
	runCommand.Flags().StringVarP(&runConfigPath, "config", "c", "", "Path to scoring config JSON (defaults to built-in weights)")
	runCommand.Flags().StringVarP(&runMappingsDir, "mappings", "m", "", "Path to mappings directory with catalogue JSONs")
	runCommand.Flags().StringVarP(&runAnnotations, "annotations", "g", "", "Path to annotations directory (defaults to <out-dir>/annotations)")
	runCommand.Flags().StringVar(&runBatchName, "batch", "", "Batch name recorded with the run")
	runCommand.Flags().IntVarP(&runTopN, "top", "n", 10, "Number of top candidates to report and explain")
	runCommand.Flags().IntVarP(&runWorkers, "workers", "w", 0, "Concurrent scoring workers (default 4)")
	runCommand.Flags().BoolVar(&runNoExplain, "no-explanations", false, "Skip explanation generation")
	runCommand.Flags().BoolVar(&runEvaluateFlag, "evaluate", false, "Evaluate ranking quality after ranking")
	runCommand.Flags().BoolVar(&runSampleGT, "sample-ground-truth", false, "Synthesize sample ground truth from the ranking (implies self-referential metrics)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed progress information")

	// Database URL for artifact persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	if err := runCommand.MarkFlagRequired("records"); err != nil {
		panic(fmt.Sprintf("failed to mark records flag as required: %v", err))
	}
	if err := runCommand.MarkFlagRequired("out-dir"); err != nil {
		panic(fmt.Sprintf("failed to mark out-dir flag as required: %v", err))
	}

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	databaseURL := runDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}

	batchName := runBatchName
	if batchName == "" {
		batchName = runRecordsDir
	}

	_, err := pipeline.Run(ctx, pipeline.RunOptions{
		RecordsDir:     runRecordsDir,
		OutputDir:      runOutputDir,
		ConfigPath:     runConfigPath,
		MappingsDir:    runMappingsDir,
		AnnotationsDir: runAnnotations,
		BatchName:      batchName,
		TopN:           runTopN,
		Workers:        runWorkers,
		Explanations:   !runNoExplain,
		Evaluate:       runEvaluateFlag,
		SampleGT:       runSampleGT,
		Verbose:        runVerbose,
		DatabaseURL:    databaseURL,
	})
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	return nil
}
