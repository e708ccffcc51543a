package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/cv-ranker/internal/db"
	"github.com/jonathan/cv-ranker/internal/observability"
	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect persisted scoring runs",
	Long: `Lists recent scoring runs from the PostgreSQL artifact store, or shows the stored artifacts of a single run.

Without --run-id, recent runs are listed. With --run-id, the run's ranked list, ranking report and evaluation report are printed; --cv fetches one record's scoring result and --pair one compared pair's explanation instead.`,
	RunE: runRuns,
}

var (
	runsDatabaseURL string
	runsLimit       int
	runsRunID       string
	runsCV          string
	runsPair        string
	runsDelete      bool
)

func init() {
	runsCmd.Flags().StringVar(&runsDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "l", 20, "Maximum number of runs to list")
	runsCmd.Flags().StringVar(&runsRunID, "run-id", "", "Run ID to inspect")
	runsCmd.Flags().StringVar(&runsCV, "cv", "", "CV filename whose scoring result to fetch (requires --run-id)")
	runsCmd.Flags().StringVar(&runsPair, "pair", "", "Compared pair whose explanation to fetch, as cv_a:cv_b (requires --run-id)")
	runsCmd.Flags().BoolVar(&runsDelete, "delete", false, "Delete the run and all its artifacts (requires --run-id)")

	rootCmd.AddCommand(runsCmd)
}

func runRuns(_ *cobra.Command, _ []string) error {
	if runsRunID == "" && (runsCV != "" || runsPair != "" || runsDelete) {
		return fmt.Errorf("--cv, --pair and --delete require --run-id")
	}

	var runID uuid.UUID
	if runsRunID != "" {
		var err error
		runID, err = uuid.Parse(runsRunID)
		if err != nil {
			return fmt.Errorf("invalid run ID %q: %w", runsRunID, err)
		}
	}

	databaseURL := runsDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL environment variable or use --db-url)")
	}

	ctx := context.Background()

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if runsRunID == "" {
		return listRuns(ctx, database)
	}

	if runsDelete {
		if err := database.DeleteRun(ctx, runID); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Deleted run %s\n", runID)
		return nil
	}

	return showRun(ctx, database, runID)
}

func listRuns(ctx context.Context, database *db.DB) error {
	runs, err := database.ListRuns(ctx, runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		_, _ = fmt.Fprintf(os.Stdout, "No scoring runs stored\n")
		return nil
	}

	for _, run := range runs {
		_, _ = fmt.Fprintln(os.Stdout, formatRunRow(run))
	}
	return nil
}

func showRun(ctx context.Context, database *db.DB, runID uuid.UUID) error {
	run, err := database.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run not found: %s", runID)
	}

	_, _ = fmt.Fprintln(os.Stdout, formatRunRow(*run))

	printer := observability.NewPrinter(os.Stdout)

	if runsCV != "" {
		result, err := database.GetScoringResultByRunID(ctx, runID, runsCV)
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("no scoring result stored for %s in run %s", runsCV, runID)
		}
		printer.PrintScoringResult(result)
		return nil
	}

	if runsPair != "" {
		cvA, cvB, err := splitPair(runsPair)
		if err != nil {
			return err
		}
		explanation, err := database.GetExplanationByRunID(ctx, runID, cvA, cvB)
		if err != nil {
			return err
		}
		if explanation == nil {
			return fmt.Errorf("no explanation stored for pair %s vs %s in run %s", cvA, cvB, runID)
		}
		printer.PrintExplanation(explanation)
		return nil
	}

	ranked, err := database.GetRankedListByRunID(ctx, runID)
	if err != nil {
		return err
	}
	if ranked == nil {
		_, _ = fmt.Fprintf(os.Stdout, "Warning: No ranked candidates stored for run %s\n", runID)
	} else {
		printer.PrintRankedList(ranked)
	}

	report, err := database.GetRankingReportByRunID(ctx, runID)
	if err != nil {
		return err
	}
	if report != nil {
		printer.PrintRankingReport(report)
	}

	// Evaluation is optional per run, so absence is not worth a warning.
	evaluationReport, err := database.GetEvaluationReportByRunID(ctx, runID)
	if err != nil {
		return err
	}
	if evaluationReport != nil {
		printer.PrintEvaluation(evaluationReport)
	}

	return nil
}

// formatRunRow renders one run as a single list line.
func formatRunRow(run db.Run) string {
	completed := "-"
	if run.CompletedAt != nil {
		completed = run.CompletedAt.Format("2006-01-02 15:04")
	}
	return fmt.Sprintf("%s  %-9s  %4d CVs  created %s  completed %s  %s",
		run.ID, run.Status, run.TotalCVs,
		run.CreatedAt.Format("2006-01-02 15:04"), completed, run.BatchName)
}

// splitPair parses a cv_a:cv_b pair argument.
func splitPair(pair string) (string, string, error) {
	parts := strings.SplitN(pair, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid pair %q: expected cv_a:cv_b", pair)
	}
	return parts[0], parts[1], nil
}
