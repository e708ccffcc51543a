// Package pipeline provides the high-level orchestration for the CV scoring
// and ranking process.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-ranker/internal/catalog"
	"github.com/jonathan/cv-ranker/internal/comparison"
	"github.com/jonathan/cv-ranker/internal/config"
	"github.com/jonathan/cv-ranker/internal/db"
	"github.com/jonathan/cv-ranker/internal/evaluation"
	"github.com/jonathan/cv-ranker/internal/observability"
	"github.com/jonathan/cv-ranker/internal/ranking"
	"github.com/jonathan/cv-ranker/internal/scoring"
	"github.com/jonathan/cv-ranker/internal/types"
)

const (
	defaultWorkers = 4
	defaultTopN    = 10
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	RecordsDir     string
	OutputDir      string
	ConfigPath     string
	MappingsDir    string
	AnnotationsDir string
	BatchName      string
	TopN           int
	Workers        int
	Explanations   bool
	Evaluate       bool
	SampleGT       bool
	Verbose        bool
	DatabaseURL    string
	OnProgress     ProgressCallback
}

// Result holds the artifacts produced by a pipeline run.
type Result struct {
	Ranked       *types.RankedList
	Report       *types.RankingReport
	Evaluation   *types.EvaluationReport
	Explanations []*types.Explanation
	Skipped      int
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			Content:  content,
		})
	}
}

// Run orchestrates the full scoring pipeline: score every record in the
// records directory, rank the batch, generate explanations for the top
// adjacent pairs and optionally evaluate against ground truth. Records that
// fail to load or score are skipped with a warning rather than failing the
// batch.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	printer := observability.NewPrinter(os.Stdout)

	cfg, cat, err := loadInputs(opts)
	if err != nil {
		return nil, err
	}
	aggregator := scoring.NewAggregator(cfg, catalog.NewResolver(cat, nil))

	// Initialize database connection if configured
	var database *db.DB
	var runID uuid.UUID
	if opts.DatabaseURL != "" {
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
			database = nil
		} else {
			defer database.Close()
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Connected to database\n")
			}
		}
	}

	files, err := recordFiles(opts.RecordsDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no CV record files found in %s", opts.RecordsDir)
	}

	if database != nil {
		runID, err = database.CreateRun(ctx, opts.BatchName, cfg.Policies.TargetDomain, len(files))
		if err != nil {
			fmt.Printf("Warning: Failed to create database run: %v\n", err)
			runID = uuid.Nil
		} else if opts.Verbose {
			fmt.Printf("[VERBOSE] Created database run: %s\n", runID)
		}
	}

	// Step 1: score all records concurrently.
	fmt.Printf("Step 1/4: Scoring %d CV records...\n", len(files))
	results, skipped := scoreAll(ctx, opts, aggregator, files)
	if len(results) == 0 {
		return nil, fmt.Errorf("all %d records failed to score", len(files))
	}
	if skipped > 0 {
		fmt.Printf("Warning: Skipped %d records that failed to load or score\n", skipped)
	}

	scoredDir := filepath.Join(opts.OutputDir, "scored")
	for _, result := range results {
		if err := writeArtifact(filepath.Join(scoredDir, result.CVFilename+".json"), result); err != nil {
			return nil, fmt.Errorf("failed to write scoring result: %w", err)
		}
		if database != nil && runID != uuid.Nil {
			_ = database.SaveArtifact(ctx, runID, db.ScoredStep(result.CVFilename), db.CategoryScoring, result)
		}
		if opts.Verbose {
			printer.PrintScoringResult(result)
		}
	}
	emitProgress(&opts, "scoring", db.CategoryScoring,
		fmt.Sprintf("Scored %d CV records", len(results)), nil)

	// Step 2: rank the batch.
	fmt.Printf("Step 2/4: Ranking %d candidates...\n", len(results))
	ranked := ranking.Rank(results)

	topN := opts.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	report := ranking.Report(ranked, topN)

	if err := writeArtifact(filepath.Join(opts.OutputDir, "ranked_candidates.json"), ranked); err != nil {
		return nil, fmt.Errorf("failed to write ranked list: %w", err)
	}
	if err := writeArtifact(filepath.Join(opts.OutputDir, "ranking_report.json"), report); err != nil {
		return nil, fmt.Errorf("failed to write ranking report: %w", err)
	}
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepRankedCandidates, db.CategoryRanking, ranked)
		_ = database.SaveArtifact(ctx, runID, db.StepRankingReport, db.CategoryRanking, report)
	}
	if opts.Verbose {
		printer.PrintRankedList(ranked)
		printer.PrintRankingReport(report)
	}
	emitProgress(&opts, db.StepRankedCandidates, db.CategoryRanking,
		fmt.Sprintf("Ranked %d candidates", ranked.TotalCandidates), nil)

	out := &Result{Ranked: ranked, Report: report, Skipped: skipped}

	// Step 3: explanations for the top adjacent pairs.
	if opts.Explanations {
		fmt.Printf("Step 3/4: Generating explanations for top candidate comparisons...\n")
		out.Explanations, err = explainTopPairs(ctx, opts, ranked, topN, database, runID)
		if err != nil {
			return nil, err
		}
	} else {
		fmt.Printf("Step 3/4: Skipping explanations\n")
	}

	// Step 4: evaluation against ground truth.
	if opts.Evaluate {
		fmt.Printf("Step 4/4: Evaluating ranking quality...\n")
		out.Evaluation, err = evaluate(ctx, opts, ranked, out.Explanations, database, runID)
		if err != nil {
			return nil, err
		}
		if database != nil && runID != uuid.Nil {
			_ = database.SaveArtifact(ctx, runID, db.StepEvaluationReport, db.CategoryEvaluation, out.Evaluation)
		}
		if opts.Verbose {
			printer.PrintEvaluation(out.Evaluation)
		}
		emitProgress(&opts, db.StepEvaluationReport, db.CategoryEvaluation, "Evaluated ranking quality", nil)
	} else {
		fmt.Printf("Step 4/4: Skipping evaluation\n")
	}

	// Mark run as completed
	if database != nil && runID != uuid.Nil {
		_ = database.CompleteRun(ctx, runID, "completed")
	}

	fmt.Printf("Done! Artifacts written to %s\n", opts.OutputDir)
	return out, nil
}

// loadInputs resolves the scoring configuration and catalogue, falling back
// to built-in defaults when no paths are given.
func loadInputs(opts RunOptions) (*config.Config, *catalog.Catalog, error) {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		var err error
		cfg, err = config.Load(opts.ConfigPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cat := catalog.Default()
	if opts.MappingsDir != "" {
		var err error
		cat, err = catalog.Load(opts.MappingsDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load mappings: %w", err)
		}
	}

	return cfg, cat, nil
}

// recordFiles lists the JSON record files in dir, sorted by name.
func recordFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read records directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// scoreAll scores every record file with a bounded worker pool. Results keep
// the input file order regardless of scheduling; failed records are counted
// and logged, not returned.
func scoreAll(ctx context.Context, opts RunOptions, aggregator *scoring.Aggregator, files []string) ([]*types.ScoringResult, int) {
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	slots := make([]*types.ScoringResult, len(files))
	var mu sync.Mutex
	skipped := 0

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			result, err := scoreFile(aggregator, file)
			if err != nil {
				mu.Lock()
				skipped++
				mu.Unlock()
				fmt.Printf("Warning: Error scoring %s: %v\n", filepath.Base(file), err)
				return nil
			}
			slots[i] = result
			return nil
		})
	}
	// Workers only report nil; Wait is for completion.
	_ = g.Wait()

	results := make([]*types.ScoringResult, 0, len(slots))
	for _, result := range slots {
		if result != nil {
			results = append(results, result)
		}
	}
	return results, skipped
}

// scoreFile loads one CV record and scores it. The record's base file name
// without extension becomes the candidate id.
func scoreFile(aggregator *scoring.Aggregator, path string) (*types.ScoringResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}

	var record types.CVRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse record: %w", err)
	}

	result := aggregator.CalculateFinalScore(&record)
	result.CVFilename = strings.TrimSuffix(filepath.Base(path), ".json")
	return result, nil
}

// explainTopPairs generates explanations for each adjacent pair in the top N
// plus one spanning comparison between rank 1 and rank N.
func explainTopPairs(ctx context.Context, opts RunOptions, ranked *types.RankedList, topN int, database *db.DB, runID uuid.UUID) ([]*types.Explanation, error) {
	entries := ranked.RankedCandidates
	numPairs := topN
	if numPairs > len(entries)-1 {
		numPairs = len(entries) - 1
	}

	explanationsDir := filepath.Join(opts.OutputDir, "explanations")
	var explanations []*types.Explanation

	save := func(name string, a, b *types.ScoringResult) error {
		explanation := comparison.Explain(a, b)
		explanations = append(explanations, explanation)

		if err := writeArtifact(filepath.Join(explanationsDir, name), explanation); err != nil {
			return fmt.Errorf("failed to write explanation: %w", err)
		}
		if database != nil && runID != uuid.Nil {
			_ = database.SaveArtifact(ctx, runID, db.ExplanationStep(a.CVFilename, b.CVFilename), db.CategoryComparison, explanation)
		}
		return nil
	}

	for i := 0; i < numPairs; i++ {
		a := &entries[i].ScoringResult
		b := &entries[i+1].ScoringResult
		name := fmt.Sprintf("rank%d_vs_rank%d_%s_vs_%s.json", i+1, i+2, a.CVFilename, b.CVFilename)
		if err := save(name, a, b); err != nil {
			return nil, err
		}
	}

	// Spanning comparison between the top candidate and the last of the top N.
	if len(entries) >= topN && topN > 1 {
		first := &entries[0].ScoringResult
		last := &entries[topN-1].ScoringResult
		name := fmt.Sprintf("rank1_vs_rank%d_detailed.json", topN)
		if err := save(name, first, last); err != nil {
			return nil, err
		}
	}

	fmt.Printf("Generated %d explanations in %s\n", len(explanations), explanationsDir)
	return explanations, nil
}

// evaluate loads (or synthesizes) ground truth annotations and computes the
// evaluation report. Missing annotations reduce the report rather than
// failing the run.
func evaluate(ctx context.Context, opts RunOptions, ranked *types.RankedList, explanations []*types.Explanation, database *db.DB, runID uuid.UUID) (*types.EvaluationReport, error) {
	annotationsDir := opts.AnnotationsDir
	if annotationsDir == "" {
		annotationsDir = filepath.Join(opts.OutputDir, "annotations")
	}
	manager := evaluation.NewManager(annotationsDir, nil)

	source := "annotated"
	if opts.SampleGT {
		if _, err := manager.CreateSampleGroundTruth(ranked, 0); err != nil {
			return nil, err
		}
		if _, err := manager.CreateSamplePairwisePreferences(ranked, 0); err != nil {
			return nil, err
		}
		source = "sample (self-referential)"
		fmt.Printf("Created sample ground truth annotations in %s\n", annotationsDir)
	}

	groundTruth, err := manager.LoadGroundTruth()
	if err != nil {
		return nil, err
	}
	if groundTruth == nil {
		fmt.Printf("Warning: No ground truth found in %s, correlation metrics omitted\n", annotationsDir)
	}

	pairs, err := manager.LoadPairwisePreferences()
	if err != nil {
		return nil, err
	}

	if database != nil && runID != uuid.Nil {
		if groundTruth != nil {
			_ = database.SaveArtifact(ctx, runID, db.StepGroundTruth, db.CategoryEvaluation, groundTruth)
		}
		if pairs != nil {
			_ = database.SaveArtifact(ctx, runID, db.StepPairwisePrefs, db.CategoryEvaluation, pairs)
		}
	}

	report := evaluation.Evaluate(evaluation.Input{
		Ranked:       ranked,
		GroundTruth:  groundTruth,
		Pairs:        pairs,
		Explanations: explanations,
		Source:       source,
	})

	if err := writeArtifact(filepath.Join(opts.OutputDir, "evaluation_report.json"), report); err != nil {
		return nil, fmt.Errorf("failed to write evaluation report: %w", err)
	}
	return report, nil
}

// writeArtifact writes v as indented JSON, creating parent directories.
func writeArtifact(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
