package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/cv-ranker/internal/catalog"
	"github.com/jonathan/cv-ranker/internal/config"
	"github.com/jonathan/cv-ranker/internal/observability"
	"github.com/jonathan/cv-ranker/internal/schemas"
	"github.com/jonathan/cv-ranker/internal/scoring"
	"github.com/jonathan/cv-ranker/internal/types"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a structured CV record",
	Long:  "Scores one extracted CV record across the five criteria (education, experience, publications, coherence, awards) and produces an explainable ScoringResult JSON with sub-scores, evidence and weighted contributions.",
	RunE:  runScore,
}

var (
	scoreRecord   string
	scoreOutput   string
	scoreConfig   string
	scoreMappings string
	scoreVerbose  bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreRecord, "record", "r", "", "Path to input CVRecord JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreOutput, "out", "o", "", "Path to output ScoringResult JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreConfig, "config", "c", "", "Path to scoring config JSON (defaults to built-in weights)")
	scoreCmd.Flags().StringVarP(&scoreMappings, "mappings", "m", "", "Path to mappings directory with catalogue JSONs (defaults to built-in catalogue)")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print the scoring breakdown")

	if err := scoreCmd.MarkFlagRequired("record"); err != nil {
		panic(fmt.Sprintf("failed to mark record flag as required: %v", err))
	}
	if err := scoreCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	// 1. Load CV record
	recordContent, err := os.ReadFile(scoreRecord)
	if err != nil {
		return fmt.Errorf("failed to read record file %s: %w", scoreRecord, err)
	}

	var record types.CVRecord
	if err := json.Unmarshal(recordContent, &record); err != nil {
		return fmt.Errorf("failed to unmarshal CV record JSON: %w", err)
	}

	// 2. Load config and catalogue
	cfg := config.Default()
	if scoreConfig != "" {
		cfg, err = config.Load(scoreConfig)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	cat := catalog.Default()
	if scoreMappings != "" {
		cat, err = catalog.Load(scoreMappings)
		if err != nil {
			return fmt.Errorf("failed to load mappings: %w", err)
		}
	}

	// 3. Score
	aggregator := scoring.NewAggregator(cfg, catalog.NewResolver(cat, nil))
	result := aggregator.CalculateFinalScore(&record)
	result.CVFilename = baseName(scoreRecord)

	// 4. Write output
	if err := writeJSONArtifact(scoreOutput, result); err != nil {
		return err
	}

	// 5. Validate output against schema (optional - non-fatal)
	validateOutput(schemas.ScoringResultSchema, scoreOutput)

	if scoreVerbose {
		observability.NewPrinter(os.Stdout).PrintScoringResult(result)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Scored %s: %.2f%% -> %s\n", result.CVFilename, result.FinalScorePercentage, scoreOutput)

	return nil
}

// baseName strips the directory and .json extension from a record path.
func baseName(path string) string {
	name := filepath.Base(path)
	if ext := filepath.Ext(name); ext == ".json" {
		name = name[:len(name)-len(ext)]
	}
	return name
}

// writeJSONArtifact marshals v with indentation and writes it, creating the
// output directory when needed.
func writeJSONArtifact(path string, v any) error {
	jsonOutput, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output to JSON: %w", err)
	}

	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}

	if err := os.WriteFile(path, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

// validateOutput checks a written artifact against its schema. Output
// validation is a safety check, not a requirement.
func validateOutput(schemaRelPath, outputPath string) {
	schemaPath := schemas.ResolveSchemaPath(schemaRelPath)
	if schemaPath == "" {
		return
	}
	if err := schemas.ValidateJSON(schemaPath, outputPath); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: Output validation failed: %v\n", err)
	}
}
