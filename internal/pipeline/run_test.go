package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-ranker/internal/types"
)

func writeRecord(t *testing.T, dir, name string, record types.CVRecord) {
	t.Helper()
	data, err := json.Marshal(record)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), data, 0644))
}

func seedRecords(t *testing.T, n int) string {
	t.Helper()
	dir := t.TempDir()
	for i := 0; i < n; i++ {
		writeRecord(t, dir, fmt.Sprintf("candidate_%02d", i), types.CVRecord{
			Education: []types.EducationItem{
				{Degree: "MSc", Field: "Machine Learning", University: "ETH Zurich",
					GPA: 3.0 + float64(i)*0.1, Scale: 4.0, EvidenceSpan: "MSc, ETH Zurich"},
			},
			Experience: []types.ExperienceItem{
				{Title: "Engineer", Org: "Acme", DurationMonths: 12 + i*12,
					Domain: "machine learning", EvidenceSpan: "Engineer at Acme"},
			},
		})
	}
	return dir
}

func TestRun_EndToEnd(t *testing.T) {
	recordsDir := seedRecords(t, 5)
	outputDir := t.TempDir()

	result, err := Run(context.Background(), RunOptions{
		RecordsDir:   recordsDir,
		OutputDir:    outputDir,
		BatchName:    "test-batch",
		TopN:         3,
		Explanations: true,
	})

	require.NoError(t, err)
	require.NotNil(t, result.Ranked)
	assert.Equal(t, 5, result.Ranked.TotalCandidates)
	assert.Equal(t, 0, result.Skipped)
	assert.Nil(t, result.Evaluation)

	// Higher GPA and longer tenure rank candidate_04 first.
	assert.Equal(t, "candidate_04", result.Ranked.RankedCandidates[0].CVFilename)
	assert.Equal(t, 1, result.Ranked.RankedCandidates[0].Rank)
	assert.Equal(t, "candidate_00", result.Ranked.RankedCandidates[4].CVFilename)

	require.NotNil(t, result.Report)
	assert.Len(t, result.Report.TopCandidates, 3)

	for _, artifact := range []string{
		filepath.Join("scored", "candidate_00.json"),
		filepath.Join("scored", "candidate_04.json"),
		"ranked_candidates.json",
		"ranking_report.json",
	} {
		_, err := os.Stat(filepath.Join(outputDir, artifact))
		assert.NoError(t, err, artifact)
	}

	// Three adjacent pairs plus the rank1-vs-rank3 spanning comparison.
	require.Len(t, result.Explanations, 4)
	entries, err := os.ReadDir(filepath.Join(outputDir, "explanations"))
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestRun_SkipsMalformedRecords(t *testing.T) {
	recordsDir := seedRecords(t, 3)
	require.NoError(t, os.WriteFile(filepath.Join(recordsDir, "broken.json"), []byte("{not json"), 0644))
	outputDir := t.TempDir()

	result, err := Run(context.Background(), RunOptions{
		RecordsDir: recordsDir,
		OutputDir:  outputDir,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 3, result.Ranked.TotalCandidates)
}

func TestRun_EmptyRecordsDir(t *testing.T) {
	_, err := Run(context.Background(), RunOptions{
		RecordsDir: t.TempDir(),
		OutputDir:  t.TempDir(),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no CV record files found")
}

func TestRun_MissingRecordsDir(t *testing.T) {
	_, err := Run(context.Background(), RunOptions{
		RecordsDir: filepath.Join(t.TempDir(), "nope"),
		OutputDir:  t.TempDir(),
	})

	require.Error(t, err)
}

func TestRun_EvaluateWithSampleGroundTruth(t *testing.T) {
	recordsDir := seedRecords(t, 6)
	outputDir := t.TempDir()

	result, err := Run(context.Background(), RunOptions{
		RecordsDir:   recordsDir,
		OutputDir:    outputDir,
		TopN:         3,
		Explanations: true,
		Evaluate:     true,
		SampleGT:     true,
	})

	require.NoError(t, err)
	require.NotNil(t, result.Evaluation)
	assert.Equal(t, "sample (self-referential)", result.Evaluation.GroundTruthSource)

	// Self-referential annotations agree with the ranking by construction.
	require.NotNil(t, result.Evaluation.Metrics.KendallTau)
	assert.Equal(t, 1.0, result.Evaluation.Metrics.KendallTau.Value)
	require.NotNil(t, result.Evaluation.Metrics.PairwiseAccuracy)
	assert.Equal(t, 1.0, result.Evaluation.Metrics.PairwiseAccuracy.Value)
	require.NotNil(t, result.Evaluation.Metrics.Faithfulness)

	for _, artifact := range []string{
		"evaluation_report.json",
		filepath.Join("annotations", "ground_truth.json"),
		filepath.Join("annotations", "pairwise_preferences.json"),
	} {
		_, err := os.Stat(filepath.Join(outputDir, artifact))
		assert.NoError(t, err, artifact)
	}
}

func TestRun_DeterministicAcrossWorkerCounts(t *testing.T) {
	recordsDir := seedRecords(t, 8)

	serial, err := Run(context.Background(), RunOptions{
		RecordsDir: recordsDir,
		OutputDir:  t.TempDir(),
		Workers:    1,
	})
	require.NoError(t, err)

	parallel, err := Run(context.Background(), RunOptions{
		RecordsDir: recordsDir,
		OutputDir:  t.TempDir(),
		Workers:    8,
	})
	require.NoError(t, err)

	for i := range serial.Ranked.RankedCandidates {
		assert.Equal(t,
			serial.Ranked.RankedCandidates[i].CVFilename,
			parallel.Ranked.RankedCandidates[i].CVFilename)
	}
}

func TestRun_ProgressCallback(t *testing.T) {
	recordsDir := seedRecords(t, 2)

	var events []ProgressEvent
	_, err := Run(context.Background(), RunOptions{
		RecordsDir: recordsDir,
		OutputDir:  t.TempDir(),
		OnProgress: func(event ProgressEvent) { events = append(events, event) },
	})

	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, "scoring", events[0].Step)
}
