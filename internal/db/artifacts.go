package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/cv-ranker/internal/types"
)

// GetScoringResultByRunID loads one record's scoring result for a run
func (db *DB) GetScoringResultByRunID(ctx context.Context, runID uuid.UUID, cvFilename string) (*types.ScoringResult, error) {
	content, err := db.GetArtifact(ctx, runID, ScoredStep(cvFilename))
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var result types.ScoringResult
	if err := json.Unmarshal(content, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scoring result: %w", err)
	}
	return &result, nil
}

// GetRankedListByRunID loads the ranked candidate list for a run
func (db *DB) GetRankedListByRunID(ctx context.Context, runID uuid.UUID) (*types.RankedList, error) {
	content, err := db.GetArtifact(ctx, runID, StepRankedCandidates)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var list types.RankedList
	if err := json.Unmarshal(content, &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ranked list: %w", err)
	}
	return &list, nil
}

// GetRankingReportByRunID loads the ranking report for a run
func (db *DB) GetRankingReportByRunID(ctx context.Context, runID uuid.UUID) (*types.RankingReport, error) {
	content, err := db.GetArtifact(ctx, runID, StepRankingReport)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var report types.RankingReport
	if err := json.Unmarshal(content, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ranking report: %w", err)
	}
	return &report, nil
}

// GetExplanationByRunID loads the explanation for a compared pair
func (db *DB) GetExplanationByRunID(ctx context.Context, runID uuid.UUID, cvA, cvB string) (*types.Explanation, error) {
	content, err := db.GetArtifact(ctx, runID, ExplanationStep(cvA, cvB))
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var explanation types.Explanation
	if err := json.Unmarshal(content, &explanation); err != nil {
		return nil, fmt.Errorf("failed to unmarshal explanation: %w", err)
	}
	return &explanation, nil
}

// GetEvaluationReportByRunID loads the evaluation report for a run
func (db *DB) GetEvaluationReportByRunID(ctx context.Context, runID uuid.UUID) (*types.EvaluationReport, error) {
	content, err := db.GetArtifact(ctx, runID, StepEvaluationReport)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var report types.EvaluationReport
	if err := json.Unmarshal(content, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal evaluation report: %w", err)
	}
	return &report, nil
}
