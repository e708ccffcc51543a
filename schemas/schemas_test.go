package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/cv-ranker/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	schemaFiles := []string{
		"cv_record.schema.json",
		"scoring_result.schema.json",
		"ranked_candidates.schema.json",
		"explanation.schema.json",
		"ground_truth.schema.json",
		"pairwise_preferences.schema.json",
		"evaluation_report.schema.json",
	}

	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			schemaPath := filepath.Join(".", schemaFile)
			data, err := os.ReadFile(schemaPath)
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestCVRecordSchema_AcceptsMinimalRecord(t *testing.T) {
	schemaContent, err := os.ReadFile("cv_record.schema.json")
	require.NoError(t, err)

	record := `{
		"education": [
			{"degree": "MSc Computer Science", "university": "MIT", "gpa": 3.8, "scale": 4.0}
		],
		"experience": [],
		"publications": []
	}`

	err = schemas.ValidateJSONString(string(schemaContent), record)
	assert.NoError(t, err)
}

func TestCVRecordSchema_RejectsUnknownFields(t *testing.T) {
	schemaContent, err := os.ReadFile("cv_record.schema.json")
	require.NoError(t, err)

	record := `{"salary_expectation": 100000}`

	err = schemas.ValidateJSONString(string(schemaContent), record)
	require.Error(t, err)

	var validationErr *schemas.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
}

func TestGroundTruthSchema_RequiresRanking(t *testing.T) {
	schemaContent, err := os.ReadFile("ground_truth.schema.json")
	require.NoError(t, err)

	err = schemas.ValidateJSONString(string(schemaContent), `{"relevance_scores": {"a.json": 0.8}}`)
	require.Error(t, err)

	err = schemas.ValidateJSONString(string(schemaContent),
		`{"ranking": ["a.json"], "relevance_scores": {"a.json": 0.8}}`)
	assert.NoError(t, err)
}

func TestExplanationSchema_BoundsImpactValues(t *testing.T) {
	schemaContent, err := os.ReadFile("explanation.schema.json")
	require.NoError(t, err)

	explanation := `{
		"summary": "cv_a ranks higher than cv_b",
		"top_reasons": [
			{
				"rank": 1,
				"criterion": "Education",
				"reason": "Stronger education due to better GPA.",
				"score_delta": 0.2,
				"contribution_delta": 0.06,
				"impact": "Extreme",
				"evidence": {"cv_a": [], "cv_b": []}
			}
		],
		"delta_table": [],
		"overall_delta": {"absolute": 0.1, "percentage": 10.0, "winner": "A"}
	}`

	err = schemas.ValidateJSONString(string(schemaContent), explanation)
	require.Error(t, err, "impact outside High/Medium/Low should fail validation")
}
