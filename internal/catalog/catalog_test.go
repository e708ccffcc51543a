package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_BuildsCleanly(t *testing.T) {
	c := Default()

	assert.Equal(t, 0.4, c.universityDefault)
	assert.Equal(t, 1.0, c.journalDefault)
	assert.Equal(t, 0.4, c.venueDefault)
	assert.Equal(t, 0.3, c.preprintScore)
	assert.NotEmpty(t, c.universities)
	assert.NotEmpty(t, c.journals)
	assert.NotEmpty(t, c.venues)
}

func TestBuild_EntriesSortedByKey(t *testing.T) {
	c := Default()

	for i := 1; i < len(c.universities); i++ {
		assert.LessOrEqual(t, c.universities[i-1].key, c.universities[i].key,
			"university entries must stay sorted for deterministic fuzzy scans")
	}
}

func TestBuild_MissingDefaultTier(t *testing.T) {
	_, err := build(
		map[string]scoredGroup{
			"tier_1": {Score: 1.0, Universities: []string{"MIT"}},
		},
		journalTable{Journals: map[string]float64{}, DefaultIF: 1.0},
		map[string]scoredGroup{"default_venue": {Score: 0.4}},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_tier")
}

func TestBuild_MissingDefaultVenue(t *testing.T) {
	_, err := build(
		map[string]scoredGroup{"default_tier": {Score: 0.4}},
		journalTable{Journals: map[string]float64{}, DefaultIF: 1.0},
		map[string]scoredGroup{},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_venue")
}

func TestLoad_FromMappingsDir(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, UniversityTiersFile), `{
		"tier_1": {"score": 1.0, "universities": ["MIT"]},
		"default_tier": {"score": 0.4}
	}`)
	writeFile(t, filepath.Join(dir, JournalIFFile), `{
		"journals": {"Nature": 49.9},
		"default_if": 1.0
	}`)
	writeFile(t, filepath.Join(dir, VenueQualityFile), `{
		"tier_a": {"score": 1.0, "venues": ["NeurIPS"]},
		"preprints": {"score": 0.3, "venues": ["arXiv"]},
		"default_venue": {"score": 0.4}
	}`)

	c, err := Load(dir)
	require.NoError(t, err)

	r := NewResolver(c, nil)
	assert.Equal(t, 1.0, r.UniversityTier("MIT"))
	assert.Equal(t, 49.9, r.JournalImpact("Nature"))
	assert.Equal(t, 1.0, r.VenueQuality("NeurIPS"))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), UniversityTiersFile)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
