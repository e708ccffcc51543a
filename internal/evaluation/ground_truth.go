package evaluation

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/jonathan/cv-ranker/internal/types"
)

const (
	groundTruthFile = "ground_truth.json"
	pairwiseFile    = "pairwise_preferences.json"

	defaultSampleSize = 20
	defaultNumPairs   = 50

	// Sample preference pairs span this many ranks, so the preferred side
	// has a clearly higher score.
	minPairOffset = 2
	maxPairOffset = 5
)

// Manager loads and writes ground truth annotation files in a directory.
//
// When no hand-annotated files exist it can synthesize samples from the
// system's own ranked output. Metrics computed against such samples measure
// consistency with the system's prior ranking rather than independent truth,
// which is why the generated files are labeled as samples.
type Manager struct {
	dir string
	rng *rand.Rand
}

// NewManager returns a Manager rooted at dir. A nil rng gets an unseeded
// source; tests inject a seeded one for reproducible pair sampling.
func NewManager(dir string, rng *rand.Rand) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Manager{dir: dir, rng: rng}
}

// GroundTruthPath returns the path of the ranking annotation file.
func (m *Manager) GroundTruthPath() string {
	return filepath.Join(m.dir, groundTruthFile)
}

// PairwisePath returns the path of the preference-pairs annotation file.
func (m *Manager) PairwisePath() string {
	return filepath.Join(m.dir, pairwiseFile)
}

// CreateSampleGroundTruth writes a pseudo ground truth built from the top
// sampleSize entries of the ranked list: the predicted order becomes the
// "true" ranking and final scores become relevance. In production this file
// would be replaced by HR annotations.
func (m *Manager) CreateSampleGroundTruth(list *types.RankedList, sampleSize int) (*types.GroundTruth, error) {
	if sampleSize <= 0 {
		sampleSize = defaultSampleSize
	}
	sample := list.RankedCandidates
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}

	gt := &types.GroundTruth{
		Description:     "Ground truth ranking (sample, for demonstration purposes)",
		SampleSize:      len(sample),
		Ranking:         make([]string, 0, len(sample)),
		RelevanceScores: make(map[string]float64, len(sample)),
	}
	for _, entry := range sample {
		gt.Ranking = append(gt.Ranking, entry.CVFilename)
		gt.RelevanceScores[entry.CVFilename] = entry.FinalScore
	}

	if err := writeJSON(m.GroundTruthPath(), gt); err != nil {
		return nil, fmt.Errorf("failed to write sample ground truth: %w", err)
	}
	return gt, nil
}

// CreateSamplePairwisePreferences writes sample preference pairs from the
// ranked list, pairing each position with one 2 to 5 ranks below it.
func (m *Manager) CreateSamplePairwisePreferences(list *types.RankedList, numPairs int) (*types.PairwisePreferences, error) {
	if numPairs <= 0 {
		numPairs = defaultNumPairs
	}
	ranked := list.RankedCandidates

	var pairs []types.PreferencePair
	for i := 0; i < numPairs && i < len(ranked)-1; i++ {
		offset := minPairOffset + m.rng.Intn(maxPairOffset-minPairOffset+1)
		j := i + offset
		if j > len(ranked)-1 {
			j = len(ranked) - 1
		}

		better := ranked[i]
		worse := ranked[j]
		pairs = append(pairs, types.PreferencePair{
			Better: better.CVFilename,
			Worse:  worse.CVFilename,
			Reason: fmt.Sprintf("Higher overall score (%.2f%% vs %.2f%%)",
				better.FinalScorePercentage, worse.FinalScorePercentage),
		})
	}

	prefs := &types.PairwisePreferences{
		Description: "Pairwise preferences (sample, for demonstration purposes)",
		TotalPairs:  len(pairs),
		Pairs:       pairs,
	}

	if err := writeJSON(m.PairwisePath(), prefs); err != nil {
		return nil, fmt.Errorf("failed to write sample pairwise preferences: %w", err)
	}
	return prefs, nil
}

// LoadGroundTruth reads and validates the ranking annotation file. Returns
// (nil, nil) when the file does not exist.
func (m *Manager) LoadGroundTruth() (*types.GroundTruth, error) {
	data, err := os.ReadFile(m.GroundTruthPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ground truth: %w", err)
	}

	var gt types.GroundTruth
	if err := json.Unmarshal(data, &gt); err != nil {
		return nil, fmt.Errorf("failed to parse ground truth: %w", err)
	}
	if err := gt.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ground truth: %w", err)
	}
	return &gt, nil
}

// LoadPairwisePreferences reads and validates the preference-pairs file.
// Returns (nil, nil) when the file does not exist.
func (m *Manager) LoadPairwisePreferences() (*types.PairwisePreferences, error) {
	data, err := os.ReadFile(m.PairwisePath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pairwise preferences: %w", err)
	}

	var prefs types.PairwisePreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("failed to parse pairwise preferences: %w", err)
	}
	if err := prefs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pairwise preferences: %w", err)
	}
	return &prefs, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
