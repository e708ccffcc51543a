// Package config provides scoring configuration loading and validation.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/cv-ranker/internal/types"
)

// weightSumTolerance allows small floating point errors in the weight sum.
const weightSumTolerance = 0.01

// Policies holds the named scalar knobs consumed by the criterion scorers.
type Policies struct {
	MissingValuesPenalty        float64 `json:"missing_values_penalty"`
	MinMonthsExperienceForBonus int     `json:"min_months_experience_for_bonus"`
	ExperienceBonus             float64 `json:"experience_bonus"`
	FirstAuthorBonus            float64 `json:"first_author_bonus"`
	SecondAuthorBonus           float64 `json:"second_author_bonus"`
	TargetDomain                string  `json:"target_domain"`
	DomainMatchBonus            float64 `json:"domain_match_bonus"`
	PhDBonus                    float64 `json:"phd_bonus"`
	MastersBonus                float64 `json:"masters_bonus"`
	MinDomainConsistency        float64 `json:"min_domain_consistency"`
}

// Normalization holds the caps used to map raw values into [0,1].
type Normalization struct {
	GPAScale            float64 `json:"gpa_scale"`
	MaxExperienceMonths float64 `json:"max_experience_months"`
	MaxPublications     float64 `json:"max_publications"`
	MaxJournalIF        float64 `json:"max_journal_if"`
}

// Config is the validated scoring configuration. Every downstream computation
// assumes Validate has passed; the aggregator does not re-check the weight sum.
type Config struct {
	Weights       map[string]float64            `json:"weights" validate:"required,min=1"`
	Subweights    map[string]map[string]float64 `json:"subweights" validate:"required"`
	Policies      Policies                      `json:"policies"`
	Normalization Normalization                 `json:"normalization" validate:"required"`
}

// Load reads and validates a configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a configuration from JSON bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks structural requirements: the five criterion weights summing
// to 1.0 (within tolerance) and subweights present for every criterion that
// defines sub-scores (all except awards_other).
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	sum := 0.0
	for _, criterion := range types.CriterionOrder {
		w, ok := c.Weights[criterion]
		if !ok {
			return fmt.Errorf("config error: missing weight for criterion %q", criterion)
		}
		if w < 0 {
			return fmt.Errorf("config error: weight for %q must be non-negative", criterion)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("config error: weights must sum to 1.0, got %.4f", sum)
	}

	for _, criterion := range types.CriterionOrder {
		if criterion == types.CriterionAwards {
			continue
		}
		if len(c.Subweights[criterion]) == 0 {
			return fmt.Errorf("config error: missing subweights for criterion %q", criterion)
		}
	}

	return nil
}

// Weight returns the configured weight for a criterion, 0 when absent.
func (c *Config) Weight(criterion string) float64 {
	return c.Weights[criterion]
}

// Subweight returns the configured sub-weight for a named sub-criterion,
// falling back to def when the key is absent.
func (c *Config) Subweight(criterion, name string, def float64) float64 {
	sub, ok := c.Subweights[criterion]
	if !ok {
		return def
	}
	w, ok := sub[name]
	if !ok {
		return def
	}
	return w
}

// Default returns the configuration the original system ships as its default:
// a balanced screening profile targeting machine learning candidates.
func Default() *Config {
	return &Config{
		Weights: map[string]float64{
			types.CriterionEducation:    0.3,
			types.CriterionExperience:   0.3,
			types.CriterionPublications: 0.25,
			types.CriterionCoherence:    0.1,
			types.CriterionAwards:       0.05,
		},
		Subweights: map[string]map[string]float64{
			types.CriterionEducation: {
				"gpa":             0.5,
				"degree_level":    0.2,
				"university_tier": 0.3,
			},
			types.CriterionExperience: {
				"duration":     0.5,
				"domain_match": 0.3,
				"seniority":    0.2,
			},
			types.CriterionPublications: {
				"if":              0.5,
				"author_position": 0.3,
				"venue_quality":   0.2,
			},
			types.CriterionCoherence: {
				"domain_consistency": 0.6,
				"progression":        0.4,
			},
		},
		Policies: Policies{
			MissingValuesPenalty:        0.1,
			MinMonthsExperienceForBonus: 24,
			ExperienceBonus:             0.05,
			FirstAuthorBonus:            0.1,
			SecondAuthorBonus:           0.05,
			TargetDomain:                "machine learning",
			DomainMatchBonus:            0.1,
			PhDBonus:                    0.1,
			MastersBonus:                0.05,
			MinDomainConsistency:        0.6,
		},
		Normalization: Normalization{
			GPAScale:            4.0,
			MaxExperienceMonths: 120,
			MaxPublications:     10,
			MaxJournalIF:        10,
		},
	}
}
