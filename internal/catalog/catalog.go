// Package catalog provides quality-catalogue lookups: university tiers,
// journal impact factors and venue quality, resolved by exact then fuzzy
// name matching, plus degree-level classification.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Catalogue file names expected inside a mappings directory.
const (
	UniversityTiersFile = "university_tiers.json"
	JournalIFFile       = "journal_if.json"
	VenueQualityFile    = "venue_quality.json"
)

// scoredGroup is one tier in a catalogue file: a score shared by a list of names.
type scoredGroup struct {
	Score        float64  `json:"score"`
	Universities []string `json:"universities,omitempty"`
	Venues       []string `json:"venues,omitempty"`
}

// journalTable is the journal impact factor catalogue file.
type journalTable struct {
	Journals  map[string]float64 `json:"journals"`
	DefaultIF float64            `json:"default_if"`
}

// entry is one case-folded catalogue key with its quality score.
type entry struct {
	key   string
	score float64
}

// Catalog holds the loaded lookup tables. It is built once at startup and
// read-only thereafter, so it may be shared across scoring workers.
type Catalog struct {
	universities      []entry
	universityDefault float64
	journals          []entry
	journalDefault    float64
	venues            []entry
	venueDefault      float64
	preprintScore     float64
}

// Load reads the three catalogue files from dir.
func Load(dir string) (*Catalog, error) {
	var tiers map[string]scoredGroup
	if err := readJSON(filepath.Join(dir, UniversityTiersFile), &tiers); err != nil {
		return nil, err
	}

	var journals journalTable
	if err := readJSON(filepath.Join(dir, JournalIFFile), &journals); err != nil {
		return nil, err
	}

	var venues map[string]scoredGroup
	if err := readJSON(filepath.Join(dir, VenueQualityFile), &venues); err != nil {
		return nil, err
	}

	return build(tiers, journals, venues)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalogue file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse catalogue file %s: %w", path, err)
	}
	return nil
}

// build assembles lookup slices from the decoded tables. Entries are sorted
// by key so fuzzy scans are deterministic regardless of map iteration order.
func build(tiers map[string]scoredGroup, journals journalTable, venues map[string]scoredGroup) (*Catalog, error) {
	c := &Catalog{journalDefault: journals.DefaultIF}

	defaultTier, ok := tiers["default_tier"]
	if !ok {
		return nil, fmt.Errorf("university tiers catalogue missing default_tier entry")
	}
	c.universityDefault = defaultTier.Score
	for tierName, tier := range tiers {
		if tierName == "default_tier" {
			continue
		}
		for _, uni := range tier.Universities {
			c.universities = append(c.universities, entry{key: strings.ToLower(uni), score: tier.Score})
		}
	}

	for name, ifValue := range journals.Journals {
		c.journals = append(c.journals, entry{key: strings.ToLower(name), score: ifValue})
	}

	defaultVenue, ok := venues["default_venue"]
	if !ok {
		return nil, fmt.Errorf("venue quality catalogue missing default_venue entry")
	}
	c.venueDefault = defaultVenue.Score
	for tierName, tier := range venues {
		if tierName == "default_venue" {
			continue
		}
		if tierName == "preprints" {
			c.preprintScore = tier.Score
		}
		for _, venue := range tier.Venues {
			c.venues = append(c.venues, entry{key: strings.ToLower(venue), score: tier.Score})
		}
	}

	sortEntries(c.universities)
	sortEntries(c.journals)
	sortEntries(c.venues)
	return c, nil
}

func sortEntries(entries []entry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
}

// Default returns a small built-in catalogue mirroring the shipped mapping
// files, usable when no mappings directory is configured.
func Default() *Catalog {
	c, err := build(
		map[string]scoredGroup{
			"tier_1": {Score: 1.0, Universities: []string{
				"MIT", "Stanford University", "Harvard University", "University of Oxford",
				"University of Cambridge", "ETH Zurich", "Carnegie Mellon University",
			}},
			"tier_2": {Score: 0.8, Universities: []string{
				"University of Toronto", "University of Edinburgh", "EPFL",
				"Technical University of Munich", "KU Leuven",
			}},
			"tier_3": {Score: 0.6, Universities: []string{
				"University of Manchester", "University of Amsterdam", "RWTH Aachen University",
			}},
			"default_tier": {Score: 0.4},
		},
		journalTable{
			Journals: map[string]float64{
				"Nature":                                            49.9,
				"Science":                                           47.7,
				"Cell":                                              45.5,
				"The Lancet":                                        79.3,
				"Nature Machine Intelligence":                       23.8,
				"Journal of Machine Learning Research":              6.0,
				"IEEE Transactions on Pattern Analysis and Machine Intelligence": 20.8,
				"Bioinformatics": 5.8,
				"PLOS ONE":       3.2,
			},
			DefaultIF: 1.0,
		},
		map[string]scoredGroup{
			"tier_a": {Score: 1.0, Venues: []string{
				"NeurIPS", "ICML", "ICLR", "CVPR", "ACL", "AAAI",
			}},
			"tier_b": {Score: 0.8, Venues: []string{
				"EMNLP", "ECCV", "ICCV", "KDD", "IJCAI", "COLING",
			}},
			"tier_c": {Score: 0.6, Venues: []string{
				"ICPR", "ICASSP", "INTERSPEECH", "BMVC",
			}},
			"preprints": {Score: 0.3, Venues: []string{
				"arXiv", "bioRxiv", "medRxiv", "SSRN",
			}},
			"default_venue": {Score: 0.4},
		},
	)
	if err != nil {
		panic(fmt.Sprintf("built-in catalogue is invalid: %v", err))
	}
	return c
}
