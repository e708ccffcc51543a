package catalog

import "strings"

// fuzzyThreshold is the minimum similarity ratio for a fuzzy catalogue match.
const fuzzyThreshold = 85

// preprintKeywords mark a venue as a preprint server by substring containment.
var preprintKeywords = []string{"arxiv", "biorxiv", "medrxiv", "preprint", "ssrn"}

// Degree level keyword sets. Doctorate keywords are checked first so "PhD"
// never classifies as a masters degree.
var (
	doctorateKeywords = []string{"phd", "ph.d", "doctorate", "doctoral"}
	mastersKeywords   = []string{"msc", "ms", "ma", "master", "mphil"}
)

// Degree levels returned by DegreeLevel.
const (
	LevelBachelor  = 1
	LevelMaster    = 2
	LevelDoctorate = 3
)

// Resolver answers free-text quality lookups against a Catalog. Construct
// with NewResolver and inject into scorers; it is safe for concurrent use.
type Resolver struct {
	catalog *Catalog
	sim     Similarity
}

// NewResolver builds a resolver over catalog using sim for fuzzy matching.
// A nil sim defaults to TokenSetRatio.
func NewResolver(catalog *Catalog, sim Similarity) *Resolver {
	if sim == nil {
		sim = TokenSetRatio{}
	}
	return &Resolver{catalog: catalog, sim: sim}
}

// UniversityTier resolves a university name to its tier score in [0,1].
func (r *Resolver) UniversityTier(name string) float64 {
	if name == "" {
		return r.catalog.universityDefault
	}
	return r.lookup(name, r.catalog.universities, r.catalog.universityDefault)
}

// JournalImpact resolves a journal name to its impact factor.
func (r *Resolver) JournalImpact(name string) float64 {
	if name == "" {
		return r.catalog.journalDefault
	}
	return r.lookup(name, r.catalog.journals, r.catalog.journalDefault)
}

// VenueQuality resolves a conference/venue name to a quality score in [0,1].
// Names containing a preprint-server keyword score as preprints before any
// fuzzy matching happens.
func (r *Resolver) VenueQuality(name string) float64 {
	if name == "" {
		return r.catalog.venueDefault
	}

	lower := strings.ToLower(name)
	for _, e := range r.catalog.venues {
		if e.key == lower {
			return e.score
		}
	}

	for _, keyword := range preprintKeywords {
		if strings.Contains(lower, keyword) {
			return r.catalog.preprintScore
		}
	}

	return r.fuzzy(lower, r.catalog.venues, r.catalog.venueDefault)
}

// DegreeLevel classifies degree text to 1 (bachelor), 2 (master) or
// 3 (doctorate). Unrecognized text defaults to bachelor level.
func (r *Resolver) DegreeLevel(degree string) int {
	if degree == "" {
		return LevelBachelor
	}

	lower := strings.ToLower(degree)
	for _, keyword := range doctorateKeywords {
		if strings.Contains(lower, keyword) {
			return LevelDoctorate
		}
	}
	for _, keyword := range mastersKeywords {
		if strings.Contains(lower, keyword) {
			return LevelMaster
		}
	}
	return LevelBachelor
}

// lookup tries an exact case-insensitive match, then a fuzzy scan.
func (r *Resolver) lookup(name string, entries []entry, def float64) float64 {
	lower := strings.ToLower(name)
	for _, e := range entries {
		if e.key == lower {
			return e.score
		}
	}
	return r.fuzzy(lower, entries, def)
}

// fuzzy scans all entries and accepts the best match above the threshold.
// Ties keep the first entry seen; entries are pre-sorted so the scan order,
// and therefore the result, is deterministic.
func (r *Resolver) fuzzy(lower string, entries []entry, def float64) float64 {
	best := def
	bestRatio := 0.0
	for _, e := range entries {
		ratio := r.sim.Ratio(lower, e.key)
		if ratio > fuzzyThreshold && ratio > bestRatio {
			bestRatio = ratio
			best = e.score
		}
	}
	return best
}
