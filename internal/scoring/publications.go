package scoring

import (
	"strings"

	"github.com/jonathan/cv-ranker/internal/config"
	"github.com/jonathan/cv-ranker/internal/types"
)

// maxJournalIFForVenue bounds the IF→quality conversion for journal venues.
const maxJournalIFForVenue = 50.0

// PublicationScorer scores research output from impact factors, author
// positions and venue quality.
type PublicationScorer struct {
	cfg      *config.Config
	resolver Resolver
}

// NewPublicationScorer constructs a publication scorer.
func NewPublicationScorer(cfg *config.Config, resolver Resolver) *PublicationScorer {
	return &PublicationScorer{cfg: cfg, resolver: resolver}
}

// Name implements Scorer.
func (s *PublicationScorer) Name() string { return types.CriterionPublications }

// Score implements Scorer.
func (s *PublicationScorer) Score(rec *types.CVRecord) (float64, types.CriterionDetails) {
	items := rec.Publications

	if len(items) == 0 {
		return 0.0, types.CriterionDetails{
			SubScores:             map[string]float64{"if": 0.0, "author_position": 0.0, "venue_quality": 0.0},
			HasData:               false,
			MissingPenaltyApplied: true,
			Evidence:              []string{},
		}
	}

	ifScore := s.impactFactorScore(items)
	authorScore := s.authorPositionScore(items)
	venueScore := s.venueScore(items)

	finalScore := ifScore*s.cfg.Subweight(types.CriterionPublications, "if", 0.5) +
		authorScore*s.cfg.Subweight(types.CriterionPublications, "author_position", 0.3) +
		venueScore*s.cfg.Subweight(types.CriterionPublications, "venue_quality", 0.2)
	finalScore = clampUnit(finalScore)

	spans := make([]string, 0, len(items))
	for _, pub := range items {
		spans = append(spans, pub.EvidenceSpan)
	}

	details := types.CriterionDetails{
		SubScores: map[string]float64{
			"if":              round3(ifScore),
			"author_position": round3(authorScore),
			"venue_quality":   round3(venueScore),
		},
		FinalScore:        round3(finalScore),
		HasData:           true,
		Evidence:          evidenceSpans(spans),
		TotalPublications: len(items),
		Breakdown:         s.breakdown(items),
	}

	return finalScore, details
}

// impactValue is the declared impact factor, or a catalogue fallback: journal
// lookup for journal-type entries, venue quality scaled into an IF-like 0-10
// range otherwise.
func (s *PublicationScorer) impactValue(pub types.PublicationItem) float64 {
	if pub.JournalIF > 0 {
		return pub.JournalIF
	}
	if strings.Contains(strings.ToLower(pub.Type), "journal") {
		return s.resolver.JournalImpact(pub.Venue)
	}
	return s.resolver.VenueQuality(pub.Venue) * 10
}

// impactFactorScore is the mean over entries of their normalized impact
// value. Entries whose resolved value is zero are excluded from the mean.
func (s *PublicationScorer) impactFactorScore(items []types.PublicationItem) float64 {
	total := 0.0
	count := 0
	maxIF := s.cfg.Normalization.MaxJournalIF

	for _, pub := range items {
		ifValue := s.impactValue(pub)
		if ifValue > 0 {
			total += normalizeScore(ifValue, maxIF)
			count++
		}
	}

	if count == 0 {
		return 0.0
	}
	return total / float64(count)
}

// authorPositionScore is the mean of a position-tiered value per entry:
// first author near 1 with a bonus, second 0.8 plus a smaller bonus,
// positions 3-5 a decreasing scale, unknown or later positions 0.2.
func (s *PublicationScorer) authorPositionScore(items []types.PublicationItem) float64 {
	total := 0.0
	for _, pub := range items {
		switch position := pub.AuthorPosition; {
		case position == 1:
			total += clampUnit(1.0 + s.cfg.Policies.FirstAuthorBonus)
		case position == 2:
			total += clampUnit(0.8 + s.cfg.Policies.SecondAuthorBonus)
		case position >= 3 && position <= 5:
			total += 0.6 - float64(position-3)*0.1
		default:
			total += 0.2
		}
	}
	return total / float64(len(items))
}

// venueScore is the mean venue quality per entry: normalized IF for journals,
// catalogue venue quality otherwise.
func (s *PublicationScorer) venueScore(items []types.PublicationItem) float64 {
	total := 0.0
	for _, pub := range items {
		if strings.Contains(strings.ToLower(pub.Type), "journal") {
			total += normalizeScore(s.resolver.JournalImpact(pub.Venue), maxJournalIFForVenue)
		} else {
			total += s.resolver.VenueQuality(pub.Venue)
		}
	}
	return total / float64(len(items))
}

func (s *PublicationScorer) breakdown(items []types.PublicationItem) []types.PublicationBreakdownRow {
	rows := make([]types.PublicationBreakdownRow, 0, len(items))
	for _, pub := range items {
		var metric float64
		var metricType string
		if strings.Contains(strings.ToLower(pub.Type), "journal") {
			metric = s.resolver.JournalImpact(pub.Venue)
			metricType = "IF"
		} else {
			metric = s.resolver.VenueQuality(pub.Venue)
			metricType = "Venue Score"
		}
		rows = append(rows, types.PublicationBreakdownRow{
			Title:          pub.Title,
			Venue:          pub.Venue,
			Year:           pub.Year,
			Type:           pub.Type,
			AuthorPosition: pub.AuthorPosition,
			QualityMetric:  round2(metric),
			QualityType:    metricType,
			Domain:         pub.Domain,
		})
	}
	return rows
}
