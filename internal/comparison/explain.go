package comparison

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-ranker/internal/types"
)

// Sub-score deltas larger than this name the sub-criterion as a driver in
// the reason text; below it a generic score-advantage phrasing is used.
const subScoreThreshold = 0.1

const reasonEvidenceLimit = 2

// Explain generates the human-readable explanation for why a ranks where it
// does relative to b, built on the comparator's top key differences.
func Explain(a, b *types.ScoringResult) *types.Explanation {
	cmp := Compare(a, b)

	reasons := make([]types.Reason, 0, len(cmp.KeyDifferences))
	for i, diff := range cmp.KeyDifferences {
		reasons = append(reasons, types.Reason{
			Rank:              i + 1,
			Criterion:         displayName(diff.Criterion),
			Reason:            reasonText(diff, a, b),
			ScoreDelta:        round4(diff.ScoreDelta),
			ContributionDelta: round4(diff.ContributionDelta),
			Impact:            impact(diff.ContributionDelta),
			Evidence:          reasonEvidence(diff.Criterion, a, b),
		})
	}

	return &types.Explanation{
		Summary:      summary(a, b, cmp),
		TopReasons:   reasons,
		DeltaTable:   cmp.DeltaTable,
		OverallDelta: cmp.OverallDelta,
		CVAFilename:  cmp.CVA.Filename,
		CVBFilename:  cmp.CVB.Filename,
	}
}

// impact classifies a contribution delta: >0.1 High, >0.05 Medium, else Low.
func impact(contributionDelta float64) string {
	abs := contributionDelta
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs > 0.1:
		return "High"
	case abs > 0.05:
		return "Medium"
	default:
		return "Low"
	}
}

func summary(a, b *types.ScoringResult, cmp *types.ComparisonResult) string {
	delta := cmp.OverallDelta.Percentage
	if delta < 0 {
		delta = -delta
	}
	s := fmt.Sprintf("%s (Score: %.2f%%) ranks higher than %s (Score: %.2f%%) by %.2f percentage points. ",
		cmp.CVA.Filename, a.FinalScorePercentage, cmp.CVB.Filename, b.FinalScorePercentage, delta)

	if len(cmp.KeyDifferences) > 0 {
		s += fmt.Sprintf("The primary advantage is in %s.", displayName(cmp.KeyDifferences[0].Criterion))
	}
	return s
}

// reasonText dispatches to the criterion-specific explainer.
func reasonText(diff types.KeyDifference, a, b *types.ScoringResult) string {
	da := a.Criterion(diff.Criterion).Details
	db := b.Criterion(diff.Criterion).Details

	switch diff.Criterion {
	case types.CriterionEducation:
		return explainEducation(da, db, diff.ScoreDelta)
	case types.CriterionExperience:
		return explainExperience(da, db, diff.ScoreDelta)
	case types.CriterionPublications:
		return explainPublications(da, db, diff.ScoreDelta)
	case types.CriterionCoherence:
		return explainCoherence(da, db, diff.ScoreDelta)
	case types.CriterionAwards:
		return explainAwards(da, db, diff.ScoreDelta)
	default:
		return fmt.Sprintf("%s is stronger by %.2f%%", displayName(diff.Criterion), diff.ScoreDelta*100)
	}
}

func subDelta(a, b types.CriterionDetails, name string) float64 {
	return a.SubScores[name] - b.SubScores[name]
}

func explainEducation(a, b types.CriterionDetails, delta float64) string {
	var drivers []string
	if subDelta(a, b, "university_tier") > subScoreThreshold {
		drivers = append(drivers, "higher-tier university")
	}
	if subDelta(a, b, "gpa") > subScoreThreshold {
		drivers = append(drivers, "better GPA")
	}
	if subDelta(a, b, "degree_level") > subScoreThreshold {
		drivers = append(drivers, "higher degree level")
	}

	if len(drivers) > 0 {
		return fmt.Sprintf("Stronger education due to %s.", strings.Join(drivers, ", "))
	}
	return fmt.Sprintf("Better overall education profile (score advantage: %.2f%%).", delta*100)
}

func explainExperience(a, b types.CriterionDetails, delta float64) string {
	var drivers []string
	if subDelta(a, b, "duration") > subScoreThreshold {
		yearsDiff := float64(a.TotalMonths-b.TotalMonths) / 12
		drivers = append(drivers, fmt.Sprintf("%.1f more years of experience", yearsDiff))
	}
	if subDelta(a, b, "domain_match") > subScoreThreshold {
		drivers = append(drivers, "better domain alignment")
	}
	if subDelta(a, b, "seniority") > subScoreThreshold {
		drivers = append(drivers, "higher seniority level")
	}

	if len(drivers) > 0 {
		return fmt.Sprintf("Stronger experience: %s.", strings.Join(drivers, ", "))
	}
	return fmt.Sprintf("Better overall experience profile (score advantage: %.2f%%).", delta*100)
}

func explainPublications(a, b types.CriterionDetails, delta float64) string {
	var drivers []string
	if a.TotalPublications > b.TotalPublications {
		drivers = append(drivers, fmt.Sprintf("%d more publications", a.TotalPublications-b.TotalPublications))
	}
	if subDelta(a, b, "if") > subScoreThreshold {
		drivers = append(drivers, "higher impact factor journals")
	}
	if subDelta(a, b, "author_position") > subScoreThreshold {
		drivers = append(drivers, "better author positions")
	}
	if subDelta(a, b, "venue_quality") > subScoreThreshold {
		drivers = append(drivers, "higher-quality venues")
	}

	if len(drivers) > 0 {
		return fmt.Sprintf("Stronger research profile: %s.", strings.Join(drivers, ", "))
	}
	return fmt.Sprintf("Better publication record (score advantage: %.2f%%).", delta*100)
}

func explainCoherence(a, b types.CriterionDetails, delta float64) string {
	var drivers []string
	if subDelta(a, b, "domain_consistency") > subScoreThreshold {
		drivers = append(drivers, "more consistent domain focus")
	}
	if subDelta(a, b, "progression") > subScoreThreshold {
		drivers = append(drivers, "better career progression")
	}

	if len(drivers) > 0 {
		return fmt.Sprintf("Better career coherence: %s.", strings.Join(drivers, ", "))
	}
	return fmt.Sprintf("More coherent career trajectory (score advantage: %.2f%%).", delta*100)
}

func explainAwards(a, b types.CriterionDetails, delta float64) string {
	if a.TotalAwards > b.TotalAwards {
		return fmt.Sprintf("%d more awards and achievements.", a.TotalAwards-b.TotalAwards)
	}
	if a.TotalAwards == b.TotalAwards && a.TotalAwards > 0 {
		return "Higher quality awards."
	}
	return fmt.Sprintf("Better awards profile (score advantage: %.2f%%).", delta*100)
}

// reasonEvidence attaches up to two evidence spans per side from the
// matching criterion's details.
func reasonEvidence(criterion string, a, b *types.ScoringResult) types.ReasonEvidence {
	return types.ReasonEvidence{
		CVA: firstN(a.Criterion(criterion).Details.Evidence, reasonEvidenceLimit),
		CVB: firstN(b.Criterion(criterion).Details.Evidence, reasonEvidenceLimit),
	}
}

func firstN(spans []string, n int) []string {
	if len(spans) > n {
		spans = spans[:n]
	}
	out := make([]string, len(spans))
	copy(out, spans)
	return out
}
