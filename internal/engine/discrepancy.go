package engine

import "math"

// Severity classifies the disagreement between the two tracks.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

func (s Severity) rank() int {
	switch s {
	case SeverityMinor:
		return 1
	case SeverityModerate:
		return 2
	case SeverityMajor:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// DiscrepancyResult feeds the FinalRating discrepancy fields and the
// per-run audit row.
type DiscrepancyResult struct {
	ScoreDifference *float64
	RatingsMatch    bool
	Severity        Severity
	RequiresReview  bool
}

// DetectDiscrepancy compares the two track outputs. The numeric rule
// thresholds |project - expertise| per the scale; the categorical rule
// forces severity up when the rating labels disagree by two or more
// tiers, regardless of numeric gap. Review is required from moderate up.
//
// If either rating is unknown there is nothing to compare: severity none,
// no review.
func DetectDiscrepancy(scale Scale, projectScore, expertiseScore *float64, projectRating, expertiseRating Rating) DiscrepancyResult {
	if projectRating == RatingUnknown || expertiseRating == RatingUnknown ||
		projectScore == nil || expertiseScore == nil {
		return DiscrepancyResult{
			RatingsMatch: projectRating == expertiseRating,
			Severity:     SeverityNone,
		}
	}

	diff := math.Abs(*projectScore - *expertiseScore)
	sev := SeverityNone
	t := scale.Discrepancy
	switch {
	case diff >= t.Critical:
		sev = SeverityCritical
	case diff >= t.Major:
		sev = SeverityMajor
	case diff >= t.Moderate:
		sev = SeverityModerate
	case diff >= t.Minor:
		sev = SeverityMinor
	}

	tierGap := projectRating.Tier() - expertiseRating.Tier()
	if tierGap < 0 {
		tierGap = -tierGap
	}
	switch {
	case tierGap >= 3 && sev.rank() < SeverityCritical.rank():
		sev = SeverityCritical
	case tierGap >= 2 && sev.rank() < SeverityMajor.rank():
		sev = SeverityMajor
	}

	return DiscrepancyResult{
		ScoreDifference: &diff,
		RatingsMatch:    projectRating == expertiseRating,
		Severity:        sev,
		RequiresReview:  sev.rank() >= SeverityModerate.rank(),
	}
}
