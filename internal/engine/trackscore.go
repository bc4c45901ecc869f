package engine

import "time"

// ComponentScore is one rated sub-criterion within an assessment.
type ComponentScore struct {
	Key   string
	Score float64
}

// AssessmentInput is one dated assessment of a track, flattened for the
// scorer.
type AssessmentInput struct {
	EffectiveDate    time.Time
	ConfidenceHint   Confidence
	AssessorAccuracy *float64 // 0..1 fraction, nil when unknown
	Components       []ComponentScore
}

// TrackResult is the derived per-track output. Score is nil when the track
// has no usable assessments.
type TrackResult struct {
	Score           *float64
	Rating          Rating
	Confidence      Confidence
	AssessmentCount int
	NewestAgeDays   *int
}

// ScoreTrack converts a track's assessments into one normalized score.
//
// Two-level weighting: within an assessment each component score is
// weighted by its profile weight; components absent from the assessment
// (or absent from the profile) are dropped and the remaining weights
// renormalized. No neutral midpoint is substituted.
// Across assessments, each assessment's score is weighted by its own
// reliability weight before averaging.
//
// expertiseTrack switches on the assessor-reliability confidence rule,
// which only applies to the organiser expertise track.
func ScoreTrack(scale Scale, rule RecencyRule, profile map[string]float64, assessments []AssessmentInput, asOf time.Time, expertiseTrack bool) TrackResult {
	var (
		weightedSum float64
		weightTotal float64
		dates       []time.Time
		usable      int
	)

	for _, a := range assessments {
		var num, den float64
		for _, c := range a.Components {
			w, ok := profile[c.Key]
			if !ok {
				continue
			}
			num += scale.Clamp(c.Score) * w
			den += w
		}
		if den == 0 {
			continue
		}
		rel := ReliabilityWeight(a.ConfidenceHint, a.AssessorAccuracy)
		weightedSum += (num / den) * rel
		weightTotal += rel
		usable++
		dates = append(dates, a.EffectiveDate)
	}

	if usable == 0 || weightTotal == 0 {
		return TrackResult{
			Rating:     RatingUnknown,
			Confidence: ConfidenceVeryLow,
		}
	}

	score := scale.Clamp(weightedSum / weightTotal)
	conf := rule.RecencyConfidence(asOf, dates)
	if expertiseTrack {
		conf = lowerConfidence(conf, confidenceFromWeight(weightTotal/float64(usable)))
	}

	newest := dates[0]
	for _, d := range dates[1:] {
		if d.After(newest) {
			newest = d
		}
	}
	ageDays := int(asOf.Sub(newest).Hours() / 24)
	if ageDays < 0 {
		ageDays = 0
	}

	return TrackResult{
		Score:           &score,
		Rating:          scale.RatingFor(score),
		Confidence:      conf,
		AssessmentCount: usable,
		NewestAgeDays:   &ageDays,
	}
}
