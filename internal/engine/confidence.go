package engine

import "time"

// Confidence is the qualitative reliability tier attached to a score.
type Confidence string

const (
	ConfidenceHigh    Confidence = "high"
	ConfidenceMedium  Confidence = "medium"
	ConfidenceLow     Confidence = "low"
	ConfidenceVeryLow Confidence = "very_low"
)

// Numeric is the proxy value used when blending confidences.
func (c Confidence) Numeric() float64 {
	switch c {
	case ConfidenceHigh:
		return 0.9
	case ConfidenceMedium:
		return 0.7
	case ConfidenceLow:
		return 0.5
	default:
		return 0.3
	}
}

func (c Confidence) rank() int {
	switch c {
	case ConfidenceHigh:
		return 4
	case ConfidenceMedium:
		return 3
	case ConfidenceLow:
		return 2
	default:
		return 1
	}
}

// ParseConfidence maps a stored hint back to a tier, defaulting unknown
// labels to medium (the neutral hint).
func ParseConfidence(s string) Confidence {
	switch Confidence(s) {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow, ConfidenceVeryLow:
		return Confidence(s)
	default:
		return ConfidenceMedium
	}
}

func lowerConfidence(a, b Confidence) Confidence {
	if a.rank() <= b.rank() {
		return a
	}
	return b
}

// RecencyRule holds the assessment-count/age windows for the recency
// confidence rule.
type RecencyRule struct {
	HighWithinDays   int `yaml:"high_within_days"`
	HighMinCount     int `yaml:"high_min_count"`
	MediumWithinDays int `yaml:"medium_within_days"`
	LowWithinDays    int `yaml:"low_within_days"`
}

func DefaultRecencyRule() RecencyRule {
	return RecencyRule{
		HighWithinDays:   60,
		HighMinCount:     2,
		MediumWithinDays: 90,
		LowWithinDays:    120,
	}
}

// RecencyConfidence applies the recency rule: >=2 assessments within 60
// days is high, >=1 within 90 is medium, >=1 within 120 is low, else
// very_low (with the windows configurable).
func (r RecencyRule) RecencyConfidence(asOf time.Time, dates []time.Time) Confidence {
	withinHigh, withinMedium, withinLow := 0, 0, 0
	for _, d := range dates {
		age := int(asOf.Sub(d).Hours() / 24)
		if age < 0 {
			continue
		}
		if age <= r.HighWithinDays {
			withinHigh++
		}
		if age <= r.MediumWithinDays {
			withinMedium++
		}
		if age <= r.LowWithinDays {
			withinLow++
		}
	}
	switch {
	case withinHigh >= r.HighMinCount:
		return ConfidenceHigh
	case withinMedium >= 1:
		return ConfidenceMedium
	case withinLow >= 1:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

// reliabilityBaseWeight is the per-confidence-label base used by the
// assessor reliability rule.
func reliabilityBaseWeight(hint Confidence) float64 {
	switch hint {
	case ConfidenceHigh:
		return 1.0
	case ConfidenceMedium:
		return 0.8
	case ConfidenceLow:
		return 0.6
	case ConfidenceVeryLow:
		return 0.4
	default:
		return 0.5
	}
}

const unknownAccuracyFraction = 0.7

// ReliabilityWeight multiplies the hint's base weight by the assessor's
// accuracy fraction (0.7 when unknown), floored at 0.1. The same weight
// feeds the cross-assessment average in the track scorer.
func ReliabilityWeight(hint Confidence, accuracy *float64) float64 {
	acc := unknownAccuracyFraction
	if accuracy != nil {
		acc = *accuracy
	}
	w := reliabilityBaseWeight(hint) * acc
	if w < 0.1 {
		w = 0.1
	}
	return w
}

// confidenceFromWeight maps a reliability weight back onto a tier so the
// reliability rule can be composed with the recency rule.
func confidenceFromWeight(w float64) Confidence {
	switch {
	case w >= 0.8:
		return ConfidenceHigh
	case w >= 0.6:
		return ConfidenceMedium
	case w >= 0.4:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

// Fixed blend weights for overall confidence. They deliberately do not sum
// to 1; the blend normalizes by the weights of the inputs present.
const (
	overallProjectWeight   = 0.6
	overallExpertiseWeight = 0.4
	overallGatingWeight    = 0.15
)

// OverallConfidence blends per-track confidence proxies. A track with no
// assessments at all forces the overall tier to very_low.
func OverallConfidence(project, expertise Confidence, hasProject, hasExpertise, hasGating bool) Confidence {
	if !hasProject || !hasExpertise {
		return ConfidenceVeryLow
	}
	num := project.Numeric()*overallProjectWeight + expertise.Numeric()*overallExpertiseWeight
	den := overallProjectWeight + overallExpertiseWeight
	if hasGating {
		// Gating data is definitional once the agreement status is known.
		num += ConfidenceHigh.Numeric() * overallGatingWeight
		den += overallGatingWeight
	}
	blended := num / den
	switch {
	case blended >= 0.8:
		return ConfidenceHigh
	case blended >= 0.6:
		return ConfidenceMedium
	case blended >= 0.4:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}
