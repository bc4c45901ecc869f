package engine

import "math"

// Rating is the traffic-light label attached to a score.
type Rating string

const (
	RatingGreen   Rating = "green"
	RatingYellow  Rating = "yellow"
	RatingAmber   Rating = "amber"
	RatingRed     Rating = "red"
	RatingUnknown Rating = "unknown"
)

// Tier orders ratings worst-to-best: red=1, amber=2, yellow=3, green=4.
// Unknown has no tier and returns 0.
func (r Rating) Tier() int {
	switch r {
	case RatingRed:
		return 1
	case RatingAmber:
		return 2
	case RatingYellow:
		return 3
	case RatingGreen:
		return 4
	default:
		return 0
	}
}

// ParseRating maps a stored label back to a Rating.
func ParseRating(s string) Rating {
	switch Rating(s) {
	case RatingGreen, RatingYellow, RatingAmber, RatingRed:
		return Rating(s)
	default:
		return RatingUnknown
	}
}

// Bucket is one ordered threshold range: scores >= Min map to Rating.
type Bucket struct {
	Min    float64
	Rating Rating
}

// DiscrepancyThresholds are the minimum absolute score differences for
// each severity tier on a given scale.
type DiscrepancyThresholds struct {
	Minor    float64
	Moderate float64
	Major    float64
	Critical float64
}

// Scale describes one numeric rating scale. All engine math is
// scale-generic; the four-point scale is the canonical one and the legacy
// -100..100 scale is supported through the adapters below.
type Scale struct {
	Name string
	Min  float64
	Max  float64

	// Direct selects nearest-integer four-point mapping instead of
	// threshold buckets.
	Direct bool
	// Buckets are checked in order, first match wins. Only used when
	// Direct is false.
	Buckets []Bucket

	Discrepancy DiscrepancyThresholds
}

// FourPointScale is the canonical 1..4 scale: 1=red (worst), 4=green (best).
func FourPointScale() Scale {
	return Scale{
		Name:   "four_point",
		Min:    1,
		Max:    4,
		Direct: true,
		Discrepancy: DiscrepancyThresholds{
			Minor:    1.0,
			Moderate: 1.5,
			Major:    2.0,
			Critical: 3.0,
		},
	}
}

// LegacyScale is the historical -100..100 scale, higher is better.
func LegacyScale() Scale {
	return Scale{
		Name: "legacy",
		Min:  -100,
		Max:  100,
		Buckets: []Bucket{
			{Min: 50, Rating: RatingGreen},
			{Min: 0, Rating: RatingYellow},
			{Min: -50, Rating: RatingAmber},
			{Min: -100, Rating: RatingRed},
		},
		Discrepancy: DiscrepancyThresholds{
			Minor:    30,
			Moderate: 50,
			Major:    80,
			Critical: 120,
		},
	}
}

// ParseScale resolves a configured scale name. Unknown names are rejected
// rather than defaulted.
func ParseScale(name string) (Scale, error) {
	switch name {
	case "four_point":
		return FourPointScale(), nil
	case "legacy":
		return LegacyScale(), nil
	default:
		return Scale{}, &ValidationError{Field: "scale", Reason: "unknown scale " + name}
	}
}

// Clamp bounds a raw score to the scale.
func (s Scale) Clamp(v float64) float64 {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

// RatingFor buckets a numeric score into a rating label. Fractional
// four-point scores round half-away-from-zero, so 2.5 is yellow.
func (s Scale) RatingFor(score float64) Rating {
	score = s.Clamp(score)
	if s.Direct {
		switch int(math.Round(score)) {
		case 1:
			return RatingRed
		case 2:
			return RatingAmber
		case 3:
			return RatingYellow
		default:
			return RatingGreen
		}
	}
	for _, b := range s.Buckets {
		if score >= b.Min {
			return b.Rating
		}
	}
	return RatingRed
}

// FourPointFromLegacy converts a legacy -100..100 score to the canonical
// 1..4 scale.
func FourPointFromLegacy(v float64) float64 {
	legacy := LegacyScale()
	v = legacy.Clamp(v)
	return 1 + (v-legacy.Min)/(legacy.Max-legacy.Min)*3
}

// LegacyFromFourPoint converts a canonical 1..4 score to the legacy
// -100..100 scale.
func LegacyFromFourPoint(v float64) float64 {
	fp := FourPointScale()
	v = fp.Clamp(v)
	return -100 + (v-fp.Min)/(fp.Max-fp.Min)*200
}
