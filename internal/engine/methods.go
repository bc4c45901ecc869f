package engine

// Method is the closed set of final-score calculation strategies. Unknown
// method names are rejected at parse time rather than silently falling
// back.
type Method string

const (
	MethodWeightedAverage Method = "weighted_average"
	MethodHybrid          Method = "hybrid"
)

// ParseMethod resolves a method name. Empty selects the default
// weighted_average; anything else unknown is a ValidationError.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodWeightedAverage, MethodHybrid:
		return Method(s), nil
	case "":
		return MethodWeightedAverage, nil
	default:
		return "", &ValidationError{Field: "method", Reason: "unknown calculation method " + s}
	}
}

// AggregateInput carries everything a calculation method needs. Track
// scores are nil when the track has no data; missing tracks drop out of
// both numerator and denominator.
type AggregateInput struct {
	Project   *float64
	Expertise *float64
	// Gating is nil when the employer has no recorded agreement status.
	Gating *float64

	Weights        TrackWeights
	CriticalWeight float64
	Mode           GatingMode
}

// Aggregate computes the final score for the selected method, clamped to
// the scale bounds. Returns nil only when no input carries any weight.
func Aggregate(scale Scale, method Method, in AggregateInput) *float64 {
	switch method {
	case MethodHybrid:
		return aggregateHybrid(scale, in)
	default:
		return aggregateWeightedAverage(scale, in)
	}
}

// trackBase is the weighted average over the two evidence tracks only.
func trackBase(in AggregateInput) *float64 {
	var num, den float64
	if in.Project != nil {
		num += *in.Project * in.Weights.Project
		den += in.Weights.Project
	}
	if in.Expertise != nil {
		num += *in.Expertise * in.Weights.Expertise
		den += in.Weights.Expertise
	}
	if den == 0 {
		return nil
	}
	base := num / den
	return &base
}

func aggregateWeightedAverage(scale Scale, in AggregateInput) *float64 {
	if in.Mode == GatingCap {
		base := trackBase(in)
		if base == nil {
			if in.Gating == nil {
				return nil
			}
			v := scale.Clamp(*in.Gating)
			return &v
		}
		v := *base
		if in.Gating != nil && *in.Gating < v {
			v = *in.Gating
		}
		v = scale.Clamp(v)
		return &v
	}

	var num, den float64
	if in.Project != nil {
		num += *in.Project * in.Weights.Project
		den += in.Weights.Project
	}
	if in.Expertise != nil {
		num += *in.Expertise * in.Weights.Expertise
		den += in.Weights.Expertise
	}
	if in.Gating != nil {
		num += *in.Gating * in.Weights.Gating
		den += in.Weights.Gating
	}
	if den == 0 {
		return nil
	}
	v := scale.Clamp(num / den)
	return &v
}

// aggregateHybrid blends the track-only base with the gating score using
// the configured critical-weight fraction.
func aggregateHybrid(scale Scale, in AggregateInput) *float64 {
	cw := in.CriticalWeight
	if cw < 0 {
		cw = 0
	}
	if cw > 1 {
		cw = 1
	}
	base := trackBase(in)
	if base == nil {
		if in.Gating == nil {
			return nil
		}
		v := scale.Clamp(*in.Gating)
		return &v
	}
	if in.Gating == nil {
		v := scale.Clamp(*base)
		return &v
	}
	v := scale.Clamp(*base*(1-cw) + *in.Gating*cw)
	return &v
}
