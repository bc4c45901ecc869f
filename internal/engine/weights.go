package engine

import (
	"fmt"
	"math"
)

// weightEpsilon is the floating tolerance on the sum-to-1.0 invariant.
const weightEpsilon = 1e-3

// ValidateProfileWeights enforces the WeightProfile invariant: component
// weights are non-negative and sum to 1.0 within tolerance. Profiles
// violating this are rejected at write time.
func ValidateProfileWeights(weights map[string]float64) error {
	if len(weights) == 0 {
		return &ValidationError{Field: "weights", Reason: "no components"}
	}
	sum := 0.0
	for key, w := range weights {
		if w < 0 {
			return &ValidationError{Field: "weights", Reason: fmt.Sprintf("negative weight for %s: %f", key, w)}
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightEpsilon {
		return &ValidationError{Field: "weights", Reason: fmt.Sprintf("weights sum to %.4f, must sum to 1.0", sum)}
	}
	return nil
}

// TrackWeights are the per-track weights of one aggregation run.
type TrackWeights struct {
	Project   float64 `json:"project" yaml:"project"`
	Expertise float64 `json:"expertise" yaml:"expertise"`
	Gating    float64 `json:"gating" yaml:"gating"`
}

// DefaultTrackWeights mirrors the operational defaults.
func DefaultTrackWeights() TrackWeights {
	return TrackWeights{Project: 0.6, Expertise: 0.4, Gating: 0.15}
}

// Validate rejects negative or all-zero track weights. The three weights
// are not required to sum to 1; aggregation normalizes by the weights of
// the inputs actually present.
func (w TrackWeights) Validate() error {
	if w.Project < 0 || w.Expertise < 0 || w.Gating < 0 {
		return &ValidationError{Field: "weights", Reason: "track weights must be non-negative"}
	}
	if w.Project+w.Expertise+w.Gating <= 0 {
		return &ValidationError{Field: "weights", Reason: "at least one track weight must be positive"}
	}
	return nil
}

// Map flattens the weights for the weights_used audit column.
func (w TrackWeights) Map() map[string]float64 {
	return map[string]float64{
		"project":   w.Project,
		"expertise": w.Expertise,
		"gating":    w.Gating,
	}
}
