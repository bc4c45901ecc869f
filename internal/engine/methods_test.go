package engine

import (
	"math"
	"testing"
)

func TestParseMethod(t *testing.T) {
	cases := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{"weighted_average", MethodWeightedAverage, false},
		{"hybrid", MethodHybrid, false},
		{"", MethodWeightedAverage, false},
		{"bayesian", "", true},
	}
	for _, tc := range cases {
		got, err := ParseMethod(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseMethod(%q) expected error", tc.in)
			} else if !IsValidation(err) {
				t.Errorf("ParseMethod(%q) error is not a ValidationError: %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMethod(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMethod(%q)=%v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestWeightedAverageDiscrepantTracks(t *testing.T) {
	got := Aggregate(FourPointScale(), MethodWeightedAverage, AggregateInput{
		Project:   f(3),
		Expertise: f(1),
		Gating:    f(3),
		Weights:   TrackWeights{Project: 0.6, Expertise: 0.4, Gating: 0.15},
	})
	if got == nil {
		t.Fatal("final score is nil")
	}
	want := (3*0.6 + 1*0.4 + 3*0.15) / 1.15
	if math.Abs(*got-want) > 1e-9 {
		t.Fatalf("final=%v, want %v", *got, want)
	}
	if r := FourPointScale().RatingFor(*got); r != RatingAmber {
		t.Fatalf("rating=%v, want amber", r)
	}
}

func TestWeightedAverageMissingTrackDropsWeight(t *testing.T) {
	got := Aggregate(FourPointScale(), MethodWeightedAverage, AggregateInput{
		Project: f(3),
		Gating:  f(3),
		Weights: DefaultTrackWeights(),
	})
	if got == nil || math.Abs(*got-3) > 1e-9 {
		t.Fatalf("final=%v, want 3", got)
	}
}

func TestWeightedAverageAllMissing(t *testing.T) {
	got := Aggregate(FourPointScale(), MethodWeightedAverage, AggregateInput{
		Weights: DefaultTrackWeights(),
	})
	if got != nil {
		t.Fatalf("final=%v, want nil", *got)
	}
}

func TestGatingCapMode(t *testing.T) {
	// Strong track scores, but no agreement: capped at the gating score.
	got := Aggregate(FourPointScale(), MethodWeightedAverage, AggregateInput{
		Project:   f(4),
		Expertise: f(4),
		Gating:    f(1),
		Weights:   DefaultTrackWeights(),
		Mode:      GatingCap,
	})
	if got == nil || *got != 1 {
		t.Fatalf("final=%v, want capped 1", got)
	}

	// Active agreement above the base leaves the base untouched.
	got = Aggregate(FourPointScale(), MethodWeightedAverage, AggregateInput{
		Project:   f(2),
		Expertise: f(2),
		Gating:    f(3),
		Weights:   DefaultTrackWeights(),
		Mode:      GatingCap,
	})
	if got == nil || math.Abs(*got-2) > 1e-9 {
		t.Fatalf("final=%v, want 2", got)
	}
}

func TestHybridMethod(t *testing.T) {
	got := Aggregate(FourPointScale(), MethodHybrid, AggregateInput{
		Project:        f(3),
		Expertise:      f(2),
		Gating:         f(1),
		Weights:        TrackWeights{Project: 0.5, Expertise: 0.5, Gating: 0.15},
		CriticalWeight: 0.25,
	})
	if got == nil {
		t.Fatal("final score is nil")
	}
	base := (3*0.5 + 2*0.5) / 1.0
	want := base*0.75 + 1*0.25
	if math.Abs(*got-want) > 1e-9 {
		t.Fatalf("final=%v, want %v", *got, want)
	}
}

func TestAggregateClampsResult(t *testing.T) {
	// Inputs outside the scale are clamped after aggregation.
	got := Aggregate(FourPointScale(), MethodWeightedAverage, AggregateInput{
		Project: f(9),
		Weights: TrackWeights{Project: 1},
	})
	if got == nil || *got != 4 {
		t.Fatalf("final=%v, want clamped 4", got)
	}
}
