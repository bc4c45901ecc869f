package engine

import (
	"testing"
	"time"
)

func daysAgo(asOf time.Time, n int) time.Time {
	return asOf.AddDate(0, 0, -n)
}

func TestRecencyConfidence(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	rule := DefaultRecencyRule()

	cases := []struct {
		name string
		ages []int
		want Confidence
	}{
		{"two_fresh_high", []int{10, 30}, ConfidenceHigh},
		{"one_fresh_medium", []int{30}, ConfidenceMedium},
		{"one_within_ninety_medium", []int{89}, ConfidenceMedium},
		{"one_within_onetwenty_low", []int{119}, ConfidenceLow},
		{"stale_very_low", []int{200}, ConfidenceVeryLow},
		{"none_very_low", nil, ConfidenceVeryLow},
		{"one_fresh_one_stale_medium", []int{45, 300}, ConfidenceMedium},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var dates []time.Time
			for _, a := range tc.ages {
				dates = append(dates, daysAgo(asOf, a))
			}
			if got := rule.RecencyConfidence(asOf, dates); got != tc.want {
				t.Fatalf("RecencyConfidence(%v)=%v, want %v", tc.ages, got, tc.want)
			}
		})
	}
}

func TestReliabilityWeight(t *testing.T) {
	acc := func(v float64) *float64 { return &v }
	cases := []struct {
		name     string
		hint     Confidence
		accuracy *float64
		want     float64
	}{
		{"high_full_accuracy", ConfidenceHigh, acc(1.0), 1.0},
		{"high_unknown_accuracy", ConfidenceHigh, nil, 0.7},
		{"medium_unknown_accuracy", ConfidenceMedium, nil, 0.56},
		{"low_half_accuracy", ConfidenceLow, acc(0.5), 0.3},
		{"floor_applies", ConfidenceVeryLow, acc(0.1), 0.1},
		{"unrecognized_hint_base", Confidence("wild"), acc(1.0), 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ReliabilityWeight(tc.hint, tc.accuracy)
			if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("ReliabilityWeight(%v)=%v, want %v", tc.hint, got, tc.want)
			}
		})
	}
}

func TestOverallConfidence(t *testing.T) {
	cases := []struct {
		name                   string
		project, expertise     Confidence
		hasProj, hasExp, hasGk bool
		want                   Confidence
	}{
		// 0.9*0.6 + 0.3*0.4 + 0.9*0.15 = 0.795 over 1.15 -> 0.691 -> medium
		{"high_project_verylow_expertise", ConfidenceHigh, ConfidenceVeryLow, true, true, true, ConfidenceMedium},
		{"all_high", ConfidenceHigh, ConfidenceHigh, true, true, true, ConfidenceHigh},
		{"missing_expertise_forces_very_low", ConfidenceHigh, ConfidenceVeryLow, true, false, true, ConfidenceVeryLow},
		{"missing_project_forces_very_low", ConfidenceVeryLow, ConfidenceHigh, false, true, true, ConfidenceVeryLow},
		{"no_gating_term", ConfidenceMedium, ConfidenceMedium, true, true, false, ConfidenceMedium},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := OverallConfidence(tc.project, tc.expertise, tc.hasProj, tc.hasExp, tc.hasGk)
			if got != tc.want {
				t.Fatalf("OverallConfidence=%v, want %v", got, tc.want)
			}
		})
	}
}
