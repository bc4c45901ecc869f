package engine

import (
	"math"
	"testing"
	"time"
)

var trackAsOf = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func assessment(age int, hint Confidence, components ...ComponentScore) AssessmentInput {
	return AssessmentInput{
		EffectiveDate:  daysAgo(trackAsOf, age),
		ConfidenceHint: hint,
		Components:     components,
	}
}

func TestScoreTrackSingleAssessment(t *testing.T) {
	profile := map[string]float64{
		"right_of_entry":    0.4,
		"safety_compliance": 0.35,
		"delegate_presence": 0.25,
	}
	got := ScoreTrack(FourPointScale(), DefaultRecencyRule(), profile, []AssessmentInput{
		assessment(10, ConfidenceHigh,
			ComponentScore{Key: "right_of_entry", Score: 4},
			ComponentScore{Key: "safety_compliance", Score: 2},
			ComponentScore{Key: "delegate_presence", Score: 3},
		),
	}, trackAsOf, false)

	if got.Score == nil {
		t.Fatal("score is nil")
	}
	// 4*0.4 + 2*0.35 + 3*0.25 = 3.05
	if math.Abs(*got.Score-3.05) > 1e-9 {
		t.Fatalf("score=%v, want 3.05", *got.Score)
	}
	if got.Rating != RatingYellow {
		t.Fatalf("rating=%v, want yellow", got.Rating)
	}
	if got.AssessmentCount != 1 {
		t.Fatalf("assessment count=%d, want 1", got.AssessmentCount)
	}
	if got.NewestAgeDays == nil || *got.NewestAgeDays != 10 {
		t.Fatalf("newest age=%v, want 10", got.NewestAgeDays)
	}
}

func TestScoreTrackMissingComponentsOmitted(t *testing.T) {
	profile := map[string]float64{
		"right_of_entry":    0.5,
		"safety_compliance": 0.5,
	}
	// Only one of two weighted components present: it alone carries the
	// assessment, no midpoint substitution for the absent one.
	got := ScoreTrack(FourPointScale(), DefaultRecencyRule(), profile, []AssessmentInput{
		assessment(10, ConfidenceHigh, ComponentScore{Key: "right_of_entry", Score: 4}),
	}, trackAsOf, false)

	if got.Score == nil || *got.Score != 4 {
		t.Fatalf("score=%v, want 4", got.Score)
	}
}

func TestScoreTrackUnweightedComponentsIgnored(t *testing.T) {
	profile := map[string]float64{"right_of_entry": 1.0}
	got := ScoreTrack(FourPointScale(), DefaultRecencyRule(), profile, []AssessmentInput{
		assessment(10, ConfidenceHigh,
			ComponentScore{Key: "right_of_entry", Score: 2},
			ComponentScore{Key: "not_in_profile", Score: 4},
		),
	}, trackAsOf, false)

	if got.Score == nil || *got.Score != 2 {
		t.Fatalf("score=%v, want 2", got.Score)
	}
}

func TestScoreTrackEmpty(t *testing.T) {
	got := ScoreTrack(FourPointScale(), DefaultRecencyRule(), map[string]float64{"x": 1}, nil, trackAsOf, false)
	if got.Score != nil {
		t.Fatalf("score=%v, want nil", got.Score)
	}
	if got.Rating != RatingUnknown {
		t.Fatalf("rating=%v, want unknown", got.Rating)
	}
	if got.Confidence != ConfidenceVeryLow {
		t.Fatalf("confidence=%v, want very_low", got.Confidence)
	}
}

func TestScoreTrackNoOverlapWithProfile(t *testing.T) {
	got := ScoreTrack(FourPointScale(), DefaultRecencyRule(), map[string]float64{"x": 1}, []AssessmentInput{
		assessment(10, ConfidenceHigh, ComponentScore{Key: "y", Score: 3}),
	}, trackAsOf, false)
	if got.Score != nil || got.Rating != RatingUnknown {
		t.Fatalf("got %+v, want unknown track result", got)
	}
}

func TestScoreTrackConfidenceWeightedAcrossAssessments(t *testing.T) {
	profile := map[string]float64{"right_of_entry": 1.0}
	// high hint -> weight 0.7 (unknown accuracy), very_low hint -> 0.28.
	got := ScoreTrack(FourPointScale(), DefaultRecencyRule(), profile, []AssessmentInput{
		assessment(10, ConfidenceHigh, ComponentScore{Key: "right_of_entry", Score: 4}),
		assessment(20, ConfidenceVeryLow, ComponentScore{Key: "right_of_entry", Score: 1}),
	}, trackAsOf, false)

	if got.Score == nil {
		t.Fatal("score is nil")
	}
	want := (4*0.7 + 1*0.28) / (0.7 + 0.28)
	if math.Abs(*got.Score-want) > 1e-9 {
		t.Fatalf("score=%v, want %v", *got.Score, want)
	}
	if got.Confidence != ConfidenceHigh {
		t.Fatalf("confidence=%v, want high (two within 60 days)", got.Confidence)
	}
}

func TestScoreTrackExpertiseReliabilityLowersTier(t *testing.T) {
	profile := map[string]float64{"union_relationship": 1.0}
	lowAccuracy := 0.4
	got := ScoreTrack(FourPointScale(), DefaultRecencyRule(), profile, []AssessmentInput{
		{
			EffectiveDate:    daysAgo(trackAsOf, 10),
			ConfidenceHint:   ConfidenceHigh,
			AssessorAccuracy: &lowAccuracy,
			Components:       []ComponentScore{{Key: "union_relationship", Score: 3}},
		},
		{
			EffectiveDate:    daysAgo(trackAsOf, 20),
			ConfidenceHint:   ConfidenceHigh,
			AssessorAccuracy: &lowAccuracy,
			Components:       []ComponentScore{{Key: "union_relationship", Score: 3}},
		},
	}, trackAsOf, true)

	// Recency alone says high; reliability weight 1.0*0.4=0.4 maps to low.
	if got.Confidence != ConfidenceLow {
		t.Fatalf("confidence=%v, want low", got.Confidence)
	}
}

func TestScoreTrackClampsOutOfRangeComponents(t *testing.T) {
	profile := map[string]float64{"right_of_entry": 1.0}
	got := ScoreTrack(FourPointScale(), DefaultRecencyRule(), profile, []AssessmentInput{
		assessment(10, ConfidenceHigh, ComponentScore{Key: "right_of_entry", Score: 99}),
	}, trackAsOf, false)
	if got.Score == nil || *got.Score != 4 {
		t.Fatalf("score=%v, want clamped 4", got.Score)
	}
}
