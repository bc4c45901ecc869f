package engine

import (
	"math"
	"reflect"
	"testing"
	"time"
)

var calcAsOf = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func discrepantTracksInput() Input {
	return Input{
		AsOf:             calcAsOf,
		ProjectProfile:   map[string]float64{"right_of_entry": 1.0},
		ExpertiseProfile: map[string]float64{"union_relationship": 1.0},
		ProjectAssessments: []AssessmentInput{
			{
				EffectiveDate:  calcAsOf.AddDate(0, 0, -10),
				ConfidenceHint: ConfidenceHigh,
				Components:     []ComponentScore{{Key: "right_of_entry", Score: 3}},
			},
			{
				EffectiveDate:  calcAsOf.AddDate(0, 0, -30),
				ConfidenceHint: ConfidenceHigh,
				Components:     []ComponentScore{{Key: "right_of_entry", Score: 3}},
			},
		},
		ExpertiseAssessments: []AssessmentInput{
			{
				EffectiveDate:  calcAsOf.AddDate(0, 0, -200),
				ConfidenceHint: ConfidenceMedium,
				Components:     []ComponentScore{{Key: "union_relationship", Score: 1}},
			},
		},
		Agreement:   AgreementActive,
		GatingKnown: true,
		Weights:     DefaultTrackWeights(),
		Method:      MethodWeightedAverage,
		GatingMode:  GatingBlend,
	}
}

func TestCalculateDiscrepantTracks(t *testing.T) {
	out, err := Calculate(Default(), discrepantTracksInput())
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if out.Project.Score == nil || *out.Project.Score != 3 {
		t.Fatalf("project score=%v, want 3", out.Project.Score)
	}
	if out.Project.Rating != RatingYellow || out.Project.Confidence != ConfidenceHigh {
		t.Fatalf("project=%v/%v, want yellow/high", out.Project.Rating, out.Project.Confidence)
	}
	if out.Expertise.Score == nil || *out.Expertise.Score != 1 {
		t.Fatalf("expertise score=%v, want 1", out.Expertise.Score)
	}
	if out.Expertise.Rating != RatingRed || out.Expertise.Confidence != ConfidenceVeryLow {
		t.Fatalf("expertise=%v/%v, want red/very_low", out.Expertise.Rating, out.Expertise.Confidence)
	}
	if out.GatingScore != 3 {
		t.Fatalf("gating score=%v, want 3", out.GatingScore)
	}

	wantFinal := (3*0.6 + 1*0.4 + 3*0.15) / 1.15
	if out.FinalScore == nil || math.Abs(*out.FinalScore-wantFinal) > 1e-9 {
		t.Fatalf("final score=%v, want %v", out.FinalScore, wantFinal)
	}
	if out.FinalRating != RatingAmber {
		t.Fatalf("final rating=%v, want amber", out.FinalRating)
	}

	if out.Discrepancy.Severity != SeverityMajor {
		t.Fatalf("discrepancy=%v, want major", out.Discrepancy.Severity)
	}
	if !out.Discrepancy.RequiresReview {
		t.Fatal("discrepant tracks must require review")
	}
	if out.Discrepancy.ScoreDifference == nil || *out.Discrepancy.ScoreDifference != 2 {
		t.Fatalf("score difference=%v, want 2", out.Discrepancy.ScoreDifference)
	}

	if out.OverallConfidence != ConfidenceMedium {
		t.Fatalf("overall confidence=%v, want medium", out.OverallConfidence)
	}
	if out.Completeness != 100 {
		t.Fatalf("completeness=%d, want 100", out.Completeness)
	}
}

func TestCalculateMissingExpertiseDegrades(t *testing.T) {
	in := discrepantTracksInput()
	in.ExpertiseAssessments = nil

	out, err := Calculate(Default(), in)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if out.Expertise.Score != nil {
		t.Fatalf("expertise score=%v, want nil", out.Expertise.Score)
	}
	if out.Expertise.Rating != RatingUnknown {
		t.Fatalf("expertise rating=%v, want unknown", out.Expertise.Rating)
	}
	if out.OverallConfidence != ConfidenceVeryLow {
		t.Fatalf("overall confidence=%v, want very_low", out.OverallConfidence)
	}
	if out.Completeness != 60 {
		t.Fatalf("completeness=%d, want 60 (expertise points dropped)", out.Completeness)
	}
	if out.Discrepancy.Severity != SeverityNone || out.Discrepancy.RequiresReview {
		t.Fatalf("discrepancy=%+v, want none/no review", out.Discrepancy)
	}

	// Expertise weight drops from the denominator.
	wantFinal := (3*0.6 + 3*0.15) / 0.75
	if out.FinalScore == nil || math.Abs(*out.FinalScore-wantFinal) > 1e-9 {
		t.Fatalf("final score=%v, want %v", out.FinalScore, wantFinal)
	}
}

func TestCalculateCompletenessPartials(t *testing.T) {
	cases := []struct {
		name          string
		dropProject   bool
		dropExpertise bool
		gatingKnown   bool
		want          int
	}{
		{"all_present", false, false, true, 100},
		{"no_gating", false, false, false, 80},
		{"no_expertise", false, true, true, 60},
		{"no_project", true, false, true, 60},
		{"tracks_only_gone", true, true, true, 20},
		{"nothing", true, true, false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := discrepantTracksInput()
			if tc.dropProject {
				in.ProjectAssessments = nil
			}
			if tc.dropExpertise {
				in.ExpertiseAssessments = nil
			}
			in.GatingKnown = tc.gatingKnown
			out, err := Calculate(Default(), in)
			if err != nil {
				t.Fatalf("Calculate: %v", err)
			}
			if out.Completeness != tc.want {
				t.Fatalf("completeness=%d, want %d", out.Completeness, tc.want)
			}
		})
	}
}

func TestCalculateIdempotent(t *testing.T) {
	cfg := Default()
	first, err := Calculate(cfg, discrepantTracksInput())
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	second, err := Calculate(cfg, discrepantTracksInput())
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different outcomes:\n%+v\n%+v", first, second)
	}
}

func TestCalculateRejectsUnknownScale(t *testing.T) {
	cfg := Default()
	cfg.Scale = "five_point"
	if _, err := Calculate(cfg, discrepantTracksInput()); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCalculateRejectsBadWeights(t *testing.T) {
	in := discrepantTracksInput()
	in.Weights = TrackWeights{Project: -1}
	if _, err := Calculate(Default(), in); err == nil || !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCalculateNothingAtAll(t *testing.T) {
	in := Input{
		AsOf:    calcAsOf,
		Weights: DefaultTrackWeights(),
		Method:  MethodWeightedAverage,
	}
	out, err := Calculate(Default(), in)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if out.FinalScore != nil || out.FinalRating != RatingUnknown {
		t.Fatalf("got %v/%v, want nil/unknown", out.FinalScore, out.FinalRating)
	}
	missing := out.MissingData()
	if len(missing) != 2 {
		t.Fatalf("missing data = %v, want both tracks", missing)
	}
	for _, err := range missing {
		if !IsMissingData(err) {
			t.Fatalf("unexpected error type: %v", err)
		}
	}
}
