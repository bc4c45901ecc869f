package services

import (
	"context"
	"testing"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/domain"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/engine"
)

func TestWeightProfileUpsertValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewWeightProfileService(nil, testLogger(t), nil)

	valid := UpsertWeightProfileInput{
		Track: domain.TrackProject,
		Role:  domain.RoleBuilder,
		Name:  "standard",
		Weights: map[string]float64{
			"right_of_entry":  0.4,
			"delegate_access": 0.3,
			"safety_record":   0.3,
		},
	}

	cases := []struct {
		name   string
		mutate func(*UpsertWeightProfileInput)
	}{
		{"unknown_track", func(in *UpsertWeightProfileInput) { in.Track = "vibes" }},
		{"unknown_role", func(in *UpsertWeightProfileInput) { in.Role = "landlord" }},
		{"empty_name", func(in *UpsertWeightProfileInput) { in.Name = "  " }},
		{"no_components", func(in *UpsertWeightProfileInput) { in.Weights = nil }},
		{"sum_off", func(in *UpsertWeightProfileInput) {
			in.Weights = map[string]float64{"right_of_entry": 0.5, "delegate_access": 0.4}
		}},
		{"negative_weight", func(in *UpsertWeightProfileInput) {
			in.Weights = map[string]float64{"right_of_entry": 1.2, "delegate_access": -0.2}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			if _, err := svc.Upsert(ctx, in); !engine.IsValidation(err) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
		})
	}
}
