package engine

import "time"

// Input is one employer's complete calculation input, assembled by the
// caller from the assessment, reliability and agreement collaborators.
type Input struct {
	AsOf time.Time

	ProjectProfile   map[string]float64
	ExpertiseProfile map[string]float64

	ProjectAssessments   []AssessmentInput
	ExpertiseAssessments []AssessmentInput

	// GatingKnown is false when the employer has no recorded agreement
	// status at all (as opposed to a known "none").
	Agreement   AgreementStatus
	GatingKnown bool

	Weights    TrackWeights
	Method     Method
	GatingMode GatingMode
}

// Outcome is the pure result of one aggregation run. Identical inputs
// produce identical outcomes.
type Outcome struct {
	Scale Scale

	Project   TrackResult
	Expertise TrackResult

	GatingScore float64
	GatingMode  GatingMode

	FinalScore  *float64
	FinalRating Rating

	Discrepancy       DiscrepancyResult
	OverallConfidence Confidence
	Completeness      int
}

// Calculate runs the whole engine pipeline: track scoring, confidence
// estimation, gating resolution, discrepancy detection and final
// aggregation. It is a pure function of its inputs.
func Calculate(cfg Config, in Input) (Outcome, error) {
	if err := in.Weights.Validate(); err != nil {
		return Outcome{}, err
	}

	scale, err := ParseScale(cfg.Scale)
	if err != nil {
		return Outcome{}, err
	}

	project := ScoreTrack(scale, cfg.Recency, in.ProjectProfile, in.ProjectAssessments, in.AsOf, false)
	expertise := ScoreTrack(scale, cfg.Recency, in.ExpertiseProfile, in.ExpertiseAssessments, in.AsOf, true)

	gating := cfg.GatingScores.ResolveGating(in.Agreement)
	var gatingTerm *float64
	if in.GatingKnown {
		gatingTerm = &gating
	}

	final := Aggregate(scale, in.Method, AggregateInput{
		Project:        project.Score,
		Expertise:      expertise.Score,
		Gating:         gatingTerm,
		Weights:        in.Weights,
		CriticalWeight: cfg.CriticalWeight,
		Mode:           in.GatingMode,
	})

	out := Outcome{
		Scale:       scale,
		Project:     project,
		Expertise:   expertise,
		GatingScore: gating,
		GatingMode:  in.GatingMode,
		FinalScore:  final,
		FinalRating: RatingUnknown,
		Discrepancy: DetectDiscrepancy(scale, project.Score, expertise.Score, project.Rating, expertise.Rating),
		OverallConfidence: OverallConfidence(
			project.Confidence, expertise.Confidence,
			project.Score != nil, expertise.Score != nil, in.GatingKnown,
		),
		Completeness: cfg.Completeness.Completeness(
			project.Score != nil, expertise.Score != nil, in.GatingKnown,
		),
	}
	if final != nil {
		out.FinalRating = scale.RatingFor(*final)
	}
	return out, nil
}

// MissingData lists the tracks that produced no score. The calculation
// degrades instead of failing, so callers that care inspect this.
func (o Outcome) MissingData() []error {
	var errs []error
	if o.Project.Score == nil {
		errs = append(errs, &MissingDataError{Track: "project"})
	}
	if o.Expertise.Score == nil {
		errs = append(errs, &MissingDataError{Track: "expertise"})
	}
	return errs
}
