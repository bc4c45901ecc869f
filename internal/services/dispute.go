package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/data/repos/rating"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/domain"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/engine"
	"github.com/R3v3ill3/cfmeu-ratings-backend/internal/pkg/logger"
)

// Dispute outcomes set on terminal transitions.
const (
	OutcomeAccepted  = "accepted"
	OutcomeDismissed = "dismissed"
)

// disputeTransitions is the human-driven workflow. Nothing moves a dispute
// automatically; resolved, rejected and escalated are terminal.
var disputeTransitions = map[string][]string{
	domain.DisputePending:            {domain.DisputeUnderReview, domain.DisputeRejected},
	domain.DisputeUnderReview:        {domain.DisputeEvidenceCollection, domain.DisputeMediation, domain.DisputeResolved, domain.DisputeRejected},
	domain.DisputeEvidenceCollection: {domain.DisputeUnderReview, domain.DisputeMediation},
	domain.DisputeMediation:          {domain.DisputeResolved, domain.DisputeRejected, domain.DisputeEscalated},
}

// FileDisputeInput challenges one FinalRating.
type FileDisputeInput struct {
	FinalRatingID  uuid.UUID
	Reason         string
	ProposedRating string
	ProposedScore  *float64
	FiledBy        uuid.UUID
}

// TransitionInput moves a dispute along the workflow. Outcome and Notes
// are read on terminal transitions only.
type TransitionInput struct {
	Status     string
	ReviewerID *uuid.UUID
	Outcome    string
	Notes      string
}

type DisputeService interface {
	// FileDispute opens a pending dispute and flips the rating to
	// disputed status.
	FileDispute(ctx context.Context, in FileDisputeInput) (*domain.DisputeRecord, error)
	// Transition applies one workflow step. Resolving with an accepted
	// outcome re-runs the aggregator, producing a superseding FinalRating
	// with a dispute_driven history entry.
	Transition(ctx context.Context, disputeID uuid.UUID, in TransitionInput) (*domain.DisputeRecord, error)
	// Appeal flags a terminal dispute for appeal without reopening it.
	Appeal(ctx context.Context, disputeID uuid.UUID) (*domain.DisputeRecord, error)
	ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]*domain.DisputeRecord, error)
}

type disputeService struct {
	db  *gorm.DB
	log *logger.Logger

	disputeRepo rating.DisputeRepo
	finalRepo   rating.FinalRatingRepo
	ratings     RatingService
}

func NewDisputeService(db *gorm.DB, log *logger.Logger, disputeRepo rating.DisputeRepo, finalRepo rating.FinalRatingRepo, ratings RatingService) DisputeService {
	return &disputeService{
		db:          db,
		log:         log.With("service", "DisputeService"),
		disputeRepo: disputeRepo,
		finalRepo:   finalRepo,
		ratings:     ratings,
	}
}

func (s *disputeService) FileDispute(ctx context.Context, in FileDisputeInput) (*domain.DisputeRecord, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return nil, &engine.ValidationError{Field: "reason", Reason: "must not be empty"}
	}
	if in.FiledBy == uuid.Nil {
		return nil, &engine.ValidationError{Field: "filed_by", Reason: "must be set"}
	}
	if in.ProposedRating != "" && engine.ParseRating(in.ProposedRating) == engine.RatingUnknown {
		return nil, &engine.ValidationError{Field: "proposed_rating", Reason: "unknown rating label " + in.ProposedRating}
	}

	target, err := s.finalRepo.GetByID(ctx, nil, in.FinalRatingID)
	if err != nil {
		return nil, err
	}

	dispute := &domain.DisputeRecord{
		ID:             uuid.New(),
		FinalRatingID:  target.ID,
		EmployerID:     target.EmployerID,
		Status:         domain.DisputePending,
		Reason:         in.Reason,
		ProposedRating: in.ProposedRating,
		ProposedScore:  in.ProposedScore,
		FiledBy:        in.FiledBy,
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.disputeRepo.Create(ctx, tx, dispute); err != nil {
			return fmt.Errorf("create dispute: %w", err)
		}
		if err := s.finalRepo.UpdateStatus(ctx, tx, target.ID, domain.RatingStatusDisputed); err != nil {
			return fmt.Errorf("mark rating disputed: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.log.Info("dispute filed",
		"dispute_id", dispute.ID,
		"final_rating_id", target.ID,
		"employer_id", target.EmployerID)
	return dispute, nil
}

func (s *disputeService) Transition(ctx context.Context, disputeID uuid.UUID, in TransitionInput) (*domain.DisputeRecord, error) {
	dispute, err := s.disputeRepo.GetByID(ctx, nil, disputeID)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(dispute.Status, in.Status) {
		return nil, &engine.ValidationError{
			Field:  "status",
			Reason: fmt.Sprintf("cannot move dispute from %s to %s", dispute.Status, in.Status),
		}
	}

	terminal := in.Status == domain.DisputeResolved || in.Status == domain.DisputeRejected || in.Status == domain.DisputeEscalated
	if in.Status == domain.DisputeResolved {
		if in.Outcome != OutcomeAccepted && in.Outcome != OutcomeDismissed {
			return nil, &engine.ValidationError{Field: "outcome", Reason: "resolved disputes need an accepted or dismissed outcome"}
		}
	}

	dispute.Status = in.Status
	if in.ReviewerID != nil {
		dispute.ReviewerID = in.ReviewerID
	}
	if terminal {
		now := time.Now().UTC()
		dispute.ResolvedAt = &now
		dispute.ResolutionNotes = in.Notes
		switch in.Status {
		case domain.DisputeResolved:
			dispute.Outcome = in.Outcome
		case domain.DisputeRejected:
			dispute.Outcome = OutcomeDismissed
		}
	}

	// An accepted dispute forces a fresh calculation; the new rating
	// supersedes the disputed one and the history entry carries the
	// dispute_driven change type. It runs before the dispute is marked
	// resolved so a failed run leaves the transition re-triable instead
	// of a terminally resolved dispute against a stale disputed rating.
	if in.Status == domain.DisputeResolved && dispute.Outcome == OutcomeAccepted {
		if _, err := s.ratings.CalculateFinalRating(ctx, dispute.EmployerID, CalculateOptions{DisputeDriven: true}); err != nil {
			return nil, fmt.Errorf("recalculate after accepted dispute: %w", err)
		}
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.disputeRepo.Update(ctx, tx, dispute); err != nil {
			return fmt.Errorf("update dispute: %w", err)
		}
		// A dismissed challenge restores the rating; escalation leaves it
		// disputed for the escalation path to settle.
		if in.Status == domain.DisputeRejected || (in.Status == domain.DisputeResolved && dispute.Outcome == OutcomeDismissed) {
			if err := s.finalRepo.UpdateStatus(ctx, tx, dispute.FinalRatingID, domain.RatingStatusActive); err != nil {
				return fmt.Errorf("restore rating status: %w", err)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.log.Info("dispute transitioned",
		"dispute_id", dispute.ID,
		"status", dispute.Status,
		"outcome", dispute.Outcome)
	return dispute, nil
}

func (s *disputeService) Appeal(ctx context.Context, disputeID uuid.UUID) (*domain.DisputeRecord, error) {
	dispute, err := s.disputeRepo.GetByID(ctx, nil, disputeID)
	if err != nil {
		return nil, err
	}
	if dispute.Status != domain.DisputeResolved && dispute.Status != domain.DisputeRejected {
		return nil, &engine.ValidationError{Field: "status", Reason: "only resolved or rejected disputes can be appealed"}
	}
	if dispute.AppealedAt != nil {
		return nil, &engine.ValidationError{Field: "status", Reason: "dispute already appealed"}
	}

	now := time.Now().UTC()
	dispute.AppealedAt = &now
	if err := s.disputeRepo.Update(ctx, nil, dispute); err != nil {
		return nil, fmt.Errorf("record appeal: %w", err)
	}
	return dispute, nil
}

func (s *disputeService) ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]*domain.DisputeRecord, error) {
	return s.disputeRepo.ListByEmployer(ctx, nil, employerID)
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range disputeTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
