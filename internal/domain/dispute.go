package domain

import (
	"time"

	"github.com/google/uuid"
)

// DisputeRecord tracks a human challenge to one FinalRating. Transitions
// are human-driven only; resolved/rejected/escalated are terminal.
type DisputeRecord struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	FinalRatingID uuid.UUID `gorm:"type:uuid;not null;index" json:"final_rating_id"`
	EmployerID    uuid.UUID `gorm:"type:uuid;not null;index" json:"employer_id"`

	Status string `gorm:"column:status;type:text;not null;default:'pending';index" json:"status"`
	Reason string `gorm:"column:reason;type:text;not null" json:"reason"`

	ProposedRating string   `gorm:"column:proposed_rating;type:text" json:"proposed_rating,omitempty"`
	ProposedScore  *float64 `gorm:"column:proposed_score" json:"proposed_score,omitempty"`

	FiledBy    uuid.UUID  `gorm:"type:uuid;not null" json:"filed_by"`
	ReviewerID *uuid.UUID `gorm:"type:uuid" json:"reviewer_id,omitempty"`

	// accepted or dismissed, set when the dispute reaches a terminal state.
	Outcome         string `gorm:"column:outcome;type:text" json:"outcome,omitempty"`
	ResolutionNotes string `gorm:"column:resolution_notes;type:text" json:"resolution_notes,omitempty"`

	AppealedAt *time.Time `gorm:"column:appealed_at" json:"appealed_at,omitempty"`
	ResolvedAt *time.Time `gorm:"column:resolved_at" json:"resolved_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (DisputeRecord) TableName() string { return "dispute_record" }
