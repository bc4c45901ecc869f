package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FinalRating is the authoritative output of one aggregation run. One row
// per (employer, calculation date); a newer run supersedes the previous
// active row via status transition, rows are never deleted.
type FinalRating struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	EmployerID      uuid.UUID `gorm:"type:uuid;not null;index:idx_final_rating_employer_date,unique,priority:1" json:"employer_id"`
	CalculationDate time.Time `gorm:"column:calculation_date;not null;index:idx_final_rating_employer_date,unique,priority:2" json:"calculation_date"`

	FinalScore  *float64 `gorm:"column:final_score" json:"final_score,omitempty"`
	FinalRating string   `gorm:"column:final_rating;type:text;not null" json:"final_rating"`
	Method      string   `gorm:"column:method;type:text;not null" json:"method"`

	ProjectScore       *float64 `gorm:"column:project_score" json:"project_score,omitempty"`
	ProjectRating      string   `gorm:"column:project_rating;type:text;not null" json:"project_rating"`
	ProjectConfidence  string   `gorm:"column:project_confidence;type:text;not null" json:"project_confidence"`
	ProjectAssessments int      `gorm:"column:project_assessments;not null;default:0" json:"project_assessments"`

	ExpertiseScore       *float64 `gorm:"column:expertise_score" json:"expertise_score,omitempty"`
	ExpertiseRating      string   `gorm:"column:expertise_rating;type:text;not null" json:"expertise_rating"`
	ExpertiseConfidence  string   `gorm:"column:expertise_confidence;type:text;not null" json:"expertise_confidence"`
	ExpertiseAssessments int      `gorm:"column:expertise_assessments;not null;default:0" json:"expertise_assessments"`

	EbaStatus   string  `gorm:"column:eba_status;type:text;not null" json:"eba_status"`
	GatingScore float64 `gorm:"column:gating_score;not null" json:"gating_score"`
	GatingMode  string  `gorm:"column:gating_mode;type:text;not null" json:"gating_mode"`

	WeightsUsed datatypes.JSONType[map[string]float64] `gorm:"type:jsonb;column:weights_used;not null" json:"weights_used"`

	DiscrepancyLevel string   `gorm:"column:discrepancy_level;type:text;not null;default:'none'" json:"discrepancy_level"`
	ScoreDifference  *float64 `gorm:"column:score_difference" json:"score_difference,omitempty"`
	RatingsMatch     bool     `gorm:"column:ratings_match;not null;default:true" json:"ratings_match"`
	RequiresReview   bool     `gorm:"column:requires_review;not null;default:false" json:"requires_review"`

	OverallConfidence string `gorm:"column:overall_confidence;type:text;not null" json:"overall_confidence"`
	DataCompleteness  int    `gorm:"column:data_completeness;not null;default:0" json:"data_completeness"`

	Status      string     `gorm:"column:status;type:text;not null;default:'active';index" json:"status"`
	ReviewDueAt *time.Time `gorm:"column:review_due_at" json:"review_due_at,omitempty"`
	ExpiresAt   *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (FinalRating) TableName() string { return "final_rating" }

// DiscrepancyAudit is the per-run audit row for the discrepancy detector,
// linked to the FinalRating it fed into.
type DiscrepancyAudit struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	FinalRatingID uuid.UUID `gorm:"type:uuid;not null;index" json:"final_rating_id"`
	EmployerID    uuid.UUID `gorm:"type:uuid;not null;index" json:"employer_id"`

	ProjectRating   string   `gorm:"column:project_rating;type:text;not null" json:"project_rating"`
	ExpertiseRating string   `gorm:"column:expertise_rating;type:text;not null" json:"expertise_rating"`
	ScoreDifference *float64 `gorm:"column:score_difference" json:"score_difference,omitempty"`
	RatingsMatch    bool     `gorm:"column:ratings_match;not null" json:"ratings_match"`
	Severity        string   `gorm:"column:severity;type:text;not null" json:"severity"`
	RequiresReview  bool     `gorm:"column:requires_review;not null" json:"requires_review"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (DiscrepancyAudit) TableName() string { return "discrepancy_audit" }
