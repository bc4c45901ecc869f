package domain

import (
	"time"

	"github.com/google/uuid"
)

// AssessorReliability is the rolling accuracy record for one organiser,
// maintained by a reputation-tracking collaborator. The confidence
// estimator only reads AccuracyPct.
type AssessorReliability struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	AssessorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"assessor_id"`

	AssessmentsScored int     `gorm:"column:assessments_scored;not null;default:0" json:"assessments_scored"`
	AccuracyPct       float64 `gorm:"column:accuracy_pct;not null;default:0" json:"accuracy_pct"`

	WindowStart *time.Time `gorm:"column:window_start" json:"window_start,omitempty"`
	WindowEnd   *time.Time `gorm:"column:window_end" json:"window_end,omitempty"`

	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (AssessorReliability) TableName() string { return "assessor_reliability" }
