package domain

import (
	"time"

	"github.com/google/uuid"
)

// TrackAssessment is one dated assessment of an employer on one evidence
// track. Assessments are immutable once stored; later assessments with a
// newer effective date supersede them.
type TrackAssessment struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	EmployerID    uuid.UUID `gorm:"type:uuid;not null;index:idx_assessment_employer_track,priority:1" json:"employer_id"`
	Track         string    `gorm:"column:track;type:text;not null;index:idx_assessment_employer_track,priority:2" json:"track"`
	EffectiveDate time.Time `gorm:"column:effective_date;not null;index" json:"effective_date"`

	AssessorID uuid.UUID `gorm:"type:uuid;not null;index" json:"assessor_id"`
	// Method tag, e.g. site_visit, desktop_audit, organiser_report.
	Method string `gorm:"column:method;type:text;not null" json:"method"`
	// Assessor's own confidence in this assessment: high/medium/low/very_low.
	ConfidenceHint string `gorm:"column:confidence_hint;type:text;not null;default:'medium'" json:"confidence_hint"`

	Notes string `gorm:"column:notes;type:text" json:"notes,omitempty"`

	Components []AssessmentComponent `gorm:"foreignKey:AssessmentID;references:ID" json:"components,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (TrackAssessment) TableName() string { return "track_assessment" }

// AssessmentComponent is one rated sub-criterion (e.g. right_of_entry)
// within a TrackAssessment.
type AssessmentComponent struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	AssessmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"assessment_id"`

	// Stable component key matched against WeightProfile weights.
	ComponentKey string  `gorm:"column:component_key;type:text;not null" json:"component_key"`
	Score        float64 `gorm:"column:score;not null" json:"score"`
	Label        string  `gorm:"column:label;type:text" json:"label,omitempty"`
	Evidence     string  `gorm:"column:evidence;type:text" json:"evidence,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (AssessmentComponent) TableName() string { return "assessment_component" }
