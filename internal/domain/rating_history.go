package domain

import (
	"time"

	"github.com/google/uuid"
)

// RatingHistoryEntry is an append-only record of one rating change for an
// employer, written whenever a new FinalRating is produced. Entries are
// never updated or deleted.
type RatingHistoryEntry struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	EmployerID    uuid.UUID `gorm:"type:uuid;not null;index:idx_history_employer_created,priority:1" json:"employer_id"`
	FinalRatingID uuid.UUID `gorm:"type:uuid;not null;index" json:"final_rating_id"`

	PreviousRating string   `gorm:"column:previous_rating;type:text" json:"previous_rating,omitempty"`
	PreviousScore  *float64 `gorm:"column:previous_score" json:"previous_score,omitempty"`
	NewRating      string   `gorm:"column:new_rating;type:text;not null" json:"new_rating"`
	NewScore       *float64 `gorm:"column:new_score" json:"new_score,omitempty"`

	ChangeType string  `gorm:"column:change_type;type:text;not null;index" json:"change_type"`
	Magnitude  float64 `gorm:"column:magnitude;not null;default:0" json:"magnitude"`

	DaysSincePrevious *int `gorm:"column:days_since_previous" json:"days_since_previous,omitempty"`
	// Set when the swing is large enough to look suspect (>= 2 four-point
	// steps between consecutive calculations).
	Anomaly bool `gorm:"column:anomaly;not null;default:false" json:"anomaly"`

	CreatedAt time.Time `gorm:"not null;default:now();index:idx_history_employer_created,priority:2" json:"created_at"`
}

func (RatingHistoryEntry) TableName() string { return "rating_history_entry" }
