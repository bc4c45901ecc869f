package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employer is the rated business entity. CRUD, dedup/merge and aliasing
// live in collaborating systems; this row carries only what the rating
// engine reads.
type Employer struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	Name string `gorm:"column:name;type:text;not null" json:"name"`
	Role string `gorm:"column:role;type:text;not null;index" json:"role"`

	EbaStatus string `gorm:"column:eba_status;type:text;not null;default:'none';index" json:"eba_status"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Employer) TableName() string { return "employer" }
