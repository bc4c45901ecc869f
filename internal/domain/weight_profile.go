package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WeightProfile is a named, versioned set of component weights for one
// track scoped to an employer role. Weights must sum to 1.0; the service
// layer rejects violations at write time. Exactly one profile per
// (track, role) carries the default flag.
type WeightProfile struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	Name    string `gorm:"column:name;type:text;not null;index:idx_weight_profile_ident,unique,priority:3" json:"name"`
	Track   string `gorm:"column:track;type:text;not null;index:idx_weight_profile_ident,unique,priority:1" json:"track"`
	Role    string `gorm:"column:role;type:text;not null;index:idx_weight_profile_ident,unique,priority:2" json:"role"`
	Version int    `gorm:"column:version;not null;default:1;index:idx_weight_profile_ident,unique,priority:4" json:"version"`

	IsDefault bool `gorm:"column:is_default;not null;default:false;index" json:"is_default"`

	// component_key -> weight, stored as jsonb.
	Weights datatypes.JSONType[map[string]float64] `gorm:"type:jsonb;column:weights;not null" json:"weights"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (WeightProfile) TableName() string { return "weight_profile" }
