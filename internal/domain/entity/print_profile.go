package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/receipt-engine/pkg/receipt"
	"gorm.io/gorm"
)

// DefaultProfileName is the profile seeded at startup and used when a request
// names none.
const DefaultProfileName = "default"

// PrintProfile is a named set of saved receipt customizations. Only fields
// the user changed are stored; everything else resolves to the defaults.
type PrintProfile struct {
	ID        uuid.UUID         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string            `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Settings  receipt.Overrides `gorm:"type:text;serializer:json" json:"settings"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating new profile
func (p *PrintProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PrintProfile model
func (PrintProfile) TableName() string {
	return "print_profiles"
}
