package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Finance struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`

	Type   string  `gorm:"size:10;not null" json:"type"`
	Name   string  `gorm:"size:100;not null" json:"name"`
	Amount float64 `gorm:"not null" json:"amount"`

	Date time.Time `gorm:"index;not null" json:"date"`

	// Category applies to expenses only, ServiceID to income only.
	Category  string     `gorm:"size:50" json:"category,omitempty"`
	ServiceID *uuid.UUID `gorm:"type:uuid" json:"service_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f *Finance) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
