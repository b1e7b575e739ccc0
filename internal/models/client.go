package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientAddress carries the neighborhood on top of the base address,
// used by the insights aggregations.
type ClientAddress struct {
	CEP          string `gorm:"size:9" json:"cep"`
	State        string `gorm:"size:2" json:"state"`
	City         string `gorm:"size:100" json:"city"`
	Neighborhood string `gorm:"size:100" json:"neighborhood"`
	Street       string `gorm:"size:255" json:"street"`
	Number       string `gorm:"size:20" json:"number"`
	Complement   string `gorm:"size:100" json:"complement"`
}

type Client struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;not null" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	Address ClientAddress `gorm:"embedded;embeddedPrefix:address_" json:"address"`

	IsVIP bool   `gorm:"default:false" json:"is_vip"`
	Notes string `gorm:"size:500" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
