package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address mirrors the address block collected at registration (CEP lookup).
type Address struct {
	CEP        string `gorm:"size:9" json:"cep"`
	State      string `gorm:"size:2" json:"state"`
	City       string `gorm:"size:100" json:"city"`
	Street     string `gorm:"size:255" json:"street"`
	Number     string `gorm:"size:20" json:"number"`
	Complement string `gorm:"size:100" json:"complement"`
}

// WhatsAppMessages holds the per-user message templates. Placeholders
// {date} and {time} are filled in when a message is generated.
type WhatsAppMessages struct {
	Confirm    string `gorm:"size:500" json:"confirm"`
	Reschedule string `gorm:"size:500" json:"reschedule"`
	Cancel     string `gorm:"size:500" json:"cancel"`
}

const (
	DefaultConfirmMessage    = "Olá! Confirmo seu agendamento para {date} às {time}."
	DefaultRescheduleMessage = "Olá! Preciso remarcar seu agendamento. Podemos reagendar?"
	DefaultCancelMessage     = "Olá! Infelizmente preciso cancelar seu agendamento. Podemos reagendar?"
)

type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20;not null" json:"phone"`

	Address Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`

	WhatsAppMessages WhatsAppMessages `gorm:"embedded;embeddedPrefix:whatsapp_" json:"whatsapp_messages"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.WhatsAppMessages.Confirm == "" {
		u.WhatsAppMessages.Confirm = DefaultConfirmMessage
	}
	if u.WhatsAppMessages.Reschedule == "" {
		u.WhatsAppMessages.Reschedule = DefaultRescheduleMessage
	}
	if u.WhatsAppMessages.Cancel == "" {
		u.WhatsAppMessages.Cancel = DefaultCancelMessage
	}
	return nil
}
