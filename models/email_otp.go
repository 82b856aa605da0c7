package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmailOTP is a pending email verification code. Only the hash of the code is
// stored; generation and comparison happen server-side.
type EmailOTP struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email      string     `gorm:"not null;index" json:"email"`
	CodeHash   string     `gorm:"not null" json:"-"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (o *EmailOTP) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
