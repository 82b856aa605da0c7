package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderLog records one reminder attempt for an appointment, so the daily
// job never sends twice for the same appointment and channel.
type ReminderLog struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_appointment_channel" json:"appointment_id"`
	Channel       string    `gorm:"not null;uniqueIndex:idx_appointment_channel" json:"channel"` // email, sms
	Status        string    `gorm:"not null" json:"status"`                                      // sent, failed
	ErrorMessage  string    `json:"error_message"`
	SentAt        time.Time `json:"sent_at"`
	CreatedAt     time.Time `json:"created_at"`
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
