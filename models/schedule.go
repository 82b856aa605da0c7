package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleStatus string

const (
	ScheduleStatusAvailable ScheduleStatus = "available"
	ScheduleStatusBusy      ScheduleStatus = "busy"
	ScheduleStatusBreak     ScheduleStatus = "break"
	ScheduleStatusOff       ScheduleStatus = "off"
)

var ValidScheduleStatuses = map[ScheduleStatus]bool{
	ScheduleStatusAvailable: true,
	ScheduleStatusBusy:      true,
	ScheduleStatusBreak:     true,
	ScheduleStatusOff:       true,
}

// Schedule is an exception record: a stylist's deviation from the implicit
// "available" default on a given date. An "available" day is never persisted;
// deleting a row reverts the stylist to available. At most one row exists per
// (stylist, date).
type Schedule struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StylistID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_stylist_date" json:"stylist_id"`
	BranchID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"branch_id"`
	Date      string         `gorm:"not null;uniqueIndex:idx_stylist_date;index" json:"date"` // YYYY-MM-DD
	StartTime string         `json:"start_time"`                                              // HH:MM
	EndTime   string         `json:"end_time"`                                                // HH:MM
	Status    ScheduleStatus `gorm:"not null" json:"status"`
	Notes     string         `json:"notes"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (s *Schedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
