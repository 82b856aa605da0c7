package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no-show"
)

var ValidAppointmentStatuses = map[AppointmentStatus]bool{
	AppointmentStatusPending:   true,
	AppointmentStatusConfirmed: true,
	AppointmentStatusCompleted: true,
	AppointmentStatusCancelled: true,
	AppointmentStatusNoShow:    true,
}

// Appointment stores the client contact fields and service/stylist line items
// denormalized at booking time, so later edits to the catalog or staff roster
// never change what a past appointment says happened. Deletion is hard:
// appointments have no soft-delete column.
type Appointment struct {
	ID              uuid.UUID            `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BranchID        uuid.UUID            `gorm:"type:uuid;not null;index" json:"branch_id"`
	Branch          Branch               `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	ClientID        *uuid.UUID           `gorm:"type:uuid;index" json:"client_id,omitempty"`
	Date            string               `gorm:"not null;index" json:"date"` // YYYY-MM-DD
	Time            string               `gorm:"not null" json:"time"`       // HH:MM
	ClientFirstName string               `json:"client_first_name"`
	ClientLastName  string               `json:"client_last_name"`
	ClientPhone     string               `json:"client_phone"`
	ClientEmail     string               `json:"client_email"`
	Status          AppointmentStatus    `gorm:"default:pending;index" json:"status"`
	TotalCost       float64              `gorm:"default:0" json:"total_cost"`
	Notes           string               `json:"notes"`
	Services        []AppointmentService `gorm:"foreignKey:AppointmentID" json:"services"`
	Stylists        []AppointmentStylist `gorm:"foreignKey:AppointmentID" json:"stylists"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AppointmentService is a snapshot of a booked service line.
type AppointmentService struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"appointment_id"`
	ServiceID     uuid.UUID `gorm:"type:uuid;not null" json:"service_id"`
	Name          string    `json:"name"`
	Duration      int       `json:"duration"`
	Price         float64   `json:"price"`
	CreatedAt     time.Time `json:"created_at"`
}

func (s *AppointmentService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// AppointmentStylist records which stylist performs which booked service.
type AppointmentStylist struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"appointment_id"`
	ServiceID     uuid.UUID `gorm:"type:uuid;not null" json:"service_id"`
	ServiceName   string    `json:"service_name"`
	StylistID     uuid.UUID `gorm:"type:uuid;not null;index" json:"stylist_id"`
	StylistName   string    `json:"stylist_name"`
	CreatedAt     time.Time `json:"created_at"`
}

func (s *AppointmentStylist) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
