package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StaffService links a staff member to a service they can perform at a branch.
type StaffService struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StaffID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_staff_service" json:"staff_id"`
	Staff     User      `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_staff_service" json:"service_id"`
	Service   Service   `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	BranchID  uuid.UUID `gorm:"type:uuid;not null;index" json:"branch_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *StaffService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
