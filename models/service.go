package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is a bookable salon service. Rows with a nil BranchID belong to the
// global catalog; branch-scoped rows coexist with them. Archiving is a soft
// flag so historical appointments keep a valid reference.
type Service struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BranchID    *uuid.UUID     `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Category    string         `gorm:"default:'General';index" json:"category"`
	Price       float64        `gorm:"not null" json:"price"`
	Duration    int            `json:"duration"` // in minutes
	ImageURL    string         `json:"image_url"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	Archived    bool           `gorm:"default:false;index" json:"archived"`
	ArchivedAt  *time.Time     `json:"archived_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
