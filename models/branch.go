package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Branch struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	Address        string         `json:"address"`
	City           string         `json:"city"`
	Phone          string         `json:"phone"`
	Email          string         `json:"email"`
	ManagerID      *uuid.UUID     `gorm:"type:uuid" json:"manager_id,omitempty"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	OperatingHours []BranchHours  `gorm:"foreignKey:BranchID" json:"operating_hours,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BranchHours is one weekday row of a branch's operating hours.
// IsClosed true means the branch does not open that day regardless of times.
type BranchHours struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BranchID  uuid.UUID `gorm:"type:uuid;not null;index" json:"branch_id"`
	DayOfWeek int       `gorm:"not null" json:"day_of_week"` // 0=Sunday, 6=Saturday
	OpenTime  string    `gorm:"not null;default:'9:00 AM'" json:"open_time"`
	CloseTime string    `gorm:"not null;default:'6:00 PM'" json:"close_time"`
	IsClosed  bool      `gorm:"default:false" json:"is_closed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *BranchHours) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
