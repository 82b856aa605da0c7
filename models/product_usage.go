package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductUsage logs salon-use consumption of a product at a branch and is the
// audit trail behind branch stock decrements.
type ProductUsage struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BranchID   uuid.UUID `gorm:"type:uuid;not null;index" json:"branch_id"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product    Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	UsedBy     uuid.UUID `gorm:"type:uuid" json:"used_by"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

func (u *ProductUsage) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
