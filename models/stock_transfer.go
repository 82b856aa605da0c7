package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusCompleted TransferStatus = "completed"
	TransferStatusCancelled TransferStatus = "cancelled"
)

// StockTransfer moves product stock between branches. Stock only changes hands
// when the transfer is completed, in a single transaction.
type StockTransfer struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProductID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Product      Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	FromBranchID uuid.UUID      `gorm:"type:uuid;not null;index" json:"from_branch_id"`
	ToBranchID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"to_branch_id"`
	Quantity     int            `gorm:"not null" json:"quantity"`
	Status       TransferStatus `gorm:"default:pending" json:"status"`
	RequestedBy  uuid.UUID      `gorm:"type:uuid" json:"requested_by"`
	Notes        string         `json:"notes"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (t *StockTransfer) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
