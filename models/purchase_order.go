package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseOrderStatus string

const (
	PurchaseOrderStatusPending   PurchaseOrderStatus = "pending"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "received"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

type PurchaseOrder struct {
	ID          uuid.UUID           `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrderNumber string              `gorm:"uniqueIndex;not null" json:"order_number"`
	BranchID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"branch_id"`
	SupplierID  uuid.UUID           `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Supplier    Supplier            `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Status      PurchaseOrderStatus `gorm:"default:pending" json:"status"`
	TotalCost   float64             `gorm:"default:0" json:"total_cost"`
	OrderedBy   uuid.UUID           `gorm:"type:uuid" json:"ordered_by"`
	Notes       string              `json:"notes"`
	ReceivedAt  *time.Time          `json:"received_at,omitempty"`
	Items       []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func (po *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	if po.ID == uuid.Nil {
		po.ID = uuid.New()
	}
	if po.OrderNumber == "" {
		po.OrderNumber = "PO" + time.Now().Format("20060102150405") + po.ID.String()[:8]
	}
	return nil
}

type PurchaseOrderItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PurchaseOrderID uuid.UUID `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	ProductName     string    `json:"product_name"` // snapshot at order time
	Quantity        int       `gorm:"not null" json:"quantity"`
	UnitCost        float64   `gorm:"not null" json:"unit_cost"`
	CreatedAt       time.Time `json:"created_at"`
}

func (i *PurchaseOrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
