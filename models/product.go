package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a master-catalog inventory item (retail or salon-use stock).
// Per-branch quantities live in BranchProduct.
type Product struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SKU          string         `gorm:"uniqueIndex;not null" json:"sku"`
	Name         string         `gorm:"not null" json:"name"`
	Description  string         `json:"description"`
	Brand        string         `json:"brand"`
	Category     string         `gorm:"index" json:"category"`
	Unit         string         `json:"unit"` // bottle, tube, box
	CostPrice    float64        `gorm:"not null" json:"cost_price"`
	RetailPrice  float64        `gorm:"default:0" json:"retail_price"`
	ReorderLevel int            `gorm:"default:5" json:"reorder_level"`
	SupplierID   *uuid.UUID     `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Supplier     *Supplier      `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	ImageURL     string         `json:"image_url"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
