package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BranchProduct is the stock record of one master product at one branch.
type BranchProduct struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BranchID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_branch_product" json:"branch_id"`
	Branch            Branch    `gorm:"foreignKey:BranchID" json:"-"`
	ProductID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_branch_product" json:"product_id"`
	Product           Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	StockQuantity     int       `gorm:"default:0" json:"stock_quantity"`
	ReorderLevel      int       `gorm:"default:5" json:"reorder_level"`
	RetailPriceOverride *float64 `json:"retail_price_override,omitempty"`
	ShelfLocation     string    `json:"shelf_location"`
	IsAvailable       bool      `gorm:"default:true" json:"is_available"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (bp *BranchProduct) BeforeCreate(tx *gorm.DB) error {
	if bp.ID == uuid.Nil {
		bp.ID = uuid.New()
	}
	return nil
}
