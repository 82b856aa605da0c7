package handlers

import (
	"net/http"
	"time"

	"salonchain-backend/models"
	"salonchain-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseOrderHandler struct {
	DB *gorm.DB
}

type purchaseOrderItemReq struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	UnitCost  float64 `json:"unit_cost" binding:"min=0"`
}

// CreatePurchaseOrder opens a pending order against a supplier. Item unit
// costs default to the product's current cost price; the total is summed
// server-side.
func (h *PurchaseOrderHandler) CreatePurchaseOrder(c *gin.Context) {
	var req struct {
		BranchID   string                 `json:"branch_id" binding:"required"`
		SupplierID string                 `json:"supplier_id" binding:"required"`
		Notes      string                 `json:"notes"`
		Items      []purchaseOrderItemReq `json:"items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch_id"})
		return
	}
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier_id"})
		return
	}

	var supplier models.Supplier
	if err := h.DB.Where("id = ? AND is_active = ?", supplierID, true).
		First(&supplier).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}

	var orderedBy uuid.UUID
	if userID, exists := c.Get("user_id"); exists {
		orderedBy = userID.(uuid.UUID)
	}

	order := models.PurchaseOrder{
		BranchID:   branchID,
		SupplierID: supplierID,
		Status:     models.PurchaseOrderStatusPending,
		OrderedBy:  orderedBy,
		Notes:      req.Notes,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var total float64
		for _, line := range req.Items {
			productID, err := uuid.Parse(line.ProductID)
			if err != nil {
				return gorm.ErrRecordNotFound
			}
			var product models.Product
			if err := tx.Where("id = ?", productID).First(&product).Error; err != nil {
				return err
			}

			unitCost := line.UnitCost
			if unitCost == 0 {
				unitCost = product.CostPrice
			}

			item := models.PurchaseOrderItem{
				PurchaseOrderID: order.ID,
				ProductID:       product.ID,
				ProductName:     product.Name,
				Quantity:        line.Quantity,
				UnitCost:        unitCost,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			total += unitCost * float64(line.Quantity)
		}

		return tx.Model(&order).Update("total_cost", total).Error
	})
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusBadRequest, gin.H{"error": "One or more products not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create purchase order"})
		return
	}

	h.DB.Preload("Items").Preload("Supplier").First(&order, "id = ?", order.ID)
	c.JSON(http.StatusCreated, order)
}

func (h *PurchaseOrderHandler) ListPurchaseOrders(c *gin.Context) {
	query := h.DB.Preload("Items").Preload("Supplier")
	if branchID := c.Query("branch_id"); branchID != "" {
		query = query.Where("branch_id = ?", branchID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.PurchaseOrder
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchase orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *PurchaseOrderHandler) GetPurchaseOrder(c *gin.Context) {
	id := c.Param("id")

	var order models.PurchaseOrder
	err := h.DB.Preload("Items").Preload("Supplier").Where("id = ?", id).First(&order).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// ReceivePurchaseOrder marks a pending order received and intakes every item
// into the branch's stock in the same transaction.
func (h *PurchaseOrderHandler) ReceivePurchaseOrder(c *gin.Context) {
	id := c.Param("id")

	var order models.PurchaseOrder
	if err := h.DB.Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase order not found"})
		return
	}
	if order.Status != models.PurchaseOrderStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only pending orders can be received"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			var record models.BranchProduct
			err := tx.Where("branch_id = ? AND product_id = ?", order.BranchID, item.ProductID).
				First(&record).Error
			if err == gorm.ErrRecordNotFound {
				var product models.Product
				if err := tx.Where("id = ?", item.ProductID).First(&product).Error; err != nil {
					return err
				}
				record = models.BranchProduct{
					BranchID:      order.BranchID,
					ProductID:     item.ProductID,
					StockQuantity: item.Quantity,
					ReorderLevel:  product.ReorderLevel,
					IsAvailable:   true,
				}
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return err
			}
			if err := tx.Model(&record).
				Update("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		return tx.Model(&order).Updates(map[string]interface{}{
			"status":      models.PurchaseOrderStatusReceived,
			"received_at": &now,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to receive purchase order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Purchase order received"})
}

// CancelPurchaseOrder cancels a pending order without touching stock.
func (h *PurchaseOrderHandler) CancelPurchaseOrder(c *gin.Context) {
	id := c.Param("id")

	var order models.PurchaseOrder
	if err := h.DB.Where("id = ?", id).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase order not found"})
		return
	}
	if order.Status != models.PurchaseOrderStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only pending orders can be cancelled"})
		return
	}

	if err := h.DB.Model(&order).Update("status", models.PurchaseOrderStatusCancelled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel purchase order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Purchase order cancelled"})
}
