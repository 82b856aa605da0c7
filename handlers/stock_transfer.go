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

type StockTransferHandler struct {
	DB *gorm.DB
}

// CreateTransfer requests a stock move between branches. The source branch
// must hold enough stock at request time, but quantities only change when the
// transfer is completed.
func (h *StockTransferHandler) CreateTransfer(c *gin.Context) {
	var req struct {
		ProductID    string `json:"product_id" binding:"required"`
		FromBranchID string `json:"from_branch_id" binding:"required"`
		ToBranchID   string `json:"to_branch_id" binding:"required"`
		Quantity     int    `json:"quantity" binding:"required,min=1"`
		Notes        string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
		return
	}
	fromBranchID, err := uuid.Parse(req.FromBranchID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from_branch_id"})
		return
	}
	toBranchID, err := uuid.Parse(req.ToBranchID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to_branch_id"})
		return
	}
	if fromBranchID == toBranchID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Source and destination branches must differ"})
		return
	}

	var stock models.BranchProduct
	err = h.DB.Where("branch_id = ? AND product_id = ?", fromBranchID, productID).
		First(&stock).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Source branch has no stock record for this product"})
		return
	}
	if stock.StockQuantity < req.Quantity {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock at source branch"})
		return
	}

	var requestedBy uuid.UUID
	if userID, exists := c.Get("user_id"); exists {
		requestedBy = userID.(uuid.UUID)
	}

	transfer := models.StockTransfer{
		ProductID:    productID,
		FromBranchID: fromBranchID,
		ToBranchID:   toBranchID,
		Quantity:     req.Quantity,
		Status:       models.TransferStatusPending,
		RequestedBy:  requestedBy,
		Notes:        req.Notes,
	}
	if err := h.DB.Create(&transfer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transfer"})
		return
	}

	c.JSON(http.StatusCreated, transfer)
}

// ListTransfers shows transfers touching a branch (either direction), or all
// transfers when no branch filter is given.
func (h *StockTransferHandler) ListTransfers(c *gin.Context) {
	query := h.DB.Preload("Product")
	if branchID := c.Query("branch_id"); branchID != "" {
		query = query.Where("from_branch_id = ? OR to_branch_id = ?", branchID, branchID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var transfers []models.StockTransfer
	if err := query.Order("created_at DESC").Find(&transfers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transfers"})
		return
	}

	c.JSON(http.StatusOK, transfers)
}

// CompleteTransfer moves the stock: decrement source, increment destination
// (creating the destination record if needed) and mark completed, all in one
// transaction. Only pending transfers can complete.
func (h *StockTransferHandler) CompleteTransfer(c *gin.Context) {
	id := c.Param("id")

	var transfer models.StockTransfer
	if err := h.DB.Where("id = ?", id).First(&transfer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transfer not found"})
		return
	}
	if transfer.Status != models.TransferStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only pending transfers can be completed"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var source models.BranchProduct
		if err := tx.Where("branch_id = ? AND product_id = ?",
			transfer.FromBranchID, transfer.ProductID).First(&source).Error; err != nil {
			return err
		}
		if source.StockQuantity < transfer.Quantity {
			return errInsufficientStock
		}
		if err := tx.Model(&source).
			Update("stock_quantity", gorm.Expr("stock_quantity - ?", transfer.Quantity)).Error; err != nil {
			return err
		}

		var dest models.BranchProduct
		err := tx.Where("branch_id = ? AND product_id = ?",
			transfer.ToBranchID, transfer.ProductID).First(&dest).Error
		if err == gorm.ErrRecordNotFound {
			dest = models.BranchProduct{
				BranchID:      transfer.ToBranchID,
				ProductID:     transfer.ProductID,
				StockQuantity: transfer.Quantity,
				ReorderLevel:  source.ReorderLevel,
				IsAvailable:   true,
			}
			if err := tx.Create(&dest).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else {
			if err := tx.Model(&dest).
				Update("stock_quantity", gorm.Expr("stock_quantity + ?", transfer.Quantity)).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		return tx.Model(&transfer).Updates(map[string]interface{}{
			"status":       models.TransferStatusCompleted,
			"completed_at": &now,
		}).Error
	})
	if err == errInsufficientStock {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock at source branch"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete transfer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transfer completed"})
}

// CancelTransfer cancels a pending transfer without touching stock.
func (h *StockTransferHandler) CancelTransfer(c *gin.Context) {
	id := c.Param("id")

	var transfer models.StockTransfer
	if err := h.DB.Where("id = ?", id).First(&transfer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transfer not found"})
		return
	}
	if transfer.Status != models.TransferStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only pending transfers can be cancelled"})
		return
	}

	if err := h.DB.Model(&transfer).Update("status", models.TransferStatusCancelled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel transfer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transfer cancelled"})
}
