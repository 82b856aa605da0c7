package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"salonchain-backend/models"
	"salonchain-backend/storage"
	"salonchain-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB      *gorm.DB
	Storage storage.Client
}

var errInsufficientStock = errors.New("insufficient stock")

// ListProducts returns the master product catalog with optional category,
// supplier and search filters.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	query := h.DB.Preload("Supplier").Model(&models.Product{})
	if c.Query("include_inactive") != "true" {
		query = query.Where("is_active = ?", true)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if supplierID := c.Query("supplier_id"); supplierID != "" {
		query = query.Where("supplier_id = ?", supplierID)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(sku) LIKE LOWER(?) OR LOWER(brand) LIKE LOWER(?)",
			like, like, like)
	}

	var products []models.Product
	if err := query.Order("name").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.DB.Preload("Supplier").Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req struct {
		SKU          string  `json:"sku" binding:"required"`
		Name         string  `json:"name" binding:"required"`
		Description  string  `json:"description"`
		Brand        string  `json:"brand"`
		Category     string  `json:"category"`
		Unit         string  `json:"unit"`
		CostPrice    float64 `json:"cost_price" binding:"required,min=0"`
		RetailPrice  float64 `json:"retail_price" binding:"min=0"`
		ReorderLevel int     `json:"reorder_level"`
		SupplierID   string  `json:"supplier_id"`
		ImageURL     string  `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	product := models.Product{
		SKU:          req.SKU,
		Name:         req.Name,
		Description:  req.Description,
		Brand:        req.Brand,
		Category:     req.Category,
		Unit:         req.Unit,
		CostPrice:    req.CostPrice,
		RetailPrice:  req.RetailPrice,
		ReorderLevel: req.ReorderLevel,
		ImageURL:     req.ImageURL,
		IsActive:     true,
	}
	if product.ReorderLevel == 0 {
		product.ReorderLevel = 5
	}

	if req.SupplierID != "" {
		supplierID, err := uuid.Parse(req.SupplierID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier_id"})
			return
		}
		var supplier models.Supplier
		if err := h.DB.Where("id = ?", supplierID).First(&supplier).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
			return
		}
		product.SupplierID = &supplierID
	}

	var existing models.Product
	if err := h.DB.Where("sku = ?", req.SKU).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "SKU already in use"})
		return
	}

	if err := h.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.DB.Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req struct {
		Name         string   `json:"name"`
		Description  string   `json:"description"`
		Brand        string   `json:"brand"`
		Category     string   `json:"category"`
		Unit         string   `json:"unit"`
		CostPrice    *float64 `json:"cost_price"`
		RetailPrice  *float64 `json:"retail_price"`
		ReorderLevel *int     `json:"reorder_level"`
		SupplierID   string   `json:"supplier_id"`
		IsActive     *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Brand != "" {
		updates["brand"] = req.Brand
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Unit != "" {
		updates["unit"] = req.Unit
	}
	if req.CostPrice != nil {
		updates["cost_price"] = *req.CostPrice
	}
	if req.RetailPrice != nil {
		updates["retail_price"] = *req.RetailPrice
	}
	if req.ReorderLevel != nil {
		updates["reorder_level"] = *req.ReorderLevel
	}
	if req.SupplierID != "" {
		supplierID, err := uuid.Parse(req.SupplierID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier_id"})
			return
		}
		updates["supplier_id"] = supplierID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&product).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

func (h *ProductHandler) UploadProductImage(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.DB.Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if err := utils.ValidateFileUpload(fh); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	url, err := h.Storage.UploadImage(file, "products", fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	if err := h.DB.Model(&product).Update("image_url", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

// GetBranchStock lists a branch's stock records, optionally only the rows at
// or below their reorder level (?low_stock=true).
func (h *ProductHandler) GetBranchStock(c *gin.Context) {
	branchID := c.Param("branchId")

	query := h.DB.Preload("Product").Where("branch_id = ?", branchID)
	if c.Query("low_stock") == "true" {
		query = query.Where("stock_quantity <= reorder_level")
	}

	var stock []models.BranchProduct
	if err := query.Find(&stock).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock"})
		return
	}

	c.JSON(http.StatusOK, stock)
}

// AdjustBranchStock sets or offsets a branch's quantity of one product,
// creating the stock record if it does not exist yet.
func (h *ProductHandler) AdjustBranchStock(c *gin.Context) {
	branchID, err := uuid.Parse(c.Param("branchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch id"})
		return
	}

	var req struct {
		ProductID    string `json:"product_id" binding:"required"`
		Quantity     *int   `json:"quantity"`     // absolute value
		Delta        *int   `json:"delta"`        // signed offset
		ReorderLevel *int   `json:"reorder_level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}
	if req.Quantity == nil && req.Delta == nil && req.ReorderLevel == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity, delta or reorder_level is required"})
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
		return
	}

	var result models.BranchProduct
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Where("id = ?", productID).First(&product).Error; err != nil {
			return err
		}

		var record models.BranchProduct
		err := tx.Where("branch_id = ? AND product_id = ?", branchID, productID).
			First(&record).Error
		if err == gorm.ErrRecordNotFound {
			record = models.BranchProduct{
				BranchID:     branchID,
				ProductID:    productID,
				ReorderLevel: product.ReorderLevel,
				IsAvailable:  true,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.Quantity != nil {
			updates["stock_quantity"] = *req.Quantity
		} else if req.Delta != nil {
			if record.StockQuantity+*req.Delta < 0 {
				return errInsufficientStock
			}
			updates["stock_quantity"] = record.StockQuantity + *req.Delta
		}
		if req.ReorderLevel != nil {
			updates["reorder_level"] = *req.ReorderLevel
		}
		if err := tx.Model(&record).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Preload("Product").Where("id = ?", record.ID).First(&result).Error
	})
	if err == errInsufficientStock {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock"})
		return
	}
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust stock"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// LogProductUsage records salon-use consumption and decrements branch stock
// in the same transaction.
func (h *ProductHandler) LogProductUsage(c *gin.Context) {
	branchID, err := uuid.Parse(c.Param("branchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch id"})
		return
	}

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
		Reason    string `json:"reason"`
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

	var usedBy uuid.UUID
	if userID, exists := c.Get("user_id"); exists {
		usedBy = userID.(uuid.UUID)
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var record models.BranchProduct
		if err := tx.Where("branch_id = ? AND product_id = ?", branchID, productID).
			First(&record).Error; err != nil {
			return err
		}
		if record.StockQuantity < req.Quantity {
			return errInsufficientStock
		}
		if err := tx.Model(&record).
			Update("stock_quantity", gorm.Expr("stock_quantity - ?", req.Quantity)).Error; err != nil {
			return err
		}
		usage := models.ProductUsage{
			BranchID:  branchID,
			ProductID: productID,
			Quantity:  req.Quantity,
			UsedBy:    usedBy,
			Reason:    req.Reason,
		}
		return tx.Create(&usage).Error
	})
	if err == errInsufficientStock {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock"})
		return
	}
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "No stock record for this product at this branch"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log usage"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Usage logged"})
}

// GetUsageHistory lists a branch's usage log, newest first.
func (h *ProductHandler) GetUsageHistory(c *gin.Context) {
	branchID := c.Param("branchId")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit < 1 || limit > 500 {
		limit = 100
	}

	query := h.DB.Preload("Product").Where("branch_id = ?", branchID)
	if productID := c.Query("product_id"); productID != "" {
		query = query.Where("product_id = ?", productID)
	}

	var usage []models.ProductUsage
	if err := query.Order("created_at DESC").Limit(limit).Find(&usage).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch usage history"})
		return
	}

	c.JSON(http.StatusOK, usage)
}
