package handlers

import (
	"net/http"
	"time"

	"salonchain-backend/models"
	"salonchain-backend/storage"
	"salonchain-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceHandler struct {
	DB      *gorm.DB
	Storage storage.Client
}

// GetServices lists the bookable catalog: active, unarchived, global rows plus
// the rows scoped to ?branch_id= when given.
func (h *ServiceHandler) GetServices(c *gin.Context) {
	query := h.DB.Where("is_active = ? AND archived = ?", true, false)

	if branchID := c.Query("branch_id"); branchID != "" {
		query = query.Where("branch_id IS NULL OR branch_id = ?", branchID)
	} else {
		query = query.Where("branch_id IS NULL")
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var services []models.Service
	if err := query.Order("category, name").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) GetService(c *gin.Context) {
	id := c.Param("id")

	var service models.Service
	if err := h.DB.Where("id = ?", id).First(&service).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	c.JSON(http.StatusOK, service)
}

// CreateService creates a catalog entry. Admins may create global rows
// (no branch_id); branch managers always create rows scoped to their branch.
func (h *ServiceHandler) CreateService(c *gin.Context) {
	var req struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Price       float64 `json:"price" binding:"required,min=0"`
		Duration    int     `json:"duration" binding:"min=0"`
		ImageURL    string  `json:"image_url"`
		BranchID    string  `json:"branch_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	service := models.Service{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Duration:    req.Duration,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if service.Category == "" {
		service.Category = "General"
	}

	role, _ := c.Get("user_role")
	switch role {
	case models.RoleBranchManager, models.RoleBranchAdmin:
		own, exists := c.Get("branch_id")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "No branch associated with this account"})
			return
		}
		branchID := own.(uuid.UUID)
		service.BranchID = &branchID
	default:
		if req.BranchID != "" {
			branchID, err := uuid.Parse(req.BranchID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch_id"})
				return
			}
			service.BranchID = &branchID
		}
	}

	if err := h.DB.Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service"})
		return
	}

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) UpdateService(c *gin.Context) {
	service, ok := h.loadManagedService(c)
	if !ok {
		return
	}

	var req struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Category    string   `json:"category"`
		Price       *float64 `json:"price"`
		Duration    *int     `json:"duration"`
		ImageURL    string   `json:"image_url"`
		IsActive    *bool    `json:"is_active"`
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
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.ImageURL != "" {
		updates["image_url"] = req.ImageURL
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := h.DB.Model(service).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update service"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service updated"})
}

// ArchiveService soft-deletes a catalog entry: the row stays for historical
// appointments but disappears from booking flows.
func (h *ServiceHandler) ArchiveService(c *gin.Context) {
	service, ok := h.loadManagedService(c)
	if !ok {
		return
	}
	if service.Archived {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Service is already archived"})
		return
	}

	now := time.Now()
	err := h.DB.Model(service).Updates(map[string]interface{}{
		"archived":    true,
		"archived_at": &now,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service archived"})
}

func (h *ServiceHandler) UnarchiveService(c *gin.Context) {
	service, ok := h.loadManagedService(c)
	if !ok {
		return
	}
	if !service.Archived {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Service is not archived"})
		return
	}

	err := h.DB.Model(service).Updates(map[string]interface{}{
		"archived":    false,
		"archived_at": nil,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unarchive service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service unarchived"})
}

// GetArchivedServices lists a branch's archived rows for restore flows.
func (h *ServiceHandler) GetArchivedServices(c *gin.Context) {
	branchID := c.Query("branch_id")
	if branchID == "" {
		if own, exists := c.Get("branch_id"); exists {
			branchID = own.(uuid.UUID).String()
		}
	}
	if branchID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branch_id is required"})
		return
	}

	var services []models.Service
	err := h.DB.Where("branch_id = ? AND archived = ?", branchID, true).
		Order("archived_at DESC").Find(&services).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch archived services"})
		return
	}

	c.JSON(http.StatusOK, services)
}

// UploadServiceImage stores an image and attaches its URL to the service.
func (h *ServiceHandler) UploadServiceImage(c *gin.Context) {
	service, ok := h.loadManagedService(c)
	if !ok {
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

	url, err := h.Storage.UploadImage(file, "services", fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	if err := h.DB.Model(service).Update("image_url", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

// loadManagedService fetches the :id service and enforces branch scoping:
// branch roles may only manage rows of their own branch, admins may manage
// anything including global rows.
func (h *ServiceHandler) loadManagedService(c *gin.Context) (*models.Service, bool) {
	id := c.Param("id")

	var service models.Service
	if err := h.DB.Where("id = ?", id).First(&service).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return nil, false
	}

	role, _ := c.Get("user_role")
	switch role {
	case models.RoleSuperAdmin, models.RoleOperationalManager:
		return &service, true
	case models.RoleBranchManager, models.RoleBranchAdmin:
		own, exists := c.Get("branch_id")
		if exists && service.BranchID != nil && *service.BranchID == own.(uuid.UUID) {
			return &service, true
		}
	}

	c.JSON(http.StatusForbidden, gin.H{"error": "You can only manage services of your own branch"})
	return nil, false
}
