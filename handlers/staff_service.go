package handlers

import (
	"net/http"

	"salonchain-backend/models"
	"salonchain-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffServiceHandler struct {
	DB *gorm.DB
}

// AssignService links a staff member to a service they can perform.
// Assigning twice is a no-op.
func (h *StaffServiceHandler) AssignService(c *gin.Context) {
	var req struct {
		StaffID   string `json:"staff_id" binding:"required"`
		ServiceID string `json:"service_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid staff_id"})
		return
	}
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service_id"})
		return
	}

	var staff models.User
	if err := h.DB.Where("id = ?", staffID).First(&staff).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff member not found"})
		return
	}
	if !models.StaffRoles[staff.Role] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User is not a staff member"})
		return
	}

	var service models.Service
	if err := h.DB.Where("id = ? AND archived = ?", serviceID, false).
		First(&service).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	var existing models.StaffService
	err = h.DB.Where("staff_id = ? AND service_id = ?", staffID, serviceID).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, existing)
		return
	}

	link := models.StaffService{
		StaffID:   staffID,
		ServiceID: serviceID,
	}
	if staff.BranchID != nil {
		link.BranchID = *staff.BranchID
	}
	if err := h.DB.Create(&link).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign service"})
		return
	}

	c.JSON(http.StatusCreated, link)
}

// UnassignService removes a staff-service link.
func (h *StaffServiceHandler) UnassignService(c *gin.Context) {
	staffID := c.Param("staffId")
	serviceID := c.Param("serviceId")

	result := h.DB.Where("staff_id = ? AND service_id = ?", staffID, serviceID).
		Delete(&models.StaffService{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unassign service"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service unassigned"})
}

// GetStaffServices lists the services a staff member can perform.
func (h *StaffServiceHandler) GetStaffServices(c *gin.Context) {
	staffID := c.Param("staffId")

	var services []models.Service
	err := h.DB.
		Joins("JOIN staff_services ON staff_services.service_id = services.id").
		Where("staff_services.staff_id = ? AND services.archived = ?", staffID, false).
		Order("services.name").
		Find(&services).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetServiceStylists lists the active stylists of a branch who can perform a
// given service, for booking-time stylist selection.
func (h *StaffServiceHandler) GetServiceStylists(c *gin.Context) {
	branchID := c.Param("id")
	serviceID := c.Param("serviceId")

	var stylists []models.User
	err := h.DB.
		Joins("JOIN staff_services ON staff_services.staff_id = users.id").
		Where("staff_services.service_id = ?", serviceID).
		Where("users.branch_id = ? AND users.role = ? AND users.status = ?",
			branchID, models.RoleStylist, "active").
		Order("users.first_name").
		Find(&stylists).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stylists"})
		return
	}

	c.JSON(http.StatusOK, stylists)
}
