package handlers

import (
	"fmt"
	"net/http"

	"salonchain-backend/models"
	"salonchain-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BranchHandler struct {
	DB *gorm.DB
}

func (h *BranchHandler) ListBranches(c *gin.Context) {
	var branches []models.Branch
	query := h.DB.Preload("OperatingHours")
	if c.Query("include_inactive") != "true" {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("name").Find(&branches).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch branches"})
		return
	}

	c.JSON(http.StatusOK, branches)
}

func (h *BranchHandler) GetBranch(c *gin.Context) {
	id := c.Param("id")

	var branch models.Branch
	if err := h.DB.Preload("OperatingHours").Where("id = ?", id).First(&branch).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}

	c.JSON(http.StatusOK, branch)
}

func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var req struct {
		Name      string `json:"name" binding:"required"`
		Address   string `json:"address"`
		City      string `json:"city"`
		Phone     string `json:"phone"`
		Email     string `json:"email"`
		ManagerID string `json:"manager_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	branch := models.Branch{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Phone:   req.Phone,
		Email:   req.Email,
	}

	if req.ManagerID != "" {
		managerID, err := uuid.Parse(req.ManagerID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid manager_id"})
			return
		}
		var manager models.User
		if err := h.DB.Where("id = ?", managerID).First(&manager).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Manager not found"})
			return
		}
		branch.ManagerID = &managerID
	}

	if err := h.DB.Create(&branch).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create branch"})
		return
	}

	c.JSON(http.StatusCreated, branch)
}

func (h *BranchHandler) UpdateBranch(c *gin.Context) {
	id := c.Param("id")

	var branch models.Branch
	if err := h.DB.Where("id = ?", id).First(&branch).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}

	var req struct {
		Name      string `json:"name"`
		Address   string `json:"address"`
		City      string `json:"city"`
		Phone     string `json:"phone"`
		Email     string `json:"email"`
		ManagerID string `json:"manager_id"`
		IsActive  *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.City != "" {
		updates["city"] = req.City
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.ManagerID != "" {
		managerID, err := uuid.Parse(req.ManagerID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid manager_id"})
			return
		}
		updates["manager_id"] = managerID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&branch).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update branch"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Branch updated"})
}

func (h *BranchHandler) GetOperatingHours(c *gin.Context) {
	id := c.Param("id")

	var hours []models.BranchHours
	if err := h.DB.Where("branch_id = ?", id).Order("day_of_week").Find(&hours).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch operating hours"})
		return
	}

	c.JSON(http.StatusOK, hours)
}

// UpdateOperatingHours replaces the weekly hour rows of a branch. Branch
// managers may only touch their own branch.
func (h *BranchHandler) UpdateOperatingHours(c *gin.Context) {
	id := c.Param("id")
	branchID, err := uuid.Parse(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch id"})
		return
	}

	if !h.callerMayManageBranch(c, branchID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only manage your own branch"})
		return
	}

	var branch models.Branch
	if err := h.DB.Where("id = ?", branchID).First(&branch).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}

	var req struct {
		Hours []struct {
			DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
			OpenTime  string `json:"open_time"`
			CloseTime string `json:"close_time"`
			IsClosed  bool   `json:"is_closed"`
		} `json:"hours" binding:"required,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	// Open days need parseable clock times before anything is written.
	for _, hr := range req.Hours {
		if hr.IsClosed {
			continue
		}
		if _, _, err := utils.ParseClock(hr.OpenTime); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid open_time for day %d", hr.DayOfWeek)})
			return
		}
		if _, _, err := utils.ParseClock(hr.CloseTime); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid close_time for day %d", hr.DayOfWeek)})
			return
		}
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("branch_id = ?", branchID).Delete(&models.BranchHours{}).Error; err != nil {
			return err
		}
		for _, hr := range req.Hours {
			row := models.BranchHours{
				BranchID:  branchID,
				DayOfWeek: hr.DayOfWeek,
				OpenTime:  hr.OpenTime,
				CloseTime: hr.CloseTime,
				IsClosed:  hr.IsClosed,
			}
			if row.IsClosed {
				row.OpenTime = ""
				row.CloseTime = ""
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update operating hours"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Operating hours updated"})
}

// GetBookingSlots returns the bookable hourly slots for a branch on a date,
// derived from that weekday's operating hours. A closed day has no slots.
func (h *BranchHandler) GetBookingSlots(c *gin.Context) {
	id := c.Param("id")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	day, err := utils.ParseDate(date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	var branch models.Branch
	if err := h.DB.Where("id = ? AND is_active = ?", id, true).First(&branch).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}

	var hours models.BranchHours
	err = h.DB.Where("branch_id = ? AND day_of_week = ?", id, int(day.Weekday())).First(&hours).Error
	if err != nil || hours.IsClosed {
		c.JSON(http.StatusOK, gin.H{"date": date, "slots": []string{}})
		return
	}

	slots, err := utils.GenerateTimeSlots(hours.OpenTime, hours.CloseTime)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Branch has invalid operating hours"})
		return
	}
	if slots == nil {
		slots = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// GetBranchStaff lists staff users attached to a branch, optionally filtered
// by role (e.g. role=stylist).
func (h *BranchHandler) GetBranchStaff(c *gin.Context) {
	id := c.Param("id")

	query := h.DB.Preload("StaffProfile").Where("branch_id = ? AND status = ?", id, "active")
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	} else {
		query = query.Where("role IN ?", []string{
			models.RoleStylist, models.RoleReceptionist, models.RoleBranchManager,
			models.RoleBranchAdmin, models.RoleInventoryController,
		})
	}

	var staff []models.User
	if err := query.Order("first_name").Find(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch staff"})
		return
	}

	c.JSON(http.StatusOK, staff)
}

// callerMayManageBranch allows chain admins everywhere and branch management
// roles on their own branch only.
func (h *BranchHandler) callerMayManageBranch(c *gin.Context, branchID uuid.UUID) bool {
	role, _ := c.Get("user_role")
	switch role {
	case models.RoleSuperAdmin, models.RoleOperationalManager:
		return true
	case models.RoleBranchManager, models.RoleBranchAdmin:
		own, exists := c.Get("branch_id")
		return exists && own.(uuid.UUID) == branchID
	}
	return false
}
