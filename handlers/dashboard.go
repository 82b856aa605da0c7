package handlers

import (
	"net/http"
	"time"

	"salonchain-backend/models"
	"salonchain-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	DB *gorm.DB
}

// GetBranchDashboard rolls up a branch's day: appointment counts by status,
// today's revenue from completed appointments, staff count, low-stock alerts,
// and how many stylists are off today.
func (h *DashboardHandler) GetBranchDashboard(c *gin.Context) {
	branchID := c.Param("id")
	today := time.Now().Format(utils.DateLayout)

	var todayTotal, pending, confirmed, completed int64
	h.DB.Model(&models.Appointment{}).
		Where("branch_id = ? AND date = ?", branchID, today).Count(&todayTotal)
	h.DB.Model(&models.Appointment{}).
		Where("branch_id = ? AND date = ? AND status = ?", branchID, today,
			models.AppointmentStatusPending).Count(&pending)
	h.DB.Model(&models.Appointment{}).
		Where("branch_id = ? AND date = ? AND status = ?", branchID, today,
			models.AppointmentStatusConfirmed).Count(&confirmed)
	h.DB.Model(&models.Appointment{}).
		Where("branch_id = ? AND date = ? AND status = ?", branchID, today,
			models.AppointmentStatusCompleted).Count(&completed)

	var todayRevenue float64
	h.DB.Model(&models.Appointment{}).
		Where("branch_id = ? AND date = ? AND status = ?", branchID, today,
			models.AppointmentStatusCompleted).
		Select("COALESCE(SUM(total_cost), 0)").Scan(&todayRevenue)

	var staffCount int64
	h.DB.Model(&models.User{}).
		Where("branch_id = ? AND status = ? AND role IN ?", branchID, "active",
			[]string{models.RoleStylist, models.RoleReceptionist, models.RoleBranchManager,
				models.RoleBranchAdmin, models.RoleInventoryController}).
		Count(&staffCount)

	var lowStock int64
	h.DB.Model(&models.BranchProduct{}).
		Where("branch_id = ? AND stock_quantity <= reorder_level", branchID).
		Count(&lowStock)

	var stylistsOff int64
	h.DB.Model(&models.Schedule{}).
		Where("branch_id = ? AND date = ? AND status = ?", branchID, today,
			models.ScheduleStatusOff).
		Count(&stylistsOff)

	c.JSON(http.StatusOK, gin.H{
		"date": today,
		"appointments": gin.H{
			"total":     todayTotal,
			"pending":   pending,
			"confirmed": confirmed,
			"completed": completed,
		},
		"today_revenue":      todayRevenue,
		"staff_count":        staffCount,
		"low_stock_alerts":   lowStock,
		"stylists_off_today": stylistsOff,
	})
}

// GetAdminDashboard rolls up the whole chain for operational managers:
// per-branch appointment and revenue figures plus global user counts.
// The rollup window defaults to today and widens with from/to query params.
func (h *DashboardHandler) GetAdminDashboard(c *gin.Context) {
	today := time.Now().Format(utils.DateLayout)
	from := c.DefaultQuery("from", today)
	to := c.DefaultQuery("to", today)
	if _, err := utils.ParseDate(from); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, expected YYYY-MM-DD"})
		return
	}
	if _, err := utils.ParseDate(to); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, expected YYYY-MM-DD"})
		return
	}

	var branches []models.Branch
	if err := h.DB.Where("is_active = ?", true).Order("name").Find(&branches).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch branches"})
		return
	}

	branchStats := make([]gin.H, 0, len(branches))
	for _, branch := range branches {
		var apptCount int64
		h.DB.Model(&models.Appointment{}).
			Where("branch_id = ? AND date >= ? AND date <= ?", branch.ID, from, to).
			Count(&apptCount)

		var revenue float64
		h.DB.Model(&models.Appointment{}).
			Where("branch_id = ? AND date >= ? AND date <= ? AND status = ?", branch.ID, from, to,
				models.AppointmentStatusCompleted).
			Select("COALESCE(SUM(total_cost), 0)").Scan(&revenue)

		branchStats = append(branchStats, gin.H{
			"branch_id":    branch.ID,
			"branch_name":  branch.Name,
			"appointments": apptCount,
			"revenue":      revenue,
		})
	}

	var totalClients, totalStaff, pendingTransfers int64
	h.DB.Model(&models.User{}).Where("role = ?", models.RoleClient).Count(&totalClients)
	h.DB.Model(&models.User{}).
		Where("role IN ?", []string{models.RoleStylist, models.RoleReceptionist,
			models.RoleBranchManager, models.RoleBranchAdmin, models.RoleInventoryController}).
		Count(&totalStaff)
	h.DB.Model(&models.StockTransfer{}).
		Where("status = ?", models.TransferStatusPending).Count(&pendingTransfers)

	c.JSON(http.StatusOK, gin.H{
		"from":              from,
		"to":                to,
		"branches":          branchStats,
		"total_clients":     totalClients,
		"total_staff":       totalStaff,
		"pending_transfers": pendingTransfers,
	})
}
