package handlers

import (
	"net/http"

	"salonchain-backend/models"
	"salonchain-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleHandler struct {
	DB *gorm.DB
}

// CreateSchedule records a stylist's deviation from the implicit "available"
// default. Posting status=available is rejected here: available days are never
// stored, use SetStylistDay for the delete-or-upsert flow.
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req struct {
		StylistID string `json:"stylist_id" binding:"required"`
		BranchID  string `json:"branch_id" binding:"required"`
		Date      string `json:"date" binding:"required"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
		Status    string `json:"status" binding:"required"`
		Notes     string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	status := models.ScheduleStatus(req.Status)
	if !models.ValidScheduleStatuses[status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	if status == models.ScheduleStatusAvailable {
		c.JSON(http.StatusBadRequest, gin.H{"error": "available days are not stored; delete the exception instead"})
		return
	}

	stylistID, err := uuid.Parse(req.StylistID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stylist_id"})
		return
	}
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch_id"})
		return
	}
	if _, err := utils.ParseDate(req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	var stylist models.User
	if err := h.DB.Where("id = ? AND role = ?", stylistID, models.RoleStylist).
		First(&stylist).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stylist not found"})
		return
	}

	schedule := models.Schedule{
		StylistID: stylistID,
		BranchID:  branchID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    status,
		Notes:     req.Notes,
	}
	if err := h.DB.Create(&schedule).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A schedule entry already exists for this stylist and date"})
		return
	}

	c.JSON(http.StatusCreated, schedule)
}

// GetStylistSchedules lists a stylist's exception records, optionally limited
// to a from/to date range.
func (h *ScheduleHandler) GetStylistSchedules(c *gin.Context) {
	stylistID := c.Param("stylistId")

	query := h.DB.Where("stylist_id = ?", stylistID)
	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	var schedules []models.Schedule
	if err := query.Order("date, start_time").Find(&schedules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedules"})
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// GetBranchSchedules lists all exception records of a branch, optionally
// limited to a from/to date range or a single ?date=.
func (h *ScheduleHandler) GetBranchSchedules(c *gin.Context) {
	branchID := c.Param("id")

	query := h.DB.Where("branch_id = ?", branchID)
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	} else {
		if from := c.Query("from"); from != "" {
			query = query.Where("date >= ?", from)
		}
		if to := c.Query("to"); to != "" {
			query = query.Where("date <= ?", to)
		}
	}

	var schedules []models.Schedule
	if err := query.Order("date, start_time").Find(&schedules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedules"})
		return
	}

	c.JSON(http.StatusOK, schedules)
}

func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	id := c.Param("id")

	var schedule models.Schedule
	if err := h.DB.Where("id = ?", id).First(&schedule).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule entry not found"})
		return
	}

	var req struct {
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
		Status    string `json:"status"`
		Notes     string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	// Setting an exception back to available deletes it.
	if req.Status == string(models.ScheduleStatusAvailable) {
		if err := h.DB.Delete(&schedule).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update schedule"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Schedule entry removed; stylist is available"})
		return
	}

	updates := map[string]interface{}{}
	if req.Status != "" {
		status := models.ScheduleStatus(req.Status)
		if !models.ValidScheduleStatuses[status] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		updates["status"] = status
	}
	if req.StartTime != "" {
		updates["start_time"] = req.StartTime
	}
	if req.EndTime != "" {
		updates["end_time"] = req.EndTime
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&schedule).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update schedule"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule updated"})
}

// DeleteSchedule removes an exception record, reverting the stylist to the
// implicit available state for that date.
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	id := c.Param("id")

	result := h.DB.Where("id = ?", id).Delete(&models.Schedule{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete schedule"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule entry not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule entry deleted"})
}

// SetStylistDay sets a stylist's state for one date in a single call:
// status=available deletes any exception row (a no-op when none exists),
// any other status upserts the row keyed on (stylist, date).
func (h *ScheduleHandler) SetStylistDay(c *gin.Context) {
	stylistID, err := uuid.Parse(c.Param("stylistId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stylist id"})
		return
	}

	var req struct {
		Date      string `json:"date" binding:"required"`
		Status    string `json:"status" binding:"required"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
		Notes     string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}
	if _, err := utils.ParseDate(req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	status := models.ScheduleStatus(req.Status)
	if !models.ValidScheduleStatuses[status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	if status == models.ScheduleStatusAvailable {
		err := h.DB.Where("stylist_id = ? AND date = ?", stylistID, req.Date).
			Delete(&models.Schedule{}).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update day"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"date": req.Date, "status": models.ScheduleStatusAvailable})
		return
	}

	var stylist models.User
	if err := h.DB.Where("id = ? AND role = ?", stylistID, models.RoleStylist).
		First(&stylist).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stylist not found"})
		return
	}
	if stylist.BranchID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stylist has no branch"})
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Schedule
		err := tx.Where("stylist_id = ? AND date = ?", stylistID, req.Date).First(&existing).Error
		if err == nil {
			return tx.Model(&existing).Updates(map[string]interface{}{
				"status":     status,
				"start_time": req.StartTime,
				"end_time":   req.EndTime,
				"notes":      req.Notes,
			}).Error
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		schedule := models.Schedule{
			StylistID: stylistID,
			BranchID:  *stylist.BranchID,
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Status:    status,
			Notes:     req.Notes,
		}
		return tx.Create(&schedule).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update day"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": req.Date, "status": status})
}

// GetStylistDay reports a stylist's effective availability for one date.
// With no exception row the stylist is available.
func (h *ScheduleHandler) GetStylistDay(c *gin.Context) {
	stylistID := c.Param("stylistId")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	if _, err := utils.ParseDate(date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	var schedule models.Schedule
	err := h.DB.Where("stylist_id = ? AND date = ?", stylistID, date).First(&schedule).Error
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusOK, gin.H{"date": date, "status": models.ScheduleStatusAvailable})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":       date,
		"status":     schedule.Status,
		"start_time": schedule.StartTime,
		"end_time":   schedule.EndTime,
		"notes":      schedule.Notes,
	})
}
