package handlers

import (
	"log"
	"net/http"

	"salonchain-backend/models"
	"salonchain-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentHandler struct {
	DB *gorm.DB
}

// loyalty points awarded per completed appointment.
const completionPoints = 10

type appointmentServiceReq struct {
	ServiceID string `json:"service_id" binding:"required"`
	StylistID string `json:"stylist_id"`
}

// CreateAppointment books an appointment. Service name, duration and price are
// snapshotted from the catalog at booking time; the total is recomputed
// server-side from those snapshots. New bookings always start as pending.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req struct {
		BranchID        string                  `json:"branch_id" binding:"required"`
		Date            string                  `json:"date" binding:"required"`
		Time            string                  `json:"time" binding:"required"`
		ClientFirstName string                  `json:"client_first_name" binding:"required"`
		ClientLastName  string                  `json:"client_last_name"`
		ClientPhone     string                  `json:"client_phone"`
		ClientEmail     string                  `json:"client_email"`
		Notes           string                  `json:"notes"`
		Services        []appointmentServiceReq `json:"services" binding:"required,min=1,dive"`
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
	if _, err := utils.ParseDate(req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	var branch models.Branch
	if err := h.DB.Where("id = ? AND is_active = ?", branchID, true).First(&branch).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}

	appointment := models.Appointment{
		BranchID:        branchID,
		Date:            req.Date,
		Time:            req.Time,
		ClientFirstName: req.ClientFirstName,
		ClientLastName:  req.ClientLastName,
		ClientPhone:     req.ClientPhone,
		ClientEmail:     req.ClientEmail,
		Notes:           req.Notes,
		Status:          models.AppointmentStatusPending,
	}

	// A logged-in client books under their own account.
	if userID, exists := c.Get("user_id"); exists {
		id := userID.(uuid.UUID)
		appointment.ClientID = &id
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&appointment).Error; err != nil {
			return err
		}

		var total float64
		for _, line := range req.Services {
			serviceID, err := uuid.Parse(line.ServiceID)
			if err != nil {
				return gorm.ErrRecordNotFound
			}
			var service models.Service
			if err := tx.Where("id = ? AND archived = ?", serviceID, false).
				First(&service).Error; err != nil {
				return err
			}

			snapshot := models.AppointmentService{
				AppointmentID: appointment.ID,
				ServiceID:     service.ID,
				Name:          service.Name,
				Duration:      service.Duration,
				Price:         service.Price,
			}
			if err := tx.Create(&snapshot).Error; err != nil {
				return err
			}
			total += service.Price

			if line.StylistID != "" {
				stylistID, err := uuid.Parse(line.StylistID)
				if err != nil {
					return gorm.ErrRecordNotFound
				}
				var stylist models.User
				if err := tx.Where("id = ? AND role = ?", stylistID, models.RoleStylist).
					First(&stylist).Error; err != nil {
					return err
				}
				assignment := models.AppointmentStylist{
					AppointmentID: appointment.ID,
					ServiceID:     service.ID,
					ServiceName:   service.Name,
					StylistID:     stylist.ID,
					StylistName:   stylist.FirstName + " " + stylist.LastName,
				}
				if err := tx.Create(&assignment).Error; err != nil {
					return err
				}
			}
		}

		return tx.Model(&appointment).Update("total_cost", total).Error
	})
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusBadRequest, gin.H{"error": "One or more services or stylists not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create appointment"})
		return
	}

	if err := h.DB.Preload("Services").Preload("Stylists").
		First(&appointment, "id = ?", appointment.ID).Error; err == nil && appointment.ClientEmail != "" {
		utils.SendAppointmentConfirmation(appointment.ClientEmail, appointment.ClientFirstName,
			branch.Name, appointment.Date, appointment.Time, appointment.TotalCost)
	}

	c.JSON(http.StatusCreated, appointment)
}

// GetBranchAppointments lists a branch's appointments newest date first, with
// same-day rows in start-time order. Optional date and status filters.
func (h *AppointmentHandler) GetBranchAppointments(c *gin.Context) {
	branchID := c.Param("id")

	query := h.DB.Preload("Services").Preload("Stylists").Where("branch_id = ?", branchID)
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Order("date DESC, time ASC").Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetMyAppointments lists the calling client's own bookings.
func (h *AppointmentHandler) GetMyAppointments(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var appointments []models.Appointment
	err := h.DB.Preload("Services").Preload("Stylists").
		Where("client_id = ?", userID).
		Order("date DESC, time ASC").Find(&appointments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetStylistAppointments lists appointments a stylist is assigned to.
func (h *AppointmentHandler) GetStylistAppointments(c *gin.Context) {
	stylistID := c.Param("stylistId")

	query := h.DB.Preload("Services").Preload("Stylists").
		Joins("JOIN appointment_stylists ON appointment_stylists.appointment_id = appointments.id").
		Where("appointment_stylists.stylist_id = ?", stylistID).
		Distinct("appointments.*")
	if date := c.Query("date"); date != "" {
		query = query.Where("appointments.date = ?", date)
	}

	var appointments []models.Appointment
	if err := query.Order("date DESC, time ASC").Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}

	c.JSON(http.StatusOK, appointments)
}

func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	id := c.Param("id")

	var appointment models.Appointment
	err := h.DB.Preload("Services").Preload("Stylists").Preload("Branch").
		Where("id = ?", id).First(&appointment).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// UpdateAppointment edits schedule and contact fields. Line items are fixed at
// booking time; changing services means cancelling and rebooking.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	id := c.Param("id")

	var appointment models.Appointment
	if err := h.DB.Where("id = ?", id).First(&appointment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	var req struct {
		Date            string `json:"date"`
		Time            string `json:"time"`
		ClientFirstName string `json:"client_first_name"`
		ClientLastName  string `json:"client_last_name"`
		ClientPhone     string `json:"client_phone"`
		ClientEmail     string `json:"client_email"`
		Notes           string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	updates := map[string]interface{}{}
	if req.Date != "" {
		if _, err := utils.ParseDate(req.Date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		updates["date"] = req.Date
	}
	if req.Time != "" {
		updates["time"] = req.Time
	}
	if req.ClientFirstName != "" {
		updates["client_first_name"] = req.ClientFirstName
	}
	if req.ClientLastName != "" {
		updates["client_last_name"] = req.ClientLastName
	}
	if req.ClientPhone != "" {
		updates["client_phone"] = req.ClientPhone
	}
	if req.ClientEmail != "" {
		updates["client_email"] = req.ClientEmail
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&appointment).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update appointment"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment updated"})
}

// UpdateAppointmentStatus moves an appointment through its lifecycle.
// Completing an appointment awards loyalty points to the client, in the same
// transaction as the status change.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	id := c.Param("id")

	var appointment models.Appointment
	if err := h.DB.Where("id = ?", id).First(&appointment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	status := models.AppointmentStatus(req.Status)
	if !models.ValidAppointmentStatuses[status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	priorStatus := appointment.Status
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&appointment).Update("status", status).Error; err != nil {
			return err
		}

		if status == models.AppointmentStatusCompleted &&
			priorStatus != models.AppointmentStatusCompleted &&
			appointment.ClientID != nil {
			err := tx.Model(&models.ClientProfile{}).
				Where("user_id = ?", *appointment.ClientID).
				Update("loyalty_points", gorm.Expr("loyalty_points + ?", completionPoints)).Error
			if err != nil {
				return err
			}
			history := models.LoyaltyHistory{
				UserID:      *appointment.ClientID,
				Points:      completionPoints,
				Type:        "earned",
				Description: "Appointment completed",
			}
			if err := tx.Create(&history).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	if appointment.ClientEmail != "" {
		utils.SendAppointmentStatusUpdate(appointment.ClientEmail, appointment.ClientFirstName,
			appointment.Date, appointment.Time, string(status))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "status": status})
}

// DeleteAppointment removes an appointment and its line items permanently.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id := c.Param("id")

	var appointment models.Appointment
	if err := h.DB.Where("id = ?", id).First(&appointment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("appointment_id = ?", appointment.ID).
			Delete(&models.AppointmentService{}).Error; err != nil {
			return err
		}
		if err := tx.Where("appointment_id = ?", appointment.ID).
			Delete(&models.AppointmentStylist{}).Error; err != nil {
			return err
		}
		return tx.Delete(&appointment).Error
	})
	if err != nil {
		log.Printf("Failed to delete appointment %s: %v", appointment.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete appointment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}
