package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"salonchain-backend/models"
	"salonchain-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserHandler struct {
	DB *gorm.DB
}

var errInsufficientPoints = errors.New("insufficient loyalty points")

// CheckEmail reports whether an email is already taken, optionally excluding
// one user id (so an edit form can keep its own address).
func (h *UserHandler) CheckEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}

	query := h.DB.Model(&models.User{}).Where("email = ?", email)
	if excludeID := c.Query("exclude_id"); excludeID != "" {
		id, err := uuid.Parse(excludeID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exclude_id"})
			return
		}
		query = query.Where("id <> ?", id)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exists": count > 0})
}

// CheckPhone is the phone-number counterpart of CheckEmail.
func (h *UserHandler) CheckPhone(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone query parameter is required"})
		return
	}

	query := h.DB.Model(&models.User{}).Where("phone = ?", phone)
	if excludeID := c.Query("exclude_id"); excludeID != "" {
		id, err := uuid.Parse(excludeID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exclude_id"})
			return
		}
		query = query.Where("id <> ?", id)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check phone"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exists": count > 0})
}

// CreateStaff creates a staff user with a StaffProfile. Admin only; the role
// decides branch attachment, never the other way around.
func (h *UserHandler) CreateStaff(c *gin.Context) {
	var req struct {
		Email      string  `json:"email" binding:"required,email"`
		Password   string  `json:"password" binding:"required,min=8"`
		FirstName  string  `json:"first_name" binding:"required"`
		LastName   string  `json:"last_name"`
		Phone      string  `json:"phone"`
		Role       string  `json:"role" binding:"required"`
		BranchID   string  `json:"branch_id" binding:"required"`
		EmployeeID string  `json:"employee_id"`
		HireDate   string  `json:"hire_date"`
		Salary     float64 `json:"salary"`
		Skills     string  `json:"skills"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if !models.StaffRoles[req.Role] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be a staff role"})
		return
	}

	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch_id"})
		return
	}
	var branch models.Branch
	if err := h.DB.Where("id = ?", branchID).First(&branch).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	var hireDate *time.Time
	if req.HireDate != "" {
		d, err := utils.ParseDate(req.HireDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "hire_date must be YYYY-MM-DD"})
			return
		}
		hireDate = &d
	}

	user := models.User{
		ID:            uuid.New(),
		Email:         req.Email,
		Password:      string(hashed),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Role:          req.Role,
		BranchID:      &branchID,
		EmailVerified: true, // staff accounts are provisioned, not self-served
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			return gorm.ErrDuplicatedKey
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.StaffProfile{
			UserID:     user.ID,
			EmployeeID: req.EmployeeID,
			HireDate:   hireDate,
			Salary:     req.Salary,
			Skills:     req.Skills,
		}
		return tx.Create(&profile).Error
	})
	if err == gorm.ErrDuplicatedKey {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create staff user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"role":       user.Role,
		"branch_id":  user.BranchID,
	})
}

// ListUsers returns a paginated user listing with role/branch/search filters.
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := h.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if branchID := c.Query("branch_id"); branchID != "" {
		query = query.Where("branch_id = ?", branchID)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)",
			like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
		return
	}

	var users []models.User
	err := query.Preload("ClientProfile").Preload("StaffProfile").
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&users).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":       users,
		"page":        page,
		"total":       total,
		"total_pages": int(math.Ceil(float64(total) / float64(limit))),
	})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := h.DB.Preload("ClientProfile").Preload("StaffProfile").
		Where("id = ?", id).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser lets an admin change role, status and branch attachment.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := h.DB.Where("id = ?", id).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req struct {
		Role     string `json:"role"`
		Status   string `json:"status"`
		BranchID string `json:"branch_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	updates := map[string]interface{}{}
	if req.Role != "" {
		if !models.ValidRoles[req.Role] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
		updates["role"] = req.Role
	}
	if req.Status != "" {
		if req.Status != "active" && req.Status != "inactive" && req.Status != "blocked" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		updates["status"] = req.Status
	}
	if req.BranchID != "" {
		branchID, err := uuid.Parse(req.BranchID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch_id"})
			return
		}
		var branch models.Branch
		if err := h.DB.Where("id = ?", branchID).First(&branch).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
			return
		}
		updates["branch_id"] = branchID
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated"})
}

// RedeemPoints deducts loyalty points from the calling client's balance.
func (h *UserHandler) RedeemPoints(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Points      int    `json:"points" binding:"required,min=1"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var profile models.ClientProfile
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			return err
		}
		if profile.LoyaltyPoints < req.Points {
			return errInsufficientPoints
		}
		if err := tx.Model(&profile).
			Update("loyalty_points", gorm.Expr("loyalty_points - ?", req.Points)).Error; err != nil {
			return err
		}
		history := models.LoyaltyHistory{
			UserID:      userID.(uuid.UUID),
			Points:      req.Points,
			Type:        "redeemed",
			Description: req.Description,
		}
		return tx.Create(&history).Error
	})
	if err == errInsufficientPoints {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient loyalty points"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem points"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Points redeemed"})
}

func (h *UserHandler) GetLoyaltyHistory(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var history []models.LoyaltyHistory
	if err := h.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(100).Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch loyalty history"})
		return
	}

	c.JSON(http.StatusOK, history)
}
