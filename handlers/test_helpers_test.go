package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"salonchain-backend/middleware"
	"salonchain-backend/models"
	"salonchain-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests")

	var err error
	testDB, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}
	// Limit to 1 open connection to prevent SQLite concurrent access issues
	// with in-memory databases.
	sqlDB, _ := testDB.DB()
	sqlDB.SetMaxOpenConns(1)

	// Create tables using raw SQLite-compatible SQL instead of AutoMigrate,
	// because the GORM model tags use PostgreSQL-specific defaults like gen_random_uuid().
	if err := createSQLiteTables(testDB); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}

	code := m.Run()
	os.Exit(code)
}

// freshDB returns a clean database for each test by deleting all rows.
func freshDB() *gorm.DB {
	// Delete in correct order to respect foreign keys
	testDB.Exec("DELETE FROM reminder_logs")
	testDB.Exec("DELETE FROM product_usages")
	testDB.Exec("DELETE FROM purchase_order_items")
	testDB.Exec("DELETE FROM purchase_orders")
	testDB.Exec("DELETE FROM stock_transfers")
	testDB.Exec("DELETE FROM branch_products")
	testDB.Exec("DELETE FROM products")
	testDB.Exec("DELETE FROM suppliers")
	testDB.Exec("DELETE FROM appointment_stylists")
	testDB.Exec("DELETE FROM appointment_services")
	testDB.Exec("DELETE FROM appointments")
	testDB.Exec("DELETE FROM schedules")
	testDB.Exec("DELETE FROM staff_services")
	testDB.Exec("DELETE FROM services")
	testDB.Exec("DELETE FROM branch_hours")
	testDB.Exec("DELETE FROM email_otps")
	testDB.Exec("DELETE FROM password_reset_tokens")
	testDB.Exec("DELETE FROM refresh_tokens")
	testDB.Exec("DELETE FROM referrals")
	testDB.Exec("DELETE FROM loyalty_histories")
	testDB.Exec("DELETE FROM client_profiles")
	testDB.Exec("DELETE FROM staff_profiles")
	testDB.Exec("DELETE FROM branches")
	testDB.Exec("DELETE FROM users")
	return testDB
}

// createSQLiteTables creates all tables with SQLite-compatible DDL.
func createSQLiteTables(db *gorm.DB) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS "users" (
			"id" TEXT PRIMARY KEY,
			"email" TEXT NOT NULL UNIQUE,
			"password" TEXT NOT NULL,
			"first_name" TEXT,
			"last_name" TEXT,
			"phone" TEXT,
			"birth_date" DATETIME,
			"gender" TEXT,
			"role" TEXT DEFAULT 'client',
			"status" TEXT DEFAULT 'active',
			"email_verified" INTEGER DEFAULT 0,
			"branch_id" TEXT,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			"deleted_at" DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_users_deleted_at ON "users"("deleted_at")`,
		`CREATE INDEX IF NOT EXISTS idx_users_phone ON "users"("phone")`,
		`CREATE INDEX IF NOT EXISTS idx_users_role ON "users"("role")`,
		`CREATE INDEX IF NOT EXISTS idx_users_branch_id ON "users"("branch_id")`,

		`CREATE TABLE IF NOT EXISTS "client_profiles" (
			"id" TEXT PRIMARY KEY,
			"user_id" TEXT NOT NULL UNIQUE,
			"category" TEXT DEFAULT 'regular',
			"loyalty_points" INTEGER DEFAULT 0,
			"referral_code" TEXT UNIQUE,
			"preferences" TEXT,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			CONSTRAINT fk_client_profiles_user FOREIGN KEY ("user_id") REFERENCES "users"("id")
		)`,

		`CREATE TABLE IF NOT EXISTS "staff_profiles" (
			"id" TEXT PRIMARY KEY,
			"user_id" TEXT NOT NULL UNIQUE,
			"employee_id" TEXT,
			"hire_date" DATETIME,
			"salary" REAL DEFAULT 0,
			"skills" TEXT,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			CONSTRAINT fk_staff_profiles_user FOREIGN KEY ("user_id") REFERENCES "users"("id")
		)`,
		`CREATE INDEX IF NOT EXISTS idx_staff_profiles_employee_id ON "staff_profiles"("employee_id")`,

		`CREATE TABLE IF NOT EXISTS "branches" (
			"id" TEXT PRIMARY KEY,
			"name" TEXT NOT NULL,
			"address" TEXT,
			"city" TEXT,
			"phone" TEXT,
			"email" TEXT,
			"manager_id" TEXT,
			"is_active" INTEGER DEFAULT 1,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			"deleted_at" DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_branches_deleted_at ON "branches"("deleted_at")`,

		`CREATE TABLE IF NOT EXISTS "branch_hours" (
			"id" TEXT PRIMARY KEY,
			"branch_id" TEXT NOT NULL,
			"day_of_week" INTEGER NOT NULL,
			"open_time" TEXT NOT NULL DEFAULT '9:00 AM',
			"close_time" TEXT NOT NULL DEFAULT '6:00 PM',
			"is_closed" INTEGER DEFAULT 0,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			CONSTRAINT fk_branch_hours_branch FOREIGN KEY ("branch_id") REFERENCES "branches"("id")
		)`,
		`CREATE INDEX IF NOT EXISTS idx_branch_hours_branch_id ON "branch_hours"("branch_id")`,

		`CREATE TABLE IF NOT EXISTS "services" (
			"id" TEXT PRIMARY KEY,
			"branch_id" TEXT,
			"name" TEXT NOT NULL,
			"description" TEXT,
			"category" TEXT DEFAULT 'General',
			"price" REAL NOT NULL,
			"duration" INTEGER DEFAULT 0,
			"image_url" TEXT,
			"is_active" INTEGER DEFAULT 1,
			"archived" INTEGER DEFAULT 0,
			"archived_at" DATETIME,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			"deleted_at" DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_services_deleted_at ON "services"("deleted_at")`,
		`CREATE INDEX IF NOT EXISTS idx_services_branch_id ON "services"("branch_id")`,
		`CREATE INDEX IF NOT EXISTS idx_services_category ON "services"("category")`,
		`CREATE INDEX IF NOT EXISTS idx_services_archived ON "services"("archived")`,

		`CREATE TABLE IF NOT EXISTS "staff_services" (
			"id" TEXT PRIMARY KEY,
			"staff_id" TEXT NOT NULL,
			"service_id" TEXT NOT NULL,
			"branch_id" TEXT NOT NULL,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			CONSTRAINT fk_staff_services_staff FOREIGN KEY ("staff_id") REFERENCES "users"("id"),
			CONSTRAINT fk_staff_services_service FOREIGN KEY ("service_id") REFERENCES "services"("id")
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_staff_service ON "staff_services"("staff_id","service_id")`,
		`CREATE INDEX IF NOT EXISTS idx_staff_services_branch_id ON "staff_services"("branch_id")`,

		`CREATE TABLE IF NOT EXISTS "appointments" (
			"id" TEXT PRIMARY KEY,
			"branch_id" TEXT NOT NULL,
			"client_id" TEXT,
			"date" TEXT NOT NULL,
			"time" TEXT NOT NULL,
			"client_first_name" TEXT,
			"client_last_name" TEXT,
			"client_phone" TEXT,
			"client_email" TEXT,
			"status" TEXT DEFAULT 'pending',
			"total_cost" REAL DEFAULT 0,
			"notes" TEXT,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			CONSTRAINT fk_appointments_branch FOREIGN KEY ("branch_id") REFERENCES "branches"("id")
		)`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_branch_id ON "appointments"("branch_id")`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_client_id ON "appointments"("client_id")`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_date ON "appointments"("date")`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_status ON "appointments"("status")`,

		`CREATE TABLE IF NOT EXISTS "appointment_services" (
			"id" TEXT PRIMARY KEY,
			"appointment_id" TEXT NOT NULL,
			"service_id" TEXT NOT NULL,
			"name" TEXT,
			"duration" INTEGER DEFAULT 0,
			"price" REAL DEFAULT 0,
			"created_at" DATETIME,
			CONSTRAINT fk_appointment_services_appointment FOREIGN KEY ("appointment_id") REFERENCES "appointments"("id")
		)`,
		`CREATE INDEX IF NOT EXISTS idx_appointment_services_appointment_id ON "appointment_services"("appointment_id")`,

		`CREATE TABLE IF NOT EXISTS "appointment_stylists" (
			"id" TEXT PRIMARY KEY,
			"appointment_id" TEXT NOT NULL,
			"service_id" TEXT NOT NULL,
			"service_name" TEXT,
			"stylist_id" TEXT NOT NULL,
			"stylist_name" TEXT,
			"created_at" DATETIME,
			CONSTRAINT fk_appointment_stylists_appointment FOREIGN KEY ("appointment_id") REFERENCES "appointments"("id")
		)`,
		`CREATE INDEX IF NOT EXISTS idx_appointment_stylists_appointment_id ON "appointment_stylists"("appointment_id")`,
		`CREATE INDEX IF NOT EXISTS idx_appointment_stylists_stylist_id ON "appointment_stylists"("stylist_id")`,

		`CREATE TABLE IF NOT EXISTS "schedules" (
			"id" TEXT PRIMARY KEY,
			"stylist_id" TEXT NOT NULL,
			"branch_id" TEXT NOT NULL,
			"date" TEXT NOT NULL,
			"start_time" TEXT,
			"end_time" TEXT,
			"status" TEXT NOT NULL,
			"notes" TEXT,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			CONSTRAINT fk_schedules_stylist FOREIGN KEY ("stylist_id") REFERENCES "users"("id")
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_stylist_date ON "schedules"("stylist_id","date")`,
		`CREATE INDEX IF NOT EXISTS idx_schedules_branch_id ON "schedules"("branch_id")`,
		`CREATE INDEX IF NOT EXISTS idx_schedules_date ON "schedules"("date")`,

		`CREATE TABLE IF NOT EXISTS "loyalty_histories" (
			"id" TEXT PRIMARY KEY,
			"user_id" TEXT NOT NULL,
			"points" INTEGER NOT NULL,
			"type" TEXT NOT NULL,
			"description" TEXT,
			"appointment_id" TEXT,
			"created_at" DATETIME,
			CONSTRAINT fk_loyalty_histories_user FOREIGN KEY ("user_id") REFERENCES "users"("id")
		)`,
		`CREATE INDEX IF NOT EXISTS idx_loyalty_histories_user_id ON "loyalty_histories"("user_id")`,

		`CREATE TABLE IF NOT EXISTS "referrals" (
			"id" TEXT PRIMARY KEY,
			"referrer_id" TEXT NOT NULL,
			"referred_user_id" TEXT NOT NULL UNIQUE,
			"code" TEXT NOT NULL,
			"points_awarded" INTEGER DEFAULT 0,
			"created_at" DATETIME,
			CONSTRAINT fk_referrals_referrer FOREIGN KEY ("referrer_id") REFERENCES "users"("id")
		)`,
		`CREATE INDEX IF NOT EXISTS idx_referrals_referrer_id ON "referrals"("referrer_id")`,

		`CREATE TABLE IF NOT EXISTS "refresh_tokens" (
			"id" TEXT PRIMARY KEY,
			"user_id" TEXT NOT NULL,
			"token" TEXT NOT NULL UNIQUE,
			"expires_at" DATETIME NOT NULL,
			"created_at" DATETIME,
			CONSTRAINT fk_refresh_tokens_user FOREIGN KEY ("user_id") REFERENCES "users"("id")
		)`,
		`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON "refresh_tokens"("user_id")`,

		`CREATE TABLE IF NOT EXISTS "password_reset_tokens" (
			"id" TEXT PRIMARY KEY,
			"user_id" TEXT NOT NULL,
			"token" TEXT NOT NULL UNIQUE,
			"expires_at" DATETIME NOT NULL,
			"used_at" DATETIME,
			"created_at" DATETIME,
			CONSTRAINT fk_password_reset_tokens_user FOREIGN KEY ("user_id") REFERENCES "users"("id")
		)`,
		`CREATE INDEX IF NOT EXISTS idx_password_reset_tokens_user_id ON "password_reset_tokens"("user_id")`,

		`CREATE TABLE IF NOT EXISTS "email_otps" (
			"id" TEXT PRIMARY KEY,
			"email" TEXT NOT NULL,
			"code_hash" TEXT NOT NULL,
			"expires_at" DATETIME NOT NULL,
			"consumed_at" DATETIME,
			"created_at" DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_email_otps_email ON "email_otps"("email")`,

		`CREATE TABLE IF NOT EXISTS "suppliers" (
			"id" TEXT PRIMARY KEY,
			"name" TEXT NOT NULL,
			"contact_person" TEXT,
			"phone" TEXT,
			"email" TEXT,
			"address" TEXT,
			"is_active" INTEGER DEFAULT 1,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			"deleted_at" DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_suppliers_deleted_at ON "suppliers"("deleted_at")`,

		`CREATE TABLE IF NOT EXISTS "products" (
			"id" TEXT PRIMARY KEY,
			"sku" TEXT NOT NULL UNIQUE,
			"name" TEXT NOT NULL,
			"description" TEXT,
			"brand" TEXT,
			"category" TEXT,
			"unit" TEXT,
			"cost_price" REAL NOT NULL,
			"retail_price" REAL DEFAULT 0,
			"reorder_level" INTEGER DEFAULT 5,
			"supplier_id" TEXT,
			"image_url" TEXT,
			"is_active" INTEGER DEFAULT 1,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			"deleted_at" DATETIME,
			CONSTRAINT fk_products_supplier FOREIGN KEY ("supplier_id") REFERENCES "suppliers"("id")
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_deleted_at ON "products"("deleted_at")`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON "products"("category")`,
		`CREATE INDEX IF NOT EXISTS idx_products_supplier_id ON "products"("supplier_id")`,

		`CREATE TABLE IF NOT EXISTS "branch_products" (
			"id" TEXT PRIMARY KEY,
			"branch_id" TEXT NOT NULL,
			"product_id" TEXT NOT NULL,
			"stock_quantity" INTEGER DEFAULT 0,
			"reorder_level" INTEGER DEFAULT 5,
			"retail_price_override" REAL,
			"shelf_location" TEXT,
			"is_available" INTEGER DEFAULT 1,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			CONSTRAINT fk_branch_products_branch FOREIGN KEY ("branch_id") REFERENCES "branches"("id"),
			CONSTRAINT fk_branch_products_product FOREIGN KEY ("product_id") REFERENCES "products"("id")
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_branch_product ON "branch_products"("branch_id","product_id")`,

		`CREATE TABLE IF NOT EXISTS "stock_transfers" (
			"id" TEXT PRIMARY KEY,
			"product_id" TEXT NOT NULL,
			"from_branch_id" TEXT NOT NULL,
			"to_branch_id" TEXT NOT NULL,
			"quantity" INTEGER NOT NULL,
			"status" TEXT DEFAULT 'pending',
			"requested_by" TEXT,
			"notes" TEXT,
			"completed_at" DATETIME,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			CONSTRAINT fk_stock_transfers_product FOREIGN KEY ("product_id") REFERENCES "products"("id")
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stock_transfers_product_id ON "stock_transfers"("product_id")`,
		`CREATE INDEX IF NOT EXISTS idx_stock_transfers_from_branch_id ON "stock_transfers"("from_branch_id")`,
		`CREATE INDEX IF NOT EXISTS idx_stock_transfers_to_branch_id ON "stock_transfers"("to_branch_id")`,

		`CREATE TABLE IF NOT EXISTS "purchase_orders" (
			"id" TEXT PRIMARY KEY,
			"order_number" TEXT NOT NULL UNIQUE,
			"branch_id" TEXT NOT NULL,
			"supplier_id" TEXT NOT NULL,
			"status" TEXT DEFAULT 'pending',
			"total_cost" REAL DEFAULT 0,
			"ordered_by" TEXT,
			"notes" TEXT,
			"received_at" DATETIME,
			"created_at" DATETIME,
			"updated_at" DATETIME,
			CONSTRAINT fk_purchase_orders_supplier FOREIGN KEY ("supplier_id") REFERENCES "suppliers"("id")
		)`,
		`CREATE INDEX IF NOT EXISTS idx_purchase_orders_branch_id ON "purchase_orders"("branch_id")`,
		`CREATE INDEX IF NOT EXISTS idx_purchase_orders_supplier_id ON "purchase_orders"("supplier_id")`,

		`CREATE TABLE IF NOT EXISTS "purchase_order_items" (
			"id" TEXT PRIMARY KEY,
			"purchase_order_id" TEXT NOT NULL,
			"product_id" TEXT NOT NULL,
			"product_name" TEXT,
			"quantity" INTEGER NOT NULL,
			"unit_cost" REAL NOT NULL,
			"created_at" DATETIME,
			CONSTRAINT fk_purchase_order_items_order FOREIGN KEY ("purchase_order_id") REFERENCES "purchase_orders"("id")
		)`,
		`CREATE INDEX IF NOT EXISTS idx_purchase_order_items_purchase_order_id ON "purchase_order_items"("purchase_order_id")`,

		`CREATE TABLE IF NOT EXISTS "product_usages" (
			"id" TEXT PRIMARY KEY,
			"branch_id" TEXT NOT NULL,
			"product_id" TEXT NOT NULL,
			"quantity" INTEGER NOT NULL,
			"used_by" TEXT,
			"reason" TEXT,
			"created_at" DATETIME,
			CONSTRAINT fk_product_usages_product FOREIGN KEY ("product_id") REFERENCES "products"("id")
		)`,
		`CREATE INDEX IF NOT EXISTS idx_product_usages_branch_id ON "product_usages"("branch_id")`,
		`CREATE INDEX IF NOT EXISTS idx_product_usages_product_id ON "product_usages"("product_id")`,

		`CREATE TABLE IF NOT EXISTS "reminder_logs" (
			"id" TEXT PRIMARY KEY,
			"appointment_id" TEXT NOT NULL,
			"channel" TEXT NOT NULL,
			"status" TEXT NOT NULL,
			"error_message" TEXT,
			"sent_at" DATETIME,
			"created_at" DATETIME
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointment_channel ON "reminder_logs"("appointment_id","channel")`,
	}

	for _, sql := range tables {
		if err := db.Exec(sql).Error; err != nil {
			return err
		}
	}
	return nil
}

// ==================== Seed Helpers ====================

// seedTestUser creates a user with the given role and returns it along with a valid JWT token.
func seedTestUser(db *gorm.DB, email, role string, branchID *uuid.UUID) (models.User, string) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := models.User{
		ID:            uuid.New(),
		Email:         email,
		Password:      string(hashed),
		FirstName:     "Test",
		LastName:      "User",
		Role:          role,
		BranchID:      branchID,
		EmailVerified: true,
	}
	db.Create(&user)

	token, _ := utils.GenerateToken(user.ID, user.Email, user.Role, branchID)
	return user, token
}

// seedClient creates a client user with a ClientProfile and returns user, token.
func seedClient(db *gorm.DB, email string, points int) (models.User, string) {
	user, token := seedTestUser(db, email, models.RoleClient, nil)
	profile := models.ClientProfile{
		ID:            uuid.New(),
		UserID:        user.ID,
		LoyaltyPoints: points,
		ReferralCode:  "REF-" + uuid.New().String()[:8],
	}
	db.Create(&profile)
	return user, token
}

// seedBranch creates a test branch.
func seedBranch(db *gorm.DB, name string) models.Branch {
	branch := models.Branch{
		ID:       uuid.New(),
		Name:     name,
		Address:  "1 Test Street",
		City:     "Testville",
		IsActive: true,
	}
	db.Create(&branch)
	return branch
}

// seedBranchHours creates 7 weekday rows for the branch, all open 9 AM to 5 PM.
func seedBranchHours(db *gorm.DB, branchID uuid.UUID) []models.BranchHours {
	hours := make([]models.BranchHours, 7)
	for day := 0; day <= 6; day++ {
		h := models.BranchHours{
			ID:        uuid.New(),
			BranchID:  branchID,
			DayOfWeek: day,
			OpenTime:  "9:00 AM",
			CloseTime: "5:00 PM",
		}
		db.Create(&h)
		hours[day] = h
	}
	return hours
}

// seedService creates a test service scoped to a branch (or global when branchID is nil).
func seedService(db *gorm.DB, name string, branchID *uuid.UUID, price float64) models.Service {
	svc := models.Service{
		ID:       uuid.New(),
		BranchID: branchID,
		Name:     name,
		Category: "Hair",
		Price:    price,
		Duration: 45,
		IsActive: true,
	}
	db.Create(&svc)
	return svc
}

// seedStylist creates an active stylist attached to a branch.
func seedStylist(db *gorm.DB, branchID uuid.UUID) (models.User, string) {
	branch := branchID
	return seedTestUser(db, "stylist-"+uuid.New().String()[:8]+"@test.com", models.RoleStylist, &branch)
}

// seedAppointment creates an appointment with one service line.
func seedAppointment(db *gorm.DB, branchID uuid.UUID, date, timeSlot string, status models.AppointmentStatus) models.Appointment {
	id := uuid.New()
	appt := models.Appointment{
		ID:              id,
		BranchID:        branchID,
		Date:            date,
		Time:            timeSlot,
		ClientFirstName: "Walk",
		ClientLastName:  "In",
		ClientPhone:     "07000000000",
		Status:          status,
		TotalCost:       30,
		Services: []models.AppointmentService{
			{
				ID:            uuid.New(),
				AppointmentID: id,
				ServiceID:     uuid.New(),
				Name:          "Cut & Finish",
				Duration:      45,
				Price:         30,
			},
		},
	}
	db.Create(&appt)
	// The status default may override a zero-ish value; persist it explicitly.
	db.Model(&models.Appointment{}).Where("id = ?", id).Update("status", status)
	return appt
}

// seedSupplier creates a test supplier.
func seedSupplier(db *gorm.DB, name string) models.Supplier {
	supplier := models.Supplier{
		ID:       uuid.New(),
		Name:     name,
		IsActive: true,
	}
	db.Create(&supplier)
	return supplier
}

// seedProduct creates a master catalog product.
func seedProduct(db *gorm.DB, name string, costPrice float64) models.Product {
	product := models.Product{
		ID:        uuid.New(),
		SKU:       "SKU-" + uuid.New().String()[:8],
		Name:      name,
		Category:  "Care",
		Unit:      "bottle",
		CostPrice: costPrice,
		IsActive:  true,
	}
	db.Create(&product)
	return product
}

// seedBranchStock creates a branch stock record.
func seedBranchStock(db *gorm.DB, branchID, productID uuid.UUID, quantity int) models.BranchProduct {
	record := models.BranchProduct{
		ID:            uuid.New(),
		BranchID:      branchID,
		ProductID:     productID,
		StockQuantity: quantity,
		ReorderLevel:  5,
		IsAvailable:   true,
	}
	db.Create(&record)
	return record
}

// ==================== Router Setup Helpers ====================

// setupAuthRouter sets up routes for auth handler tests.
func setupAuthRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	authHandler := &AuthHandler{DB: db}
	userHandler := &UserHandler{DB: db}

	api := r.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.RefreshTokenHandler)
	api.POST("/auth/verify-email", authHandler.VerifyEmail)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)
	api.POST("/auth/reset-password", authHandler.ResetPassword)
	api.GET("/users/check-email", userHandler.CheckEmail)
	api.GET("/users/check-phone", userHandler.CheckPhone)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	protected.GET("/auth/profile", authHandler.GetProfile)
	protected.PUT("/auth/profile", authHandler.UpdateProfile)
	protected.PUT("/auth/password", authHandler.ChangePassword)

	return r
}

// setupUserRouter sets up routes for user management tests.
func setupUserRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	userHandler := &UserHandler{DB: db}

	api := r.Group("/api")

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	protected.POST("/loyalty/redeem", userHandler.RedeemPoints)
	protected.GET("/loyalty/history", userHandler.GetLoyaltyHistory)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	admin.GET("/users", userHandler.ListUsers)
	admin.GET("/users/:id", userHandler.GetUser)
	admin.PUT("/users/:id", userHandler.UpdateUser)
	admin.POST("/staff", userHandler.CreateStaff)

	return r
}

// setupBranchRouter sets up routes for branch handler tests.
func setupBranchRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	branchHandler := &BranchHandler{DB: db}

	api := r.Group("/api")
	api.GET("/branches", branchHandler.ListBranches)
	api.GET("/branches/:id", branchHandler.GetBranch)
	api.GET("/branches/:id/hours", branchHandler.GetOperatingHours)
	api.GET("/branches/:id/slots", branchHandler.GetBookingSlots)
	api.GET("/branches/:id/staff", branchHandler.GetBranchStaff)

	branchMgmt := api.Group("")
	branchMgmt.Use(middleware.AuthMiddleware())
	branchMgmt.Use(middleware.BranchManagementMiddleware())
	branchMgmt.PUT("/branches/:id/hours", branchHandler.UpdateOperatingHours)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	admin.POST("/branches", branchHandler.CreateBranch)
	admin.PUT("/branches/:id", branchHandler.UpdateBranch)

	return r
}

// setupServiceRouter sets up routes for service catalog tests.
func setupServiceRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	serviceHandler := &ServiceHandler{DB: db, Storage: newMockStorage()}

	api := r.Group("/api")
	api.GET("/services", serviceHandler.GetServices)
	api.GET("/services/:id", serviceHandler.GetService)

	branchMgmt := api.Group("")
	branchMgmt.Use(middleware.AuthMiddleware())
	branchMgmt.Use(middleware.BranchManagementMiddleware())
	branchMgmt.POST("/services", serviceHandler.CreateService)
	branchMgmt.PUT("/services/:id", serviceHandler.UpdateService)
	branchMgmt.POST("/services/:id/archive", serviceHandler.ArchiveService)
	branchMgmt.POST("/services/:id/unarchive", serviceHandler.UnarchiveService)
	branchMgmt.GET("/archived-services", serviceHandler.GetArchivedServices)
	branchMgmt.POST("/services/:id/image", serviceHandler.UploadServiceImage)

	return r
}

// setupAppointmentRouter sets up routes for appointment tests.
func setupAppointmentRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	appointmentHandler := &AppointmentHandler{DB: db}

	api := r.Group("/api")
	api.POST("/appointments", appointmentHandler.CreateAppointment)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	protected.GET("/my-appointments", appointmentHandler.GetMyAppointments)

	frontDesk := api.Group("")
	frontDesk.Use(middleware.AuthMiddleware())
	frontDesk.Use(middleware.FrontDeskMiddleware())
	frontDesk.GET("/branches/:id/appointments", appointmentHandler.GetBranchAppointments)
	frontDesk.GET("/stylists/:stylistId/appointments", appointmentHandler.GetStylistAppointments)
	frontDesk.GET("/appointments/:id", appointmentHandler.GetAppointment)
	frontDesk.PUT("/appointments/:id", appointmentHandler.UpdateAppointment)
	frontDesk.PUT("/appointments/:id/status", appointmentHandler.UpdateAppointmentStatus)
	frontDesk.DELETE("/appointments/:id", appointmentHandler.DeleteAppointment)

	return r
}

// setupScheduleRouter sets up routes for schedule tests.
func setupScheduleRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	scheduleHandler := &ScheduleHandler{DB: db}

	api := r.Group("/api")

	frontDesk := api.Group("")
	frontDesk.Use(middleware.AuthMiddleware())
	frontDesk.Use(middleware.FrontDeskMiddleware())
	frontDesk.GET("/stylists/:stylistId/schedules", scheduleHandler.GetStylistSchedules)
	frontDesk.GET("/stylists/:stylistId/day", scheduleHandler.GetStylistDay)
	frontDesk.GET("/branches/:id/schedules", scheduleHandler.GetBranchSchedules)

	branchMgmt := api.Group("")
	branchMgmt.Use(middleware.AuthMiddleware())
	branchMgmt.Use(middleware.BranchManagementMiddleware())
	branchMgmt.POST("/schedules", scheduleHandler.CreateSchedule)
	branchMgmt.PUT("/schedules/:id", scheduleHandler.UpdateSchedule)
	branchMgmt.DELETE("/schedules/:id", scheduleHandler.DeleteSchedule)
	branchMgmt.PUT("/stylists/:stylistId/day", scheduleHandler.SetStylistDay)

	return r
}

// setupStaffServiceRouter sets up routes for staff-service assignment tests.
func setupStaffServiceRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	staffServiceHandler := &StaffServiceHandler{DB: db}

	api := r.Group("/api")
	api.GET("/branches/:id/services/:serviceId/stylists", staffServiceHandler.GetServiceStylists)

	branchMgmt := api.Group("")
	branchMgmt.Use(middleware.AuthMiddleware())
	branchMgmt.Use(middleware.BranchManagementMiddleware())
	branchMgmt.POST("/staff-services", staffServiceHandler.AssignService)
	branchMgmt.DELETE("/staff-services/:staffId/:serviceId", staffServiceHandler.UnassignService)
	branchMgmt.GET("/staff/:staffId/services", staffServiceHandler.GetStaffServices)

	return r
}

// setupInventoryRouter sets up the full inventory route group for tests.
func setupInventoryRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	supplierHandler := &SupplierHandler{DB: db}
	productHandler := &ProductHandler{DB: db, Storage: newMockStorage()}
	transferHandler := &StockTransferHandler{DB: db}
	purchaseOrderHandler := &PurchaseOrderHandler{DB: db}

	api := r.Group("/api")
	inventory := api.Group("/inventory")
	inventory.Use(middleware.AuthMiddleware())
	inventory.Use(middleware.InventoryMiddleware())

	inventory.GET("/suppliers", supplierHandler.ListSuppliers)
	inventory.GET("/suppliers/:id", supplierHandler.GetSupplier)
	inventory.POST("/suppliers", supplierHandler.CreateSupplier)
	inventory.PUT("/suppliers/:id", supplierHandler.UpdateSupplier)
	inventory.DELETE("/suppliers/:id", supplierHandler.DeleteSupplier)

	inventory.GET("/products", productHandler.ListProducts)
	inventory.GET("/products/:id", productHandler.GetProduct)
	inventory.POST("/products", productHandler.CreateProduct)
	inventory.PUT("/products/:id", productHandler.UpdateProduct)
	inventory.POST("/products/:id/image", productHandler.UploadProductImage)

	inventory.GET("/branches/:branchId/stock", productHandler.GetBranchStock)
	inventory.PUT("/branches/:branchId/stock", productHandler.AdjustBranchStock)
	inventory.POST("/branches/:branchId/usage", productHandler.LogProductUsage)
	inventory.GET("/branches/:branchId/usage", productHandler.GetUsageHistory)

	inventory.GET("/transfers", transferHandler.ListTransfers)
	inventory.POST("/transfers", transferHandler.CreateTransfer)
	inventory.POST("/transfers/:id/complete", transferHandler.CompleteTransfer)
	inventory.POST("/transfers/:id/cancel", transferHandler.CancelTransfer)

	inventory.GET("/purchase-orders", purchaseOrderHandler.ListPurchaseOrders)
	inventory.GET("/purchase-orders/:id", purchaseOrderHandler.GetPurchaseOrder)
	inventory.POST("/purchase-orders", purchaseOrderHandler.CreatePurchaseOrder)
	inventory.POST("/purchase-orders/:id/receive", purchaseOrderHandler.ReceivePurchaseOrder)
	inventory.POST("/purchase-orders/:id/cancel", purchaseOrderHandler.CancelPurchaseOrder)

	return r
}

// setupDashboardRouter sets up routes for dashboard tests.
func setupDashboardRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	dashboardHandler := &DashboardHandler{DB: db}

	api := r.Group("/api")

	branchMgmt := api.Group("")
	branchMgmt.Use(middleware.AuthMiddleware())
	branchMgmt.Use(middleware.BranchManagementMiddleware())
	branchMgmt.GET("/branches/:id/dashboard", dashboardHandler.GetBranchDashboard)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	admin.GET("/dashboard", dashboardHandler.GetAdminDashboard)

	return r
}

// ==================== Request Helpers ====================

// jsonRequest creates an HTTP request with JSON body.
func jsonRequest(method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// authRequest creates an HTTP request with JSON body and Authorization header.
func authRequest(method, url string, body interface{}, token string) *http.Request {
	req := jsonRequest(method, url, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// multipartRequest creates a multipart form request with file uploads.
func multipartRequest(method, url string, fields map[string]string, files map[string]string, token string) *http.Request {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, val := range fields {
		_ = writer.WriteField(key, val)
	}

	for fieldName, filename := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fieldName, filename))
		h.Set("Content-Type", "image/jpeg")

		part, err := writer.CreatePart(h)
		if err != nil {
			panic("failed to create multipart file part: " + err.Error())
		}
		part.Write([]byte("fake image data"))
	}

	writer.Close()

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// ==================== Response Helpers ====================

// parseResponse reads the response body into a map.
func parseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// parseResponseArray reads the response body into a slice of maps.
func parseResponseArray(w *httptest.ResponseRecorder) []interface{} {
	var result []interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}
