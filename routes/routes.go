package routes

import (
	"time"

	"salonchain-backend/handlers"
	"salonchain-backend/middleware"
	"salonchain-backend/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, store storage.Client) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	userHandler := &handlers.UserHandler{DB: db}
	branchHandler := &handlers.BranchHandler{DB: db}
	serviceHandler := &handlers.ServiceHandler{DB: db, Storage: store}
	appointmentHandler := &handlers.AppointmentHandler{DB: db}
	scheduleHandler := &handlers.ScheduleHandler{DB: db}
	staffServiceHandler := &handlers.StaffServiceHandler{DB: db}
	supplierHandler := &handlers.SupplierHandler{DB: db}
	productHandler := &handlers.ProductHandler{DB: db, Storage: store}
	transferHandler := &handlers.StockTransferHandler{DB: db}
	purchaseOrderHandler := &handlers.PurchaseOrderHandler{DB: db}
	dashboardHandler := &handlers.DashboardHandler{DB: db}

	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		auth.Use(authLimiter.Middleware())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshTokenHandler)
			auth.POST("/verify-email", authHandler.VerifyEmail)
			auth.POST("/resend-verification", authHandler.ResendVerification)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
		}

		// Uniqueness checks used by registration and edit forms
		api.GET("/users/check-email", userHandler.CheckEmail)
		api.GET("/users/check-phone", userHandler.CheckPhone)

		// Public browse routes
		api.GET("/branches", branchHandler.ListBranches)
		api.GET("/branches/:id", branchHandler.GetBranch)
		api.GET("/branches/:id/hours", branchHandler.GetOperatingHours)
		api.GET("/branches/:id/slots", branchHandler.GetBookingSlots)
		api.GET("/services", serviceHandler.GetServices)
		api.GET("/services/:id", serviceHandler.GetService)
		api.GET("/branches/:id/staff", branchHandler.GetBranchStaff)
		api.GET("/branches/:id/services/:serviceId/stylists", staffServiceHandler.GetServiceStylists)

		// Walk-in bookings do not need an account
		api.POST("/appointments", appointmentHandler.CreateAppointment)
	}

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		// Profile
		protected.GET("/auth/profile", authHandler.GetProfile)
		protected.PUT("/auth/profile", authHandler.UpdateProfile)
		protected.PUT("/auth/password", authHandler.ChangePassword)

		// Client self-service
		protected.GET("/my-appointments", appointmentHandler.GetMyAppointments)
		protected.POST("/loyalty/redeem", userHandler.RedeemPoints)
		protected.GET("/loyalty/history", userHandler.GetLoyaltyHistory)
	}

	// Front desk routes (receptionists, branch management, admins)
	frontDesk := api.Group("")
	frontDesk.Use(middleware.AuthMiddleware())
	frontDesk.Use(middleware.FrontDeskMiddleware())
	{
		frontDesk.GET("/branches/:id/appointments", appointmentHandler.GetBranchAppointments)
		frontDesk.GET("/appointments/:id", appointmentHandler.GetAppointment)
		frontDesk.PUT("/appointments/:id", appointmentHandler.UpdateAppointment)
		frontDesk.PUT("/appointments/:id/status", appointmentHandler.UpdateAppointmentStatus)
		frontDesk.DELETE("/appointments/:id", appointmentHandler.DeleteAppointment)

		frontDesk.GET("/stylists/:stylistId/appointments", appointmentHandler.GetStylistAppointments)
		frontDesk.GET("/stylists/:stylistId/schedules", scheduleHandler.GetStylistSchedules)
		frontDesk.GET("/stylists/:stylistId/day", scheduleHandler.GetStylistDay)
		frontDesk.GET("/branches/:id/schedules", scheduleHandler.GetBranchSchedules)
	}

	// Branch management routes
	branchMgmt := api.Group("")
	branchMgmt.Use(middleware.AuthMiddleware())
	branchMgmt.Use(middleware.BranchManagementMiddleware())
	{
		branchMgmt.PUT("/branches/:id/hours", branchHandler.UpdateOperatingHours)

		branchMgmt.POST("/services", serviceHandler.CreateService)
		branchMgmt.PUT("/services/:id", serviceHandler.UpdateService)
		branchMgmt.POST("/services/:id/archive", serviceHandler.ArchiveService)
		branchMgmt.POST("/services/:id/unarchive", serviceHandler.UnarchiveService)
		branchMgmt.GET("/archived-services", serviceHandler.GetArchivedServices)
		branchMgmt.POST("/services/:id/image", serviceHandler.UploadServiceImage)

		branchMgmt.POST("/schedules", scheduleHandler.CreateSchedule)
		branchMgmt.PUT("/schedules/:id", scheduleHandler.UpdateSchedule)
		branchMgmt.DELETE("/schedules/:id", scheduleHandler.DeleteSchedule)
		branchMgmt.PUT("/stylists/:stylistId/day", scheduleHandler.SetStylistDay)

		branchMgmt.POST("/staff-services", staffServiceHandler.AssignService)
		branchMgmt.DELETE("/staff-services/:staffId/:serviceId", staffServiceHandler.UnassignService)
		branchMgmt.GET("/staff/:staffId/services", staffServiceHandler.GetStaffServices)

		branchMgmt.GET("/branches/:id/dashboard", dashboardHandler.GetBranchDashboard)
	}

	// Inventory routes
	inventory := api.Group("/inventory")
	inventory.Use(middleware.AuthMiddleware())
	inventory.Use(middleware.InventoryMiddleware())
	{
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
	}

	// Admin routes (super admin and operational manager)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		admin.POST("/branches", branchHandler.CreateBranch)
		admin.PUT("/branches/:id", branchHandler.UpdateBranch)

		admin.GET("/users", userHandler.ListUsers)
		admin.GET("/users/:id", userHandler.GetUser)
		admin.PUT("/users/:id", userHandler.UpdateUser)
		admin.POST("/staff", userHandler.CreateStaff)

		admin.GET("/dashboard", dashboardHandler.GetAdminDashboard)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
