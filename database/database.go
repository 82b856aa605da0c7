package database

import (
	"fmt"
	"log"
	"os"

	"salonchain-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=salonchain port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Ensure PostgreSQL has gen_random_uuid() available (pgcrypto extension).
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return fmt.Errorf("failed to enable pgcrypto extension: %w", err)
	}

	return db.AutoMigrate(
		&models.User{},
		&models.ClientProfile{},
		&models.StaffProfile{},
		&models.Branch{},
		&models.BranchHours{},
		&models.Service{},
		&models.StaffService{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.AppointmentStylist{},
		&models.Schedule{},
		&models.LoyaltyHistory{},
		&models.Referral{},
		&models.RefreshToken{},
		&models.PasswordResetToken{},
		&models.EmailOTP{},
		&models.Supplier{},
		&models.Product{},
		&models.BranchProduct{},
		&models.StockTransfer{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderItem{},
		&models.ProductUsage{},
		&models.ReminderLog{},
	)
}

func CreateDefaultAdmin(db *gorm.DB) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" {
		adminEmail = "admin@salonchain.local"
	}
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	var existingUser models.User
	result := db.Where("email = ?", adminEmail).First(&existingUser)
	if result.Error == nil {
		// Admin already exists
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:         adminEmail,
		Password:      string(hashedPassword),
		FirstName:     "Super",
		LastName:      "Admin",
		Role:          models.RoleSuperAdmin,
		EmailVerified: true,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Default super admin created: %s", adminEmail)
	return nil
}

// CreateDefaultBranch seeds one branch with standard operating hours so a
// fresh install has somewhere to book against.
func CreateDefaultBranch(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Branch{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	branch := models.Branch{
		Name:    "Main Branch",
		Address: "1 High Street",
	}
	if err := db.Create(&branch).Error; err != nil {
		return err
	}

	for day := 0; day <= 6; day++ {
		hours := models.BranchHours{
			BranchID:  branch.ID,
			DayOfWeek: day,
			OpenTime:  "9:00 AM",
			CloseTime: "6:00 PM",
			IsClosed:  day == 0, // closed Sundays by default
		}
		if err := db.Create(&hours).Error; err != nil {
			return err
		}
	}

	log.Printf("Default branch created: %s", branch.Name)
	return nil
}
