package models

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}

	tables := []string{
		`CREATE TABLE IF NOT EXISTS "users" (
			"id" TEXT PRIMARY KEY, "email" TEXT NOT NULL UNIQUE, "password" TEXT NOT NULL,
			"first_name" TEXT, "last_name" TEXT, "phone" TEXT, "birth_date" DATETIME,
			"gender" TEXT, "role" TEXT DEFAULT 'client', "status" TEXT DEFAULT 'active',
			"email_verified" INTEGER DEFAULT 0, "branch_id" TEXT,
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "client_profiles" (
			"id" TEXT PRIMARY KEY, "user_id" TEXT NOT NULL UNIQUE, "category" TEXT DEFAULT 'regular',
			"loyalty_points" INTEGER DEFAULT 0, "referral_code" TEXT UNIQUE, "preferences" TEXT,
			"created_at" DATETIME, "updated_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "staff_profiles" (
			"id" TEXT PRIMARY KEY, "user_id" TEXT NOT NULL UNIQUE, "employee_id" TEXT,
			"hire_date" DATETIME, "salary" REAL DEFAULT 0, "skills" TEXT,
			"created_at" DATETIME, "updated_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "branches" (
			"id" TEXT PRIMARY KEY, "name" TEXT NOT NULL, "address" TEXT, "city" TEXT,
			"phone" TEXT, "email" TEXT, "manager_id" TEXT, "is_active" INTEGER DEFAULT 1,
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "branch_hours" (
			"id" TEXT PRIMARY KEY, "branch_id" TEXT NOT NULL, "day_of_week" INTEGER NOT NULL,
			"open_time" TEXT, "close_time" TEXT, "is_closed" INTEGER DEFAULT 0,
			"created_at" DATETIME, "updated_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "services" (
			"id" TEXT PRIMARY KEY, "branch_id" TEXT, "name" TEXT NOT NULL, "description" TEXT,
			"category" TEXT DEFAULT 'General', "price" REAL NOT NULL, "duration" INTEGER,
			"image_url" TEXT, "is_active" INTEGER DEFAULT 1, "archived" INTEGER DEFAULT 0,
			"archived_at" DATETIME, "created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "schedules" (
			"id" TEXT PRIMARY KEY, "stylist_id" TEXT NOT NULL, "branch_id" TEXT NOT NULL,
			"date" TEXT NOT NULL, "start_time" TEXT, "end_time" TEXT, "status" TEXT NOT NULL,
			"notes" TEXT, "created_at" DATETIME, "updated_at" DATETIME
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_stylist_date ON "schedules"("stylist_id", "date")`,
		`CREATE TABLE IF NOT EXISTS "appointments" (
			"id" TEXT PRIMARY KEY, "branch_id" TEXT NOT NULL, "client_id" TEXT,
			"date" TEXT NOT NULL, "time" TEXT NOT NULL, "status" TEXT DEFAULT 'pending',
			"client_first_name" TEXT, "client_last_name" TEXT, "client_phone" TEXT,
			"client_email" TEXT, "notes" TEXT, "total_cost" REAL DEFAULT 0,
			"created_at" DATETIME, "updated_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "appointment_services" (
			"id" TEXT PRIMARY KEY, "appointment_id" TEXT NOT NULL, "service_id" TEXT NOT NULL,
			"name" TEXT, "duration" INTEGER, "price" REAL, "created_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "suppliers" (
			"id" TEXT PRIMARY KEY, "name" TEXT NOT NULL, "contact_person" TEXT, "phone" TEXT,
			"email" TEXT, "address" TEXT, "is_active" INTEGER DEFAULT 1,
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "products" (
			"id" TEXT PRIMARY KEY, "sku" TEXT NOT NULL UNIQUE, "name" TEXT NOT NULL,
			"description" TEXT, "brand" TEXT, "category" TEXT, "unit" TEXT,
			"cost_price" REAL NOT NULL, "retail_price" REAL DEFAULT 0,
			"reorder_level" INTEGER DEFAULT 5, "supplier_id" TEXT, "image_url" TEXT,
			"is_active" INTEGER DEFAULT 1, "created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "branch_products" (
			"id" TEXT PRIMARY KEY, "branch_id" TEXT NOT NULL, "product_id" TEXT NOT NULL,
			"stock_quantity" INTEGER DEFAULT 0, "reorder_level" INTEGER DEFAULT 5,
			"is_available" INTEGER DEFAULT 1, "created_at" DATETIME, "updated_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "stock_transfers" (
			"id" TEXT PRIMARY KEY, "product_id" TEXT NOT NULL, "from_branch_id" TEXT NOT NULL,
			"to_branch_id" TEXT NOT NULL, "quantity" INTEGER NOT NULL, "status" TEXT DEFAULT 'pending',
			"requested_by" TEXT, "notes" TEXT, "completed_at" DATETIME,
			"created_at" DATETIME, "updated_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "purchase_orders" (
			"id" TEXT PRIMARY KEY, "order_number" TEXT NOT NULL UNIQUE, "branch_id" TEXT NOT NULL,
			"supplier_id" TEXT NOT NULL, "status" TEXT DEFAULT 'pending', "total_cost" REAL DEFAULT 0,
			"ordered_by" TEXT, "notes" TEXT, "received_at" DATETIME,
			"created_at" DATETIME, "updated_at" DATETIME
		)`,
	}

	for _, sql := range tables {
		if err := db.Exec(sql).Error; err != nil {
			t.Fatal(err)
		}
	}
	return db
}

// ==================== BeforeCreate Hook Tests ====================

func TestUserBeforeCreateGeneratesUUID(t *testing.T) {
	db := setupTestDB(t)
	user := User{Email: "test@test.com", Password: "hash", FirstName: "Test"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	if user.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

func TestUserBeforeCreatePreservesUUID(t *testing.T) {
	db := setupTestDB(t)
	existingID := uuid.New()
	user := User{ID: existingID, Email: "preserve@test.com", Password: "hash"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	if user.ID != existingID {
		t.Error("UUID should have been preserved")
	}
}

func TestClientProfileBeforeCreate(t *testing.T) {
	db := setupTestDB(t)
	user := User{ID: uuid.New(), Email: "client@test.com", Password: "hash"}
	db.Create(&user)
	profile := ClientProfile{UserID: user.ID, ReferralCode: "REF-TEST01"}
	db.Create(&profile)
	if profile.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

func TestBranchBeforeCreate(t *testing.T) {
	db := setupTestDB(t)
	branch := Branch{Name: "Test Branch"}
	db.Create(&branch)
	if branch.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

func TestBranchHoursBeforeCreate(t *testing.T) {
	db := setupTestDB(t)
	branch := Branch{ID: uuid.New(), Name: "Test"}
	db.Create(&branch)
	hours := BranchHours{BranchID: branch.ID, DayOfWeek: 1, OpenTime: "9:00 AM", CloseTime: "5:00 PM"}
	db.Create(&hours)
	if hours.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

func TestServiceBeforeCreate(t *testing.T) {
	db := setupTestDB(t)
	service := Service{Name: "Cut", Price: 30}
	db.Create(&service)
	if service.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

func TestScheduleBeforeCreate(t *testing.T) {
	db := setupTestDB(t)
	schedule := Schedule{StylistID: uuid.New(), BranchID: uuid.New(), Date: "2026-09-10", Status: ScheduleStatusOff}
	db.Create(&schedule)
	if schedule.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

func TestScheduleUniquePerStylistAndDate(t *testing.T) {
	db := setupTestDB(t)
	stylistID := uuid.New()
	branchID := uuid.New()
	first := Schedule{StylistID: stylistID, BranchID: branchID, Date: "2026-09-10", Status: ScheduleStatusOff}
	if err := db.Create(&first).Error; err != nil {
		t.Fatal(err)
	}
	dup := Schedule{StylistID: stylistID, BranchID: branchID, Date: "2026-09-10", Status: ScheduleStatusBusy}
	if err := db.Create(&dup).Error; err == nil {
		t.Error("second exception for the same stylist and date should be rejected")
	}
}

func TestAppointmentBeforeCreate(t *testing.T) {
	db := setupTestDB(t)
	appt := Appointment{BranchID: uuid.New(), Date: "2026-09-10", Time: "10:00", ClientFirstName: "Ada"}
	db.Create(&appt)
	if appt.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

func TestSupplierBeforeCreate(t *testing.T) {
	db := setupTestDB(t)
	supplier := Supplier{Name: "Test Supplies"}
	db.Create(&supplier)
	if supplier.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

func TestProductBeforeCreate(t *testing.T) {
	db := setupTestDB(t)
	product := Product{SKU: "TEST-SKU", Name: "Test Product", CostPrice: 1}
	db.Create(&product)
	if product.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

func TestBranchProductBeforeCreate(t *testing.T) {
	db := setupTestDB(t)
	record := BranchProduct{BranchID: uuid.New(), ProductID: uuid.New(), StockQuantity: 10}
	db.Create(&record)
	if record.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

func TestStockTransferBeforeCreate(t *testing.T) {
	db := setupTestDB(t)
	transfer := StockTransfer{ProductID: uuid.New(), FromBranchID: uuid.New(), ToBranchID: uuid.New(), Quantity: 1}
	db.Create(&transfer)
	if transfer.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

func TestPurchaseOrderGeneratesOrderNumber(t *testing.T) {
	db := setupTestDB(t)
	order := PurchaseOrder{BranchID: uuid.New(), SupplierID: uuid.New()}
	db.Create(&order)
	if order.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
	if order.OrderNumber == "" {
		t.Error("order number should have been generated")
	}
	if !strings.HasPrefix(order.OrderNumber, "PO") {
		t.Errorf("order number should start with PO, got %s", order.OrderNumber)
	}
}

func TestPurchaseOrderPreservesOrderNumber(t *testing.T) {
	db := setupTestDB(t)
	order := PurchaseOrder{OrderNumber: "PO-CUSTOM-1", BranchID: uuid.New(), SupplierID: uuid.New()}
	db.Create(&order)
	if order.OrderNumber != "PO-CUSTOM-1" {
		t.Errorf("order number should have been preserved, got %s", order.OrderNumber)
	}
}

// ==================== Role and Status Tests ====================

func TestIsStaff(t *testing.T) {
	staff := User{Role: RoleStylist}
	if !staff.IsStaff() {
		t.Error("stylist should be staff")
	}
	client := User{Role: RoleClient}
	if client.IsStaff() {
		t.Error("client should not be staff")
	}
	admin := User{Role: RoleSuperAdmin}
	if admin.IsStaff() {
		t.Error("super admin is a chain role, not branch staff")
	}
}

func TestValidRolesCoversStaffRoles(t *testing.T) {
	for role := range StaffRoles {
		if !ValidRoles[role] {
			t.Errorf("staff role %s missing from valid roles", role)
		}
	}
}

func TestValidAppointmentStatuses(t *testing.T) {
	for _, status := range []AppointmentStatus{
		AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled,
	} {
		if !ValidAppointmentStatuses[status] {
			t.Errorf("status %s should be valid", status)
		}
	}
	if ValidAppointmentStatuses["teleported"] {
		t.Error("unknown status should not be valid")
	}
}

func TestValidScheduleStatuses(t *testing.T) {
	for _, status := range []ScheduleStatus{
		ScheduleStatusAvailable, ScheduleStatusBusy, ScheduleStatusBreak, ScheduleStatusOff,
	} {
		if !ValidScheduleStatuses[status] {
			t.Errorf("status %s should be valid", status)
		}
	}
	if ValidScheduleStatuses["teleported"] {
		t.Error("unknown status should not be valid")
	}
}
