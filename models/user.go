package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles. A user carries exactly one of ClientProfile (RoleClient) or
// StaffProfile (everything else); write sites enforce this, not the schema.
const (
	RoleClient              = "client"
	RoleStylist             = "stylist"
	RoleReceptionist        = "receptionist"
	RoleBranchManager       = "branch_manager"
	RoleBranchAdmin         = "branch_admin"
	RoleInventoryController = "inventory_controller"
	RoleOperationalManager  = "operational_manager"
	RoleSuperAdmin          = "super_admin"
)

var ValidRoles = map[string]bool{
	RoleClient:              true,
	RoleStylist:             true,
	RoleReceptionist:        true,
	RoleBranchManager:       true,
	RoleBranchAdmin:         true,
	RoleInventoryController: true,
	RoleOperationalManager:  true,
	RoleSuperAdmin:          true,
}

// StaffRoles are the roles that belong to a branch and carry a StaffProfile.
var StaffRoles = map[string]bool{
	RoleStylist:             true,
	RoleReceptionist:        true,
	RoleBranchManager:       true,
	RoleBranchAdmin:         true,
	RoleInventoryController: true,
}

type User struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email         string         `gorm:"uniqueIndex;not null" json:"email"`
	Password      string         `gorm:"not null" json:"-"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Phone         string         `gorm:"index" json:"phone"`
	BirthDate     *time.Time     `json:"birth_date,omitempty"`
	Gender        string         `json:"gender"`
	Role          string         `gorm:"default:client;index" json:"role"`
	Status        string         `gorm:"default:active" json:"status"` // active, inactive, blocked
	EmailVerified bool           `gorm:"default:false" json:"email_verified"`
	BranchID      *uuid.UUID     `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	ClientProfile *ClientProfile `gorm:"foreignKey:UserID" json:"client_profile,omitempty"`
	StaffProfile  *StaffProfile  `gorm:"foreignKey:UserID" json:"staff_profile,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsStaff reports whether the user's role is a branch staff role.
func (u *User) IsStaff() bool {
	return StaffRoles[u.Role]
}

type ClientProfile struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Category      string    `gorm:"default:regular" json:"category"` // regular, vip
	LoyaltyPoints int       `gorm:"default:0" json:"loyalty_points"`
	ReferralCode  string    `gorm:"uniqueIndex" json:"referral_code"`
	Preferences   string    `json:"preferences"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (p *ClientProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type StaffProfile struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	EmployeeID string     `gorm:"index" json:"employee_id"`
	HireDate   *time.Time `json:"hire_date,omitempty"`
	Salary     float64    `gorm:"default:0" json:"salary"`
	Skills     string     `json:"skills"` // comma-separated service categories
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (p *StaffProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
