package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Referral records one use of a client's referral code at registration.
type Referral struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ReferrerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"referrer_id"`
	ReferredUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"referred_user_id"`
	Code           string    `gorm:"not null" json:"code"`
	PointsAwarded  int       `gorm:"default:0" json:"points_awarded"`
	CreatedAt      time.Time `json:"created_at"`
}

func (r *Referral) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
