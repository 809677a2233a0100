package models

import (
	"time"

	"gorm.io/gorm"
)

// UserConfirmation is one issued verification code. A user accumulates a
// row per issued code; only an unconfirmed, unexpired row is actionable.
type UserConfirmation struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"not null;index"`
	Code        string         `json:"-" gorm:"not null"`
	ExpireTime  time.Time      `json:"expire_time" gorm:"not null"`
	IsConfirmed bool           `json:"is_confirmed" gorm:"not null;default:false"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	User User `json:"-"`
}
