package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Username     string         `json:"username" gorm:"uniqueIndex;not null"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Role         string         `json:"role" gorm:"not null;default:'user'"` // admin, user
	Level        string         `json:"level" gorm:"not null;default:'beginner'"`
	Balls        int            `json:"balls" gorm:"not null;default:0"`
	Verified     bool           `json:"verified" gorm:"not null;default:false"`
	DateOfBirth  *time.Time     `json:"date_of_birth"`
	About        string         `json:"about"`
	ImageURL     string         `json:"image_url"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Gifts         []ShopItem         `json:"gifts,omitempty" gorm:"many2many:user_gifts"`
	Confirmations []UserConfirmation `json:"-" gorm:"foreignKey:UserID"`
}
