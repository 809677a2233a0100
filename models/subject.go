package models

import (
	"time"

	"gorm.io/gorm"
)

type Subject struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Tests []Test `json:"tests,omitempty" gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE"`
}
