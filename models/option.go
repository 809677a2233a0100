package models

import (
	"time"

	"gorm.io/gorm"
)

type Option struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	QuestionID uint           `json:"question_id" gorm:"not null"`
	Name       string         `json:"name" gorm:"not null"`
	IsTrue     bool           `json:"is_true" gorm:"not null;default:false"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Question Question `json:"-"`
}
