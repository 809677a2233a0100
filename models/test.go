package models

import (
	"time"

	"gorm.io/gorm"
)

type Test struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	SubjectID uint           `json:"subject_id" gorm:"not null"`
	Level     string         `json:"level" gorm:"not null;default:'beginner'"`
	Balls     int            `json:"balls" gorm:"not null;default:0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Subject   Subject    `json:"subject,omitempty"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE"`
}

// BeforeSave applies the per-level points bonus. Harder tests are worth
// more balls; the level field itself is never touched.
func (t *Test) BeforeSave(tx *gorm.DB) error {
	switch t.Level {
	case LevelBeginner:
		t.Balls += 10
	case LevelIntermediate:
		t.Balls += 20
	case LevelAdvanced:
		t.Balls += 30
	}
	return nil
}
