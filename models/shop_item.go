package models

import (
	"time"

	"gorm.io/gorm"
)

// ShopItem is a gift users buy with balls. Price is an integer amount of
// balls; Discount is a percentage off that price.
type ShopItem struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null;index"`
	About     string         `json:"about"`
	Amount    int            `json:"amount" gorm:"not null;default:0"`
	ImageURL  string         `json:"image_url"`
	IsActive  bool           `json:"is_active" gorm:"not null;default:true"`
	Price     int            `json:"price" gorm:"not null"`
	Discount  int            `json:"discount" gorm:"not null;default:0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeSave deactivates an item once its stock is gone.
func (i *ShopItem) BeforeSave(tx *gorm.DB) error {
	if i.Amount == 0 {
		i.IsActive = false
	}
	return nil
}
