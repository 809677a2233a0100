package services

import (
	"errors"

	"quizshop/models"

	"gorm.io/gorm"
)

var (
	ErrItemNotFound        = errors.New("shop item not found")
	ErrInsufficientBalance = errors.New("not enough balls to buy this item")
)

// ShopService sells catalog items for balls.
type ShopService struct {
	db *gorm.DB
}

func NewShopService(db *gorm.DB) *ShopService {
	return &ShopService{db: db}
}

type BuyItemRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *ShopService) ListItems() ([]models.ShopItem, error) {
	var items []models.ShopItem
	err := s.db.Order("id").Find(&items).Error
	return items, err
}

func (s *ShopService) GetItem(id uint) (*models.ShopItem, error) {
	var item models.ShopItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Purchase debits the item's price from the user's balls, grants the item
// as a gift and takes one unit off the shelf, all in one transaction. The
// debit is a conditional update on the balance, so two concurrent buyers
// cannot both spend the same balls.
func (s *ShopService) Purchase(userID uint, itemName string) (*models.User, error) {
	var buyer *models.User

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Name is not unique; first active match wins.
		var item models.ShopItem
		err := tx.Where("name = ? AND is_active = ?", itemName, true).
			Order("id").First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		debit := tx.Model(&models.User{}).
			Where("id = ? AND balls >= ?", userID, item.Price).
			Update("balls", gorm.Expr("balls - ?", item.Price))
		if debit.Error != nil {
			return debit.Error
		}
		if debit.RowsAffected == 0 {
			return ErrInsufficientBalance
		}

		user := models.User{ID: userID}
		if err := tx.Model(&user).Association("Gifts").Append(&item); err != nil {
			return err
		}

		stock := tx.Model(&models.ShopItem{}).
			Where("id = ? AND amount > 0", item.ID).
			Update("amount", gorm.Expr("amount - 1"))
		if stock.Error != nil {
			return stock.Error
		}
		if stock.RowsAffected == 0 {
			// Sold out under our feet; roll the whole purchase back.
			return ErrItemNotFound
		}
		err = tx.Model(&models.ShopItem{}).
			Where("id = ? AND amount <= 0", item.ID).
			Update("is_active", false).Error
		if err != nil {
			return err
		}

		var updated models.User
		if err := tx.Preload("Gifts").First(&updated, userID).Error; err != nil {
			return err
		}
		buyer = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	return buyer, nil
}
