package services

import (
	"errors"
	"sync"
	"testing"

	"quizshop/models"

	"gorm.io/gorm"
)

func createTestItem(t *testing.T, db *gorm.DB, name string, price, amount int) *models.ShopItem {
	t.Helper()

	item := models.ShopItem{
		Name:     name,
		About:    "a test item",
		Amount:   amount,
		IsActive: true,
		Price:    price,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to create test item: %v", err)
	}
	return &item
}

func TestPurchaseDebitsAndGrantsGift(t *testing.T) {
	db := setupTestDB(t)
	svc := NewShopService(db)
	user := createTestUser(t, db, "alice", 100)
	createTestItem(t, db, "mug", 60, 5)

	updated, err := svc.Purchase(user.ID, "mug")
	if err != nil {
		t.Fatalf("Purchase failed: %v", err)
	}

	if updated.Balls != 40 {
		t.Errorf("expected balance 40 after purchase, got %d", updated.Balls)
	}
	if len(updated.Gifts) != 1 || updated.Gifts[0].Name != "mug" {
		t.Errorf("expected mug in gifts, got %+v", updated.Gifts)
	}
}

func TestPurchaseInsufficientBalance(t *testing.T) {
	db := setupTestDB(t)
	svc := NewShopService(db)
	user := createTestUser(t, db, "alice", 100)
	createTestItem(t, db, "mug", 60, 5)

	if _, err := svc.Purchase(user.ID, "mug"); err != nil {
		t.Fatalf("first Purchase failed: %v", err)
	}

	// 40 balls left, the mug costs 60 now
	_, err := svc.Purchase(user.ID, "mug")
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	var reloaded models.User
	db.Preload("Gifts").First(&reloaded, user.ID)
	if reloaded.Balls != 40 {
		t.Errorf("failed purchase must not touch the balance, got %d", reloaded.Balls)
	}
	if len(reloaded.Gifts) != 1 {
		t.Errorf("failed purchase must not grant a gift, got %d gifts", len(reloaded.Gifts))
	}
}

func TestPurchaseUnknownItem(t *testing.T) {
	db := setupTestDB(t)
	svc := NewShopService(db)
	user := createTestUser(t, db, "alice", 100)

	_, err := svc.Purchase(user.ID, "unicorn")
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	var reloaded models.User
	db.Preload("Gifts").First(&reloaded, user.ID)
	if reloaded.Balls != 100 || len(reloaded.Gifts) != 0 {
		t.Errorf("failed purchase must leave balance and gifts unchanged, got balls=%d gifts=%d",
			reloaded.Balls, len(reloaded.Gifts))
	}
}

func TestPurchaseDecrementsStockAndDeactivates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewShopService(db)
	user := createTestUser(t, db, "alice", 200)
	item := createTestItem(t, db, "sticker", 10, 2)

	if _, err := svc.Purchase(user.ID, "sticker"); err != nil {
		t.Fatalf("first Purchase failed: %v", err)
	}

	var reloaded models.ShopItem
	db.First(&reloaded, item.ID)
	if reloaded.Amount != 1 {
		t.Fatalf("expected stock 1 after one purchase, got %d", reloaded.Amount)
	}
	if !reloaded.IsActive {
		t.Fatal("item must stay active while stock remains")
	}

	if _, err := svc.Purchase(user.ID, "sticker"); err != nil {
		t.Fatalf("second Purchase failed: %v", err)
	}

	db.First(&reloaded, item.ID)
	if reloaded.Amount != 0 {
		t.Fatalf("expected stock 0, got %d", reloaded.Amount)
	}
	if reloaded.IsActive {
		t.Fatal("item must deactivate once stock hits zero")
	}

	// Sold out means gone from the shop.
	if _, err := svc.Purchase(user.ID, "sticker"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound for sold-out item, got %v", err)
	}
}

func TestPurchaseExactBalance(t *testing.T) {
	db := setupTestDB(t)
	svc := NewShopService(db)
	user := createTestUser(t, db, "alice", 60)
	createTestItem(t, db, "mug", 60, 5)

	updated, err := svc.Purchase(user.ID, "mug")
	if err != nil {
		t.Fatalf("Purchase with exact balance should succeed: %v", err)
	}
	if updated.Balls != 0 {
		t.Errorf("expected balance 0, got %d", updated.Balls)
	}
}

func TestPurchaseConcurrentDoubleSpend(t *testing.T) {
	db := setupTestDB(t)
	svc := NewShopService(db)
	user := createTestUser(t, db, "alice", 60)
	createTestItem(t, db, "mug", 60, 5)

	// Balance covers exactly one mug; two buyers race for it.
	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Purchase(user.ID, "mug")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes, insufficient := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrInsufficientBalance):
			insufficient++
		default:
			t.Fatalf("unexpected purchase error: %v", err)
		}
	}
	if successes != 1 || insufficient != 1 {
		t.Fatalf("expected exactly one success and one insufficient-balance failure, got %d success(es) and %d failure(s)",
			successes, insufficient)
	}

	var reloaded models.User
	db.Preload("Gifts").First(&reloaded, user.ID)
	if reloaded.Balls != 0 {
		t.Errorf("expected final balance 0, got %d", reloaded.Balls)
	}
	if len(reloaded.Gifts) != 1 {
		t.Errorf("expected exactly one granted gift, got %d", len(reloaded.Gifts))
	}
}

func TestPurchaseFirstMatchOnDuplicateNames(t *testing.T) {
	db := setupTestDB(t)
	svc := NewShopService(db)
	user := createTestUser(t, db, "alice", 100)
	first := createTestItem(t, db, "mug", 30, 5)
	createTestItem(t, db, "mug", 90, 5)

	updated, err := svc.Purchase(user.ID, "mug")
	if err != nil {
		t.Fatalf("Purchase failed: %v", err)
	}
	if updated.Balls != 70 {
		t.Errorf("expected the cheaper first item (id %d) to be sold, balance is %d", first.ID, updated.Balls)
	}
}
