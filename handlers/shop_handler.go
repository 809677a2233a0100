package handlers

import (
	"log"
	"net/http"

	"quizshop/services"

	"github.com/gin-gonic/gin"
)

type ShopHandler struct {
	shopService *services.ShopService
}

func NewShopHandler(shopService *services.ShopService) *ShopHandler {
	return &ShopHandler{
		shopService: shopService,
	}
}

func (h *ShopHandler) ListItems(c *gin.Context) {
	items, err := h.shopService.ListItems()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *ShopHandler) GetItem(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	item, err := h.shopService.GetItem(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ShopHandler) Buy(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.BuyItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.shopService.Purchase(userID, req.Name)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	log.Printf("User %d bought %q, balance now %d", userID, req.Name, user.Balls)
	c.JSON(http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Item purchased",
		"balls":   user.Balls,
		"gifts":   user.Gifts,
	})
}
