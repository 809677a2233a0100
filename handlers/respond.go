package handlers

import (
	"errors"
	"net/http"

	"quizshop/services"

	"github.com/gin-gonic/gin"
)

// respondDomainError maps service errors onto the API's
// {"status": "Fail", "message": ...} failure shape.
func respondDomainError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	message := err.Error()

	switch {
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrAccountInactive):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidOrExpiredCode),
		errors.Is(err, services.ErrInsufficientBalance),
		errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrWrongPassword),
		errors.Is(err, services.ErrSamePassword),
		errors.Is(err, services.ErrOneTrueOption):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
		message = "Something went wrong"
	}

	c.JSON(status, gin.H{"status": "Fail", "message": message})
}

func currentUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, false
	}
	return userID.(uint), true
}
