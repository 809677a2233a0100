package handlers

import (
	"log"
	"net/http"

	"quizshop/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService         *services.AuthService
	confirmationService *services.ConfirmationService
	mailer              *services.Mailer
}

func NewAuthHandler(authService *services.AuthService, confirmationService *services.ConfirmationService, mailer *services.Mailer) *AuthHandler {
	return &AuthHandler{
		authService:         authService,
		confirmationService: confirmationService,
		mailer:              mailer,
	}
}

type confirmRequest struct {
	Code string `json:"code" binding:"required,len=4,numeric"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=4,max=64"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	code, err := h.confirmationService.IssueCode(user.ID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if h.mailer != nil {
		h.mailer.SendConfirmationCode(user.Email, code)
	}

	tokens, err := h.authService.GenerateTokenPair(user)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	log.Printf("Registered user %s (id %d)", user.Username, user.ID)
	c.JSON(http.StatusCreated, gin.H{
		"user":          user,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, tokens, err := h.authService.Login(&req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	access, err := h.authService.Refresh(req.Refresh)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access})
}

// ConfirmUser consumes a confirmation code for the authenticated user and
// hands back a fresh token pair once the account is verified.
func (h *AuthHandler) ConfirmUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.confirmationService.VerifyCode(userID, req.Code); err != nil {
		respondDomainError(c, err)
		return
	}

	user, err := h.authService.GetProfile(userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	tokens, err := h.authService.GenerateTokenPair(user)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "Success",
		"message":       "Account verified",
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Success", "message": "Password changed"})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetProfile(userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.UpdateProfile(userID, &req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
