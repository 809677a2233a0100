package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quizshop/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenDuration  = 15 * time.Minute
	refreshTokenDuration = 7 * 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountInactive    = errors.New("user account is inactive")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidToken       = errors.New("invalid refresh token")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSamePassword       = errors.New("new password cannot be the same as the current password")
)

type AuthService struct {
	db        *gorm.DB
	redis     *redis.Client
	jwtSecret string
}

func NewAuthService(db *gorm.DB, redisClient *redis.Client, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		redis:     redisClient,
		jwtSecret: jwtSecret,
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=4,max=64"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Username    *string    `json:"username"`
	Email       *string    `json:"email"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	About       *string    `json:"about"`
	ImageURL    *string    `json:"image_url"`
	Level       *string    `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	var existing models.User
	err := s.db.Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Level:        models.LevelBeginner,
		Verified:     false,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *AuthService) Login(req *LoginRequest) (*models.User, *TokenPair, error) {
	var user models.User
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !user.Verified {
		return nil, nil, ErrAccountInactive
	}

	tokens, err := s.GenerateTokenPair(&user)
	if err != nil {
		return nil, nil, err
	}

	return &user, tokens, nil
}

// Refresh exchanges a valid refresh token for a new access token. Refresh
// tokens issued before the user's last password change are rejected.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return "", ErrInvalidToken
	}
	if claims["token_type"] != "refresh" {
		return "", ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return "", ErrInvalidToken
	}

	issuedAt, ok := claims["iat"].(float64)
	if !ok {
		return "", ErrInvalidToken
	}
	if revokedAt, err := s.revocationWatermark(uint(userID)); err == nil && refreshRevoked(int64(issuedAt), revokedAt) {
		return "", ErrInvalidToken
	}

	var user models.User
	if err := s.db.First(&user, uint(userID)).Error; err != nil {
		return "", ErrInvalidToken
	}

	return s.signToken(&user, "access", accessTokenDuration)
}

func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}
	if currentPassword == newPassword {
		return ErrSamePassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	if err := s.db.Save(&user).Error; err != nil {
		return err
	}

	// Invalidate refresh tokens issued before this moment.
	if s.redis != nil {
		key := fmt.Sprintf("pwchange:%d", userID)
		if err := s.redis.Set(context.Background(), key, time.Now().Unix(), refreshTokenDuration).Err(); err != nil {
			return err
		}
	}

	return nil
}

func (s *AuthService) GetProfile(userID uint) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Gifts").First(&user, userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	// Write only the submitted profile columns; a whole-row save here could
	// clobber a balance debit committed by a concurrent purchase.
	updates := map[string]interface{}{}
	if req.Username != nil && *req.Username != user.Username {
		var existing models.User
		err := s.db.Where("username = ? AND id <> ?", *req.Username, userID).First(&existing).Error
		if err == nil {
			return nil, ErrUsernameTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		updates["username"] = *req.Username
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.DateOfBirth != nil {
		updates["date_of_birth"] = *req.DateOfBirth
	}
	if req.About != nil {
		updates["about"] = *req.About
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Level != nil {
		updates["level"] = *req.Level
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.GetProfile(userID)
}

func (s *AuthService) GenerateTokenPair(user *models.User) (*TokenPair, error) {
	access, err := s.signToken(user, "access", accessTokenDuration)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(user, "refresh", refreshTokenDuration)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) signToken(user *models.User, tokenType string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"role":       user.Role,
		"token_type": tokenType,
		"iat":        now.Unix(),
		"exp":        now.Add(duration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// refreshRevoked reports whether a refresh token issued at issuedAt is
// invalidated by a password change at revokedAt. A token from the same
// second as the change counts as revoked.
func refreshRevoked(issuedAt, revokedAt int64) bool {
	return issuedAt <= revokedAt
}

func (s *AuthService) revocationWatermark(userID uint) (int64, error) {
	if s.redis == nil {
		return 0, redis.Nil
	}
	key := fmt.Sprintf("pwchange:%d", userID)
	return s.redis.Get(context.Background(), key).Int64()
}
