package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"quizshop/models"

	"gorm.io/gorm"
)

const (
	confirmationCodeLength = 4
	confirmationCodeTTL    = 5 * time.Minute
)

var ErrInvalidOrExpiredCode = errors.New("code is invalid or expired")

// ConfirmationService issues and checks single-use verification codes.
type ConfirmationService struct {
	db *gorm.DB
}

func NewConfirmationService(db *gorm.DB) *ConfirmationService {
	return &ConfirmationService{db: db}
}

// IssueCode creates a fresh confirmation record for the user and returns
// the code for out-of-band delivery. Previously issued codes stay valid
// until they expire or get used.
func (s *ConfirmationService) IssueCode(userID uint) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	confirmation := models.UserConfirmation{
		UserID:      userID,
		Code:        code,
		ExpireTime:  time.Now().Add(confirmationCodeTTL),
		IsConfirmed: false,
	}

	if err := s.db.Create(&confirmation).Error; err != nil {
		return "", err
	}

	return code, nil
}

// VerifyCode consumes a matching unconfirmed, unexpired code and marks the
// user verified. The update is conditional on the code still being live, so
// two concurrent attempts can never both consume it.
func (s *ConfirmationService) VerifyCode(userID uint, code string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.UserConfirmation{}).
			Where("user_id = ? AND code = ? AND is_confirmed = ? AND expire_time >= ?",
				userID, code, false, time.Now()).
			Update("is_confirmed", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Wrong, already used and expired codes are indistinguishable.
			return ErrInvalidOrExpiredCode
		}

		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("verified", true).Error
	})
}

// generateCode draws a uniform 4-digit code. Leading zeros and repeated
// codes across users are expected.
func generateCode() (string, error) {
	num, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", confirmationCodeLength, num.Int64()), nil
}
