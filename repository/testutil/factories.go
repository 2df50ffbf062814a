package testutil

import (
	"time"

	"bucks/models"

	"github.com/google/uuid"
)

// CreateTestAccount creates a test account with default values
func CreateTestAccount(userID int64, username string) *models.Account {
	now := time.Now()
	return &models.Account{
		UserID:    userID,
		Username:  username,
		Wallet:    100000,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTestBalanceHistory creates a test balance history entry
func CreateTestBalanceHistory(userID int64, category models.Category) *models.BalanceHistory {
	return &models.BalanceHistory{
		UserID:       userID,
		WalletBefore: 100000,
		WalletAfter:  90000,
		ChangeAmount: -10000,
		Category:     category,
		Metadata: map[string]interface{}{
			"test": true,
		},
		CreatedAt: time.Now(),
	}
}

// CreateTestStake creates a test session stake
func CreateTestStake(userID int64, game models.Game, amount int64) *models.SessionStake {
	return &models.SessionStake{
		SessionID: uuid.New(),
		UserID:    userID,
		Game:      game,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
}

// CreateTestBoost creates an unexpired test boost
func CreateTestBoost(userID int64, game models.Game, multiplier float64) *models.Boost {
	return &models.Boost{
		UserID:     userID,
		Game:       game,
		Multiplier: multiplier,
		ExpiresAt:  time.Now().Add(time.Hour),
		CreatedAt:  time.Now(),
	}
}
