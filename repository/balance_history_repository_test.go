package repository

import (
	"context"
	"testing"

	"bucks/models"
	"bucks/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceHistoryRepository_RecordAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accounts := NewAccountRepository(testDB.DB)
	repo := NewBalanceHistoryRepository(testDB.DB)
	ctx := context.Background()

	_, err := accounts.Create(ctx, 1001, "alice", 1000)
	require.NoError(t, err)

	t.Run("record assigns id and timestamp", func(t *testing.T) {
		entry := testutil.CreateTestBalanceHistory(1001, models.CategoryStake)
		err := repo.Record(ctx, entry)
		require.NoError(t, err)
		assert.NotZero(t, entry.ID)
		assert.False(t, entry.CreatedAt.IsZero())
	})

	t.Run("metadata round trips", func(t *testing.T) {
		entry := testutil.CreateTestBalanceHistory(1001, models.CategoryPayout)
		entry.Metadata = map[string]interface{}{
			"game":       "crash",
			"multiplier": 2.5,
		}
		err := repo.Record(ctx, entry)
		require.NoError(t, err)

		entries, err := repo.GetByUser(ctx, 1001, 10)
		require.NoError(t, err)
		require.NotEmpty(t, entries)
		latest := entries[0]
		assert.Equal(t, models.CategoryPayout, latest.Category)
		assert.Equal(t, "crash", latest.Metadata["game"])
		assert.Equal(t, 2.5, latest.Metadata["multiplier"])
	})

	t.Run("limit and ordering", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			entry := testutil.CreateTestBalanceHistory(1001, models.CategoryDeposit)
			require.NoError(t, repo.Record(ctx, entry))
		}

		entries, err := repo.GetByUser(ctx, 1001, 3)
		require.NoError(t, err)
		assert.Len(t, entries, 3)
		// most recent first
		assert.Equal(t, models.CategoryDeposit, entries[0].Category)
	})

	t.Run("unknown user yields nothing", func(t *testing.T) {
		entries, err := repo.GetByUser(ctx, 404, 10)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
