package repository

import (
	"context"
	"testing"

	"bucks/models"
	"bucks/repository/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStakeRepository_Lifecycle(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	accounts := NewAccountRepository(testDB.DB)
	repo := NewStakeRepository(testDB.DB)
	ctx := context.Background()

	_, err := accounts.Create(ctx, 1001, "alice", 1000)
	require.NoError(t, err)

	t.Run("create and list", func(t *testing.T) {
		stake := testutil.CreateTestStake(1001, models.GameCrash, 250)
		err := repo.Create(ctx, stake)
		require.NoError(t, err)
		assert.False(t, stake.CreatedAt.IsZero())

		stakes, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, stakes, 1)
		assert.Equal(t, stake.SessionID, stakes[0].SessionID)
		assert.Equal(t, int64(250), stakes[0].Amount)
		assert.Equal(t, models.GameCrash, stakes[0].Game)
	})

	t.Run("one stake per user and game", func(t *testing.T) {
		dup := testutil.CreateTestStake(1001, models.GameCrash, 100)
		err := repo.Create(ctx, dup)
		assert.Error(t, err)
	})

	t.Run("same user different game is fine", func(t *testing.T) {
		stake := testutil.CreateTestStake(1001, models.GameLadder, 100)
		err := repo.Create(ctx, stake)
		require.NoError(t, err)
	})

	t.Run("delete settles the stake", func(t *testing.T) {
		stakes, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, stakes, 2)

		err = repo.Delete(ctx, stakes[0].SessionID)
		require.NoError(t, err)

		remaining, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, remaining, 1)
	})

	t.Run("delete unknown session fails", func(t *testing.T) {
		err := repo.Delete(ctx, uuid.New())
		assert.Error(t, err)
	})
}
