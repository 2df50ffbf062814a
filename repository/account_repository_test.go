package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bucks/models"
	"bucks/repository/testutil"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	t.Run("missing account returns nil", func(t *testing.T) {
		account, err := repo.GetByUserID(ctx, 404)
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("create and retrieve", func(t *testing.T) {
		created, err := repo.Create(ctx, 1001, "alice", 200)
		require.NoError(t, err)
		assert.Equal(t, int64(200), created.Wallet)
		assert.Equal(t, int64(0), created.Bank)
		assert.Nil(t, created.LastDaily)

		account, err := repo.GetByUserID(ctx, 1001)
		require.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, "alice", account.Username)
		assert.Equal(t, int64(200), account.Wallet)
	})

	t.Run("duplicate create fails", func(t *testing.T) {
		_, err := repo.Create(ctx, 1001, "alice", 200)
		assert.Error(t, err)
	})
}

func TestAccountRepository_WalletMutations(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, 2001, "bob", 1000)
	require.NoError(t, err)

	t.Run("add wallet", func(t *testing.T) {
		err := repo.AddWallet(ctx, 2001, 500, false)
		require.NoError(t, err)

		account, err := repo.GetByUserID(ctx, 2001)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), account.Wallet)
		assert.Equal(t, int64(0), account.Earnings)
	})

	t.Run("add wallet with earnings", func(t *testing.T) {
		err := repo.AddWallet(ctx, 2001, 300, true)
		require.NoError(t, err)

		account, err := repo.GetByUserID(ctx, 2001)
		require.NoError(t, err)
		assert.Equal(t, int64(1800), account.Wallet)
		assert.Equal(t, int64(300), account.Earnings)
	})

	t.Run("deduct wallet with earnings", func(t *testing.T) {
		err := repo.DeductWallet(ctx, 2001, 800, true)
		require.NoError(t, err)

		account, err := repo.GetByUserID(ctx, 2001)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), account.Wallet)
		assert.Equal(t, int64(-500), account.Earnings)
	})

	t.Run("deduct beyond balance fails", func(t *testing.T) {
		err := repo.DeductWallet(ctx, 2001, 5000, false)
		assert.ErrorIs(t, err, models.ErrInsufficientFunds)

		account, err := repo.GetByUserID(ctx, 2001)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), account.Wallet)
	})

	t.Run("deduct from missing account", func(t *testing.T) {
		err := repo.DeductWallet(ctx, 404, 100, false)
		assert.ErrorIs(t, err, models.ErrAccountNotFound)
	})
}

func TestAccountRepository_ConcurrentDeducts(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, 3001, "carol", 1000)
	require.NoError(t, err)

	// Two debits of 600 against a wallet of 1000: the conditional update
	// must let exactly one through.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.DeductWallet(ctx, 3001, 600, false)
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, models.ErrInsufficientFunds)
			failures++
		}
	}
	assert.Equal(t, 1, failures)

	account, err := repo.GetByUserID(ctx, 3001)
	require.NoError(t, err)
	assert.Equal(t, int64(400), account.Wallet)
}

func TestAccountRepository_TransactionRollback(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, 3501, "ivan", 1000)
	require.NoError(t, err)

	sentinel := errors.New("late failure")
	err = testDB.DB.WithTransaction(ctx, func(tx pgx.Tx) error {
		txRepo := newAccountRepositoryWithTx(tx)
		if err := txRepo.DeductWallet(ctx, 3501, 600, false); err != nil {
			return err
		}
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	// the deduct must not survive the rollback
	account, err := repo.GetByUserID(ctx, 3501)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), account.Wallet)
}

func TestAccountRepository_DepositWithdraw(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, 4001, "dave", 1000)
	require.NoError(t, err)

	t.Run("deposit moves wallet to bank", func(t *testing.T) {
		err := repo.Deposit(ctx, 4001, 600)
		require.NoError(t, err)

		account, err := repo.GetByUserID(ctx, 4001)
		require.NoError(t, err)
		assert.Equal(t, int64(400), account.Wallet)
		assert.Equal(t, int64(600), account.Bank)
	})

	t.Run("deposit beyond wallet fails", func(t *testing.T) {
		err := repo.Deposit(ctx, 4001, 500)
		assert.ErrorIs(t, err, models.ErrInsufficientFunds)
	})

	t.Run("withdraw moves bank to wallet", func(t *testing.T) {
		err := repo.Withdraw(ctx, 4001, 100)
		require.NoError(t, err)

		account, err := repo.GetByUserID(ctx, 4001)
		require.NoError(t, err)
		assert.Equal(t, int64(500), account.Wallet)
		assert.Equal(t, int64(500), account.Bank)
	})

	t.Run("withdraw beyond bank fails", func(t *testing.T) {
		err := repo.Withdraw(ctx, 4001, 501)
		assert.ErrorIs(t, err, models.ErrInsufficientFunds)
	})
}

func TestAccountRepository_ClaimDaily(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, 5001, "erin", 0)
	require.NoError(t, err)

	t.Run("first claim succeeds", func(t *testing.T) {
		claimed, err := repo.ClaimDaily(ctx, 5001, 1000, 24*time.Hour)
		require.NoError(t, err)
		assert.True(t, claimed)

		account, err := repo.GetByUserID(ctx, 5001)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), account.Wallet)
		assert.Equal(t, int64(1000), account.Earnings)
		require.NotNil(t, account.LastDaily)
	})

	t.Run("second claim within interval is refused", func(t *testing.T) {
		claimed, err := repo.ClaimDaily(ctx, 5001, 1000, 24*time.Hour)
		require.NoError(t, err)
		assert.False(t, claimed)

		account, err := repo.GetByUserID(ctx, 5001)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), account.Wallet)
	})

	t.Run("claim after interval succeeds", func(t *testing.T) {
		claimed, err := repo.ClaimDaily(ctx, 5001, 1000, time.Millisecond)
		require.NoError(t, err)
		assert.True(t, claimed)
	})
}

func TestAccountRepository_RecordOutcome(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, 6001, "finn", 0)
	require.NoError(t, err)

	require.NoError(t, repo.RecordOutcome(ctx, 6001, true))
	require.NoError(t, repo.RecordOutcome(ctx, 6001, false))
	require.NoError(t, repo.RecordOutcome(ctx, 6001, true))

	account, err := repo.GetByUserID(ctx, 6001)
	require.NoError(t, err)
	assert.Equal(t, int64(2), account.Wins)
	assert.Equal(t, int64(3), account.TotalWagers)
}

func TestAccountRepository_Top(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAccountRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, 7001, "gwen", 500)
	require.NoError(t, err)
	_, err = repo.Create(ctx, 7002, "hugo", 2000)
	require.NoError(t, err)
	_, err = repo.Create(ctx, 7003, "iris", 100)
	require.NoError(t, err)

	// bank counts toward the ranking
	require.NoError(t, repo.AddWallet(ctx, 7003, 5000, false))
	require.NoError(t, repo.Deposit(ctx, 7003, 4000))

	top, err := repo.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, int64(7003), top[0].UserID)
	assert.Equal(t, int64(7002), top[1].UserID)
}
