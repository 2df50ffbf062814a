package service

import (
	"context"
	"time"

	"bucks/events"
	"bucks/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByUserID(ctx context.Context, userID int64) (*models.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, userID int64, username string, startingWallet int64) (*models.Account, error) {
	args := m.Called(ctx, userID, username, startingWallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) AddWallet(ctx context.Context, userID int64, amount int64, earn bool) error {
	args := m.Called(ctx, userID, amount, earn)
	return args.Error(0)
}

func (m *MockAccountRepository) DeductWallet(ctx context.Context, userID int64, amount int64, earn bool) error {
	args := m.Called(ctx, userID, amount, earn)
	return args.Error(0)
}

func (m *MockAccountRepository) Deposit(ctx context.Context, userID int64, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockAccountRepository) Withdraw(ctx context.Context, userID int64, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockAccountRepository) RecordOutcome(ctx context.Context, userID int64, won bool) error {
	args := m.Called(ctx, userID, won)
	return args.Error(0)
}

func (m *MockAccountRepository) ClaimDaily(ctx context.Context, userID int64, amount int64, interval time.Duration) (bool, error) {
	args := m.Called(ctx, userID, amount, interval)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) Top(ctx context.Context, limit int) ([]*models.Account, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

// MockBalanceHistoryRepository is a mock implementation of BalanceHistoryRepository
type MockBalanceHistoryRepository struct {
	mock.Mock
}

func (m *MockBalanceHistoryRepository) Record(ctx context.Context, history *models.BalanceHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockBalanceHistoryRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.BalanceHistory, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BalanceHistory), args.Error(1)
}

// MockStakeRepository is a mock implementation of StakeRepository
type MockStakeRepository struct {
	mock.Mock
}

func (m *MockStakeRepository) Create(ctx context.Context, stake *models.SessionStake) error {
	args := m.Called(ctx, stake)
	return args.Error(0)
}

func (m *MockStakeRepository) Delete(ctx context.Context, sessionID uuid.UUID) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockStakeRepository) List(ctx context.Context) ([]*models.SessionStake, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SessionStake), args.Error(1)
}

// MockBoostRepository is a mock implementation of BoostRepository
type MockBoostRepository struct {
	mock.Mock
}

func (m *MockBoostRepository) ActiveBoost(ctx context.Context, userID int64, game models.Game) (*models.Boost, error) {
	args := m.Called(ctx, userID, game)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Boost), args.Error(1)
}

func (m *MockBoostRepository) Grant(ctx context.Context, boost *models.Boost) error {
	args := m.Called(ctx, boost)
	return args.Error(0)
}

func (m *MockBoostRepository) DeleteExpired(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockEventPublisher records published events for assertions
type MockEventPublisher struct {
	Events []events.Event
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Events = append(m.Events, event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories are
// injected with SetRepositories; lifecycle calls go through the mock.
type MockUnitOfWork struct {
	mock.Mock

	accountRepo        AccountRepository
	balanceHistoryRepo BalanceHistoryRepository
	stakeRepo          StakeRepository
	boostRepo          BoostRepository
	publisher          *MockEventPublisher
}

// SetRepositories wires the repository mocks this unit of work hands out
func (m *MockUnitOfWork) SetRepositories(
	accounts AccountRepository,
	history BalanceHistoryRepository,
	stakes StakeRepository,
	boosts BoostRepository,
) {
	m.accountRepo = accounts
	m.balanceHistoryRepo = history
	m.stakeRepo = stakes
	m.boostRepo = boosts
	m.publisher = &MockEventPublisher{}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) AccountRepository() AccountRepository {
	return m.accountRepo
}

func (m *MockUnitOfWork) BalanceHistoryRepository() BalanceHistoryRepository {
	return m.balanceHistoryRepo
}

func (m *MockUnitOfWork) StakeRepository() StakeRepository {
	return m.stakeRepo
}

func (m *MockUnitOfWork) BoostRepository() BoostRepository {
	return m.boostRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.publisher
}

// PublishedEvents returns everything published through this unit of work
func (m *MockUnitOfWork) PublishedEvents() []events.Event {
	if m.publisher == nil {
		return nil
	}
	return m.publisher.Events
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}

// MockOddsService returns a fixed snapshot
type MockOddsService struct {
	mock.Mock
}

func (m *MockOddsService) Snapshot(ctx context.Context, userID int64, game models.Game) (models.OddsSnapshot, error) {
	args := m.Called(ctx, userID, game)
	return args.Get(0).(models.OddsSnapshot), args.Error(1)
}
