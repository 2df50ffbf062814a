package service

import (
	"context"
	"fmt"

	"bucks/config"
	"bucks/events"
	"bucks/models"
)

type ledgerService struct {
	uowFactory UnitOfWorkFactory
	guard      *Guard
}

// NewLedgerService creates a new ledger service
func NewLedgerService(uowFactory UnitOfWorkFactory, guard *Guard) LedgerService {
	return &ledgerService{
		uowFactory: uowFactory,
		guard:      guard,
	}
}

func (s *ledgerService) OpenAccount(ctx context.Context, userID int64, username string) (*models.Account, error) {
	release, err := s.guard.Acquire(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	cfg := config.Get()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	existing, err := uow.AccountRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for account: %w", err)
	}
	if existing != nil {
		return nil, ErrAccountExists
	}

	account, err := uow.AccountRepository().Create(ctx, userID, username, cfg.StartingWallet)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	history := &models.BalanceHistory{
		UserID:       userID,
		WalletBefore: 0,
		WalletAfter:  account.Wallet,
		BankBefore:   0,
		BankAfter:    0,
		ChangeAmount: account.Wallet,
		Category:     models.CategoryOpen,
		Metadata: map[string]any{
			"username": username,
		},
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.AccountOpenedEvent{
		UserID:         userID,
		Username:       username,
		StartingWallet: account.Wallet,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return account, nil
}

func (s *ledgerService) Balance(ctx context.Context, userID int64) (*models.Account, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, ErrNoAccount
	}
	return account, nil
}

func (s *ledgerService) Deposit(ctx context.Context, userID int64, amount string) (int64, error) {
	return s.move(ctx, userID, amount, models.CategoryDeposit)
}

func (s *ledgerService) Withdraw(ctx context.Context, userID int64, amount string) (int64, error) {
	return s.move(ctx, userID, amount, models.CategoryWithdraw)
}

// move shuffles funds between wallet and bank in the named direction
func (s *ledgerService) move(ctx context.Context, userID int64, amount string, category models.Category) (int64, error) {
	release, err := s.guard.Acquire(ctx, userID)
	if err != nil {
		return 0, err
	}
	defer release()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return 0, ErrNoAccount
	}

	reference := account.Wallet
	if category == models.CategoryWithdraw {
		reference = account.Bank
	}
	value, err := ParsePositiveAmount(amount, reference)
	if err != nil {
		return 0, err
	}

	history := &models.BalanceHistory{
		UserID:       userID,
		WalletBefore: account.Wallet,
		BankBefore:   account.Bank,
		Category:     category,
	}
	if category == models.CategoryDeposit {
		if err := uow.AccountRepository().Deposit(ctx, userID, value); err != nil {
			return 0, err
		}
		history.WalletAfter = account.Wallet - value
		history.BankAfter = account.Bank + value
		history.ChangeAmount = -value
	} else {
		if err := uow.AccountRepository().Withdraw(ctx, userID, value); err != nil {
			return 0, err
		}
		history.WalletAfter = account.Wallet + value
		history.BankAfter = account.Bank - value
		history.ChangeAmount = value
	}

	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return 0, err
	}
	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return value, nil
}

func (s *ledgerService) Transfer(ctx context.Context, fromID, toID int64, amount string) (*models.TransferResult, error) {
	if fromID == toID {
		return nil, fmt.Errorf("%w: cannot transfer to yourself", ErrInvalidInput)
	}

	release, err := s.guard.AcquirePair(ctx, fromID, toID)
	if err != nil {
		return nil, err
	}
	defer release()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	sender, err := uow.AccountRepository().GetByUserID(ctx, fromID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sender account: %w", err)
	}
	if sender == nil {
		return nil, ErrNoAccount
	}
	recipient, err := uow.AccountRepository().GetByUserID(ctx, toID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipient account: %w", err)
	}
	if recipient == nil {
		return nil, ErrNoAccount
	}

	value, err := ParsePositiveAmount(amount, sender.Wallet)
	if err != nil {
		return nil, err
	}

	if err := uow.AccountRepository().DeductWallet(ctx, fromID, value, false); err != nil {
		return nil, err
	}
	if err := uow.AccountRepository().AddWallet(ctx, toID, value, false); err != nil {
		return nil, err
	}

	outHistory := &models.BalanceHistory{
		UserID:       fromID,
		WalletBefore: sender.Wallet,
		WalletAfter:  sender.Wallet - value,
		BankBefore:   sender.Bank,
		BankAfter:    sender.Bank,
		ChangeAmount: -value,
		Category:     models.CategoryTransferOut,
		Metadata:     map[string]any{"recipient_id": toID},
	}
	if err := RecordBalanceChange(ctx, uow, outHistory); err != nil {
		return nil, err
	}

	inHistory := &models.BalanceHistory{
		UserID:       toID,
		WalletBefore: recipient.Wallet,
		WalletAfter:  recipient.Wallet + value,
		BankBefore:   recipient.Bank,
		BankAfter:    recipient.Bank,
		ChangeAmount: value,
		Category:     models.CategoryTransferIn,
		Metadata:     map[string]any{"sender_id": fromID},
	}
	if err := RecordBalanceChange(ctx, uow, inHistory); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.TransferResult{
		Amount:        value,
		RecipientName: recipient.Username,
		NewWallet:     sender.Wallet - value,
	}, nil
}

func (s *ledgerService) Daily(ctx context.Context, userID int64) (int64, error) {
	release, err := s.guard.Acquire(ctx, userID)
	if err != nil {
		return 0, err
	}
	defer release()

	cfg := config.Get()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().GetByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return 0, ErrNoAccount
	}

	claimed, err := uow.AccountRepository().ClaimDaily(ctx, userID, cfg.DailyReward, cfg.DailyInterval)
	if err != nil {
		return 0, fmt.Errorf("failed to claim daily reward: %w", err)
	}
	if !claimed {
		return 0, ErrDailyClaimed
	}

	history := &models.BalanceHistory{
		UserID:       userID,
		WalletBefore: account.Wallet,
		WalletAfter:  account.Wallet + cfg.DailyReward,
		BankBefore:   account.Bank,
		BankAfter:    account.Bank,
		ChangeAmount: cfg.DailyReward,
		Category:     models.CategoryDaily,
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return cfg.DailyReward, nil
}

func (s *ledgerService) Top(ctx context.Context, limit int) ([]*models.Account, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	accounts, err := uow.AccountRepository().Top(ctx, limit)
	if err != nil {
		return nil, err
	}
	return accounts, nil
}
