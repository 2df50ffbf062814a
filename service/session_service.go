package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bucks/config"
	"bucks/events"
	"bucks/games"
	"bucks/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type sessionKey struct {
	userID int64
	game   models.Game
}

// session is one live wager. The in-memory machine is authoritative for game
// state; the reserved stake is the only part of a running session that
// touches the database before settlement.
type session struct {
	mu      sync.Mutex
	id      uuid.UUID
	userID  int64
	game    models.Game
	stake   int64
	machine games.Machine

	settled bool
	// pending holds a settlement whose transaction failed, so the next
	// touch of the session can retry instead of losing the stake
	pending *games.Settlement

	inputTimer *time.Timer
	lifeTimer  *time.Timer
	tickStop   chan struct{}
	stopTick   sync.Once
}

// settleRetryInterval is how long a timer-driven session waits before
// retrying a settlement transaction that failed
const settleRetryInterval = 5 * time.Second

type sessionService struct {
	uowFactory UnitOfWorkFactory
	odds       OddsService
	guard      *Guard
	rng        games.Rand

	settleRetry time.Duration

	mu     sync.RWMutex
	byKey  map[sessionKey]*session
	byID   map[uuid.UUID]*session
	closed bool

	wg sync.WaitGroup
}

// NewSessionService creates the game session controller
func NewSessionService(uowFactory UnitOfWorkFactory, odds OddsService, guard *Guard, rng games.Rand) SessionService {
	return &sessionService{
		uowFactory:  uowFactory,
		odds:        odds,
		guard:       guard,
		rng:         rng,
		settleRetry: settleRetryInterval,
		byKey:       make(map[sessionKey]*session),
		byID:        make(map[uuid.UUID]*session),
	}
}

func (s *sessionService) Start(ctx context.Context, userID int64, game models.Game, stake string, opts games.StartOptions) (*games.Snapshot, error) {
	if !game.Valid() {
		return nil, fmt.Errorf("%w: unknown game %q", ErrInvalidInput, game)
	}

	release, err := s.guard.Acquire(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	s.mu.RLock()
	_, active := s.byKey[sessionKey{userID, game}]
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return nil, fmt.Errorf("session controller is shut down")
	}
	if active {
		return nil, ErrAlreadyActive
	}

	cfg := config.Get()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	account, err := uow.AccountRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, ErrNoAccount
	}

	amount, err := ResolveStake(stake, account.Wallet, cfg.MaxStake)
	if err != nil {
		return nil, err
	}

	odds, err := s.odds.Snapshot(ctx, userID, game)
	if err != nil {
		return nil, err
	}

	machine, err := games.New(game, amount, odds, opts, s.rng)
	if err != nil {
		return nil, mapGameError(err)
	}

	sess := &session{
		id:      uuid.New(),
		userID:  userID,
		game:    game,
		stake:   amount,
		machine: machine,
	}

	// Reserve the stake: debit, stake row and audit entry commit together,
	// so a crash between here and settlement leaves a refundable row.
	if err := uow.AccountRepository().DeductWallet(ctx, userID, amount, true); err != nil {
		return nil, err
	}
	if err := uow.StakeRepository().Create(ctx, &models.SessionStake{
		SessionID: sess.id,
		UserID:    userID,
		Game:      game,
		Amount:    amount,
	}); err != nil {
		return nil, fmt.Errorf("failed to reserve stake: %w", err)
	}
	if err := RecordBalanceChange(ctx, uow, &models.BalanceHistory{
		UserID:       userID,
		WalletBefore: account.Wallet,
		WalletAfter:  account.Wallet - amount,
		BankBefore:   account.Bank,
		BankAfter:    account.Bank,
		ChangeAmount: -amount,
		Category:     models.CategoryStake,
		Metadata: map[string]any{
			"game":       string(game),
			"session_id": sess.id.String(),
		},
	}); err != nil {
		return nil, err
	}
	uow.EventBus().Publish(events.SessionStartedEvent{
		SessionID: sess.id,
		UserID:    userID,
		Game:      game,
		Stake:     amount,
	})
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.register(sess)

	log.WithFields(log.Fields{
		"sessionID": sess.id,
		"userID":    userID,
		"game":      game,
		"stake":     amount,
	}).Info("Wager session started")

	snap := machine.Snapshot()
	snap.SessionID = sess.id
	return &snap, nil
}

// register puts the session in the indexes and arms its timers
func (s *sessionService) register(sess *session) {
	cfg := config.Get()

	s.mu.Lock()
	s.byKey[sessionKey{sess.userID, sess.game}] = sess
	s.byID[sess.id] = sess
	s.mu.Unlock()

	sess.lifeTimer = time.AfterFunc(cfg.SessionTimeout, func() {
		s.expireAsync(sess.id)
	})

	if _, ok := sess.machine.(games.Ticker); ok {
		sess.tickStop = make(chan struct{})
		s.wg.Add(1)
		go s.runTicker(sess)
	} else {
		sess.inputTimer = time.AfterFunc(cfg.InputTimeout, func() {
			s.expireAsync(sess.id)
		})
	}
}

func (s *sessionService) expireAsync(id uuid.UUID) {
	if err := s.Expire(context.Background(), id); err != nil && !errors.Is(err, ErrSessionNotFound) {
		log.WithError(err).WithField("sessionID", id).Error("Failed to expire session")
	}
}

// runTicker drives a time-driven machine until it settles
func (s *sessionService) runTicker(sess *session) {
	defer s.wg.Done()
	ticker := time.NewTicker(config.Get().TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sess.tickStop:
			return
		case <-ticker.C:
			_, err := s.Tick(context.Background(), sess.id)
			if errors.Is(err, ErrSessionNotFound) {
				return
			}
			if err != nil {
				log.WithError(err).WithField("sessionID", sess.id).Error("Session tick failed")
			}
		}
	}
}

func (s *sessionService) lookup(id uuid.UUID) (*session, error) {
	s.mu.RLock()
	sess, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *sessionService) Input(ctx context.Context, sessionID uuid.UUID, in games.Input) (*games.Snapshot, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.settled {
		return nil, ErrSessionNotFound
	}
	if sess.pending != nil {
		// a previous settlement transaction failed; finish it first
		if err := s.persistSettlement(ctx, sess); err != nil {
			return nil, err
		}
		return s.snapshotLocked(sess), nil
	}

	result, err := sess.machine.Advance(in, s.rng)
	if err != nil {
		return nil, mapGameError(err)
	}

	if result.Done {
		sess.pending = &result.Settlement
		if err := s.persistSettlement(ctx, sess); err != nil {
			return nil, err
		}
	} else if sess.inputTimer != nil {
		sess.inputTimer.Reset(config.Get().InputTimeout)
	}

	return s.snapshotLocked(sess), nil
}

func (s *sessionService) Tick(ctx context.Context, sessionID uuid.UUID) (*games.Snapshot, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.settled {
		return nil, ErrSessionNotFound
	}
	ticker, ok := sess.machine.(games.Ticker)
	if !ok {
		return nil, fmt.Errorf("%w: game is not time-driven", ErrInvalidAction)
	}
	if sess.pending != nil {
		if err := s.persistSettlement(ctx, sess); err != nil {
			return nil, err
		}
		return s.snapshotLocked(sess), nil
	}

	result, err := ticker.Tick(s.rng)
	if err != nil {
		return nil, mapGameError(err)
	}
	if result.Done {
		sess.pending = &result.Settlement
		if err := s.persistSettlement(ctx, sess); err != nil {
			return nil, err
		}
	}
	return s.snapshotLocked(sess), nil
}

func (s *sessionService) Expire(ctx context.Context, sessionID uuid.UUID) error {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.settled {
		return nil
	}
	if sess.pending != nil {
		if err := s.persistSettlement(ctx, sess); err != nil {
			s.armSettleRetry(sess)
			return err
		}
		return nil
	}

	policy := sess.machine.Timeout()
	var settlement games.Settlement
	switch policy.Kind {
	case games.TimeoutRefund:
		settlement = games.Settlement{
			Kind:    games.SettleRefund,
			Payout:  sess.stake,
			Outcome: games.OutcomeRefunded,
		}
	case games.TimeoutForfeit:
		settlement = games.Settlement{Kind: games.SettleForfeit, Outcome: games.OutcomeLose}
	case games.TimeoutImplicit:
		result, err := sess.machine.Advance(policy.Action, s.rng)
		if err != nil {
			return mapGameError(err)
		}
		if !result.Done {
			if sess.inputTimer != nil {
				sess.inputTimer.Reset(config.Get().InputTimeout)
			}
			return nil
		}
		settlement = result.Settlement
	}

	log.WithFields(log.Fields{
		"sessionID": sess.id,
		"game":      sess.game,
		"outcome":   settlement.Outcome,
	}).Info("Session expired")

	sess.pending = &settlement
	if err := s.persistSettlement(ctx, sess); err != nil {
		s.armSettleRetry(sess)
		return err
	}
	return nil
}

// armSettleRetry re-arms the already-fired life timer so a settlement whose
// transaction failed is retried without waiting for an interaction that may
// never come. Called with sess.mu held.
func (s *sessionService) armSettleRetry(sess *session) {
	if sess.lifeTimer != nil {
		sess.lifeTimer.Reset(s.settleRetry)
	}
}

// persistSettlement writes the terminal ledger instruction in one
// transaction: the stake row goes, any credit lands, the counters move and
// the audit entry is written. Called with sess.mu held. The user's guard
// lease serializes the credit against concurrent ledger operations; none of
// the callers hold it.
func (s *sessionService) persistSettlement(ctx context.Context, sess *session) error {
	settlement := *sess.pending

	release, err := s.guard.Acquire(ctx, sess.userID)
	if err != nil {
		return err
	}
	defer release()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.StakeRepository().Delete(ctx, sess.id); err != nil {
		return err
	}

	if settlement.Payout > 0 {
		account, err := uow.AccountRepository().GetByUserID(ctx, sess.userID)
		if err != nil {
			return fmt.Errorf("failed to get account: %w", err)
		}
		if account == nil {
			return ErrNoAccount
		}

		// Refund credits restore earnings exactly because the stake debit
		// counted against them.
		if err := uow.AccountRepository().AddWallet(ctx, sess.userID, settlement.Payout, true); err != nil {
			return err
		}

		category := models.CategoryPayout
		if settlement.Kind == games.SettleRefund {
			category = models.CategoryRefund
		}
		if err := RecordBalanceChange(ctx, uow, &models.BalanceHistory{
			UserID:       sess.userID,
			WalletBefore: account.Wallet,
			WalletAfter:  account.Wallet + settlement.Payout,
			BankBefore:   account.Bank,
			BankAfter:    account.Bank,
			ChangeAmount: settlement.Payout,
			Category:     category,
			Metadata: map[string]any{
				"game":       string(sess.game),
				"session_id": sess.id.String(),
				"outcome":    string(settlement.Outcome),
			},
		}); err != nil {
			return err
		}
	}

	// Refunds are neither wins nor losses
	if settlement.Kind != games.SettleRefund {
		won := settlement.Kind == games.SettlePayout
		if err := uow.AccountRepository().RecordOutcome(ctx, sess.userID, won); err != nil {
			return err
		}
	}

	uow.EventBus().Publish(events.SessionSettledEvent{
		SessionID: sess.id,
		UserID:    sess.userID,
		Game:      sess.game,
		Stake:     sess.stake,
		Payout:    settlement.Payout,
		Outcome:   string(settlement.Outcome),
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit settlement: %w", err)
	}

	sess.settled = true
	sess.pending = nil
	if sess.inputTimer != nil {
		sess.inputTimer.Stop()
	}
	if sess.lifeTimer != nil {
		sess.lifeTimer.Stop()
	}
	if sess.tickStop != nil {
		sess.stopTick.Do(func() { close(sess.tickStop) })
	}

	s.mu.Lock()
	delete(s.byKey, sessionKey{sess.userID, sess.game})
	delete(s.byID, sess.id)
	s.mu.Unlock()

	return nil
}

// snapshotLocked renders the session with its handle. Called with sess.mu held.
func (s *sessionService) snapshotLocked(sess *session) *games.Snapshot {
	snap := sess.machine.Snapshot()
	snap.SessionID = sess.id
	return &snap
}

func (s *sessionService) ActiveSession(userID int64, game models.Game) *games.Snapshot {
	s.mu.RLock()
	sess := s.byKey[sessionKey{userID, game}]
	s.mu.RUnlock()
	if sess == nil {
		return nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.settled {
		return nil
	}
	return s.snapshotLocked(sess)
}

func (s *sessionService) RefundOrphanedStakes(ctx context.Context) (int, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	stakes, err := uow.StakeRepository().List(ctx)
	if err != nil {
		return 0, err
	}

	for _, stake := range stakes {
		account, err := uow.AccountRepository().GetByUserID(ctx, stake.UserID)
		if err != nil {
			return 0, fmt.Errorf("failed to get account: %w", err)
		}
		if account == nil {
			// the account row is gone; drop the stake rather than block startup
			log.WithField("sessionID", stake.SessionID).Warn("Orphaned stake without account")
		} else {
			if err := uow.AccountRepository().AddWallet(ctx, stake.UserID, stake.Amount, true); err != nil {
				return 0, err
			}
			if err := RecordBalanceChange(ctx, uow, &models.BalanceHistory{
				UserID:       stake.UserID,
				WalletBefore: account.Wallet,
				WalletAfter:  account.Wallet + stake.Amount,
				BankBefore:   account.Bank,
				BankAfter:    account.Bank,
				ChangeAmount: stake.Amount,
				Category:     models.CategoryRefund,
				Metadata: map[string]any{
					"game":       string(stake.Game),
					"session_id": stake.SessionID.String(),
					"orphaned":   true,
				},
			}); err != nil {
				return 0, err
			}
		}
		if err := uow.StakeRepository().Delete(ctx, stake.SessionID); err != nil {
			return 0, err
		}
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if len(stakes) > 0 {
		log.WithField("count", len(stakes)).Info("Refunded orphaned stakes")
	}
	return len(stakes), nil
}

func (s *sessionService) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	ids := make([]uuid.UUID, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	var firstErr error
	for _, id := range ids {
		if err := s.Expire(ctx, id); err != nil && !errors.Is(err, ErrSessionNotFound) {
			if firstErr == nil {
				firstErr = err
			}
			log.WithError(err).WithField("sessionID", id).Error("Failed to close session")
		}
	}

	s.wg.Wait()
	return firstErr
}

// mapGameError converts machine-level complaints into the controller's
// error kinds; anything else passes through untouched
func mapGameError(err error) error {
	switch {
	case errors.Is(err, games.ErrNotRunning),
		errors.Is(err, games.ErrBadAction),
		errors.Is(err, games.ErrBadTile):
		return fmt.Errorf("%w: %s", ErrInvalidAction, err)
	}
	return err
}
