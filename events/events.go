package events

import (
	"context"
	"sync"

	"bucks/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange  EventType = "balance_change"
	EventTypeAccountOpened  EventType = "account_opened"
	EventTypeSessionStarted EventType = "session_started"
	EventTypeSessionSettled EventType = "session_settled"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a ledger mutation that occurred
type BalanceChangeEvent struct {
	UserID       int64
	WalletBefore int64
	WalletAfter  int64
	Category     models.Category
	ChangeAmount int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// AccountOpenedEvent represents a new account creation
type AccountOpenedEvent struct {
	UserID         int64
	Username       string
	StartingWallet int64
}

func (e AccountOpenedEvent) Type() EventType {
	return EventTypeAccountOpened
}

// SessionStartedEvent represents a wager session that reserved its stake
type SessionStartedEvent struct {
	SessionID uuid.UUID
	UserID    int64
	Game      models.Game
	Stake     int64
}

func (e SessionStartedEvent) Type() EventType {
	return EventTypeSessionStarted
}

// SessionSettledEvent represents a wager session reaching a terminal state
type SessionSettledEvent struct {
	SessionID uuid.UUID
	UserID    int64
	Game      models.Game
	Stake     int64
	Payout    int64
	Outcome   string
}

func (e SessionSettledEvent) Type() EventType {
	return EventTypeSessionSettled
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking
	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus stashes events alongside a unit of work and flushes them
// to the real bus only after the database commit succeeds.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush is called after a successful DB commit. Events are emitted on a
// background context so they outlive the transaction's context.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	eventCtx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops pending events after a rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
