package games

import (
	"errors"

	"bucks/models"

	"github.com/google/uuid"
)

// Rand is the randomness source injected into every machine. Production uses
// a locked math/rand; tests substitute scripted values.
type Rand interface {
	// Float64 returns a uniform sample in [0, 1)
	Float64() float64
	// Intn returns a uniform sample in [0, n)
	Intn(n int) int
}

// Machine errors. These are normal consequences of player input; the session
// controller maps them onto its own error kinds.
var (
	ErrNotRunning = errors.New("game already settled")
	ErrBadAction  = errors.New("action not available in this state")
	ErrBadTile    = errors.New("tile out of range or already revealed")
)

// Action names a player-initiated transition
type Action string

const (
	ActionResolve Action = "resolve"
	ActionHit     Action = "hit"
	ActionStand   Action = "stand"
	ActionCashOut Action = "cashout"
	ActionExit    Action = "exit"
	ActionClimb   Action = "climb"
	ActionCollect Action = "collect"
	ActionReveal  Action = "reveal"
)

// Input is one player action routed to a machine. Tile carries the target
// index for reveal actions and is ignored otherwise.
type Input struct {
	Action Action
	Tile   int
}

// StartOptions carries per-game creation parameters
type StartOptions struct {
	// Choice is the called coin side ("heads" or "tails")
	Choice string
	// Bombs is the requested bomb count; 0 means the default
	Bombs int
}

// Outcome names the terminal result of a session
type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeLose      Outcome = "lose"
	OutcomePush      Outcome = "push"
	OutcomeCashedOut Outcome = "cashed_out"
	OutcomeExited    Outcome = "exited"
	OutcomeCrashed   Outcome = "crashed"
	OutcomeCollected Outcome = "collected"
	OutcomeCleared   Outcome = "cleared"
	OutcomeDetonated Outcome = "detonated"
	OutcomeRefunded  Outcome = "refunded"
)

// SettleKind distinguishes the three terminal ledger instructions
type SettleKind int

const (
	// SettleForfeit keeps the reserved stake; no credit is issued
	SettleForfeit SettleKind = iota
	// SettleRefund returns the stake in full
	SettleRefund
	// SettlePayout credits winnings
	SettlePayout
)

// Settlement is the single ledger instruction emitted by a terminal
// transition. Payout is the credited amount: winnings for SettlePayout, the
// stake for SettleRefund, zero for SettleForfeit.
type Settlement struct {
	Kind    SettleKind
	Payout  int64
	Outcome Outcome
}

// Result is returned by Advance and Tick. Settlement is meaningful only when
// Done is true.
type Result struct {
	Done       bool
	Settlement Settlement
}

// TimeoutKind names the declared timeout policies
type TimeoutKind int

const (
	// TimeoutRefund returns the stake when the deadline passes
	TimeoutRefund TimeoutKind = iota
	// TimeoutForfeit keeps the stake
	TimeoutForfeit
	// TimeoutImplicit applies a default action instead
	TimeoutImplicit
)

// TimeoutPolicy is the machine's declared behavior for an elapsed deadline
// in its current state. Action is set for TimeoutImplicit.
type TimeoutPolicy struct {
	Kind   TimeoutKind
	Action Input
}

// Machine is one game family's state machine. Machines are pure state: all
// randomness comes through the injected Rand and all money movement happens
// in the session controller from the returned Settlement.
type Machine interface {
	Game() models.Game

	// Advance applies a player action and returns the resulting transition
	Advance(in Input, rng Rand) (Result, error)

	// Snapshot returns the observable state for rendering
	Snapshot() Snapshot

	// Timeout declares what happens when the current state's deadline passes
	Timeout() TimeoutPolicy
}

// Ticker is implemented by time-driven machines that evolve between player
// inputs (crash).
type Ticker interface {
	Machine

	// Tick advances the machine by one scheduler step
	Tick(rng Rand) (Result, error)
}

// payout computes stake times multiplier, truncated the way every game in
// the house rounds: down.
func payout(stake int64, multiplier float64) int64 {
	return int64(float64(stake) * multiplier)
}

// Snapshot is the observable state handed to the presentation surface. The
// per-game view pointers are populated for the matching family only; the
// renderer holds no game logic.
type Snapshot struct {
	SessionID uuid.UUID
	Game      models.Game
	Stake     int64
	Done      bool
	Outcome   Outcome
	Payout    int64
	Actions   []Action

	Coinflip  *CoinflipView
	Dice      *DiceView
	Blackjack *BlackjackView
	Crash     *CrashView
	Ladder    *LadderView
	Bombs     *BombsView
	Scratch   *ScratchView
}
