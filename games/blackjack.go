package games

import (
	"fmt"

	"bucks/models"
)

var (
	cardRanks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
	cardSuits = []string{"♠", "♥", "♦", "♣"}
)

// Card is one dealt card. Cards are drawn with replacement; there is no
// shared shoe between hands.
type Card struct {
	Rank string
	Suit string
}

func (c Card) String() string { return c.Rank + c.Suit }

// value returns the card's face value with aces counted high
func (c Card) value() int {
	switch c.Rank {
	case "A":
		return 11
	case "J", "Q", "K":
		return 10
	case "10":
		return 10
	default:
		return int(c.Rank[0] - '0')
	}
}

// HandTotal scores a hand, downgrading aces from 11 to 1 one at a time while
// the total busts.
func HandTotal(cards []Card) int {
	total := 0
	aces := 0
	for _, c := range cards {
		total += c.value()
		if c.Rank == "A" {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

const (
	// blackjackMaxDecisions bounds the player decisions per hand; reaching
	// it forces a stand
	blackjackMaxDecisions = 6
	// blackjackMaxDealerDraws bounds the house draws per hand
	blackjackMaxDealerDraws = 4
)

// BlackjackView is the rendered state of a blackjack hand. DealerVisible is
// how many dealer cards the renderer may show; the hole card stays hidden
// until the hand settles.
type BlackjackView struct {
	Player        []Card
	Dealer        []Card
	PlayerTotal   int
	DealerTotal   int
	DealerVisible int
}

// Blackjack plays a single hand against a house that draws on 16 or less,
// always stands on 21 and coin-flips a stand on 17 through 20. The house
// takes one policy step at the start of every round, before the player's
// move is evaluated; a round where both sides bust is a push.
type Blackjack struct {
	stake       int64
	odds        models.OddsSnapshot
	player      []Card
	dealer      []Card
	decisions   int
	dealerDraws int
	dealerStood bool
	done        bool
	settlement  Settlement
}

func NewBlackjack(stake int64, odds models.OddsSnapshot, rng Rand) *Blackjack {
	b := &Blackjack{stake: stake, odds: odds}
	b.player = []Card{drawCard(rng), drawCard(rng)}
	b.dealer = []Card{drawCard(rng), drawCard(rng)}
	return b
}

func drawCard(rng Rand) Card {
	return Card{
		Rank: cardRanks[rng.Intn(len(cardRanks))],
		Suit: cardSuits[rng.Intn(len(cardSuits))],
	}
}

func (b *Blackjack) Game() models.Game { return models.GameBlackjack }

func (b *Blackjack) Advance(in Input, rng Rand) (Result, error) {
	if b.done {
		return Result{}, ErrNotRunning
	}

	switch in.Action {
	case ActionHit:
		b.decisions++
		b.dealerStep(rng)
		b.player = append(b.player, drawCard(rng))

		playerBust := HandTotal(b.player) > 21
		dealerBust := HandTotal(b.dealer) > 21
		switch {
		case playerBust && dealerBust:
			return b.settle(SettleRefund, OutcomePush), nil
		case playerBust:
			return b.settle(SettleForfeit, OutcomeLose), nil
		case dealerBust:
			return b.settle(SettlePayout, OutcomeWin), nil
		}

		if b.decisions >= blackjackMaxDecisions {
			return b.stand(), nil
		}
		return Result{}, nil

	case ActionStand:
		b.decisions++
		b.dealerStep(rng)
		return b.stand(), nil

	default:
		return Result{}, fmt.Errorf("%w: %s", ErrBadAction, in.Action)
	}
}

// dealerStep applies one round of the house drawing policy
func (b *Blackjack) dealerStep(rng Rand) {
	if b.dealerStood || b.dealerDraws >= blackjackMaxDealerDraws {
		return
	}
	switch total := HandTotal(b.dealer); {
	case total <= 16:
		b.dealer = append(b.dealer, drawCard(rng))
		b.dealerDraws++
	case total == 21:
		b.dealerStood = true
	default:
		// 17 through 20: coin flip
		if rng.Intn(2) == 0 {
			b.dealerStood = true
		}
	}
}

func (b *Blackjack) stand() Result {
	playerTotal := HandTotal(b.player)
	dealerTotal := HandTotal(b.dealer)
	switch {
	case dealerTotal > 21 || playerTotal > dealerTotal:
		return b.settle(SettlePayout, OutcomeWin)
	case playerTotal == dealerTotal:
		return b.settle(SettleRefund, OutcomePush)
	default:
		return b.settle(SettleForfeit, OutcomeLose)
	}
}

func (b *Blackjack) settle(kind SettleKind, outcome Outcome) Result {
	b.done = true
	b.settlement = Settlement{Kind: kind, Outcome: outcome}
	switch kind {
	case SettlePayout:
		b.settlement.Payout = payout(b.stake, b.odds.EffectiveMultiplier())
	case SettleRefund:
		b.settlement.Payout = b.stake
	}
	return Result{Done: true, Settlement: b.settlement}
}

func (b *Blackjack) Timeout() TimeoutPolicy {
	return TimeoutPolicy{Kind: TimeoutImplicit, Action: Input{Action: ActionStand}}
}

func (b *Blackjack) Snapshot() Snapshot {
	view := &BlackjackView{
		Player:        append([]Card(nil), b.player...),
		Dealer:        append([]Card(nil), b.dealer...),
		PlayerTotal:   HandTotal(b.player),
		DealerVisible: 1,
	}
	snap := Snapshot{
		Game:      models.GameBlackjack,
		Stake:     b.stake,
		Done:      b.done,
		Blackjack: view,
	}
	if b.done {
		view.DealerVisible = len(b.dealer)
		view.DealerTotal = HandTotal(b.dealer)
		snap.Outcome = b.settlement.Outcome
		snap.Payout = b.settlement.Payout
	} else {
		snap.Actions = []Action{ActionHit, ActionStand}
	}
	return snap
}
