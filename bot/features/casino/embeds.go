package casino

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"bucks/bot/common"
	"bucks/games"
	"bucks/models"
)

const (
	colorPrimary = 0x5865F2
	colorSuccess = 0x57F287
	colorDanger  = 0xED4245
	colorWarning = 0xFEE75C
)

var gameTitles = map[models.Game]string{
	models.GameCoinflip:  "🪙 Coinflip",
	models.GameDice:      "🎲 Dice Duel",
	models.GameBlackjack: "🃏 Blackjack",
	models.GameCrash:     "🚀 Crash",
	models.GameLadder:    "🪜 Ladder",
	models.GameBombs:     "💣 Bombs",
	models.GameScratch:   "🎟️ Scratch Card",
}

var outcomeLines = map[games.Outcome]string{
	games.OutcomeWin:       "🎉 **You won!**",
	games.OutcomeLose:      "**You lost.**",
	games.OutcomePush:      "🤝 **Push.** Stake returned.",
	games.OutcomeCashedOut: "🎉 **Cashed out!**",
	games.OutcomeExited:    "🚪 **You bailed.** Stake forfeited.",
	games.OutcomeCrashed:   "💥 **Crashed!**",
	games.OutcomeCollected: "🎉 **Collected!**",
	games.OutcomeCleared:   "🎉 **Board cleared!**",
	games.OutcomeDetonated: "💥 **Boom.**",
	games.OutcomeRefunded:  "⏱️ **Timed out.** Stake refunded.",
}

var symbolEmojis = map[games.Symbol]string{
	games.SymbolDiamond: "💎",
	games.SymbolMoney:   "💰",
	games.SymbolDice:    "🎲",
	games.SymbolTarget:  "🎯",
	games.SymbolClover:  "🍀",
}

func symbolEmoji(sym games.Symbol) string {
	if e, ok := symbolEmojis[sym]; ok {
		return e
	}
	return "❓"
}

// buildGameEmbed renders one session snapshot. The top line carries the
// stake and, once settled, the outcome and payout; the body is per-game.
func buildGameEmbed(snap *games.Snapshot, displayName string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: gameTitles[snap.Game],
		Color: colorPrimary,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s • stake %s bucks", displayName, common.FormatBalance(snap.Stake)),
		},
	}

	var body strings.Builder
	if snap.Done {
		embed.Color = settledColor(snap)
		body.WriteString(outcomeLines[snap.Outcome])
		body.WriteString("\n")
		if snap.Payout > 0 {
			body.WriteString(fmt.Sprintf("Paid out **%s bucks**.\n", common.FormatBalance(snap.Payout)))
		}
		body.WriteString("\n")
	}

	switch snap.Game {
	case models.GameCoinflip:
		writeCoinflip(&body, snap)
	case models.GameDice:
		writeDice(&body, snap)
	case models.GameBlackjack:
		writeBlackjack(&body, snap)
	case models.GameCrash:
		writeCrash(&body, snap)
	case models.GameLadder:
		writeLadder(&body, snap)
	case models.GameBombs:
		writeBombs(&body, snap)
	case models.GameScratch:
		writeScratch(&body, snap)
	}

	embed.Description = body.String()
	return embed
}

func settledColor(snap *games.Snapshot) int {
	switch snap.Outcome {
	case games.OutcomePush, games.OutcomeRefunded:
		return colorWarning
	default:
		if snap.Payout > 0 {
			return colorSuccess
		}
		return colorDanger
	}
}

func writeCoinflip(body *strings.Builder, snap *games.Snapshot) {
	view := snap.Coinflip
	body.WriteString(fmt.Sprintf("You called **%s** at **%.2fx**.\n", view.Choice, view.Multiplier))
	if snap.Done {
		body.WriteString(fmt.Sprintf("The coin landed on **%s**.", view.Landed))
	}
}

func writeDice(body *strings.Builder, snap *games.Snapshot) {
	view := snap.Dice
	if snap.Done {
		body.WriteString(fmt.Sprintf("You rolled **%d**, the house rolled **%d**.", view.PlayerRoll, view.HouseRoll))
	} else {
		body.WriteString("Beat the house on a 1-10 roll. Ties lose.")
	}
}

func writeBlackjack(body *strings.Builder, snap *games.Snapshot) {
	view := snap.Blackjack

	body.WriteString(fmt.Sprintf("**Your hand** (%d): %s\n", view.PlayerTotal, handString(view.Player, len(view.Player))))
	if snap.Done {
		body.WriteString(fmt.Sprintf("**Dealer** (%d): %s", view.DealerTotal, handString(view.Dealer, view.DealerVisible)))
	} else {
		body.WriteString(fmt.Sprintf("**Dealer**: %s", handString(view.Dealer, view.DealerVisible)))
	}
}

func handString(cards []games.Card, visible int) string {
	parts := make([]string, len(cards))
	for idx, card := range cards {
		if idx < visible {
			parts[idx] = "`" + card.String() + "`"
		} else {
			parts[idx] = "`??`"
		}
	}
	return strings.Join(parts, " ")
}

func writeCrash(body *strings.Builder, snap *games.Snapshot) {
	view := snap.Crash
	body.WriteString(fmt.Sprintf("Multiplier: **%.2fx** after %d ticks.\n", view.Multiplier, view.Ticks))
	if !snap.Done {
		body.WriteString("Cash out before it crashes.")
	}
}

func writeLadder(body *strings.Builder, snap *games.Snapshot) {
	view := snap.Ladder

	for idx := len(view.Multipliers) - 1; idx >= 0; idx-- {
		marker := "▫️"
		if idx < view.Step {
			marker = "🟩"
		}
		body.WriteString(fmt.Sprintf("%s %.2fx\n", marker, view.Multipliers[idx]))
	}
	if !snap.Done {
		if view.Step > 0 {
			body.WriteString(fmt.Sprintf("\nHolding **%.2fx**. Next climb succeeds %.0f%% of the time.", view.Multiplier, view.NextOdds*100))
		} else {
			body.WriteString(fmt.Sprintf("\nFirst climb succeeds %.0f%% of the time.", view.NextOdds*100))
		}
	}
}

func writeBombs(body *strings.Builder, snap *games.Snapshot) {
	view := snap.Bombs

	revealed := 0
	for _, r := range view.Revealed {
		if r {
			revealed++
		}
	}
	body.WriteString(fmt.Sprintf("**%d** bombs hidden in 16 tiles. Safe tiles found: **%d/%d**.\n",
		view.BombCount, revealed, 16-view.BombCount))
	body.WriteString(fmt.Sprintf("Current multiplier: **%.2fx**.\n", view.Multiplier))

	if snap.Done {
		body.WriteString("\n")
		for tile := 0; tile < 16; tile++ {
			switch {
			case view.Bombs[tile]:
				body.WriteString("💣")
			case view.Revealed[tile]:
				body.WriteString("✅")
			default:
				body.WriteString("⬜")
			}
			if tile%4 == 3 {
				body.WriteString("\n")
			}
		}
	}
}

func writeScratch(body *strings.Builder, snap *games.Snapshot) {
	view := snap.Scratch

	body.WriteString("Match three of a symbol to win.\n\n")
	for cell := 0; cell < len(view.Grid); cell++ {
		if view.Revealed[cell] || snap.Done {
			body.WriteString(symbolEmoji(view.Grid[cell]))
		} else {
			body.WriteString("⬛")
		}
		if cell%3 == 2 {
			body.WriteString("\n")
		}
	}
	if !snap.Done {
		body.WriteString(fmt.Sprintf("\n%d cells left.", view.Left))
	}
}
