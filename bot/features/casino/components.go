package casino

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"bucks/games"
	"bucks/models"
)

const customIDPrefix = "casino_"

func actionID(userID int64, action games.Action, tile int, sessionID uuid.UUID) string {
	return fmt.Sprintf("%s%d_%s_%d_%s", customIDPrefix, userID, action, tile, sessionID)
}

// actionLabels are the button captions for the simple one-row games
var actionLabels = map[games.Action]string{
	games.ActionResolve: "Go",
	games.ActionHit:     "Hit",
	games.ActionStand:   "Stand",
	games.ActionCashOut: "Cash Out",
	games.ActionExit:    "Exit",
	games.ActionClimb:   "Climb",
	games.ActionCollect: "Collect",
}

var actionStyles = map[games.Action]discordgo.ButtonStyle{
	games.ActionResolve: discordgo.PrimaryButton,
	games.ActionHit:     discordgo.PrimaryButton,
	games.ActionStand:   discordgo.SecondaryButton,
	games.ActionCashOut: discordgo.SuccessButton,
	games.ActionExit:    discordgo.DangerButton,
	games.ActionClimb:   discordgo.PrimaryButton,
	games.ActionCollect: discordgo.SuccessButton,
}

// buildGameComponents renders the action surface for a running session. Grid
// games get one button per tile; everything else gets a row of action
// buttons straight from the snapshot.
func buildGameComponents(snap *games.Snapshot, userID int64) []discordgo.MessageComponent {
	if snap.Done {
		return nil
	}

	switch snap.Game {
	case models.GameBombs:
		return bombsComponents(snap, userID)
	case models.GameScratch:
		return scratchComponents(snap, userID)
	default:
		return actionRow(snap, userID)
	}
}

func actionRow(snap *games.Snapshot, userID int64) []discordgo.MessageComponent {
	row := discordgo.ActionsRow{}
	for _, action := range snap.Actions {
		row.Components = append(row.Components, &discordgo.Button{
			Label:    actionLabels[action],
			Style:    actionStyles[action],
			CustomID: actionID(userID, action, 0, snap.SessionID),
		})
	}
	return []discordgo.MessageComponent{row}
}

// bombsComponents lays the 4x4 grid out as four button rows plus a collect
// row. Revealed tiles stay visible but dead.
func bombsComponents(snap *games.Snapshot, userID int64) []discordgo.MessageComponent {
	view := snap.Bombs

	components := make([]discordgo.MessageComponent, 0, 5)
	for row := 0; row < 4; row++ {
		actions := discordgo.ActionsRow{}
		for col := 0; col < 4; col++ {
			tile := row*4 + col
			label := "⬜"
			if view.Revealed[tile] {
				label = "✅"
			}
			actions.Components = append(actions.Components, &discordgo.Button{
				Label:    label,
				Style:    discordgo.SecondaryButton,
				CustomID: actionID(userID, games.ActionReveal, tile, snap.SessionID),
				Disabled: view.Revealed[tile],
			})
		}
		components = append(components, actions)
	}

	components = append(components, discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			&discordgo.Button{
				Label:    fmt.Sprintf("Collect %.2fx", view.Multiplier),
				Style:    discordgo.SuccessButton,
				CustomID: actionID(userID, games.ActionCollect, 0, snap.SessionID),
			},
		},
	})
	return components
}

// scratchComponents lays the card out as a 3x3 button grid. Revealed cells
// show their symbol and stay dead.
func scratchComponents(snap *games.Snapshot, userID int64) []discordgo.MessageComponent {
	view := snap.Scratch

	components := make([]discordgo.MessageComponent, 0, 3)
	for row := 0; row < 3; row++ {
		actions := discordgo.ActionsRow{}
		for col := 0; col < 3; col++ {
			cell := row*3 + col
			label := "❓"
			if view.Revealed[cell] {
				label = symbolEmoji(view.Grid[cell])
			}
			actions.Components = append(actions.Components, &discordgo.Button{
				Label:    label,
				Style:    discordgo.SecondaryButton,
				CustomID: actionID(userID, games.ActionReveal, cell, snap.SessionID),
				Disabled: view.Revealed[cell],
			})
		}
		components = append(components, actions)
	}
	return components
}
