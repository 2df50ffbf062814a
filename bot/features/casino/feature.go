package casino

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"bucks/service"
)

// Feature renders wager sessions and forwards player actions. All game logic
// lives behind the session service; this package only draws snapshots.
type Feature struct {
	sessions service.SessionService
}

func New(sessions service.SessionService) *Feature {
	return &Feature{
		sessions: sessions,
	}
}

// HandleCommand dispatches the per-game slash commands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleStart(s, i, i.ApplicationCommandData().Name)
}

// HandleComponent routes button clicks on live game messages
func (f *Feature) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	if strings.HasPrefix(i.MessageComponentData().CustomID, customIDPrefix) {
		f.handleAction(s, i)
	}
}
