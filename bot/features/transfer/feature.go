package transfer

import (
	"github.com/bwmarrin/discordgo"

	"bucks/service"
)

type Feature struct {
	ledger service.LedgerService
}

func New(ledger service.LedgerService) *Feature {
	return &Feature{
		ledger: ledger,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleGive(s, i)
}
