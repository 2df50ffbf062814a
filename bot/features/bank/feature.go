package bank

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
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "open":
		f.handleOpen(s, i)
	case "balance":
		f.handleBalance(s, i)
	case "deposit":
		f.handleDeposit(s, i, options[0].Options)
	case "withdraw":
		f.handleWithdraw(s, i, options[0].Options)
	case "daily":
		f.handleDaily(s, i)
	case "top":
		f.handleTop(s, i)
	}
}
