package transfer

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"bucks/bot/common"
)

func (f *Feature) handleGive(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	// Extract amount and recipient
	var amount string
	var recipientUser *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "amount":
			amount = opt.StringValue()
		case "user":
			recipientUser = opt.UserValue(s)
		}
	}

	if amount == "" || recipientUser == nil {
		common.RespondWithError(s, i, "Please provide both an amount and a recipient.")
		return
	}

	fromID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing sender Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	toID, err := strconv.ParseInt(recipientUser.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing recipient Discord ID %s: %v", recipientUser.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	result, err := f.ledger.Transfer(ctx, fromID, toID, amount)
	if err != nil {
		common.RespondWithError(s, i, common.ErrorMessage(err))
		return
	}

	senderName := common.GetDisplayName(s, i.GuildID, i.Member.User.ID)
	recipientName := common.GetDisplayName(s, i.GuildID, recipientUser.ID)
	message := fmt.Sprintf("**%s** gave **%s bucks** to **%s**.",
		senderName, common.FormatBalance(result.Amount), recipientName)
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to give command: %v", err)
	}
}
