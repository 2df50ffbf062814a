package bank

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"bucks/bot/common"
	"bucks/config"
	"bucks/models"
)

const (
	colorPrimary = 0x5865F2
	colorSuccess = 0x57F287
)

func (f *Feature) handleOpen(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	account, err := f.ledger.OpenAccount(ctx, userID, i.Member.User.Username)
	if err != nil {
		common.RespondWithError(s, i, common.ErrorMessage(err))
		return
	}

	message := fmt.Sprintf("Account opened with a starting balance of **%s bucks**.",
		common.FormatBalance(account.Wallet))
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to open command: %v", err)
	}
}

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	account, err := f.ledger.Balance(ctx, userID)
	if err != nil {
		common.RespondWithError(s, i, common.ErrorMessage(err))
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, i.Member.User.ID)
	embed := buildBalanceEmbed(displayName, account)

	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to balance command: %v", err)
	}
}

func (f *Feature) handleDeposit(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	f.handleMove(s, i, options, "deposited", f.ledger.Deposit)
}

func (f *Feature) handleWithdraw(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	f.handleMove(s, i, options, "withdrew", f.ledger.Withdraw)
}

// handleMove covers both wallet-to-bank directions; move resolves the
// symbolic amount against the side the funds leave
func (f *Feature) handleMove(s *discordgo.Session, i *discordgo.InteractionCreate,
	options []*discordgo.ApplicationCommandInteractionDataOption,
	verb string, move func(context.Context, int64, string) (int64, error)) {

	ctx := context.Background()

	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var amount string
	for _, opt := range options {
		if opt.Name == "amount" {
			amount = opt.StringValue()
		}
	}
	if amount == "" {
		common.RespondWithError(s, i, "Please provide an amount.")
		return
	}

	moved, err := move(ctx, userID, amount)
	if err != nil {
		common.RespondWithError(s, i, common.ErrorMessage(err))
		return
	}

	message := fmt.Sprintf("You %s **%s bucks**.", verb, common.FormatBalance(moved))
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to %s command: %v", verb, err)
	}
}

func (f *Feature) handleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	reward, err := f.ledger.Daily(ctx, userID)
	if err != nil {
		common.RespondWithError(s, i, common.ErrorMessage(err))
		return
	}

	message := fmt.Sprintf("Daily reward of **%s bucks** claimed.", common.FormatBalance(reward))
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to daily command: %v", err)
	}
}

func (f *Feature) handleTop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	accounts, err := f.ledger.Top(ctx, 10)
	if err != nil {
		log.Errorf("Error fetching leaderboard: %v", err)
		common.RespondWithError(s, i, common.ErrorMessage(err))
		return
	}

	embed := buildLeaderboardEmbed(s, i.GuildID, accounts)
	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to top command: %v", err)
	}
}

func buildBalanceEmbed(displayName string, account *models.Account) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Wallet", Value: common.FormatBalance(account.Wallet), Inline: true},
		{Name: "Bank", Value: common.FormatBalance(account.Bank), Inline: true},
		{Name: "Net", Value: common.FormatBalance(account.Net()), Inline: true},
		{
			Name: "Record",
			Value: fmt.Sprintf("%d wins / %d wagers, lifetime earnings %s",
				account.Wins, account.TotalWagers, common.FormatBalance(account.Earnings)),
			Inline: false,
		},
	}

	if account.LastDaily != nil {
		next := account.LastDaily.Add(config.Get().DailyInterval)
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Daily",
			Value:  fmt.Sprintf("next claim %s", common.FormatDiscordTimestamp(next, "R")),
			Inline: false,
		})
	}

	return &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("💰 %s", displayName),
		Color:  colorPrimary,
		Fields: fields,
	}
}

func buildLeaderboardEmbed(s *discordgo.Session, guildID string, accounts []*models.Account) *discordgo.MessageEmbed {
	var sb strings.Builder
	medals := []string{"🥇", "🥈", "🥉"}
	for idx, account := range accounts {
		rank := fmt.Sprintf("%d.", idx+1)
		if idx < len(medals) {
			rank = medals[idx]
		}
		name := common.GetDisplayNameInt64(s, guildID, account.UserID)
		sb.WriteString(fmt.Sprintf("%s **%s** • %s bucks\n", rank, name, common.FormatBalance(account.Net())))
	}
	if len(accounts) == 0 {
		sb.WriteString("No accounts yet.")
	}

	return &discordgo.MessageEmbed{
		Title:       "🏆 Leaderboard",
		Description: sb.String(),
		Color:       colorSuccess,
	}
}
