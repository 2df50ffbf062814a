package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"bucks/bot/common"
	"bucks/bot/features/bank"
	"bucks/bot/features/casino"
	"bucks/bot/features/transfer"
	"bucks/events"
	"bucks/service"
)

// bigWinThreshold is the payout at which a settlement gets announced
const bigWinThreshold = 10_000

// Config holds bot configuration
type Config struct {
	Token             string
	GuildID           string
	AnnounceChannelID string
}

type Bot struct {
	config  Config
	session *discordgo.Session

	bankFeature     *bank.Feature
	casinoFeature   *casino.Feature
	transferFeature *transfer.Feature

	eventBus *events.Bus
}

func New(config Config, ledger service.LedgerService, sessions service.SessionService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsAll

	bot := &Bot{
		config:          config,
		session:         dg,
		bankFeature:     bank.New(ledger),
		casinoFeature:   casino.New(sessions),
		transferFeature: transfer.New(ledger),
		eventBus:        eventBus,
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Register component interaction handlers
	dg.AddHandler(bot.casinoFeature.HandleComponent)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Announce big payouts as they settle
	if bot.config.AnnounceChannelID != "" {
		eventBus.Subscribe(events.EventTypeSessionSettled, func(ctx context.Context, event events.Event) {
			if settled, ok := event.(events.SessionSettledEvent); ok {
				bot.announceBigWin(settled)
			}
		})
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// announceBigWin posts settlements whose payout clears the threshold.
// Refunds carry payout equal to the stake, so they are filtered on profit.
func (b *Bot) announceBigWin(settled events.SessionSettledEvent) {
	if settled.Payout-settled.Stake < bigWinThreshold {
		return
	}

	name := common.GetDisplayNameInt64(b.session, b.config.GuildID, settled.UserID)
	message := fmt.Sprintf("💸 **%s** just won **%s bucks** on %s!",
		name, common.FormatBalance(settled.Payout), settled.Game)
	if _, err := b.session.ChannelMessageSend(b.config.AnnounceChannelID, message); err != nil {
		log.Errorf("Failed to announce win: %v", err)
	}
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "bank":
		b.bankFeature.HandleCommand(s, i)
	case "give":
		b.transferFeature.HandleCommand(s, i)
	case "coinflip", "dice", "blackjack", "crash", "ladder", "bombs", "scratch":
		b.casinoFeature.HandleCommand(s, i)
	}
}
