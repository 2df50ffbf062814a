package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// stakeOption is the shared stake argument; the string form keeps the
// shorthand amounts (5k, all, half) working.
func stakeOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "stake",
		Description: "Amount to stake (e.g. 500, 5k, half, all)",
		Required:    true,
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "bank",
			Description: "Manage your bucks",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "open",
					Description: "Open an account",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "balance",
					Description: "Check your wallet and bank",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "deposit",
					Description: "Move wallet funds into the bank",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "amount",
							Description: "Amount to deposit (e.g. 500, 5k, half, all)",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "withdraw",
					Description: "Move bank funds into the wallet",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "amount",
							Description: "Amount to withdraw (e.g. 500, 5k, half, all)",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "daily",
					Description: "Claim your daily reward",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "top",
					Description: "Show the richest players",
				},
			},
		},
		{
			Name:        "give",
			Description: "Give bucks to another player",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Player to give bucks to",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "amount",
					Description: "Amount to give (e.g. 500, 5k, half, all)",
					Required:    true,
				},
			},
		},
		{
			Name:        "coinflip",
			Description: "Call a coin flip",
			Options: []*discordgo.ApplicationCommandOption{
				stakeOption(),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "side",
					Description: "The side you're calling",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "heads", Value: "heads"},
						{Name: "tails", Value: "tails"},
					},
				},
			},
		},
		{
			Name:        "dice",
			Description: "Roll against the house",
			Options:     []*discordgo.ApplicationCommandOption{stakeOption()},
		},
		{
			Name:        "blackjack",
			Description: "Play a hand of blackjack",
			Options:     []*discordgo.ApplicationCommandOption{stakeOption()},
		},
		{
			Name:        "crash",
			Description: "Ride the multiplier and cash out before it crashes",
			Options:     []*discordgo.ApplicationCommandOption{stakeOption()},
		},
		{
			Name:        "ladder",
			Description: "Climb the multiplier ladder",
			Options:     []*discordgo.ApplicationCommandOption{stakeOption()},
		},
		{
			Name:        "bombs",
			Description: "Reveal tiles and dodge the bombs",
			Options: []*discordgo.ApplicationCommandOption{
				stakeOption(),
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "bombs",
					Description: "Number of bombs to hide (1-14, default 2)",
					Required:    false,
				},
			},
		},
		{
			Name:        "scratch",
			Description: "Buy a scratch card",
			Options:     []*discordgo.ApplicationCommandOption{stakeOption()},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
