package common

import (
	"errors"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"bucks/service"
)

// RespondWithError sends an ephemeral error message
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "❌ " + message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// RespondWithSuccess sends a success message
func RespondWithSuccess(s *discordgo.Session, i *discordgo.InteractionCreate, message string, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{
		Content: "✅ " + message,
	}

	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// RespondWithEmbed sends an embed as an interaction response
func RespondWithEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}

	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	if len(components) > 0 {
		data.Components = components
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// UpdateWithEmbed rewrites the message a component interaction came from
func UpdateWithEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
}

// ErrorMessage maps service error kinds onto player-facing text; anything
// unrecognized gets a generic message so internals never leak into chat.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrNoAccount):
		return "You don't have an account yet. Use `/bank open` to get started."
	case errors.Is(err, service.ErrAccountExists):
		return "You already have an account."
	case errors.Is(err, service.ErrInsufficientFunds):
		return "You don't have enough bucks for that."
	case errors.Is(err, service.ErrOverMaximum):
		return "That's over the maximum stake."
	case errors.Is(err, service.ErrAlreadyActive):
		return "You already have a game of that kind running. Finish it first."
	case errors.Is(err, service.ErrSessionNotFound):
		return "That game has already ended."
	case errors.Is(err, service.ErrDailyClaimed):
		return "You already claimed your daily reward."
	case errors.Is(err, service.ErrInvalidAction):
		return "That move isn't available right now."
	case errors.Is(err, service.ErrInvalidInput):
		return "I couldn't make sense of that. Check the amount and try again."
	default:
		return "Something went wrong. Please try again."
	}
}
