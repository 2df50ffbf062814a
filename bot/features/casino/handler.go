package casino

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"bucks/bot/common"
	"bucks/games"
	"bucks/models"
)

// commandGames maps slash command names onto game families
var commandGames = map[string]models.Game{
	"coinflip":  models.GameCoinflip,
	"dice":      models.GameDice,
	"blackjack": models.GameBlackjack,
	"crash":     models.GameCrash,
	"ladder":    models.GameLadder,
	"bombs":     models.GameBombs,
	"scratch":   models.GameScratch,
}

func (f *Feature) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate, command string) {
	ctx := context.Background()

	game, ok := commandGames[command]
	if !ok {
		return
	}

	userID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var stake string
	var opts games.StartOptions
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "stake":
			stake = opt.StringValue()
		case "side":
			opts.Choice = opt.StringValue()
		case "bombs":
			opts.Bombs = int(opt.IntValue())
		}
	}
	if stake == "" {
		common.RespondWithError(s, i, "Please provide a stake.")
		return
	}

	snap, err := f.sessions.Start(ctx, userID, game, stake, opts)
	if err != nil {
		common.RespondWithError(s, i, common.ErrorMessage(err))
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, i.Member.User.ID)
	embed := buildGameEmbed(snap, displayName)
	components := buildGameComponents(snap, userID)

	if err := common.RespondWithEmbed(s, i, embed, components, false); err != nil {
		log.Errorf("Error responding to %s command: %v", command, err)
	}
}

func (f *Feature) handleAction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	ownerID, input, sessionID, err := parseCustomID(i.MessageComponentData().CustomID)
	if err != nil {
		log.Errorf("Error parsing component ID %q: %v", i.MessageComponentData().CustomID, err)
		return
	}

	clickerID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		return
	}
	if clickerID != ownerID {
		common.RespondWithError(s, i, "This isn't your game.")
		return
	}

	snap, err := f.sessions.Input(ctx, sessionID, input)
	if err != nil {
		common.RespondWithError(s, i, common.ErrorMessage(err))
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, i.Member.User.ID)
	embed := buildGameEmbed(snap, displayName)

	var components []discordgo.MessageComponent
	if !snap.Done {
		components = buildGameComponents(snap, ownerID)
	}

	if err := common.UpdateWithEmbed(s, i, embed, components); err != nil {
		log.Errorf("Error updating game message: %v", err)
	}
}

// parseCustomID splits "casino_<userID>_<action>_<tile>_<sessionID>"
func parseCustomID(id string) (int64, games.Input, uuid.UUID, error) {
	var input games.Input

	parts := strings.SplitN(id[len(customIDPrefix):], "_", 4)
	if len(parts) != 4 {
		return 0, input, uuid.Nil, fmt.Errorf("malformed component id %q", id)
	}

	ownerID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, input, uuid.Nil, err
	}
	input.Action = games.Action(parts[1])
	input.Tile, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, input, uuid.Nil, err
	}
	sessionID, err := uuid.Parse(parts[3])
	if err != nil {
		return 0, input, uuid.Nil, err
	}
	return ownerID, input, sessionID, nil
}
