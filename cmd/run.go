package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"bucks/bot"
	"bucks/config"
	"bucks/database"
	"bucks/events"
	"bucks/games"
	"bucks/repository"
	"bucks/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting bucks bot...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus
	eventBus := events.NewBus()

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	log.Println("Initializing services...")
	guard := service.NewGuard()
	boostRepo := repository.NewBoostRepository(db)
	oddsService := service.NewOddsService(boostRepo, games.NewRand())
	ledgerService := service.NewLedgerService(uowFactory, guard)
	sessionService := service.NewSessionService(uowFactory, oddsService, guard, games.NewRand())
	log.Println("Services initialized successfully")

	// In-flight sessions from a previous process are never resumed; their
	// reserved stakes go back to the players before anything else runs.
	refunded, err := sessionService.RefundOrphanedStakes(ctx)
	if err != nil {
		return fmt.Errorf("failed to sweep orphaned stakes: %w", err)
	}
	if refunded > 0 {
		log.Printf("Refunded %d orphaned stakes", refunded)
	}

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:             cfg.DiscordToken,
		GuildID:           cfg.DiscordGuildID,
		AnnounceChannelID: cfg.AnnounceChannelID,
	}
	discordBot, err := bot.New(botConfig, ledgerService, sessionService, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")

	// Close Discord bot connection first so no new sessions start
	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	// Settle every live session per its timeout policy
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sessionService.Close(shutdownCtx); err != nil {
		log.Printf("Error closing sessions: %v", err)
	}

	// Close database connection
	log.Println("Closing database connection...")
	db.Close()

	log.Println("Shutdown completed")
	return nil
}
