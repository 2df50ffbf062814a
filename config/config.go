package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken      string
	DiscordGuildID    string
	AnnounceChannelID string // channel for big-win announcements; empty disables them

	// Database configuration
	DatabaseURL string

	// Ledger configuration
	StartingWallet int64         // wallet balance granted when an account is opened
	DailyReward    int64         // amount credited by the daily claim
	DailyInterval  time.Duration // spacing between daily claims
	MaxStake       int64         // hard ceiling on a single wager

	// Session configuration
	TickInterval   time.Duration // spacing between crash-game ticks
	InputTimeout   time.Duration // per-decision deadline for interactive games
	SessionTimeout time.Duration // wall-clock ceiling for a whole session

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken:      os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID:    os.Getenv("DISCORD_GUILD_ID"),
		AnnounceChannelID: os.Getenv("DISCORD_ANNOUNCE_CHANNEL_ID"),

		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Defaults
		StartingWallet: 200,
		DailyReward:    1000,
		DailyInterval:  24 * time.Hour,
		MaxStake:       250_000,
		TickInterval:   3 * time.Second,
		InputTimeout:   60 * time.Second,
		SessionTimeout: 10 * time.Minute,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if wallet := os.Getenv("STARTING_WALLET"); wallet != "" {
		if parsed, err := strconv.ParseInt(wallet, 10, 64); err == nil {
			config.StartingWallet = parsed
		}
	}
	if reward := os.Getenv("DAILY_REWARD"); reward != "" {
		if parsed, err := strconv.ParseInt(reward, 10, 64); err == nil {
			config.DailyReward = parsed
		}
	}
	if stake := os.Getenv("MAX_STAKE"); stake != "" {
		if parsed, err := strconv.ParseInt(stake, 10, 64); err == nil {
			config.MaxStake = parsed
		}
	}
	if tick := os.Getenv("TICK_INTERVAL"); tick != "" {
		if parsed, err := time.ParseDuration(tick); err == nil {
			config.TickInterval = parsed
		}
	}
	if timeout := os.Getenv("INPUT_TIMEOUT"); timeout != "" {
		if parsed, err := time.ParseDuration(timeout); err == nil {
			config.InputTimeout = parsed
		}
	}
	if timeout := os.Getenv("SESSION_TIMEOUT"); timeout != "" {
		if parsed, err := time.ParseDuration(timeout); err == nil {
			config.SessionTimeout = parsed
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
