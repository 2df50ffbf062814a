package service

import (
	"errors"

	"bucks/models"
)

// Error kinds surfaced to the command layer. These are ordinary results of
// player input, not unexpected failures; anything else coming out of the
// services is a wrapped persistence or programming error.
var (
	// ErrNoAccount means the user has not opened an account yet
	ErrNoAccount = models.ErrAccountNotFound

	// ErrAccountExists means OpenAccount was called twice
	ErrAccountExists = errors.New("account already exists")

	// ErrInsufficientFunds means the wallet (or bank) cannot cover the amount
	ErrInsufficientFunds = models.ErrInsufficientFunds

	// ErrOverMaximum means an explicit stake exceeded the configured ceiling
	ErrOverMaximum = errors.New("stake exceeds maximum wager")

	// ErrAlreadyActive means the user already has a running session for the
	// game family; requests are rejected, never queued
	ErrAlreadyActive = errors.New("session already active for this game")

	// ErrInvalidInput means a malformed amount string
	ErrInvalidInput = errors.New("invalid amount")

	// ErrInvalidAction means an action not valid in the session's current state
	ErrInvalidAction = errors.New("action not valid in current state")

	// ErrSessionNotFound means the session handle refers to no live session
	ErrSessionNotFound = errors.New("session not found")

	// ErrDailyClaimed means the daily reward was already collected
	ErrDailyClaimed = errors.New("daily reward already claimed")
)
