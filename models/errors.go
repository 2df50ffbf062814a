package models

import "errors"

// Shared error kinds returned by the persistence layer
var (
	// ErrAccountNotFound means a mutation targeted a user with no account
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientFunds means a conditional balance update matched no
	// row because the funds were not there
	ErrInsufficientFunds = errors.New("insufficient funds")
)
