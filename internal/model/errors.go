package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Wallet errors
	ErrInvalidCoin         = errors.New("invalid coin")
	ErrSameCoin            = errors.New("cannot convert a coin to itself")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrRateUnavailable     = errors.New("no usable price for coin")

	// Shop errors
	ErrUnknownShopItem   = errors.New("unknown shop item")
	ErrAlreadyOwned      = errors.New("item already owned")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Ash Trail errors
	ErrInvalidBook = errors.New("invalid book")
	ErrRunNotFound = errors.New("run not found")

	// Legacy item store errors
	ErrItemNotFound    = errors.New("item not found")
	ErrInvalidPassword = errors.New("password must be at least 4 lowercase letters")
	ErrBannedPassword  = errors.New("password contains a banned word")

	// Update errors
	ErrUnknownField   = errors.New("unrecognized field")
	ErrInvalidGame    = errors.New("invalid minigame")
	ErrInvalidNumber  = errors.New("value is not a number")
	ErrUnknownAction  = errors.New("unknown bulk action")
	ErrInvalidRequest = errors.New("invalid request")
)
