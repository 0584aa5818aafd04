package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound    = errors.New("user not found")
	ErrNicknameTaken   = errors.New("nickname is already used")
	ErrInvalidNickname = errors.New("invalid nickname")
	ErrInvalidSecret   = errors.New("invalid secret")

	// Game errors
	ErrGameNotFound   = errors.New("game not found")
	ErrGameIDMismatch = errors.New("cannot change game ID")

	// Login code errors
	ErrCodeNotRedeemable = errors.New("code does not exist or is not redeemable")
)
