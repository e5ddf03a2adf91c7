package models

import "errors"

var (
	// ErrNotFound is returned when a referenced product or user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned on constraint violations such as an empty name or negative stock.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInsufficientStock is returned when a sale asks for more than is on hand.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrDuplicateUsername is returned when registering a username that already exists.
	ErrDuplicateUsername = errors.New("username already taken")
)
