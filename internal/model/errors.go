package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Room errors
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomCodeTaken = errors.New("room code already taken")

	// Persona / clue errors
	ErrPersonaNotFound = errors.New("persona not found")
	ErrCluesNotFound   = errors.New("clues not loaded")

	// Direct message errors
	ErrDirectMessageNotFound = errors.New("direct message not found")

	// Authorization errors
	ErrForbidden = errors.New("not authorized for this resource")
)
