package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrNotAuthenticated = errors.New("not authenticated")

	// Task errors
	ErrTaskNotFound      = errors.New("task not found")
	ErrEmptyTitle        = errors.New("task title is required")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// Garden errors
	ErrUnknownSpecies  = errors.New("unknown plant species")
	ErrInvalidPosition = errors.New("position coordinates must be in [0, 100]")
)
