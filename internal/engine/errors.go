package engine

import "errors"

var (
	errNilTables = errors.New("engine: reference tables are required")
	errNilEmbed  = errors.New("engine: embedding function is required")

	// ErrInvalidDays is returned when a meal-plan request is out of bounds.
	ErrInvalidDays = errors.New("days must be between 1 and 14")
)
