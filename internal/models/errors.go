package models

import "errors"

// Custom errors
var (
	ErrInvalidSimulationCount = errors.New("simulation count must be positive")
	ErrInvalidMarketLine      = errors.New("market line must be positive")
	ErrInvalidLineup          = errors.New("lineup must contain exactly 9 batters")
	ErrMalformedGameLog       = errors.New("malformed game log record")
)
