package models

import "errors"

// Custom errors
var (
	ErrNoOddsData      = errors.New("no odds data available")
	ErrInvalidAlert    = errors.New("invalid alert")
	ErrInvalidPriority = errors.New("alert priority must be a non-negative integer")
	ErrRaceNotFound    = errors.New("race data not found")
)
