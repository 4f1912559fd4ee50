package entities

import "errors"

// Input errors: rejected before any write.
var (
	ErrInvalidAmount    = errors.New("amount must be positive and non-zero")
	ErrInvalidSelection = errors.New("selection is not valid for this bet type")
)

// State errors: expected operational outcomes, never retried automatically.
var (
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrWageringClosed        = errors.New("wagering is closed for this fixture")
	ErrNoOddsAvailable       = errors.New("no odds available for this selection")
	ErrStatusAlreadyTerminal = errors.New("wager is already in a terminal state")
	ErrWagerNotFound         = errors.New("wager not found")
)

// Collaborator errors: the sports-data provider failed or timed out.
var (
	ErrFixtureNotFound     = errors.New("fixture not found")
	ErrUpstreamUnavailable = errors.New("upstream provider unavailable")
)

// ErrInvalidWager indicates a wager that placement-time validation should have
// rejected reached settlement. This is a logic error, not an operational outcome.
var ErrInvalidWager = errors.New("wager is malformed")
