package httpapi

import (
	"time"

	"sportsbook/domain/entities"
)

// PlaceBetRequest is the payload for POST /bets
type PlaceBetRequest struct {
	Amount    string `json:"amount"`
	FixtureID int64  `json:"fixture_id"`
	BetType   string `json:"bet_type"`
	Selection string `json:"selection"`
}

// PlaceBetResponse is returned after a wager is placed
type PlaceBetResponse struct {
	WagerID int64  `json:"wager_id"`
	Status  string `json:"status"`
}

// WagerResponse is a single wager in a listing
type WagerResponse struct {
	ID             int64      `json:"id"`
	FixtureID      int64      `json:"fixture_id"`
	BetType        string     `json:"bet_type"`
	Selection      string     `json:"selection"`
	Stake          string     `json:"stake"`
	OddsMultiplier string     `json:"odds_multiplier"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	SettledAt      *time.Time `json:"settled_at,omitempty"`
}

// ClaimBetsResponse reports how many wagers a claim call settled
type ClaimBetsResponse struct {
	Settled int `json:"settled"`
}

// BalanceResponse is returned by GET /balance
type BalanceResponse struct {
	Balance string `json:"balance"`
}

// AmountRequest is the payload for deposits and withdrawals
type AmountRequest struct {
	Amount string `json:"amount"`
}

// ErrorResponse carries a machine-readable error kind plus a message
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func toWagerResponse(w *entities.Wager) WagerResponse {
	return WagerResponse{
		ID:             w.ID,
		FixtureID:      w.FixtureID,
		BetType:        string(w.BetType),
		Selection:      w.Selection,
		Stake:          w.Stake.String(),
		OddsMultiplier: w.OddsMultiplier.String(),
		Status:         string(w.Status),
		CreatedAt:      w.CreatedAt,
		SettledAt:      w.SettledAt,
	}
}
