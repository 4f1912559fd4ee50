package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// WagerStatus represents the lifecycle state of a wager
type WagerStatus string

const (
	WagerStatusPending   WagerStatus = "pending"
	WagerStatusWon       WagerStatus = "won"
	WagerStatusLost      WagerStatus = "lost"
	WagerStatusCancelled WagerStatus = "cancelled"
)

// IsTerminal returns true once a wager can no longer change state
func (s WagerStatus) IsTerminal() bool {
	return s == WagerStatusWon || s == WagerStatusLost || s == WagerStatusCancelled
}

// Wager represents a single staked prediction on a fixture outcome.
// The odds multiplier is captured at placement time and never re-read.
type Wager struct {
	ID             int64           `db:"id"`
	UID            int64           `db:"uid"`
	FixtureID      int64           `db:"fixture_id"`
	BetType        BetType         `db:"bet_type"`
	Selection      string          `db:"selection"`
	Stake          decimal.Decimal `db:"stake"`
	OddsMultiplier decimal.Decimal `db:"odds_multiplier"`
	Status         WagerStatus     `db:"status"`
	CreatedAt      time.Time       `db:"created_at"`
	SettledAt      *time.Time      `db:"settled_at"`
}

// IsPending returns true if the wager has not been settled or cancelled
func (w *Wager) IsPending() bool {
	return w.Status == WagerStatusPending
}

// Payout returns the amount credited if the wager wins, rounded to cents
func (w *Wager) Payout() decimal.Decimal {
	return w.Stake.Mul(w.OddsMultiplier).Round(2)
}
