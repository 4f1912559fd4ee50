package events

import (
	"sportsbook/domain/entities"

	"github.com/shopspring/decimal"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeWagerPlaced    EventType = "wager_placed"
	EventTypeWagerSettled   EventType = "wager_settled"
	EventTypeWagerCancelled EventType = "wager_cancelled"
	EventTypeBalanceChange  EventType = "balance_change"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// WagerPlacedEvent represents a wager that was placed and its stake held
type WagerPlacedEvent struct {
	WagerID   int64            `json:"wager_id"`
	UID       int64            `json:"uid"`
	FixtureID int64            `json:"fixture_id"`
	BetType   entities.BetType `json:"bet_type"`
	Selection string           `json:"selection"`
	Stake     decimal.Decimal  `json:"stake"`
	Odds      decimal.Decimal  `json:"odds"`
}

func (e WagerPlacedEvent) Type() EventType {
	return EventTypeWagerPlaced
}

// WagerSettledEvent represents a wager resolved to won or lost
type WagerSettledEvent struct {
	WagerID int64                `json:"wager_id"`
	UID     int64                `json:"uid"`
	Status  entities.WagerStatus `json:"status"`
	Payout  decimal.Decimal      `json:"payout"`
}

func (e WagerSettledEvent) Type() EventType {
	return EventTypeWagerSettled
}

// WagerCancelledEvent represents a wager cancelled with its stake refunded
type WagerCancelledEvent struct {
	WagerID int64           `json:"wager_id"`
	UID     int64           `json:"uid"`
	Refund  decimal.Decimal `json:"refund"`
}

func (e WagerCancelledEvent) Type() EventType {
	return EventTypeWagerCancelled
}

// BalanceChangeEvent represents a direct deposit or withdrawal
type BalanceChangeEvent struct {
	UID    int64                    `json:"uid"`
	Amount decimal.Decimal          `json:"amount"`
	Kind   entities.TransactionKind `json:"kind"`
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}
