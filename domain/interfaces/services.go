package interfaces

import (
	"context"

	"sportsbook/domain/entities"
	"sportsbook/events"

	"github.com/shopspring/decimal"
)

// LifecycleService enforces the wager state machine. Every operation is one
// atomic unit spanning the ledger write and the wager write.
type LifecycleService interface {
	// Place verifies the balance, debits the stake and inserts the wager
	Place(ctx context.Context, uid int64, stake decimal.Decimal, fixtureID int64, betType entities.BetType, selection string, oddsMultiplier decimal.Decimal) (*entities.Wager, error)

	// SettleWin moves a pending wager to won and credits the payout. Returns
	// false without error when a concurrent caller settled the wager first;
	// the payout is then not credited again.
	SettleWin(ctx context.Context, wagerID int64, payout decimal.Decimal) (bool, error)

	// SettleLoss moves a pending wager to lost; the stake is not returned.
	// Returns false without error when the wager was already settled.
	SettleLoss(ctx context.Context, wagerID int64) (bool, error)

	// Cancel moves a pending wager to cancelled and refunds exactly the stake
	Cancel(ctx context.Context, wagerID int64) error
}

// SettlementService reconciles pending wagers against fixture results
type SettlementService interface {
	// ClaimAll settles every pending wager of a user whose fixture is final and
	// returns the number moved to a terminal state in this call
	ClaimAll(ctx context.Context, uid int64) (int, error)
}

// WagerService is the public entry point of the engine
type WagerService interface {
	// PlaceBet validates the bet, fetches the odds multiplier and places the wager
	PlaceBet(ctx context.Context, uid int64, amount decimal.Decimal, fixtureID int64, betType entities.BetType, selection string) (*entities.Wager, error)

	// ListBets returns the user's wagers, newest first
	ListBets(ctx context.Context, uid int64) ([]*entities.Wager, error)

	// ClaimBets settles the user's claimable wagers and returns the settled count
	ClaimBets(ctx context.Context, uid int64) (int, error)

	// CancelBet cancels a pending wager and refunds its stake
	CancelBet(ctx context.Context, wagerID int64) error

	// GetBalance returns the user's ledger-derived balance
	GetBalance(ctx context.Context, uid int64) (decimal.Decimal, error)

	// Deposit credits funds to the user's ledger
	Deposit(ctx context.Context, uid int64, amount decimal.Decimal) error

	// Withdraw debits funds from the user's ledger, failing on insufficient balance
	Withdraw(ctx context.Context, uid int64, amount decimal.Decimal) error
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(event events.Event) error
}

// TransactionalEventPublisher buffers events during a unit of work and
// publishes them only after the transaction commits
type TransactionalEventPublisher interface {
	EventPublisher

	// Flush publishes all buffered events; called after a successful commit
	Flush(ctx context.Context) error

	// Discard drops all buffered events; called on rollback
	Discard()
}
