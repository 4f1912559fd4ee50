package interfaces

import (
	"context"

	"sportsbook/domain/entities"

	"github.com/shopspring/decimal"
)

// FixtureProvider supplies match state from the external sports-data API
type FixtureProvider interface {
	// GetFixture returns the current snapshot of a fixture
	GetFixture(ctx context.Context, fixtureID int64) (*entities.Fixture, error)
}

// OddsProvider supplies odds multipliers from the external sports-data API
type OddsProvider interface {
	// GetOdds returns the multiplier per selection for a fixture and bet type.
	// A selection absent from the map is not an error at this layer.
	GetOdds(ctx context.Context, fixtureID int64, betType entities.BetType) (map[string]decimal.Decimal, error)
}

// Authorizer verifies that a token grants access to act as the given user.
// Called by the transport layer; the engine trusts the uid it is handed.
type Authorizer interface {
	Authorize(ctx context.Context, token string, uid int64) error
}

// BalanceCache is a non-authoritative read cache over the ledger-derived
// balance. It must always be re-derivable from the ledger; losing it is harmless.
type BalanceCache interface {
	Get(ctx context.Context, uid int64) (decimal.Decimal, bool, error)
	Set(ctx context.Context, uid int64, balance decimal.Decimal) error
	Invalidate(ctx context.Context, uid int64) error
}
