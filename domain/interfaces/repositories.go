package interfaces

import (
	"context"

	"sportsbook/domain/entities"

	"github.com/shopspring/decimal"
)

// LedgerRepository defines the interface for the append-only money-movement log
type LedgerRepository interface {
	// Record appends one immutable ledger entry and fills in its ID and CreatedAt
	Record(ctx context.Context, transaction *entities.Transaction) error

	// GetBalance returns the sum of all entry amounts for a user.
	// A user with no entries has a balance of zero, not an error.
	GetBalance(ctx context.Context, uid int64) (decimal.Decimal, error)

	// ListByUser returns ledger entries for a user, newest first
	ListByUser(ctx context.Context, uid int64, limit int) ([]*entities.Transaction, error)

	// AcquireUserLock serializes balance-affecting writes for one user within
	// the current transaction. Released automatically at commit or rollback.
	AcquireUserLock(ctx context.Context, uid int64) error
}

// WagerRepository defines the interface for wager data access
type WagerRepository interface {
	// Create inserts a new wager with status pending and fills in its ID and CreatedAt
	Create(ctx context.Context, wager *entities.Wager) error

	// GetByID retrieves a wager by its ID, nil if it does not exist
	GetByID(ctx context.Context, id int64) (*entities.Wager, error)

	// ListByUser returns all wagers for a user, newest first
	ListByUser(ctx context.Context, uid int64, limit int) ([]*entities.Wager, error)

	// ListPendingByUser returns the user's wagers still awaiting settlement
	ListPendingByUser(ctx context.Context, uid int64) ([]*entities.Wager, error)

	// ListUsersWithPending returns the distinct users that have pending wagers
	ListUsersWithPending(ctx context.Context) ([]int64, error)

	// CompareAndSetStatus atomically moves a wager from expected to new status.
	// Returns false without error when the current status differs from expected;
	// this is the primitive that prevents double settlement.
	CompareAndSetStatus(ctx context.Context, id int64, expected, new entities.WagerStatus) (bool, error)
}

// UnitOfWork represents one atomic unit spanning the ledger and wager tables
type UnitOfWork interface {
	// Begin starts the database transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes buffered events
	Commit() error

	// Rollback rolls back the transaction and discards buffered events.
	// No-op if already committed.
	Rollback() error

	// LedgerRepository returns the ledger repository bound to this transaction
	LedgerRepository() LedgerRepository

	// WagerRepository returns the wager repository bound to this transaction
	WagerRepository() WagerRepository

	// EventBus returns the transactional event publisher for this unit of work
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
