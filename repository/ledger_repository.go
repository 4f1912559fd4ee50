package repository

import (
	"context"
	"fmt"

	"sportsbook/database"
	"sportsbook/domain/entities"

	"github.com/shopspring/decimal"
)

// LedgerRepository implements append-only ledger data access
type LedgerRepository struct {
	q Queryable
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *database.DB) *LedgerRepository {
	return &LedgerRepository{q: db.Pool}
}

// newLedgerRepositoryWithTx creates a new ledger repository bound to a transaction
func newLedgerRepositoryWithTx(tx Queryable) *LedgerRepository {
	return &LedgerRepository{q: tx}
}

// Record appends one immutable ledger entry
func (r *LedgerRepository) Record(ctx context.Context, transaction *entities.Transaction) error {
	if err := transaction.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO transactions (uid, amount, kind, linked_wager_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		transaction.UID,
		transaction.Amount,
		transaction.Kind,
		transaction.LinkedWagerID,
	).Scan(&transaction.ID, &transaction.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record transaction for user %d: %w", transaction.UID, err)
	}

	return nil
}

// GetBalance returns the sum of all entry amounts for a user.
// A user with no entries has a balance of zero.
func (r *LedgerRepository) GetBalance(ctx context.Context, uid int64) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE uid = $1
	`

	var balance decimal.Decimal
	if err := r.q.QueryRow(ctx, query, uid).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to get balance for user %d: %w", uid, err)
	}

	return balance, nil
}

// ListByUser returns ledger entries for a user, newest first
func (r *LedgerRepository) ListByUser(ctx context.Context, uid int64, limit int) ([]*entities.Transaction, error) {
	query := `
		SELECT id, uid, amount, kind, linked_wager_id, created_at
		FROM transactions
		WHERE uid = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, uid, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for user %d: %w", uid, err)
	}
	defer rows.Close()

	var transactions []*entities.Transaction
	for rows.Next() {
		var transaction entities.Transaction
		err := rows.Scan(
			&transaction.ID,
			&transaction.UID,
			&transaction.Amount,
			&transaction.Kind,
			&transaction.LinkedWagerID,
			&transaction.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, &transaction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

// AcquireUserLock takes a transaction-scoped advisory lock keyed on the user.
// Two concurrent balance-check-then-debit sequences for the same user cannot
// both pass a stale balance check while one of them holds this lock.
func (r *LedgerRepository) AcquireUserLock(ctx context.Context, uid int64) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, uid); err != nil {
		return fmt.Errorf("failed to acquire ledger lock for user %d: %w", uid, err)
	}
	return nil
}
