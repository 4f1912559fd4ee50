package repository

import (
	"context"
	"fmt"

	"sportsbook/database"
	"sportsbook/domain/entities"

	"github.com/jackc/pgx/v5"
)

// WagerRepository implements wager data access
type WagerRepository struct {
	q Queryable
}

// NewWagerRepository creates a new wager repository
func NewWagerRepository(db *database.DB) *WagerRepository {
	return &WagerRepository{q: db.Pool}
}

// newWagerRepositoryWithTx creates a new wager repository bound to a transaction
func newWagerRepositoryWithTx(tx Queryable) *WagerRepository {
	return &WagerRepository{q: tx}
}

// Create inserts a new wager with status pending
func (r *WagerRepository) Create(ctx context.Context, wager *entities.Wager) error {
	wager.Status = entities.WagerStatusPending

	query := `
		INSERT INTO wagers (uid, fixture_id, bet_type, selection, stake, odds_multiplier, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		wager.UID,
		wager.FixtureID,
		wager.BetType,
		wager.Selection,
		wager.Stake,
		wager.OddsMultiplier,
		wager.Status,
	).Scan(&wager.ID, &wager.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create wager: %w", err)
	}

	return nil
}

// GetByID retrieves a wager by its ID
func (r *WagerRepository) GetByID(ctx context.Context, id int64) (*entities.Wager, error) {
	query := `
		SELECT id, uid, fixture_id, bet_type, selection, stake, odds_multiplier, status, created_at, settled_at
		FROM wagers
		WHERE id = $1
	`

	var wager entities.Wager
	err := r.q.QueryRow(ctx, query, id).Scan(
		&wager.ID,
		&wager.UID,
		&wager.FixtureID,
		&wager.BetType,
		&wager.Selection,
		&wager.Stake,
		&wager.OddsMultiplier,
		&wager.Status,
		&wager.CreatedAt,
		&wager.SettledAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wager by ID %d: %w", id, err)
	}

	return &wager, nil
}

// ListByUser returns all wagers for a user, newest first
func (r *WagerRepository) ListByUser(ctx context.Context, uid int64, limit int) ([]*entities.Wager, error) {
	query := `
		SELECT id, uid, fixture_id, bet_type, selection, stake, odds_multiplier, status, created_at, settled_at
		FROM wagers
		WHERE uid = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, uid, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list wagers for user %d: %w", uid, err)
	}
	defer rows.Close()

	return scanWagers(rows)
}

// ListPendingByUser returns the user's wagers still awaiting settlement
func (r *WagerRepository) ListPendingByUser(ctx context.Context, uid int64) ([]*entities.Wager, error) {
	query := `
		SELECT id, uid, fixture_id, bet_type, selection, stake, odds_multiplier, status, created_at, settled_at
		FROM wagers
		WHERE uid = $1 AND status = $2
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.q.Query(ctx, query, uid, entities.WagerStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending wagers for user %d: %w", uid, err)
	}
	defer rows.Close()

	return scanWagers(rows)
}

// ListUsersWithPending returns the distinct users that have pending wagers
func (r *WagerRepository) ListUsersWithPending(ctx context.Context) ([]int64, error) {
	query := `
		SELECT DISTINCT uid
		FROM wagers
		WHERE status = $1
	`

	rows, err := r.q.Query(ctx, query, entities.WagerStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list users with pending wagers: %w", err)
	}
	defer rows.Close()

	var uids []int64
	for rows.Next() {
		var uid int64
		if err := rows.Scan(&uid); err != nil {
			return nil, fmt.Errorf("failed to scan uid: %w", err)
		}
		uids = append(uids, uid)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate uids: %w", err)
	}

	return uids, nil
}

// CompareAndSetStatus atomically moves a wager from expected to new status.
// Returns false when the row's current status differs from expected.
func (r *WagerRepository) CompareAndSetStatus(ctx context.Context, id int64, expected, new entities.WagerStatus) (bool, error) {
	query := `
		UPDATE wagers
		SET status = $3,
		    settled_at = CASE WHEN $3 IN ('won', 'lost', 'cancelled') THEN NOW() ELSE settled_at END
		WHERE id = $1 AND status = $2
	`

	result, err := r.q.Exec(ctx, query, id, expected, new)
	if err != nil {
		return false, fmt.Errorf("failed to update status of wager %d: %w", id, err)
	}

	return result.RowsAffected() == 1, nil
}

func scanWagers(rows pgx.Rows) ([]*entities.Wager, error) {
	var wagers []*entities.Wager
	for rows.Next() {
		var wager entities.Wager
		err := rows.Scan(
			&wager.ID,
			&wager.UID,
			&wager.FixtureID,
			&wager.BetType,
			&wager.Selection,
			&wager.Stake,
			&wager.OddsMultiplier,
			&wager.Status,
			&wager.CreatedAt,
			&wager.SettledAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wager: %w", err)
		}
		wagers = append(wagers, &wager)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wagers: %w", err)
	}

	return wagers, nil
}
