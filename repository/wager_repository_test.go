package repository

import (
	"context"
	"testing"

	"sportsbook/domain/entities"
	"sportsbook/repository/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWagerRepository_Create(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewWagerRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		wager := testutil.CreateTestWagerWithStake(100, 10, decimal.NewFromInt(50), decimal.RequireFromString("2.5"))

		err := repo.Create(ctx, wager)
		require.NoError(t, err)

		assert.NotZero(t, wager.ID)
		assert.Equal(t, entities.WagerStatusPending, wager.Status)
		assert.False(t, wager.CreatedAt.IsZero())
	})

	t.Run("status forced to pending", func(t *testing.T) {
		wager := testutil.CreateTestWager(100, 10)
		wager.Status = entities.WagerStatusWon

		err := repo.Create(ctx, wager)
		require.NoError(t, err)
		assert.Equal(t, entities.WagerStatusPending, wager.Status)
	})

	t.Run("non-positive stake rejected by schema", func(t *testing.T) {
		wager := testutil.CreateTestWagerWithStake(100, 10, decimal.Zero, decimal.NewFromFloat(2.0))

		err := repo.Create(ctx, wager)
		assert.Error(t, err)
	})
}

func TestWagerRepository_GetByID(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewWagerRepository(testDB.DB)
	ctx := context.Background()

	t.Run("wager not found", func(t *testing.T) {
		wager, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, wager)
	})

	t.Run("wager found", func(t *testing.T) {
		created := testutil.CreateTestWagerWithStake(200, 11, decimal.RequireFromString("25.50"), decimal.RequireFromString("1.333"))
		require.NoError(t, repo.Create(ctx, created))

		wager, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, wager)

		assert.Equal(t, created.UID, wager.UID)
		assert.Equal(t, created.FixtureID, wager.FixtureID)
		assert.Equal(t, created.BetType, wager.BetType)
		assert.Equal(t, created.Selection, wager.Selection)
		assert.Equal(t, "25.50", wager.Stake.StringFixed(2))
		assert.Equal(t, "1.333", wager.OddsMultiplier.StringFixed(3))
		assert.Nil(t, wager.SettledAt)
	})
}

func TestWagerRepository_CompareAndSetStatus(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewWagerRepository(testDB.DB)
	ctx := context.Background()

	t.Run("pending to won", func(t *testing.T) {
		wager := testutil.CreateTestWager(300, 10)
		require.NoError(t, repo.Create(ctx, wager))

		ok, err := repo.CompareAndSetStatus(ctx, wager.ID, entities.WagerStatusPending, entities.WagerStatusWon)
		require.NoError(t, err)
		assert.True(t, ok)

		updated, err := repo.GetByID(ctx, wager.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.WagerStatusWon, updated.Status)
		assert.NotNil(t, updated.SettledAt)
	})

	t.Run("second transition fails", func(t *testing.T) {
		wager := testutil.CreateTestWager(300, 10)
		require.NoError(t, repo.Create(ctx, wager))

		ok, err := repo.CompareAndSetStatus(ctx, wager.ID, entities.WagerStatusPending, entities.WagerStatusLost)
		require.NoError(t, err)
		require.True(t, ok)

		// The wager is no longer pending, so a competing transition is a no-op
		ok, err = repo.CompareAndSetStatus(ctx, wager.ID, entities.WagerStatusPending, entities.WagerStatusCancelled)
		require.NoError(t, err)
		assert.False(t, ok)

		updated, err := repo.GetByID(ctx, wager.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.WagerStatusLost, updated.Status)
	})

	t.Run("unknown wager", func(t *testing.T) {
		ok, err := repo.CompareAndSetStatus(ctx, 999999, entities.WagerStatusPending, entities.WagerStatusWon)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestWagerRepository_ListPendingByUser(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewWagerRepository(testDB.DB)
	ctx := context.Background()
	uid := int64(400)

	pending := testutil.CreateTestWager(uid, 10)
	require.NoError(t, repo.Create(ctx, pending))

	settled := testutil.CreateTestWager(uid, 11)
	require.NoError(t, repo.Create(ctx, settled))
	ok, err := repo.CompareAndSetStatus(ctx, settled.ID, entities.WagerStatusPending, entities.WagerStatusLost)
	require.NoError(t, err)
	require.True(t, ok)

	other := testutil.CreateTestWager(401, 10)
	require.NoError(t, repo.Create(ctx, other))

	wagers, err := repo.ListPendingByUser(ctx, uid)
	require.NoError(t, err)
	require.Len(t, wagers, 1)
	assert.Equal(t, pending.ID, wagers[0].ID)
}

func TestWagerRepository_ListUsersWithPending(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewWagerRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.CreateTestWager(500, 10)))
	require.NoError(t, repo.Create(ctx, testutil.CreateTestWager(500, 11)))
	require.NoError(t, repo.Create(ctx, testutil.CreateTestWager(501, 10)))

	settled := testutil.CreateTestWager(502, 10)
	require.NoError(t, repo.Create(ctx, settled))
	ok, err := repo.CompareAndSetStatus(ctx, settled.ID, entities.WagerStatusPending, entities.WagerStatusWon)
	require.NoError(t, err)
	require.True(t, ok)

	uids, err := repo.ListUsersWithPending(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{500, 501}, uids)
}

func TestWagerRepository_ListByUser(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewWagerRepository(testDB.DB)
	ctx := context.Background()
	uid := int64(600)

	first := testutil.CreateTestWager(uid, 10)
	require.NoError(t, repo.Create(ctx, first))
	second := testutil.CreateTestWager(uid, 11)
	require.NoError(t, repo.Create(ctx, second))

	wagers, err := repo.ListByUser(ctx, uid, 10)
	require.NoError(t, err)
	require.Len(t, wagers, 2)

	// Newest first
	assert.Equal(t, second.ID, wagers[0].ID)
	assert.Equal(t, first.ID, wagers[1].ID)
}
