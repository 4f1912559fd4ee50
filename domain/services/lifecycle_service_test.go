package services

import (
	"context"
	"testing"

	"sportsbook/domain/entities"
	"sportsbook/domain/testhelpers"
	"sportsbook/events"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLifecycleFixture() (*testhelpers.MockUnitOfWork, *lifecycleService) {
	uow := testhelpers.NewMockUnitOfWork()
	factory := &testhelpers.MockUnitOfWorkFactory{UnitOfWork: uow}
	service := NewLifecycleService(factory).(*lifecycleService)
	return uow, service
}

func TestPlaceDebitsStakeAndCreatesWager(t *testing.T) {
	ctx := context.Background()
	uow, service := newLifecycleFixture()

	uid := int64(42)
	stake := decimal.NewFromInt(100)
	odds := decimal.NewFromFloat(2.0)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit").Return(nil)
	uow.On("Rollback").Return(nil)
	uow.Ledger.On("AcquireUserLock", ctx, uid).Return(nil)
	uow.Ledger.On("GetBalance", ctx, uid).Return(decimal.NewFromInt(100), nil)
	uow.Wagers.On("Create", ctx, mock.AnythingOfType("*entities.Wager")).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.Wager).ID = 7
	}).Return(nil)
	uow.Ledger.On("Record", ctx, mock.MatchedBy(func(tx *entities.Transaction) bool {
		return tx.Kind == entities.TransactionKindStakeHeld &&
			tx.Amount.Equal(decimal.NewFromInt(-100)) &&
			tx.LinkedWagerID != nil && *tx.LinkedWagerID == 7
	})).Return(nil)
	uow.Publisher.On("Publish", mock.AnythingOfType("events.WagerPlacedEvent")).Return(nil)

	wager, err := service.Place(ctx, uid, stake, 10, entities.BetTypeMatchWinner, entities.SelectionHome, odds)

	require.NoError(t, err)
	require.NotNil(t, wager)
	assert.Equal(t, int64(7), wager.ID)
	assert.True(t, wager.Stake.Equal(stake))
	uow.Ledger.AssertExpectations(t)
	uow.Wagers.AssertExpectations(t)
	uow.AssertCalled(t, "Commit")
}

func TestPlaceRejectsInsufficientBalance(t *testing.T) {
	ctx := context.Background()
	uow, service := newLifecycleFixture()

	uid := int64(42)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback").Return(nil)
	uow.Ledger.On("AcquireUserLock", ctx, uid).Return(nil)
	uow.Ledger.On("GetBalance", ctx, uid).Return(decimal.NewFromInt(50), nil)

	wager, err := service.Place(ctx, uid, decimal.NewFromInt(100), 10, entities.BetTypeMatchWinner, entities.SelectionHome, decimal.NewFromFloat(2.0))

	assert.ErrorIs(t, err, entities.ErrInsufficientBalance)
	assert.Nil(t, wager)
	uow.Wagers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	uow.Ledger.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit")
}

func TestPlaceRejectsNonPositiveStake(t *testing.T) {
	ctx := context.Background()
	_, service := newLifecycleFixture()

	for _, stake := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		wager, err := service.Place(ctx, 42, stake, 10, entities.BetTypeMatchWinner, entities.SelectionHome, decimal.NewFromFloat(2.0))

		assert.ErrorIs(t, err, entities.ErrInvalidAmount)
		assert.Nil(t, wager)
	}
}

func TestPlaceAllowsExactBalanceStake(t *testing.T) {
	ctx := context.Background()
	uow, service := newLifecycleFixture()

	uid := int64(42)
	stake := decimal.NewFromInt(100)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit").Return(nil)
	uow.On("Rollback").Return(nil)
	uow.Ledger.On("AcquireUserLock", ctx, uid).Return(nil)
	uow.Ledger.On("GetBalance", ctx, uid).Return(decimal.NewFromInt(100), nil)
	uow.Wagers.On("Create", ctx, mock.Anything).Return(nil)
	uow.Ledger.On("Record", ctx, mock.Anything).Return(nil)
	uow.Publisher.On("Publish", mock.Anything).Return(nil)

	_, err := service.Place(ctx, uid, stake, 10, entities.BetTypeMatchWinner, entities.SelectionHome, decimal.NewFromFloat(2.0))

	require.NoError(t, err)
}

func TestSettleWinCreditsPayout(t *testing.T) {
	ctx := context.Background()
	uow, service := newLifecycleFixture()

	wager := &entities.Wager{
		ID: 7, UID: 42,
		Stake: decimal.NewFromInt(100), OddsMultiplier: decimal.NewFromFloat(2.0),
		Status: entities.WagerStatusPending,
	}
	payout := decimal.NewFromInt(200)

	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit").Return(nil)
	uow.On("Rollback").Return(nil)
	uow.Wagers.On("GetByID", ctx, int64(7)).Return(wager, nil)
	uow.Wagers.On("CompareAndSetStatus", ctx, int64(7), entities.WagerStatusPending, entities.WagerStatusWon).Return(true, nil)
	uow.Ledger.On("Record", ctx, mock.MatchedBy(func(tx *entities.Transaction) bool {
		return tx.Kind == entities.TransactionKindWinPayout && tx.Amount.Equal(payout)
	})).Return(nil)
	uow.Publisher.On("Publish", mock.MatchedBy(func(e events.WagerSettledEvent) bool {
		return e.Status == entities.WagerStatusWon && e.Payout.Equal(payout)
	})).Return(nil)

	moved, err := service.SettleWin(ctx, 7, payout)

	require.NoError(t, err)
	assert.True(t, moved)
	uow.Ledger.AssertExpectations(t)
}

func TestSettleWinSkipsAlreadySettledWager(t *testing.T) {
	ctx := context.Background()
	uow, service := newLifecycleFixture()

	wager := &entities.Wager{ID: 7, UID: 42, Status: entities.WagerStatusWon}

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback").Return(nil)
	uow.Wagers.On("GetByID", ctx, int64(7)).Return(wager, nil)
	uow.Wagers.On("CompareAndSetStatus", ctx, int64(7), entities.WagerStatusPending, entities.WagerStatusWon).Return(false, nil)

	moved, err := service.SettleWin(ctx, 7, decimal.NewFromInt(200))

	require.NoError(t, err)
	assert.False(t, moved)
	uow.Ledger.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit")
}

func TestSettleWinUnknownWager(t *testing.T) {
	ctx := context.Background()
	uow, service := newLifecycleFixture()

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback").Return(nil)
	uow.Wagers.On("GetByID", ctx, int64(99)).Return(nil, nil)

	moved, err := service.SettleWin(ctx, 99, decimal.NewFromInt(10))

	assert.ErrorIs(t, err, entities.ErrWagerNotFound)
	assert.False(t, moved)
}

func TestSettleLossLeavesLedgerUntouched(t *testing.T) {
	ctx := context.Background()
	uow, service := newLifecycleFixture()

	wager := &entities.Wager{ID: 7, UID: 42, Status: entities.WagerStatusPending}

	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit").Return(nil)
	uow.On("Rollback").Return(nil)
	uow.Wagers.On("GetByID", ctx, int64(7)).Return(wager, nil)
	uow.Wagers.On("CompareAndSetStatus", ctx, int64(7), entities.WagerStatusPending, entities.WagerStatusLost).Return(true, nil)
	uow.Publisher.On("Publish", mock.AnythingOfType("events.WagerSettledEvent")).Return(nil)

	moved, err := service.SettleLoss(ctx, 7)

	require.NoError(t, err)
	assert.True(t, moved)
	uow.Ledger.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestCancelRefundsExactStake(t *testing.T) {
	ctx := context.Background()
	uow, service := newLifecycleFixture()

	wager := &entities.Wager{
		ID: 7, UID: 42,
		Stake: decimal.NewFromInt(100), OddsMultiplier: decimal.NewFromFloat(2.5),
		Status: entities.WagerStatusPending,
	}

	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit").Return(nil)
	uow.On("Rollback").Return(nil)
	uow.Wagers.On("GetByID", ctx, int64(7)).Return(wager, nil)
	uow.Wagers.On("CompareAndSetStatus", ctx, int64(7), entities.WagerStatusPending, entities.WagerStatusCancelled).Return(true, nil)
	uow.Ledger.On("Record", ctx, mock.MatchedBy(func(tx *entities.Transaction) bool {
		// The refund is the stake alone, never stake times odds.
		return tx.Kind == entities.TransactionKindStakeRefunded && tx.Amount.Equal(decimal.NewFromInt(100))
	})).Return(nil)
	uow.Publisher.On("Publish", mock.AnythingOfType("events.WagerCancelledEvent")).Return(nil)

	err := service.Cancel(ctx, 7)

	require.NoError(t, err)
	uow.Ledger.AssertExpectations(t)
}

func TestCancelAlreadyTerminalWager(t *testing.T) {
	ctx := context.Background()
	uow, service := newLifecycleFixture()

	wager := &entities.Wager{ID: 7, UID: 42, Status: entities.WagerStatusLost}

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback").Return(nil)
	uow.Wagers.On("GetByID", ctx, int64(7)).Return(wager, nil)
	uow.Wagers.On("CompareAndSetStatus", ctx, int64(7), entities.WagerStatusPending, entities.WagerStatusCancelled).Return(false, nil)

	err := service.Cancel(ctx, 7)

	assert.ErrorIs(t, err, entities.ErrStatusAlreadyTerminal)
	uow.Ledger.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit")
}

func TestCancelUnknownWager(t *testing.T) {
	ctx := context.Background()
	uow, service := newLifecycleFixture()

	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback").Return(nil)
	uow.Wagers.On("GetByID", ctx, int64(99)).Return(nil, nil)

	err := service.Cancel(ctx, 99)

	assert.ErrorIs(t, err, entities.ErrWagerNotFound)
}
