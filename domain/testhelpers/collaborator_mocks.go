package testhelpers

import (
	"context"

	"sportsbook/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockFixtureProvider is a mock implementation of FixtureProvider
type MockFixtureProvider struct {
	mock.Mock
}

func (m *MockFixtureProvider) GetFixture(ctx context.Context, fixtureID int64) (*entities.Fixture, error) {
	args := m.Called(ctx, fixtureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Fixture), args.Error(1)
}

// MockOddsProvider is a mock implementation of OddsProvider
type MockOddsProvider struct {
	mock.Mock
}

func (m *MockOddsProvider) GetOdds(ctx context.Context, fixtureID int64, betType entities.BetType) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, fixtureID, betType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// MockLifecycleService is a mock implementation of LifecycleService
type MockLifecycleService struct {
	mock.Mock
}

func (m *MockLifecycleService) Place(ctx context.Context, uid int64, stake decimal.Decimal, fixtureID int64, betType entities.BetType, selection string, oddsMultiplier decimal.Decimal) (*entities.Wager, error) {
	args := m.Called(ctx, uid, stake, fixtureID, betType, selection, oddsMultiplier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wager), args.Error(1)
}

func (m *MockLifecycleService) SettleWin(ctx context.Context, wagerID int64, payout decimal.Decimal) (bool, error) {
	args := m.Called(ctx, wagerID, payout)
	return args.Bool(0), args.Error(1)
}

func (m *MockLifecycleService) SettleLoss(ctx context.Context, wagerID int64) (bool, error) {
	args := m.Called(ctx, wagerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLifecycleService) Cancel(ctx context.Context, wagerID int64) error {
	args := m.Called(ctx, wagerID)
	return args.Error(0)
}

// MockSettlementService is a mock implementation of SettlementService
type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) ClaimAll(ctx context.Context, uid int64) (int, error) {
	args := m.Called(ctx, uid)
	return args.Int(0), args.Error(1)
}

// MockBalanceCache is a mock implementation of BalanceCache
type MockBalanceCache struct {
	mock.Mock
}

func (m *MockBalanceCache) Get(ctx context.Context, uid int64) (decimal.Decimal, bool, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).(decimal.Decimal), args.Bool(1), args.Error(2)
}

func (m *MockBalanceCache) Set(ctx context.Context, uid int64, balance decimal.Decimal) error {
	args := m.Called(ctx, uid, balance)
	return args.Error(0)
}

func (m *MockBalanceCache) Invalidate(ctx context.Context, uid int64) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}
