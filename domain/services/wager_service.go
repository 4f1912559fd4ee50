package services

import (
	"context"
	"fmt"

	"sportsbook/domain/entities"
	"sportsbook/domain/interfaces"
	"sportsbook/events"
	"sportsbook/metrics"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// listBetsLimit caps how many wagers a single listing returns
const listBetsLimit = 100

type wagerService struct {
	uowFactory   interfaces.UnitOfWorkFactory
	lifecycle    interfaces.LifecycleService
	settlement   interfaces.SettlementService
	wagerRepo    interfaces.WagerRepository
	ledgerRepo   interfaces.LedgerRepository
	fixtures     interfaces.FixtureProvider
	odds         interfaces.OddsProvider
	balanceCache interfaces.BalanceCache
}

// NewWagerService creates the public wager service. balanceCache may be nil to
// disable the read cache; the ledger is always the system of record.
func NewWagerService(
	uowFactory interfaces.UnitOfWorkFactory,
	lifecycle interfaces.LifecycleService,
	settlement interfaces.SettlementService,
	wagerRepo interfaces.WagerRepository,
	ledgerRepo interfaces.LedgerRepository,
	fixtures interfaces.FixtureProvider,
	odds interfaces.OddsProvider,
	balanceCache interfaces.BalanceCache,
) interfaces.WagerService {
	return &wagerService{
		uowFactory:   uowFactory,
		lifecycle:    lifecycle,
		settlement:   settlement,
		wagerRepo:    wagerRepo,
		ledgerRepo:   ledgerRepo,
		fixtures:     fixtures,
		odds:         odds,
		balanceCache: balanceCache,
	}
}

// PlaceBet validates the bet, confirms wagering is open, captures the current
// odds multiplier and places the wager
func (s *wagerService) PlaceBet(ctx context.Context, uid int64, amount decimal.Decimal, fixtureID int64, betType entities.BetType, selection string) (*entities.Wager, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount %s", entities.ErrInvalidAmount, amount)
	}
	if !betType.IsValid() {
		return nil, fmt.Errorf("%w: unknown bet type %q", entities.ErrInvalidSelection, betType)
	}
	if !betType.HasSelection(selection) {
		return nil, fmt.Errorf("%w: %q is not one of %v", entities.ErrInvalidSelection, selection, betType.Outcomes())
	}

	fixture, err := s.fixtures.GetFixture(ctx, fixtureID)
	if err != nil {
		return nil, fmt.Errorf("failed to get fixture %d: %w", fixtureID, err)
	}
	if !fixture.WageringOpen {
		return nil, fmt.Errorf("%w: fixture %d", entities.ErrWageringClosed, fixtureID)
	}

	multipliers, err := s.odds.GetOdds(ctx, fixtureID, betType)
	if err != nil {
		return nil, fmt.Errorf("failed to get odds for fixture %d: %w", fixtureID, err)
	}
	multiplier, ok := multipliers[selection]
	if !ok {
		return nil, fmt.Errorf("%w: fixture %d, %s/%s", entities.ErrNoOddsAvailable, fixtureID, betType, selection)
	}
	if multiplier.LessThan(decimal.NewFromInt(1)) {
		// A sub-1.0 quote can never pay out more than the stake; treat it as
		// an unusable entry rather than accept it.
		return nil, fmt.Errorf("%w: fixture %d quoted %s", entities.ErrNoOddsAvailable, fixtureID, multiplier)
	}

	wager, err := s.lifecycle.Place(ctx, uid, amount, fixtureID, betType, selection, multiplier)
	if err != nil {
		return nil, err
	}

	metrics.WagersPlaced.Inc()
	s.invalidateBalance(ctx, uid)

	return wager, nil
}

// ListBets returns the user's wagers, newest first
func (s *wagerService) ListBets(ctx context.Context, uid int64) ([]*entities.Wager, error) {
	return s.wagerRepo.ListByUser(ctx, uid, listBetsLimit)
}

// ClaimBets settles the user's claimable wagers and returns the settled count
func (s *wagerService) ClaimBets(ctx context.Context, uid int64) (int, error) {
	settled, err := s.settlement.ClaimAll(ctx, uid)
	if settled > 0 {
		s.invalidateBalance(ctx, uid)
	}
	return settled, err
}

// CancelBet cancels a pending wager and refunds its stake
func (s *wagerService) CancelBet(ctx context.Context, wagerID int64) error {
	wager, err := s.wagerRepo.GetByID(ctx, wagerID)
	if err != nil {
		return fmt.Errorf("failed to get wager: %w", err)
	}
	if wager == nil {
		return fmt.Errorf("%w: id %d", entities.ErrWagerNotFound, wagerID)
	}

	if err := s.lifecycle.Cancel(ctx, wagerID); err != nil {
		return err
	}

	s.invalidateBalance(ctx, wager.UID)
	return nil
}

// GetBalance returns the user's ledger-derived balance, through the read cache
// when one is configured
func (s *wagerService) GetBalance(ctx context.Context, uid int64) (decimal.Decimal, error) {
	if s.balanceCache != nil {
		if balance, hit, err := s.balanceCache.Get(ctx, uid); err == nil && hit {
			return balance, nil
		}
	}

	balance, err := s.ledgerRepo.GetBalance(ctx, uid)
	if err != nil {
		return decimal.Zero, err
	}

	if s.balanceCache != nil {
		if err := s.balanceCache.Set(ctx, uid, balance); err != nil {
			log.WithFields(log.Fields{"uid": uid, "error": err}).Warn("Failed to cache balance")
		}
	}

	return balance, nil
}

// Deposit credits funds to the user's ledger
func (s *wagerService) Deposit(ctx context.Context, uid int64, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount %s", entities.ErrInvalidAmount, amount)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	deposit := &entities.Transaction{
		UID:    uid,
		Amount: amount,
		Kind:   entities.TransactionKindDeposit,
	}
	if err := uow.LedgerRepository().Record(ctx, deposit); err != nil {
		return fmt.Errorf("failed to record deposit: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		UID:    uid,
		Amount: amount,
		Kind:   entities.TransactionKindDeposit,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit deposit: %w", err)
	}

	s.invalidateBalance(ctx, uid)
	return nil
}

// Withdraw debits funds from the user's ledger. The balance check and the
// debit share one transaction under the per-user ledger lock.
func (s *wagerService) Withdraw(ctx context.Context, uid int64, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount %s", entities.ErrInvalidAmount, amount)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.LedgerRepository().AcquireUserLock(ctx, uid); err != nil {
		return err
	}

	balance, err := uow.LedgerRepository().GetBalance(ctx, uid)
	if err != nil {
		return fmt.Errorf("failed to get balance: %w", err)
	}
	if balance.LessThan(amount) {
		return fmt.Errorf("%w: have %s, need %s", entities.ErrInsufficientBalance, balance, amount)
	}

	withdrawal := &entities.Transaction{
		UID:    uid,
		Amount: amount.Neg(),
		Kind:   entities.TransactionKindWithdrawal,
	}
	if err := uow.LedgerRepository().Record(ctx, withdrawal); err != nil {
		return fmt.Errorf("failed to record withdrawal: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		UID:    uid,
		Amount: amount.Neg(),
		Kind:   entities.TransactionKindWithdrawal,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit withdrawal: %w", err)
	}

	s.invalidateBalance(ctx, uid)
	return nil
}

func (s *wagerService) invalidateBalance(ctx context.Context, uid int64) {
	if s.balanceCache == nil {
		return
	}
	if err := s.balanceCache.Invalidate(ctx, uid); err != nil {
		log.WithFields(log.Fields{"uid": uid, "error": err}).Warn("Failed to invalidate balance cache")
	}
}
