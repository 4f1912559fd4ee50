package services

import (
	"context"
	"fmt"

	"sportsbook/domain/entities"
	"sportsbook/domain/interfaces"
	"sportsbook/events"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type lifecycleService struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewLifecycleService creates a new wager lifecycle service
func NewLifecycleService(uowFactory interfaces.UnitOfWorkFactory) interfaces.LifecycleService {
	return &lifecycleService{
		uowFactory: uowFactory,
	}
}

// Place verifies the balance, debits the stake and inserts the wager as one
// atomic unit. The per-user ledger lock closes the race where two concurrent
// placements both pass a stale balance check.
func (s *lifecycleService) Place(ctx context.Context, uid int64, stake decimal.Decimal, fixtureID int64, betType entities.BetType, selection string, oddsMultiplier decimal.Decimal) (*entities.Wager, error) {
	if !stake.IsPositive() {
		return nil, fmt.Errorf("%w: stake %s", entities.ErrInvalidAmount, stake)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	if err := uow.LedgerRepository().AcquireUserLock(ctx, uid); err != nil {
		return nil, err
	}

	balance, err := uow.LedgerRepository().GetBalance(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	if balance.LessThan(stake) {
		return nil, fmt.Errorf("%w: have %s, need %s", entities.ErrInsufficientBalance, balance, stake)
	}

	wager := &entities.Wager{
		UID:            uid,
		FixtureID:      fixtureID,
		BetType:        betType,
		Selection:      selection,
		Stake:          stake,
		OddsMultiplier: oddsMultiplier,
	}

	if err := uow.WagerRepository().Create(ctx, wager); err != nil {
		return nil, fmt.Errorf("failed to create wager: %w", err)
	}

	hold := &entities.Transaction{
		UID:           uid,
		Amount:        stake.Neg(),
		Kind:          entities.TransactionKindStakeHeld,
		LinkedWagerID: &wager.ID,
	}
	if err := uow.LedgerRepository().Record(ctx, hold); err != nil {
		return nil, fmt.Errorf("failed to hold stake for wager %d: %w", wager.ID, err)
	}

	uow.EventBus().Publish(events.WagerPlacedEvent{
		WagerID:   wager.ID,
		UID:       uid,
		FixtureID: fixtureID,
		BetType:   betType,
		Selection: selection,
		Stake:     stake,
		Odds:      oddsMultiplier,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit wager placement: %w", err)
	}

	log.WithFields(log.Fields{
		"wagerID":   wager.ID,
		"uid":       uid,
		"fixtureID": fixtureID,
		"stake":     stake.String(),
		"odds":      oddsMultiplier.String(),
	}).Info("Wager placed")

	return wager, nil
}

// SettleWin moves a pending wager to won and credits the payout. Returns false
// without error when the wager was already settled by a concurrent caller; in
// that case nothing is credited.
func (s *lifecycleService) SettleWin(ctx context.Context, wagerID int64, payout decimal.Decimal) (bool, error) {
	if !payout.IsPositive() {
		return false, fmt.Errorf("%w: payout %s", entities.ErrInvalidAmount, payout)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wager, err := uow.WagerRepository().GetByID(ctx, wagerID)
	if err != nil {
		return false, fmt.Errorf("failed to get wager: %w", err)
	}
	if wager == nil {
		return false, fmt.Errorf("%w: id %d", entities.ErrWagerNotFound, wagerID)
	}

	settled, err := uow.WagerRepository().CompareAndSetStatus(ctx, wagerID, entities.WagerStatusPending, entities.WagerStatusWon)
	if err != nil {
		return false, fmt.Errorf("failed to settle wager %d: %w", wagerID, err)
	}
	if !settled {
		// Lost the race to a concurrent settle or cancel; the winner already
		// produced the ledger effect. Crediting again would double-pay.
		log.WithFields(log.Fields{
			"wagerID": wagerID,
			"status":  wager.Status,
		}).Debug("Wager already settled, skipping win credit")
		return false, nil
	}

	payoutEntry := &entities.Transaction{
		UID:           wager.UID,
		Amount:        payout,
		Kind:          entities.TransactionKindWinPayout,
		LinkedWagerID: &wager.ID,
	}
	if err := uow.LedgerRepository().Record(ctx, payoutEntry); err != nil {
		// Rolling back undoes the status transition as well, so the wager
		// stays pending rather than won-without-payout.
		log.WithFields(log.Fields{
			"wagerID": wagerID,
			"uid":     wager.UID,
			"payout":  payout.String(),
			"error":   err,
		}).Error("Payout ledger write failed, rolling back settlement")
		return false, fmt.Errorf("failed to credit payout for wager %d: %w", wagerID, err)
	}

	uow.EventBus().Publish(events.WagerSettledEvent{
		WagerID: wager.ID,
		UID:     wager.UID,
		Status:  entities.WagerStatusWon,
		Payout:  payout,
	})

	if err := uow.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit win settlement: %w", err)
	}

	log.WithFields(log.Fields{
		"wagerID": wager.ID,
		"uid":     wager.UID,
		"payout":  payout.String(),
	}).Info("Wager settled as won")

	return true, nil
}

// SettleLoss moves a pending wager to lost. The stake was debited at placement
// and is not returned, so there is no ledger effect.
func (s *lifecycleService) SettleLoss(ctx context.Context, wagerID int64) (bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wager, err := uow.WagerRepository().GetByID(ctx, wagerID)
	if err != nil {
		return false, fmt.Errorf("failed to get wager: %w", err)
	}
	if wager == nil {
		return false, fmt.Errorf("%w: id %d", entities.ErrWagerNotFound, wagerID)
	}

	settled, err := uow.WagerRepository().CompareAndSetStatus(ctx, wagerID, entities.WagerStatusPending, entities.WagerStatusLost)
	if err != nil {
		return false, fmt.Errorf("failed to settle wager %d: %w", wagerID, err)
	}
	if !settled {
		log.WithFields(log.Fields{
			"wagerID": wagerID,
			"status":  wager.Status,
		}).Debug("Wager already settled, skipping loss")
		return false, nil
	}

	uow.EventBus().Publish(events.WagerSettledEvent{
		WagerID: wager.ID,
		UID:     wager.UID,
		Status:  entities.WagerStatusLost,
		Payout:  decimal.Zero,
	})

	if err := uow.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit loss settlement: %w", err)
	}

	log.WithFields(log.Fields{
		"wagerID": wager.ID,
		"uid":     wager.UID,
	}).Info("Wager settled as lost")

	return true, nil
}

// Cancel moves a pending wager to cancelled and refunds exactly the original
// stake, never stake times odds.
func (s *lifecycleService) Cancel(ctx context.Context, wagerID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wager, err := uow.WagerRepository().GetByID(ctx, wagerID)
	if err != nil {
		return fmt.Errorf("failed to get wager: %w", err)
	}
	if wager == nil {
		return fmt.Errorf("%w: id %d", entities.ErrWagerNotFound, wagerID)
	}

	cancelled, err := uow.WagerRepository().CompareAndSetStatus(ctx, wagerID, entities.WagerStatusPending, entities.WagerStatusCancelled)
	if err != nil {
		return fmt.Errorf("failed to cancel wager %d: %w", wagerID, err)
	}
	if !cancelled {
		return fmt.Errorf("%w: wager %d is %s", entities.ErrStatusAlreadyTerminal, wagerID, wager.Status)
	}

	refund := &entities.Transaction{
		UID:           wager.UID,
		Amount:        wager.Stake,
		Kind:          entities.TransactionKindStakeRefunded,
		LinkedWagerID: &wager.ID,
	}
	if err := uow.LedgerRepository().Record(ctx, refund); err != nil {
		log.WithFields(log.Fields{
			"wagerID": wagerID,
			"uid":     wager.UID,
			"refund":  wager.Stake.String(),
			"error":   err,
		}).Error("Refund ledger write failed, rolling back cancellation")
		return fmt.Errorf("failed to refund stake for wager %d: %w", wagerID, err)
	}

	uow.EventBus().Publish(events.WagerCancelledEvent{
		WagerID: wager.ID,
		UID:     wager.UID,
		Refund:  wager.Stake,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit cancellation: %w", err)
	}

	log.WithFields(log.Fields{
		"wagerID": wager.ID,
		"uid":     wager.UID,
		"refund":  wager.Stake.String(),
	}).Info("Wager cancelled, stake refunded")

	return nil
}
