package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sportsbook/domain/entities"
	"sportsbook/domain/interfaces"
	"sportsbook/metrics"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// SettlementResult classifies what a fixture result means for one wager
type SettlementResult int

const (
	// SettlementNotReady means the fixture has not reached a final state yet
	SettlementNotReady SettlementResult = iota
	SettlementWin
	SettlementLoss
)

// Outcome is the decision for a single wager
type Outcome struct {
	Result SettlementResult
	Payout decimal.Decimal
}

// SettlementEvaluator contains pure settlement logic, no side effects
type SettlementEvaluator struct{}

// NewSettlementEvaluator creates a new SettlementEvaluator
func NewSettlementEvaluator() *SettlementEvaluator {
	return &SettlementEvaluator{}
}

// Decide resolves a wager against a fixture snapshot. Unsupported bet types or
// selections should have been rejected at placement; seeing one here is a
// logic error, not an operational outcome.
func (e *SettlementEvaluator) Decide(wager *entities.Wager, fixture *entities.Fixture) (Outcome, error) {
	if !fixture.IsFinal {
		return Outcome{Result: SettlementNotReady}, nil
	}

	won, err := e.selectionWon(wager, fixture)
	if err != nil {
		return Outcome{}, err
	}

	if won {
		return Outcome{Result: SettlementWin, Payout: wager.Payout()}, nil
	}
	return Outcome{Result: SettlementLoss}, nil
}

func (e *SettlementEvaluator) selectionWon(wager *entities.Wager, fixture *entities.Fixture) (bool, error) {
	if !wager.BetType.HasSelection(wager.Selection) {
		return false, fmt.Errorf("%w: bet type %q selection %q", entities.ErrInvalidWager, wager.BetType, wager.Selection)
	}

	switch wager.BetType {
	case entities.BetTypeMatchWinner:
		return wager.Selection == fixture.WinningSelection(), nil
	case entities.BetTypeBothTeamsToScore:
		if fixture.BothTeamsScored() {
			return wager.Selection == entities.SelectionYes, nil
		}
		return wager.Selection == entities.SelectionNo, nil
	default:
		return false, fmt.Errorf("%w: unsupported bet type %q", entities.ErrInvalidWager, wager.BetType)
	}
}

type settlementService struct {
	wagerRepo interfaces.WagerRepository
	fixtures  interfaces.FixtureProvider
	lifecycle interfaces.LifecycleService
	evaluator *SettlementEvaluator
}

// NewSettlementService creates a new settlement service
func NewSettlementService(wagerRepo interfaces.WagerRepository, fixtures interfaces.FixtureProvider, lifecycle interfaces.LifecycleService) interfaces.SettlementService {
	return &settlementService{
		wagerRepo: wagerRepo,
		fixtures:  fixtures,
		lifecycle: lifecycle,
		evaluator: NewSettlementEvaluator(),
	}
}

// ClaimAll settles every pending wager of a user whose fixture has finished.
// Wagers on unfinished fixtures stay pending and do not count. Each settlement
// is its own atomic unit, so a failure partway leaves earlier settlements
// committed and the sweep safe to re-run.
func (s *settlementService) ClaimAll(ctx context.Context, uid int64) (int, error) {
	start := time.Now()

	pending, err := s.wagerRepo.ListPendingByUser(ctx, uid)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending wagers: %w", err)
	}

	settled := 0
	for _, wager := range pending {
		fixture, err := s.fixtures.GetFixture(ctx, wager.FixtureID)
		if err != nil {
			if errors.Is(err, entities.ErrFixtureNotFound) || errors.Is(err, entities.ErrUpstreamUnavailable) {
				return settled, fmt.Errorf("fixture %d for wager %d: %w", wager.FixtureID, wager.ID, err)
			}
			return settled, fmt.Errorf("fixture %d for wager %d: %w: %s", wager.FixtureID, wager.ID, entities.ErrUpstreamUnavailable, err)
		}

		outcome, err := s.evaluator.Decide(wager, fixture)
		if err != nil {
			// Placement-time validation should make this unreachable; surface
			// it loudly instead of guessing a resolution.
			log.WithFields(log.Fields{
				"wagerID":   wager.ID,
				"uid":       wager.UID,
				"fixtureID": wager.FixtureID,
				"betType":   wager.BetType,
				"selection": wager.Selection,
				"error":     err,
			}).Error("Refusing to settle malformed wager")
			return settled, err
		}

		switch outcome.Result {
		case SettlementNotReady:
			continue
		case SettlementWin:
			moved, err := s.lifecycle.SettleWin(ctx, wager.ID, outcome.Payout)
			if err != nil {
				return settled, err
			}
			if moved {
				settled++
				metrics.WagersSettled.WithLabelValues(string(entities.WagerStatusWon)).Inc()
			}
		case SettlementLoss:
			moved, err := s.lifecycle.SettleLoss(ctx, wager.ID)
			if err != nil {
				return settled, err
			}
			if moved {
				settled++
				metrics.WagersSettled.WithLabelValues(string(entities.WagerStatusLost)).Inc()
			}
		}
	}

	metrics.ClaimSweepDuration.Observe(time.Since(start).Seconds())

	if settled > 0 {
		log.WithFields(log.Fields{
			"uid":     uid,
			"settled": settled,
			"pending": len(pending) - settled,
		}).Info("Claim sweep finished")
	}

	return settled, nil
}
