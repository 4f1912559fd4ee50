package testutil

import (
	"sportsbook/domain/entities"

	"github.com/shopspring/decimal"
)

// CreateTestWager creates a test wager with sensible defaults
func CreateTestWager(uid, fixtureID int64) *entities.Wager {
	return &entities.Wager{
		UID:            uid,
		FixtureID:      fixtureID,
		BetType:        entities.BetTypeMatchWinner,
		Selection:      entities.SelectionHome,
		Stake:          decimal.NewFromInt(100),
		OddsMultiplier: decimal.NewFromFloat(2.0),
		Status:         entities.WagerStatusPending,
	}
}

// CreateTestWagerWithStake creates a test wager with a specific stake and odds
func CreateTestWagerWithStake(uid, fixtureID int64, stake, odds decimal.Decimal) *entities.Wager {
	wager := CreateTestWager(uid, fixtureID)
	wager.Stake = stake
	wager.OddsMultiplier = odds
	return wager
}

// CreateTestDeposit creates a deposit ledger entry
func CreateTestDeposit(uid int64, amount decimal.Decimal) *entities.Transaction {
	return &entities.Transaction{
		UID:    uid,
		Amount: amount,
		Kind:   entities.TransactionKindDeposit,
	}
}

// CreateTestStakeHold creates the debit entry that holds a wager's stake
func CreateTestStakeHold(uid, wagerID int64, stake decimal.Decimal) *entities.Transaction {
	return &entities.Transaction{
		UID:           uid,
		Amount:        stake.Neg(),
		Kind:          entities.TransactionKindStakeHeld,
		LinkedWagerID: &wagerID,
	}
}

// CreateTestWinPayout creates the credit entry for a won wager
func CreateTestWinPayout(uid, wagerID int64, payout decimal.Decimal) *entities.Transaction {
	return &entities.Transaction{
		UID:           uid,
		Amount:        payout,
		Kind:          entities.TransactionKindWinPayout,
		LinkedWagerID: &wagerID,
	}
}
