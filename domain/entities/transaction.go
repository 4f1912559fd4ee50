package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind represents the type of money movement recorded in the ledger
type TransactionKind string

// All transaction kinds supported by the ledger
const (
	TransactionKindDeposit       TransactionKind = "deposit"
	TransactionKindWithdrawal    TransactionKind = "withdrawal"
	TransactionKindStakeHeld     TransactionKind = "stake_held"
	TransactionKindStakeRefunded TransactionKind = "stake_refunded"
	TransactionKindWinPayout     TransactionKind = "win_payout"
	TransactionKindTransferOut   TransactionKind = "transfer_out"
	TransactionKindTransferIn    TransactionKind = "transfer_in"
)

// IsWagerLinked returns true for kinds that must reference a wager
func (k TransactionKind) IsWagerLinked() bool {
	switch k {
	case TransactionKindStakeHeld, TransactionKindStakeRefunded, TransactionKindWinPayout:
		return true
	}
	return false
}

// Transaction is a single immutable ledger entry. Entries are only ever
// appended; a user's balance is the sum of their entries, never a stored field.
type Transaction struct {
	ID            int64           `db:"id"`
	UID           int64           `db:"uid"`
	Amount        decimal.Decimal `db:"amount"`
	Kind          TransactionKind `db:"kind"`
	LinkedWagerID *int64          `db:"linked_wager_id"`
	CreatedAt     time.Time       `db:"created_at"`
}

// IsCredit returns true if the entry increases the balance
func (t *Transaction) IsCredit() bool {
	return t.Amount.IsPositive()
}

// IsDebit returns true if the entry decreases the balance
func (t *Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}

// Validate performs basic validation before the entry is written
func (t *Transaction) Validate() error {
	if t.Amount.IsZero() {
		return ErrInvalidAmount
	}

	if t.Kind.IsWagerLinked() && t.LinkedWagerID == nil {
		return ErrInvalidWager
	}

	return nil
}
