package ledger

import (
	"fmt"

	"github.com/fleetledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OwnerAccount holds the per-owner running totals: the opening balance set
// from the control panel and the aggregate due balance, which is the sum of
// all outstanding due amounts across the owner's deferred transactions.
type OwnerAccount struct {
	shared.OwnerAggregateRoot
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	AggregateDue   decimal.Decimal `json:"aggregate_due"`
}

// NewOwnerAccount creates a new owner account with a zero aggregate due
func NewOwnerAccount(ownerID uuid.UUID, openingBalance decimal.Decimal) (*OwnerAccount, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if openingBalance.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Opening balance cannot be negative")
	}
	return &OwnerAccount{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(ownerID),
		OpeningBalance:     openingBalance,
		AggregateDue:       decimal.Zero,
	}, nil
}

// SetOpeningBalance replaces the opening balance
func (a *OwnerAccount) SetOpeningBalance(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Opening balance cannot be negative")
	}
	a.OpeningBalance = amount
	a.Touch()
	a.IncrementVersion()
	return nil
}

// AddDue increases the aggregate due balance when a deferred transaction is
// recorded.
func (a *OwnerAccount) AddDue(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Due amount cannot be negative")
	}
	a.AggregateDue = a.AggregateDue.Add(amount)
	a.Touch()
	a.IncrementVersion()
	return nil
}

// ReduceDue decreases the aggregate due balance by a settled amount. A
// result below zero signals a bookkeeping inconsistency and is rejected
// rather than clamped.
func (a *OwnerAccount) ReduceDue(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Settled amount cannot be negative")
	}
	next := a.AggregateDue.Sub(amount)
	if next.IsNegative() {
		return shared.NewDomainError("LEDGER_INCONSISTENT",
			fmt.Sprintf("Reducing aggregate due %s by %s would go negative", a.AggregateDue.String(), amount.String()))
	}
	a.AggregateDue = next
	a.Touch()
	a.IncrementVersion()
	return nil
}
