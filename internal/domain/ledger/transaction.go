package ledger

import (
	"fmt"
	"time"

	"github.com/fleetledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LogType classifies a transaction entry
type LogType string

const (
	LogTypeCredit LogType = "CREDIT"
	LogTypeDebit  LogType = "DEBIT"
)

// IsValid checks if the log type is valid
func (t LogType) IsValid() bool {
	return t == LogTypeCredit || t == LogTypeDebit
}

// PaymentStatus tracks the settlement state of a deferred transaction
type PaymentStatus string

const (
	PaymentStatusNone    PaymentStatus = "NONE"    // No settlement applied yet
	PaymentStatusPartial PaymentStatus = "PARTIAL" // Partially settled, 0 < due < original
	PaymentStatusFull    PaymentStatus = "FULL"    // Fully settled, due = 0
)

// IsValid checks if the payment status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusNone, PaymentStatusPartial, PaymentStatusFull:
		return true
	}
	return false
}

// IsTerminal returns true once no further settlement is accepted
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusFull
}

// Transaction is a recorded financial event for an owner's fleet business.
// A CREDIT transaction may be deferred ("pay later"), in which case its due
// amount is reduced over one or more settlement events until it reaches zero.
type Transaction struct {
	shared.OwnerAggregateRoot
	LogType          LogType         `json:"log_type"`
	Amount           decimal.Decimal `json:"amount"`
	Description      string          `json:"description"`
	PayLater         bool            `json:"pay_later"`
	DueAmount        decimal.Decimal `json:"due_amount"`
	PaymentStatus    PaymentStatus   `json:"payment_status"`
	BusID            *uuid.UUID      `json:"bus_id"`
	AgentID          *uuid.UUID      `json:"agent_id"`
	OperatorID       *uuid.UUID      `json:"operator_id"`
	CommissionAmount decimal.Decimal `json:"commission_amount"` // agent-side disbursement
	CollectionAmount decimal.Decimal `json:"collection_amount"` // operator-side disbursement
	RecordedAt       time.Time       `json:"recorded_at"`
}

// NewTransaction creates a new transaction. A pay-later transaction starts
// with its full amount due; anything else is treated as settled on creation.
func NewTransaction(
	ownerID uuid.UUID,
	logType LogType,
	amount decimal.Decimal,
	payLater bool,
) (*Transaction, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if !logType.IsValid() {
		return nil, shared.NewDomainError("INVALID_LOG_TYPE", "Log type must be CREDIT or DEBIT")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount must be positive")
	}

	due := decimal.Zero
	if payLater {
		due = amount
	}

	tx := &Transaction{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(ownerID),
		LogType:            logType,
		Amount:             amount,
		PayLater:           payLater,
		DueAmount:          due,
		PaymentStatus:      PaymentStatusNone,
		CommissionAmount:   decimal.Zero,
		CollectionAmount:   decimal.Zero,
		RecordedAt:         time.Now(),
	}

	tx.AddDomainEvent(NewTransactionRecordedEvent(tx))

	return tx, nil
}

// WithCommission attaches the agent-side commission disbursement
func (tx *Transaction) WithCommission(agentID uuid.UUID, amount decimal.Decimal) *Transaction {
	tx.AgentID = &agentID
	tx.CommissionAmount = amount
	return tx
}

// WithCollection attaches the operator-side collection disbursement
func (tx *Transaction) WithCollection(operatorID uuid.UUID, amount decimal.Decimal) *Transaction {
	tx.OperatorID = &operatorID
	tx.CollectionAmount = amount
	return tx
}

// IsSettled returns true if nothing remains due on this transaction.
// Non-deferred transactions are settled by definition.
func (tx *Transaction) IsSettled() bool {
	return !tx.PayLater || tx.DueAmount.IsZero()
}

// CountsTowardProfit reports whether this transaction is recognized in
// period profit: only settled CREDIT entries count.
func (tx *Transaction) CountsTowardProfit() bool {
	return tx.LogType == LogTypeCredit && tx.IsSettled()
}

// ProfitContribution returns amount minus the agent commission and operator
// collection disbursements.
func (tx *Transaction) ProfitContribution() decimal.Decimal {
	return tx.Amount.Sub(tx.CommissionAmount).Sub(tx.CollectionAmount)
}

// SettlementResult describes the outcome of a settlement applied to a
// deferred transaction.
type SettlementResult struct {
	SettledAmount decimal.Decimal `json:"settled_amount"`
	RemainingDue  decimal.Decimal `json:"remaining_due"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
}

// ApplyPartialSettlement reduces the due amount by operatorAmount plus
// agentAmount. If the due amount reaches exactly zero the transaction
// transitions to FULL; FULL is terminal.
func (tx *Transaction) ApplyPartialSettlement(operatorAmount, agentAmount decimal.Decimal) (*SettlementResult, error) {
	if err := tx.settlementGuard(); err != nil {
		return nil, err
	}
	if operatorAmount.IsNegative() || agentAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Settlement amounts cannot be negative")
	}

	total := operatorAmount.Add(agentAmount)
	if total.GreaterThan(tx.DueAmount) {
		return nil, shared.NewDomainError("EXCEEDS_DUE",
			fmt.Sprintf("Settlement %s exceeds outstanding due %s", total.String(), tx.DueAmount.String()))
	}

	tx.DueAmount = tx.DueAmount.Sub(total)
	if tx.DueAmount.IsZero() {
		tx.PaymentStatus = PaymentStatusFull
		tx.AddDomainEvent(NewTransactionSettledEvent(tx, total))
	} else {
		tx.PaymentStatus = PaymentStatusPartial
		tx.AddDomainEvent(NewTransactionPartiallySettledEvent(tx, total))
	}

	tx.Touch()
	tx.IncrementVersion()

	return &SettlementResult{
		SettledAmount: total,
		RemainingDue:  tx.DueAmount,
		PaymentStatus: tx.PaymentStatus,
	}, nil
}

// SettleFull settles the entire remaining due amount in one step.
func (tx *Transaction) SettleFull() (*SettlementResult, error) {
	if err := tx.settlementGuard(); err != nil {
		return nil, err
	}

	settled := tx.DueAmount
	tx.DueAmount = decimal.Zero
	tx.PaymentStatus = PaymentStatusFull
	tx.Touch()
	tx.IncrementVersion()

	tx.AddDomainEvent(NewTransactionSettledEvent(tx, settled))

	return &SettlementResult{
		SettledAmount: settled,
		RemainingDue:  decimal.Zero,
		PaymentStatus: PaymentStatusFull,
	}, nil
}

// settlementGuard rejects settlement on non-deferred or already settled
// transactions.
func (tx *Transaction) settlementGuard() error {
	if !tx.PayLater {
		return shared.NewDomainError("INVALID_STATE", "Transaction is not a pay-later transaction")
	}
	if tx.PaymentStatus.IsTerminal() {
		return shared.ErrAlreadySettled
	}
	return nil
}
