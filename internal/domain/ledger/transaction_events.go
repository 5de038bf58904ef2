package ledger

import (
	"github.com/fleetledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionRecordedEvent is raised when a new transaction is recorded
type TransactionRecordedEvent struct {
	shared.BaseDomainEvent
	TransactionID uuid.UUID       `json:"transaction_id"`
	LogType       LogType         `json:"log_type"`
	Amount        decimal.Decimal `json:"amount"`
	PayLater      bool            `json:"pay_later"`
	DueAmount     decimal.Decimal `json:"due_amount"`
}

// EventType returns the event type name
func (e *TransactionRecordedEvent) EventType() string {
	return "TransactionRecorded"
}

// NewTransactionRecordedEvent creates a new TransactionRecordedEvent
func NewTransactionRecordedEvent(tx *Transaction) *TransactionRecordedEvent {
	return &TransactionRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("TransactionRecorded", "Transaction", tx.ID, tx.OwnerID),
		TransactionID:   tx.ID,
		LogType:         tx.LogType,
		Amount:          tx.Amount,
		PayLater:        tx.PayLater,
		DueAmount:       tx.DueAmount,
	}
}

// TransactionPartiallySettledEvent is raised when a partial settlement leaves
// a remaining due amount
type TransactionPartiallySettledEvent struct {
	shared.BaseDomainEvent
	TransactionID uuid.UUID       `json:"transaction_id"`
	SettledAmount decimal.Decimal `json:"settled_amount"`
	RemainingDue  decimal.Decimal `json:"remaining_due"`
}

// EventType returns the event type name
func (e *TransactionPartiallySettledEvent) EventType() string {
	return "TransactionPartiallySettled"
}

// NewTransactionPartiallySettledEvent creates a new TransactionPartiallySettledEvent
func NewTransactionPartiallySettledEvent(tx *Transaction, settled decimal.Decimal) *TransactionPartiallySettledEvent {
	return &TransactionPartiallySettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("TransactionPartiallySettled", "Transaction", tx.ID, tx.OwnerID),
		TransactionID:   tx.ID,
		SettledAmount:   settled,
		RemainingDue:    tx.DueAmount,
	}
}

// TransactionSettledEvent is raised when a transaction reaches due = 0
type TransactionSettledEvent struct {
	shared.BaseDomainEvent
	TransactionID uuid.UUID       `json:"transaction_id"`
	SettledAmount decimal.Decimal `json:"settled_amount"`
}

// EventType returns the event type name
func (e *TransactionSettledEvent) EventType() string {
	return "TransactionSettled"
}

// NewTransactionSettledEvent creates a new TransactionSettledEvent
func NewTransactionSettledEvent(tx *Transaction, settled decimal.Decimal) *TransactionSettledEvent {
	return &TransactionSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("TransactionSettled", "Transaction", tx.ID, tx.OwnerID),
		TransactionID:   tx.ID,
		SettledAmount:   settled,
	}
}
