package models

import (
	"time"

	"github.com/fleetledger/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionModel is the persistence model for the Transaction aggregate root.
type TransactionModel struct {
	OwnerAggregateModel
	LogType          ledger.LogType       `gorm:"type:varchar(10);not null;index"`
	Amount           decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Description      string               `gorm:"type:varchar(500)"`
	PayLater         bool                 `gorm:"not null;default:false;index"`
	DueAmount        decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	PaymentStatus    ledger.PaymentStatus `gorm:"type:varchar(10);not null;default:'NONE'"`
	BusID            *uuid.UUID           `gorm:"type:uuid;index"`
	AgentID          *uuid.UUID           `gorm:"type:uuid;index"`
	OperatorID       *uuid.UUID           `gorm:"type:uuid;index"`
	CommissionAmount decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	CollectionAmount decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	RecordedAt       time.Time            `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction entity.
func (m *TransactionModel) ToDomain() *ledger.Transaction {
	tx := &ledger.Transaction{
		LogType:          m.LogType,
		Amount:           m.Amount,
		Description:      m.Description,
		PayLater:         m.PayLater,
		DueAmount:        m.DueAmount,
		PaymentStatus:    m.PaymentStatus,
		BusID:            m.BusID,
		AgentID:          m.AgentID,
		OperatorID:       m.OperatorID,
		CommissionAmount: m.CommissionAmount,
		CollectionAmount: m.CollectionAmount,
		RecordedAt:       m.RecordedAt,
	}
	m.PopulateOwnerAggregateRoot(&tx.OwnerAggregateRoot)
	return tx
}

// FromDomain populates the persistence model from a domain Transaction entity.
func (m *TransactionModel) FromDomain(tx *ledger.Transaction) {
	m.FromDomainOwnerAggregateRoot(tx.OwnerAggregateRoot)
	m.LogType = tx.LogType
	m.Amount = tx.Amount
	m.Description = tx.Description
	m.PayLater = tx.PayLater
	m.DueAmount = tx.DueAmount
	m.PaymentStatus = tx.PaymentStatus
	m.BusID = tx.BusID
	m.AgentID = tx.AgentID
	m.OperatorID = tx.OperatorID
	m.CommissionAmount = tx.CommissionAmount
	m.CollectionAmount = tx.CollectionAmount
	m.RecordedAt = tx.RecordedAt
}

// TransactionModelFromDomain creates a persistence model from a domain entity
func TransactionModelFromDomain(tx *ledger.Transaction) *TransactionModel {
	m := &TransactionModel{}
	m.FromDomain(tx)
	return m
}

// OwnerAccountModel is the persistence model for the OwnerAccount aggregate
// root. One account exists per owner.
type OwnerAccountModel struct {
	AggregateModel
	OwnerID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	OpeningBalance decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	AggregateDue   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (OwnerAccountModel) TableName() string {
	return "owner_accounts"
}

// ToDomain converts the persistence model to a domain OwnerAccount entity.
func (m *OwnerAccountModel) ToDomain() *ledger.OwnerAccount {
	account := &ledger.OwnerAccount{
		OpeningBalance: m.OpeningBalance,
		AggregateDue:   m.AggregateDue,
	}
	account.ID = m.ID
	account.CreatedAt = m.CreatedAt
	account.UpdatedAt = m.UpdatedAt
	account.Version = m.Version
	account.OwnerID = m.OwnerID
	return account
}

// FromDomain populates the persistence model from a domain OwnerAccount entity.
func (m *OwnerAccountModel) FromDomain(account *ledger.OwnerAccount) {
	m.FromDomainAggregateRoot(account.BaseAggregateRoot)
	m.OwnerID = account.OwnerID
	m.OpeningBalance = account.OpeningBalance
	m.AggregateDue = account.AggregateDue
}

// OwnerAccountModelFromDomain creates a persistence model from a domain entity
func OwnerAccountModelFromDomain(account *ledger.OwnerAccount) *OwnerAccountModel {
	m := &OwnerAccountModel{}
	m.FromDomain(account)
	return m
}
