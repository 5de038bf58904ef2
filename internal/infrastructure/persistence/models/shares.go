package models

import (
	"github.com/fleetledger/backend/internal/domain/shares"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShareRegistrationModel is the persistence model for the ShareRegistration
// aggregate root. One registration exists per owner.
type ShareRegistrationModel struct {
	AggregateModel
	OwnerID          uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex"`
	BusinessName     string              `gorm:"type:varchar(200);not null"`
	BusinessCategory string              `gorm:"type:varchar(100)"`
	BusinessType     shares.BusinessType `gorm:"type:varchar(50);not null"`
	ShareholderCount int                 `gorm:"not null;default:0"`
	Shareholders     []ShareholderModel  `gorm:"foreignKey:RegistrationID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ShareRegistrationModel) TableName() string {
	return "share_registrations"
}

// ShareholderModel is the persistence model for roster entries under a share
// registration.
type ShareholderModel struct {
	BaseModel
	RegistrationID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name             string          `gorm:"type:varchar(200);not null"`
	SharePercentage  decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	FinanceLiability decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ShareProfit      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Position         int             `gorm:"not null;default:0"` // roster order
}

// TableName returns the table name for GORM
func (ShareholderModel) TableName() string {
	return "shareholders"
}

// ToDomain converts the persistence model to a domain ShareRegistration
// entity with its roster in stored order.
func (m *ShareRegistrationModel) ToDomain() *shares.ShareRegistration {
	reg := &shares.ShareRegistration{
		BusinessName:     m.BusinessName,
		BusinessCategory: m.BusinessCategory,
		BusinessType:     m.BusinessType,
		ShareholderCount: m.ShareholderCount,
		Shareholders:     make([]shares.Shareholder, 0, len(m.Shareholders)),
	}
	reg.ID = m.ID
	reg.CreatedAt = m.CreatedAt
	reg.UpdatedAt = m.UpdatedAt
	reg.Version = m.Version
	reg.OwnerID = m.OwnerID

	for _, sh := range m.Shareholders {
		reg.Shareholders = append(reg.Shareholders, shares.Shareholder{
			BaseEntity:       sh.ToDomain(),
			RegistrationID:   sh.RegistrationID,
			Name:             sh.Name,
			SharePercentage:  sh.SharePercentage,
			FinanceLiability: sh.FinanceLiability,
			ShareProfit:      sh.ShareProfit,
		})
	}
	return reg
}

// FromDomain populates the persistence model from a domain ShareRegistration
// entity.
func (m *ShareRegistrationModel) FromDomain(reg *shares.ShareRegistration) {
	m.FromDomainAggregateRoot(reg.BaseAggregateRoot)
	m.OwnerID = reg.OwnerID
	m.BusinessName = reg.BusinessName
	m.BusinessCategory = reg.BusinessCategory
	m.BusinessType = reg.BusinessType
	m.ShareholderCount = reg.ShareholderCount
	m.Shareholders = make([]ShareholderModel, 0, len(reg.Shareholders))
	for i, sh := range reg.Shareholders {
		sm := ShareholderModel{
			RegistrationID:   sh.RegistrationID,
			Name:             sh.Name,
			SharePercentage:  sh.SharePercentage,
			FinanceLiability: sh.FinanceLiability,
			ShareProfit:      sh.ShareProfit,
			Position:         i,
		}
		sm.FromDomainBaseEntity(sh.BaseEntity)
		m.Shareholders = append(m.Shareholders, sm)
	}
}

// ShareRegistrationModelFromDomain creates a persistence model from a domain
// entity
func ShareRegistrationModelFromDomain(reg *shares.ShareRegistration) *ShareRegistrationModel {
	m := &ShareRegistrationModel{}
	m.FromDomain(reg)
	return m
}

// DistributionRunModel is the persistence model for the DistributionRun
// aggregate root. The (owner_id, period) unique index is the idempotency
// guard: a period is applied to an owner's roster at most once.
type DistributionRunModel struct {
	AggregateModel
	OwnerID     uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex:idx_distribution_runs_owner_period,priority:1"`
	Period      string                   `gorm:"type:varchar(7);not null;uniqueIndex:idx_distribution_runs_owner_period,priority:2"`
	TotalProfit decimal.Decimal          `gorm:"type:decimal(18,2);not null"`
	Lines       shares.DistributionLines `gorm:"type:jsonb;default:'[]'"`
}

// TableName returns the table name for GORM
func (DistributionRunModel) TableName() string {
	return "distribution_runs"
}

// ToDomain converts the persistence model to a domain DistributionRun entity.
func (m *DistributionRunModel) ToDomain() *shares.DistributionRun {
	run := &shares.DistributionRun{
		Period:      m.Period,
		TotalProfit: m.TotalProfit,
		Lines:       m.Lines,
	}
	run.ID = m.ID
	run.CreatedAt = m.CreatedAt
	run.UpdatedAt = m.UpdatedAt
	run.Version = m.Version
	run.OwnerID = m.OwnerID
	return run
}

// FromDomain populates the persistence model from a domain DistributionRun
// entity.
func (m *DistributionRunModel) FromDomain(run *shares.DistributionRun) {
	m.FromDomainAggregateRoot(run.BaseAggregateRoot)
	m.OwnerID = run.OwnerID
	m.Period = run.Period
	m.TotalProfit = run.TotalProfit
	m.Lines = run.Lines
}

// DistributionRunModelFromDomain creates a persistence model from a domain
// entity
func DistributionRunModelFromDomain(run *shares.DistributionRun) *DistributionRunModel {
	m := &DistributionRunModel{}
	m.FromDomain(run)
	return m
}
