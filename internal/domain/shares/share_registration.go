package shares

import (
	"fmt"

	"github.com/fleetledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BusinessType classifies the registered company
type BusinessType string

const (
	BusinessTypeSoleProprietorship BusinessType = "Sole Proprietorship"
	BusinessTypeOPC                BusinessType = "OPC"
	BusinessTypePartnership        BusinessType = "Partnership"
	BusinessTypePrivateLimited     BusinessType = "Private Limited"
)

// AllowsShareholders reports whether this business type may register a
// shareholder roster. Sole proprietorships and one-person companies have a
// single owner and no shares to split.
func (t BusinessType) AllowsShareholders() bool {
	return t != BusinessTypeSoleProprietorship && t != BusinessTypeOPC
}

// Shareholder is one participant in company ownership. Percentages are set
// at registration and never mutated afterwards; the cumulative share profit
// is the running total accrued by distribution runs.
type Shareholder struct {
	shared.BaseEntity
	RegistrationID   uuid.UUID       `json:"registration_id"`
	Name             string          `json:"name"`
	SharePercentage  decimal.Decimal `json:"share_percentage"`
	FinanceLiability decimal.Decimal `json:"finance_liability"`
	ShareProfit      decimal.Decimal `json:"share_profit"` // cumulative distributed profit
}

// AccrueProfit adds a distribution run's net share to the cumulative share
// profit. The net share may be negative when the finance liability exceeds
// the gross share for the period.
func (s *Shareholder) AccrueProfit(netShare decimal.Decimal) {
	s.ShareProfit = s.ShareProfit.Add(netShare)
	s.Touch()
}

// SetFinanceLiability replaces the outstanding finance liability owed to
// this shareholder.
func (s *Shareholder) SetFinanceLiability(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Finance liability cannot be negative")
	}
	s.FinanceLiability = amount
	s.Touch()
	return nil
}

// ShareRegistration is the company share details aggregate: the business
// profile plus its shareholder roster. One registration exists per owner.
type ShareRegistration struct {
	shared.OwnerAggregateRoot
	BusinessName     string        `json:"business_name"`
	BusinessCategory string        `json:"business_category"`
	BusinessType     BusinessType  `json:"business_type"`
	ShareholderCount int           `json:"shareholder_count"`
	Shareholders     []Shareholder `json:"shareholders"`
}

// ShareholderInput carries the roster data supplied at registration
type ShareholderInput struct {
	Name            string
	SharePercentage decimal.Decimal
}

// NewShareRegistration creates the company share details with its roster.
// The declared shareholder count must match the roster, and business types
// without shares may not provide one.
func NewShareRegistration(
	ownerID uuid.UUID,
	businessName, businessCategory string,
	businessType BusinessType,
	shareholderCount int,
	roster []ShareholderInput,
) (*ShareRegistration, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if businessName == "" {
		return nil, shared.NewDomainError("INVALID_BUSINESS_NAME", "Business name cannot be empty")
	}
	if !businessType.AllowsShareholders() && shareholderCount > 0 {
		return nil, shared.NewDomainError("INVALID_BUSINESS_TYPE",
			fmt.Sprintf("No shareholders required for %s business type", businessType))
	}
	if len(roster) != shareholderCount {
		return nil, shared.NewDomainError("SHAREHOLDER_COUNT_MISMATCH",
			fmt.Sprintf("Expected %d shareholders, but got %d", shareholderCount, len(roster)))
	}

	reg := &ShareRegistration{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(ownerID),
		BusinessName:       businessName,
		BusinessCategory:   businessCategory,
		BusinessType:       businessType,
		ShareholderCount:   shareholderCount,
		Shareholders:       make([]Shareholder, 0, len(roster)),
	}

	for _, in := range roster {
		if in.Name == "" {
			return nil, shared.NewDomainError("INVALID_SHAREHOLDER_NAME", "Shareholder name cannot be empty")
		}
		if in.SharePercentage.IsNegative() || in.SharePercentage.GreaterThan(decimal.NewFromInt(100)) {
			return nil, shared.NewDomainError("INVALID_PERCENTAGE",
				fmt.Sprintf("Share percentage for %s must be between 0 and 100", in.Name))
		}
		reg.Shareholders = append(reg.Shareholders, Shareholder{
			BaseEntity:       shared.NewBaseEntity(),
			RegistrationID:   reg.ID,
			Name:             in.Name,
			SharePercentage:  in.SharePercentage,
			FinanceLiability: decimal.Zero,
			ShareProfit:      decimal.Zero,
		})
	}

	reg.AddDomainEvent(NewShareRegistrationCreatedEvent(reg))

	return reg, nil
}

// ComputeDistribution apportions a period's total profit across the roster.
// Gross shares are rounded half-up to the minor currency unit; the net share
// deducts each shareholder's finance liability and may be negative. Line
// order follows roster order.
func (r *ShareRegistration) ComputeDistribution(totalProfit decimal.Decimal) []DistributionLine {
	hundred := decimal.NewFromInt(100)
	lines := make([]DistributionLine, 0, len(r.Shareholders))
	for _, sh := range r.Shareholders {
		gross := totalProfit.Mul(sh.SharePercentage).Div(hundred).Round(2)
		net := gross.Sub(sh.FinanceLiability)
		lines = append(lines, DistributionLine{
			ShareholderID:   sh.ID,
			Shareholder:     sh.Name,
			Percentage:      sh.SharePercentage,
			GrossShare:      gross,
			FinanceDeducted: sh.FinanceLiability,
			NetShare:        net,
		})
	}
	return lines
}

// ShareholderByID returns a pointer into the roster, or nil
func (r *ShareRegistration) ShareholderByID(id uuid.UUID) *Shareholder {
	for i := range r.Shareholders {
		if r.Shareholders[i].ID == id {
			return &r.Shareholders[i]
		}
	}
	return nil
}
