package shares

import (
	"github.com/fleetledger/backend/internal/domain/shares"
	"github.com/shopspring/decimal"
)

// DistributionLineDTO is one shareholder's line in a distribution report
type DistributionLineDTO struct {
	Shareholder     string          `json:"shareholder"`
	Percentage      decimal.Decimal `json:"percentage"`
	OriginalProfit  decimal.Decimal `json:"original_profit"`
	FinanceDeducted decimal.Decimal `json:"finance_deducted"`
	FinalProfit     decimal.Decimal `json:"final_profit"`
}

// DistributionReport is the result of a distribution run for a period.
// AlreadyDistributed is true when the period had been applied before and
// the stored run is returned instead of re-applying profit.
type DistributionReport struct {
	Month              string                `json:"month"`
	TotalProfit        decimal.Decimal       `json:"total_profit"`
	ShareDistribution  []DistributionLineDTO `json:"share_distribution"`
	AlreadyDistributed bool                  `json:"already_distributed"`
}

// RegisterSharesRequest carries the company share registration payload
type RegisterSharesRequest struct {
	BusinessName     string
	BusinessCategory string
	BusinessType     string
	ShareholderCount int
	Shareholders     []ShareholderInputDTO
}

// ShareholderInputDTO is one roster entry in a registration request
type ShareholderInputDTO struct {
	Name            string
	SharePercentage decimal.Decimal
}

// ShareholderDTO describes a shareholder in responses
type ShareholderDTO struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	SharePercentage  decimal.Decimal `json:"share_percentage"`
	FinanceLiability decimal.Decimal `json:"finance_liability"`
	ShareProfit      decimal.Decimal `json:"share_profit"`
}

// RegistrationDTO describes a share registration in responses
type RegistrationDTO struct {
	ID               string           `json:"id"`
	BusinessName     string           `json:"business_name"`
	BusinessCategory string           `json:"business_category"`
	BusinessType     string           `json:"business_type"`
	Shareholders     []ShareholderDTO `json:"shareholders"`
}

func reportFromRun(run *shares.DistributionRun, alreadyDistributed bool) *DistributionReport {
	report := &DistributionReport{
		Month:              run.Period,
		TotalProfit:        run.TotalProfit,
		ShareDistribution:  make([]DistributionLineDTO, 0, len(run.Lines)),
		AlreadyDistributed: alreadyDistributed,
	}
	for _, line := range run.Lines {
		report.ShareDistribution = append(report.ShareDistribution, DistributionLineDTO{
			Shareholder:     line.Shareholder,
			Percentage:      line.Percentage,
			OriginalProfit:  line.GrossShare,
			FinanceDeducted: line.FinanceDeducted,
			FinalProfit:     line.NetShare,
		})
	}
	return report
}

func registrationToDTO(reg *shares.ShareRegistration) *RegistrationDTO {
	dto := &RegistrationDTO{
		ID:               reg.ID.String(),
		BusinessName:     reg.BusinessName,
		BusinessCategory: reg.BusinessCategory,
		BusinessType:     string(reg.BusinessType),
		Shareholders:     make([]ShareholderDTO, 0, len(reg.Shareholders)),
	}
	for _, sh := range reg.Shareholders {
		dto.Shareholders = append(dto.Shareholders, ShareholderDTO{
			ID:               sh.ID.String(),
			Name:             sh.Name,
			SharePercentage:  sh.SharePercentage,
			FinanceLiability: sh.FinanceLiability,
			ShareProfit:      sh.ShareProfit,
		})
	}
	return dto
}
