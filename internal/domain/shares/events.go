package shares

import (
	"github.com/fleetledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShareRegistrationCreatedEvent is raised when company shares are registered
type ShareRegistrationCreatedEvent struct {
	shared.BaseDomainEvent
	RegistrationID   uuid.UUID    `json:"registration_id"`
	BusinessName     string       `json:"business_name"`
	BusinessType     BusinessType `json:"business_type"`
	ShareholderCount int          `json:"shareholder_count"`
}

// EventType returns the event type name
func (e *ShareRegistrationCreatedEvent) EventType() string {
	return "ShareRegistrationCreated"
}

// NewShareRegistrationCreatedEvent creates a new ShareRegistrationCreatedEvent
func NewShareRegistrationCreatedEvent(r *ShareRegistration) *ShareRegistrationCreatedEvent {
	return &ShareRegistrationCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent("ShareRegistrationCreated", "ShareRegistration", r.ID, r.OwnerID),
		RegistrationID:   r.ID,
		BusinessName:     r.BusinessName,
		BusinessType:     r.BusinessType,
		ShareholderCount: r.ShareholderCount,
	}
}

// ProfitDistributedEvent is raised when a period's profit is applied to the
// shareholder roster
type ProfitDistributedEvent struct {
	shared.BaseDomainEvent
	RunID       uuid.UUID       `json:"run_id"`
	Period      string          `json:"period"`
	TotalProfit decimal.Decimal `json:"total_profit"`
	LineCount   int             `json:"line_count"`
}

// EventType returns the event type name
func (e *ProfitDistributedEvent) EventType() string {
	return "ProfitDistributed"
}

// NewProfitDistributedEvent creates a new ProfitDistributedEvent
func NewProfitDistributedEvent(run *DistributionRun) *ProfitDistributedEvent {
	return &ProfitDistributedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ProfitDistributed", "DistributionRun", run.ID, run.OwnerID),
		RunID:           run.ID,
		Period:          run.Period,
		TotalProfit:     run.TotalProfit,
		LineCount:       len(run.Lines),
	}
}
