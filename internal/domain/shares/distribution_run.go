package shares

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/fleetledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DistributionLine is one shareholder's entitlement in a distribution run
type DistributionLine struct {
	ShareholderID   uuid.UUID       `json:"shareholder_id"`
	Shareholder     string          `json:"shareholder"`
	Percentage      decimal.Decimal `json:"percentage"`
	GrossShare      decimal.Decimal `json:"original_profit"`
	FinanceDeducted decimal.Decimal `json:"finance_deducted"`
	NetShare        decimal.Decimal `json:"final_profit"`
}

// DistributionLines implements GORM Scanner/Valuer for JSONB storage
type DistributionLines []DistributionLine

// Value implements driver.Valuer
func (l DistributionLines) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *DistributionLines) Scan(value interface{}) error {
	if value == nil {
		*l = DistributionLines{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan DistributionLines: unsupported type")
	}

	if len(bytes) == 0 {
		*l = DistributionLines{}
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// DistributionRun records one application of a period's profit to the
// shareholder roster. At most one run exists per (owner, period); a second
// run for the same period is rejected by the store instead of double-applying
// profit.
type DistributionRun struct {
	shared.OwnerAggregateRoot
	Period      string            `json:"period"`
	TotalProfit decimal.Decimal   `json:"total_profit"`
	Lines       DistributionLines `json:"lines"`
}

// NewDistributionRun creates a distribution run for a period
func NewDistributionRun(ownerID uuid.UUID, period Period, totalProfit decimal.Decimal, lines []DistributionLine) (*DistributionRun, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_DISTRIBUTION", "A distribution run needs at least one line item")
	}

	run := &DistributionRun{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(ownerID),
		Period:             period.Label(),
		TotalProfit:        totalProfit,
		Lines:              lines,
	}

	run.AddDomainEvent(NewProfitDistributedEvent(run))

	return run, nil
}
