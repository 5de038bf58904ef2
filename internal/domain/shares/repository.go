package shares

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShareRegistrationRepository defines the interface for share registration
// persistence
type ShareRegistrationRepository interface {
	// FindByOwner finds the registration (with roster) for an owner.
	// Returns shared.ErrNotFound when the owner has not registered shares.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*ShareRegistration, error)

	// Save creates or updates a registration together with its roster
	Save(ctx context.Context, reg *ShareRegistration) error

	// UpdateShareholderProfit persists a shareholder's new cumulative share
	// profit value
	UpdateShareholderProfit(ctx context.Context, shareholderID uuid.UUID, newCumulative decimal.Decimal) error

	// UpdateShareholderFinance persists a shareholder's new finance liability
	UpdateShareholderFinance(ctx context.Context, shareholderID uuid.UUID, newLiability decimal.Decimal) error

	// ExistsForOwner reports whether an owner already registered shares
	ExistsForOwner(ctx context.Context, ownerID uuid.UUID) (bool, error)
}

// DistributionRunRepository defines the interface for distribution run
// persistence
type DistributionRunRepository interface {
	// FindByOwnerAndPeriod finds the run for a period, or shared.ErrNotFound
	FindByOwnerAndPeriod(ctx context.Context, ownerID uuid.UUID, period string) (*DistributionRun, error)

	// Save creates a distribution run. The store enforces uniqueness on
	// (owner, period) and returns shared.ErrAlreadyExists on conflict.
	Save(ctx context.Context, run *DistributionRun) error
}
