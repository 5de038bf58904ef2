package shares

import (
	"context"

	"github.com/fleetledger/backend/internal/domain/shares"
)

// TransactionScope provides transactional access to the shares repositories.
// A distribution run and its per-shareholder profit updates are committed
// atomically: either every shareholder receives the period's net share and
// the run record exists, or nothing is applied.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the shares repositories
// within a transaction.
type TransactionalRepositories interface {
	// RegistrationRepo returns the share registration repository scoped to
	// the current database transaction
	RegistrationRepo() shares.ShareRegistrationRepository
	// RunRepo returns the distribution run repository scoped to the current
	// database transaction
	RunRepo() shares.DistributionRunRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests.
type NoOpTransactionScope struct {
	regRepo shares.ShareRegistrationRepository
	runRepo shares.DistributionRunRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given
// repositories.
func NewNoOpTransactionScope(
	regRepo shares.ShareRegistrationRepository,
	runRepo shares.DistributionRunRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		regRepo: regRepo,
		runRepo: runRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// RegistrationRepo returns the share registration repository.
func (s *NoOpTransactionScope) RegistrationRepo() shares.ShareRegistrationRepository {
	return s.regRepo
}

// RunRepo returns the distribution run repository.
func (s *NoOpTransactionScope) RunRepo() shares.DistributionRunRepository {
	return s.runRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
