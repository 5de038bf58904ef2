package persistence

import (
	"context"

	appshares "github.com/fleetledger/backend/internal/application/shares"
	"github.com/fleetledger/backend/internal/domain/shares"
	"gorm.io/gorm"
)

// GormSharesTransactionScope implements the shares TransactionScope using
// GORM transactions. A distribution run and its per-shareholder profit
// updates commit or roll back together.
type GormSharesTransactionScope struct {
	db *gorm.DB
}

// NewGormSharesTransactionScope creates a new GormSharesTransactionScope.
func NewGormSharesTransactionScope(db *gorm.DB) *GormSharesTransactionScope {
	return &GormSharesTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormSharesTransactionScope) Execute(ctx context.Context, fn func(repos appshares.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormSharesRepositories{tx: tx})
	})
}

type gormSharesRepositories struct {
	tx *gorm.DB
}

// RegistrationRepo returns the share registration repository scoped to the
// current database transaction.
func (r *gormSharesRepositories) RegistrationRepo() shares.ShareRegistrationRepository {
	return NewGormShareRegistrationRepository(r.tx)
}

// RunRepo returns the distribution run repository scoped to the current
// database transaction.
func (r *gormSharesRepositories) RunRepo() shares.DistributionRunRepository {
	return NewGormDistributionRunRepository(r.tx)
}

var _ appshares.TransactionScope = (*GormSharesTransactionScope)(nil)
var _ appshares.TransactionalRepositories = (*gormSharesRepositories)(nil)
