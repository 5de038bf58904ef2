package ledger

import (
	"context"

	"github.com/fleetledger/backend/internal/domain/ledger"
)

// TransactionScope provides transactional access to ledger repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically. Settlement relies on this: the transaction's due amount
// and the owner's aggregate due balance must move together or not at all.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the ledger repositories
// within a transaction. Both repositories share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// TransactionRepo returns the transaction repository scoped to the
	// current database transaction
	TransactionRepo() ledger.TransactionRepository
	// OwnerAccountRepo returns the owner account repository scoped to the
	// current database transaction
	OwnerAccountRepo() ledger.OwnerAccountRepository
}

// NoOpTransactionScope is a transaction scope that doesn't use real
// transactions. Useful for tests.
type NoOpTransactionScope struct {
	txRepo      ledger.TransactionRepository
	accountRepo ledger.OwnerAccountRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given
// repositories.
func NewNoOpTransactionScope(
	txRepo ledger.TransactionRepository,
	accountRepo ledger.OwnerAccountRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		txRepo:      txRepo,
		accountRepo: accountRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// TransactionRepo returns the transaction repository.
func (s *NoOpTransactionScope) TransactionRepo() ledger.TransactionRepository {
	return s.txRepo
}

// OwnerAccountRepo returns the owner account repository.
func (s *NoOpTransactionScope) OwnerAccountRepo() ledger.OwnerAccountRepository {
	return s.accountRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
