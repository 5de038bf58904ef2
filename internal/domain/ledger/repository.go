package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TransactionRepository defines the interface for transaction persistence
type TransactionRepository interface {
	// FindByIDForOwner finds a transaction by ID scoped to an owner.
	// Returns shared.ErrNotFound whether the transaction is missing or
	// belongs to a different owner; the two cases are deliberately not
	// distinguished.
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Transaction, error)

	// FindSettledCreditsInWindow finds the owner's CREDIT transactions
	// recorded in [start, end) that are either not deferred or fully
	// settled, i.e. the ones recognized in period profit.
	FindSettledCreditsInWindow(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]Transaction, error)

	// Save creates or updates a transaction
	Save(ctx context.Context, tx *Transaction) error

	// SaveWithLock saves with optimistic locking (version check).
	// Returns shared.ErrConcurrencyConflict if the stored version moved.
	SaveWithLock(ctx context.Context, tx *Transaction) error
}

// OwnerAccountRepository defines the interface for owner account persistence
type OwnerAccountRepository interface {
	// FindByOwner finds the account for an owner
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*OwnerAccount, error)

	// Save creates or updates an owner account
	Save(ctx context.Context, account *OwnerAccount) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, account *OwnerAccount) error
}
