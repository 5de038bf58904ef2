package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fleetledger/backend/internal/domain/ledger"
	"github.com/fleetledger/backend/internal/domain/shared"
	"github.com/fleetledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByIDForOwner finds a transaction by ID scoped to an owner. A missing
// transaction and one belonging to another owner both return
// shared.ErrNotFound.
func (r *GormTransactionRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*ledger.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindSettledCreditsInWindow finds the owner's CREDIT transactions recorded
// in [start, end) that are recognized in period profit: either never
// deferred, or deferred with nothing left due.
func (r *GormTransactionRepository) FindSettledCreditsInWindow(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]ledger.Transaction, error) {
	var transactionModels []models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND log_type = ?", ownerID, ledger.LogTypeCredit).
		Where("recorded_at >= ? AND recorded_at < ?", start, end).
		Where("pay_later = ? OR due_amount = 0", false).
		Order("recorded_at ASC").
		Find(&transactionModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]ledger.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = *transactionModels[i].ToDomain()
	}
	return transactions, nil
}

// Save creates or updates a transaction
func (r *GormTransactionRepository) Save(ctx context.Context, tx *ledger.Transaction) error {
	model := models.TransactionModelFromDomain(tx)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormTransactionRepository) SaveWithLock(ctx context.Context, tx *ledger.Transaction) error {
	result := r.db.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Where("id = ? AND version = ?", tx.ID, tx.Version-1).
		Updates(map[string]interface{}{
			"due_amount":     tx.DueAmount,
			"payment_status": tx.PaymentStatus,
			"version":        tx.Version,
			"updated_at":     tx.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

var _ ledger.TransactionRepository = (*GormTransactionRepository)(nil)
