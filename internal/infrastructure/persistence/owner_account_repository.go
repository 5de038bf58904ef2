package persistence

import (
	"context"
	"errors"

	"github.com/fleetledger/backend/internal/domain/ledger"
	"github.com/fleetledger/backend/internal/domain/shared"
	"github.com/fleetledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOwnerAccountRepository implements OwnerAccountRepository using GORM
type GormOwnerAccountRepository struct {
	db *gorm.DB
}

// NewGormOwnerAccountRepository creates a new GormOwnerAccountRepository
func NewGormOwnerAccountRepository(db *gorm.DB) *GormOwnerAccountRepository {
	return &GormOwnerAccountRepository{db: db}
}

// FindByOwner finds the account for an owner
func (r *GormOwnerAccountRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*ledger.OwnerAccount, error) {
	var model models.OwnerAccountModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an owner account
func (r *GormOwnerAccountRepository) Save(ctx context.Context, account *ledger.OwnerAccount) error {
	model := models.OwnerAccountModelFromDomain(account)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormOwnerAccountRepository) SaveWithLock(ctx context.Context, account *ledger.OwnerAccount) error {
	result := r.db.WithContext(ctx).
		Model(&models.OwnerAccountModel{}).
		Where("id = ? AND version = ?", account.ID, account.Version-1).
		Updates(map[string]interface{}{
			"opening_balance": account.OpeningBalance,
			"aggregate_due":   account.AggregateDue,
			"version":         account.Version,
			"updated_at":      account.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

var _ ledger.OwnerAccountRepository = (*GormOwnerAccountRepository)(nil)
