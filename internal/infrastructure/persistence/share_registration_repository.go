package persistence

import (
	"context"
	"errors"

	"github.com/fleetledger/backend/internal/domain/shared"
	"github.com/fleetledger/backend/internal/domain/shares"
	"github.com/fleetledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormShareRegistrationRepository implements ShareRegistrationRepository
// using GORM
type GormShareRegistrationRepository struct {
	db *gorm.DB
}

// NewGormShareRegistrationRepository creates a new
// GormShareRegistrationRepository
func NewGormShareRegistrationRepository(db *gorm.DB) *GormShareRegistrationRepository {
	return &GormShareRegistrationRepository{db: db}
}

// FindByOwner finds the registration with its roster in stored order
func (r *GormShareRegistrationRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*shares.ShareRegistration, error) {
	var model models.ShareRegistrationModel
	if err := r.db.WithContext(ctx).
		Preload("Shareholders", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("owner_id = ?", ownerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a registration together with its roster
func (r *GormShareRegistrationRepository) Save(ctx context.Context, reg *shares.ShareRegistration) error {
	model := models.ShareRegistrationModelFromDomain(reg)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// UpdateShareholderProfit persists a shareholder's new cumulative share
// profit value
func (r *GormShareRegistrationRepository) UpdateShareholderProfit(ctx context.Context, shareholderID uuid.UUID, newCumulative decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.ShareholderModel{}).
		Where("id = ?", shareholderID).
		Update("share_profit", newCumulative)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// UpdateShareholderFinance persists a shareholder's new finance liability
func (r *GormShareRegistrationRepository) UpdateShareholderFinance(ctx context.Context, shareholderID uuid.UUID, newLiability decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.ShareholderModel{}).
		Where("id = ?", shareholderID).
		Update("finance_liability", newLiability)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsForOwner reports whether an owner already registered shares
func (r *GormShareRegistrationRepository) ExistsForOwner(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ShareRegistrationModel{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ shares.ShareRegistrationRepository = (*GormShareRegistrationRepository)(nil)
