package persistence

import (
	"context"
	"errors"

	"github.com/fleetledger/backend/internal/domain/shared"
	"github.com/fleetledger/backend/internal/domain/shares"
	"github.com/fleetledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDistributionRunRepository implements DistributionRunRepository using
// GORM
type GormDistributionRunRepository struct {
	db *gorm.DB
}

// NewGormDistributionRunRepository creates a new
// GormDistributionRunRepository
func NewGormDistributionRunRepository(db *gorm.DB) *GormDistributionRunRepository {
	return &GormDistributionRunRepository{db: db}
}

// FindByOwnerAndPeriod finds the run for a period
func (r *GormDistributionRunRepository) FindByOwnerAndPeriod(ctx context.Context, ownerID uuid.UUID, period string) (*shares.DistributionRun, error) {
	var model models.DistributionRunModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND period = ?", ownerID, period).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates a distribution run. The unique (owner_id, period) index makes
// a second run for the same period fail with shared.ErrAlreadyExists.
func (r *GormDistributionRunRepository) Save(ctx context.Context, run *shares.DistributionRun) error {
	model := models.DistributionRunModelFromDomain(run)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

var _ shares.DistributionRunRepository = (*GormDistributionRunRepository)(nil)
