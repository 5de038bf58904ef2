package persistence

import (
	"context"
	"errors"

	"github.com/fleetledger/backend/internal/domain/fleet"
	"github.com/fleetledger/backend/internal/domain/shared"
	"github.com/fleetledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBusRepository implements BusRepository using GORM
type GormBusRepository struct {
	db *gorm.DB
}

// NewGormBusRepository creates a new GormBusRepository
func NewGormBusRepository(db *gorm.DB) *GormBusRepository {
	return &GormBusRepository{db: db}
}

// ExistsByName reports whether the owner already registered a bus with this
// normalized name
func (r *GormBusRepository) ExistsByName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BusModel{}).
		Where("owner_id = ? AND name = ?", ownerID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a bus
func (r *GormBusRepository) Save(ctx context.Context, bus *fleet.Bus) error {
	model := &models.BusModel{}
	model.FromDomain(bus)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindAllForOwner lists the owner's buses ordered by name
func (r *GormBusRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]fleet.Bus, error) {
	var busModels []models.BusModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&busModels).Error; err != nil {
		return nil, err
	}
	buses := make([]fleet.Bus, len(busModels))
	for i := range busModels {
		buses[i] = *busModels[i].ToDomain()
	}
	return buses, nil
}

// GormAgentRepository implements AgentRepository using GORM
type GormAgentRepository struct {
	db *gorm.DB
}

// NewGormAgentRepository creates a new GormAgentRepository
func NewGormAgentRepository(db *gorm.DB) *GormAgentRepository {
	return &GormAgentRepository{db: db}
}

// ExistsByName reports whether the owner already registered an agent with
// this normalized name
func (r *GormAgentRepository) ExistsByName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AgentModel{}).
		Where("owner_id = ? AND name = ?", ownerID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an agent
func (r *GormAgentRepository) Save(ctx context.Context, agent *fleet.Agent) error {
	model := &models.AgentModel{}
	model.FromDomain(agent)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindAllForOwner lists the owner's agents ordered by name
func (r *GormAgentRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]fleet.Agent, error) {
	var agentModels []models.AgentModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&agentModels).Error; err != nil {
		return nil, err
	}
	agents := make([]fleet.Agent, len(agentModels))
	for i := range agentModels {
		agents[i] = *agentModels[i].ToDomain()
	}
	return agents, nil
}

// GormOperatorRepository implements OperatorRepository using GORM
type GormOperatorRepository struct {
	db *gorm.DB
}

// NewGormOperatorRepository creates a new GormOperatorRepository
func NewGormOperatorRepository(db *gorm.DB) *GormOperatorRepository {
	return &GormOperatorRepository{db: db}
}

// ExistsByName reports whether the owner already registered an operator with
// this normalized name
func (r *GormOperatorRepository) ExistsByName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OperatorModel{}).
		Where("owner_id = ? AND name = ?", ownerID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an operator
func (r *GormOperatorRepository) Save(ctx context.Context, operator *fleet.Operator) error {
	model := &models.OperatorModel{}
	model.FromDomain(operator)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindAllForOwner lists the owner's operators ordered by name
func (r *GormOperatorRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]fleet.Operator, error) {
	var operatorModels []models.OperatorModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&operatorModels).Error; err != nil {
		return nil, err
	}
	operators := make([]fleet.Operator, len(operatorModels))
	for i := range operatorModels {
		operators[i] = *operatorModels[i].ToDomain()
	}
	return operators, nil
}

// GormOwnerCredentialRepository implements OwnerCredentialRepository using
// GORM
type GormOwnerCredentialRepository struct {
	db *gorm.DB
}

// NewGormOwnerCredentialRepository creates a new
// GormOwnerCredentialRepository
func NewGormOwnerCredentialRepository(db *gorm.DB) *GormOwnerCredentialRepository {
	return &GormOwnerCredentialRepository{db: db}
}

// FindPasswordHash returns the bcrypt hash for an owner
func (r *GormOwnerCredentialRepository) FindPasswordHash(ctx context.Context, ownerID uuid.UUID) (string, error) {
	var model models.OwnerCredentialModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	return model.PasswordHash, nil
}

// SavePasswordHash stores or replaces the owner's password hash
func (r *GormOwnerCredentialRepository) SavePasswordHash(ctx context.Context, ownerID uuid.UUID, hash string) error {
	var model models.OwnerCredentialModel
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&model).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		model = models.OwnerCredentialModel{
			BaseModel: models.BaseModel{ID: uuid.New()},
			OwnerID:   ownerID,
		}
	}
	model.PasswordHash = hash
	return r.db.WithContext(ctx).Save(&model).Error
}

var _ fleet.BusRepository = (*GormBusRepository)(nil)
var _ fleet.AgentRepository = (*GormAgentRepository)(nil)
var _ fleet.OperatorRepository = (*GormOperatorRepository)(nil)
var _ fleet.OwnerCredentialRepository = (*GormOwnerCredentialRepository)(nil)
