package fleet

import (
	"context"

	"github.com/google/uuid"
)

// BusRepository defines the interface for bus persistence
type BusRepository interface {
	ExistsByName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error)
	Save(ctx context.Context, bus *Bus) error
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]Bus, error)
}

// AgentRepository defines the interface for agent persistence
type AgentRepository interface {
	ExistsByName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error)
	Save(ctx context.Context, agent *Agent) error
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]Agent, error)
}

// OperatorRepository defines the interface for operator persistence
type OperatorRepository interface {
	ExistsByName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error)
	Save(ctx context.Context, operator *Operator) error
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]Operator, error)
}

// OwnerCredentialRepository stores the owner's control-panel password hash
type OwnerCredentialRepository interface {
	// FindPasswordHash returns the bcrypt hash for an owner, or
	// shared.ErrNotFound when no control-panel password is set
	FindPasswordHash(ctx context.Context, ownerID uuid.UUID) (string, error)
	SavePasswordHash(ctx context.Context, ownerID uuid.UUID, hash string) error
}
