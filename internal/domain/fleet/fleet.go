package fleet

import (
	"strings"

	"github.com/fleetledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Bus is a vehicle registered under an owner's fleet
type Bus struct {
	shared.OwnerAggregateRoot
	Name string `json:"name"`
}

// Agent is a ticketing agent working for an owner
type Agent struct {
	shared.OwnerAggregateRoot
	Name string `json:"name"`
}

// Operator is a bus operator working for an owner
type Operator struct {
	shared.OwnerAggregateRoot
	Name string `json:"name"`
}

// NormalizeName trims and upper-cases a fleet resource name. Names are
// stored normalized so per-owner uniqueness is case-insensitive.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

func validateName(ownerID uuid.UUID, name string) (string, error) {
	if ownerID == uuid.Nil {
		return "", shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	normalized := NormalizeName(name)
	if normalized == "" {
		return "", shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	return normalized, nil
}

// NewBus creates a bus with a normalized name
func NewBus(ownerID uuid.UUID, name string) (*Bus, error) {
	normalized, err := validateName(ownerID, name)
	if err != nil {
		return nil, err
	}
	return &Bus{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(ownerID),
		Name:               normalized,
	}, nil
}

// NewAgent creates an agent with a normalized name
func NewAgent(ownerID uuid.UUID, name string) (*Agent, error) {
	normalized, err := validateName(ownerID, name)
	if err != nil {
		return nil, err
	}
	return &Agent{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(ownerID),
		Name:               normalized,
	}, nil
}

// NewOperator creates an operator with a normalized name
func NewOperator(ownerID uuid.UUID, name string) (*Operator, error) {
	normalized, err := validateName(ownerID, name)
	if err != nil {
		return nil, err
	}
	return &Operator{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(ownerID),
		Name:               normalized,
	}, nil
}
