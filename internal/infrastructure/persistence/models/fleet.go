package models

import (
	"github.com/fleetledger/backend/internal/domain/fleet"
	"github.com/google/uuid"
)

// BusModel is the persistence model for the Bus aggregate root. Names are
// stored normalized and unique per owner.
type BusModel struct {
	AggregateModel
	OwnerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_buses_owner_name,priority:1"`
	Name    string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_buses_owner_name,priority:2"`
}

// TableName returns the table name for GORM
func (BusModel) TableName() string {
	return "buses"
}

// ToDomain converts the persistence model to a domain Bus entity.
func (m *BusModel) ToDomain() *fleet.Bus {
	bus := &fleet.Bus{Name: m.Name}
	bus.ID = m.ID
	bus.CreatedAt = m.CreatedAt
	bus.UpdatedAt = m.UpdatedAt
	bus.Version = m.Version
	bus.OwnerID = m.OwnerID
	return bus
}

// FromDomain populates the persistence model from a domain Bus entity.
func (m *BusModel) FromDomain(bus *fleet.Bus) {
	m.FromDomainAggregateRoot(bus.BaseAggregateRoot)
	m.OwnerID = bus.OwnerID
	m.Name = bus.Name
}

// AgentModel is the persistence model for the Agent aggregate root.
type AgentModel struct {
	AggregateModel
	OwnerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_agents_owner_name,priority:1"`
	Name    string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_agents_owner_name,priority:2"`
}

// TableName returns the table name for GORM
func (AgentModel) TableName() string {
	return "agents"
}

// ToDomain converts the persistence model to a domain Agent entity.
func (m *AgentModel) ToDomain() *fleet.Agent {
	agent := &fleet.Agent{Name: m.Name}
	agent.ID = m.ID
	agent.CreatedAt = m.CreatedAt
	agent.UpdatedAt = m.UpdatedAt
	agent.Version = m.Version
	agent.OwnerID = m.OwnerID
	return agent
}

// FromDomain populates the persistence model from a domain Agent entity.
func (m *AgentModel) FromDomain(agent *fleet.Agent) {
	m.FromDomainAggregateRoot(agent.BaseAggregateRoot)
	m.OwnerID = agent.OwnerID
	m.Name = agent.Name
}

// OperatorModel is the persistence model for the Operator aggregate root.
type OperatorModel struct {
	AggregateModel
	OwnerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_operators_owner_name,priority:1"`
	Name    string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_operators_owner_name,priority:2"`
}

// TableName returns the table name for GORM
func (OperatorModel) TableName() string {
	return "operators"
}

// ToDomain converts the persistence model to a domain Operator entity.
func (m *OperatorModel) ToDomain() *fleet.Operator {
	op := &fleet.Operator{Name: m.Name}
	op.ID = m.ID
	op.CreatedAt = m.CreatedAt
	op.UpdatedAt = m.UpdatedAt
	op.Version = m.Version
	op.OwnerID = m.OwnerID
	return op
}

// FromDomain populates the persistence model from a domain Operator entity.
func (m *OperatorModel) FromDomain(op *fleet.Operator) {
	m.FromDomainAggregateRoot(op.BaseAggregateRoot)
	m.OwnerID = op.OwnerID
	m.Name = op.Name
}

// OwnerCredentialModel stores the owner's control-panel password hash.
type OwnerCredentialModel struct {
	BaseModel
	OwnerID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (OwnerCredentialModel) TableName() string {
	return "owner_credentials"
}
