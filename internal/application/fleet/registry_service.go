package fleet

import (
	"context"
	"errors"

	"github.com/fleetledger/backend/internal/domain/fleet"
	"github.com/fleetledger/backend/internal/domain/ledger"
	"github.com/fleetledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegistryService handles control-panel operations: registering buses,
// agents and operators, verifying the control-panel password, and setting
// the owner's opening balance.
type RegistryService struct {
	busRepo     fleet.BusRepository
	agentRepo   fleet.AgentRepository
	opRepo      fleet.OperatorRepository
	credRepo    fleet.OwnerCredentialRepository
	accountRepo ledger.OwnerAccountRepository
	logger      *zap.Logger
}

// NewRegistryService creates a new RegistryService
func NewRegistryService(
	busRepo fleet.BusRepository,
	agentRepo fleet.AgentRepository,
	opRepo fleet.OperatorRepository,
	credRepo fleet.OwnerCredentialRepository,
	accountRepo ledger.OwnerAccountRepository,
	logger *zap.Logger,
) *RegistryService {
	return &RegistryService{
		busRepo:     busRepo,
		agentRepo:   agentRepo,
		opRepo:      opRepo,
		credRepo:    credRepo,
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// RegisterBus registers a bus under the owner. Names are unique per owner.
func (s *RegistryService) RegisterBus(ctx context.Context, ownerID uuid.UUID, name string) (*fleet.Bus, error) {
	bus, err := fleet.NewBus(ownerID, name)
	if err != nil {
		return nil, err
	}
	exists, err := s.busRepo.ExistsByName(ctx, ownerID, bus.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A bus with this name already exists for this owner")
	}
	if err := s.busRepo.Save(ctx, bus); err != nil {
		return nil, err
	}
	s.logger.Info("bus registered", zap.String("owner_id", ownerID.String()), zap.String("name", bus.Name))
	return bus, nil
}

// RegisterAgent registers a ticketing agent under the owner
func (s *RegistryService) RegisterAgent(ctx context.Context, ownerID uuid.UUID, name string) (*fleet.Agent, error) {
	agent, err := fleet.NewAgent(ownerID, name)
	if err != nil {
		return nil, err
	}
	exists, err := s.agentRepo.ExistsByName(ctx, ownerID, agent.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An agent with this name already exists for this owner")
	}
	if err := s.agentRepo.Save(ctx, agent); err != nil {
		return nil, err
	}
	s.logger.Info("agent registered", zap.String("owner_id", ownerID.String()), zap.String("name", agent.Name))
	return agent, nil
}

// RegisterOperator registers a bus operator under the owner
func (s *RegistryService) RegisterOperator(ctx context.Context, ownerID uuid.UUID, name string) (*fleet.Operator, error) {
	op, err := fleet.NewOperator(ownerID, name)
	if err != nil {
		return nil, err
	}
	exists, err := s.opRepo.ExistsByName(ctx, ownerID, op.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An operator with this name already exists for this owner")
	}
	if err := s.opRepo.Save(ctx, op); err != nil {
		return nil, err
	}
	s.logger.Info("operator registered", zap.String("owner_id", ownerID.String()), zap.String("name", op.Name))
	return op, nil
}

// VerifyControlPanelPassword compares the supplied password against the
// owner's stored bcrypt hash.
func (s *RegistryService) VerifyControlPanelPassword(ctx context.Context, ownerID uuid.UUID, password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_INPUT", "Password is required")
	}
	hash, err := s.credRepo.FindPasswordHash(ctx, ownerID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return shared.ErrUnauthorized
	}
	return nil
}

// SetControlPanelPassword hashes and stores the owner's control-panel
// password.
func (s *RegistryService) SetControlPanelPassword(ctx context.Context, ownerID uuid.UUID, password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_INPUT", "Password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.credRepo.SavePasswordHash(ctx, ownerID, string(hash))
}

// SetOpeningBalance sets the opening balance on the owner's account,
// creating the account on first use.
func (s *RegistryService) SetOpeningBalance(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal) (*ledger.OwnerAccount, error) {
	account, err := s.accountRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		account, err = ledger.NewOwnerAccount(ownerID, amount)
		if err != nil {
			return nil, err
		}
		if err := s.accountRepo.Save(ctx, account); err != nil {
			return nil, err
		}
		return account, nil
	}

	if err := account.SetOpeningBalance(amount); err != nil {
		return nil, err
	}
	if err := s.accountRepo.SaveWithLock(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}
