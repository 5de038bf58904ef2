package fleet

import (
	"context"
	"testing"

	"github.com/fleetledger/backend/internal/domain/fleet"
	"github.com/fleetledger/backend/internal/domain/ledger"
	"github.com/fleetledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Mock implementations

type mockBusRepository struct {
	mock.Mock
}

func (m *mockBusRepository) ExistsByName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, ownerID, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockBusRepository) Save(ctx context.Context, bus *fleet.Bus) error {
	args := m.Called(ctx, bus)
	return args.Error(0)
}

func (m *mockBusRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]fleet.Bus, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.Bus), args.Error(1)
}

type mockAgentRepository struct {
	mock.Mock
}

func (m *mockAgentRepository) ExistsByName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, ownerID, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockAgentRepository) Save(ctx context.Context, agent *fleet.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

func (m *mockAgentRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]fleet.Agent, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.Agent), args.Error(1)
}

type mockOperatorRepository struct {
	mock.Mock
}

func (m *mockOperatorRepository) ExistsByName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, ownerID, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockOperatorRepository) Save(ctx context.Context, operator *fleet.Operator) error {
	args := m.Called(ctx, operator)
	return args.Error(0)
}

func (m *mockOperatorRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID) ([]fleet.Operator, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.Operator), args.Error(1)
}

type mockOwnerCredentialRepository struct {
	mock.Mock
}

func (m *mockOwnerCredentialRepository) FindPasswordHash(ctx context.Context, ownerID uuid.UUID) (string, error) {
	args := m.Called(ctx, ownerID)
	return args.String(0), args.Error(1)
}

func (m *mockOwnerCredentialRepository) SavePasswordHash(ctx context.Context, ownerID uuid.UUID, hash string) error {
	args := m.Called(ctx, ownerID, hash)
	return args.Error(0)
}

type mockOwnerAccountRepository struct {
	mock.Mock
}

func (m *mockOwnerAccountRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*ledger.OwnerAccount, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.OwnerAccount), args.Error(1)
}

func (m *mockOwnerAccountRepository) Save(ctx context.Context, account *ledger.OwnerAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *mockOwnerAccountRepository) SaveWithLock(ctx context.Context, account *ledger.OwnerAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// Test helpers

type registryFixture struct {
	busRepo     *mockBusRepository
	agentRepo   *mockAgentRepository
	opRepo      *mockOperatorRepository
	credRepo    *mockOwnerCredentialRepository
	accountRepo *mockOwnerAccountRepository
	service     *RegistryService
}

func newRegistryFixture() *registryFixture {
	f := &registryFixture{
		busRepo:     new(mockBusRepository),
		agentRepo:   new(mockAgentRepository),
		opRepo:      new(mockOperatorRepository),
		credRepo:    new(mockOwnerCredentialRepository),
		accountRepo: new(mockOwnerAccountRepository),
	}
	f.service = NewRegistryService(f.busRepo, f.agentRepo, f.opRepo, f.credRepo, f.accountRepo, zap.NewNop())
	return f
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Tests

func TestRegistryService_RegisterBus(t *testing.T) {
	ownerID := uuid.New()

	t.Run("registers with normalized name", func(t *testing.T) {
		f := newRegistryFixture()

		f.busRepo.On("ExistsByName", mock.Anything, ownerID, "DHAKA EXPRESS 1").Return(false, nil)
		f.busRepo.On("Save", mock.Anything, mock.AnythingOfType("*fleet.Bus")).Return(nil)

		bus, err := f.service.RegisterBus(context.Background(), ownerID, "  dhaka express 1 ")

		require.NoError(t, err)
		assert.Equal(t, "DHAKA EXPRESS 1", bus.Name)
		f.busRepo.AssertExpectations(t)
	})

	t.Run("duplicate name is rejected case-insensitively", func(t *testing.T) {
		f := newRegistryFixture()

		f.busRepo.On("ExistsByName", mock.Anything, ownerID, "DHAKA EXPRESS 1").Return(true, nil)

		_, err := f.service.RegisterBus(context.Background(), ownerID, "Dhaka Express 1")

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		f.busRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		f := newRegistryFixture()

		_, err := f.service.RegisterBus(context.Background(), ownerID, "   ")

		require.Error(t, err)
		f.busRepo.AssertNotCalled(t, "ExistsByName", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRegistryService_RegisterAgentAndOperator(t *testing.T) {
	ownerID := uuid.New()

	t.Run("agent duplicates are rejected", func(t *testing.T) {
		f := newRegistryFixture()

		f.agentRepo.On("ExistsByName", mock.Anything, ownerID, "KAMAL").Return(true, nil)

		_, err := f.service.RegisterAgent(context.Background(), ownerID, "kamal")

		require.Error(t, err)
		f.agentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("operator registers", func(t *testing.T) {
		f := newRegistryFixture()

		f.opRepo.On("ExistsByName", mock.Anything, ownerID, "JAMAL").Return(false, nil)
		f.opRepo.On("Save", mock.Anything, mock.AnythingOfType("*fleet.Operator")).Return(nil)

		op, err := f.service.RegisterOperator(context.Background(), ownerID, "jamal")

		require.NoError(t, err)
		assert.Equal(t, "JAMAL", op.Name)
	})
}

func TestRegistryService_VerifyControlPanelPassword(t *testing.T) {
	ownerID := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("correct password verifies", func(t *testing.T) {
		f := newRegistryFixture()
		f.credRepo.On("FindPasswordHash", mock.Anything, ownerID).Return(string(hash), nil)

		err := f.service.VerifyControlPanelPassword(context.Background(), ownerID, "secret123")

		assert.NoError(t, err)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		f := newRegistryFixture()
		f.credRepo.On("FindPasswordHash", mock.Anything, ownerID).Return(string(hash), nil)

		err := f.service.VerifyControlPanelPassword(context.Background(), ownerID, "wrong")

		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("missing hash reports not found", func(t *testing.T) {
		f := newRegistryFixture()
		f.credRepo.On("FindPasswordHash", mock.Anything, ownerID).Return("", shared.ErrNotFound)

		err := f.service.VerifyControlPanelPassword(context.Background(), ownerID, "secret123")

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("empty password is rejected without a lookup", func(t *testing.T) {
		f := newRegistryFixture()

		err := f.service.VerifyControlPanelPassword(context.Background(), ownerID, "")

		require.Error(t, err)
		f.credRepo.AssertNotCalled(t, "FindPasswordHash", mock.Anything, mock.Anything)
	})
}

func TestRegistryService_SetOpeningBalance(t *testing.T) {
	ownerID := uuid.New()

	t.Run("creates the account on first use", func(t *testing.T) {
		f := newRegistryFixture()

		f.accountRepo.On("FindByOwner", mock.Anything, ownerID).Return(nil, shared.ErrNotFound)
		f.accountRepo.On("Save", mock.Anything, mock.AnythingOfType("*ledger.OwnerAccount")).Return(nil)

		account, err := f.service.SetOpeningBalance(context.Background(), ownerID, dec("5000.00"))

		require.NoError(t, err)
		assert.True(t, dec("5000.00").Equal(account.OpeningBalance))
		assert.True(t, account.AggregateDue.IsZero())
		f.accountRepo.AssertExpectations(t)
	})

	t.Run("replaces the balance on an existing account", func(t *testing.T) {
		f := newRegistryFixture()

		existing, err := ledger.NewOwnerAccount(ownerID, dec("1000.00"))
		require.NoError(t, err)

		f.accountRepo.On("FindByOwner", mock.Anything, ownerID).Return(existing, nil)
		f.accountRepo.On("SaveWithLock", mock.Anything, existing).Return(nil)

		account, err := f.service.SetOpeningBalance(context.Background(), ownerID, dec("2500.00"))

		require.NoError(t, err)
		assert.True(t, dec("2500.00").Equal(account.OpeningBalance))
		f.accountRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("negative balance is rejected", func(t *testing.T) {
		f := newRegistryFixture()

		existing, err := ledger.NewOwnerAccount(ownerID, dec("1000.00"))
		require.NoError(t, err)
		f.accountRepo.On("FindByOwner", mock.Anything, ownerID).Return(existing, nil)

		_, err = f.service.SetOpeningBalance(context.Background(), ownerID, dec("-1"))

		require.Error(t, err)
		f.accountRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}
