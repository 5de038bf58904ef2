package persistence

import (
	"context"
	"testing"

	"github.com/fleetledger/backend/internal/domain/fleet"
	"github.com/fleetledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormBusRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBusRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	bus, err := fleet.NewBus(ownerID, "dhaka express 1")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, bus))

	t.Run("exists by normalized name", func(t *testing.T) {
		exists, err := repo.ExistsByName(ctx, ownerID, "DHAKA EXPRESS 1")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByName(ctx, uuid.New(), "DHAKA EXPRESS 1")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("duplicate name for the same owner is rejected by the store", func(t *testing.T) {
		dup, err := fleet.NewBus(ownerID, "Dhaka Express 1")
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Save(ctx, dup), shared.ErrAlreadyExists)
	})

	t.Run("same name under another owner is allowed", func(t *testing.T) {
		other, err := fleet.NewBus(uuid.New(), "Dhaka Express 1")
		require.NoError(t, err)
		assert.NoError(t, repo.Save(ctx, other))
	})

	t.Run("lists the owner's buses", func(t *testing.T) {
		second, err := fleet.NewBus(ownerID, "chittagong deluxe")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, second))

		buses, err := repo.FindAllForOwner(ctx, ownerID)
		require.NoError(t, err)
		require.Len(t, buses, 2)
		assert.Equal(t, "CHITTAGONG DELUXE", buses[0].Name)
		assert.Equal(t, "DHAKA EXPRESS 1", buses[1].Name)
	})
}

func TestGormAgentAndOperatorRepositories(t *testing.T) {
	db := setupTestDB(t)
	agentRepo := NewGormAgentRepository(db)
	opRepo := NewGormOperatorRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()

	agent, err := fleet.NewAgent(ownerID, "kamal")
	require.NoError(t, err)
	require.NoError(t, agentRepo.Save(ctx, agent))

	op, err := fleet.NewOperator(ownerID, "jamal")
	require.NoError(t, err)
	require.NoError(t, opRepo.Save(ctx, op))

	exists, err := agentRepo.ExistsByName(ctx, ownerID, "KAMAL")
	require.NoError(t, err)
	assert.True(t, exists)

	ops, err := opRepo.FindAllForOwner(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "JAMAL", ops[0].Name)
}

func TestGormOwnerCredentialRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOwnerCredentialRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()

	t.Run("missing hash reports not found", func(t *testing.T) {
		_, err := repo.FindPasswordHash(ctx, ownerID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("stores and replaces the hash", func(t *testing.T) {
		require.NoError(t, repo.SavePasswordHash(ctx, ownerID, "hash-one"))

		hash, err := repo.FindPasswordHash(ctx, ownerID)
		require.NoError(t, err)
		assert.Equal(t, "hash-one", hash)

		require.NoError(t, repo.SavePasswordHash(ctx, ownerID, "hash-two"))

		hash, err = repo.FindPasswordHash(ctx, ownerID)
		require.NoError(t, err)
		assert.Equal(t, "hash-two", hash)
	})
}
