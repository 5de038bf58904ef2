package fleet

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "GREEN LINE", NormalizeName("  green line "))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestNewBus(t *testing.T) {
	t.Run("stores normalized name", func(t *testing.T) {
		bus, err := NewBus(uuid.New(), " hanif paribahan ")
		require.NoError(t, err)
		assert.Equal(t, "HANIF PARIBAHAN", bus.Name)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := NewBus(uuid.New(), "   ")
		require.Error(t, err)
	})

	t.Run("rejects empty owner", func(t *testing.T) {
		_, err := NewBus(uuid.Nil, "SHYAMOLI")
		require.Error(t, err)
	})
}

func TestNewAgentAndOperator(t *testing.T) {
	agent, err := NewAgent(uuid.New(), "kamal")
	require.NoError(t, err)
	assert.Equal(t, "KAMAL", agent.Name)

	op, err := NewOperator(uuid.New(), "jashim")
	require.NoError(t, err)
	assert.Equal(t, "JASHIM", op.Name)
}
