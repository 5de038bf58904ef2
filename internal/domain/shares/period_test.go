package shares

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		wantErr bool
	}{
		{"valid period", "2024-01", false},
		{"valid december", "2024-12", false},
		{"month out of range", "2024-13", true},
		{"month zero", "2024-00", true},
		{"two digit year", "24-01", true},
		{"missing month", "2024", true},
		{"trailing day", "2024-01-01", true},
		{"empty", "", true},
		{"garbage", "abcd-ef", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePeriod(tt.label)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.label, p.Label())
		})
	}
}

func TestPeriod_Window(t *testing.T) {
	t.Run("regular month", func(t *testing.T) {
		p, err := ParsePeriod("2024-03")
		require.NoError(t, err)

		start, end := p.Window()
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("december rolls into next year", func(t *testing.T) {
		p, err := ParsePeriod("2024-12")
		require.NoError(t, err)

		start, end := p.Window()
		assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)
	})
}
