package persistence

import (
	"testing"

	"github.com/fleetledger/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.TransactionModel{},
		&models.OwnerAccountModel{},
		&models.ShareRegistrationModel{},
		&models.ShareholderModel{},
		&models.DistributionRunModel{},
		&models.BusModel{},
		&models.AgentModel{},
		&models.OperatorModel{},
		&models.OwnerCredentialModel{},
	)
	require.NoError(t, err)

	return db
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
