package shares

import (
	"context"
	"errors"
	"testing"
	"time"

	ledgerapp "github.com/fleetledger/backend/internal/application/ledger"
	"github.com/fleetledger/backend/internal/domain/ledger"
	"github.com/fleetledger/backend/internal/domain/shared"
	"github.com/fleetledger/backend/internal/domain/shares"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Mock implementations

type mockShareRegistrationRepository struct {
	mock.Mock
}

func (m *mockShareRegistrationRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*shares.ShareRegistration, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shares.ShareRegistration), args.Error(1)
}

func (m *mockShareRegistrationRepository) Save(ctx context.Context, reg *shares.ShareRegistration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *mockShareRegistrationRepository) UpdateShareholderProfit(ctx context.Context, shareholderID uuid.UUID, newCumulative decimal.Decimal) error {
	args := m.Called(ctx, shareholderID, newCumulative)
	return args.Error(0)
}

func (m *mockShareRegistrationRepository) UpdateShareholderFinance(ctx context.Context, shareholderID uuid.UUID, newLiability decimal.Decimal) error {
	args := m.Called(ctx, shareholderID, newLiability)
	return args.Error(0)
}

func (m *mockShareRegistrationRepository) ExistsForOwner(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, ownerID)
	return args.Bool(0), args.Error(1)
}

type mockDistributionRunRepository struct {
	mock.Mock
}

func (m *mockDistributionRunRepository) FindByOwnerAndPeriod(ctx context.Context, ownerID uuid.UUID, period string) (*shares.DistributionRun, error) {
	args := m.Called(ctx, ownerID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shares.DistributionRun), args.Error(1)
}

func (m *mockDistributionRunRepository) Save(ctx context.Context, run *shares.DistributionRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

type mockTransactionRepository struct {
	mock.Mock
}

func (m *mockTransactionRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*ledger.Transaction, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *mockTransactionRepository) FindSettledCreditsInWindow(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]ledger.Transaction, error) {
	args := m.Called(ctx, ownerID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *mockTransactionRepository) Save(ctx context.Context, tx *ledger.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *mockTransactionRepository) SaveWithLock(ctx context.Context, tx *ledger.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// Test helpers

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func partnershipRoster(t *testing.T, ownerID uuid.UUID) *shares.ShareRegistration {
	t.Helper()
	reg, err := shares.NewShareRegistration(
		ownerID,
		"Green Line Travels",
		"Transport",
		shares.BusinessTypePartnership,
		2,
		[]shares.ShareholderInput{
			{Name: "Rahim", SharePercentage: dec("60")},
			{Name: "Karim", SharePercentage: dec("40")},
		},
	)
	require.NoError(t, err)
	return reg
}

func settledCredits(t *testing.T, ownerID uuid.UUID, amounts ...string) []ledger.Transaction {
	t.Helper()
	rows := make([]ledger.Transaction, 0, len(amounts))
	for _, a := range amounts {
		tx, err := ledger.NewTransaction(ownerID, ledger.LogTypeCredit, dec(a), false)
		require.NoError(t, err)
		rows = append(rows, *tx)
	}
	return rows
}

type distributionFixture struct {
	regRepo *mockShareRegistrationRepository
	runRepo *mockDistributionRunRepository
	txRepo  *mockTransactionRepository
	service *DistributionService
}

func newDistributionFixture() *distributionFixture {
	regRepo := new(mockShareRegistrationRepository)
	runRepo := new(mockDistributionRunRepository)
	txRepo := new(mockTransactionRepository)
	profit := ledgerapp.NewProfitService(txRepo, zap.NewNop())
	scope := NewNoOpTransactionScope(regRepo, runRepo)
	return &distributionFixture{
		regRepo: regRepo,
		runRepo: runRepo,
		txRepo:  txRepo,
		service: NewDistributionService(regRepo, runRepo, profit, scope, zap.NewNop()),
	}
}

// Tests

func TestDistributionService_Distribute(t *testing.T) {
	ownerID := uuid.New()
	windowStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("distributes the month's profit across the roster", func(t *testing.T) {
		f := newDistributionFixture()
		reg := partnershipRoster(t, ownerID)
		require.NoError(t, reg.Shareholders[0].SetFinanceLiability(dec("100.00")))

		f.regRepo.On("FindByOwner", mock.Anything, ownerID).Return(reg, nil)
		f.runRepo.On("FindByOwnerAndPeriod", mock.Anything, ownerID, "2024-03").Return(nil, shared.ErrNotFound)
		f.txRepo.On("FindSettledCreditsInWindow", mock.Anything, ownerID, windowStart, windowEnd).
			Return(settledCredits(t, ownerID, "600.00", "400.00"), nil)
		f.runRepo.On("Save", mock.Anything, mock.AnythingOfType("*shares.DistributionRun")).Return(nil)
		f.regRepo.On("UpdateShareholderProfit", mock.Anything, reg.Shareholders[0].ID, mock.Anything).Return(nil)
		f.regRepo.On("UpdateShareholderProfit", mock.Anything, reg.Shareholders[1].ID, mock.Anything).Return(nil)

		report, err := f.service.Distribute(context.Background(), ownerID, "2024-03")

		require.NoError(t, err)
		assert.Equal(t, "2024-03", report.Month)
		assert.False(t, report.AlreadyDistributed)
		assert.True(t, dec("1000.00").Equal(report.TotalProfit))
		require.Len(t, report.ShareDistribution, 2)

		first := report.ShareDistribution[0]
		assert.Equal(t, "Rahim", first.Shareholder)
		assert.True(t, dec("600.00").Equal(first.OriginalProfit))
		assert.True(t, dec("100.00").Equal(first.FinanceDeducted))
		assert.True(t, dec("500.00").Equal(first.FinalProfit))

		second := report.ShareDistribution[1]
		assert.Equal(t, "Karim", second.Shareholder)
		assert.True(t, dec("400.00").Equal(second.FinalProfit))

		assert.True(t, dec("500.00").Equal(reg.Shareholders[0].ShareProfit))
		assert.True(t, dec("400.00").Equal(reg.Shareholders[1].ShareProfit))
		f.regRepo.AssertExpectations(t)
		f.runRepo.AssertExpectations(t)
	})

	t.Run("rounded shares stay within a minor unit of the total", func(t *testing.T) {
		f := newDistributionFixture()
		reg, err := shares.NewShareRegistration(
			ownerID,
			"Green Line Travels",
			"Transport",
			shares.BusinessTypePartnership,
			3,
			[]shares.ShareholderInput{
				{Name: "Rahim", SharePercentage: dec("33.33")},
				{Name: "Karim", SharePercentage: dec("33.33")},
				{Name: "Salam", SharePercentage: dec("33.34")},
			},
		)
		require.NoError(t, err)

		f.regRepo.On("FindByOwner", mock.Anything, ownerID).Return(reg, nil)
		f.runRepo.On("FindByOwnerAndPeriod", mock.Anything, ownerID, "2024-03").Return(nil, shared.ErrNotFound)
		f.txRepo.On("FindSettledCreditsInWindow", mock.Anything, ownerID, windowStart, windowEnd).
			Return(settledCredits(t, ownerID, "600.01", "400.00"), nil)
		f.runRepo.On("Save", mock.Anything, mock.AnythingOfType("*shares.DistributionRun")).Return(nil)
		for i := range reg.Shareholders {
			f.regRepo.On("UpdateShareholderProfit", mock.Anything, reg.Shareholders[i].ID, mock.Anything).Return(nil)
		}

		report, err := f.service.Distribute(context.Background(), ownerID, "2024-03")

		require.NoError(t, err)
		assert.True(t, dec("1000.01").Equal(report.TotalProfit))
		require.Len(t, report.ShareDistribution, 3)
		assert.True(t, dec("333.30").Equal(report.ShareDistribution[0].OriginalProfit))
		assert.True(t, dec("333.30").Equal(report.ShareDistribution[1].OriginalProfit))
		assert.True(t, dec("333.40").Equal(report.ShareDistribution[2].OriginalProfit))

		var accrued decimal.Decimal
		for _, line := range report.ShareDistribution {
			accrued = accrued.Add(line.OriginalProfit)
		}
		drift := report.TotalProfit.Sub(accrued).Abs()
		assert.True(t, drift.LessThanOrEqual(dec("0.01")), "drift %s", drift)
	})

	t.Run("repeat call returns the stored report without re-accruing", func(t *testing.T) {
		f := newDistributionFixture()
		reg := partnershipRoster(t, ownerID)

		period, err := shares.ParsePeriod("2024-03")
		require.NoError(t, err)
		existing, err := shares.NewDistributionRun(ownerID, period, dec("1000.00"), reg.ComputeDistribution(dec("1000.00")))
		require.NoError(t, err)

		f.regRepo.On("FindByOwner", mock.Anything, ownerID).Return(reg, nil)
		f.runRepo.On("FindByOwnerAndPeriod", mock.Anything, ownerID, "2024-03").Return(existing, nil)

		report, err := f.service.Distribute(context.Background(), ownerID, "2024-03")

		require.NoError(t, err)
		assert.True(t, report.AlreadyDistributed)
		assert.True(t, dec("1000.00").Equal(report.TotalProfit))
		f.runRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.regRepo.AssertNotCalled(t, "UpdateShareholderProfit", mock.Anything, mock.Anything, mock.Anything)
		f.txRepo.AssertNotCalled(t, "FindSettledCreditsInWindow", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed period fails before touching the store", func(t *testing.T) {
		for _, label := range []string{"2024-13", "24-01", "2024-3", "March 2024", ""} {
			f := newDistributionFixture()

			_, err := f.service.Distribute(context.Background(), ownerID, label)

			require.Error(t, err, "label %q", label)
			f.regRepo.AssertNotCalled(t, "FindByOwner", mock.Anything, mock.Anything)
			f.runRepo.AssertNotCalled(t, "FindByOwnerAndPeriod", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("missing roster is a precondition failure", func(t *testing.T) {
		f := newDistributionFixture()
		f.regRepo.On("FindByOwner", mock.Anything, ownerID).Return(nil, shared.ErrNotFound)

		_, err := f.service.Distribute(context.Background(), ownerID, "2024-03")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "MISSING_ROSTER", domainErr.Code)
		f.runRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("profit computation failure aborts the run", func(t *testing.T) {
		f := newDistributionFixture()
		reg := partnershipRoster(t, ownerID)
		storeErr := errors.New("connection reset")

		f.regRepo.On("FindByOwner", mock.Anything, ownerID).Return(reg, nil)
		f.runRepo.On("FindByOwnerAndPeriod", mock.Anything, ownerID, "2024-03").Return(nil, shared.ErrNotFound)
		f.txRepo.On("FindSettledCreditsInWindow", mock.Anything, ownerID, windowStart, windowEnd).Return(nil, storeErr)

		_, err := f.service.Distribute(context.Background(), ownerID, "2024-03")

		require.Error(t, err)
		assert.ErrorIs(t, err, storeErr)
		f.runRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.regRepo.AssertNotCalled(t, "UpdateShareholderProfit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("losing a concurrent race returns the winner's report", func(t *testing.T) {
		f := newDistributionFixture()
		reg := partnershipRoster(t, ownerID)

		period, err := shares.ParsePeriod("2024-03")
		require.NoError(t, err)
		winner, err := shares.NewDistributionRun(ownerID, period, dec("800.00"), reg.ComputeDistribution(dec("800.00")))
		require.NoError(t, err)

		f.regRepo.On("FindByOwner", mock.Anything, ownerID).Return(reg, nil)
		f.runRepo.On("FindByOwnerAndPeriod", mock.Anything, ownerID, "2024-03").Return(nil, shared.ErrNotFound).Once()
		f.txRepo.On("FindSettledCreditsInWindow", mock.Anything, ownerID, windowStart, windowEnd).
			Return(settledCredits(t, ownerID, "800.00"), nil)
		f.runRepo.On("Save", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)
		f.runRepo.On("FindByOwnerAndPeriod", mock.Anything, ownerID, "2024-03").Return(winner, nil).Once()

		report, err := f.service.Distribute(context.Background(), ownerID, "2024-03")

		require.NoError(t, err)
		assert.True(t, report.AlreadyDistributed)
		assert.True(t, dec("800.00").Equal(report.TotalProfit))
		f.regRepo.AssertNotCalled(t, "UpdateShareholderProfit", mock.Anything, mock.Anything, mock.Anything)
	})
}
