package shares

import (
	"context"
	"errors"

	ledgerapp "github.com/fleetledger/backend/internal/application/ledger"
	"github.com/fleetledger/backend/internal/domain/shared"
	"github.com/fleetledger/backend/internal/domain/shares"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DistributionService apportions a calendar month's recognized profit
// across the owner's shareholder roster. A period is applied at most once:
// the distribution run record carries a (owner, period) uniqueness
// constraint, and a repeated call returns the stored report instead of
// accruing profit a second time.
type DistributionService struct {
	regRepo shares.ShareRegistrationRepository
	runRepo shares.DistributionRunRepository
	profit  *ledgerapp.ProfitService
	scope   TransactionScope
	logger  *zap.Logger
}

// NewDistributionService creates a new DistributionService
func NewDistributionService(
	regRepo shares.ShareRegistrationRepository,
	runRepo shares.DistributionRunRepository,
	profit *ledgerapp.ProfitService,
	scope TransactionScope,
	logger *zap.Logger,
) *DistributionService {
	return &DistributionService{
		regRepo: regRepo,
		runRepo: runRepo,
		profit:  profit,
		scope:   scope,
		logger:  logger,
	}
}

// Distribute computes and applies the profit distribution for a period.
// Validation (period format, roster presence) happens before any state is
// touched. If the period was already distributed the persisted report is
// returned with AlreadyDistributed set.
func (s *DistributionService) Distribute(ctx context.Context, ownerID uuid.UUID, periodLabel string) (*DistributionReport, error) {
	period, err := shares.ParsePeriod(periodLabel)
	if err != nil {
		return nil, err
	}

	reg, err := s.regRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// An absent roster is a precondition failure of the request,
			// not a missing resource on the distribution path.
			return nil, shared.NewDomainError("MISSING_ROSTER", "No share roster registered; register shareholders before distributing")
		}
		return nil, err
	}

	if existing, err := s.runRepo.FindByOwnerAndPeriod(ctx, ownerID, period.Label()); err == nil {
		return reportFromRun(existing, true), nil
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	start, end := period.Window()
	totalProfit, err := s.profit.ComputeProfit(ctx, ownerID, start, end)
	if err != nil {
		return nil, err
	}

	lines := reg.ComputeDistribution(totalProfit)

	run, err := shares.NewDistributionRun(ownerID, period, totalProfit, lines)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.RunRepo().Save(ctx, run); err != nil {
			return err
		}
		for _, line := range lines {
			sh := reg.ShareholderByID(line.ShareholderID)
			if sh == nil {
				return shared.NewDomainError("SHAREHOLDER_MISSING", "Distribution line references an unknown shareholder")
			}
			sh.AccrueProfit(line.NetShare)
			if err := repos.RegistrationRepo().UpdateShareholderProfit(ctx, sh.ID, sh.ShareProfit); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// A concurrent run for the same period won the race; return its
		// stored report rather than failing the caller.
		if errors.Is(err, shared.ErrAlreadyExists) {
			if existing, findErr := s.runRepo.FindByOwnerAndPeriod(ctx, ownerID, period.Label()); findErr == nil {
				return reportFromRun(existing, true), nil
			}
		}
		return nil, err
	}

	s.logger.Info("profit distributed",
		zap.String("owner_id", ownerID.String()),
		zap.String("period", period.Label()),
		zap.String("total_profit", totalProfit.String()),
		zap.Int("shareholders", len(lines)))

	return reportFromRun(run, false), nil
}
