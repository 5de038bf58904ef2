package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetledger/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProfitService computes recognized profit over a time window. Only CREDIT
// transactions that are fully settled (or were never deferred) count; each
// contributes its amount minus the agent commission and operator collection
// disbursements.
type ProfitService struct {
	txRepo ledger.TransactionRepository
	logger *zap.Logger
}

// NewProfitService creates a new ProfitService
func NewProfitService(txRepo ledger.TransactionRepository, logger *zap.Logger) *ProfitService {
	return &ProfitService{
		txRepo: txRepo,
		logger: logger,
	}
}

// ComputeProfit sums the profit contributions of the owner's recognized
// transactions in the half-open window [start, end). A store failure is
// returned to the caller; it is never silently reported as zero profit.
func (s *ProfitService) ComputeProfit(ctx context.Context, ownerID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	transactions, err := s.txRepo.FindSettledCreditsInWindow(ctx, ownerID, start, end)
	if err != nil {
		s.logger.Error("failed to load transactions for profit window",
			zap.String("owner_id", ownerID.String()),
			zap.Time("start", start),
			zap.Time("end", end),
			zap.Error(err))
		return decimal.Zero, fmt.Errorf("failed to load transactions: %w", err)
	}

	total := decimal.Zero
	for i := range transactions {
		tx := &transactions[i]
		// The repository query already applies the inclusion rules; the
		// guard protects against a store returning a wider set.
		if !tx.CountsTowardProfit() {
			continue
		}
		total = total.Add(tx.ProfitContribution())
	}

	s.logger.Debug("computed window profit",
		zap.String("owner_id", ownerID.String()),
		zap.Int("transactions", len(transactions)),
		zap.String("total", total.String()))

	return total, nil
}
