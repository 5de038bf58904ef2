package ledger

import (
	"context"
	"fmt"

	"github.com/fleetledger/backend/internal/domain/ledger"
	"github.com/fleetledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentType selects how a deferred transaction is settled
type PaymentType string

const (
	PaymentTypeFull    PaymentType = "FULL"
	PaymentTypePartial PaymentType = "PARTIAL"
)

// IsValid checks if the payment type is valid
func (t PaymentType) IsValid() bool {
	return t == PaymentTypeFull || t == PaymentTypePartial
}

// SettleRequest carries a proposed settlement against a deferred transaction
type SettleRequest struct {
	PaymentType    PaymentType
	OperatorAmount *decimal.Decimal
	AgentAmount    *decimal.Decimal
}

// SettlementOutcome is returned to the caller after a successful settlement
type SettlementOutcome struct {
	TransactionID uuid.UUID            `json:"transaction_id"`
	SettledAmount decimal.Decimal      `json:"settled_amount"`
	RemainingDue  decimal.Decimal      `json:"remaining_due"`
	PaymentStatus ledger.PaymentStatus `json:"payment_status"`
	AggregateDue  decimal.Decimal      `json:"aggregate_due"`
}

// SettlementService reconciles deferred ("pay later") payments. Each call
// runs in a single database transaction: the transaction row and the
// owner's account row are locked, updated and persisted together.
type SettlementService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(scope TransactionScope, logger *zap.Logger) *SettlementService {
	return &SettlementService{
		scope:  scope,
		logger: logger,
	}
}

// Settle applies a full or partial settlement to the owner's transaction.
// The transaction lookup is owner-scoped; a missing transaction and one
// owned by somebody else produce the same NOT_FOUND error.
func (s *SettlementService) Settle(ctx context.Context, ownerID, transactionID uuid.UUID, req SettleRequest) (*SettlementOutcome, error) {
	if transactionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Transaction ID is required")
	}
	if !req.PaymentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE", "Payment type must be FULL or PARTIAL")
	}
	if req.PaymentType == PaymentTypePartial && (req.OperatorAmount == nil || req.AgentAmount == nil) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Operator and agent amounts are required for partial payment")
	}

	var outcome *SettlementOutcome
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		tx, err := repos.TransactionRepo().FindByIDForOwner(ctx, ownerID, transactionID)
		if err != nil {
			return err
		}

		var result *ledger.SettlementResult
		switch req.PaymentType {
		case PaymentTypePartial:
			result, err = tx.ApplyPartialSettlement(*req.OperatorAmount, *req.AgentAmount)
		case PaymentTypeFull:
			result, err = tx.SettleFull()
		}
		if err != nil {
			return err
		}

		account, err := repos.OwnerAccountRepo().FindByOwner(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("failed to load owner account: %w", err)
		}
		if err := account.ReduceDue(result.SettledAmount); err != nil {
			s.logger.Error("aggregate due would go negative, refusing settlement",
				zap.String("owner_id", ownerID.String()),
				zap.String("transaction_id", transactionID.String()),
				zap.String("aggregate_due", account.AggregateDue.String()),
				zap.String("settled", result.SettledAmount.String()))
			return err
		}

		if err := repos.TransactionRepo().SaveWithLock(ctx, tx); err != nil {
			return err
		}
		if err := repos.OwnerAccountRepo().SaveWithLock(ctx, account); err != nil {
			return err
		}

		outcome = &SettlementOutcome{
			TransactionID: tx.ID,
			SettledAmount: result.SettledAmount,
			RemainingDue:  result.RemainingDue,
			PaymentStatus: result.PaymentStatus,
			AggregateDue:  account.AggregateDue,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("settlement recorded",
		zap.String("owner_id", ownerID.String()),
		zap.String("transaction_id", transactionID.String()),
		zap.String("payment_type", string(req.PaymentType)),
		zap.String("settled", outcome.SettledAmount.String()),
		zap.String("remaining_due", outcome.RemainingDue.String()))

	return outcome, nil
}
