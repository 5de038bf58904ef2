package shares

import (
	"context"

	"github.com/fleetledger/backend/internal/domain/shared"
	"github.com/fleetledger/backend/internal/domain/shares"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ShareService manages company share registration and shareholder finance
// liabilities.
type ShareService struct {
	regRepo shares.ShareRegistrationRepository
	logger  *zap.Logger
}

// NewShareService creates a new ShareService
func NewShareService(regRepo shares.ShareRegistrationRepository, logger *zap.Logger) *ShareService {
	return &ShareService{
		regRepo: regRepo,
		logger:  logger,
	}
}

// RegisterShares creates the company share details with its roster. An
// owner may register shares only once.
func (s *ShareService) RegisterShares(ctx context.Context, ownerID uuid.UUID, req RegisterSharesRequest) (*RegistrationDTO, error) {
	exists, err := s.regRepo.ExistsForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	roster := make([]shares.ShareholderInput, 0, len(req.Shareholders))
	for _, in := range req.Shareholders {
		roster = append(roster, shares.ShareholderInput{
			Name:            in.Name,
			SharePercentage: in.SharePercentage,
		})
	}

	reg, err := shares.NewShareRegistration(
		ownerID,
		req.BusinessName,
		req.BusinessCategory,
		shares.BusinessType(req.BusinessType),
		req.ShareholderCount,
		roster,
	)
	if err != nil {
		return nil, err
	}

	if err := s.regRepo.Save(ctx, reg); err != nil {
		return nil, err
	}

	s.logger.Info("company shares registered",
		zap.String("owner_id", ownerID.String()),
		zap.String("business_name", reg.BusinessName),
		zap.Int("shareholders", len(reg.Shareholders)))

	return registrationToDTO(reg), nil
}

// GetRegistration returns the owner's share registration with its roster
func (s *ShareService) GetRegistration(ctx context.Context, ownerID uuid.UUID) (*RegistrationDTO, error) {
	reg, err := s.regRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return registrationToDTO(reg), nil
}

// SetShareholderFinance replaces a shareholder's outstanding finance
// liability. The shareholder must belong to the caller's registration.
func (s *ShareService) SetShareholderFinance(ctx context.Context, ownerID, shareholderID uuid.UUID, amount decimal.Decimal) error {
	reg, err := s.regRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return err
	}

	sh := reg.ShareholderByID(shareholderID)
	if sh == nil {
		return shared.ErrNotFound
	}
	if err := sh.SetFinanceLiability(amount); err != nil {
		return err
	}

	return s.regRepo.UpdateShareholderFinance(ctx, sh.ID, sh.FinanceLiability)
}
