package handler

import (
	sharesapp "github.com/fleetledger/backend/internal/application/shares"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SharesHandler handles share registration and profit distribution endpoints
type SharesHandler struct {
	BaseHandler
	shareService        *sharesapp.ShareService
	distributionService *sharesapp.DistributionService
}

// NewSharesHandler creates a new SharesHandler
func NewSharesHandler(shareService *sharesapp.ShareService, distributionService *sharesapp.DistributionService) *SharesHandler {
	return &SharesHandler{
		shareService:        shareService,
		distributionService: distributionService,
	}
}

// ShareholderInput is one roster entry in a share registration request
type ShareholderInput struct {
	Name            string  `json:"name" binding:"required,min=1,max=120"`
	SharePercentage float64 `json:"share_percentage" binding:"required,gt=0,lte=100"`
}

// RegisterSharesRequest represents a company share registration request
type RegisterSharesRequest struct {
	BusinessName     string             `json:"business_name" binding:"required,min=1,max=200"`
	BusinessCategory string             `json:"business_category" binding:"max=100"`
	BusinessType     string             `json:"business_type" binding:"required"`
	ShareholderCount int                `json:"shareholder_count" binding:"min=0"`
	Shareholders     []ShareholderInput `json:"shareholders" binding:"dive"`
}

// SetFinanceRequest carries a shareholder's new finance liability
type SetFinanceRequest struct {
	Amount float64 `json:"amount" binding:"min=0"`
}

// RegisterRoutes registers share routes on the given group
func (h *SharesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	shares := rg.Group("/shares")
	{
		shares.POST("", h.Register)
		shares.GET("", h.GetRegistration)
		shares.GET("/distribution", h.Distribute)
		shares.PUT("/shareholders/:id/finance", h.SetShareholderFinance)
	}
}

// Register creates the company share registration with its roster
func (h *SharesHandler) Register(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Owner identity required")
		return
	}

	var req RegisterSharesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := sharesapp.RegisterSharesRequest{
		BusinessName:     req.BusinessName,
		BusinessCategory: req.BusinessCategory,
		BusinessType:     req.BusinessType,
		ShareholderCount: req.ShareholderCount,
	}
	for _, sh := range req.Shareholders {
		appReq.Shareholders = append(appReq.Shareholders, sharesapp.ShareholderInputDTO{
			Name:            sh.Name,
			SharePercentage: decimal.NewFromFloat(sh.SharePercentage),
		})
	}

	registration, err := h.shareService.RegisterShares(c.Request.Context(), ownerID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, registration)
}

// GetRegistration returns the owner's share registration and roster
func (h *SharesHandler) GetRegistration(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Owner identity required")
		return
	}

	registration, err := h.shareService.GetRegistration(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, registration)
}

// Distribute runs (or replays) the profit distribution for a period.
// Repeating a period returns the stored report instead of crediting
// shareholders twice.
func (h *SharesHandler) Distribute(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Owner identity required")
		return
	}

	period := c.Query("period")
	if period == "" {
		h.BadRequest(c, "Query parameter 'period' is required (YYYY-MM)")
		return
	}

	report, err := h.distributionService.Distribute(c.Request.Context(), ownerID, period)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// SetShareholderFinance replaces a shareholder's finance liability
func (h *SharesHandler) SetShareholderFinance(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Owner identity required")
		return
	}

	shareholderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shareholder ID format")
		return
	}

	var req SetFinanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	err = h.shareService.SetShareholderFinance(c.Request.Context(), ownerID, shareholderID, decimal.NewFromFloat(req.Amount))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
