package handler

import (
	fleetapp "github.com/fleetledger/backend/internal/application/fleet"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// OwnerHandler handles owner control-panel endpoints: password verification
// and opening balance initialisation.
type OwnerHandler struct {
	BaseHandler
	registryService *fleetapp.RegistryService
}

// NewOwnerHandler creates a new OwnerHandler
func NewOwnerHandler(registryService *fleetapp.RegistryService) *OwnerHandler {
	return &OwnerHandler{
		registryService: registryService,
	}
}

// VerifyPasswordRequest carries the control-panel password to verify
type VerifyPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// SetPasswordRequest carries a new control-panel password
type SetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=4,max=72"`
}

// SetBalanceRequest carries the owner's opening balance
type SetBalanceRequest struct {
	Amount float64 `json:"amount" binding:"gte=0"`
}

// RegisterRoutes registers owner routes on the given group
func (h *OwnerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	owner := rg.Group("/owner")
	{
		owner.POST("/verify-password", h.VerifyPassword)
		owner.POST("/password", h.SetPassword)
		owner.POST("/balance", h.SetBalance)
	}
}

// VerifyPassword checks the control-panel password against the stored hash
func (h *OwnerHandler) VerifyPassword(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Owner identity required")
		return
	}

	var req VerifyPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.registryService.VerifyControlPanelPassword(c.Request.Context(), ownerID, req.Password); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"verified": true})
}

// SetPassword stores a new control-panel password for the owner
func (h *OwnerHandler) SetPassword(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Owner identity required")
		return
	}

	var req SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.registryService.SetControlPanelPassword(c.Request.Context(), ownerID, req.Password); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SetBalance sets the opening balance on the owner's account
func (h *OwnerHandler) SetBalance(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Owner identity required")
		return
	}

	var req SetBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.registryService.SetOpeningBalance(c.Request.Context(), ownerID, decimal.NewFromFloat(req.Amount))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"owner_id":        account.OwnerID,
		"opening_balance": account.OpeningBalance,
		"aggregate_due":   account.AggregateDue,
	})
}
