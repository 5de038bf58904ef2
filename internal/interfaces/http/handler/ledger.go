package handler

import (
	ledgerapp "github.com/fleetledger/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerHandler handles deferred payment settlement endpoints
type LedgerHandler struct {
	BaseHandler
	settlementService *ledgerapp.SettlementService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(settlementService *ledgerapp.SettlementService) *LedgerHandler {
	return &LedgerHandler{
		settlementService: settlementService,
	}
}

// SettleRequest represents a settlement request against a deferred transaction
type SettleRequest struct {
	PaymentType    string   `json:"payment_type" binding:"required,oneof=FULL PARTIAL"`
	OperatorAmount *float64 `json:"operator_amount" binding:"omitempty,gte=0"`
	AgentAmount    *float64 `json:"agent_amount" binding:"omitempty,gte=0"`
}

// RegisterRoutes registers transaction routes on the given group
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	transactions := rg.Group("/transactions")
	{
		transactions.POST("/:id/settle", h.Settle)
	}
}

// Settle applies a full or partial settlement to a deferred transaction
func (h *LedgerHandler) Settle(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Owner identity required")
		return
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	var req SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := ledgerapp.SettleRequest{
		PaymentType: ledgerapp.PaymentType(req.PaymentType),
	}
	if req.OperatorAmount != nil {
		amount := decimal.NewFromFloat(*req.OperatorAmount)
		appReq.OperatorAmount = &amount
	}
	if req.AgentAmount != nil {
		amount := decimal.NewFromFloat(*req.AgentAmount)
		appReq.AgentAmount = &amount
	}

	outcome, err := h.settlementService.Settle(c.Request.Context(), ownerID, transactionID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, outcome)
}
