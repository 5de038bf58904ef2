package handler

import (
	fleetapp "github.com/fleetledger/backend/internal/application/fleet"
	"github.com/gin-gonic/gin"
)

// FleetHandler handles bus, agent and operator registration endpoints
type FleetHandler struct {
	BaseHandler
	registryService *fleetapp.RegistryService
}

// NewFleetHandler creates a new FleetHandler
func NewFleetHandler(registryService *fleetapp.RegistryService) *FleetHandler {
	return &FleetHandler{
		registryService: registryService,
	}
}

// RegisterNameRequest carries the name of the entity being registered.
// Names are upper-cased and unique per owner.
type RegisterNameRequest struct {
	Name string `json:"name" binding:"required,min=1,max=120"`
}

// RegisterRoutes registers fleet routes on the given group
func (h *FleetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/fleet")
	{
		group.POST("/buses", h.RegisterBus)
		group.POST("/agents", h.RegisterAgent)
		group.POST("/operators", h.RegisterOperator)
	}
}

// RegisterBus registers a bus under the owner
func (h *FleetHandler) RegisterBus(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Owner identity required")
		return
	}

	var req RegisterNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bus, err := h.registryService.RegisterBus(c.Request.Context(), ownerID, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, bus)
}

// RegisterAgent registers a ticketing agent under the owner
func (h *FleetHandler) RegisterAgent(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Owner identity required")
		return
	}

	var req RegisterNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	agent, err := h.registryService.RegisterAgent(c.Request.Context(), ownerID, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, agent)
}

// RegisterOperator registers a bus operator under the owner
func (h *FleetHandler) RegisterOperator(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Owner identity required")
		return
	}

	var req RegisterNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	operator, err := h.registryService.RegisterOperator(c.Request.Context(), ownerID, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, operator)
}
