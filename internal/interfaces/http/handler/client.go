package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	partnerapp "github.com/tradeboard/backend/internal/application/partner"
	tradeapp "github.com/tradeboard/backend/internal/application/trade"
	"github.com/tradeboard/backend/internal/interfaces/http/middleware"
)

// ClientHandler handles client CRUD and bulk upsert requests
type ClientHandler struct {
	BaseHandler
	clients *partnerapp.ClientService
	orders  *tradeapp.OrderService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clients *partnerapp.ClientService, orders *tradeapp.OrderService) *ClientHandler {
	return &ClientHandler{clients: clients, orders: orders}
}

// List handles GET /api/clients
func (h *ClientHandler) List(c *gin.Context) {
	req, err := bindListRequest(c)
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filters := map[string]interface{}{}
	if activity := c.Query("activityStatus"); activity != "" {
		filters["activity_status"] = activity
	}

	clients, err := h.clients.List(c.Request.Context(), toFilter(req, filters))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, clients)
}

// Get handles GET /api/clients/:id
func (h *ClientHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Client id must be a UUID")
		return
	}

	client, err := h.clients.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// Upsert handles POST /api/clients
func (h *ClientHandler) Upsert(c *gin.Context) {
	var req partnerapp.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	client, created, err := h.clients.Upsert(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if created {
		h.Created(c, client)
		return
	}
	h.Success(c, client)
}

// BulkUpsert handles POST /api/clients/bulk
func (h *ClientHandler) BulkUpsert(c *gin.Context) {
	rows, err := bindRows[partnerapp.ClientRequest](c, "clients")
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.clients.BulkUpsert(c.Request.Context(), rows, userIDPtr(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete handles DELETE /api/clients/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Client id must be a UUID")
		return
	}

	if err := h.clients.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Orders handles GET /api/clients/:id/orders
func (h *ClientHandler) Orders(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Client id must be a UUID")
		return
	}

	orders, err := h.orders.ListByClient(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}
