package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	logisticsapp "github.com/tradeboard/backend/internal/application/logistics"
	"github.com/tradeboard/backend/internal/interfaces/http/middleware"
)

// DeliveryHandler handles delivery CRUD and bulk upsert requests
type DeliveryHandler struct {
	BaseHandler
	deliveries *logisticsapp.DeliveryService
}

// NewDeliveryHandler creates a new DeliveryHandler
func NewDeliveryHandler(deliveries *logisticsapp.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveries: deliveries}
}

// List handles GET /api/deliveries
func (h *DeliveryHandler) List(c *gin.Context) {
	req, err := bindListRequest(c)
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filters := map[string]interface{}{}
	if supplierID := c.Query("supplierId"); supplierID != "" {
		id, err := uuid.Parse(supplierID)
		if err != nil {
			h.BadRequest(c, "supplierId must be a UUID")
			return
		}
		filters["supplier_id"] = id
	}

	deliveries, err := h.deliveries.List(c.Request.Context(), toFilter(req, filters))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, deliveries)
}

// Get handles GET /api/deliveries/:id
func (h *DeliveryHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Delivery id must be a UUID")
		return
	}

	delivery, err := h.deliveries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, delivery)
}

// Upsert handles POST /api/deliveries, keyed on delivery number
func (h *DeliveryHandler) Upsert(c *gin.Context) {
	var req logisticsapp.DeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	delivery, created, err := h.deliveries.Upsert(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if created {
		h.Created(c, delivery)
		return
	}
	h.Success(c, delivery)
}

// BulkUpsert handles POST /api/deliveries/bulk
func (h *DeliveryHandler) BulkUpsert(c *gin.Context) {
	rows, err := bindRows[logisticsapp.DeliveryRequest](c, "deliveries")
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.deliveries.BulkUpsert(c.Request.Context(), rows, userIDPtr(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete handles DELETE /api/deliveries/:id
func (h *DeliveryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Delivery id must be a UUID")
		return
	}

	if err := h.deliveries.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
