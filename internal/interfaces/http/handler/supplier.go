package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	partnerapp "github.com/tradeboard/backend/internal/application/partner"
	"github.com/tradeboard/backend/internal/interfaces/http/middleware"
)

// SupplierHandler handles supplier CRUD, bulk upsert and reliability
// recalculation requests
type SupplierHandler struct {
	BaseHandler
	suppliers *partnerapp.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(suppliers *partnerapp.SupplierService) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers}
}

// List handles GET /api/suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	req, err := bindListRequest(c)
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filters := map[string]interface{}{}
	if category := c.Query("category"); category != "" {
		filters["category"] = category
	}

	suppliers, err := h.suppliers.List(c.Request.Context(), toFilter(req, filters))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suppliers)
}

// Get handles GET /api/suppliers/:id
func (h *SupplierHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Supplier id must be a UUID")
		return
	}

	supplier, err := h.suppliers.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// Upsert handles POST /api/suppliers
func (h *SupplierHandler) Upsert(c *gin.Context) {
	var req partnerapp.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	supplier, created, err := h.suppliers.Upsert(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if created {
		h.Created(c, supplier)
		return
	}
	h.Success(c, supplier)
}

// BulkUpsert handles POST /api/suppliers/bulk
func (h *SupplierHandler) BulkUpsert(c *gin.Context) {
	rows, err := bindRows[partnerapp.SupplierRequest](c, "suppliers")
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.suppliers.BulkUpsert(c.Request.Context(), rows, userIDPtr(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UpdateStats handles POST /api/suppliers/update-stats/:id, forcing a
// reliability recalculation from the supplier's delivery history
func (h *SupplierHandler) UpdateStats(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Supplier id must be a UUID")
		return
	}

	supplier, err := h.suppliers.RecalculateReliability(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// Delete handles DELETE /api/suppliers/:id
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Supplier id must be a UUID")
		return
	}

	if err := h.suppliers.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
