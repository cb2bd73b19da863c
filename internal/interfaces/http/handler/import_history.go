package handler

import (
	"github.com/gin-gonic/gin"
	bulkapp "github.com/tradeboard/backend/internal/application/bulk"
	"github.com/tradeboard/backend/internal/interfaces/http/middleware"
)

// ImportHistoryHandler handles bulk import audit trail requests
type ImportHistoryHandler struct {
	BaseHandler
	history *bulkapp.HistoryService
}

// NewImportHistoryHandler creates a new ImportHistoryHandler
func NewImportHistoryHandler(history *bulkapp.HistoryService) *ImportHistoryHandler {
	return &ImportHistoryHandler{history: history}
}

// List handles GET /api/imports
func (h *ImportHistoryHandler) List(c *gin.Context) {
	req, err := bindListRequest(c)
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filters := map[string]interface{}{}
	if entityType := c.Query("entityType"); entityType != "" {
		filters["entity_type"] = entityType
	}

	imports, err := h.history.List(c.Request.Context(), toFilter(req, filters))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, imports)
}
