package partner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tradeboard/backend/internal/domain/logistics"
	"github.com/tradeboard/backend/internal/domain/shared"
	"github.com/tradeboard/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// OrderChangedHandler recalculates a client's aggregates whenever one
// of its orders is created or updated
type OrderChangedHandler struct {
	clients *ClientService
	logger  *zap.Logger
}

// NewOrderChangedHandler creates a new OrderChangedHandler
func NewOrderChangedHandler(clients *ClientService, logger *zap.Logger) *OrderChangedHandler {
	return &OrderChangedHandler{clients: clients, logger: logger}
}

// Handle processes an order created/updated event
func (h *OrderChangedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var clientID uuid.UUID
	switch e := event.(type) {
	case *trade.OrderCreatedEvent:
		clientID = e.ClientID
	case *trade.OrderUpdatedEvent:
		clientID = e.ClientID
	default:
		return fmt.Errorf("unexpected event type %s", event.EventType())
	}

	h.logger.Debug("order change triggers client aggregate recalculation",
		zap.String("event_type", event.EventType()),
		zap.String("client_id", clientID.String()),
	)
	return h.clients.RecalculateAggregates(ctx, clientID)
}

// DeliveryChangedHandler recalculates a supplier's reliability whenever
// one of its deliveries is created or updated
type DeliveryChangedHandler struct {
	suppliers *SupplierService
	logger    *zap.Logger
}

// NewDeliveryChangedHandler creates a new DeliveryChangedHandler
func NewDeliveryChangedHandler(suppliers *SupplierService, logger *zap.Logger) *DeliveryChangedHandler {
	return &DeliveryChangedHandler{suppliers: suppliers, logger: logger}
}

// Handle processes a delivery created/updated event
func (h *DeliveryChangedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var supplierID uuid.UUID
	switch e := event.(type) {
	case *logistics.DeliveryCreatedEvent:
		supplierID = e.SupplierID
	case *logistics.DeliveryUpdatedEvent:
		supplierID = e.SupplierID
	default:
		return fmt.Errorf("unexpected event type %s", event.EventType())
	}

	h.logger.Debug("delivery change triggers supplier reliability recalculation",
		zap.String("event_type", event.EventType()),
		zap.String("supplier_id", supplierID.String()),
	)
	_, err := h.suppliers.RecalculateReliability(ctx, supplierID)
	return err
}

// Ensure interface compliance
var (
	_ shared.EventHandler = (*OrderChangedHandler)(nil)
	_ shared.EventHandler = (*DeliveryChangedHandler)(nil)
)
