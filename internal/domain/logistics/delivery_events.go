package logistics

import (
	"github.com/google/uuid"
	"github.com/tradeboard/backend/internal/domain/shared"
)

// Aggregate type constant for Delivery
const AggregateTypeDelivery = "Delivery"

// Event type constants for Delivery
const (
	EventTypeDeliveryCreated = "logistics.delivery.created"
	EventTypeDeliveryUpdated = "logistics.delivery.updated"
)

// DeliveryCreatedEvent is published when a new delivery is created
type DeliveryCreatedEvent struct {
	shared.BaseDomainEvent
	DeliveryID     uuid.UUID `json:"delivery_id"`
	DeliveryNumber int64     `json:"delivery_number"`
	SupplierID     uuid.UUID `json:"supplier_id"`
}

// NewDeliveryCreatedEvent creates a new DeliveryCreatedEvent
func NewDeliveryCreatedEvent(delivery *Delivery) *DeliveryCreatedEvent {
	return &DeliveryCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDeliveryCreated, AggregateTypeDelivery, delivery.ID),
		DeliveryID:      delivery.ID,
		DeliveryNumber:  delivery.DeliveryNumber,
		SupplierID:      delivery.SupplierID,
	}
}

// DeliveryUpdatedEvent is published when a delivery is updated
type DeliveryUpdatedEvent struct {
	shared.BaseDomainEvent
	DeliveryID     uuid.UUID `json:"delivery_id"`
	DeliveryNumber int64     `json:"delivery_number"`
	SupplierID     uuid.UUID `json:"supplier_id"`
}

// NewDeliveryUpdatedEvent creates a new DeliveryUpdatedEvent
func NewDeliveryUpdatedEvent(delivery *Delivery) *DeliveryUpdatedEvent {
	return &DeliveryUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDeliveryUpdated, AggregateTypeDelivery, delivery.ID),
		DeliveryID:      delivery.ID,
		DeliveryNumber:  delivery.DeliveryNumber,
		SupplierID:      delivery.SupplierID,
	}
}
