package logistics

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradeboard/backend/internal/domain/shared"
)

// DeliveryRepository defines the interface for delivery persistence
type DeliveryRepository interface {
	// FindByID finds a delivery by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Delivery, error)

	// FindByDeliveryNumber finds a delivery by its unique business key
	FindByDeliveryNumber(ctx context.Context, deliveryNumber int64) (*Delivery, error)

	// FindAll finds all deliveries matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Delivery, error)

	// FindBySupplierID finds all deliveries belonging to a supplier
	FindBySupplierID(ctx context.Context, supplierID uuid.UUID) ([]Delivery, error)

	// Save creates or updates a delivery
	Save(ctx context.Context, delivery *Delivery) error

	// Delete deletes a delivery
	Delete(ctx context.Context, id uuid.UUID) error
}
