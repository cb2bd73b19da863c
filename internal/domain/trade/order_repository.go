package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tradeboard/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its unique business key
	FindByOrderNumber(ctx context.Context, orderNumber int64) (*Order, error)

	// FindAll finds all orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindByClientID finds all orders belonging to a client
	FindByClientID(ctx context.Context, clientID uuid.UUID) ([]Order, error)

	// CountByClientSince counts a client's orders requested at or after the given time
	CountByClientSince(ctx context.Context, clientID uuid.UUID, since time.Time) (int64, error)

	// Count returns the total number of orders
	Count(ctx context.Context) (int64, error)

	// Save creates or updates an order
	Save(ctx context.Context, order *Order) error

	// Delete deletes an order
	Delete(ctx context.Context, id uuid.UUID) error
}
