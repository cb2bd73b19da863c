package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradeboard/backend/internal/domain/shared"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByID finds a client by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindByUNP finds a client by its unique tax identifier
	FindByUNP(ctx context.Context, unp string) (*Client, error)

	// FindAll finds all clients matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)

	// Count returns the total number of clients
	Count(ctx context.Context) (int64, error)

	// Save creates or updates a client
	Save(ctx context.Context, client *Client) error

	// Delete deletes a client
	Delete(ctx context.Context, id uuid.UUID) error
}
