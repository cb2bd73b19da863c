package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradeboard/backend/internal/domain/shared"
)

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	// FindByID finds a supplier by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)

	// FindByUNP finds a supplier by its unique tax identifier
	FindByUNP(ctx context.Context, unp string) (*Supplier, error)

	// FindAll finds all suppliers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)

	// AverageDefectRateTotal returns the mean lifetime defect rate
	// across all suppliers
	AverageDefectRateTotal(ctx context.Context) (float64, error)

	// Save creates or updates a supplier
	Save(ctx context.Context, supplier *Supplier) error

	// Delete deletes a supplier
	Delete(ctx context.Context, id uuid.UUID) error
}
