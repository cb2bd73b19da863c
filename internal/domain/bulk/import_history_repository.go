package bulk

import (
	"context"

	"github.com/google/uuid"
	"github.com/tradeboard/backend/internal/domain/shared"
)

// ImportHistoryRepository defines the interface for import history persistence
type ImportHistoryRepository interface {
	// FindByID finds an import record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ImportHistory, error)

	// FindAll finds import records matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]ImportHistory, error)

	// Save creates an import record
	Save(ctx context.Context, history *ImportHistory) error
}
