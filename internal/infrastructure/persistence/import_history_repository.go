package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tradeboard/backend/internal/domain/bulk"
	"github.com/tradeboard/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ImportHistorySortFields contains allowed sort fields for import history
var ImportHistorySortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"entity_type": true,
	"total_rows":  true,
}

// GormImportHistoryRepository implements bulk.ImportHistoryRepository using GORM
type GormImportHistoryRepository struct {
	db *gorm.DB
}

// NewGormImportHistoryRepository creates a new GormImportHistoryRepository
func NewGormImportHistoryRepository(db *gorm.DB) *GormImportHistoryRepository {
	return &GormImportHistoryRepository{db: db}
}

// FindByID finds an import record by its ID
func (r *GormImportHistoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*bulk.ImportHistory, error) {
	var history bulk.ImportHistory
	if err := r.conn(ctx).First(&history, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &history, nil
}

// FindAll finds import records matching the filter, newest first
func (r *GormImportHistoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]bulk.ImportHistory, error) {
	query := r.conn(ctx).Model(&bulk.ImportHistory{})
	if entityType, ok := filter.Filters["entity_type"]; ok {
		query = query.Where("entity_type = ?", entityType)
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
		filter.OrderDir = "desc"
	}

	var records []bulk.ImportHistory
	if err := applyFilter(query, filter, ImportHistorySortFields).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save creates an import record
func (r *GormImportHistoryRepository) Save(ctx context.Context, history *bulk.ImportHistory) error {
	return r.conn(ctx).Save(history).Error
}

// Ensure interface compliance
var _ bulk.ImportHistoryRepository = (*GormImportHistoryRepository)(nil)

func (r *GormImportHistoryRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}
