package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tradeboard/backend/internal/domain/partner"
	"github.com/tradeboard/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// SupplierSortFields contains allowed sort fields for suppliers
var SupplierSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"name":               true,
	"unp":                true,
	"category":           true,
	"on_time_percentage": true,
	"defect_rate_total":  true,
}

// GormSupplierRepository implements partner.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by its ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := r.conn(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// FindByUNP finds a supplier by its unique tax identifier
func (r *GormSupplierRepository) FindByUNP(ctx context.Context, unp string) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := r.conn(ctx).First(&supplier, "unp = ?", unp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// FindAll finds all suppliers matching the filter
func (r *GormSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	query := r.conn(ctx).Model(&partner.Supplier{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR unp LIKE ?", pattern, pattern)
	}

	var suppliers []partner.Supplier
	if err := applyFilter(query, filter, SupplierSortFields).Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// AverageDefectRateTotal returns the mean lifetime defect rate across all suppliers
func (r *GormSupplierRepository) AverageDefectRateTotal(ctx context.Context) (float64, error) {
	var avg *float64
	err := r.conn(ctx).
		Model(&partner.Supplier{}).
		Select("AVG(defect_rate_total)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	return r.conn(ctx).Save(supplier).Error
}

// Delete deletes a supplier
func (r *GormSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&partner.Supplier{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure interface compliance
var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)

func (r *GormSupplierRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}
