package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tradeboard/backend/internal/domain/logistics"
	"github.com/tradeboard/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// DeliverySortFields contains allowed sort fields for deliveries
var DeliverySortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"delivery_number": true,
	"purchase_date":   true,
	"arrival_date":    true,
	"name":            true,
}

// GormDeliveryRepository implements logistics.DeliveryRepository using GORM
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a new GormDeliveryRepository
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// FindByID finds a delivery by its ID
func (r *GormDeliveryRepository) FindByID(ctx context.Context, id uuid.UUID) (*logistics.Delivery, error) {
	var delivery logistics.Delivery
	if err := r.conn(ctx).First(&delivery, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &delivery, nil
}

// FindByDeliveryNumber finds a delivery by its unique business key
func (r *GormDeliveryRepository) FindByDeliveryNumber(ctx context.Context, deliveryNumber int64) (*logistics.Delivery, error) {
	var delivery logistics.Delivery
	if err := r.conn(ctx).First(&delivery, "delivery_number = ?", deliveryNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &delivery, nil
}

// FindAll finds all deliveries matching the filter
func (r *GormDeliveryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]logistics.Delivery, error) {
	query := r.conn(ctx).Model(&logistics.Delivery{})
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR article ILIKE ?", search, search)
	}
	if supplierID, ok := filter.Filters["supplier_id"]; ok {
		query = query.Where("supplier_id = ?", supplierID)
	}

	var deliveries []logistics.Delivery
	if err := applyFilter(query, filter, DeliverySortFields).Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

// FindBySupplierID finds all deliveries from a supplier
func (r *GormDeliveryRepository) FindBySupplierID(ctx context.Context, supplierID uuid.UUID) ([]logistics.Delivery, error) {
	var deliveries []logistics.Delivery
	err := r.conn(ctx).
		Where("supplier_id = ?", supplierID).
		Order("purchase_date DESC").
		Find(&deliveries).Error
	if err != nil {
		return nil, err
	}
	return deliveries, nil
}

// Save creates or updates a delivery
func (r *GormDeliveryRepository) Save(ctx context.Context, delivery *logistics.Delivery) error {
	return r.conn(ctx).Save(delivery).Error
}

// Delete deletes a delivery
func (r *GormDeliveryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&logistics.Delivery{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure interface compliance
var _ logistics.DeliveryRepository = (*GormDeliveryRepository)(nil)

func (r *GormDeliveryRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}
