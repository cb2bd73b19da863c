package logistics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeboard/backend/internal/domain/shared"
)

// StatusOnTime marks a delivery that arrived within its contractual term.
// Overdue deliveries carry a "Overdue by N days" status instead.
const StatusOnTime = "On time"

// DefaultCurrency is used when a delivery does not specify one
const DefaultCurrency = "BYN"

// Delivery represents a single supplier delivery in the logistics context
// It is the aggregate root for delivery-related operations
type Delivery struct {
	shared.BaseAggregateRoot
	DeliveryNumber int64     `gorm:"not null;uniqueIndex"`
	SupplierID     uuid.UUID `gorm:"type:uuid;not null;index"`

	// Product descriptors
	Article         string `gorm:"type:varchar(100)"`
	Name            string `gorm:"type:varchar(200);not null"`
	Characteristics string `gorm:"type:text"`
	Unit            string `gorm:"type:varchar(30)"`

	// Raw quantities and pricing
	Quantity          float64         `gorm:"not null;default:0"`
	DefectiveQuantity float64         `gorm:"not null;default:0"`
	PricePerUnit      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency          string          `gorm:"type:varchar(10);not null;default:'BYN'"`

	// Raw dates
	PurchaseDate time.Time `gorm:"not null;index"`
	ArrivalDate  time.Time `gorm:"not null"`
	DeliveryTerm time.Time `gorm:"not null"` // contractual arrival deadline

	// Derived fields, recomputed on every write by RecalculateMetrics
	QualityRatio     float64         `gorm:"not null;default:1"`
	TotalPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DeliveryDuration float64         `gorm:"not null;default:0"` // days from purchase to arrival
	Status           string          `gorm:"type:varchar(50);not null;default:'On time'"`
}

// TableName returns the table name for GORM
func (Delivery) TableName() string {
	return "deliveries"
}

// NewDelivery creates a new delivery with required fields
func NewDelivery(deliveryNumber int64, supplierID uuid.UUID, name string, quantity float64, pricePerUnit decimal.Decimal) (*Delivery, error) {
	if deliveryNumber <= 0 {
		return nil, shared.NewDomainError("INVALID_DELIVERY_NUMBER", "Delivery number must be positive")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Delivery must reference a supplier")
	}
	if name == "" {
		return nil, shared.NewDomainError("MISSING_PRODUCT_NAME", "Product name is required")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	delivery := &Delivery{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DeliveryNumber:    deliveryNumber,
		SupplierID:        supplierID,
		Name:              name,
		Quantity:          quantity,
		PricePerUnit:      pricePerUnit,
		Currency:          DefaultCurrency,
		QualityRatio:      1,
		Status:            StatusOnTime,
	}

	return delivery, nil
}

// Validate checks the delivery's cross-field invariants
func (d *Delivery) Validate() error {
	if d.Quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if d.DefectiveQuantity < 0 {
		return shared.NewDomainError("INVALID_DEFECTIVE_QUANTITY", "Defective quantity cannot be negative")
	}
	if d.DefectiveQuantity > d.Quantity {
		return shared.NewDomainError("DEFECTIVE_EXCEEDS_QUANTITY", "Defective quantity cannot exceed delivered quantity")
	}
	if d.PurchaseDate.IsZero() {
		return shared.NewDomainError("MISSING_PURCHASE_DATE", "Purchase date is required")
	}
	if d.ArrivalDate.IsZero() {
		return shared.NewDomainError("MISSING_ARRIVAL_DATE", "Arrival date is required")
	}
	if d.DeliveryTerm.IsZero() {
		return shared.NewDomainError("MISSING_DELIVERY_TERM", "Delivery term is required")
	}
	return nil
}

// MarkChanged records a change event carrying the owning supplier,
// used to drive the supplier reliability recalculation downstream
func (d *Delivery) MarkChanged(created bool) {
	if created {
		d.AddDomainEvent(NewDeliveryCreatedEvent(d))
		return
	}
	d.AddDomainEvent(NewDeliveryUpdatedEvent(d))
}
