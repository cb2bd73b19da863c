package partner

import (
	"github.com/tradeboard/backend/internal/domain/shared"
)

// SupplierType represents the legal form of a supplier
type SupplierType string

const (
	SupplierTypeLegal   SupplierType = "legal"
	SupplierTypeNatural SupplierType = "natural"
)

// SupplierCategory is the three-tier reliability classification
type SupplierCategory string

const (
	SupplierCategoryReliable       SupplierCategory = "Reliable"
	SupplierCategorySatisfactory   SupplierCategory = "Satisfactory"
	SupplierCategoryUnsatisfactory SupplierCategory = "Unsatisfactory"
)

// Supplier represents a goods supplier in the partner context
// It is the aggregate root for supplier-related operations
type Supplier struct {
	shared.BaseAggregateRoot
	Name string `gorm:"type:varchar(200);not null"`
	// UNP is the supplier's tax identifier and unique business key
	UNP             string       `gorm:"type:varchar(20);not null;uniqueIndex"`
	Type            SupplierType `gorm:"type:varchar(10);not null;default:'legal'"`
	Country         string       `gorm:"type:varchar(100)"`
	RegistryActive  bool         `gorm:"not null;default:true"`
	InTradeRegistry bool         `gorm:"not null;default:false"`
	// ReplacementDays is how long the supplier needs to replace a
	// defective batch
	ReplacementDays int `gorm:"not null;default:0"`
	AssortmentCount int `gorm:"not null;default:0"`
	// TermsFlexible reports whether delivery terms may be renegotiated
	TermsFlexible bool `gorm:"not null;default:false"`

	// Derived aggregates, recomputed from the supplier's deliveries
	DefectRateYear   float64          `gorm:"not null;default:0"`
	DefectRateTotal  float64          `gorm:"not null;default:0"`
	OnTimePercentage float64          `gorm:"not null;default:0"`
	AvgDeliveryTime  float64          `gorm:"not null;default:0"` // days
	ReceivedQuantity float64          `gorm:"not null;default:0"` // units in the trailing year
	Category         SupplierCategory `gorm:"type:varchar(20);not null;default:'Unsatisfactory'"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier with required fields
func NewSupplier(name, unp string, supplierType SupplierType) (*Supplier, error) {
	if name == "" {
		return nil, shared.NewDomainError("MISSING_NAME", "Supplier name is required")
	}
	if unp == "" {
		return nil, shared.NewDomainError("MISSING_UNP", "Supplier UNP is required")
	}
	if supplierType != SupplierTypeLegal && supplierType != SupplierTypeNatural {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_TYPE", "Supplier type must be legal or natural")
	}

	supplier := &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		UNP:               unp,
		Type:              supplierType,
		RegistryActive:    true,
		Category:          SupplierCategoryUnsatisfactory,
	}

	return supplier, nil
}
