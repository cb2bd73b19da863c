package bulk

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tradeboard/backend/internal/domain/shared"
)

// EntityType represents the kind of entity a bulk upsert targets
type EntityType string

const (
	EntityClients    EntityType = "clients"
	EntityOrders     EntityType = "orders"
	EntityDeliveries EntityType = "deliveries"
	EntitySuppliers  EntityType = "suppliers"
)

// IsValid checks if the entity type is valid
func (e EntityType) IsValid() bool {
	switch e {
	case EntityClients, EntityOrders, EntityDeliveries, EntitySuppliers:
		return true
	}
	return false
}

// RowError records why one input record of a bulk upsert was rejected
type RowError struct {
	Index   int    `json:"index"`
	Key     string `json:"key,omitempty"` // business key, when parseable
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// ImportHistory records the outcome of one bulk upsert request
type ImportHistory struct {
	shared.BaseAggregateRoot
	EntityType   EntityType `gorm:"type:varchar(20);not null;index"`
	TotalRows    int        `gorm:"not null;default:0"`
	CreatedRows  int        `gorm:"not null;default:0"`
	UpdatedRows  int        `gorm:"not null;default:0"`
	ErrorRows    int        `gorm:"not null;default:0"`
	ErrorDetails string     `gorm:"type:jsonb;not null;default:'[]'"`
	Duration     int64      `gorm:"not null;default:0"` // milliseconds
	UserID       *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ImportHistory) TableName() string {
	return "import_history"
}

// NewImportHistory records a finished bulk upsert
func NewImportHistory(entityType EntityType, created, updated int, rowErrors []RowError, duration time.Duration, userID *uuid.UUID) (*ImportHistory, error) {
	if !entityType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTITY_TYPE", "Unknown bulk entity type")
	}
	if rowErrors == nil {
		rowErrors = []RowError{}
	}
	details, err := json.Marshal(rowErrors)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ERROR_DETAILS", "Failed to serialize row errors")
	}

	return &ImportHistory{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EntityType:        entityType,
		TotalRows:         created + updated + len(rowErrors),
		CreatedRows:       created,
		UpdatedRows:       updated,
		ErrorRows:         len(rowErrors),
		ErrorDetails:      string(details),
		Duration:          duration.Milliseconds(),
		UserID:            userID,
	}, nil
}

// RowErrors deserializes the recorded per-row errors
func (h *ImportHistory) RowErrors() ([]RowError, error) {
	var errs []RowError
	if err := json.Unmarshal([]byte(h.ErrorDetails), &errs); err != nil {
		return nil, err
	}
	return errs, nil
}
