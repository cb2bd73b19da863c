package partner

import (
	"github.com/shopspring/decimal"
	"github.com/tradeboard/backend/internal/domain/shared"
)

// ClientType represents the legal form of a client
type ClientType string

const (
	ClientTypeLegal   ClientType = "legal"
	ClientTypeNatural ClientType = "natural"
)

// ActivityStatus classifies how active a client has been recently
type ActivityStatus string

const (
	ActivityStatusActive   ActivityStatus = "Active"
	ActivityStatusInactive ActivityStatus = "Inactive"
)

// Client represents a buyer in the partner context
// It is the aggregate root for client-related operations
type Client struct {
	shared.BaseAggregateRoot
	Name string `gorm:"type:varchar(200);not null"`
	// UNP is the client's tax identifier and unique business key
	UNP             string     `gorm:"type:varchar(20);not null;uniqueIndex"`
	Type            ClientType `gorm:"type:varchar(10);not null;default:'legal'"`
	Country         string     `gorm:"type:varchar(100)"`
	RegistryActive  bool       `gorm:"not null;default:true"`
	InTradeRegistry bool       `gorm:"not null;default:false"`

	// Derived aggregates, recomputed from the client's orders
	AverageOrderValue  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Debt               decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AveragePaymentTime float64         `gorm:"not null;default:0"` // hours
	ActivityStatus     ActivityStatus  `gorm:"type:varchar(10);not null;default:'Inactive'"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client with required fields
func NewClient(name, unp string, clientType ClientType) (*Client, error) {
	if name == "" {
		return nil, shared.NewDomainError("MISSING_NAME", "Client name is required")
	}
	if unp == "" {
		return nil, shared.NewDomainError("MISSING_UNP", "Client UNP is required")
	}
	if clientType != ClientTypeLegal && clientType != ClientTypeNatural {
		return nil, shared.NewDomainError("INVALID_CLIENT_TYPE", "Client type must be legal or natural")
	}

	client := &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		UNP:               unp,
		Type:              clientType,
		RegistryActive:    true,
		ActivityStatus:    ActivityStatusInactive,
	}

	return client, nil
}
