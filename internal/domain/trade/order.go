package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradeboard/backend/internal/domain/shared"
)

// OrderStatus represents the overall lifecycle status of an order
type OrderStatus string

const (
	OrderStatusNew             OrderStatus = "New"
	OrderStatusCancelled       OrderStatus = "Cancelled"
	OrderStatusAccepted        OrderStatus = "Accepted"
	OrderStatusAwaitingPayment OrderStatus = "Awaiting Payment"
	OrderStatusInDelivery      OrderStatus = "In Delivery"
	OrderStatusCompleted       OrderStatus = "Completed"
)

// ConfirmStatus represents the confirmation outcome of an order
type ConfirmStatus string

const (
	ConfirmStatusPending   ConfirmStatus = "Pending"
	ConfirmStatusConfirmed ConfirmStatus = "Confirmed"
	ConfirmStatusRejected  ConfirmStatus = "Rejected"
)

// DefaultCurrency is used when an order does not specify one
const DefaultCurrency = "BYN"

// Order represents a client order in the trade context
// It is the aggregate root for order-related operations
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber int64     `gorm:"not null;uniqueIndex"`
	ClientID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Description string    `gorm:"type:text"`
	Currency    string    `gorm:"type:varchar(10);not null;default:'BYN'"`

	// Raw dates
	RequestDate    time.Time  `gorm:"not null;index"`
	ConfirmDate    *time.Time `gorm:""`
	OrderReadyDate *time.Time `gorm:""`
	PaymentTerm    *time.Time `gorm:""` // contractual payment deadline
	PaymentDate    *time.Time `gorm:""`
	DispatchDate   *time.Time `gorm:""`
	DeliveryTerm   *time.Time `gorm:""` // contractual delivery deadline
	DeliveryDate   *time.Time `gorm:""`

	// Raw money fields
	TotalAmount         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Cost                decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // base cost of goods
	TransportationCosts decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LaborCosts          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SocialContributions decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RentalCosts         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PremisesMaintenance decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Amortization        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	EnergyCosts         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Taxes               decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	StaffCosts          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	OtherCosts          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaidAmount          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	// Derived fields, recomputed on every write by RecalculateMetrics
	ConfirmStatus    ConfirmStatus   `gorm:"type:varchar(20);not null;default:'Pending'"`
	ProcessingTime   *float64        `gorm:""` // days from request to confirmation
	GeneralCosts     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CostPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MarginRatio      float64         `gorm:"not null;default:0"`
	Profit           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReturnOnMargin   float64         `gorm:"not null;default:0"`
	LeftToPay        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentTime      float64         `gorm:"not null;default:0"` // hours between ready and payment
	PaymentTermMet   *bool           `gorm:""`
	DeliveryTermMet  *bool           `gorm:""`
	CompletionTime   *float64        `gorm:""` // days from request to delivery
	DeliveryDuration float64         `gorm:"not null;default:0"` // days in transit
	Status           OrderStatus     `gorm:"type:varchar(20);not null;default:'New';index"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order with required fields
func NewOrder(orderNumber int64, clientID uuid.UUID, requestDate time.Time, totalAmount decimal.Decimal) (*Order, error) {
	if orderNumber <= 0 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number must be positive")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Order must reference a client")
	}
	if requestDate.IsZero() {
		return nil, shared.NewDomainError("MISSING_REQUEST_DATE", "Request date is required")
	}
	if totalAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL_AMOUNT", "Total amount cannot be negative")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		ClientID:          clientID,
		RequestDate:       requestDate,
		TotalAmount:       totalAmount,
		Currency:          DefaultCurrency,
		ConfirmStatus:     ConfirmStatusPending,
		Status:            OrderStatusNew,
	}

	return order, nil
}

// Validate checks the order's cross-field invariants
func (o *Order) Validate() error {
	if o.RequestDate.IsZero() {
		return shared.NewDomainError("MISSING_REQUEST_DATE", "Request date is required")
	}
	if o.TotalAmount.IsNegative() {
		return shared.NewDomainError("INVALID_TOTAL_AMOUNT", "Total amount cannot be negative")
	}
	if o.PaidAmount.IsNegative() {
		return shared.NewDomainError("INVALID_PAID_AMOUNT", "Paid amount cannot be negative")
	}
	if o.PaidAmount.GreaterThan(o.TotalAmount) {
		return shared.NewDomainError("PAID_EXCEEDS_TOTAL", "Paid amount cannot exceed total amount")
	}
	return nil
}

// MarkChanged records a change event carrying the owning client,
// used to drive the client aggregate recalculation downstream
func (o *Order) MarkChanged(created bool) {
	if created {
		o.AddDomainEvent(NewOrderCreatedEvent(o))
		return
	}
	o.AddDomainEvent(NewOrderUpdatedEvent(o))
}
