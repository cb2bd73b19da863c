package trade

import (
	"time"

	"github.com/tradeboard/backend/internal/application/jsontime"
	"github.com/tradeboard/backend/internal/domain/trade"
)

// OrderRequest is one order record of a single or bulk upsert, keyed on
// order number. The owning client is referenced by ID or by UNP. Money
// fields are pointers so updates only touch the fields they carry.
type OrderRequest struct {
	OrderNumber int64  `json:"orderNumber" binding:"required,gt=0"`
	ClientID    string `json:"clientId"`
	ClientUNP   string `json:"clientUnp"`
	Description string `json:"description"`
	Currency    string `json:"currency"`

	RequestDate    *jsontime.Time `json:"requestDate"`
	ConfirmDate    *jsontime.Time `json:"confirmDate"`
	OrderReadyDate *jsontime.Time `json:"orderReadyDate"`
	PaymentTerm    *jsontime.Time `json:"paymentTerm"`
	PaymentDate    *jsontime.Time `json:"paymentDate"`
	DispatchDate   *jsontime.Time `json:"dispatchDate"`
	DeliveryTerm   *jsontime.Time `json:"deliveryTerm"`
	DeliveryDate   *jsontime.Time `json:"deliveryDate"`

	TotalAmount         *float64 `json:"totalAmount"`
	Cost                *float64 `json:"cost"`
	TransportationCosts *float64 `json:"transportationCosts"`
	LaborCosts          *float64 `json:"laborCosts"`
	SocialContributions *float64 `json:"socialContributions"`
	RentalCosts         *float64 `json:"rentalCosts"`
	PremisesMaintenance *float64 `json:"premisesMaintenance"`
	Amortization        *float64 `json:"amortization"`
	EnergyCosts         *float64 `json:"energyCosts"`
	Taxes               *float64 `json:"taxes"`
	StaffCosts          *float64 `json:"staffCosts"`
	OtherCosts          *float64 `json:"otherCosts"`
	PaidAmount          *float64 `json:"paidAmount"`
}

// OrderResponse is the API representation of an order
type OrderResponse struct {
	ID          string `json:"id"`
	OrderNumber int64  `json:"orderNumber"`
	ClientID    string `json:"clientId"`
	Description string `json:"description"`
	Currency    string `json:"currency"`

	RequestDate    time.Time  `json:"requestDate"`
	ConfirmDate    *time.Time `json:"confirmDate"`
	OrderReadyDate *time.Time `json:"orderReadyDate"`
	PaymentTerm    *time.Time `json:"paymentTerm"`
	PaymentDate    *time.Time `json:"paymentDate"`
	DispatchDate   *time.Time `json:"dispatchDate"`
	DeliveryTerm   *time.Time `json:"deliveryTerm"`
	DeliveryDate   *time.Time `json:"deliveryDate"`

	TotalAmount         float64 `json:"totalAmount"`
	Cost                float64 `json:"cost"`
	TransportationCosts float64 `json:"transportationCosts"`
	LaborCosts          float64 `json:"laborCosts"`
	SocialContributions float64 `json:"socialContributions"`
	RentalCosts         float64 `json:"rentalCosts"`
	PremisesMaintenance float64 `json:"premisesMaintenance"`
	Amortization        float64 `json:"amortization"`
	EnergyCosts         float64 `json:"energyCosts"`
	Taxes               float64 `json:"taxes"`
	StaffCosts          float64 `json:"staffCosts"`
	OtherCosts          float64 `json:"otherCosts"`
	PaidAmount          float64 `json:"paidAmount"`

	ConfirmStatus    string    `json:"confirmStatus"`
	ProcessingTime   *float64  `json:"processingTime"`
	GeneralCosts     float64   `json:"generalCosts"`
	CostPrice        float64   `json:"costPrice"`
	MarginRatio      float64   `json:"marginRatio"`
	Profit           float64   `json:"profit"`
	ReturnOnMargin   float64   `json:"returnOnMargin"`
	LeftToPay        float64   `json:"leftToPay"`
	PaymentTime      float64   `json:"paymentTime"`
	PaymentTermMet   *bool     `json:"paymentTermMet"`
	DeliveryTermMet  *bool     `json:"deliveryTermMet"`
	CompletionTime   *float64  `json:"completionTime"`
	DeliveryDuration float64   `json:"deliveryDuration"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ToOrderResponse converts a domain order to its API representation
func ToOrderResponse(order *trade.Order) OrderResponse {
	return OrderResponse{
		ID:          order.ID.String(),
		OrderNumber: order.OrderNumber,
		ClientID:    order.ClientID.String(),
		Description: order.Description,
		Currency:    order.Currency,

		RequestDate:    order.RequestDate,
		ConfirmDate:    order.ConfirmDate,
		OrderReadyDate: order.OrderReadyDate,
		PaymentTerm:    order.PaymentTerm,
		PaymentDate:    order.PaymentDate,
		DispatchDate:   order.DispatchDate,
		DeliveryTerm:   order.DeliveryTerm,
		DeliveryDate:   order.DeliveryDate,

		TotalAmount:         order.TotalAmount.InexactFloat64(),
		Cost:                order.Cost.InexactFloat64(),
		TransportationCosts: order.TransportationCosts.InexactFloat64(),
		LaborCosts:          order.LaborCosts.InexactFloat64(),
		SocialContributions: order.SocialContributions.InexactFloat64(),
		RentalCosts:         order.RentalCosts.InexactFloat64(),
		PremisesMaintenance: order.PremisesMaintenance.InexactFloat64(),
		Amortization:        order.Amortization.InexactFloat64(),
		EnergyCosts:         order.EnergyCosts.InexactFloat64(),
		Taxes:               order.Taxes.InexactFloat64(),
		StaffCosts:          order.StaffCosts.InexactFloat64(),
		OtherCosts:          order.OtherCosts.InexactFloat64(),
		PaidAmount:          order.PaidAmount.InexactFloat64(),

		ConfirmStatus:    string(order.ConfirmStatus),
		ProcessingTime:   order.ProcessingTime,
		GeneralCosts:     order.GeneralCosts.InexactFloat64(),
		CostPrice:        order.CostPrice.InexactFloat64(),
		MarginRatio:      order.MarginRatio,
		Profit:           order.Profit.InexactFloat64(),
		ReturnOnMargin:   order.ReturnOnMargin,
		LeftToPay:        order.LeftToPay.InexactFloat64(),
		PaymentTime:      order.PaymentTime,
		PaymentTermMet:   order.PaymentTermMet,
		DeliveryTermMet:  order.DeliveryTermMet,
		CompletionTime:   order.CompletionTime,
		DeliveryDuration: order.DeliveryDuration,
		Status:           string(order.Status),
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
}

// ToOrderResponses converts an order slice to API representations
func ToOrderResponses(orders []trade.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses
}
