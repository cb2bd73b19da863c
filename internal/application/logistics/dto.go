package logistics

import (
	"time"

	"github.com/tradeboard/backend/internal/application/jsontime"
	"github.com/tradeboard/backend/internal/domain/logistics"
)

// DeliveryRequest is one delivery record of a single or bulk upsert,
// keyed on delivery number. The owning supplier is referenced by ID or
// by UNP.
type DeliveryRequest struct {
	DeliveryNumber int64  `json:"deliveryNumber" binding:"required,gt=0"`
	SupplierID     string `json:"supplierId"`
	SupplierUNP    string `json:"supplierUnp"`

	Article         string `json:"article"`
	Name            string `json:"name"`
	Characteristics string `json:"characteristics"`
	Unit            string `json:"unit"`
	Currency        string `json:"currency"`

	Quantity          *float64 `json:"quantity"`
	DefectiveQuantity *float64 `json:"defectiveQuantity"`
	PricePerUnit      *float64 `json:"pricePerUnit"`

	PurchaseDate *jsontime.Time `json:"purchaseDate"`
	ArrivalDate  *jsontime.Time `json:"arrivalDate"`
	DeliveryTerm *jsontime.Time `json:"deliveryTerm"`
}

// DeliveryResponse is the API representation of a delivery
type DeliveryResponse struct {
	ID             string `json:"id"`
	DeliveryNumber int64  `json:"deliveryNumber"`
	SupplierID     string `json:"supplierId"`

	Article         string `json:"article"`
	Name            string `json:"name"`
	Characteristics string `json:"characteristics"`
	Unit            string `json:"unit"`
	Currency        string `json:"currency"`

	Quantity          float64 `json:"quantity"`
	DefectiveQuantity float64 `json:"defectiveQuantity"`
	PricePerUnit      float64 `json:"pricePerUnit"`

	PurchaseDate time.Time `json:"purchaseDate"`
	ArrivalDate  time.Time `json:"arrivalDate"`
	DeliveryTerm time.Time `json:"deliveryTerm"`

	QualityRatio     float64   `json:"qualityRatio"`
	TotalPrice       float64   `json:"totalPrice"`
	DeliveryDuration float64   `json:"deliveryDuration"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ToDeliveryResponse converts a domain delivery to its API representation
func ToDeliveryResponse(delivery *logistics.Delivery) DeliveryResponse {
	return DeliveryResponse{
		ID:             delivery.ID.String(),
		DeliveryNumber: delivery.DeliveryNumber,
		SupplierID:     delivery.SupplierID.String(),

		Article:         delivery.Article,
		Name:            delivery.Name,
		Characteristics: delivery.Characteristics,
		Unit:            delivery.Unit,
		Currency:        delivery.Currency,

		Quantity:          delivery.Quantity,
		DefectiveQuantity: delivery.DefectiveQuantity,
		PricePerUnit:      delivery.PricePerUnit.InexactFloat64(),

		PurchaseDate: delivery.PurchaseDate,
		ArrivalDate:  delivery.ArrivalDate,
		DeliveryTerm: delivery.DeliveryTerm,

		QualityRatio:     delivery.QualityRatio,
		TotalPrice:       delivery.TotalPrice.InexactFloat64(),
		DeliveryDuration: delivery.DeliveryDuration,
		Status:           delivery.Status,
		CreatedAt:        delivery.CreatedAt,
		UpdatedAt:        delivery.UpdatedAt,
	}
}

// ToDeliveryResponses converts a delivery slice to API representations
func ToDeliveryResponses(deliveries []logistics.Delivery) []DeliveryResponse {
	responses := make([]DeliveryResponse, 0, len(deliveries))
	for i := range deliveries {
		responses = append(responses, ToDeliveryResponse(&deliveries[i]))
	}
	return responses
}
