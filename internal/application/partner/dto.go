package partner

import (
	"time"

	"github.com/tradeboard/backend/internal/domain/partner"
)

// ClientRequest is one client record of a single or bulk upsert,
// keyed on UNP
type ClientRequest struct {
	Name            string `json:"name" binding:"required"`
	UNP             string `json:"unp" binding:"required"`
	Type            string `json:"type" binding:"omitempty,oneof=legal natural"`
	Country         string `json:"country"`
	RegistryActive  *bool  `json:"registryActive"`
	InTradeRegistry *bool  `json:"inTradeRegistry"`
}

// ClientResponse is the API representation of a client
type ClientResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	UNP                string    `json:"unp"`
	Type               string    `json:"type"`
	Country            string    `json:"country"`
	RegistryActive     bool      `json:"registryActive"`
	InTradeRegistry    bool      `json:"inTradeRegistry"`
	AverageOrderValue  float64   `json:"averageOrderValue"`
	Debt               float64   `json:"debt"`
	AveragePaymentTime float64   `json:"averagePaymentTime"`
	ActivityStatus     string    `json:"activityStatus"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ToClientResponse converts a domain client to its API representation
func ToClientResponse(client *partner.Client) ClientResponse {
	return ClientResponse{
		ID:                 client.ID.String(),
		Name:               client.Name,
		UNP:                client.UNP,
		Type:               string(client.Type),
		Country:            client.Country,
		RegistryActive:     client.RegistryActive,
		InTradeRegistry:    client.InTradeRegistry,
		AverageOrderValue:  client.AverageOrderValue.InexactFloat64(),
		Debt:               client.Debt.InexactFloat64(),
		AveragePaymentTime: client.AveragePaymentTime,
		ActivityStatus:     string(client.ActivityStatus),
		CreatedAt:          client.CreatedAt,
		UpdatedAt:          client.UpdatedAt,
	}
}

// ToClientResponses converts a client slice to API representations
func ToClientResponses(clients []partner.Client) []ClientResponse {
	responses := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		responses = append(responses, ToClientResponse(&clients[i]))
	}
	return responses
}

// SupplierRequest is one supplier record of a single or bulk upsert,
// keyed on UNP
type SupplierRequest struct {
	Name            string `json:"name" binding:"required"`
	UNP             string `json:"unp" binding:"required"`
	Type            string `json:"type" binding:"omitempty,oneof=legal natural"`
	Country         string `json:"country"`
	RegistryActive  *bool  `json:"registryActive"`
	InTradeRegistry *bool  `json:"inTradeRegistry"`
	ReplacementDays *int   `json:"replacementDays"`
	AssortmentCount *int   `json:"assortmentCount"`
	TermsFlexible   *bool  `json:"termsFlexible"`
}

// SupplierResponse is the API representation of a supplier
type SupplierResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	UNP              string    `json:"unp"`
	Type             string    `json:"type"`
	Country          string    `json:"country"`
	RegistryActive   bool      `json:"registryActive"`
	InTradeRegistry  bool      `json:"inTradeRegistry"`
	ReplacementDays  int       `json:"replacementDays"`
	AssortmentCount  int       `json:"assortmentCount"`
	TermsFlexible    bool      `json:"termsFlexible"`
	DefectRateYear   float64   `json:"defectRateYear"`
	DefectRateTotal  float64   `json:"defectRateTotal"`
	OnTimePercentage float64   `json:"onTimePercentage"`
	AvgDeliveryTime  float64   `json:"avgDeliveryTime"`
	ReceivedQuantity float64   `json:"receivedQuantity"`
	Category         string    `json:"category"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ToSupplierResponse converts a domain supplier to its API representation
func ToSupplierResponse(supplier *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:               supplier.ID.String(),
		Name:             supplier.Name,
		UNP:              supplier.UNP,
		Type:             string(supplier.Type),
		Country:          supplier.Country,
		RegistryActive:   supplier.RegistryActive,
		InTradeRegistry:  supplier.InTradeRegistry,
		ReplacementDays:  supplier.ReplacementDays,
		AssortmentCount:  supplier.AssortmentCount,
		TermsFlexible:    supplier.TermsFlexible,
		DefectRateYear:   supplier.DefectRateYear,
		DefectRateTotal:  supplier.DefectRateTotal,
		OnTimePercentage: supplier.OnTimePercentage,
		AvgDeliveryTime:  supplier.AvgDeliveryTime,
		ReceivedQuantity: supplier.ReceivedQuantity,
		Category:         string(supplier.Category),
		CreatedAt:        supplier.CreatedAt,
		UpdatedAt:        supplier.UpdatedAt,
	}
}

// ToSupplierResponses converts a supplier slice to API representations
func ToSupplierResponses(suppliers []partner.Supplier) []SupplierResponse {
	responses := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		responses = append(responses, ToSupplierResponse(&suppliers[i]))
	}
	return responses
}
