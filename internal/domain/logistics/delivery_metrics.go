package logistics

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// RecalculateMetrics recomputes every derived field from the raw fields,
// overwriting previous values in place. It is invoked on every create and
// update before the delivery is persisted.
func (d *Delivery) RecalculateMetrics() {
	if d.Quantity == 0 {
		d.QualityRatio = 1
	} else {
		d.QualityRatio = 1 - d.DefectiveQuantity/d.Quantity
	}

	d.TotalPrice = d.PricePerUnit.Mul(decimal.NewFromFloat(d.Quantity))
	d.DeliveryDuration = ceilDays(d.ArrivalDate.Sub(d.PurchaseDate).Hours())

	if d.ArrivalDate.After(d.DeliveryTerm) {
		overdue := int(ceilDays(d.ArrivalDate.Sub(d.DeliveryTerm).Hours()))
		d.Status = fmt.Sprintf("Overdue by %d days", overdue)
	} else {
		d.Status = StatusOnTime
	}
}

// IsOnTime reports whether the delivery arrived within term
func (d *Delivery) IsOnTime() bool {
	return d.Status == StatusOnTime
}

func ceilDays(hours float64) float64 {
	return math.Ceil(hours / 24)
}
