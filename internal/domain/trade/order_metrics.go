package trade

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// confirmRejectionWindow is how long a confirmation may lag the request
// before the order counts as rejected
const confirmRejectionWindow = 7 * 24 * time.Hour

// RecalculateMetrics recomputes every derived field from the raw fields,
// overwriting previous values in place. It is invoked on every create and
// update before the order is persisted; derived fields are never computed
// on read.
func (o *Order) RecalculateMetrics() {
	o.recalculateConfirmation()
	o.recalculateFinancials()
	o.recalculatePayment()
	o.recalculateDelivery()
	o.recalculateStatus()
}

func (o *Order) recalculateConfirmation() {
	if o.ConfirmDate == nil {
		o.ConfirmStatus = ConfirmStatusPending
		o.ProcessingTime = nil
		return
	}
	if o.ConfirmDate.Sub(o.RequestDate) > confirmRejectionWindow {
		o.ConfirmStatus = ConfirmStatusRejected
	} else {
		o.ConfirmStatus = ConfirmStatusConfirmed
	}
	processing := daysBetween(o.RequestDate, *o.ConfirmDate)
	o.ProcessingTime = &processing
}

func (o *Order) recalculateFinancials() {
	o.GeneralCosts = decimal.Sum(
		o.TransportationCosts,
		o.LaborCosts,
		o.SocialContributions,
		o.RentalCosts,
		o.PremisesMaintenance,
		o.Amortization,
		o.EnergyCosts,
		o.Taxes,
		o.StaffCosts,
		o.OtherCosts,
	)
	o.CostPrice = o.Cost.Add(o.GeneralCosts)
	o.Profit = o.TotalAmount.Sub(o.CostPrice)

	if o.TotalAmount.IsZero() {
		o.MarginRatio = 0
	} else {
		o.MarginRatio = o.TotalAmount.Sub(o.CostPrice).Div(o.TotalAmount).InexactFloat64()
	}
	if o.CostPrice.IsZero() {
		o.ReturnOnMargin = 0
	} else {
		o.ReturnOnMargin = o.Profit.Div(o.CostPrice).InexactFloat64()
	}
}

func (o *Order) recalculatePayment() {
	o.LeftToPay = o.TotalAmount.Sub(o.PaidAmount)

	if !o.LeftToPay.IsZero() {
		met := false
		o.PaymentTermMet = &met
		o.PaymentTime = 0
		return
	}

	if o.OrderReadyDate != nil && o.PaymentDate != nil {
		o.PaymentTime = hoursBetween(*o.OrderReadyDate, *o.PaymentDate)
	} else {
		o.PaymentTime = 0
	}
	if o.PaymentDate != nil && o.PaymentTerm != nil {
		met := !o.PaymentDate.After(*o.PaymentTerm)
		o.PaymentTermMet = &met
	} else {
		o.PaymentTermMet = nil
	}
}

func (o *Order) recalculateDelivery() {
	if o.DeliveryDate != nil && o.DeliveryTerm != nil {
		met := !o.DeliveryDate.After(*o.DeliveryTerm)
		o.DeliveryTermMet = &met
	} else {
		o.DeliveryTermMet = nil
	}

	if o.DeliveryDate != nil {
		completion := daysBetween(o.RequestDate, *o.DeliveryDate)
		o.CompletionTime = &completion
	} else {
		o.CompletionTime = nil
	}

	if o.DispatchDate != nil && o.DeliveryDate != nil {
		o.DeliveryDuration = daysBetween(*o.DispatchDate, *o.DeliveryDate)
	} else {
		o.DeliveryDuration = 0
	}
}

// recalculateStatus walks the status checks in order; the first match
// wins. Cancelled and Completed are terminal.
func (o *Order) recalculateStatus() {
	switch {
	case o.ConfirmDate == nil:
		o.Status = OrderStatusNew
	case o.ConfirmStatus == ConfirmStatusRejected:
		o.Status = OrderStatusCancelled
	case o.OrderReadyDate == nil:
		o.Status = OrderStatusAccepted
	case !o.LeftToPay.IsZero():
		o.Status = OrderStatusAwaitingPayment
	case o.DispatchDate != nil && o.DeliveryDate == nil:
		o.Status = OrderStatusInDelivery
	default:
		o.Status = OrderStatusCompleted
	}
}

func daysBetween(from, to time.Time) float64 {
	return math.Abs(to.Sub(from).Hours() / 24)
}

func hoursBetween(from, to time.Time) float64 {
	return math.Abs(to.Sub(from).Hours())
}
