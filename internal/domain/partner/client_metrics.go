package partner

import (
	"time"

	"github.com/shopspring/decimal"
)

// recentActivityWindow is how far back an order still counts toward a
// client's activity classification
const recentActivityWindow = 30 * 24 * time.Hour

// OrderSnapshot carries the order fields the client aggregate
// calculation needs, decoupled from the trade context
type OrderSnapshot struct {
	TotalAmount decimal.Decimal
	LeftToPay   decimal.Decimal
	// PaymentTime is nil when the order has no measurable payment time
	// (outstanding balance or missing ready/payment dates)
	PaymentTime *float64
	RequestDate time.Time
}

// ClientPopulation carries the cross-client figures the activity
// classification compares against
type ClientPopulation struct {
	TotalOrders  int64
	TotalClients int64
}

// RecalculateAggregates recomputes the client's derived aggregates from
// its full order history, overwriting previous values in place. Invoked
// after every order create/update for this client.
func (c *Client) RecalculateAggregates(orders []OrderSnapshot, population ClientPopulation, now time.Time) {
	c.AverageOrderValue = averageOrderValue(orders)
	c.Debt = totalDebt(orders)
	c.AveragePaymentTime = averagePaymentTime(orders)
	c.ActivityStatus = classifyActivity(orders, population, now)
}

func averageOrderValue(orders []OrderSnapshot) decimal.Decimal {
	if len(orders) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, o := range orders {
		sum = sum.Add(o.TotalAmount)
	}
	return sum.Div(decimal.NewFromInt(int64(len(orders))))
}

// totalDebt sums left_to_pay over every order, paid ones included;
// their contribution is zero
func totalDebt(orders []OrderSnapshot) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range orders {
		sum = sum.Add(o.LeftToPay)
	}
	return sum
}

func averagePaymentTime(orders []OrderSnapshot) float64 {
	var sum float64
	var count int
	for _, o := range orders {
		if o.PaymentTime == nil {
			continue
		}
		sum += *o.PaymentTime
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// classifyActivity compares the client's order count in the recent
// window against the average order count per client across the whole
// population
func classifyActivity(orders []OrderSnapshot, population ClientPopulation, now time.Time) ActivityStatus {
	cutoff := now.Add(-recentActivityWindow)
	var recent int64
	for _, o := range orders {
		if o.RequestDate.After(cutoff) {
			recent++
		}
	}

	var average float64
	if population.TotalClients > 0 {
		average = float64(population.TotalOrders) / float64(population.TotalClients)
	}
	if float64(recent) > average {
		return ActivityStatusActive
	}
	return ActivityStatusInactive
}
