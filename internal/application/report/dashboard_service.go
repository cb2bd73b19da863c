package report

import (
	"context"
	"time"

	"github.com/tradeboard/backend/internal/domain/shared"
	"github.com/tradeboard/backend/internal/domain/trade"
	"github.com/tradeboard/backend/internal/infrastructure/cache"
	"go.uber.org/zap"
)

const monthLayout = "2006-01"

// DashboardService computes the dashboard KPI set over a date range.
// Results are cached per range; any order or delivery write invalidates
// the cache through the event bus.
type DashboardService struct {
	stats  StatsRepository
	cache  *cache.DashboardCache
	logger *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(stats StatsRepository, snapshotCache *cache.DashboardCache, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		stats:  stats,
		cache:  snapshotCache,
		logger: logger,
	}
}

// GetDashboard computes every KPI over [from, to). Dates are bucketed
// by calendar month.
func (s *DashboardService) GetDashboard(ctx context.Context, from, to time.Time) (*DashboardResponse, error) {
	if !from.Before(to) {
		return nil, shared.NewDomainError("INVALID_RANGE", "startDate must precede endDate")
	}

	key := cache.Key(from, to)
	if s.cache != nil {
		var cached DashboardResponse
		if s.cache.Get(ctx, key, &cached) {
			return &cached, nil
		}
	}

	orders, err := s.stats.OrdersBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	clients, err := s.stats.ClientStats(ctx, to)
	if err != nil {
		return nil, err
	}

	months := monthsBetween(from, to)
	response := s.compute(orders, clients, months)

	if s.cache != nil {
		s.cache.Set(ctx, key, response)
	}
	return response, nil
}

// orderBucket accumulates the per-month order figures every order KPI
// derives from
type orderBucket struct {
	count      int
	confirmed  int
	total      float64
	completion float64
	general    float64
	profit     float64
	costPrice  float64
}

// clientBucket accumulates the per-month client figures
type clientBucket struct {
	count       int
	debt        float64
	paymentTime float64
}

func (s *DashboardService) compute(orders []trade.Order, clients []ClientStat, months []string) *DashboardResponse {
	orderBuckets := make(map[string]*orderBucket, len(months))
	clientBuckets := make(map[string]*clientBucket, len(months))
	for _, m := range months {
		orderBuckets[m] = &orderBucket{}
		clientBuckets[m] = &clientBucket{}
	}

	var rangeOrders orderBucket
	for i := range orders {
		o := &orders[i]
		accumulateOrder(&rangeOrders, o)
		if b, ok := orderBuckets[o.RequestDate.Format(monthLayout)]; ok {
			accumulateOrder(b, o)
		}
	}

	// clientsBefore counts clients registered before the start of each
	// month, so totalClients histories are cumulative
	clientsBefore := make(map[string]int, len(months))
	var allDebt, allPaymentTime float64
	for _, c := range clients {
		allDebt += c.Debt
		allPaymentTime += c.AveragePaymentTime

		month := c.CreatedAt.Format(monthLayout)
		if b, ok := clientBuckets[month]; ok {
			b.count++
			b.debt += c.Debt
			b.paymentTime += c.AveragePaymentTime
		}
		for _, m := range months {
			if month < m {
				clientsBefore[m]++
			}
		}
	}

	newInRange := 0
	for _, m := range months {
		newInRange += clientBuckets[m].count
	}

	return &DashboardResponse{
		CompletedOrders: metric(months, rangeOrders.completedPct(), func(m string) float64 {
			return orderBuckets[m].completedPct()
		}),
		AverageOrderCost: metric(months, rangeOrders.mean(rangeOrders.total), func(m string) float64 {
			b := orderBuckets[m]
			return b.mean(b.total)
		}),
		AverageOrderTime: metric(months, rangeOrders.mean(rangeOrders.completion), func(m string) float64 {
			b := orderBuckets[m]
			return b.mean(b.completion)
		}),
		TotalClients: metric(months, float64(len(clients)), func(m string) float64 {
			return float64(clientsBefore[m] + clientBuckets[m].count)
		}),
		NewClients: metric(months, float64(newInRange), func(m string) float64 {
			return float64(clientBuckets[m].count)
		}),
		TotalDebt: metric(months, allDebt, func(m string) float64 {
			return clientBuckets[m].debt
		}),
		AveragePaymentTime: metric(months, safeDiv(allPaymentTime, float64(len(clients))), func(m string) float64 {
			b := clientBuckets[m]
			return safeDiv(b.paymentTime, float64(b.count))
		}),
		SalesVolume: metric(months, rangeOrders.total, func(m string) float64 {
			return orderBuckets[m].total
		}),
		ImplementationCosts: metric(months, rangeOrders.general, func(m string) float64 {
			return orderBuckets[m].general
		}),
		ProductProfitability: metric(months, pct(rangeOrders.profit, rangeOrders.costPrice), func(m string) float64 {
			b := orderBuckets[m]
			return pct(b.profit, b.costPrice)
		}),
		SalesProfitability: metric(months, pct(rangeOrders.profit, rangeOrders.total), func(m string) float64 {
			b := orderBuckets[m]
			return pct(b.profit, b.total)
		}),
	}
}

func accumulateOrder(b *orderBucket, o *trade.Order) {
	b.count++
	if o.ConfirmStatus == trade.ConfirmStatusConfirmed {
		b.confirmed++
	}
	b.total += o.TotalAmount.InexactFloat64()
	if o.CompletionTime != nil {
		b.completion += *o.CompletionTime
	}
	b.general += o.GeneralCosts.InexactFloat64()
	b.profit += o.Profit.InexactFloat64()
	b.costPrice += o.CostPrice.InexactFloat64()
}

func (b *orderBucket) completedPct() float64 {
	return pct(float64(b.confirmed), float64(b.count))
}

func (b *orderBucket) mean(sum float64) float64 {
	return safeDiv(sum, float64(b.count))
}

// metric assembles one KPI: the range value, the monthly history, and
// the change of the last month against the previous one
func metric(months []string, value float64, monthValue func(string) float64) Metric {
	history := make([]MonthValue, 0, len(months))
	for _, m := range months {
		history = append(history, MonthValue{Month: m, Value: monthValue(m)})
	}

	var change float64
	if n := len(history); n >= 2 {
		change = pctChange(history[n-1].Value, history[n-2].Value)
	}

	return Metric{Value: value, Change: change, History: history}
}

// monthsBetween lists the calendar months covering [from, to)
func monthsBetween(from, to time.Time) []string {
	var months []string
	cursor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location())
	for cursor.Before(to) {
		months = append(months, cursor.Format(monthLayout))
		cursor = cursor.AddDate(0, 1, 0)
	}
	return months
}

func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

func pct(numerator, denominator float64) float64 {
	return safeDiv(numerator, denominator) * 100
}

func pctChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
