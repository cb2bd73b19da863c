package report

import (
	"context"
	"time"

	"github.com/tradeboard/backend/internal/domain/trade"
)

// ClientStat is the slice of a client the dashboard aggregates over
type ClientStat struct {
	CreatedAt          time.Time
	Debt               float64
	AveragePaymentTime float64
}

// StatsRepository exposes the read queries the dashboard aggregates over.
type StatsRepository interface {
	// OrdersBetween returns orders with a request date in [from, to).
	OrdersBetween(ctx context.Context, from, to time.Time) ([]trade.Order, error)

	// ClientStats returns one row per client registered strictly before
	// the given time, in registration order.
	ClientStats(ctx context.Context, until time.Time) ([]ClientStat, error)
}
