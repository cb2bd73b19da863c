package persistence

import (
	"context"
	"time"

	"github.com/tradeboard/backend/internal/application/report"
	"github.com/tradeboard/backend/internal/domain/partner"
	"github.com/tradeboard/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormStatsRepository implements report.StatsRepository using GORM
type GormStatsRepository struct {
	db *gorm.DB
}

// NewGormStatsRepository creates a new GormStatsRepository
func NewGormStatsRepository(db *gorm.DB) *GormStatsRepository {
	return &GormStatsRepository{db: db}
}

// OrdersBetween returns orders with a request date in [from, to)
func (r *GormStatsRepository) OrdersBetween(ctx context.Context, from, to time.Time) ([]trade.Order, error) {
	var orders []trade.Order
	err := r.conn(ctx).
		Where("request_date >= ? AND request_date < ?", from, to).
		Order("request_date ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ClientStats returns per-client aggregate rows for clients registered
// before the given time
func (r *GormStatsRepository) ClientStats(ctx context.Context, until time.Time) ([]report.ClientStat, error) {
	var stats []report.ClientStat
	err := r.conn(ctx).
		Model(&partner.Client{}).
		Select("created_at, debt, average_payment_time").
		Where("created_at < ?", until).
		Order("created_at ASC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// Ensure interface compliance
var _ report.StatsRepository = (*GormStatsRepository)(nil)

func (r *GormStatsRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}
