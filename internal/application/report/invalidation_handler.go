package report

import (
	"context"

	"github.com/tradeboard/backend/internal/domain/shared"
	"github.com/tradeboard/backend/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// CacheInvalidationHandler drops cached dashboard snapshots whenever an
// order or delivery changes, so the next dashboard read recomputes
type CacheInvalidationHandler struct {
	cache  *cache.DashboardCache
	logger *zap.Logger
}

// NewCacheInvalidationHandler creates a new CacheInvalidationHandler
func NewCacheInvalidationHandler(snapshotCache *cache.DashboardCache, logger *zap.Logger) *CacheInvalidationHandler {
	return &CacheInvalidationHandler{cache: snapshotCache, logger: logger}
}

// Handle invalidates the snapshot cache on any subscribed event
func (h *CacheInvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.cache == nil {
		return nil
	}
	h.logger.Debug("invalidating dashboard cache", zap.String("event_type", event.EventType()))
	h.cache.Invalidate(ctx)
	return nil
}

// Ensure interface compliance
var _ shared.EventHandler = (*CacheInvalidationHandler)(nil)
