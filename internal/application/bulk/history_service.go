package bulk

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tradeboard/backend/internal/domain/bulk"
	"github.com/tradeboard/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// HistoryService records and lists bulk upsert outcomes
type HistoryService struct {
	historyRepo bulk.ImportHistoryRepository
	logger      *zap.Logger
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(historyRepo bulk.ImportHistoryRepository, logger *zap.Logger) *HistoryService {
	return &HistoryService{
		historyRepo: historyRepo,
		logger:      logger,
	}
}

// Record persists the outcome of a finished bulk upsert. Recording is
// best effort: a failure here is logged and never fails the request
// whose outcome it describes.
func (s *HistoryService) Record(ctx context.Context, entityType bulk.EntityType, created, updated int, rowErrors []bulk.RowError, duration time.Duration, userID *uuid.UUID) {
	history, err := bulk.NewImportHistory(entityType, created, updated, rowErrors, duration, userID)
	if err != nil {
		s.logger.Error("failed to build import history record",
			zap.String("entity_type", string(entityType)),
			zap.Error(err),
		)
		return
	}
	if err := s.historyRepo.Save(ctx, history); err != nil {
		s.logger.Error("failed to save import history record",
			zap.String("entity_type", string(entityType)),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("bulk upsert recorded",
		zap.String("entity_type", string(entityType)),
		zap.Int("created", created),
		zap.Int("updated", updated),
		zap.Int("errors", len(rowErrors)),
		zap.Duration("duration", duration),
	)
}

// List returns recorded imports, newest first
func (s *HistoryService) List(ctx context.Context, filter shared.Filter) ([]ImportResponse, error) {
	records, err := s.historyRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ImportResponse, 0, len(records))
	for i := range records {
		resp, err := ToImportResponse(&records[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
