package partner

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	bulkapp "github.com/tradeboard/backend/internal/application/bulk"
	"github.com/tradeboard/backend/internal/domain/bulk"
	"github.com/tradeboard/backend/internal/domain/logistics"
	"github.com/tradeboard/backend/internal/domain/partner"
	"github.com/tradeboard/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SupplierService handles supplier CRUD, bulk upserts and the
// reliability recalculation triggered by delivery writes
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	deliveryRepo logistics.DeliveryRepository
	history      *bulkapp.HistoryService
	tx           shared.TransactionManager
	logger       *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(
	supplierRepo partner.SupplierRepository,
	deliveryRepo logistics.DeliveryRepository,
	history *bulkapp.HistoryService,
	tx shared.TransactionManager,
	logger *zap.Logger,
) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		deliveryRepo: deliveryRepo,
		history:      history,
		tx:           tx,
		logger:       logger,
	}
}

// Upsert creates a supplier or updates the existing one sharing the
// same UNP, then recomputes its reliability category. Returns true when
// a new row was created.
func (s *SupplierService) Upsert(ctx context.Context, req SupplierRequest) (*SupplierResponse, bool, error) {
	if req.UNP == "" {
		return nil, false, shared.NewDomainError("MISSING_UNP", "Supplier UNP is required")
	}

	supplier, err := s.supplierRepo.FindByUNP(ctx, req.UNP)
	created := false
	switch {
	case errors.Is(err, shared.ErrNotFound):
		supplierType := partner.SupplierType(req.Type)
		if req.Type == "" {
			supplierType = partner.SupplierTypeLegal
		}
		supplier, err = partner.NewSupplier(req.Name, req.UNP, supplierType)
		if err != nil {
			return nil, false, err
		}
		created = true
	case err != nil:
		return nil, false, err
	}

	applySupplierRequest(supplier, req)

	// Static attributes feed the category, so every upsert recomputes
	if err := s.recalculate(ctx, supplier); err != nil {
		return nil, false, err
	}

	response := ToSupplierResponse(supplier)
	return &response, created, nil
}

// BulkUpsert processes each record independently and collects per-row
// failures instead of aborting. The outcome is recorded in the import
// history.
func (s *SupplierService) BulkUpsert(ctx context.Context, reqs []SupplierRequest, userID *uuid.UUID) (bulk.UpsertResult[SupplierResponse], error) {
	started := time.Now()
	result := bulk.NewUpsertResult[SupplierResponse]()

	for i, req := range reqs {
		resp, created, err := s.Upsert(ctx, req)
		if err != nil {
			result.Errors = append(result.Errors, toRowError(i, req.UNP, err))
			continue
		}
		if created {
			result.Created = append(result.Created, *resp)
		} else {
			result.Updated = append(result.Updated, *resp)
		}
	}

	s.history.Record(ctx, bulk.EntitySuppliers, len(result.Created), len(result.Updated), result.Errors, time.Since(started), userID)
	return result, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers matching the filter
func (s *SupplierService) List(ctx context.Context, filter shared.Filter) ([]SupplierResponse, error) {
	suppliers, err := s.supplierRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToSupplierResponses(suppliers), nil
}

// Delete removes a supplier
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	deliveries, err := s.deliveryRepo.FindBySupplierID(ctx, id)
	if err != nil {
		return err
	}
	if len(deliveries) > 0 {
		return shared.NewDomainError("SUPPLIER_HAS_DELIVERIES", "Cannot delete a supplier with deliveries")
	}
	return s.supplierRepo.Delete(ctx, id)
}

// RecalculateReliability rebuilds the supplier's derived aggregates
// from its full delivery history, atomically. Backs both the
// update-stats endpoint and the delivery write cascade.
func (s *SupplierService) RecalculateReliability(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	var response SupplierResponse
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
		if err != nil {
			return err
		}
		if err := s.recalculate(ctx, supplier); err != nil {
			return err
		}
		response = ToSupplierResponse(supplier)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// recalculate recomputes the supplier's aggregates in place and saves
func (s *SupplierService) recalculate(ctx context.Context, supplier *partner.Supplier) error {
	deliveries, err := s.deliveryRepo.FindBySupplierID(ctx, supplier.ID)
	if err != nil {
		return err
	}

	crossRate, err := s.supplierRepo.AverageDefectRateTotal(ctx)
	if err != nil {
		return err
	}

	supplier.RecalculateReliability(deliverySnapshots(deliveries), crossRate, time.Now())

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return err
	}

	s.logger.Debug("supplier reliability recalculated",
		zap.String("supplier_id", supplier.ID.String()),
		zap.Int("deliveries", len(deliveries)),
		zap.String("category", string(supplier.Category)),
	)
	return nil
}

func applySupplierRequest(supplier *partner.Supplier, req SupplierRequest) {
	if req.Name != "" {
		supplier.Name = req.Name
	}
	if req.Type != "" {
		supplier.Type = partner.SupplierType(req.Type)
	}
	if req.Country != "" {
		supplier.Country = req.Country
	}
	if req.RegistryActive != nil {
		supplier.RegistryActive = *req.RegistryActive
	}
	if req.InTradeRegistry != nil {
		supplier.InTradeRegistry = *req.InTradeRegistry
	}
	if req.ReplacementDays != nil {
		supplier.ReplacementDays = *req.ReplacementDays
	}
	if req.AssortmentCount != nil {
		supplier.AssortmentCount = *req.AssortmentCount
	}
	if req.TermsFlexible != nil {
		supplier.TermsFlexible = *req.TermsFlexible
	}
}

// deliverySnapshots projects deliveries onto the fields the supplier
// reliability calculation needs
func deliverySnapshots(deliveries []logistics.Delivery) []partner.DeliverySnapshot {
	snapshots := make([]partner.DeliverySnapshot, 0, len(deliveries))
	for i := range deliveries {
		d := &deliveries[i]
		snapshots = append(snapshots, partner.DeliverySnapshot{
			Quantity:          d.Quantity,
			DefectiveQuantity: d.DefectiveQuantity,
			OnTime:            d.IsOnTime(),
			Duration:          d.DeliveryDuration,
			PurchaseDate:      d.PurchaseDate,
		})
	}
	return snapshots
}
