package logistics

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	bulkapp "github.com/tradeboard/backend/internal/application/bulk"
	"github.com/tradeboard/backend/internal/application/jsontime"
	"github.com/tradeboard/backend/internal/domain/bulk"
	"github.com/tradeboard/backend/internal/domain/logistics"
	"github.com/tradeboard/backend/internal/domain/partner"
	"github.com/tradeboard/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DeliveryService handles delivery CRUD and bulk upserts. Every write
// recomputes the delivery's derived fields and publishes a change event
// that drives the owning supplier's reliability recalculation.
type DeliveryService struct {
	deliveryRepo logistics.DeliveryRepository
	supplierRepo partner.SupplierRepository
	history      *bulkapp.HistoryService
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// NewDeliveryService creates a new DeliveryService
func NewDeliveryService(
	deliveryRepo logistics.DeliveryRepository,
	supplierRepo partner.SupplierRepository,
	history *bulkapp.HistoryService,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *DeliveryService {
	return &DeliveryService{
		deliveryRepo: deliveryRepo,
		supplierRepo: supplierRepo,
		history:      history,
		publisher:    publisher,
		logger:       logger,
	}
}

// Upsert creates a delivery or updates the existing one sharing the
// same delivery number. Returns true when a new row was created.
func (s *DeliveryService) Upsert(ctx context.Context, req DeliveryRequest) (*DeliveryResponse, bool, error) {
	if req.DeliveryNumber <= 0 {
		return nil, false, shared.NewDomainError("INVALID_DELIVERY_NUMBER", "Delivery number must be positive")
	}

	delivery, err := s.deliveryRepo.FindByDeliveryNumber(ctx, req.DeliveryNumber)
	created := false
	switch {
	case errors.Is(err, shared.ErrNotFound):
		delivery, err = s.buildDelivery(ctx, req)
		if err != nil {
			return nil, false, err
		}
		created = true
	case err != nil:
		return nil, false, err
	default:
		if err := s.applyRequest(ctx, delivery, req); err != nil {
			return nil, false, err
		}
	}

	if err := delivery.Validate(); err != nil {
		return nil, false, err
	}
	delivery.RecalculateMetrics()

	if err := s.deliveryRepo.Save(ctx, delivery); err != nil {
		return nil, false, err
	}

	delivery.MarkChanged(created)
	s.publish(ctx, delivery)

	response := ToDeliveryResponse(delivery)
	return &response, created, nil
}

// BulkUpsert processes each record independently and collects per-row
// failures instead of aborting. The outcome is recorded in the import
// history.
func (s *DeliveryService) BulkUpsert(ctx context.Context, reqs []DeliveryRequest, userID *uuid.UUID) (bulk.UpsertResult[DeliveryResponse], error) {
	started := time.Now()
	result := bulk.NewUpsertResult[DeliveryResponse]()

	for i, req := range reqs {
		resp, created, err := s.Upsert(ctx, req)
		if err != nil {
			result.Errors = append(result.Errors, rowError(i, strconv.FormatInt(req.DeliveryNumber, 10), err))
			continue
		}
		if created {
			result.Created = append(result.Created, *resp)
		} else {
			result.Updated = append(result.Updated, *resp)
		}
	}

	s.history.Record(ctx, bulk.EntityDeliveries, len(result.Created), len(result.Updated), result.Errors, time.Since(started), userID)
	return result, nil
}

// GetByID retrieves a delivery by ID
func (s *DeliveryService) GetByID(ctx context.Context, id uuid.UUID) (*DeliveryResponse, error) {
	delivery, err := s.deliveryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToDeliveryResponse(delivery)
	return &response, nil
}

// List retrieves deliveries matching the filter
func (s *DeliveryService) List(ctx context.Context, filter shared.Filter) ([]DeliveryResponse, error) {
	deliveries, err := s.deliveryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToDeliveryResponses(deliveries), nil
}

// Delete removes a delivery and triggers the owning supplier's
// reliability recalculation
func (s *DeliveryService) Delete(ctx context.Context, id uuid.UUID) error {
	delivery, err := s.deliveryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.deliveryRepo.Delete(ctx, id); err != nil {
		return err
	}

	delivery.MarkChanged(false)
	s.publish(ctx, delivery)
	return nil
}

// buildDelivery constructs a new delivery from a create request
func (s *DeliveryService) buildDelivery(ctx context.Context, req DeliveryRequest) (*logistics.Delivery, error) {
	supplierID, err := s.resolveSupplier(ctx, req)
	if err != nil {
		return nil, err
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_SUPPLIER", "Delivery must reference a supplier by id or unp")
	}
	if req.Name == "" {
		return nil, shared.NewDomainError("MISSING_PRODUCT_NAME", "Product name is required")
	}

	var quantity float64
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	pricePerUnit := decimal.Zero
	if req.PricePerUnit != nil {
		pricePerUnit = decimal.NewFromFloat(*req.PricePerUnit)
	}

	delivery, err := logistics.NewDelivery(req.DeliveryNumber, supplierID, req.Name, quantity, pricePerUnit)
	if err != nil {
		return nil, err
	}
	if err := s.applyRequest(ctx, delivery, req); err != nil {
		return nil, err
	}
	return delivery, nil
}

// applyRequest copies the provided fields onto the delivery
func (s *DeliveryService) applyRequest(ctx context.Context, delivery *logistics.Delivery, req DeliveryRequest) error {
	if req.SupplierID != "" || req.SupplierUNP != "" {
		supplierID, err := s.resolveSupplier(ctx, req)
		if err != nil {
			return err
		}
		delivery.SupplierID = supplierID
	}

	if req.Article != "" {
		delivery.Article = req.Article
	}
	if req.Name != "" {
		delivery.Name = req.Name
	}
	if req.Characteristics != "" {
		delivery.Characteristics = req.Characteristics
	}
	if req.Unit != "" {
		delivery.Unit = req.Unit
	}
	if req.Currency != "" {
		delivery.Currency = req.Currency
	}

	if req.Quantity != nil {
		delivery.Quantity = *req.Quantity
	}
	if req.DefectiveQuantity != nil {
		delivery.DefectiveQuantity = *req.DefectiveQuantity
	}
	if req.PricePerUnit != nil {
		delivery.PricePerUnit = decimal.NewFromFloat(*req.PricePerUnit)
	}

	setDate(&delivery.PurchaseDate, req.PurchaseDate)
	setDate(&delivery.ArrivalDate, req.ArrivalDate)
	setDate(&delivery.DeliveryTerm, req.DeliveryTerm)

	return nil
}

// publish flushes the delivery's pending domain events. Publish
// failures are logged; the write itself already succeeded.
func (s *DeliveryService) publish(ctx context.Context, delivery *logistics.Delivery) {
	events := delivery.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish delivery events",
			zap.Int64("delivery_number", delivery.DeliveryNumber),
			zap.Error(err),
		)
	}
	delivery.ClearDomainEvents()
}

// resolveSupplier maps the request's supplier reference to a supplier ID
func (s *DeliveryService) resolveSupplier(ctx context.Context, req DeliveryRequest) (uuid.UUID, error) {
	if req.SupplierID != "" {
		id, err := uuid.Parse(req.SupplierID)
		if err != nil {
			return uuid.Nil, shared.NewDomainError("INVALID_SUPPLIER_ID", "Supplier id must be a UUID")
		}
		if _, err := s.supplierRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return uuid.Nil, shared.NewDomainError("SUPPLIER_NOT_FOUND", "Referenced supplier does not exist")
			}
			return uuid.Nil, err
		}
		return id, nil
	}
	if req.SupplierUNP != "" {
		supplier, err := s.supplierRepo.FindByUNP(ctx, req.SupplierUNP)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return uuid.Nil, shared.NewDomainError("SUPPLIER_NOT_FOUND", "Referenced supplier does not exist")
			}
			return uuid.Nil, err
		}
		return supplier.ID, nil
	}
	return uuid.Nil, nil
}

// setDate copies a provided date onto a required delivery date field
func setDate(dst *time.Time, src *jsontime.Time) {
	if src != nil && !src.IsZero() {
		*dst = src.Time
	}
}

// rowError maps an upsert failure to its per-row record
func rowError(index int, key string, err error) bulk.RowError {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return bulk.RowError{Index: index, Key: key, Code: domainErr.Code, Message: domainErr.Message}
	}
	return bulk.RowError{Index: index, Key: key, Code: "INTERNAL", Message: fmt.Sprintf("unexpected error: %v", err)}
}
