package trade

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
	"github.com/tradeboard/backend/internal/domain/partner"
	"github.com/tradeboard/backend/internal/domain/shared"
	"github.com/tradeboard/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// OrderService handles order CRUD and bulk upserts. Every write
// recomputes the order's derived fields and publishes a change event
// that drives the owning client's aggregate recalculation.
type OrderService struct {
	orderRepo  trade.OrderRepository
	clientRepo partner.ClientRepository
	history    *bulkapp.HistoryService
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo trade.OrderRepository,
	clientRepo partner.ClientRepository,
	history *bulkapp.HistoryService,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		clientRepo: clientRepo,
		history:    history,
		publisher:  publisher,
		logger:     logger,
	}
}

// Upsert creates an order or updates the existing one sharing the same
// order number. Returns true when a new row was created.
func (s *OrderService) Upsert(ctx context.Context, req OrderRequest) (*OrderResponse, bool, error) {
	if req.OrderNumber <= 0 {
		return nil, false, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number must be positive")
	}

	order, err := s.orderRepo.FindByOrderNumber(ctx, req.OrderNumber)
	created := false
	switch {
	case errors.Is(err, shared.ErrNotFound):
		order, err = s.buildOrder(ctx, req)
		if err != nil {
			return nil, false, err
		}
		created = true
	case err != nil:
		return nil, false, err
	default:
		if err := s.applyRequest(ctx, order, req); err != nil {
			return nil, false, err
		}
	}

	return s.persist(ctx, order, created)
}

// Update updates an order addressed by ID
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req OrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.OrderNumber != 0 && req.OrderNumber != order.OrderNumber {
		return nil, shared.NewDomainError("ORDER_NUMBER_IMMUTABLE", "Order number cannot be changed")
	}
	if err := s.applyRequest(ctx, order, req); err != nil {
		return nil, err
	}
	resp, _, err := s.persist(ctx, order, false)
	return resp, err
}

// BulkUpsert processes each record independently and collects per-row
// failures instead of aborting. The outcome is recorded in the import
// history.
func (s *OrderService) BulkUpsert(ctx context.Context, reqs []OrderRequest, userID *uuid.UUID) (bulk.UpsertResult[OrderResponse], error) {
	started := time.Now()
	result := bulk.NewUpsertResult[OrderResponse]()

	for i, req := range reqs {
		resp, created, err := s.Upsert(ctx, req)
		if err != nil {
			result.Errors = append(result.Errors, rowError(i, strconv.FormatInt(req.OrderNumber, 10), err))
			continue
		}
		if created {
			result.Created = append(result.Created, *resp)
		} else {
			result.Updated = append(result.Updated, *resp)
		}
	}

	s.history.Record(ctx, bulk.EntityOrders, len(result.Created), len(result.Updated), result.Errors, time.Since(started), userID)
	return result, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders matching the filter
func (s *OrderService) List(ctx context.Context, filter shared.Filter) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// ListByClient retrieves all orders of one client, newest first
func (s *OrderService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]OrderResponse, error) {
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.FindByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// Delete removes an order and triggers the owning client's aggregate
// recalculation
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}

	order.MarkChanged(false)
	s.publish(ctx, order)
	return nil
}

// buildOrder constructs a new order from a create request
func (s *OrderService) buildOrder(ctx context.Context, req OrderRequest) (*trade.Order, error) {
	clientID, err := s.resolveClient(ctx, req)
	if err != nil {
		return nil, err
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_CLIENT", "Order must reference a client by id or unp")
	}
	if req.RequestDate == nil || req.RequestDate.IsZero() {
		return nil, shared.NewDomainError("MISSING_REQUEST_DATE", "Request date is required")
	}
	if req.TotalAmount == nil {
		return nil, shared.NewDomainError("MISSING_TOTAL_AMOUNT", "Total amount is required")
	}

	order, err := trade.NewOrder(req.OrderNumber, clientID, req.RequestDate.Time, decimal.NewFromFloat(*req.TotalAmount))
	if err != nil {
		return nil, err
	}
	if err := s.applyRequest(ctx, order, req); err != nil {
		return nil, err
	}
	return order, nil
}

// applyRequest copies the provided fields onto the order
func (s *OrderService) applyRequest(ctx context.Context, order *trade.Order, req OrderRequest) error {
	if req.ClientID != "" || req.ClientUNP != "" {
		clientID, err := s.resolveClient(ctx, req)
		if err != nil {
			return err
		}
		order.ClientID = clientID
	}

	if req.Description != "" {
		order.Description = req.Description
	}
	if req.Currency != "" {
		order.Currency = req.Currency
	}

	if req.RequestDate != nil && !req.RequestDate.IsZero() {
		order.RequestDate = req.RequestDate.Time
	}
	setDate(&order.ConfirmDate, req.ConfirmDate)
	setDate(&order.OrderReadyDate, req.OrderReadyDate)
	setDate(&order.PaymentTerm, req.PaymentTerm)
	setDate(&order.PaymentDate, req.PaymentDate)
	setDate(&order.DispatchDate, req.DispatchDate)
	setDate(&order.DeliveryTerm, req.DeliveryTerm)
	setDate(&order.DeliveryDate, req.DeliveryDate)

	setAmount(&order.TotalAmount, req.TotalAmount)
	setAmount(&order.Cost, req.Cost)
	setAmount(&order.TransportationCosts, req.TransportationCosts)
	setAmount(&order.LaborCosts, req.LaborCosts)
	setAmount(&order.SocialContributions, req.SocialContributions)
	setAmount(&order.RentalCosts, req.RentalCosts)
	setAmount(&order.PremisesMaintenance, req.PremisesMaintenance)
	setAmount(&order.Amortization, req.Amortization)
	setAmount(&order.EnergyCosts, req.EnergyCosts)
	setAmount(&order.Taxes, req.Taxes)
	setAmount(&order.StaffCosts, req.StaffCosts)
	setAmount(&order.OtherCosts, req.OtherCosts)
	setAmount(&order.PaidAmount, req.PaidAmount)

	return nil
}

// persist validates, recomputes, saves and publishes the change event
func (s *OrderService) persist(ctx context.Context, order *trade.Order, created bool) (*OrderResponse, bool, error) {
	if err := order.Validate(); err != nil {
		return nil, false, err
	}
	order.RecalculateMetrics()

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, false, err
	}

	order.MarkChanged(created)
	s.publish(ctx, order)

	response := ToOrderResponse(order)
	return &response, created, nil
}

// publish flushes the order's pending domain events. Publish failures
// are logged; the write itself already succeeded.
func (s *OrderService) publish(ctx context.Context, order *trade.Order) {
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish order events",
			zap.Int64("order_number", order.OrderNumber),
			zap.Error(err),
		)
	}
	order.ClearDomainEvents()
}

// resolveClient maps the request's client reference to a client ID
func (s *OrderService) resolveClient(ctx context.Context, req OrderRequest) (uuid.UUID, error) {
	if req.ClientID != "" {
		id, err := uuid.Parse(req.ClientID)
		if err != nil {
			return uuid.Nil, shared.NewDomainError("INVALID_CLIENT_ID", "Client id must be a UUID")
		}
		if _, err := s.clientRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return uuid.Nil, shared.NewDomainError("CLIENT_NOT_FOUND", "Referenced client does not exist")
			}
			return uuid.Nil, err
		}
		return id, nil
	}
	if req.ClientUNP != "" {
		client, err := s.clientRepo.FindByUNP(ctx, req.ClientUNP)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return uuid.Nil, shared.NewDomainError("CLIENT_NOT_FOUND", "Referenced client does not exist")
			}
			return uuid.Nil, err
		}
		return client.ID, nil
	}
	return uuid.Nil, nil
}

func setDate(dst **time.Time, src *jsontime.Time) {
	if src != nil {
		*dst = src.Ptr()
	}
}

func setAmount(dst *decimal.Decimal, src *float64) {
	if src != nil {
		*dst = decimal.NewFromFloat(*src)
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
