package partner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	bulkapp "github.com/tradeboard/backend/internal/application/bulk"
	"github.com/tradeboard/backend/internal/domain/bulk"
	"github.com/tradeboard/backend/internal/domain/partner"
	"github.com/tradeboard/backend/internal/domain/shared"
	"github.com/tradeboard/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// ClientService handles client CRUD, bulk upserts and the aggregate
// recalculation triggered by order writes
type ClientService struct {
	clientRepo partner.ClientRepository
	orderRepo  trade.OrderRepository
	history    *bulkapp.HistoryService
	tx         shared.TransactionManager
	logger     *zap.Logger
}

// NewClientService creates a new ClientService
func NewClientService(
	clientRepo partner.ClientRepository,
	orderRepo trade.OrderRepository,
	history *bulkapp.HistoryService,
	tx shared.TransactionManager,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		orderRepo:  orderRepo,
		history:    history,
		tx:         tx,
		logger:     logger,
	}
}

// Upsert creates a client or updates the existing one sharing the same
// UNP. Returns true when a new row was created.
func (s *ClientService) Upsert(ctx context.Context, req ClientRequest) (*ClientResponse, bool, error) {
	if req.UNP == "" {
		return nil, false, shared.NewDomainError("MISSING_UNP", "Client UNP is required")
	}

	client, err := s.clientRepo.FindByUNP(ctx, req.UNP)
	created := false
	switch {
	case errors.Is(err, shared.ErrNotFound):
		clientType := partner.ClientType(req.Type)
		if req.Type == "" {
			clientType = partner.ClientTypeLegal
		}
		client, err = partner.NewClient(req.Name, req.UNP, clientType)
		if err != nil {
			return nil, false, err
		}
		created = true
	case err != nil:
		return nil, false, err
	}

	applyClientRequest(client, req)

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, false, err
	}

	response := ToClientResponse(client)
	return &response, created, nil
}

// BulkUpsert processes each record independently and collects per-row
// failures instead of aborting. The outcome is recorded in the import
// history.
func (s *ClientService) BulkUpsert(ctx context.Context, reqs []ClientRequest, userID *uuid.UUID) (bulk.UpsertResult[ClientResponse], error) {
	started := time.Now()
	result := bulk.NewUpsertResult[ClientResponse]()

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

	s.history.Record(ctx, bulk.EntityClients, len(result.Created), len(result.Updated), result.Errors, time.Since(started), userID)
	return result, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients matching the filter
func (s *ClientService) List(ctx context.Context, filter shared.Filter) ([]ClientResponse, error) {
	clients, err := s.clientRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToClientResponses(clients), nil
}

// Delete removes a client
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	orders, err := s.orderRepo.FindByClientID(ctx, id)
	if err != nil {
		return err
	}
	if len(orders) > 0 {
		return shared.NewDomainError("CLIENT_HAS_ORDERS", "Cannot delete a client with orders")
	}
	return s.clientRepo.Delete(ctx, id)
}

// RecalculateAggregates rebuilds the client's derived aggregates from
// its full order history, atomically
func (s *ClientService) RecalculateAggregates(ctx context.Context, clientID uuid.UUID) error {
	return s.tx.Do(ctx, func(ctx context.Context) error {
		client, err := s.clientRepo.FindByID(ctx, clientID)
		if err != nil {
			return err
		}

		orders, err := s.orderRepo.FindByClientID(ctx, clientID)
		if err != nil {
			return err
		}

		totalOrders, err := s.orderRepo.Count(ctx)
		if err != nil {
			return err
		}
		totalClients, err := s.clientRepo.Count(ctx)
		if err != nil {
			return err
		}

		client.RecalculateAggregates(
			orderSnapshots(orders),
			partner.ClientPopulation{TotalOrders: totalOrders, TotalClients: totalClients},
			time.Now(),
		)

		if err := s.clientRepo.Save(ctx, client); err != nil {
			return err
		}

		s.logger.Debug("client aggregates recalculated",
			zap.String("client_id", clientID.String()),
			zap.Int("orders", len(orders)),
			zap.String("activity", string(client.ActivityStatus)),
		)
		return nil
	})
}

func applyClientRequest(client *partner.Client, req ClientRequest) {
	if req.Name != "" {
		client.Name = req.Name
	}
	if req.Type != "" {
		client.Type = partner.ClientType(req.Type)
	}
	if req.Country != "" {
		client.Country = req.Country
	}
	if req.RegistryActive != nil {
		client.RegistryActive = *req.RegistryActive
	}
	if req.InTradeRegistry != nil {
		client.InTradeRegistry = *req.InTradeRegistry
	}
}

// orderSnapshots projects orders onto the fields the client aggregate
// calculation needs. PaymentTime is only carried for fully paid orders
// whose ready and payment dates are both known.
func orderSnapshots(orders []trade.Order) []partner.OrderSnapshot {
	snapshots := make([]partner.OrderSnapshot, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		snapshot := partner.OrderSnapshot{
			TotalAmount: o.TotalAmount,
			LeftToPay:   o.LeftToPay,
			RequestDate: o.RequestDate,
		}
		if o.LeftToPay.IsZero() && o.OrderReadyDate != nil && o.PaymentDate != nil {
			pt := o.PaymentTime
			snapshot.PaymentTime = &pt
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots
}

// toRowError maps an upsert failure to its per-row record
func toRowError(index int, key string, err error) bulk.RowError {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return bulk.RowError{Index: index, Key: key, Code: domainErr.Code, Message: domainErr.Message}
	}
	return bulk.RowError{Index: index, Key: key, Code: "INTERNAL", Message: fmt.Sprintf("unexpected error: %v", err)}
}
