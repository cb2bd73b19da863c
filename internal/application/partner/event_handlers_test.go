package partner

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tradeboard/backend/internal/domain/logistics"
	"github.com/tradeboard/backend/internal/domain/partner"
	"github.com/tradeboard/backend/internal/domain/trade"
	"go.uber.org/zap"
)

func TestOrderChangedHandler(t *testing.T) {
	ctx := context.Background()
	client, err := partner.NewClient("Beta LLC", "191111111", partner.ClientTypeLegal)
	require.NoError(t, err)
	order, err := trade.NewOrder(1, client.ID, time.Now(), decimal.NewFromInt(100))
	require.NoError(t, err)

	t.Run("recalculates the owning client on order events", func(t *testing.T) {
		f := newClientServiceFixture()
		f.clients.On("FindByID", ctx, client.ID).Return(client, nil)
		f.orders.On("FindByClientID", ctx, client.ID).Return([]trade.Order{*order}, nil)
		f.orders.On("Count", ctx).Return(int64(1), nil)
		f.clients.On("Count", ctx).Return(int64(1), nil)
		f.clients.On("Save", ctx, client).Return(nil)

		handler := NewOrderChangedHandler(f.service, zap.NewNop())
		require.NoError(t, handler.Handle(ctx, trade.NewOrderCreatedEvent(order)))
		require.NoError(t, handler.Handle(ctx, trade.NewOrderUpdatedEvent(order)))
		f.clients.AssertExpectations(t)
	})

	t.Run("rejects foreign event types", func(t *testing.T) {
		f := newClientServiceFixture()
		handler := NewOrderChangedHandler(f.service, zap.NewNop())

		delivery, err := logistics.NewDelivery(1, client.ID, "bearings", 1, decimal.NewFromInt(1))
		require.NoError(t, err)
		require.Error(t, handler.Handle(ctx, logistics.NewDeliveryCreatedEvent(delivery)))
	})
}

func TestDeliveryChangedHandler(t *testing.T) {
	ctx := context.Background()
	supplier, err := partner.NewSupplier("Gamma Metals", "291111111", partner.SupplierTypeLegal)
	require.NoError(t, err)
	delivery, err := logistics.NewDelivery(1, supplier.ID, "bearings", 10, decimal.NewFromInt(2))
	require.NoError(t, err)

	f := newSupplierServiceFixture()
	f.suppliers.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
	f.deliveries.On("FindBySupplierID", ctx, supplier.ID).Return([]logistics.Delivery{*delivery}, nil)
	f.suppliers.On("AverageDefectRateTotal", ctx).Return(0.0, nil)
	f.suppliers.On("Save", ctx, supplier).Return(nil)

	handler := NewDeliveryChangedHandler(f.service, zap.NewNop())
	require.NoError(t, handler.Handle(ctx, logistics.NewDeliveryCreatedEvent(delivery)))
	f.suppliers.AssertExpectations(t)
}
