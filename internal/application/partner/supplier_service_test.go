package partner

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	bulkapp "github.com/tradeboard/backend/internal/application/bulk"
	"github.com/tradeboard/backend/internal/domain/logistics"
	"github.com/tradeboard/backend/internal/domain/partner"
	"github.com/tradeboard/backend/internal/domain/shared"
	"go.uber.org/zap"
)

type supplierServiceFixture struct {
	suppliers  *mockSupplierRepo
	deliveries *mockDeliveryRepo
	histories  *mockHistoryRepo
	service    *SupplierService
}

func newSupplierServiceFixture() *supplierServiceFixture {
	f := &supplierServiceFixture{
		suppliers:  new(mockSupplierRepo),
		deliveries: new(mockDeliveryRepo),
		histories:  new(mockHistoryRepo),
	}
	history := bulkapp.NewHistoryService(f.histories, zap.NewNop())
	f.service = NewSupplierService(f.suppliers, f.deliveries, history, noopTx{}, zap.NewNop())
	return f
}

func onTimeDelivery(supplierID uuid.UUID, number int64, quantity, defective float64, purchase time.Time) logistics.Delivery {
	d, _ := logistics.NewDelivery(number, supplierID, "bearings", quantity, decimal.NewFromInt(10))
	d.DefectiveQuantity = defective
	d.PurchaseDate = purchase
	d.ArrivalDate = purchase.AddDate(0, 0, 4)
	d.DeliveryTerm = purchase.AddDate(0, 0, 7)
	d.RecalculateMetrics()
	return *d
}

func TestSupplierServiceUpsert(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a supplier and computes its reliability", func(t *testing.T) {
		f := newSupplierServiceFixture()
		f.suppliers.On("FindByUNP", ctx, "291111111").Return(nil, shared.ErrNotFound)
		f.suppliers.On("Save", ctx, mock.AnythingOfType("*partner.Supplier")).Return(nil)
		f.deliveries.On("FindBySupplierID", ctx, mock.AnythingOfType("uuid.UUID")).Return([]logistics.Delivery{}, nil)
		f.suppliers.On("AverageDefectRateTotal", ctx).Return(0.0, nil)

		resp, created, err := f.service.Upsert(ctx, SupplierRequest{
			Name: "Gamma Metals",
			UNP:  "291111111",
		})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "Gamma Metals", resp.Name)
		assert.Equal(t, string(partner.SupplierCategoryUnsatisfactory), resp.Category)
	})

	t.Run("updates an existing supplier and refreshes category", func(t *testing.T) {
		supplier, err := partner.NewSupplier("Gamma Metals", "291111111", partner.SupplierTypeLegal)
		require.NoError(t, err)
		now := time.Now()
		deliveries := []logistics.Delivery{
			onTimeDelivery(supplier.ID, 1, 100, 1, now.AddDate(0, -1, 0)),
			onTimeDelivery(supplier.ID, 2, 100, 1, now.AddDate(0, -2, 0)),
		}

		f := newSupplierServiceFixture()
		f.suppliers.On("FindByUNP", ctx, "291111111").Return(supplier, nil)
		f.suppliers.On("Save", ctx, supplier).Return(nil)
		f.deliveries.On("FindBySupplierID", ctx, supplier.ID).Return(deliveries, nil)
		f.suppliers.On("AverageDefectRateTotal", ctx).Return(0.05, nil)

		days := 3
		count := 60
		flexible := true
		resp, created, err := f.service.Upsert(ctx, SupplierRequest{
			UNP:             "291111111",
			ReplacementDays: &days,
			AssortmentCount: &count,
			TermsFlexible:   &flexible,
		})
		require.NoError(t, err)
		assert.False(t, created)
		assert.InDelta(t, 0.01, resp.DefectRateTotal, 1e-9)
		assert.InDelta(t, 1.0, resp.OnTimePercentage, 1e-9)
	})

	t.Run("requires a UNP", func(t *testing.T) {
		f := newSupplierServiceFixture()
		_, _, err := f.service.Upsert(ctx, SupplierRequest{Name: "No UNP"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "MISSING_UNP", domainErr.Code)
	})
}

func TestSupplierServiceBulkUpsert(t *testing.T) {
	ctx := context.Background()

	f := newSupplierServiceFixture()
	f.suppliers.On("FindByUNP", ctx, "291111111").Return(nil, shared.ErrNotFound)
	f.suppliers.On("Save", ctx, mock.AnythingOfType("*partner.Supplier")).Return(nil)
	f.deliveries.On("FindBySupplierID", ctx, mock.AnythingOfType("uuid.UUID")).Return([]logistics.Delivery{}, nil)
	f.suppliers.On("AverageDefectRateTotal", ctx).Return(0.0, nil)
	f.histories.On("Save", ctx, mock.AnythingOfType("*bulk.ImportHistory")).Return(nil)

	result, err := f.service.BulkUpsert(ctx, []SupplierRequest{
		{Name: "Gamma Metals", UNP: "291111111"},
		{Name: "Missing UNP"},
	}, nil)
	require.NoError(t, err)

	assert.Len(t, result.Created, 1)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "MISSING_UNP", result.Errors[0].Code)
	assert.Equal(t, 2, result.Total())
}

func TestSupplierServiceDelete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("refuses to delete a supplier with deliveries", func(t *testing.T) {
		f := newSupplierServiceFixture()
		f.deliveries.On("FindBySupplierID", ctx, id).
			Return([]logistics.Delivery{onTimeDelivery(id, 1, 10, 0, time.Now())}, nil)

		err := f.service.Delete(ctx, id)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SUPPLIER_HAS_DELIVERIES", domainErr.Code)
		f.suppliers.AssertNotCalled(t, "Delete")
	})

	t.Run("deletes a supplier without deliveries", func(t *testing.T) {
		f := newSupplierServiceFixture()
		f.deliveries.On("FindBySupplierID", ctx, id).Return([]logistics.Delivery{}, nil)
		f.suppliers.On("Delete", ctx, id).Return(nil)

		require.NoError(t, f.service.Delete(ctx, id))
		f.suppliers.AssertExpectations(t)
	})
}

func TestSupplierServiceRecalculateReliability(t *testing.T) {
	ctx := context.Background()
	supplier, err := partner.NewSupplier("Gamma Metals", "291111111", partner.SupplierTypeLegal)
	require.NoError(t, err)
	supplier.InTradeRegistry = true
	supplier.ReplacementDays = 3
	supplier.AssortmentCount = 60
	supplier.TermsFlexible = true

	now := time.Now()
	deliveries := []logistics.Delivery{
		onTimeDelivery(supplier.ID, 1, 600, 6, now.AddDate(0, -1, 0)),
		onTimeDelivery(supplier.ID, 2, 600, 6, now.AddDate(0, -3, 0)),
	}

	f := newSupplierServiceFixture()
	f.suppliers.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
	f.deliveries.On("FindBySupplierID", ctx, supplier.ID).Return(deliveries, nil)
	f.suppliers.On("AverageDefectRateTotal", ctx).Return(0.05, nil)
	f.suppliers.On("Save", ctx, supplier).Return(nil)

	resp, err := f.service.RecalculateReliability(ctx, supplier.ID)
	require.NoError(t, err)

	assert.InDelta(t, 0.01, resp.DefectRateTotal, 1e-9)
	assert.InDelta(t, 1.0, resp.OnTimePercentage, 1e-9)
	assert.InDelta(t, 4, resp.AvgDeliveryTime, 1e-9)
	assert.Equal(t, string(partner.SupplierCategoryReliable), resp.Category)
}
