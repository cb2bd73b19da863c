package partner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReliableSupplier(t *testing.T) *Supplier {
	t.Helper()
	supplier, err := NewSupplier("MetalProm JSC", "291234567", SupplierTypeLegal)
	require.NoError(t, err)
	supplier.RegistryActive = true
	supplier.InTradeRegistry = true
	supplier.ReplacementDays = 5
	supplier.AssortmentCount = 30
	supplier.TermsFlexible = true
	return supplier
}

func TestNewSupplier(t *testing.T) {
	t.Run("creates supplier with valid input", func(t *testing.T) {
		supplier, err := NewSupplier("MetalProm JSC", "291234567", SupplierTypeLegal)
		require.NoError(t, err)
		assert.Equal(t, "291234567", supplier.UNP)
		assert.Equal(t, SupplierCategoryUnsatisfactory, supplier.Category)
	})

	t.Run("fails without name", func(t *testing.T) {
		supplier, err := NewSupplier("", "291234567", SupplierTypeLegal)
		assert.Nil(t, supplier)
		assert.Error(t, err)
	})
}

func TestSupplierRecalculateReliability(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	recent := now.AddDate(0, -2, 0)
	old := now.AddDate(-2, 0, 0)

	t.Run("partitions by trailing twelve months", func(t *testing.T) {
		supplier := newReliableSupplier(t)
		deliveries := []DeliverySnapshot{
			{Quantity: 100, DefectiveQuantity: 2, OnTime: true, Duration: 5, PurchaseDate: recent},
			{Quantity: 100, DefectiveQuantity: 10, OnTime: true, Duration: 7, PurchaseDate: old},
		}
		supplier.RecalculateReliability(deliveries, 0.5, now)

		assert.InDelta(t, 0.02, supplier.DefectRateYear, 1e-9)
		assert.InDelta(t, 0.06, supplier.DefectRateTotal, 1e-9)
		assert.Equal(t, 100.0, supplier.ReceivedQuantity)
		assert.Equal(t, 1.0, supplier.OnTimePercentage)
		assert.Equal(t, 6.0, supplier.AvgDeliveryTime)
	})

	t.Run("no deliveries yields zero rates", func(t *testing.T) {
		supplier := newReliableSupplier(t)
		supplier.RecalculateReliability(nil, 0.5, now)

		assert.Equal(t, 0.0, supplier.DefectRateYear)
		assert.Equal(t, 0.0, supplier.DefectRateTotal)
		assert.Equal(t, 0.0, supplier.OnTimePercentage)
		assert.Equal(t, 0.0, supplier.AvgDeliveryTime)
		assert.Equal(t, 0.0, supplier.ReceivedQuantity)
	})

	t.Run("reliable tier", func(t *testing.T) {
		supplier := newReliableSupplier(t)
		deliveries := []DeliverySnapshot{
			{Quantity: 100, DefectiveQuantity: 1, OnTime: true, Duration: 4, PurchaseDate: recent},
			{Quantity: 100, DefectiveQuantity: 1, OnTime: true, Duration: 5, PurchaseDate: recent},
		}
		supplier.RecalculateReliability(deliveries, 0.1, now)

		assert.Equal(t, SupplierCategoryReliable, supplier.Category)
		// reliable implies both registry flags and a high on-time rate
		assert.True(t, supplier.RegistryActive)
		assert.True(t, supplier.InTradeRegistry)
		assert.GreaterOrEqual(t, supplier.OnTimePercentage, 0.9)
	})

	t.Run("falls through to satisfactory on defect rate", func(t *testing.T) {
		supplier := newReliableSupplier(t)
		deliveries := []DeliverySnapshot{
			{Quantity: 100, DefectiveQuantity: 5, OnTime: true, Duration: 4, PurchaseDate: recent},
		}
		// cross-supplier average below this supplier's 0.05 rate
		supplier.RecalculateReliability(deliveries, 0.01, now)

		assert.Equal(t, SupplierCategorySatisfactory, supplier.Category)
	})

	t.Run("falls through to satisfactory on on-time rate", func(t *testing.T) {
		supplier := newReliableSupplier(t)
		deliveries := []DeliverySnapshot{
			{Quantity: 100, OnTime: true, Duration: 4, PurchaseDate: recent},
			{Quantity: 100, OnTime: true, Duration: 4, PurchaseDate: recent},
			{Quantity: 100, OnTime: true, Duration: 4, PurchaseDate: recent},
			{Quantity: 100, OnTime: true, Duration: 4, PurchaseDate: recent},
			{Quantity: 100, OnTime: false, Duration: 9, PurchaseDate: recent},
		}
		supplier.RecalculateReliability(deliveries, 0.5, now)

		assert.InDelta(t, 0.8, supplier.OnTimePercentage, 1e-9)
		assert.Equal(t, SupplierCategorySatisfactory, supplier.Category)
	})

	t.Run("unsatisfactory when registry flags are off", func(t *testing.T) {
		supplier := newReliableSupplier(t)
		supplier.InTradeRegistry = false
		deliveries := []DeliverySnapshot{
			{Quantity: 100, OnTime: true, Duration: 4, PurchaseDate: recent},
		}
		supplier.RecalculateReliability(deliveries, 0.5, now)

		assert.Equal(t, SupplierCategoryUnsatisfactory, supplier.Category)
	})

	t.Run("unsatisfactory when quality degraded this year", func(t *testing.T) {
		supplier := newReliableSupplier(t)
		deliveries := []DeliverySnapshot{
			// this-year defect rate 0.10 worse than lifetime 0.05
			{Quantity: 100, DefectiveQuantity: 10, OnTime: true, Duration: 4, PurchaseDate: recent},
			{Quantity: 100, DefectiveQuantity: 0, OnTime: true, Duration: 4, PurchaseDate: old},
		}
		supplier.RecalculateReliability(deliveries, 0.5, now)

		assert.Equal(t, SupplierCategoryUnsatisfactory, supplier.Category)
	})

	t.Run("replacement days boundaries", func(t *testing.T) {
		deliveries := []DeliverySnapshot{
			{Quantity: 100, OnTime: true, Duration: 4, PurchaseDate: recent},
		}

		supplier := newReliableSupplier(t)
		supplier.ReplacementDays = 8
		supplier.RecalculateReliability(deliveries, 0.5, now)
		assert.Equal(t, SupplierCategorySatisfactory, supplier.Category)

		supplier.ReplacementDays = 11
		supplier.RecalculateReliability(deliveries, 0.5, now)
		assert.Equal(t, SupplierCategoryUnsatisfactory, supplier.Category)
	})
}
