package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradeboard/backend/internal/domain/bulk"
	"github.com/tradeboard/backend/internal/domain/logistics"
	"github.com/tradeboard/backend/internal/domain/partner"
	"github.com/tradeboard/backend/internal/domain/shared"
	"github.com/tradeboard/backend/internal/domain/trade"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&partner.Client{},
		&partner.Supplier{},
		&trade.Order{},
		&logistics.Delivery{},
		&bulk.ImportHistory{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func mustNewClient(t *testing.T, name, unp string) *partner.Client {
	t.Helper()
	client, err := partner.NewClient(name, unp, partner.ClientTypeLegal)
	require.NoError(t, err)
	return client
}

func TestClientRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormClientRepository(db)
	ctx := context.Background()

	t.Run("save and find by id", func(t *testing.T) {
		client := mustNewClient(t, "Alfa Trade", "100000001")
		require.NoError(t, repo.Save(ctx, client))

		found, err := repo.FindByID(ctx, client.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alfa Trade", found.Name)
		assert.Equal(t, "100000001", found.UNP)
	})

	t.Run("find by unp", func(t *testing.T) {
		client := mustNewClient(t, "Beta Logistics", "100000002")
		require.NoError(t, repo.Save(ctx, client))

		found, err := repo.FindByUNP(ctx, "100000002")
		require.NoError(t, err)
		assert.Equal(t, client.ID, found.ID)
	})

	t.Run("not found maps to domain error", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByUNP(ctx, "999999999")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		client := mustNewClient(t, "Gamma Supply", "100000003")
		require.NoError(t, repo.Save(ctx, client))

		require.NoError(t, repo.Delete(ctx, client.ID))
		_, err := repo.FindByID(ctx, client.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, client.ID), shared.ErrNotFound)
	})

	t.Run("count", func(t *testing.T) {
		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, count, int64(2))
	})
}

func TestOrderRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	client := mustNewClient(t, "Order Client", "200000001")
	require.NoError(t, db.Create(client).Error)

	newOrder := func(t *testing.T, number int64, requestDate time.Time) *trade.Order {
		t.Helper()
		order, err := trade.NewOrder(number, client.ID, requestDate, decimal.NewFromInt(1000))
		require.NoError(t, err)
		return order
	}

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("save and find by order number", func(t *testing.T) {
		order := newOrder(t, 501, base)
		require.NoError(t, repo.Save(ctx, order))

		found, err := repo.FindByOrderNumber(ctx, 501)
		require.NoError(t, err)
		assert.Equal(t, order.ID, found.ID)
		assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(1000)))

		_, err = repo.FindByOrderNumber(ctx, 999)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("save updates existing row", func(t *testing.T) {
		order, err := repo.FindByOrderNumber(ctx, 501)
		require.NoError(t, err)

		order.PaidAmount = decimal.NewFromInt(400)
		require.NoError(t, repo.Save(ctx, order))

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		reloaded, err := repo.FindByOrderNumber(ctx, 501)
		require.NoError(t, err)
		assert.True(t, reloaded.PaidAmount.Equal(decimal.NewFromInt(400)))
	})

	t.Run("find by client id", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, newOrder(t, 502, base.AddDate(0, 0, 10))))

		orders, err := repo.FindByClientID(ctx, client.ID)
		require.NoError(t, err)
		assert.Len(t, orders, 2)

		orders, err = repo.FindByClientID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("count by client since", func(t *testing.T) {
		count, err := repo.CountByClientSince(ctx, client.ID, base.AddDate(0, 0, 5))
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		count, err = repo.CountByClientSince(ctx, client.ID, base)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("find all filtered by status", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["status"] = trade.OrderStatusNew

		orders, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})
}

func TestDeliveryRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormDeliveryRepository(db)
	ctx := context.Background()

	supplier, err := partner.NewSupplier("Parts Supplier", "300000001", partner.SupplierTypeLegal)
	require.NoError(t, err)
	require.NoError(t, db.Create(supplier).Error)

	newDelivery := func(t *testing.T, number int64) *logistics.Delivery {
		t.Helper()
		delivery, err := logistics.NewDelivery(number, supplier.ID, "Steel sheet", 100, decimal.NewFromInt(25))
		require.NoError(t, err)
		delivery.PurchaseDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		delivery.ArrivalDate = time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
		delivery.DeliveryTerm = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
		return delivery
	}

	t.Run("save and find by delivery number", func(t *testing.T) {
		delivery := newDelivery(t, 7001)
		require.NoError(t, repo.Save(ctx, delivery))

		found, err := repo.FindByDeliveryNumber(ctx, 7001)
		require.NoError(t, err)
		assert.Equal(t, delivery.ID, found.ID)

		_, err = repo.FindByDeliveryNumber(ctx, 404)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("find by supplier id", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, newDelivery(t, 7002)))

		deliveries, err := repo.FindBySupplierID(ctx, supplier.ID)
		require.NoError(t, err)
		assert.Len(t, deliveries, 2)
	})

	t.Run("delete", func(t *testing.T) {
		delivery := newDelivery(t, 7003)
		require.NoError(t, repo.Save(ctx, delivery))
		require.NoError(t, repo.Delete(ctx, delivery.ID))
		assert.ErrorIs(t, repo.Delete(ctx, delivery.ID), shared.ErrNotFound)
	})
}

func TestSupplierRepositoryAverageDefectRate(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSupplierRepository(db)
	ctx := context.Background()

	t.Run("no suppliers yields zero", func(t *testing.T) {
		avg, err := repo.AverageDefectRateTotal(ctx)
		require.NoError(t, err)
		assert.Zero(t, avg)
	})

	t.Run("averages over all suppliers", func(t *testing.T) {
		for i, rate := range []float64{0.02, 0.04, 0.06} {
			supplier, err := partner.NewSupplier("Supplier", string(rune('A'+i))+"00000001", partner.SupplierTypeLegal)
			require.NoError(t, err)
			supplier.DefectRateTotal = rate
			require.NoError(t, repo.Save(ctx, supplier))
		}

		avg, err := repo.AverageDefectRateTotal(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 0.04, avg, 1e-9)
	})
}

func TestImportHistoryRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormImportHistoryRepository(db)
	ctx := context.Background()

	record, err := bulk.NewImportHistory(bulk.EntityOrders, 3, 2, []bulk.RowError{
		{Index: 4, Key: "105", Code: "VALIDATION_ERROR", Message: "paid amount exceeds total"},
	}, 150*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, record))

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, bulk.EntityOrders, found.EntityType)
		assert.Equal(t, 6, found.TotalRows)

		rowErrors, err := found.RowErrors()
		require.NoError(t, err)
		require.Len(t, rowErrors, 1)
		assert.Equal(t, 4, rowErrors[0].Index)
	})

	t.Run("find all filtered by entity type", func(t *testing.T) {
		other, err := bulk.NewImportHistory(bulk.EntityClients, 1, 0, nil, time.Millisecond, nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, other))

		filter := shared.DefaultFilter()
		filter.Filters["entity_type"] = bulk.EntityOrders

		records, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, bulk.EntityOrders, records[0].EntityType)
	})
}

func TestStatsRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormStatsRepository(db)
	ctx := context.Background()

	client := mustNewClient(t, "Stats Client", "400000001")
	require.NoError(t, db.Create(client).Error)

	for i, day := range []int{5, 15, 45} {
		order, err := trade.NewOrder(int64(900+i), client.ID,
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day),
			decimal.NewFromInt(500))
		require.NoError(t, err)
		require.NoError(t, db.Create(order).Error)
	}

	t.Run("orders between is half open", func(t *testing.T) {
		from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

		orders, err := repo.OrdersBetween(ctx, from, to)
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("client stats", func(t *testing.T) {
		stats, err := repo.ClientStats(ctx, time.Now().Add(time.Hour))
		require.NoError(t, err)
		require.Len(t, stats, 1)
		assert.False(t, stats[0].CreatedAt.IsZero())

		stats, err = repo.ClientStats(ctx, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Empty(t, stats)
	})
}

func TestTxManager(t *testing.T) {
	db := newTestDB(t)
	txm := NewTxManager(db)
	repo := NewGormClientRepository(db)
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		client := mustNewClient(t, "Tx Commit", "500000001")
		err := txm.Do(ctx, func(ctx context.Context) error {
			return repo.Save(ctx, client)
		})
		require.NoError(t, err)

		_, err = repo.FindByUNP(ctx, "500000001")
		assert.NoError(t, err)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		client := mustNewClient(t, "Tx Rollback", "500000002")
		err := txm.Do(ctx, func(ctx context.Context) error {
			if err := repo.Save(ctx, client); err != nil {
				return err
			}
			return errors.New("boom")
		})
		require.Error(t, err)

		_, err = repo.FindByUNP(ctx, "500000002")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
