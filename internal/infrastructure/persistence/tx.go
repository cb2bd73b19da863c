package persistence

import (
	"context"

	"github.com/tradeboard/backend/internal/domain/shared"
	"gorm.io/gorm"
)

type txKey struct{}

// TxManager implements shared.TransactionManager on top of GORM.
// The transactional handle travels in the context, so repositories
// join an open transaction without knowing about it.
type TxManager struct {
	db *gorm.DB
}

// NewTxManager creates a new TxManager
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Do runs fn inside a database transaction, committing on nil and
// rolling back on error
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFromContext returns the transaction bound to ctx, or the fallback
// connection when none is open
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}

// Ensure interface compliance
var _ shared.TransactionManager = (*TxManager)(nil)
