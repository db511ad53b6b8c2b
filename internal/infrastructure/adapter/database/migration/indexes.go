package migration

import (
	coreport "github.com/wanjiru-dev/church-ledger/internal/domain/port/core"
	"gorm.io/gorm"
)

// IndexManager manages PostgreSQL-specific indexes
type IndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewIndexManager creates a new index manager
func NewIndexManager(db *gorm.DB, logger coreport.Logger) *IndexManager {
	return &IndexManager{
		db:     db,
		logger: logger,
	}
}

// CreateIndexes creates the indexes the query paths rely on
func (m *IndexManager) CreateIndexes() error {
	m.logger.Info("Creating database indexes", nil)

	// Partial unique index on mpesa_ref backs gateway callback idempotency.
	// Staff-recorded rows leave the column blank, so the predicate keeps
	// them out of the uniqueness check.
	if err := m.db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_mpesa_ref
		ON transactions (mpesa_ref)
		WHERE mpesa_ref <> ''
	`).Error; err != nil {
		m.logger.Error("Failed to create unique index on mpesa_ref", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Listing is always newest first
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_transactions_created_at_desc
		ON transactions (created_at DESC)
	`).Error; err != nil {
		m.logger.Error("Failed to create index on created_at", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Finance users list only their own records
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_transactions_recorded_by_created_at
		ON transactions (recorded_by, created_at DESC)
	`).Error; err != nil {
		m.logger.Error("Failed to create composite index on recorded_by", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// The completion guard updates by id while still pending; a partial
	// index keeps the pending subset cheap to probe
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_transactions_pending
		ON transactions (id)
		WHERE status = 'PENDING'
	`).Error; err != nil {
		m.logger.Error("Failed to create partial index on pending transactions", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	return nil
}
