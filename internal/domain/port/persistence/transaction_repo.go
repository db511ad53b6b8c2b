package persistence

import (
	"context"
	"time"

	"github.com/wanjiru-dev/church-ledger/internal/domain/entity"
)

// TransactionRepository defines essential methods to interact with transaction data
type TransactionRepository interface {
	// Create saves a new transaction and fills in its generated ID
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// GetByID retrieves a transaction by its primary key
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction with the given ID exists
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.Transaction, error)

	// ListAll returns every transaction, newest first
	ListAll(ctx context.Context) ([]*entity.Transaction, error)

	// ListByProfile returns transactions recorded by the given profile, newest first
	ListByProfile(ctx context.Context, profileID uint64) ([]*entity.Transaction, error)

	// MarkCompleted performs the guarded PENDING -> COMPLETED transition as a
	// single conditional update: status and receipt change together, and the
	// update only applies while the row is still pending. Two concurrent
	// calls on the same ID therefore resolve to exactly one success.
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction with the given ID exists
	// - ErrAlreadyCompleted: If the transaction is no longer pending
	// - ErrDatabaseConnection: If database connection fails
	MarkCompleted(ctx context.Context, id uint64, receipt string, at time.Time) error

	// GetByMpesaRef retrieves a transaction by its provider transaction id.
	// Used for idempotency checking on the M-Pesa callback.
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction carries the given reference
	// - ErrDatabaseConnection: If database connection fails
	GetByMpesaRef(ctx context.Context, ref string) (*entity.Transaction, error)

	// Stats computes the aggregate counts and sums by category and status
	Stats(ctx context.Context) (*entity.TransactionStats, error)
}
