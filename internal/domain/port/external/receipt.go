package external

import (
	"context"
	"io"

	"github.com/wanjiru-dev/church-ledger/internal/domain/entity"
)

// ReceiptRenderer renders a transaction into a receipt document.
// The lifecycle engine only needs the document bytes; template and layout
// are the renderer's concern.
type ReceiptRenderer interface {
	// Render produces the receipt document for the given transaction.
	// A render failure is terminal for the completion operation.
	Render(ctx context.Context, transaction *entity.Transaction) ([]byte, error)
}

// ReceiptStore persists rendered receipt documents and serves them back
type ReceiptStore interface {
	// Save writes the document to durable storage and returns a stable
	// reference that can later be passed to Open.
	Save(ctx context.Context, transactionID uint64, document []byte) (string, error)

	// Open returns a reader over the stored document.
	//
	// Possible errors:
	// - ErrReceiptNotFound: If no document exists under the given reference
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}
