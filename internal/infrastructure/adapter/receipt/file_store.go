package receipt

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	errs "github.com/wanjiru-dev/church-ledger/internal/domain/error"
	coreport "github.com/wanjiru-dev/church-ledger/internal/domain/port/core"
)

// FileStore persists rendered receipts on the local filesystem. References
// carry a random component so receipt URLs cannot be enumerated.
type FileStore struct {
	baseDir string
	logger  coreport.Logger
}

// NewFileStore creates a file-backed receipt store rooted at baseDir
func NewFileStore(baseDir string, logger coreport.Logger) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create receipt directory: %w", err)
	}
	return &FileStore{
		baseDir: baseDir,
		logger:  logger,
	}, nil
}

// Save writes the rendered document and returns its storage reference
func (s *FileStore) Save(ctx context.Context, txnID uint64, doc []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ref := fmt.Sprintf("receipt_%d_%s.pdf", txnID, uuid.NewString())
	path := filepath.Join(s.baseDir, ref)

	if err := os.WriteFile(path, doc, 0o640); err != nil {
		s.logger.Error("Failed to write receipt file", map[string]any{
			"transaction_id": txnID,
			"path":           path,
			"error":          err.Error(),
		})
		return "", fmt.Errorf("failed to write receipt: %w", err)
	}

	s.logger.Debug("Receipt stored", map[string]any{
		"transaction_id": txnID,
		"ref":            ref,
	})
	return ref, nil
}

// Open returns a reader over a previously stored receipt
func (s *FileStore) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// References are single path segments; anything else is rejected
	// before reaching the filesystem
	if ref == "" || ref != filepath.Base(ref) || strings.Contains(ref, "..") {
		return nil, errs.ErrReceiptNotFound
	}

	f, err := os.Open(filepath.Join(s.baseDir, ref))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.ErrReceiptNotFound
		}
		return nil, fmt.Errorf("failed to open receipt: %w", err)
	}
	return f, nil
}
