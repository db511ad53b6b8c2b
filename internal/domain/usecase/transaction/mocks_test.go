package transaction

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/wanjiru-dev/church-ledger/internal/domain/entity"
	errs "github.com/wanjiru-dev/church-ledger/internal/domain/error"
	"github.com/stretchr/testify/mock"
)

// mockTransactionRepo is a testify mock for persistence.TransactionRepository
type mockTransactionRepo struct {
	mock.Mock
}

func (m *mockTransactionRepo) Create(ctx context.Context, txn *entity.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *mockTransactionRepo) GetByID(ctx context.Context, id uint64) (*entity.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) ListAll(ctx context.Context) ([]*entity.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) ListByProfile(ctx context.Context, profileID uint64) ([]*entity.Transaction, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) MarkCompleted(ctx context.Context, id uint64, receipt string, at time.Time) error {
	args := m.Called(ctx, id, receipt, at)
	return args.Error(0)
}

func (m *mockTransactionRepo) GetByMpesaRef(ctx context.Context, ref string) (*entity.Transaction, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) Stats(ctx context.Context) (*entity.TransactionStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TransactionStats), args.Error(1)
}

// mockRenderer is a testify mock for external.ReceiptRenderer
type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) Render(ctx context.Context, txn *entity.Transaction) ([]byte, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// mockReceiptStore is a testify mock for external.ReceiptStore
type mockReceiptStore struct {
	mock.Mock
}

func (m *mockReceiptStore) Save(ctx context.Context, transactionID uint64, document []byte) (string, error) {
	args := m.Called(ctx, transactionID, document)
	return args.String(0), args.Error(1)
}

func (m *mockReceiptStore) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// mockSMS records sends and signals when a dispatch lands, since
// notification runs on a detached goroutine
type mockSMS struct {
	mu     sync.Mutex
	sent   []string
	err    error
	signal chan struct{}
}

func newMockSMS(err error) *mockSMS {
	return &mockSMS{err: err, signal: make(chan struct{}, 1)}
}

func (m *mockSMS) Send(ctx context.Context, phoneNumber, message string) error {
	m.mu.Lock()
	m.sent = append(m.sent, phoneNumber+": "+message)
	m.mu.Unlock()
	select {
	case m.signal <- struct{}{}:
	default:
	}
	return m.err
}

func (m *mockSMS) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// fixedClock is a TimeProvider pinned to one instant
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time                  { return c.now }
func (c fixedClock) Since(t time.Time) time.Duration { return c.now.Sub(t) }
func (c fixedClock) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// stubLogger satisfies core.Logger without output
type stubLogger struct{}

func (stubLogger) Debug(string, map[string]any) {}
func (stubLogger) Info(string, map[string]any)  {}
func (stubLogger) Warn(string, map[string]any)  {}
func (stubLogger) Error(string, map[string]any) {}
func (stubLogger) Flush() error                 { return nil }

// memoryRepo is an in-memory repository with real conditional-update
// semantics, used by the concurrency test
type memoryRepo struct {
	mu   sync.Mutex
	txns map[uint64]*entity.Transaction
}

func newMemoryRepo(txns ...*entity.Transaction) *memoryRepo {
	r := &memoryRepo{txns: make(map[uint64]*entity.Transaction)}
	for _, t := range txns {
		cp := *t
		r.txns[t.ID] = &cp
	}
	return r
}

func (r *memoryRepo) Create(_ context.Context, txn *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	txn.ID = uint64(len(r.txns) + 1)
	cp := *txn
	r.txns[txn.ID] = &cp
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uint64) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	txn, ok := r.txns[id]
	if !ok {
		return nil, errs.ErrTransactionNotFound
	}
	cp := *txn
	return &cp, nil
}

func (r *memoryRepo) ListAll(context.Context) ([]*entity.Transaction, error) { return nil, nil }

func (r *memoryRepo) ListByProfile(context.Context, uint64) ([]*entity.Transaction, error) {
	return nil, nil
}

func (r *memoryRepo) MarkCompleted(_ context.Context, id uint64, receipt string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	txn, ok := r.txns[id]
	if !ok {
		return errs.ErrTransactionNotFound
	}
	if txn.Status != entity.StatusPending {
		return errs.ErrAlreadyCompleted
	}
	txn.Status = entity.StatusCompleted
	txn.Receipt = receipt
	txn.UpdatedAt = at
	return nil
}

func (r *memoryRepo) GetByMpesaRef(context.Context, string) (*entity.Transaction, error) {
	return nil, errs.ErrTransactionNotFound
}

func (r *memoryRepo) Stats(context.Context) (*entity.TransactionStats, error) { return nil, nil }
