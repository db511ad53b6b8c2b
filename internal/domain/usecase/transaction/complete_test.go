package transaction

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/wanjiru-dev/church-ledger/internal/domain/entity"
	errs "github.com/wanjiru-dev/church-ledger/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

func pendingTransaction(id uint64, phone string) *entity.Transaction {
	owner := uint64(7)
	return &entity.Transaction{
		ID:            id,
		MemberName:    "Jane Wambui",
		PhoneNumber:   phone,
		Amount:        "500.00",
		AmountInCents: 50000,
		Category:      entity.CategoryTithe,
		PaymentType:   entity.PaymentCash,
		Status:        entity.StatusPending,
		RecordedBy:    &owner,
		CreatedAt:     fixedTime,
		UpdatedAt:     fixedTime,
	}
}

func completedTransaction(id uint64) *entity.Transaction {
	txn := pendingTransaction(id, "")
	txn.Status = entity.StatusCompleted
	txn.Receipt = "receipts/existing.pdf"
	return txn
}

func newTestService(repo *mockTransactionRepo, renderer *mockRenderer, store *mockReceiptStore, sms *mockSMS) *Service {
	return NewService(repo, renderer, store, sms, fixedClock{now: fixedTime}, stubLogger{})
}

func TestComplete(t *testing.T) {
	ctx := context.Background()
	actor := entity.Actor{ProfileID: 7, Role: entity.RoleFinance}

	t.Run("Pending transaction completes with receipt", func(t *testing.T) {
		repo := new(mockTransactionRepo)
		renderer := new(mockRenderer)
		store := new(mockReceiptStore)
		sms := newMockSMS(nil)
		svc := newTestService(repo, renderer, store, sms)

		txn := pendingTransaction(42, "")
		doc := []byte("%PDF-1.4 receipt")

		repo.On("GetByID", mock.Anything, uint64(42)).Return(txn, nil).Once()
		renderer.On("Render", mock.Anything, txn).Return(doc, nil).Once()
		store.On("Save", mock.Anything, uint64(42), doc).Return("receipts/42.pdf", nil).Once()
		repo.On("MarkCompleted", mock.Anything, uint64(42), "receipts/42.pdf", fixedTime).Return(nil).Once()

		result, err := svc.Complete(ctx, 42, actor)

		require.NoError(t, err)
		assert.Equal(t, entity.StatusCompleted, result.Status)
		assert.Equal(t, "receipts/42.pdf", result.Receipt)
		repo.AssertExpectations(t)
		renderer.AssertExpectations(t)
		store.AssertExpectations(t)
		// No phone number, so no SMS attempt
		assert.Equal(t, 0, sms.sentCount())
	})

	t.Run("Completion sends the confirmation SMS when a phone is present", func(t *testing.T) {
		repo := new(mockTransactionRepo)
		renderer := new(mockRenderer)
		store := new(mockReceiptStore)
		sms := newMockSMS(nil)
		svc := newTestService(repo, renderer, store, sms)

		txn := pendingTransaction(42, "+254712345678")

		repo.On("GetByID", mock.Anything, uint64(42)).Return(txn, nil).Once()
		renderer.On("Render", mock.Anything, txn).Return([]byte("doc"), nil).Once()
		store.On("Save", mock.Anything, uint64(42), []byte("doc")).Return("receipts/42.pdf", nil).Once()
		repo.On("MarkCompleted", mock.Anything, uint64(42), "receipts/42.pdf", fixedTime).Return(nil).Once()

		_, err := svc.Complete(ctx, 42, actor)
		require.NoError(t, err)

		select {
		case <-sms.signal:
		case <-time.After(2 * time.Second):
			t.Fatal("expected an SMS dispatch")
		}
		assert.Equal(t, 1, sms.sentCount())
	})

	t.Run("Missing transaction fails with not found", func(t *testing.T) {
		repo := new(mockTransactionRepo)
		svc := newTestService(repo, new(mockRenderer), new(mockReceiptStore), newMockSMS(nil))

		repo.On("GetByID", mock.Anything, uint64(99)).Return(nil, errs.ErrTransactionNotFound).Once()

		result, err := svc.Complete(ctx, 99, actor)

		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
		assert.Nil(t, result)
	})

	t.Run("Completing twice fails and leaves state unchanged", func(t *testing.T) {
		repo := new(mockTransactionRepo)
		renderer := new(mockRenderer)
		svc := newTestService(repo, renderer, new(mockReceiptStore), newMockSMS(nil))

		repo.On("GetByID", mock.Anything, uint64(42)).Return(completedTransaction(42), nil).Once()

		result, err := svc.Complete(ctx, 42, actor)

		assert.ErrorIs(t, err, errs.ErrAlreadyCompleted)
		assert.Nil(t, result)
		// Neither the renderer nor the store is touched
		renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Render failure is terminal and leaves the record untouched", func(t *testing.T) {
		repo := new(mockTransactionRepo)
		renderer := new(mockRenderer)
		store := new(mockReceiptStore)
		sms := newMockSMS(nil)
		svc := newTestService(repo, renderer, store, sms)

		txn := pendingTransaction(42, "+254712345678")

		repo.On("GetByID", mock.Anything, uint64(42)).Return(txn, nil).Once()
		renderer.On("Render", mock.Anything, txn).Return(nil, errors.New("template error")).Once()

		result, err := svc.Complete(ctx, 42, actor)

		assert.ErrorIs(t, err, errs.ErrReceiptRender)
		assert.Nil(t, result)
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, 0, sms.sentCount())
	})

	t.Run("Store failure is terminal", func(t *testing.T) {
		repo := new(mockTransactionRepo)
		renderer := new(mockRenderer)
		store := new(mockReceiptStore)
		svc := newTestService(repo, renderer, store, newMockSMS(nil))

		txn := pendingTransaction(42, "")

		repo.On("GetByID", mock.Anything, uint64(42)).Return(txn, nil).Once()
		renderer.On("Render", mock.Anything, txn).Return([]byte("doc"), nil).Once()
		store.On("Save", mock.Anything, uint64(42), []byte("doc")).Return("", errors.New("disk full")).Once()

		_, err := svc.Complete(ctx, 42, actor)

		assert.ErrorIs(t, err, errs.ErrReceiptRender)
		repo.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("SMS failure is swallowed", func(t *testing.T) {
		repo := new(mockTransactionRepo)
		renderer := new(mockRenderer)
		store := new(mockReceiptStore)
		sms := newMockSMS(errors.New("gateway unreachable"))
		svc := newTestService(repo, renderer, store, sms)

		txn := pendingTransaction(42, "+254712345678")

		repo.On("GetByID", mock.Anything, uint64(42)).Return(txn, nil).Once()
		renderer.On("Render", mock.Anything, txn).Return([]byte("doc"), nil).Once()
		store.On("Save", mock.Anything, uint64(42), []byte("doc")).Return("receipts/42.pdf", nil).Once()
		repo.On("MarkCompleted", mock.Anything, uint64(42), "receipts/42.pdf", fixedTime).Return(nil).Once()

		result, err := svc.Complete(ctx, 42, actor)

		require.NoError(t, err)
		assert.Equal(t, entity.StatusCompleted, result.Status)

		select {
		case <-sms.signal:
		case <-time.After(2 * time.Second):
			t.Fatal("expected an SMS dispatch attempt")
		}
	})

	t.Run("Concurrent completion loses the conditional update", func(t *testing.T) {
		repo := new(mockTransactionRepo)
		renderer := new(mockRenderer)
		store := new(mockReceiptStore)
		svc := newTestService(repo, renderer, store, newMockSMS(nil))

		txn := pendingTransaction(42, "")

		repo.On("GetByID", mock.Anything, uint64(42)).Return(txn, nil).Once()
		renderer.On("Render", mock.Anything, txn).Return([]byte("doc"), nil).Once()
		store.On("Save", mock.Anything, uint64(42), []byte("doc")).Return("receipts/42.pdf", nil).Once()
		repo.On("MarkCompleted", mock.Anything, uint64(42), "receipts/42.pdf", fixedTime).
			Return(errs.ErrAlreadyCompleted).Once()

		result, err := svc.Complete(ctx, 42, actor)

		assert.ErrorIs(t, err, errs.ErrAlreadyCompleted)
		assert.Nil(t, result)
	})
}

func TestCompleteRace(t *testing.T) {
	// Two simultaneous completions of the same pending transaction must
	// resolve to exactly one success and one already-completed failure.
	ctx := context.Background()
	actor := entity.Actor{ProfileID: 7, Role: entity.RoleFinance}

	repo := newMemoryRepo(pendingTransaction(1, ""))

	renderer := new(mockRenderer)
	renderer.On("Render", mock.Anything, mock.Anything).Return([]byte("doc"), nil)
	store := new(mockReceiptStore)
	store.On("Save", mock.Anything, uint64(1), []byte("doc")).Return("receipts/1.pdf", nil)

	svc := NewService(repo, renderer, store, newMockSMS(nil), fixedClock{now: fixedTime}, stubLogger{})

	const attempts = 2
	results := make([]error, attempts)
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := svc.Complete(ctx, 1, actor)
			results[i] = err
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errs.IsAlreadyCompletedError(err):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)

	final, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, final.Status)
	assert.Equal(t, "receipts/1.pdf", final.Receipt)
}
