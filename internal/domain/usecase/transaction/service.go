package transaction

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/wanjiru-dev/church-ledger/internal/domain/authz"
	"github.com/wanjiru-dev/church-ledger/internal/domain/entity"
	errs "github.com/wanjiru-dev/church-ledger/internal/domain/error"
	"github.com/wanjiru-dev/church-ledger/internal/domain/port/core"
	"github.com/wanjiru-dev/church-ledger/internal/domain/port/external"
	"github.com/wanjiru-dev/church-ledger/internal/domain/port/persistence"
)

// Default bounds for the slow external collaborators
const (
	DefaultRenderTimeout = 15 * time.Second
	DefaultSMSTimeout    = 5 * time.Second
)

// Service owns the contribution record operations: creation, role-scoped
// listing, the PENDING -> COMPLETED lifecycle transition, receipt access,
// the M-Pesa callback, and the admin statistics view.
type Service struct {
	repo          persistence.TransactionRepository
	renderer      external.ReceiptRenderer
	receipts      external.ReceiptStore
	sms           external.SMSSender
	timeProvider  core.TimeProvider
	logger        core.Logger
	renderTimeout time.Duration
	smsTimeout    time.Duration
}

// NewService creates a transaction service
func NewService(
	repo persistence.TransactionRepository,
	renderer external.ReceiptRenderer,
	receipts external.ReceiptStore,
	sms external.SMSSender,
	timeProvider core.TimeProvider,
	logger core.Logger,
) *Service {
	return &Service{
		repo:          repo,
		renderer:      renderer,
		receipts:      receipts,
		sms:           sms,
		timeProvider:  timeProvider,
		logger:        logger,
		renderTimeout: DefaultRenderTimeout,
		smsTimeout:    DefaultSMSTimeout,
	}
}

// WithRenderTimeout overrides the bound on receipt rendering
func (s *Service) WithRenderTimeout(d time.Duration) *Service {
	if d > 0 {
		s.renderTimeout = d
	}
	return s
}

// WithSMSTimeout overrides the bound on notification dispatch
func (s *Service) WithSMSTimeout(d time.Duration) *Service {
	if d > 0 {
		s.smsTimeout = d
	}
	return s
}

// CreateInput carries the fields accepted when recording a contribution
type CreateInput struct {
	MemberName  string
	PhoneNumber string
	Amount      string
	Category    string
	PaymentType string
}

// Create records a new pending contribution owned by the actor's profile
func (s *Service) Create(ctx context.Context, input CreateInput, actor entity.Actor) (*entity.Transaction, error) {
	txn, err := entity.NewTransaction(
		input.MemberName,
		input.PhoneNumber,
		input.Amount,
		input.Category,
		input.PaymentType,
		actor.ProfileID,
		s.timeProvider,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, txn); err != nil {
		s.logger.Error("Failed to create transaction", map[string]any{
			"member_name": input.MemberName,
			"profile_id":  actor.ProfileID,
			"error":       err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Transaction created", map[string]any{
		"transaction_id": txn.ID,
		"category":       txn.Category,
		"payment_type":   txn.PaymentType,
		"profile_id":     actor.ProfileID,
	})
	return txn, nil
}

// List returns transactions visible to the actor, newest first.
// Admins see everything; everyone else sees only their own records.
func (s *Service) List(ctx context.Context, actor entity.Actor) ([]*entity.Transaction, error) {
	if authz.CanListAll(actor.Role) {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListByProfile(ctx, actor.ProfileID)
}

// Get returns a single transaction, applying the visibility policy
func (s *Service) Get(ctx context.Context, id uint64, actor entity.Actor) (*entity.Transaction, error) {
	txn, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanView(actor.Role, actor.ProfileID, txn.RecordedBy) {
		return nil, errs.ErrForbidden
	}
	return txn, nil
}

// GetReceipt streams the stored receipt document for a completed
// transaction. Returns the document reader and the suggested filename.
func (s *Service) GetReceipt(ctx context.Context, id uint64, actor entity.Actor) (io.ReadCloser, string, error) {
	txn, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if !authz.CanAccessReceipt(actor.Role, actor.ProfileID, txn.RecordedBy) {
		return nil, "", errs.ErrForbidden
	}
	if txn.Receipt == "" {
		// Still pending: the receipt does not exist yet
		return nil, "", errs.ErrReceiptNotFound
	}

	doc, err := s.receipts.Open(ctx, txn.Receipt)
	if err != nil {
		return nil, "", err
	}
	return doc, fmt.Sprintf("receipt_%d.pdf", id), nil
}

// Stats returns the admin-only aggregate view
func (s *Service) Stats(ctx context.Context, actor entity.Actor) (*entity.TransactionStats, error) {
	if !authz.CanViewStats(actor.Role) {
		return nil, errs.ErrForbidden
	}
	return s.repo.Stats(ctx)
}
