package transaction

import (
	"context"
	"errors"
	"strings"

	"github.com/wanjiru-dev/church-ledger/internal/domain/entity"
	errs "github.com/wanjiru-dev/church-ledger/internal/domain/error"
)

// MpesaCallback carries the fields of an inbound payment-provider webhook
type MpesaCallback struct {
	TransID       string
	TransAmount   string
	MSISDN        string
	FirstName     string
	MiddleName    string
	LastName      string
	BillRefNumber string
}

// memberName joins the payer name parts, falling back to the phone number
func (c MpesaCallback) memberName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.FirstName, c.MiddleName, c.LastName} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	if len(parts) == 0 {
		return c.MSISDN
	}
	return strings.Join(parts, " ")
}

// category maps the bill reference to a contribution category, defaulting
// to OFFERING when the reference is absent or unrecognized
func (c MpesaCallback) category() string {
	ref := strings.ToUpper(strings.TrimSpace(c.BillRefNumber))
	if entity.IsValidCategory(ref) {
		return ref
	}
	return string(entity.CategoryOffering)
}

// HandleMpesaCallback records an inbound mobile-money payment as a pending
// transaction. The operation is idempotent on the provider transaction id:
// a replayed callback returns the previously created record and reports
// created=false.
func (s *Service) HandleMpesaCallback(ctx context.Context, callback MpesaCallback) (*entity.Transaction, bool, error) {
	if strings.TrimSpace(callback.TransID) == "" {
		return nil, false, errs.NewValidationError("TransID", errs.ErrProviderRefRequired)
	}

	// Replay check before doing any work
	existing, err := s.repo.GetByMpesaRef(ctx, callback.TransID)
	if err == nil {
		s.logger.Info("Duplicate M-Pesa callback ignored", map[string]any{
			"mpesa_ref":      callback.TransID,
			"transaction_id": existing.ID,
		})
		return existing, false, nil
	}
	if !errors.Is(err, errs.ErrTransactionNotFound) {
		return nil, false, err
	}

	txn, err := entity.NewTransaction(
		callback.memberName(),
		callback.MSISDN,
		callback.TransAmount,
		callback.category(),
		string(entity.PaymentMpesa),
		0,
		s.timeProvider,
	)
	if err != nil {
		return nil, false, err
	}

	// Provider payments have no recording profile
	txn.RecordedBy = nil
	txn.MpesaRef = callback.TransID

	if err := s.repo.Create(ctx, txn); err != nil {
		// A concurrent delivery of the same callback can slip past the
		// replay check; the unique index on the provider reference catches
		// it and the stored record is returned instead.
		if errors.Is(err, errs.ErrDuplicateReference) {
			existing, getErr := s.repo.GetByMpesaRef(ctx, callback.TransID)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	s.logger.Info("M-Pesa payment recorded", map[string]any{
		"transaction_id": txn.ID,
		"mpesa_ref":      callback.TransID,
		"amount":         txn.Amount,
	})
	return txn, true, nil
}
