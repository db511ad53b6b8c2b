package transaction

import (
	"context"
	"fmt"

	"github.com/wanjiru-dev/church-ledger/internal/domain/entity"
	errs "github.com/wanjiru-dev/church-ledger/internal/domain/error"
)

// Complete performs the PENDING -> COMPLETED lifecycle transition.
//
// The transition happens exactly once per transaction: a second call fails
// with ErrAlreadyCompleted rather than succeeding as a no-op. The receipt is
// rendered and stored before the status flips, so a render failure leaves the
// record untouched, and the status flip itself is a conditional update that
// loses cleanly when another caller completes the same record first.
//
// Any authenticated actor may complete any transaction; ownership is not
// re-checked here.
func (s *Service) Complete(ctx context.Context, id uint64, actor entity.Actor) (*entity.Transaction, error) {
	txn, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Fast-path guard. The conditional update below closes the race this
	// check leaves open.
	if !txn.IsPending() {
		return nil, errs.NewTransitionError(txn.ID, string(txn.Status), errs.ErrAlreadyCompleted)
	}

	ref, err := s.generateReceipt(ctx, txn)
	if err != nil {
		s.logger.Error("Receipt generation failed", map[string]any{
			"transaction_id": txn.ID,
			"error":          err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrReceiptRender, err.Error())
	}

	now := s.timeProvider.Now()
	if err := s.repo.MarkCompleted(ctx, txn.ID, ref, now); err != nil {
		if errs.IsAlreadyCompletedError(err) {
			// Lost the race to a concurrent completion. The document stored
			// above is orphaned; log it so it can be cleaned up.
			s.logger.Warn("Concurrent completion detected", map[string]any{
				"transaction_id":   txn.ID,
				"orphaned_receipt": ref,
			})
		}
		return nil, err
	}

	txn.Receipt = ref
	txn.Status = entity.StatusCompleted
	txn.UpdatedAt = now

	s.logger.Info("Transaction completed", map[string]any{
		"transaction_id": txn.ID,
		"receipt":        ref,
		"actor_profile":  actor.ProfileID,
	})

	// Best effort confirmation SMS. Runs detached from the request so slow
	// or failing dispatch never affects the caller's response.
	if txn.PhoneNumber != "" {
		go s.notifyCompletion(txn)
	}

	return txn, nil
}

// generateReceipt renders the receipt document under a bounded timeout and
// persists it, returning the stored document's reference
func (s *Service) generateReceipt(ctx context.Context, txn *entity.Transaction) (string, error) {
	renderCtx, cancel := s.timeProvider.WithTimeout(ctx, s.renderTimeout)
	defer cancel()

	doc, err := s.renderer.Render(renderCtx, txn)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}

	ref, err := s.receipts.Save(renderCtx, txn.ID, doc)
	if err != nil {
		return "", fmt.Errorf("store: %w", err)
	}
	return ref, nil
}

// notifyCompletion sends the confirmation SMS. Failures are logged and
// swallowed; they never roll back the completed transition.
func (s *Service) notifyCompletion(txn *entity.Transaction) {
	ctx, cancel := s.timeProvider.WithTimeout(context.Background(), s.smsTimeout)
	defer cancel()

	message := fmt.Sprintf(
		"Dear %s, your %s contribution of KES %s has been received. Receipt no. %d. Thank you.",
		txn.MemberName, txn.Category.Display(), txn.Amount, txn.ID,
	)

	if err := s.sms.Send(ctx, txn.PhoneNumber, message); err != nil {
		s.logger.Warn("SMS notification failed", map[string]any{
			"transaction_id": txn.ID,
			"phone_number":   txn.PhoneNumber,
			"error":          err.Error(),
		})
		return
	}

	s.logger.Debug("SMS notification sent", map[string]any{
		"transaction_id": txn.ID,
	})
}
