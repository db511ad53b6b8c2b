package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wanjiru-dev/church-ledger/internal/domain/entity"
	errs "github.com/wanjiru-dev/church-ledger/internal/domain/error"
	coreport "github.com/wanjiru-dev/church-ledger/internal/domain/port/core"
	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// TransactionRepository implements the transaction persistence port using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts a transaction entity to a database model
func (r *TransactionRepository) entityToModel(transaction *entity.Transaction) model.Transaction {
	return model.Transaction{
		ID:            transaction.ID,
		MemberName:    transaction.MemberName,
		PhoneNumber:   transaction.PhoneNumber,
		Amount:        transaction.Amount,
		AmountInCents: transaction.AmountInCents,
		Category:      string(transaction.Category),
		PaymentType:   string(transaction.PaymentType),
		Status:        string(transaction.Status),
		Receipt:       transaction.Receipt,
		MpesaRef:      transaction.MpesaRef,
		RecordedBy:    transaction.RecordedBy,
		CreatedAt:     transaction.CreatedAt,
		UpdatedAt:     transaction.UpdatedAt,
	}
}

// modelToEntity converts a transaction model to an entity
func (r *TransactionRepository) modelToEntity(m *model.Transaction) *entity.Transaction {
	transaction := &entity.Transaction{
		ID:            m.ID,
		MemberName:    m.MemberName,
		PhoneNumber:   m.PhoneNumber,
		Amount:        m.Amount,
		AmountInCents: m.AmountInCents,
		Category:      entity.Category(m.Category),
		PaymentType:   entity.PaymentType(m.PaymentType),
		Status:        entity.Status(m.Status),
		Receipt:       m.Receipt,
		MpesaRef:      m.MpesaRef,
		RecordedBy:    m.RecordedBy,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	if m.RecordedByProfile != nil && m.RecordedByProfile.User != nil {
		recorder := m.RecordedByProfile.User
		name := strings.TrimSpace(recorder.FirstName + " " + recorder.LastName)
		if name == "" {
			name = recorder.Username
		}
		transaction.RecordedByName = name
	}

	return transaction
}

// Create saves a new transaction and fills in its generated ID
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	r.logger.Debug("Creating transaction", map[string]any{
		"member_name": transaction.MemberName,
		"category":    string(transaction.Category),
	})

	transactionModel := r.entityToModel(transaction)

	result := r.db.WithContext(ctx).Create(&transactionModel)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Duplicate provider reference detected", map[string]any{
				"mpesa_ref": transaction.MpesaRef,
			})
			return errs.ErrDuplicateReference
		}

		r.logger.Error("Failed to create transaction", map[string]any{
			"member_name": transaction.MemberName,
			"error":       result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	transaction.ID = transactionModel.ID

	r.logger.Info("Transaction created successfully", map[string]any{
		"transaction_id": transaction.ID,
		"category":       string(transaction.Category),
		"amount":         transaction.Amount,
	})
	return nil
}

// GetByID retrieves a transaction by its primary key
func (r *TransactionRepository) GetByID(ctx context.Context, id uint64) (*entity.Transaction, error) {
	var transactionModel model.Transaction
	result := r.db.WithContext(ctx).
		Preload("RecordedByProfile.User").
		First(&transactionModel, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			r.logger.Warn("Transaction not found", map[string]any{"transaction_id": id})
			return nil, errs.ErrTransactionNotFound
		}
		r.logger.Error("Failed to get transaction", map[string]any{
			"transaction_id": id,
			"error":          result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelToEntity(&transactionModel), nil
}

// ListAll returns every transaction, newest first
func (r *TransactionRepository) ListAll(ctx context.Context) ([]*entity.Transaction, error) {
	var models []model.Transaction
	result := r.db.WithContext(ctx).
		Preload("RecordedByProfile.User").
		Order("created_at DESC").
		Find(&models)

	if result.Error != nil {
		r.logger.Error("Failed to list transactions", map[string]any{"error": result.Error.Error()})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelsToEntities(models), nil
}

// ListByProfile returns transactions recorded by the given profile, newest first
func (r *TransactionRepository) ListByProfile(ctx context.Context, profileID uint64) ([]*entity.Transaction, error) {
	var models []model.Transaction
	result := r.db.WithContext(ctx).
		Preload("RecordedByProfile.User").
		Where("recorded_by = ?", profileID).
		Order("created_at DESC").
		Find(&models)

	if result.Error != nil {
		r.logger.Error("Failed to list transactions by profile", map[string]any{
			"profile_id": profileID,
			"error":      result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelsToEntities(models), nil
}

// MarkCompleted performs the guarded PENDING -> COMPLETED transition. The
// status predicate in the WHERE clause makes the update conditional, so
// concurrent completions of the same record resolve to exactly one winner.
func (r *TransactionRepository) MarkCompleted(ctx context.Context, id uint64, receipt string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ? AND status = ?", id, string(entity.StatusPending)).
		Updates(map[string]interface{}{
			"status":     string(entity.StatusCompleted),
			"receipt":    receipt,
			"updated_at": at,
		})

	if result.Error != nil {
		r.logger.Error("Failed to complete transaction", map[string]any{
			"transaction_id": id,
			"error":          result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	if result.RowsAffected == 0 {
		// The row is either missing or no longer pending; one more read
		// tells the two cases apart.
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Transaction{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
		}
		if count == 0 {
			return errs.ErrTransactionNotFound
		}
		r.logger.Warn("Transaction already completed", map[string]any{"transaction_id": id})
		return errs.ErrAlreadyCompleted
	}

	r.logger.Info("Transaction completed", map[string]any{
		"transaction_id": id,
		"receipt":        receipt,
	})
	return nil
}

// GetByMpesaRef retrieves a transaction by its provider transaction id
func (r *TransactionRepository) GetByMpesaRef(ctx context.Context, ref string) (*entity.Transaction, error) {
	var transactionModel model.Transaction
	result := r.db.WithContext(ctx).
		Where("mpesa_ref = ?", ref).
		First(&transactionModel)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransactionNotFound
		}
		r.logger.Error("Failed to get transaction by provider reference", map[string]any{
			"mpesa_ref": ref,
			"error":     result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelToEntity(&transactionModel), nil
}

// Stats computes the aggregate counts and sums by category and status
func (r *TransactionRepository) Stats(ctx context.Context) (*entity.TransactionStats, error) {
	stats := &entity.TransactionStats{}

	type aggregateRow struct {
		Key        string
		Count      int64
		TotalCents int64
	}

	var totals aggregateRow
	if err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("COUNT(*) AS count, COALESCE(SUM(amount_in_cents), 0) AS total_cents").
		Scan(&totals).Error; err != nil {
		r.logger.Error("Failed to compute transaction totals", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	stats.TotalCount = totals.Count
	stats.TotalAmount = entity.AmountInCentsToString(totals.TotalCents)

	var byCategory []aggregateRow
	if err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("category AS key, COUNT(*) AS count, COALESCE(SUM(amount_in_cents), 0) AS total_cents").
		Group("category").
		Order("category").
		Scan(&byCategory).Error; err != nil {
		r.logger.Error("Failed to compute category stats", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	for _, row := range byCategory {
		stats.ByCategory = append(stats.ByCategory, entity.CategoryStat{
			Category: entity.Category(row.Key),
			Count:    row.Count,
			Total:    entity.AmountInCentsToString(row.TotalCents),
		})
	}

	var byStatus []aggregateRow
	if err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("status AS key, COUNT(*) AS count, COALESCE(SUM(amount_in_cents), 0) AS total_cents").
		Group("status").
		Order("status").
		Scan(&byStatus).Error; err != nil {
		r.logger.Error("Failed to compute status stats", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	for _, row := range byStatus {
		stats.ByStatus = append(stats.ByStatus, entity.StatusStat{
			Status: entity.Status(row.Key),
			Count:  row.Count,
			Total:  entity.AmountInCentsToString(row.TotalCents),
		})
	}

	return stats, nil
}

func (r *TransactionRepository) modelsToEntities(models []model.Transaction) []*entity.Transaction {
	transactions := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		transactions = append(transactions, r.modelToEntity(&models[i]))
	}
	return transactions
}
