package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	coreport "github.com/wanjiru-dev/church-ledger/internal/domain/port/core"
	transactionUseCase "github.com/wanjiru-dev/church-ledger/internal/domain/usecase/transaction"
	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/adapter/api/middleware"
)

// TransactionHandler handles contribution-related HTTP requests
type TransactionHandler struct {
	transactionService *transactionUseCase.Service
	logger             coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(
	transactionService *transactionUseCase.Service,
	logger coreport.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// Create handles POST /api/transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid transaction request format", map[string]any{
			"error": err.Error(),
		})
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	txn, err := h.transactionService.Create(c.Request.Context(), transactionUseCase.CreateInput{
		MemberName:  req.MemberName,
		PhoneNumber: req.PhoneNumber,
		Amount:      req.Amount,
		Category:    req.Category,
		PaymentType: req.PaymentType,
	}, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromTransaction(txn))
}

// List handles GET /api/transactions
func (h *TransactionHandler) List(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	txns, err := h.transactionService.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromTransactions(txns))
}

// Get handles GET /api/transactions/:id
func (h *TransactionHandler) Get(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	id, ok := h.transactionID(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.Get(c.Request.Context(), id, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromTransaction(txn))
}

// Complete handles POST /api/transactions/:id/complete
func (h *TransactionHandler) Complete(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	id, ok := h.transactionID(c)
	if !ok {
		return
	}

	txn, err := h.transactionService.Complete(c.Request.Context(), id, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromTransaction(txn))
}

// DownloadReceipt handles GET /api/receipts/:id
func (h *TransactionHandler) DownloadReceipt(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	id, ok := h.transactionID(c)
	if !ok {
		return
	}

	reader, filename, err := h.transactionService.GetReceipt(c.Request.Context(), id, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, reader); err != nil {
		// Headers are already out; nothing left but to log it
		h.logger.Error("Failed to stream receipt", map[string]any{
			"transaction_id": id,
			"error":          err.Error(),
		})
	}
}

// Stats handles GET /api/stats
func (h *TransactionHandler) Stats(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		respondUnauthenticated(c)
		return
	}

	stats, err := h.transactionService.Stats(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *TransactionHandler) transactionID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid transaction ID format")
		return 0, false
	}
	return id, true
}
