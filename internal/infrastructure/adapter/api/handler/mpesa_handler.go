package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/wanjiru-dev/church-ledger/internal/domain/port/core"
	transactionUseCase "github.com/wanjiru-dev/church-ledger/internal/domain/usecase/transaction"
	"github.com/wanjiru-dev/church-ledger/internal/infrastructure/adapter/api/dto"
)

// MpesaHandler handles the payment gateway confirmation webhook
type MpesaHandler struct {
	transactionService *transactionUseCase.Service
	logger             coreport.Logger
}

// NewMpesaHandler creates a new M-Pesa callback handler instance
func NewMpesaHandler(
	transactionService *transactionUseCase.Service,
	logger coreport.Logger,
) *MpesaHandler {
	return &MpesaHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// Callback handles POST /api/mpesa/callback. The gateway retries on
// non-2xx responses, so replays of an already-recorded payment are
// acknowledged, not rejected.
func (h *MpesaHandler) Callback(c *gin.Context) {
	var req dto.MpesaCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid M-Pesa callback payload", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.MpesaCallbackResponse{
			ResultCode: 1,
			ResultDesc: "Rejected: " + err.Error(),
		})
		return
	}

	txn, created, err := h.transactionService.HandleMpesaCallback(c.Request.Context(), transactionUseCase.MpesaCallback{
		TransID:       req.TransID,
		TransAmount:   req.TransAmount,
		MSISDN:        req.MSISDN,
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		BillRefNumber: req.BillRefNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info("M-Pesa callback processed", map[string]any{
		"transaction_id": txn.ID,
		"trans_id":       req.TransID,
		"created":        created,
	})

	c.JSON(http.StatusOK, dto.MpesaCallbackResponse{
		ResultCode: 0,
		ResultDesc: "Accepted",
	})
}
