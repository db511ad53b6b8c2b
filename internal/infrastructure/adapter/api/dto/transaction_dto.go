package dto

import (
	"time"

	"github.com/wanjiru-dev/church-ledger/internal/domain/entity"
)

// CreateTransactionRequest represents the API request for recording a contribution
type CreateTransactionRequest struct {
	MemberName  string `json:"memberName" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
	Amount      string `json:"amount" binding:"required"`
	Category    string `json:"category" binding:"required,oneof=TITHE OFFERING BUILDING"`
	PaymentType string `json:"paymentType" binding:"required,oneof=CASH MPESA"`
}

// TransactionResponse represents the API view of a contribution record
type TransactionResponse struct {
	ID                 uint64    `json:"id"`
	MemberName         string    `json:"memberName"`
	PhoneNumber        string    `json:"phoneNumber,omitempty"`
	Amount             string    `json:"amount"`
	Category           string    `json:"category"`
	CategoryDisplay    string    `json:"categoryDisplay"`
	PaymentType        string    `json:"paymentType"`
	PaymentTypeDisplay string    `json:"paymentTypeDisplay"`
	Status             string    `json:"status"`
	HasReceipt         bool      `json:"hasReceipt"`
	MpesaRef           string    `json:"mpesaRef,omitempty"`
	RecordedBy         *uint64   `json:"recordedBy,omitempty"`
	RecordedByName     string    `json:"recordedByName,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// FromTransaction maps a transaction entity into its API representation.
// The storage reference of the receipt stays internal; clients only learn
// whether one exists and fetch it through the receipt endpoint.
func FromTransaction(txn *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                 txn.ID,
		MemberName:         txn.MemberName,
		PhoneNumber:        txn.PhoneNumber,
		Amount:             txn.Amount,
		Category:           string(txn.Category),
		CategoryDisplay:    txn.Category.Display(),
		PaymentType:        string(txn.PaymentType),
		PaymentTypeDisplay: txn.PaymentType.Display(),
		Status:             string(txn.Status),
		HasReceipt:         txn.Receipt != "",
		MpesaRef:           txn.MpesaRef,
		RecordedBy:         txn.RecordedBy,
		RecordedByName:     txn.RecordedByName,
		CreatedAt:          txn.CreatedAt,
		UpdatedAt:          txn.UpdatedAt,
	}
}

// FromTransactions maps a slice of transaction entities
func FromTransactions(txns []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		out = append(out, FromTransaction(txn))
	}
	return out
}

// MpesaCallbackRequest mirrors the C2B confirmation payload the payment
// gateway posts on a completed mobile payment
type MpesaCallbackRequest struct {
	TransID       string `json:"TransID" binding:"required"`
	TransAmount   string `json:"TransAmount" binding:"required"`
	MSISDN        string `json:"MSISDN" binding:"required"`
	FirstName     string `json:"FirstName"`
	MiddleName    string `json:"MiddleName"`
	LastName      string `json:"LastName"`
	BillRefNumber string `json:"BillRefNumber"`
}

// MpesaCallbackResponse is the acknowledgement format the gateway expects
type MpesaCallbackResponse struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}
