package entity

import (
	"time"

	errs "github.com/wanjiru-dev/church-ledger/internal/domain/error"
	coreport "github.com/wanjiru-dev/church-ledger/internal/domain/port/core"
)

// Category represents the kind of contribution being recorded
type Category string

// Contribution categories
const (
	CategoryTithe    Category = "TITHE"
	CategoryOffering Category = "OFFERING"
	CategoryBuilding Category = "BUILDING"
)

// PaymentType represents how a contribution was paid
type PaymentType string

// Payment types
const (
	PaymentCash  PaymentType = "CASH"
	PaymentMpesa PaymentType = "MPESA"
)

// Status defines the lifecycle state of a transaction
type Status string

// Lifecycle states. A transaction starts PENDING and moves to COMPLETED
// exactly once; there is no transition back.
const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
)

// Display returns the human-readable label for the category
func (c Category) Display() string {
	switch c {
	case CategoryTithe:
		return "Tithe"
	case CategoryOffering:
		return "Offering"
	case CategoryBuilding:
		return "Church Building"
	default:
		return string(c)
	}
}

// Display returns the human-readable label for the payment type
func (p PaymentType) Display() string {
	switch p {
	case PaymentCash:
		return "Cash"
	case PaymentMpesa:
		return "M-Pesa"
	default:
		return string(p)
	}
}

// Display returns the human-readable label for the status
func (s Status) Display() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// Transaction represents a single recorded contribution
type Transaction struct {
	ID            uint64      // Unique identifier for the transaction
	MemberName    string      // Name of the contributing member (free text)
	PhoneNumber   string      // Optional unless the payment type requires it
	Amount        string      // Amount as a string with 2 decimal places
	AmountInCents int64       // Amount converted to cents for precise calculations
	Category      Category    // Kind of contribution
	PaymentType   PaymentType // How the contribution was paid
	Status        Status      // Lifecycle state
	Receipt       string      // Reference to the stored receipt document, empty until completed
	MpesaRef      string      // Provider transaction id for M-Pesa contributions, empty otherwise
	RecordedBy    *uint64     // Profile that recorded this transaction, nil if the owner was deleted
	CreatedAt     time.Time   // When the transaction was created
	UpdatedAt     time.Time   // When the transaction was last updated

	// RecordedByName is the recorder's display name, filled in by the
	// repository when loading. Empty for gateway-originated records.
	RecordedByName string
}

// NewTransaction creates a new pending transaction with full validation
func NewTransaction(
	memberName string,
	phoneNumber string,
	amount string,
	category string,
	paymentType string,
	recordedBy uint64,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if memberName == "" {
		return nil, errs.NewValidationError("member_name", errs.ErrMemberNameRequired)
	}
	if !IsValidCategory(category) {
		return nil, errs.NewValidationError("category", errs.ErrInvalidCategory)
	}
	if !IsValidPaymentType(paymentType) {
		return nil, errs.NewValidationError("payment_type", errs.ErrInvalidPaymentType)
	}

	// Phone number is required for M-Pesa so the confirmation SMS can be sent.
	// This rule is enforced at creation only, never re-checked later.
	if PaymentType(paymentType) == PaymentMpesa && phoneNumber == "" {
		return nil, errs.NewValidationError("phone_number", errs.ErrPhoneRequired)
	}

	amountInCents, err := ValidateAndConvertAmount(amount)
	if err != nil {
		return nil, errs.NewValidationError("amount", err)
	}

	now := timeProvider.Now()
	return &Transaction{
		MemberName:    memberName,
		PhoneNumber:   phoneNumber,
		Amount:        EnsureTwoDecimalPlaces(amount),
		AmountInCents: amountInCents,
		Category:      Category(category),
		PaymentType:   PaymentType(paymentType),
		Status:        StatusPending,
		RecordedBy:    &recordedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// IsPending reports whether the transaction is still awaiting completion
func (t *Transaction) IsPending() bool {
	return t.Status == StatusPending
}

// MarkCompleted transitions the transaction to COMPLETED with its receipt
// reference. Receipt and status change together; a transaction that is not
// pending cannot be completed again.
func (t *Transaction) MarkCompleted(receipt string, timeProvider coreport.TimeProvider) error {
	if t.Status != StatusPending {
		return errs.NewTransitionError(t.ID, string(t.Status), errs.ErrAlreadyCompleted)
	}
	t.Receipt = receipt
	t.Status = StatusCompleted
	t.UpdatedAt = timeProvider.Now()
	return nil
}

// OwnedBy reports whether the transaction is owned by the given profile
func (t *Transaction) OwnedBy(profileID uint64) bool {
	return t.RecordedBy != nil && *t.RecordedBy == profileID
}

// IsValidCategory validates if the category is allowed
func IsValidCategory(category string) bool {
	return category == string(CategoryTithe) ||
		category == string(CategoryOffering) ||
		category == string(CategoryBuilding)
}

// IsValidPaymentType validates if the payment type is allowed
func IsValidPaymentType(paymentType string) bool {
	return paymentType == string(PaymentCash) || paymentType == string(PaymentMpesa)
}
