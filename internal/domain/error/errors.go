package error

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation       = 4001
	CodeInvalidAmount    = 4002
	CodePhoneRequired    = 4003
	CodePasswordMismatch = 4004
	CodeWeakPassword     = 4005
	CodeDuplicateUser    = 4006
	CodeForbidden        = 4030
	CodeNotFound         = 4040
	CodeAlreadyCompleted = 4090

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrInvalidAmount is returned when the contribution amount format is invalid
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when the contribution amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrAmountOverflow is returned when the amount is too large and would cause overflow
	ErrAmountOverflow = errors.New("amount is too large and would cause overflow")

	// ErrMemberNameRequired is returned when the member name is empty
	ErrMemberNameRequired = errors.New("member name is required")

	// ErrPhoneRequired is returned when an M-Pesa contribution has no phone number
	ErrPhoneRequired = errors.New("phone number is required for M-Pesa transactions")

	// ErrInvalidCategory is returned when the category is not one of the allowed values
	ErrInvalidCategory = errors.New("invalid contribution category")

	// ErrInvalidPaymentType is returned when the payment type is not one of the allowed values
	ErrInvalidPaymentType = errors.New("invalid payment type")

	// ErrInvalidRole is returned when the role is not one of the allowed values
	ErrInvalidRole = errors.New("invalid role")

	// ErrAlreadyCompleted is returned when completing a transaction that is not pending
	ErrAlreadyCompleted = errors.New("transaction is already completed")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrReceiptNotFound is returned when a receipt has not been generated yet
	ErrReceiptNotFound = errors.New("receipt not found")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrProfileNotFound is returned when the requested profile doesn't exist
	ErrProfileNotFound = errors.New("profile not found")

	// ErrForbidden is returned when the actor's role or ownership does not permit the operation
	ErrForbidden = errors.New("you do not have permission to perform this action")

	// ErrPasswordMismatch is returned when the two password fields differ at registration
	ErrPasswordMismatch = errors.New("password fields didn't match")

	// ErrWeakPassword is returned when the password fails the strength policy
	ErrWeakPassword = errors.New("password does not meet the strength requirements")

	// ErrDuplicateUser is returned when the username or email is already taken
	ErrDuplicateUser = errors.New("user with this username or email already exists")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrProviderRefRequired is returned when an M-Pesa callback carries no provider transaction id
	ErrProviderRefRequired = errors.New("provider transaction id is required")

	// ErrDuplicateReference is returned when a transaction with the same provider
	// reference already exists
	ErrDuplicateReference = errors.New("transaction with this provider reference already exists")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrReceiptRender is returned when the receipt document could not be produced
	ErrReceiptRender = errors.New("failed to generate receipt")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrNegativeAmount),
		errors.Is(err, ErrAmountOverflow):
		return CodeInvalidAmount
	case errors.Is(err, ErrPhoneRequired):
		return CodePhoneRequired
	case errors.Is(err, ErrPasswordMismatch):
		return CodePasswordMismatch
	case errors.Is(err, ErrWeakPassword):
		return CodeWeakPassword
	case errors.Is(err, ErrDuplicateUser):
		return CodeDuplicateUser
	case errors.Is(err, ErrAlreadyCompleted):
		return CodeAlreadyCompleted
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case IsNotFoundError(err):
		return CodeNotFound
	case IsValidationError(err):
		return CodeValidation
	default:
		return CodeInternalServer
	}
}

// HTTPStatus maps a domain error to the HTTP status code it should surface as
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case IsNotFoundError(err):
		return http.StatusNotFound
	case IsValidationError(err),
		errors.Is(err, ErrAlreadyCompleted),
		errors.Is(err, ErrDuplicateUser),
		errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ValidationError carries field-level detail for malformed input
type ValidationError struct {
	Field string
	Err   error
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "validation_error",
		"field":      e.Field,
		"error":      e.Err.Error(),
		"error_code": CodeValidation,
	}
}

// NewValidationError wraps err with the name of the offending field
func NewValidationError(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// TransitionError describes a failed lifecycle transition on a transaction
type TransitionError struct {
	TransactionID uint64
	Status        string
	Err           error
}

// Error implements the error interface for TransitionError
func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot complete transaction %d (status: %s): %v",
		e.TransactionID, e.Status, e.Err)
}

// Unwrap returns the underlying error
func (e *TransitionError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *TransitionError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "transition_error",
		"transaction_id": e.TransactionID,
		"status":         e.Status,
		"error":          e.Err.Error(),
		"error_code":     ErrorCode(e.Err),
	}
}

// NewTransitionError creates a detailed lifecycle transition error
func NewTransitionError(transactionID uint64, status string, err error) error {
	return &TransitionError{
		TransactionID: transactionID,
		Status:        status,
		Err:           err,
	}
}

// IsValidationError checks if the error is any malformed-input error
func IsValidationError(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrAmountOverflow) ||
		errors.Is(err, ErrMemberNameRequired) ||
		errors.Is(err, ErrPhoneRequired) ||
		errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrInvalidPaymentType) ||
		errors.Is(err, ErrInvalidRole) ||
		errors.Is(err, ErrPasswordMismatch) ||
		errors.Is(err, ErrWeakPassword) ||
		errors.Is(err, ErrProviderRefRequired)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrReceiptNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrProfileNotFound)
}

// IsForbiddenError checks if the error is an authorization failure
func IsForbiddenError(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsAlreadyCompletedError checks if the error is a lifecycle re-entry conflict
func IsAlreadyCompletedError(err error) bool {
	return errors.Is(err, ErrAlreadyCompleted)
}
