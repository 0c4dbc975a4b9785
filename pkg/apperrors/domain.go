package apperrors

import (
	"net/http"
)

// Factories and predefined variables for domain-level errors shared
// across services.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound and
// friends) into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409 AppError.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus is used when a workflow transition is not allowed from
// the current state.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// --- Auth & account status ---

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrAccountDeactivated = New(
	CodeForbidden,
	"auth",
	"Your account has been deactivated",
	http.StatusForbidden,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

var ErrCannotModifySelf = New(
	CodeForbidden,
	"business_logic",
	"Operation on self is not allowed",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Profile workflow ---

// ErrProfileIncomplete carries the missing-field list in Details; callers
// attach it via WithDetails.
func ErrProfileIncomplete(missing []string) *AppError {
	return New(
		CodeValidationFailed,
		"profile",
		"Profile is incomplete and cannot be submitted for review",
		http.StatusBadRequest,
	).WithDetails(map[string]interface{}{"missing_fields": missing})
}

var ErrProfileNotPendingReview = New(
	CodeInvalidStatus,
	"profile",
	"Profile is not pending review",
	http.StatusConflict,
)

var ErrProfileAlreadySubmitted = New(
	CodeInvalidStatus,
	"profile",
	"Profile has already been submitted or approved",
	http.StatusConflict,
)

// --- Uploads & files ---

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusBadRequest,
)

var ErrUnsupportedFileType = New(
	CodeValidationFailed,
	"validation",
	"File type is not allowed",
	http.StatusBadRequest,
)

// --- Billing ---

var ErrWebhookSignature = New(
	CodeUnauthorized,
	"billing",
	"Webhook signature verification failed",
	http.StatusBadRequest,
)

var ErrNoBillingAccount = New(
	CodeInvalidOperation,
	"billing",
	"User has no billing account",
	http.StatusBadRequest,
)
