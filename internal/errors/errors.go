package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken is returned when creating a user with an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrSelfDelete is returned when an admin attempts to delete their own account.
	ErrSelfDelete = errors.New("cannot delete your own account")
	// ErrEventNotFound is returned when an event is not found.
	ErrEventNotFound = errors.New("event not found")
	// ErrTransactionNotFound is returned when a transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrExpenseNotFound is returned when an expense is not found.
	ErrExpenseNotFound = errors.New("expense not found")
	// ErrAdminRequired is returned when a non-admin calls an admin operation.
	ErrAdminRequired = errors.New("admin access required")
	// ErrBookerRequired is returned when a non-booker calls the earnings view.
	ErrBookerRequired = errors.New("booker access only")
	// ErrBookerSaleForbidden is returned when a booker submits a sale transaction.
	ErrBookerSaleForbidden = errors.New("bookers cannot record sale transactions")
	// ErrPasswordResetRequired is returned while the first-login flag is still set.
	ErrPasswordResetRequired = errors.New("password reset required before any other action")
	// ErrInvalidRole is returned for roles outside admin/booker.
	ErrInvalidRole = errors.New("invalid role, must be admin or booker")
	// ErrInvalidCommissionStatus is returned for statuses outside pending/paid.
	ErrInvalidCommissionStatus = errors.New("invalid status, must be pending or paid")
	// ErrInvalidTransactionType is returned for types outside purchase/sale.
	ErrInvalidTransactionType = errors.New("invalid transaction type, must be purchase or sale")
	// ErrInvalidExpenseCategory is returned for categories outside the fixed set.
	ErrInvalidExpenseCategory = errors.New("invalid expense category")
	// ErrPasswordTooShort is returned when a password is under the minimum length.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Authorization failures map
// to 403, not-found to 404, conflicts to 409 and validation to 400, so the
// caller can always tell the categories apart.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrEventNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "EVENT_NOT_FOUND")
	case errors.Is(err, ErrTransactionNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TRANSACTION_NOT_FOUND")
	case errors.Is(err, ErrExpenseNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "EXPENSE_NOT_FOUND")
	case errors.Is(err, ErrAdminRequired):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ADMIN_REQUIRED")
	case errors.Is(err, ErrBookerRequired):
		return NewHTTPError(http.StatusForbidden, err.Error(), "BOOKER_REQUIRED")
	case errors.Is(err, ErrBookerSaleForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "BOOKER_SALE_FORBIDDEN")
	case errors.Is(err, ErrPasswordResetRequired):
		return NewHTTPError(http.StatusForbidden, err.Error(), "PASSWORD_RESET_REQUIRED")
	case errors.Is(err, ErrSelfDelete),
		errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrInvalidCommissionStatus),
		errors.Is(err, ErrInvalidTransactionType),
		errors.Is(err, ErrInvalidExpenseCategory),
		errors.Is(err, ErrPasswordTooShort):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
