package dto

import "net/http"

// Transport-level error codes. Domain errors carry their own codes and are
// mapped through ErrorCodeHTTPStatus below.
const (
	ErrCodeInternal     = "INTERNAL"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeNotFound     = "NOT_FOUND"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
//
// Validation failures are 400, which includes a settlement overshooting the
// outstanding due and distributing without a registered roster; missing
// resources (including records that belong to another owner) are 404;
// duplicates and stale versions are 409; state-machine rejections are 422.
// LEDGER_INCONSISTENT surfaces as 500 since it means the stored balances
// disagree with each other.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeValidation: http.StatusBadRequest,
	ErrCodeBadRequest: http.StatusBadRequest,

	"INVALID_INPUT":            http.StatusBadRequest,
	"INVALID_OWNER":            http.StatusBadRequest,
	"INVALID_AMOUNT":           http.StatusBadRequest,
	"INVALID_LOG_TYPE":         http.StatusBadRequest,
	"INVALID_PAYMENT_TYPE":     http.StatusBadRequest,
	"INVALID_PERIOD":           http.StatusBadRequest,
	"INVALID_NAME":             http.StatusBadRequest,
	"INVALID_BUSINESS_NAME":    http.StatusBadRequest,
	"INVALID_SHAREHOLDER_NAME": http.StatusBadRequest,
	"INVALID_PERCENTAGE":       http.StatusBadRequest,
	"EXCEEDS_DUE":              http.StatusBadRequest,
	"MISSING_ROSTER":           http.StatusBadRequest,

	"UNAUTHORIZED": http.StatusUnauthorized,

	"NOT_FOUND":           http.StatusNotFound,
	"SHAREHOLDER_MISSING": http.StatusNotFound,

	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"INVALID_STATE":              http.StatusUnprocessableEntity,
	"ALREADY_SETTLED":            http.StatusUnprocessableEntity,
	"INVALID_BUSINESS_TYPE":      http.StatusUnprocessableEntity,
	"SHAREHOLDER_COUNT_MISMATCH": http.StatusUnprocessableEntity,
	"EMPTY_DISTRIBUTION":         http.StatusUnprocessableEntity,

	"LEDGER_INCONSISTENT": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
