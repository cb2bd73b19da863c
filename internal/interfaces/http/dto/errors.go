package dto

import (
	"net/http"
	"strings"
)

// General error codes
const (
	ErrCodeInternal   = "INTERNAL"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeValidation = "VALIDATION_ERROR"
)

// Authentication error codes
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUserExists         = "USER_EXISTS"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "RATE_LIMITED"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall through to the prefix rules below.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeNotFound:   http.StatusNotFound,
	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeUserExists:         http.StatusConflict,

	ErrCodeRateLimited: http.StatusTooManyRequests,

	// Business rule rejections
	"CLIENT_HAS_ORDERS":          http.StatusConflict,
	"SUPPLIER_HAS_DELIVERIES":    http.StatusConflict,
	"ORDER_NUMBER_IMMUTABLE":     http.StatusBadRequest,
	"PAID_EXCEEDS_TOTAL":         http.StatusBadRequest,
	"DEFECTIVE_EXCEEDS_QUANTITY": http.StatusBadRequest,
	"WEAK_PASSWORD":              http.StatusBadRequest,
	"INVALID_RANGE":              http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unlisted codes are classified by prefix/suffix convention: *_NOT_FOUND
// is 404, MISSING_* and INVALID_* are 400, everything else is 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasSuffix(code, "_NOT_FOUND") {
		return http.StatusNotFound
	}
	if strings.HasPrefix(code, "MISSING_") || strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
