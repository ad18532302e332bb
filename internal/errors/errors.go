package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application.
// The promotion-specific errors mirror the checkout taxonomy: they are
// all non-fatal and callers degrade to a neutral cart state instead of
// aborting the request.
var (
	ErrNotFound         = new(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists    = new(ErrCodeAlreadyExists, "resource already exists")
	ErrValidation       = new(ErrCodeValidation, "validation error")
	ErrInvalidOperation = new(ErrCodeInvalidOperation, "invalid operation")
	ErrHTTPClient       = new(ErrCodeHTTPClient, "http client error")
	ErrDatabase         = new(ErrCodeDatabase, "database error")
	ErrSystem           = new(ErrCodeSystemError, "system error")

	// Voucher lookup failures
	ErrInvalidCode        = new(ErrCodeInvalidCode, "promotion code is not valid")
	ErrExpiredCode        = new(ErrCodeExpiredCode, "promotion code has expired")
	ErrUsageLimitExceeded = new(ErrCodeUsageLimitExceeded, "promotion code usage limit reached")

	// Promotion condition failures
	ErrConditionNotMet        = new(ErrCodeConditionNotMet, "promotion condition not met")
	ErrNoGiftProductAvailable = new(ErrCodeNoGiftProductAvailable, "no gift product available")
	ErrInsufficientGiftStock  = new(ErrCodeInsufficientGiftStock, "insufficient gift stock")
	ErrDistrictNotAllowed     = new(ErrCodeDistrictNotAllowed, "shipping district not covered by promotion")
	ErrCombinationNotAllowed  = new(ErrCodeCombinationNotAllowed, "voucher combination not allowed")

	// Checkout failures
	ErrShippingUnavailable = new(ErrCodeShippingUnavailable, "no shipping fee configured for this region")
	ErrInsufficientPoints  = new(ErrCodeInsufficientPoints, "not enough loyalty points")

	// Bounded-issuance campaign failures
	ErrCampaignExhausted = new(ErrCodeCampaignExhausted, "campaign vouchers are exhausted")
	ErrUserLimitReached  = new(ErrCodeUserLimitReached, "user limit for this campaign reached")

	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrHTTPClient:             http.StatusInternalServerError,
		ErrDatabase:               http.StatusInternalServerError,
		ErrSystem:                 http.StatusInternalServerError,
		ErrNotFound:               http.StatusNotFound,
		ErrAlreadyExists:          http.StatusConflict,
		ErrValidation:             http.StatusBadRequest,
		ErrInvalidOperation:       http.StatusBadRequest,
		ErrInvalidCode:            http.StatusUnprocessableEntity,
		ErrExpiredCode:            http.StatusUnprocessableEntity,
		ErrUsageLimitExceeded:     http.StatusUnprocessableEntity,
		ErrConditionNotMet:        http.StatusUnprocessableEntity,
		ErrNoGiftProductAvailable: http.StatusUnprocessableEntity,
		ErrInsufficientGiftStock:  http.StatusUnprocessableEntity,
		ErrDistrictNotAllowed:     http.StatusUnprocessableEntity,
		ErrCombinationNotAllowed:  http.StatusUnprocessableEntity,
		ErrShippingUnavailable:    http.StatusUnprocessableEntity,
		ErrInsufficientPoints:     http.StatusUnprocessableEntity,
		ErrCampaignExhausted:      http.StatusConflict,
		ErrUserLimitReached:       http.StatusConflict,
	}
)

const (
	ErrCodeHTTPClient       = "http_client_error"
	ErrCodeSystemError      = "system_error"
	ErrCodeNotFound         = "not_found"
	ErrCodeAlreadyExists    = "already_exists"
	ErrCodeValidation       = "validation_error"
	ErrCodeInvalidOperation = "invalid_operation"
	ErrCodeDatabase         = "database_error"

	ErrCodeInvalidCode            = "invalid_code"
	ErrCodeExpiredCode            = "expired_code"
	ErrCodeUsageLimitExceeded     = "usage_limit_exceeded"
	ErrCodeConditionNotMet        = "condition_not_met"
	ErrCodeNoGiftProductAvailable = "no_gift_product_available"
	ErrCodeInsufficientGiftStock  = "insufficient_gift_stock"
	ErrCodeDistrictNotAllowed     = "district_not_allowed"
	ErrCodeCombinationNotAllowed  = "combination_not_allowed"
	ErrCodeShippingUnavailable    = "shipping_unavailable"
	ErrCodeInsufficientPoints     = "insufficient_points"
	ErrCodeCampaignExhausted      = "campaign_exhausted"
	ErrCodeUserLimitReached       = "user_limit_reached"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

// new creates a new InternalError
func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsPromotionError reports whether the error belongs to the
// promotion/checkout taxonomy, i.e. callers should degrade to the
// neutral cart state rather than fail the request.
func IsPromotionError(err error) bool {
	for _, sentinel := range []error{
		ErrInvalidCode,
		ErrExpiredCode,
		ErrUsageLimitExceeded,
		ErrConditionNotMet,
		ErrNoGiftProductAvailable,
		ErrInsufficientGiftStock,
		ErrDistrictNotAllowed,
		ErrCombinationNotAllowed,
		ErrShippingUnavailable,
		ErrInsufficientPoints,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}
