package aianthropic

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Abraxas-365/mailsmith/pkg/errx"
	"github.com/anthropics/anthropic-sdk-go"
)

var (
	errorRegistry = errx.NewRegistry("ANTHROPIC")

	ErrAPIRequest = errorRegistry.Register(
		"API_REQUEST_FAILED",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Failed to make request to Anthropic API",
	)

	ErrAPIResponse = errorRegistry.Register(
		"API_RESPONSE_INVALID",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Invalid response from Anthropic API",
	)

	ErrAPIUnauthorized = errorRegistry.Register(
		"API_UNAUTHORIZED",
		errx.TypeAuthorization,
		http.StatusUnauthorized,
		"Invalid or missing Anthropic API key",
	)

	ErrAPIRateLimit = errorRegistry.Register(
		"API_RATE_LIMIT",
		errx.TypeExternal,
		http.StatusTooManyRequests,
		"Anthropic API rate limit exceeded",
	)

	ErrAPIQuotaExceeded = errorRegistry.Register(
		"API_QUOTA_EXCEEDED",
		errx.TypeExternal,
		http.StatusForbidden,
		"Anthropic API quota exceeded or overloaded",
	)

	ErrModelNotFound = errorRegistry.Register(
		"MODEL_NOT_FOUND",
		errx.TypeValidation,
		http.StatusNotFound,
		"Requested model not found or not accessible",
	)

	ErrEmptyMessages = errorRegistry.Register(
		"EMPTY_MESSAGES",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Messages array cannot be empty",
	)

	ErrUnsupportedRole = errorRegistry.Register(
		"UNSUPPORTED_ROLE",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Unsupported message role",
	)

	ErrMissingAPIKey = errorRegistry.Register(
		"MISSING_API_KEY",
		errx.TypeAuthorization,
		http.StatusUnauthorized,
		"Anthropic API key not provided",
	)
)

// ParseAnthropicError maps an Anthropic SDK error to an errx.Error
func ParseAnthropicError(err error) *errx.Error {
	if err == nil {
		return nil
	}

	var customErr *errx.Error
	if errx.As(err, &customErr) {
		return customErr
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return errorRegistry.NewWithCause(ErrAPIUnauthorized, err)
		case http.StatusTooManyRequests:
			return errorRegistry.NewWithCause(ErrAPIRateLimit, err)
		case http.StatusNotFound:
			return errorRegistry.NewWithCause(ErrModelNotFound, err)
		case 529:
			return errorRegistry.NewWithCause(ErrAPIQuotaExceeded, err)
		}
	}

	errLower := strings.ToLower(err.Error())

	var baseErr *errx.ErrorCode
	switch {
	case strings.Contains(errLower, "unauthorized") ||
		strings.Contains(errLower, "invalid x-api-key") ||
		strings.Contains(errLower, "authentication"):
		baseErr = ErrAPIUnauthorized
	case strings.Contains(errLower, "rate limit") || strings.Contains(errLower, "rate_limit"):
		baseErr = ErrAPIRateLimit
	case strings.Contains(errLower, "quota") || strings.Contains(errLower, "overloaded"):
		baseErr = ErrAPIQuotaExceeded
	case strings.Contains(errLower, "not_found") || strings.Contains(errLower, "not found"):
		baseErr = ErrModelNotFound
	default:
		baseErr = ErrAPIRequest
	}

	return errorRegistry.NewWithCause(baseErr, err)
}
