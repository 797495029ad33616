package aiopenai

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Abraxas-365/mailsmith/pkg/errx"
	"github.com/openai/openai-go/v3"
)

var (
	errorRegistry = errx.NewRegistry("OPENAI")

	ErrAPIRequest = errorRegistry.Register(
		"API_REQUEST_FAILED",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Failed to make request to OpenAI API",
	)

	ErrAPIUnauthorized = errorRegistry.Register(
		"API_UNAUTHORIZED",
		errx.TypeAuthorization,
		http.StatusUnauthorized,
		"Invalid or missing OpenAI API key",
	)

	ErrAPIRateLimit = errorRegistry.Register(
		"API_RATE_LIMIT",
		errx.TypeExternal,
		http.StatusTooManyRequests,
		"OpenAI API rate limit exceeded",
	)

	ErrAPIQuotaExceeded = errorRegistry.Register(
		"API_QUOTA_EXCEEDED",
		errx.TypeExternal,
		http.StatusForbidden,
		"OpenAI API quota exceeded",
	)

	ErrModelNotFound = errorRegistry.Register(
		"MODEL_NOT_FOUND",
		errx.TypeValidation,
		http.StatusNotFound,
		"Requested model not found or not accessible",
	)

	ErrContextLengthExceeded = errorRegistry.Register(
		"CONTEXT_LENGTH_EXCEEDED",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Context length exceeds model maximum",
	)

	ErrInvalidRequest = errorRegistry.Register(
		"INVALID_REQUEST",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Invalid request parameters",
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

	ErrNoChoicesInResponse = errorRegistry.Register(
		"NO_CHOICES_IN_RESPONSE",
		errx.TypeExternal,
		http.StatusBadGateway,
		"No choices returned in API response",
	)

	ErrMissingAPIKey = errorRegistry.Register(
		"MISSING_API_KEY",
		errx.TypeAuthorization,
		http.StatusUnauthorized,
		"OpenAI API key not provided",
	)
)

// ParseOpenAIError maps an SDK error to an errx.Error. The HTTP status of an
// *openai.Error decides first; the message text is the fallback.
func ParseOpenAIError(err error) *errx.Error {
	if err == nil {
		return nil
	}

	var customErr *errx.Error
	if errx.As(err, &customErr) {
		return customErr
	}

	errLower := strings.ToLower(err.Error())

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			return errorRegistry.NewWithCause(ErrAPIUnauthorized, err)
		case http.StatusTooManyRequests:
			if strings.Contains(errLower, "insufficient_quota") || strings.Contains(errLower, "quota") {
				return errorRegistry.NewWithCause(ErrAPIQuotaExceeded, err)
			}
			return errorRegistry.NewWithCause(ErrAPIRateLimit, err)
		case http.StatusForbidden:
			return errorRegistry.NewWithCause(ErrAPIQuotaExceeded, err)
		case http.StatusNotFound:
			return errorRegistry.NewWithCause(ErrModelNotFound, err)
		}
	}

	var baseErr *errx.ErrorCode
	switch {
	case strings.Contains(errLower, "unauthorized") ||
		strings.Contains(errLower, "invalid api key") ||
		strings.Contains(errLower, "incorrect api key"):
		baseErr = ErrAPIUnauthorized
	case strings.Contains(errLower, "quota"):
		baseErr = ErrAPIQuotaExceeded
	case strings.Contains(errLower, "rate limit") || strings.Contains(errLower, "rate_limit"):
		baseErr = ErrAPIRateLimit
	case strings.Contains(errLower, "model") && strings.Contains(errLower, "not found"):
		baseErr = ErrModelNotFound
	case strings.Contains(errLower, "context length") || strings.Contains(errLower, "maximum context"):
		baseErr = ErrContextLengthExceeded
	case strings.Contains(errLower, "invalid"):
		baseErr = ErrInvalidRequest
	default:
		baseErr = ErrAPIRequest
	}

	return errorRegistry.NewWithCause(baseErr, err)
}
