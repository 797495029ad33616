package aiazure

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Abraxas-365/mailsmith/pkg/errx"
	"github.com/openai/openai-go/v3"
)

var (
	errorRegistry = errx.NewRegistry("AZURE_OPENAI")

	ErrAPIRequest = errorRegistry.Register(
		"API_REQUEST_FAILED",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Failed to make request to Azure OpenAI API",
	)

	ErrAPIUnauthorized = errorRegistry.Register(
		"API_UNAUTHORIZED",
		errx.TypeAuthorization,
		http.StatusUnauthorized,
		"Invalid or missing Azure OpenAI credentials",
	)

	ErrAPIRateLimit = errorRegistry.Register(
		"API_RATE_LIMIT",
		errx.TypeExternal,
		http.StatusTooManyRequests,
		"Azure OpenAI API rate limit exceeded",
	)

	ErrAPIQuotaExceeded = errorRegistry.Register(
		"API_QUOTA_EXCEEDED",
		errx.TypeExternal,
		http.StatusForbidden,
		"Azure OpenAI API quota exceeded",
	)

	ErrModelNotFound = errorRegistry.Register(
		"MODEL_NOT_FOUND",
		errx.TypeValidation,
		http.StatusNotFound,
		"Requested deployment not found or not accessible",
	)

	ErrContextLengthExceeded = errorRegistry.Register(
		"CONTEXT_LENGTH_EXCEEDED",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Context length exceeds model maximum",
	)

	ErrEmptyMessages = errorRegistry.Register(
		"EMPTY_MESSAGES",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Messages array cannot be empty",
	)

	ErrNoChoicesInResponse = errorRegistry.Register(
		"NO_CHOICES_IN_RESPONSE",
		errx.TypeExternal,
		http.StatusBadGateway,
		"No choices returned in API response",
	)

	ErrMissingEndpoint = errorRegistry.Register(
		"MISSING_ENDPOINT",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Azure OpenAI endpoint or deployment not configured",
	)

	ErrMissingAPIKey = errorRegistry.Register(
		"MISSING_API_KEY",
		errx.TypeAuthorization,
		http.StatusUnauthorized,
		"Azure OpenAI API key not provided",
	)
)

// ParseAzureError maps an Azure OpenAI error to an errx.Error
func ParseAzureError(err error) *errx.Error {
	if err == nil {
		return nil
	}

	var customErr *errx.Error
	if errx.As(err, &customErr) {
		return customErr
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return errorRegistry.NewWithCause(ErrAPIUnauthorized, err)
		case http.StatusTooManyRequests:
			if strings.Contains(strings.ToLower(apiErr.Message), "quota") {
				return errorRegistry.NewWithCause(ErrAPIQuotaExceeded, err)
			}
			return errorRegistry.NewWithCause(ErrAPIRateLimit, err)
		case http.StatusNotFound:
			return errorRegistry.NewWithCause(ErrModelNotFound, err)
		}
	}

	errLower := strings.ToLower(err.Error())

	var baseErr *errx.ErrorCode
	switch {
	case strings.Contains(errLower, "unauthorized") ||
		strings.Contains(errLower, "invalid api key") ||
		strings.Contains(errLower, "access denied"):
		baseErr = ErrAPIUnauthorized
	case strings.Contains(errLower, "quota") || strings.Contains(errLower, "insufficient_quota"):
		baseErr = ErrAPIQuotaExceeded
	case strings.Contains(errLower, "rate limit") || strings.Contains(errLower, "rate_limit"):
		baseErr = ErrAPIRateLimit
	case strings.Contains(errLower, "deploymentnotfound") || strings.Contains(errLower, "not found"):
		baseErr = ErrModelNotFound
	case strings.Contains(errLower, "context length") || strings.Contains(errLower, "maximum context"):
		baseErr = ErrContextLengthExceeded
	default:
		baseErr = ErrAPIRequest
	}

	return errorRegistry.NewWithCause(baseErr, err)
}
