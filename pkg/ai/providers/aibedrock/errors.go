package aibedrock

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Abraxas-365/mailsmith/pkg/errx"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

var (
	errorRegistry = errx.NewRegistry("BEDROCK")

	ErrAPIRequest = errorRegistry.Register(
		"API_REQUEST_FAILED",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Failed to make request to Bedrock API",
	)

	ErrAPIResponse = errorRegistry.Register(
		"API_RESPONSE_INVALID",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Invalid response from Bedrock API",
	)

	ErrAPIUnauthorized = errorRegistry.Register(
		"API_UNAUTHORIZED",
		errx.TypeAuthorization,
		http.StatusUnauthorized,
		"Invalid or missing AWS credentials",
	)

	ErrAPIRateLimit = errorRegistry.Register(
		"API_RATE_LIMIT",
		errx.TypeExternal,
		http.StatusTooManyRequests,
		"Bedrock API rate limit exceeded",
	)

	ErrAPIQuotaExceeded = errorRegistry.Register(
		"API_QUOTA_EXCEEDED",
		errx.TypeExternal,
		http.StatusForbidden,
		"Bedrock service quota exceeded",
	)

	ErrModelNotFound = errorRegistry.Register(
		"MODEL_NOT_FOUND",
		errx.TypeValidation,
		http.StatusNotFound,
		"Requested model not found or not accessible",
	)

	ErrInvalidMessage = errorRegistry.Register(
		"INVALID_MESSAGE",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Invalid message format",
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
)

// ParseBedrockError maps a Bedrock runtime error to an errx.Error
func ParseBedrockError(err error) *errx.Error {
	if err == nil {
		return nil
	}

	var customErr *errx.Error
	if errx.As(err, &customErr) {
		return customErr
	}

	var (
		accessDenied *types.AccessDeniedException
		throttling   *types.ThrottlingException
		quota        *types.ServiceQuotaExceededException
		notFound     *types.ResourceNotFoundException
		validation   *types.ValidationException
	)
	switch {
	case errors.As(err, &accessDenied):
		return errorRegistry.NewWithCause(ErrAPIUnauthorized, err)
	case errors.As(err, &throttling):
		return errorRegistry.NewWithCause(ErrAPIRateLimit, err)
	case errors.As(err, &quota):
		return errorRegistry.NewWithCause(ErrAPIQuotaExceeded, err)
	case errors.As(err, &notFound):
		return errorRegistry.NewWithCause(ErrModelNotFound, err)
	case errors.As(err, &validation):
		return errorRegistry.NewWithCause(ErrInvalidMessage, err)
	}

	errLower := strings.ToLower(err.Error())

	var baseErr *errx.ErrorCode
	switch {
	case strings.Contains(errLower, "unauthorized") ||
		strings.Contains(errLower, "accessdenied") ||
		strings.Contains(errLower, "access denied") ||
		strings.Contains(errLower, "credentials"):
		baseErr = ErrAPIUnauthorized
	case strings.Contains(errLower, "throttl") || strings.Contains(errLower, "rate exceeded"):
		baseErr = ErrAPIRateLimit
	case strings.Contains(errLower, "quota"):
		baseErr = ErrAPIQuotaExceeded
	default:
		baseErr = ErrAPIRequest
	}

	return errorRegistry.NewWithCause(baseErr, err)
}
