package aigemini

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Abraxas-365/mailsmith/pkg/errx"
	"google.golang.org/genai"
)

var errorRegistry = errx.NewRegistry("GEMINI")

var (
	ErrAPIRequest       = errorRegistry.Register("API_REQUEST_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to make request to Gemini API")
	ErrAPIResponse      = errorRegistry.Register("API_RESPONSE_INVALID", errx.TypeExternal, http.StatusBadGateway, "Invalid response from Gemini API")
	ErrAPIUnauthorized  = errorRegistry.Register("API_UNAUTHORIZED", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid or missing Gemini API key")
	ErrAPIRateLimit     = errorRegistry.Register("API_RATE_LIMIT", errx.TypeExternal, http.StatusTooManyRequests, "Gemini API rate limit exceeded")
	ErrAPIQuotaExceeded = errorRegistry.Register("API_QUOTA_EXCEEDED", errx.TypeExternal, http.StatusForbidden, "Gemini API quota exceeded")
	ErrModelNotFound    = errorRegistry.Register("MODEL_NOT_FOUND", errx.TypeValidation, http.StatusNotFound, "Requested model not found or not accessible")
	ErrEmptyMessages    = errorRegistry.Register("EMPTY_MESSAGES", errx.TypeValidation, http.StatusBadRequest, "Messages array cannot be empty")
	ErrUnsupportedRole  = errorRegistry.Register("UNSUPPORTED_ROLE", errx.TypeValidation, http.StatusBadRequest, "Unsupported message role")
	ErrMissingAPIKey    = errorRegistry.Register("MISSING_API_KEY", errx.TypeAuthorization, http.StatusUnauthorized, "Gemini API key not provided")
)

// messageRules are checked in order against the lowercased error text
var messageRules = []struct {
	needles []string
	code    *errx.ErrorCode
}{
	{[]string{"api key not valid", "invalid api key", "unauthenticated", "permission_denied", "permission denied"}, ErrAPIUnauthorized},
	{[]string{"quota"}, ErrAPIQuotaExceeded},
	{[]string{"resource_exhausted", "rate limit"}, ErrAPIRateLimit},
	{[]string{"not_found", "not found"}, ErrModelNotFound},
}

// ParseGeminiError maps a Gemini SDK error to an errx.Error. Typed API
// errors are classified by status code, anything else by its message.
func ParseGeminiError(err error) *errx.Error {
	if err == nil {
		return nil
	}

	var customErr *errx.Error
	if errx.As(err, &customErr) {
		return customErr
	}

	if apiErr, ok := asAPIError(err); ok {
		if code := codeForStatus(apiErr); code != nil {
			return errorRegistry.NewWithCause(code, err).WithDetail("status", apiErr.Status)
		}
	}

	msg := strings.ToLower(err.Error())
	for _, rule := range messageRules {
		for _, needle := range rule.needles {
			if strings.Contains(msg, needle) {
				return errorRegistry.NewWithCause(rule.code, err)
			}
		}
	}

	return errorRegistry.NewWithCause(ErrAPIRequest, err)
}

// asAPIError accepts the SDK error by value or by pointer
func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}
	return genai.APIError{}, false
}

func codeForStatus(apiErr genai.APIError) *errx.ErrorCode {
	switch apiErr.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAPIUnauthorized
	case http.StatusTooManyRequests:
		if strings.Contains(strings.ToLower(apiErr.Message), "quota") {
			return ErrAPIQuotaExceeded
		}
		return ErrAPIRateLimit
	case http.StatusNotFound:
		return ErrModelNotFound
	}
	return nil
}
