package emailx

import (
	"net/http"

	"github.com/Abraxas-365/mailsmith/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("EMAILX")

var (
	CodeBackendAuth       = ErrRegistry.Register("BACKEND_AUTH", errx.TypeAuthorization, http.StatusBadGateway, "Generation backend rejected the credential")
	CodeBackendQuota      = ErrRegistry.Register("BACKEND_QUOTA", errx.TypeExternal, http.StatusTooManyRequests, "Generation backend quota or rate limit exceeded")
	CodeBackendNetwork    = ErrRegistry.Register("BACKEND_NETWORK", errx.TypeExternal, http.StatusBadGateway, "Generation backend unreachable or timed out")
	CodeBackendMalformed  = ErrRegistry.Register("BACKEND_MALFORMED", errx.TypeExternal, http.StatusBadGateway, "Generation backend returned no usable text")
	CodeFallbackExhausted = ErrRegistry.Register("FALLBACK_EXHAUSTED", errx.TypeInternal, http.StatusInternalServerError, "Email generation failed on every path")
	CodeInvalidRequest    = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid email generation request")
	CodeTemplateField     = ErrRegistry.Register("TEMPLATE_FIELD", errx.TypeInternal, http.StatusInternalServerError, "Template references a field with no value")
)

func ErrInvalidRequest() *errx.Error { return ErrRegistry.New(CodeInvalidRequest) }

// ErrFallbackExhausted names the backend failure (if any) and the local
// generation failure that left no result
func ErrFallbackExhausted(backendErr, fallbackErr error) *errx.Error {
	e := ErrRegistry.NewWithCause(CodeFallbackExhausted, fallbackErr)
	if backendErr != nil {
		e.WithDetail("backend_error", backendErr.Error())
	}
	if fallbackErr != nil {
		e.WithDetail("fallback_error", fallbackErr.Error())
	}
	return e
}
