package emailx

import (
	"context"

	"github.com/Abraxas-365/mailsmith/pkg/errx"
)

// Completion is a single generation request sent to a Backend
type Completion struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// Backend is a remote text generation service
type Backend interface {
	Complete(ctx context.Context, c Completion) (string, error)
}

// FailureKind classifies why a backend call produced no usable text
type FailureKind string

const (
	FailureNone      FailureKind = ""
	FailureAuth      FailureKind = "auth"
	FailureQuota     FailureKind = "quota"
	FailureNetwork   FailureKind = "network"
	FailureMalformed FailureKind = "malformed"
)

// Outcome is the tagged result of one backend dispatch
type Outcome struct {
	Text    string
	Failure FailureKind
	Cause   error
}

// OK reports whether the dispatch produced text
func (o Outcome) OK() bool {
	return o.Failure == FailureNone
}

// ClassifyFailure maps an error returned by a Backend to a FailureKind.
// Errors carrying one of the EMAILX backend codes map directly. Anything
// else, including deadline and cancellation, is a network failure.
func ClassifyFailure(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errx.HasCode(err, CodeBackendAuth):
		return FailureAuth
	case errx.HasCode(err, CodeBackendQuota):
		return FailureQuota
	case errx.HasCode(err, CodeBackendMalformed):
		return FailureMalformed
	default:
		return FailureNetwork
	}
}

// NewFailure wraps cause in the EMAILX code for kind
func NewFailure(kind FailureKind, cause error) *errx.Error {
	code := CodeBackendNetwork
	switch kind {
	case FailureAuth:
		code = CodeBackendAuth
	case FailureQuota:
		code = CodeBackendQuota
	case FailureMalformed:
		code = CodeBackendMalformed
	}
	return ErrRegistry.NewWithCause(code, cause)
}
