package emailx

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/mailsmith/pkg/asyncx"
	"github.com/Abraxas-365/mailsmith/pkg/logx"
)

const (
	DefaultMaxTokens      = 500
	DefaultTemperature    = 0.7
	DefaultBackendTimeout = 30 * time.Second
	DefaultBatchWorkers   = 4
)

// Engine generates emails through a remote backend when one is configured
// and through the local template library otherwise
type Engine struct {
	backend    Backend
	credential string
	fallback   FallbackGenerator

	maxTokens   int
	temperature float32
	timeout     time.Duration
	workers     int

	logger *logx.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithBackend sets the remote backend and the credential it runs with. A
// missing or placeholder credential keeps the engine on the fallback path.
func WithBackend(b Backend, credential string) Option {
	return func(e *Engine) {
		e.backend = b
		e.credential = credential
	}
}

// WithFallback replaces the local generator
func WithFallback(g FallbackGenerator) Option {
	return func(e *Engine) {
		if g != nil {
			e.fallback = g
		}
	}
}

// WithMaxTokens sets the completion budget sent to the backend
func WithMaxTokens(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxTokens = n
		}
	}
}

// WithTemperature sets the sampling temperature sent to the backend
func WithTemperature(t float32) Option {
	return func(e *Engine) {
		e.temperature = t
	}
}

// WithTimeout bounds each backend call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

// WithBatchWorkers sets the default concurrency of GenerateBatch
func WithBatchWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *logx.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an engine. Without WithBackend it only uses the local
// template library.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		fallback:    LocalGenerator{},
		maxTokens:   DefaultMaxTokens,
		temperature: DefaultTemperature,
		timeout:     DefaultBackendTimeout,
		workers:     DefaultBatchWorkers,
		logger:      logx.GetDefaultLogger(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// UsesFallback reports whether Generate skips the backend entirely
func (e *Engine) UsesFallback() bool {
	return e.backend == nil || IsPlaceholderCredential(e.credential)
}

// IsPlaceholderCredential reports whether credential is empty or a
// "your_..._here" style placeholder
func IsPlaceholderCredential(credential string) bool {
	c := strings.ToLower(strings.TrimSpace(credential))
	if c == "" {
		return true
	}
	return strings.HasPrefix(c, "your_") && strings.HasSuffix(c, "_here")
}

// Generate produces an email for req. Backend failures are absorbed by the
// fallback path; the only error is ErrFallbackExhausted.
func (e *Engine) Generate(ctx context.Context, req Request) (Result, error) {
	req = req.Normalized()

	log := e.logger.WithFields(logx.Fields{
		"email_type": string(req.EmailType),
		"tone":       string(req.Tone),
		"length":     string(req.Length),
	})

	var outcome Outcome
	if e.UsesFallback() {
		log.Debug("backend not configured, using local templates")
	} else {
		log.Debug("dispatching to backend")
		outcome = e.dispatch(ctx, Compose(req))
		if outcome.OK() {
			return newResult(req, outcome.Text, SourceRemote), nil
		}
		log.WithField("failure", string(outcome.Failure)).
			WithError(outcome.Cause).
			Warn("backend failed, using local templates")
	}

	body, err := e.fallback.Generate(req)
	if err != nil {
		var backendErr error
		if outcome.Cause != nil {
			backendErr = NewFailure(outcome.Failure, outcome.Cause)
		}
		exhausted := ErrFallbackExhausted(backendErr, err)
		log.WithError(exhausted).Error("email generation failed")
		return Result{}, exhausted
	}

	return newResult(req, body, SourceFallback), nil
}

func (e *Engine) dispatch(ctx context.Context, p Prompt) Outcome {
	text, err := asyncx.WithTimeout(ctx, e.timeout, func(ctx context.Context) (string, error) {
		return e.backend.Complete(ctx, Completion{
			System:      p.System,
			User:        p.User,
			MaxTokens:   e.maxTokens,
			Temperature: e.temperature,
		})
	})

	if err != nil {
		return Outcome{Failure: ClassifyFailure(err), Cause: err}
	}
	if strings.TrimSpace(text) == "" {
		return Outcome{Failure: FailureMalformed, Cause: ErrRegistry.New(CodeBackendMalformed)}
	}
	return Outcome{Text: text}
}

func newResult(req Request, body string, source Source) Result {
	return Result{
		Subject:   req.Subject,
		Body:      body,
		WordCount: countWords(body),
		Source:    source,
	}
}

// ListStyleOptions returns every accepted selector value
func (e *Engine) ListStyleOptions() StyleOptions {
	return StyleOptionsList()
}

// GenerateBatch generates every request with at most workers concurrent
// calls. Results keep the input order. A non-positive workers uses the
// engine default.
func (e *Engine) GenerateBatch(ctx context.Context, reqs []Request, workers int) ([]Result, error) {
	if len(reqs) == 0 {
		return []Result{}, nil
	}
	if workers <= 0 {
		workers = e.workers
	}

	return asyncx.Pool(ctx, workers, reqs, e.Generate)
}
