package generation

import (
	"errors"
	"strconv"

	goerrors "github.com/goliatone/go-errors"
)

const (
	CodeUnavailable    = "GENERATION_UNAVAILABLE"
	CodeRateLimited    = "GENERATION_RATE_LIMITED"
	CodeQuotaExhausted = "GENERATION_QUOTA_EXHAUSTED"
	CodeUpstreamFailed = "GENERATION_UPSTREAM_FAILED"
	CodePersistFailed  = "GENERATION_PERSIST_FAILED"
)

var (
	ErrMissingCredentials = errors.New("generation: api key is not configured")
	ErrRateLimited        = errors.New("generation: upstream rate limit exceeded")
	ErrQuotaExhausted     = errors.New("generation: upstream credits exhausted")
	ErrTitleRequired      = errors.New("generation: title is required")
)

// UpstreamError carries a non-success upstream response.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return "generation: upstream returned status " + strconv.Itoa(e.Status) + ": " + e.Body
}

// Unavailable, rate-limited and quota failures are final for a request; the
// command runner must not retry them.
func wrapUnavailable(err error) error {
	return goerrors.WrapRetryable(err, goerrors.CategoryInternal, "content generation is not configured").
		WithRetryable(false).
		WithTextCode(CodeUnavailable)
}

func wrapRateLimited(err error) error {
	return goerrors.WrapRetryable(err, goerrors.CategoryRateLimit, "request limit exceeded, try again in a few minutes").
		WithRetryable(false).
		WithTextCode(CodeRateLimited)
}

func wrapQuotaExhausted(err error) error {
	return goerrors.WrapRetryable(err, goerrors.CategoryExternal, "generation credits exhausted, add credits to your account").
		WithRetryable(false).
		WithTextCode(CodeQuotaExhausted)
}

func wrapUpstream(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryExternal, "content generation failed").
		WithTextCode(CodeUpstreamFailed)
}

func wrapPersist(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to save generated content").
		WithTextCode(CodePersistFailed)
}

// Code returns the generation text code carried by err, or "".
func Code(err error) string {
	var final *goerrors.RetryableError
	if errors.As(err, &final) && final != nil && final.BaseError != nil {
		return final.TextCode
	}
	var wrapped *goerrors.Error
	if errors.As(err, &wrapped) && wrapped != nil {
		return wrapped.TextCode
	}
	return ""
}
