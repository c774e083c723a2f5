package apisports

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/futables/internal/domain/football"
)

// Each sentinel wraps the matching football provider error so callers
// outside this package can classify failures without importing it.
var (
	// ErrTransport marks failures to reach the provider or read its reply.
	ErrTransport = crerr.WithMessage(football.ErrProviderUnreachable, "api-sports transport failure")
	// ErrUpstream marks non-success replies, including HTTP 200 bodies that carry provider errors.
	ErrUpstream = crerr.WithMessage(football.ErrProviderFailed, "api-sports upstream error")
	// ErrMalformedResponse marks bodies that are not the expected {results, response} envelope.
	ErrMalformedResponse = crerr.WithMessage(football.ErrProviderFailed, "api-sports malformed response")
)

// StatusError carries the HTTP status of a rejected request. It matches ErrUpstream.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: provider status=%d body=%s", ErrUpstream, e.StatusCode, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUpstream || target == football.ErrProviderFailed
}

// StatusCode extracts the provider HTTP status from err, if it has one.
func StatusCode(err error) (int, bool) {
	var statusErr *StatusError
	if crerr.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}
	return 0, false
}

func transportError(err error, format string, args ...any) error {
	return fmt.Errorf("%w: %w", ErrTransport, crerr.Wrapf(err, format, args...))
}

func upstreamError(statusCode int, body string) error {
	return &StatusError{StatusCode: statusCode, Body: body}
}

func malformedError(err error, format string, args ...any) error {
	if err == nil {
		return crerr.Wrapf(ErrMalformedResponse, format, args...)
	}
	return fmt.Errorf("%w: %w", ErrMalformedResponse, crerr.Wrapf(err, format, args...))
}
