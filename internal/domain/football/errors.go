package football

import "errors"

var (
	// ErrUnavailable is returned by provider decorators that refuse to call
	// upstream, e.g. while a circuit breaker is open.
	ErrUnavailable = errors.New("sports data provider unavailable")
	// ErrProviderUnreachable marks calls that never got a reply.
	ErrProviderUnreachable = errors.New("sports data provider unreachable")
	// ErrProviderFailed marks replies that were rejections or could not be read.
	ErrProviderFailed = errors.New("sports data provider failed")
)
