package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/futables/internal/domain/football"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrDependencyFailed      = errors.New("dependency returned an unusable reply")
)

// wrapProviderError adds op context and lifts provider failures into the
// use-case taxonomy. The original error stays in the chain.
func wrapProviderError(op string, err error) error {
	switch {
	case errors.Is(err, football.ErrUnavailable), errors.Is(err, football.ErrProviderUnreachable):
		return fmt.Errorf("%s: %w: %w", op, ErrDependencyUnavailable, err)
	case errors.Is(err, football.ErrProviderFailed):
		return fmt.Errorf("%s: %w: %w", op, ErrDependencyFailed, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
