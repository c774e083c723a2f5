package cache

import (
	"context"
	"fmt"
)

// Memoize wraps load with store. keyFn maps the argument tuple to a key;
// values are returned from store until they are older than its TTL.
func Memoize[A any, V any](store *Store, keyFn func(A) string, load func(context.Context, A) (V, error)) func(context.Context, A) (V, error) {
	return func(ctx context.Context, args A) (V, error) {
		var zero V
		raw, err := store.GetOrLoad(ctx, keyFn(args), func(ctx context.Context) (any, error) {
			return load(ctx, args)
		})
		if err != nil {
			return zero, err
		}
		value, ok := raw.(V)
		if !ok {
			return zero, fmt.Errorf("cache: unexpected value type %T", raw)
		}
		return value, nil
	}
}
