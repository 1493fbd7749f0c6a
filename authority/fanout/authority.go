// Package fanout combines several permission authorities into one. All
// backing authorities are queried in parallel and permission is granted
// only when every one of them grants it. The first query error cancels the
// remaining queries and surfaces as the combined authority's error; the
// gate in front then fails closed. This composes authorities behind a
// single unit, not the verdicts of multiple decision units.
package fanout

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/resourcegate/resourcegate/gate"
)

type authority struct {
	backends []gate.Authority
}

// New creates an authority granting permission only when every backing
// authority grants it.
func New(backends ...gate.Authority) gate.Authority {
	return &authority{backends: backends}
}

// HasPermission queries all backing authorities in parallel.
func (a *authority) HasPermission(ctx context.Context, path, action string) (bool, error) {
	if len(a.backends) == 0 {
		return false, errors.New("no backing authorities configured")
	}

	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	granted := true

	for _, backend := range a.backends {
		b := backend
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			ok, err := b.HasPermission(ctx, path, action)
			if err != nil {
				return err
			}

			if !ok {
				mu.Lock()
				granted = false
				mu.Unlock()
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return false, err
	}

	return granted, nil
}
