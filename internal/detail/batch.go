package detail

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/holocron/internal/catalog"
)

// DefaultConcurrency is the number of detail fetches LoadAll runs at once.
const DefaultConcurrency = 4

// LoadAll loads detail for every eligible item with at most concurrency
// fetches in flight. Each item is written by exactly one goroutine. It
// returns the number of items whose detail failed to load; cancellation
// stops scheduling new fetches and is reported as ctx.Err().
func (l *Loader) LoadAll(ctx context.Context, category catalog.CategoryID, items []*catalog.Item, concurrency int) (int, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var failed atomic.Int32
	for _, item := range items {
		if gctx.Err() != nil {
			break
		}
		if !l.Begin(category, item) {
			continue
		}
		g.Go(func() error {
			summary, err := l.Fetch(gctx, category, item.Identifier)
			l.Complete(item, summary, err)
			if err != nil {
				failed.Add(1)
			}
			return nil
		})
	}

	_ = g.Wait()
	return int(failed.Load()), ctx.Err()
}
