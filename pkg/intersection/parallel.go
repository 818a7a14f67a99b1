package intersection

import (
	"context"
	"fmt"
	"slices"

	f "github.com/multimediallc/rect-intersections/pkg/functional"
	"github.com/multimediallc/rect-intersections/pkg/rect"
	"golang.org/x/sync/errgroup"
)

// EnumerateParallel finds the same records as Enumerate, running the outer
// pair loop on up to workers goroutines. Each branch keeps its own key set;
// branches are merged in input order and deduplicated afterwards. A
// non-positive workers value means no limit.
func EnumerateParallel(ctx context.Context, rects []rect.Rectangle, workers int) ([]Record, error) {
	if len(rects) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrPrecondition, len(rects))
	}
	input := slices.Clone(rects)
	branches := make([][]Record, len(input))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := range input {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			engine := newEngine(input)
			engine.pairsFrom(i)
			branches[i] = engine.records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return merge(branches), nil
}

func merge(branches [][]Record) []Record {
	seen := f.NewSet[Key]()
	merged := make([]Record, 0)
	for _, branch := range branches {
		for _, record := range branch {
			if seen.AddIfMissing(record.Key()) {
				merged = append(merged, record)
			}
		}
	}
	return merged
}
