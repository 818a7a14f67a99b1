package intersection

import (
	"errors"
	"fmt"
	"slices"

	f "github.com/multimediallc/rect-intersections/pkg/functional"
	"github.com/multimediallc/rect-intersections/pkg/rect"
)

var ErrPrecondition = errors.New("at least 2 rectangles are required to find intersections")

// Record is one discovered intersection: the shared region and the IDs of the
// input rectangles that produced it, in the order they were combined.
type Record struct {
	Rect         rect.Rectangle
	Participants []int
}

func (r Record) Key() Key {
	return NewKey(r.Participants)
}

// SortedParticipants returns the participant IDs in ascending order
func (r Record) SortedParticipants() []int {
	return f.Sorted(r.Participants)
}

// Engine finds every group of input rectangles that share a non-empty region.
// An Engine is used for a single pass and is not safe for concurrent use.
type Engine struct {
	rects   []rect.Rectangle
	records []Record
	seen    f.Set[Key]
}

func NewEngine(rects []rect.Rectangle) (*Engine, error) {
	if len(rects) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrPrecondition, len(rects))
	}
	return newEngine(slices.Clone(rects)), nil
}

func newEngine(rects []rect.Rectangle) *Engine {
	return &Engine{
		rects:   rects,
		records: make([]Record, 0),
		seen:    f.NewSet[Key](),
	}
}

// Enumerate returns all 2-way and N-way intersections of rects in discovery order.
// Use Order to get the presentation order.
func Enumerate(rects []rect.Rectangle) ([]Record, error) {
	engine, err := NewEngine(rects)
	if err != nil {
		return nil, err
	}
	return engine.Run(), nil
}

// Run enumerates every pair in input order and extends each new pair with later rectangles
func (e *Engine) Run() []Record {
	for i := range e.rects {
		e.pairsFrom(i)
	}
	return e.Records()
}

func (e *Engine) Records() []Record {
	return slices.Clone(e.records)
}

// pairsFrom handles every pair (i, j) with j > i and the extensions that start from it
func (e *Engine) pairsFrom(i int) {
	for j := i + 1; j < len(e.rects); j++ {
		overlap, found := rect.Overlap(e.rects[i], e.rects[j])
		if !found {
			continue
		}
		ids := []int{e.rects[i].ID, e.rects[j].ID}
		if e.record(overlap, ids) {
			e.extend(overlap, ids, j+1)
		}
	}
}

// extend only looks at indices >= start so each combination is reached once, never a permutation of it
func (e *Engine) extend(current rect.Rectangle, ids []int, start int) {
	for k := start; k < len(e.rects); k++ {
		overlap, found := rect.Overlap(current, e.rects[k])
		if !found {
			continue
		}
		next := make([]int, len(ids), len(ids)+1)
		copy(next, ids)
		next = append(next, e.rects[k].ID)
		if e.record(overlap, next) {
			e.extend(overlap, next, k+1)
		}
	}
}

// record stores the intersection unless its participant set has already been seen
func (e *Engine) record(overlap rect.Rectangle, ids []int) bool {
	if !e.seen.AddIfMissing(NewKey(ids)) {
		return false
	}
	e.records = append(e.records, Record{Rect: overlap, Participants: ids})
	return true
}
