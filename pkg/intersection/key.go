package intersection

import (
	"strconv"
	"strings"

	f "github.com/multimediallc/rect-intersections/pkg/functional"
)

// Key identifies a participant set independent of the order its members were combined in.
type Key string

// NewKey sorts a copy of ids and joins them with "-", so {3, 1, 2} becomes "1-2-3"
func NewKey(ids []int) Key {
	return Key(strings.Join(f.Map(f.Sorted(ids), strconv.Itoa), "-"))
}
