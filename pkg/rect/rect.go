package rect

import "fmt"

// DerivedID is the identity carried by every rectangle produced by Overlap.
// Rectangles loaded from input always have a positive ID.
const DerivedID = -1

// Rectangle is an axis-aligned box with its top-left corner at (X, Y).
// Stored rectangles always have W > 0 and H > 0.
type Rectangle struct {
	ID int
	X  int
	Y  int
	W  int
	H  int
}

// New creates a Rectangle with the given identity, corner and size.
func New(id, x, y, w, h int) Rectangle {
	return Rectangle{ID: id, X: x, Y: y, W: w, H: h}
}

// Right returns the X coordinate of the right edge.
func (r Rectangle) Right() int {
	return r.X + r.W
}

// Bottom returns the Y coordinate of the bottom edge.
func (r Rectangle) Bottom() int {
	return r.Y + r.H
}

// Area returns W*H; positive for every stored rectangle.
func (r Rectangle) Area() int {
	return r.W * r.H
}

// IsDerived reports whether the rectangle came from Overlap rather than from input.
func (r Rectangle) IsDerived() bool {
	return r.ID == DerivedID
}

// Contains reports whether other lies entirely inside r (edges may coincide).
func (r Rectangle) Contains(other Rectangle) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

// SameGeometry compares position and size, ignoring identity.
func (r Rectangle) SameGeometry(other Rectangle) bool {
	return r.X == other.X && r.Y == other.Y && r.W == other.W && r.H == other.H
}

func (r Rectangle) String() string {
	return fmt.Sprintf("(%d,%d), w=%d, h=%d", r.X, r.Y, r.W, r.H)
}

// Overlap returns the region shared by a and b. The second value is false
// when the rectangles are disjoint or only touch along an edge or a corner,
// since a zero-width or zero-height region is not an intersection.
func Overlap(a, b Rectangle) (Rectangle, bool) {
	x := max(a.X, b.X)
	y := max(a.Y, b.Y)
	right := min(a.Right(), b.Right())
	bottom := min(a.Bottom(), b.Bottom())

	w := right - x
	h := bottom - y
	if w <= 0 || h <= 0 {
		return Rectangle{}, false
	}
	return New(DerivedID, x, y, w, h), true
}
