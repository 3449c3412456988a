package paper

// Rect is an axis-aligned rectangle used for erase areas and bounds checks.
// It is a plain value, not an element.
type Rect struct {
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// ContainsPoint reports whether p lies inside r, edges included.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// ContainsRect reports whether o lies fully inside r, edges included.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y &&
		o.X+o.Width <= r.X+r.Width &&
		o.Y+o.Height <= r.Y+r.Height
}

// NormalizedRect builds a rect from two opposite corners in any drag
// direction, so (X, Y) is always the top-left corner.
func NormalizedRect(x1, y1, x2, y2 float32) Rect {
	r := Rect{X: min(x1, x2), Y: min(y1, y2)}
	r.Width = max(x1, x2) - r.X
	r.Height = max(y1, y2) - r.Y
	return r
}
