package paper

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// DefaultPressure is reported for devices without pressure sensing.
const DefaultPressure = 0.5

// Point is a single recorded position of a stroke. Immutable once recorded.
type Point struct {
	X        float32 `json:"x"`
	Y        float32 `json:"y"`
	Pressure float32 `json:"pressure"`
}

type ElementKind int

const (
	KindStroke ElementKind = iota
	KindRectangle
	KindText
)

// Element is the closed set of things a paper can hold. The serialized form
// is structural: a stroke carries "points", a text carries "content", and a
// rectangle carries "width"/"height" with neither of the other two.
type Element interface {
	Kind() ElementKind
	ElementID() string
	Bounds() Rect
	Clone() Element

	element()
}

// Stroke is a freehand polyline. Points are frozen once the stroke is
// committed to a paper.
type Stroke struct {
	ID     string  `json:"id"`
	Points []Point `json:"points"`
	Color  string  `json:"color"`
	Width  float32 `json:"width"`
}

func (s *Stroke) Kind() ElementKind { return KindStroke }
func (s *Stroke) ElementID() string { return s.ID }
func (s *Stroke) element()          {}

func (s *Stroke) Clone() Element {
	c := *s
	c.Points = append([]Point(nil), s.Points...)
	return &c
}

func (s *Stroke) Bounds() Rect {
	if len(s.Points) == 0 {
		return Rect{}
	}
	minX, minY := s.Points[0].X, s.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range s.Points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Rectangle is an axis-aligned rectangle element. Width and Height are never
// negative; the drawing tool normalizes drag direction before committing.
type Rectangle struct {
	ID          string  `json:"id"`
	X           float32 `json:"x"`
	Y           float32 `json:"y"`
	Width       float32 `json:"width"`
	Height      float32 `json:"height"`
	Color       string  `json:"color"`
	StrokeWidth float32 `json:"strokeWidth"`
	Filled      bool    `json:"filled"`
}

func (r *Rectangle) Kind() ElementKind { return KindRectangle }
func (r *Rectangle) ElementID() string { return r.ID }
func (r *Rectangle) element()          {}

func (r *Rectangle) Clone() Element {
	c := *r
	return &c
}

func (r *Rectangle) Bounds() Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// Text is a single logical line placed at a point. Line breaks never appear
// in Content; the text tool starts a new element below instead.
type Text struct {
	ID         string  `json:"id"`
	X          float32 `json:"x"`
	Y          float32 `json:"y"`
	Content    string  `json:"content"`
	FontSize   float32 `json:"fontSize"`
	Color      string  `json:"color"`
	FontFamily string  `json:"fontFamily"`
}

func (t *Text) Kind() ElementKind { return KindText }
func (t *Text) ElementID() string { return t.ID }
func (t *Text) element()          {}

func (t *Text) Clone() Element {
	c := *t
	return &c
}

// Bounds approximates the rendered box: 0.6em average advance per character.
func (t *Text) Bounds() Rect {
	n := float32(utf8.RuneCountInString(t.Content))
	return Rect{X: t.X, Y: t.Y, Width: n * t.FontSize * 0.6, Height: t.FontSize}
}

func cloneElements(els []Element) []Element {
	out := make([]Element, len(els))
	for i, el := range els {
		out[i] = el.Clone()
	}
	return out
}

// decodeElement probes the structural shape of a serialized element and
// decodes it as exactly one of the three variants.
func decodeElement(raw json.RawMessage) (Element, error) {
	var probe struct {
		Points  json.RawMessage `json:"points"`
		Content *string         `json:"content"`
		Width   *float32        `json:"width"`
		Height  *float32        `json:"height"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}
	switch {
	case probe.Points != nil:
		var s Stroke
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return &s, nil
	case probe.Content != nil:
		var t Text
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, err
		}
		return &t, nil
	case probe.Width != nil && probe.Height != nil:
		var r Rectangle
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, err
		}
		return &r, nil
	default:
		return nil, fmt.Errorf("element matches no known shape")
	}
}

func decodeElements(raws []json.RawMessage) ([]Element, error) {
	els := make([]Element, 0, len(raws))
	for i, raw := range raws {
		el, err := decodeElement(raw)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		els = append(els, el)
	}
	return els, nil
}

func encodeElements(els []Element) ([]json.RawMessage, error) {
	raws := make([]json.RawMessage, len(els))
	for i, el := range els {
		b, err := json.Marshal(el)
		if err != nil {
			return nil, err
		}
		raws[i] = b
	}
	return raws, nil
}
