package tool

import "InkBoard/internal/paper"

type PreviewKind int

const (
	PreviewStroke PreviewKind = iota
	PreviewRect
	PreviewEraser
	PreviewTextCursor
	PreviewText
)

// Preview is the transient visual feedback for the in-flight gesture. It is
// never persisted. Which fields are set depends on Kind: stroke previews
// carry Stroke, rect and eraser previews carry Rect, text previews carry the
// caret position plus Text and font settings.
type Preview struct {
	Kind     PreviewKind
	Stroke   *paper.Stroke
	Rect     paper.Rect
	X, Y     float32
	Text     string
	FontSize float32
	Color    string

	// Rectangle styling for PreviewRect.
	StrokeWidth float32
	Filled      bool
}

// ActivePreview reflects the in-flight state at all times, without needing
// a pending move event. It reports false when nothing is in flight.
func (m *Machine) ActivePreview() (Preview, bool) {
	switch {
	case m.stroke != nil:
		return Preview{Kind: PreviewStroke, Stroke: m.stroke.Clone().(*paper.Stroke)}, true
	case m.rectDrag != nil:
		return Preview{
			Kind:        PreviewRect,
			Rect:        m.rectDrag.rect(),
			Color:       m.rectDrag.settings.RectColor,
			StrokeWidth: m.rectDrag.settings.RectStrokeWidth,
			Filled:      m.rectDrag.settings.RectFilled,
		}, true
	case m.erasDrag != nil:
		return Preview{Kind: PreviewEraser, Rect: m.erasDrag.rect()}, true
	case m.caret != nil:
		if len(m.caret.buf) == 0 {
			return Preview{
				Kind:     PreviewTextCursor,
				X:        m.caret.x,
				Y:        m.caret.y,
				FontSize: m.caret.settings.FontSize,
				Color:    m.caret.settings.TextColor,
			}, true
		}
		return Preview{
			Kind:     PreviewText,
			X:        m.caret.x,
			Y:        m.caret.y,
			Text:     string(m.caret.buf),
			FontSize: m.caret.settings.FontSize,
			Color:    m.caret.settings.TextColor,
		}, true
	}
	return Preview{}, false
}
