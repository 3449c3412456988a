// Package tool turns normalized gestures into committed elements, erase
// requests and live previews, one tool at a time.
package tool

import (
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"InkBoard/internal/input"
	"InkBoard/internal/paper"
)

type Kind string

const (
	Pen       Kind = "pen"
	Eraser    Kind = "eraser"
	Rectangle Kind = "rectangle"
	Text      Kind = "text"
)

// MinDragSize is the minimum rectangle/eraser drag extent; drags with width
// or height at or below it are discarded on release.
const MinDragSize = 2

// textLineGap is added to the font size when Enter opens the next line's
// caret.
const textLineGap = 4

// Settings are the per-tool drawing parameters. They apply to the next
// gesture; an in-flight gesture keeps the settings it started with.
type Settings struct {
	StrokeColor string
	StrokeWidth float32

	RectColor       string
	RectStrokeWidth float32
	RectFilled      bool

	TextColor  string
	FontSize   float32
	FontFamily string
}

func DefaultSettings() Settings {
	return Settings{
		StrokeColor:     "#000000",
		StrokeWidth:     3,
		RectColor:       "#000000",
		RectStrokeWidth: 2,
		TextColor:       "#000000",
		FontSize:        16,
		FontFamily:      "sans-serif",
	}
}

type drag struct {
	originX, originY float32
	curX, curY       float32
	// settings captured at drag start; later setting changes apply to the
	// next gesture only.
	settings Settings
}

func (d drag) rect() paper.Rect {
	return paper.NormalizedRect(d.originX, d.originY, d.curX, d.curY)
}

type caret struct {
	x, y     float32
	buf      []rune
	settings Settings
}

// Machine holds the active tool and at most one in-flight gesture state: an
// open stroke, a rectangle drag, an eraser drag, or a text caret.
type Machine struct {
	tool     Kind
	settings Settings

	stroke   *paper.Stroke
	rectDrag *drag
	erasDrag *drag
	caret    *caret

	// OnCommit receives every finished element.
	OnCommit func(paper.Element)
	// OnErase receives the erase area of a finished eraser drag.
	OnErase func(paper.Rect)
	// OnPreview fires whenever the live preview changed.
	OnPreview func()
}

func NewMachine() *Machine {
	return &Machine{tool: Pen, settings: DefaultSettings()}
}

func (m *Machine) Tool() Kind             { return m.tool }
func (m *Machine) Settings() Settings     { return m.settings }
func (m *Machine) SetSettings(s Settings) { m.settings = s }

// SetTool switches the active tool, force-finalizing whatever is in flight
// under the previous one. Unknown names are ignored entirely.
func (m *Machine) SetTool(k Kind) {
	switch k {
	case Pen, Eraser, Rectangle, Text:
	default:
		return
	}
	m.Finalize()
	m.tool = k
}

// Finalize flushes the in-flight state: pending non-empty text is committed,
// open strokes and drags are discarded without committing.
func (m *Machine) Finalize() {
	m.commitCaret()
	m.caret = nil
	m.stroke = nil
	m.rectDrag = nil
	m.erasDrag = nil
	m.previewChanged()
}

func (m *Machine) previewChanged() {
	if m.OnPreview != nil {
		m.OnPreview()
	}
}

func (m *Machine) commit(e paper.Element) {
	if m.OnCommit != nil {
		m.OnCommit(e)
	}
}

// commitCaret flushes pending text if non-empty. The caret itself stays; the
// caller decides whether to close or move it.
func (m *Machine) commitCaret() {
	if m.caret == nil || len(m.caret.buf) == 0 {
		return
	}
	m.commit(&paper.Text{
		ID:         uuid.NewString(),
		X:          m.caret.x,
		Y:          m.caret.y,
		Content:    string(m.caret.buf),
		FontSize:   m.caret.settings.FontSize,
		Color:      m.caret.settings.TextColor,
		FontFamily: m.caret.settings.FontFamily,
	})
	m.caret.buf = nil
}

// GestureStart opens the in-flight state for drag-driven tools.
func (m *Machine) GestureStart(x, y, pressure float32) {
	switch m.tool {
	case Pen:
		m.stroke = &paper.Stroke{
			ID:     uuid.NewString(),
			Points: []paper.Point{{X: x, Y: y, Pressure: pressure}},
			Color:  m.settings.StrokeColor,
			Width:  m.settings.StrokeWidth,
		}
	case Rectangle:
		m.rectDrag = &drag{originX: x, originY: y, curX: x, curY: y, settings: m.settings}
	case Eraser:
		m.erasDrag = &drag{originX: x, originY: y, curX: x, curY: y, settings: m.settings}
	case Text:
		return // text placement happens on click
	}
	m.previewChanged()
}

func (m *Machine) GestureMove(x, y, pressure float32) {
	switch {
	case m.stroke != nil:
		m.stroke.Points = append(m.stroke.Points, paper.Point{X: x, Y: y, Pressure: pressure})
	case m.rectDrag != nil:
		m.rectDrag.curX, m.rectDrag.curY = x, y
	case m.erasDrag != nil:
		m.erasDrag.curX, m.erasDrag.curY = x, y
	default:
		return
	}
	m.previewChanged()
}

// GestureEnd commits the in-flight gesture. Pen strokes always commit, even
// degenerate ones; rectangle and eraser drags must exceed MinDragSize in
// both dimensions or they are discarded silently.
func (m *Machine) GestureEnd(x, y, pressure float32) {
	switch {
	case m.stroke != nil:
		m.stroke.Points = append(m.stroke.Points, paper.Point{X: x, Y: y, Pressure: pressure})
		m.commit(m.stroke)
		m.stroke = nil
	case m.rectDrag != nil:
		m.rectDrag.curX, m.rectDrag.curY = x, y
		r := m.rectDrag.rect()
		s := m.rectDrag.settings
		m.rectDrag = nil
		if r.Width > MinDragSize && r.Height > MinDragSize {
			m.commit(&paper.Rectangle{
				ID:          uuid.NewString(),
				X:           r.X,
				Y:           r.Y,
				Width:       r.Width,
				Height:      r.Height,
				Color:       s.RectColor,
				StrokeWidth: s.RectStrokeWidth,
				Filled:      s.RectFilled,
			})
		}
	case m.erasDrag != nil:
		m.erasDrag.curX, m.erasDrag.curY = x, y
		r := m.erasDrag.rect()
		m.erasDrag = nil
		if r.Width > MinDragSize && r.Height > MinDragSize {
			if m.OnErase != nil {
				m.OnErase(r)
			}
		}
	default:
		return
	}
	m.previewChanged()
}

// Click places or relocates the text caret. Pending non-empty text at the
// old position is committed before the caret moves.
func (m *Machine) Click(x, y float32) {
	if m.tool != Text {
		return
	}
	m.commitCaret()
	m.caret = &caret{x: x, y: y, settings: m.settings}
	m.previewChanged()
}

// HandleKey feeds keyboard input to an open text caret. It reports whether
// the key was consumed, so an outer layer may interpret unconsumed keys as
// shortcuts.
func (m *Machine) HandleKey(ev input.KeyEvent) bool {
	if m.caret == nil {
		return false
	}
	switch ev.Key {
	case "Escape":
		m.commitCaret()
		m.caret = nil
		m.previewChanged()
		return true
	case "Enter":
		x := m.caret.x
		y := m.caret.y + m.caret.settings.FontSize + textLineGap
		m.commitCaret()
		m.caret = &caret{x: x, y: y, settings: m.settings}
		m.previewChanged()
		return true
	case "Backspace":
		if len(m.caret.buf) > 0 {
			m.caret.buf = m.caret.buf[:len(m.caret.buf)-1]
		}
		m.previewChanged()
		return true
	}
	if ev.Ctrl || ev.Meta {
		return false
	}
	r, size := utf8.DecodeRuneInString(ev.Key)
	if size == 0 || size != len(ev.Key) || !unicode.IsPrint(r) {
		return false
	}
	m.caret.buf = append(m.caret.buf, r)
	if ev.PreventDefault != nil {
		ev.PreventDefault()
	}
	m.previewChanged()
	return true
}
