package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"InkBoard/internal/input"
	"InkBoard/internal/paper"
	"InkBoard/internal/tool"
)

// BoardWidget is the drawing surface. It plays two roles: it is the device
// surface the input normalizer attaches to (desktop mouse and key events
// become raw pointer/key events), and its renderer paints the live paper
// plus the active tool preview.
type BoardWidget struct {
	widget.BaseWidget
	mgr     *paper.Manager
	machine *tool.Machine

	pointerDown func(input.PointerEvent)
	pointerMove func(input.PointerEvent)
	pointerUp   func(input.PointerEvent)
	pointerLeav func()
	keyDown     func(input.KeyEvent)
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Focusable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ input.Surface = (*BoardWidget)(nil)

func NewBoardWidget(mgr *paper.Manager, machine *tool.Machine) *BoardWidget {
	b := &BoardWidget{mgr: mgr, machine: machine}
	b.ExtendBaseWidget(b)
	return b
}

// input.Surface registration

func (b *BoardWidget) SetPointerDown(fn func(input.PointerEvent)) { b.pointerDown = fn }
func (b *BoardWidget) SetPointerMove(fn func(input.PointerEvent)) { b.pointerMove = fn }
func (b *BoardWidget) SetPointerUp(fn func(input.PointerEvent))   { b.pointerUp = fn }
func (b *BoardWidget) SetPointerLeave(fn func())                  { b.pointerLeav = fn }
func (b *BoardWidget) SetKeyDown(fn func(input.KeyEvent))         { b.keyDown = fn }

// The desktop driver reports mice only; touch and pen classification comes
// from drivers that provide it. Positions are already widget-relative.
func mouseEvent(e *desktop.MouseEvent) input.PointerEvent {
	return input.PointerEvent{
		Device:    input.DeviceMouse,
		X:         e.Position.X,
		Y:         e.Position.Y,
		Primary:   e.Button == desktop.MouseButtonPrimary,
		Secondary: e.Button == desktop.MouseButtonSecondary,
	}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if b.pointerDown != nil {
		b.pointerDown(mouseEvent(e))
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if b.pointerUp != nil {
		b.pointerUp(mouseEvent(e))
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if b.pointerMove != nil {
		b.pointerMove(input.PointerEvent{
			Device:  input.DeviceMouse,
			X:       e.Position.X,
			Y:       e.Position.Y,
			Primary: true,
		})
	}
}

func (b *BoardWidget) DragEnd() {}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

func (b *BoardWidget) MouseOut() {
	if b.pointerLeav != nil {
		b.pointerLeav()
	}
}

// Keyboard focus: the board grabs focus so the text tool receives typing.

func (b *BoardWidget) FocusGained() {}
func (b *BoardWidget) FocusLost()   {}

func (b *BoardWidget) TypedRune(r rune) {
	if b.keyDown != nil {
		b.keyDown(input.KeyEvent{Key: string(r)})
	}
}

func (b *BoardWidget) TypedKey(e *fyne.KeyEvent) {
	if b.keyDown == nil {
		return
	}
	var key string
	switch e.Name {
	case fyne.KeyReturn, fyne.KeyEnter:
		key = "Enter"
	case fyne.KeyEscape:
		key = "Escape"
	case fyne.KeyBackspace:
		key = "Backspace"
	default:
		return // printable input arrives through TypedRune
	}
	b.keyDown(input.KeyEvent{Key: key, Code: string(e.Name)})
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	return r
}

type boardRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	size       fyne.Size
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.size = size
	r.background.Resize(size)
}

func (r *boardRenderer) MinSize() fyne.Size { return fyne.NewSize(400, 300) }

func (r *boardRenderer) Refresh() { canvas.Refresh(r.board) }

func (r *boardRenderer) Destroy() {}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	objects := []fyne.CanvasObject{r.background}
	snap := r.board.mgr.Snapshot()
	objects = append(objects, gridObjects(snap.Grid, r.size)...)
	for _, el := range snap.Elements {
		objects = append(objects, elementObjects(el)...)
	}
	if pv, ok := r.board.machine.ActivePreview(); ok {
		objects = append(objects, previewObjects(pv)...)
	}
	return objects
}

func gridObjects(g paper.GridSettings, size fyne.Size) []fyne.CanvasObject {
	if g.Type == paper.GridNone || g.Spacing <= 0 {
		return nil
	}
	col := applyOpacity(parseColor(g.Color), g.Opacity)
	var lines []fyne.CanvasObject
	if g.Type == paper.GridHorizontal || g.Type == paper.GridSquare {
		for y := g.Spacing; y < size.Height; y += g.Spacing {
			l := canvas.NewLine(col)
			l.StrokeWidth = 1
			l.Position1 = fyne.NewPos(0, y)
			l.Position2 = fyne.NewPos(size.Width, y)
			lines = append(lines, l)
		}
	}
	if g.Type == paper.GridVertical || g.Type == paper.GridSquare {
		for x := g.Spacing; x < size.Width; x += g.Spacing {
			l := canvas.NewLine(col)
			l.StrokeWidth = 1
			l.Position1 = fyne.NewPos(x, 0)
			l.Position2 = fyne.NewPos(x, size.Height)
			lines = append(lines, l)
		}
	}
	return lines
}

func strokeLines(points []paper.Point, col color.Color, width float32) []fyne.CanvasObject {
	var out []fyne.CanvasObject
	for i := 1; i < len(points); i++ {
		seg := canvas.NewLine(col)
		seg.StrokeWidth = width
		seg.Position1 = fyne.NewPos(points[i-1].X, points[i-1].Y)
		seg.Position2 = fyne.NewPos(points[i].X, points[i].Y)
		out = append(out, seg)
	}
	return out
}

func elementObjects(el paper.Element) []fyne.CanvasObject {
	switch e := el.(type) {
	case *paper.Stroke:
		return strokeLines(e.Points, parseColor(e.Color), e.Width)
	case *paper.Rectangle:
		rect := canvas.NewRectangle(color.Transparent)
		if e.Filled {
			rect.FillColor = parseColor(e.Color)
		} else {
			rect.StrokeColor = parseColor(e.Color)
			rect.StrokeWidth = e.StrokeWidth
		}
		rect.Move(fyne.NewPos(e.X, e.Y))
		rect.Resize(fyne.NewSize(e.Width, e.Height))
		return []fyne.CanvasObject{rect}
	case *paper.Text:
		txt := canvas.NewText(e.Content, parseColor(e.Color))
		txt.TextSize = e.FontSize
		txt.Move(fyne.NewPos(e.X, e.Y))
		return []fyne.CanvasObject{txt}
	}
	return nil
}

func previewObjects(pv tool.Preview) []fyne.CanvasObject {
	switch pv.Kind {
	case tool.PreviewStroke:
		return strokeLines(pv.Stroke.Points, parseColor(pv.Stroke.Color), pv.Stroke.Width)
	case tool.PreviewRect:
		rect := canvas.NewRectangle(color.Transparent)
		if pv.Filled {
			rect.FillColor = applyOpacity(parseColor(pv.Color), 0.6)
		} else {
			rect.StrokeColor = parseColor(pv.Color)
			rect.StrokeWidth = pv.StrokeWidth
		}
		rect.Move(fyne.NewPos(pv.Rect.X, pv.Rect.Y))
		rect.Resize(fyne.NewSize(pv.Rect.Width, pv.Rect.Height))
		return []fyne.CanvasObject{rect}
	case tool.PreviewEraser:
		// Selection highlight, visually distinct from the rectangle tool.
		rect := canvas.NewRectangle(color.NRGBA{R: 66, G: 135, B: 245, A: 60})
		rect.StrokeColor = color.NRGBA{R: 66, G: 135, B: 245, A: 200}
		rect.StrokeWidth = 1
		rect.Move(fyne.NewPos(pv.Rect.X, pv.Rect.Y))
		rect.Resize(fyne.NewSize(pv.Rect.Width, pv.Rect.Height))
		return []fyne.CanvasObject{rect}
	case tool.PreviewTextCursor:
		cur := canvas.NewLine(parseColor(pv.Color))
		cur.StrokeWidth = 1
		cur.Position1 = fyne.NewPos(pv.X, pv.Y)
		cur.Position2 = fyne.NewPos(pv.X, pv.Y+pv.FontSize)
		return []fyne.CanvasObject{cur}
	case tool.PreviewText:
		txt := canvas.NewText(pv.Text, parseColor(pv.Color))
		txt.TextSize = pv.FontSize
		txt.Move(fyne.NewPos(pv.X, pv.Y))
		cur := canvas.NewLine(parseColor(pv.Color))
		cur.StrokeWidth = 1
		w := float32(len([]rune(pv.Text))) * pv.FontSize * 0.6
		cur.Position1 = fyne.NewPos(pv.X+w, pv.Y)
		cur.Position2 = fyne.NewPos(pv.X+w, pv.Y+pv.FontSize)
		return []fyne.CanvasObject{txt, cur}
	}
	return nil
}
