package input

import (
	"log"
	"time"

	"InkBoard/internal/paper"
)

const (
	// PenQuietWindow rejects touch contacts that begin or end shortly after
	// the pen lifts, to catch residual palm contact.
	PenQuietWindow = 500 * time.Millisecond

	// clickDeadZone is the max total movement for a gesture to still count
	// as a tap.
	clickDeadZone = 4
)

// Surface is the device boundary the normalizer attaches to. The UI layer
// implements it and feeds raw events through the registered callbacks.
type Surface interface {
	SetPointerDown(func(PointerEvent))
	SetPointerMove(func(PointerEvent))
	SetPointerUp(func(PointerEvent))
	SetPointerLeave(func())
	SetKeyDown(func(KeyEvent))
}

// Normalizer turns raw surface events into the normalized gesture stream,
// applying device classification and palm rejection. It is driven from the
// surface's event goroutine and is not safe for concurrent use.
type Normalizer struct {
	handlers map[EventKind]map[int]Handler
	nextID   int
	surface  Surface
	now      func() time.Time

	drawing     bool
	gestureDev  Device
	startX      float32
	startY      float32
	lastX       float32
	lastY       float32
	moved       bool
	penActive   bool
	penQuietEnd time.Time
}

func NewNormalizer() *Normalizer {
	return &Normalizer{
		handlers: make(map[EventKind]map[int]Handler),
		now:      time.Now,
	}
}

// On registers a handler for one event kind and returns its subscription
// handle. Handlers of the same kind run in registration order, but no
// ordering is guaranteed between independent listeners.
func (n *Normalizer) On(kind EventKind, h Handler) Subscription {
	n.nextID++
	if n.handlers[kind] == nil {
		n.handlers[kind] = make(map[int]Handler)
	}
	n.handlers[kind][n.nextID] = h
	return Subscription{kind: kind, id: n.nextID}
}

func (n *Normalizer) Off(sub Subscription) {
	delete(n.handlers[sub.kind], sub.id)
}

func (n *Normalizer) emit(ev Event) {
	for _, h := range n.handlers[ev.Kind] {
		h(ev)
	}
}

// Attach binds the normalizer to a surface. A previous surface is detached
// first.
func (n *Normalizer) Attach(s Surface) {
	n.Detach()
	n.surface = s
	s.SetPointerDown(n.PointerDown)
	s.SetPointerMove(n.PointerMove)
	s.SetPointerUp(n.PointerUp)
	s.SetPointerLeave(n.PointerLeave)
	s.SetKeyDown(n.KeyDown)
}

func (n *Normalizer) Detach() {
	if n.surface == nil {
		return
	}
	n.surface.SetPointerDown(nil)
	n.surface.SetPointerMove(nil)
	n.surface.SetPointerUp(nil)
	n.surface.SetPointerLeave(nil)
	n.surface.SetKeyDown(nil)
	n.surface = nil
}

// IsDrawing reports whether a gesture is currently open.
func (n *Normalizer) IsDrawing() bool { return n.drawing }

func pressureOf(ev PointerEvent) float32 {
	if ev.Pressure <= 0 {
		return paper.DefaultPressure
	}
	return ev.Pressure
}

func isPenFamily(d Device) bool { return d == DevicePen || d == DeviceEraser }

// PointerDown classifies the contact and either opens a gesture, emits a
// tool hint, or suppresses the contact outright.
func (n *Normalizer) PointerDown(ev PointerEvent) {
	if isPenFamily(ev.Device) && !n.penActive {
		n.penActive = true
		n.emit(Event{Kind: EventPenActive, PenActive: true})
	}

	switch ev.Device {
	case DeviceEraser:
		// Eraser tip is a tool hint, never a stroke.
		n.emit(Event{Kind: EventPenButton, PenTool: PenHintEraser})
		return
	case DevicePen:
		if ev.Secondary {
			// Barrel button press is a hint only.
			n.emit(Event{Kind: EventPenButton, PenTool: PenHintPen})
			return
		}
	case DeviceTouch:
		if n.penActive {
			log.Printf("input: touch down rejected, pen active")
			return
		}
		if n.now().Before(n.penQuietEnd) {
			log.Printf("input: touch down rejected inside pen quiet window")
			return
		}
	case DeviceMouse:
		if !ev.Primary {
			return
		}
	}

	if n.drawing {
		return
	}
	n.drawing = true
	n.gestureDev = ev.Device
	n.startX, n.startY = ev.X, ev.Y
	n.lastX, n.lastY = ev.X, ev.Y
	n.moved = false
	n.emit(Event{Kind: EventStrokeStart, X: ev.X, Y: ev.Y, Pressure: pressureOf(ev)})
}

// PointerMove forwards movement while a gesture is open. Touch movement is
// still suppressed while a pen is active.
func (n *Normalizer) PointerMove(ev PointerEvent) {
	if !n.drawing {
		return
	}
	if ev.Device == DeviceTouch && n.penActive {
		return
	}
	n.lastX, n.lastY = ev.X, ev.Y
	dx, dy := ev.X-n.startX, ev.Y-n.startY
	if dx*dx+dy*dy > clickDeadZone*clickDeadZone {
		n.moved = true
	}
	n.emit(Event{Kind: EventStrokeMove, X: ev.X, Y: ev.Y, Pressure: pressureOf(ev)})
}

// PointerUp closes the gesture. The tracked pen lifting always clears the
// active-pen flag and starts the quiet window, stroke open or not.
func (n *Normalizer) PointerUp(ev PointerEvent) {
	if isPenFamily(ev.Device) && n.penActive {
		n.penActive = false
		n.penQuietEnd = n.now().Add(PenQuietWindow)
		n.emit(Event{Kind: EventPenActive, PenActive: false})
	}

	if !n.drawing || ev.Device != n.gestureDev {
		return
	}
	n.drawing = false

	if n.gestureDev == DeviceTouch && n.now().Before(n.penQuietEnd) {
		log.Printf("input: touch up rejected inside pen quiet window")
		return
	}

	n.emit(Event{Kind: EventStrokeEnd, X: ev.X, Y: ev.Y, Pressure: pressureOf(ev)})
	if !n.moved {
		n.emit(Event{Kind: EventClick, X: ev.X, Y: ev.Y})
	}
}

// PointerLeave ends an open gesture at the last known position. No click is
// emitted for a gesture that left the surface.
func (n *Normalizer) PointerLeave() {
	if !n.drawing {
		return
	}
	n.drawing = false
	n.emit(Event{Kind: EventStrokeEnd, X: n.lastX, Y: n.lastY, Pressure: paper.DefaultPressure})
}

// KeyDown forwards keyboard input verbatim.
func (n *Normalizer) KeyDown(ev KeyEvent) {
	n.emit(Event{Kind: EventKey, Key: ev})
}
