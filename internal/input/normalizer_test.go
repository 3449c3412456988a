package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []Event
}

func (r *recorder) subscribeAll(n *Normalizer) {
	kinds := []EventKind{
		EventStrokeStart, EventStrokeMove, EventStrokeEnd,
		EventClick, EventKey, EventPenButton, EventPenActive,
	}
	for _, k := range kinds {
		n.On(k, func(ev Event) { r.events = append(r.events, ev) })
	}
}

func (r *recorder) kinds() []EventKind {
	out := make([]EventKind, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Kind
	}
	return out
}

func (r *recorder) ofKind(k EventKind) []Event {
	var out []Event
	for _, ev := range r.events {
		if ev.Kind == k {
			out = append(out, ev)
		}
	}
	return out
}

func newTestNormalizer() (*Normalizer, *recorder, *time.Time) {
	n := NewNormalizer()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	n.now = func() time.Time { return now }
	r := &recorder{}
	r.subscribeAll(n)
	return n, r, &now
}

func down(d Device, x, y float32) PointerEvent {
	return PointerEvent{Device: d, X: x, Y: y, Primary: true}
}

func TestMouseDrawGesture(t *testing.T) {
	n, r, _ := newTestNormalizer()

	n.PointerDown(down(DeviceMouse, 1, 2))
	assert.True(t, n.IsDrawing())
	n.PointerMove(PointerEvent{Device: DeviceMouse, X: 10, Y: 12})
	n.PointerUp(PointerEvent{Device: DeviceMouse, X: 20, Y: 22})
	assert.False(t, n.IsDrawing())

	assert.Equal(t, []EventKind{EventStrokeStart, EventStrokeMove, EventStrokeEnd}, r.kinds())
	assert.Equal(t, float32(1), r.events[0].X)
	assert.Equal(t, float32(20), r.events[2].X)
}

func TestTapEmitsClick(t *testing.T) {
	n, r, _ := newTestNormalizer()

	n.PointerDown(down(DeviceMouse, 5, 5))
	n.PointerMove(PointerEvent{Device: DeviceMouse, X: 6, Y: 6}) // inside dead zone
	n.PointerUp(PointerEvent{Device: DeviceMouse, X: 6, Y: 6})

	clicks := r.ofKind(EventClick)
	require.Len(t, clicks, 1)
	assert.Equal(t, float32(6), clicks[0].X, "click lands at the release coordinates")
}

func TestDragEmitsNoClick(t *testing.T) {
	n, r, _ := newTestNormalizer()

	n.PointerDown(down(DeviceMouse, 5, 5))
	n.PointerMove(PointerEvent{Device: DeviceMouse, X: 50, Y: 50})
	n.PointerUp(PointerEvent{Device: DeviceMouse, X: 50, Y: 50})

	assert.Empty(t, r.ofKind(EventClick))
}

func TestPressureDefault(t *testing.T) {
	n, r, _ := newTestNormalizer()

	n.PointerDown(down(DeviceMouse, 0, 0))
	n.PointerUp(PointerEvent{Device: DeviceMouse, Pressure: 0.8})

	assert.Equal(t, float32(0.5), r.ofKind(EventStrokeStart)[0].Pressure)
	assert.Equal(t, float32(0.8), r.ofKind(EventStrokeEnd)[0].Pressure)
}

func TestSecondaryMouseButtonIgnored(t *testing.T) {
	n, r, _ := newTestNormalizer()
	n.PointerDown(PointerEvent{Device: DeviceMouse, Secondary: true})
	assert.Empty(t, r.events)
	assert.False(t, n.IsDrawing())
}

func TestPenActivation(t *testing.T) {
	n, r, _ := newTestNormalizer()

	n.PointerDown(down(DevicePen, 1, 1))
	n.PointerUp(PointerEvent{Device: DevicePen, X: 2, Y: 2, Primary: true})

	active := r.ofKind(EventPenActive)
	require.Len(t, active, 2)
	assert.True(t, active[0].PenActive)
	assert.False(t, active[1].PenActive)
	require.Len(t, r.ofKind(EventStrokeStart), 1)
	require.Len(t, r.ofKind(EventStrokeEnd), 1)
}

func TestPalmRejectionWhilePenActive(t *testing.T) {
	n, r, _ := newTestNormalizer()

	n.PointerDown(down(DevicePen, 1, 1))
	n.PointerDown(down(DeviceTouch, 100, 100))

	assert.Len(t, r.ofKind(EventStrokeStart), 1, "the palm touch never reaches listeners")
	assert.Equal(t, float32(1), r.ofKind(EventStrokeStart)[0].X)
}

func TestTouchRejectedInQuietWindow(t *testing.T) {
	n, r, now := newTestNormalizer()

	n.PointerDown(down(DevicePen, 1, 1))
	n.PointerUp(PointerEvent{Device: DevicePen, Primary: true})

	*now = now.Add(300 * time.Millisecond)
	n.PointerDown(down(DeviceTouch, 5, 5))
	assert.Len(t, r.ofKind(EventStrokeStart), 1, "residual palm contact right after pen lift is rejected")

	*now = now.Add(300 * time.Millisecond) // 600ms after pen lift
	n.PointerDown(down(DeviceTouch, 5, 5))
	assert.Len(t, r.ofKind(EventStrokeStart), 2)
}

func TestTouchMoveSuppressedWhilePenActive(t *testing.T) {
	n, r, _ := newTestNormalizer()

	n.PointerDown(down(DeviceTouch, 1, 1))
	n.PointerDown(down(DevicePen, 50, 50)) // pen arrives mid-touch
	n.PointerMove(PointerEvent{Device: DeviceTouch, X: 2, Y: 2})

	assert.Empty(t, r.ofKind(EventStrokeMove))
}

func TestTouchEndSuppressedInQuietWindow(t *testing.T) {
	n, r, _ := newTestNormalizer()

	n.PointerDown(down(DeviceTouch, 1, 1))
	n.PointerDown(down(DevicePen, 50, 50))
	n.PointerUp(PointerEvent{Device: DevicePen, Primary: true})

	// Touch lifts inside the quiet window: the whole gesture is dropped.
	n.PointerUp(PointerEvent{Device: DeviceTouch, X: 1, Y: 1, Primary: true})
	assert.Empty(t, r.ofKind(EventStrokeEnd))
	assert.Empty(t, r.ofKind(EventClick))
	assert.False(t, n.IsDrawing())
}

func TestEraserTipHintsInsteadOfStroke(t *testing.T) {
	n, r, _ := newTestNormalizer()

	n.PointerDown(down(DeviceEraser, 1, 1))

	hints := r.ofKind(EventPenButton)
	require.Len(t, hints, 1)
	assert.Equal(t, PenHintEraser, hints[0].PenTool)
	assert.Empty(t, r.ofKind(EventStrokeStart))
	assert.False(t, n.IsDrawing())

	// The eraser tip still counts as an active pen for palm rejection.
	n.PointerDown(down(DeviceTouch, 5, 5))
	assert.Empty(t, r.ofKind(EventStrokeStart))
}

func TestPenBarrelButtonHintsOnly(t *testing.T) {
	n, r, _ := newTestNormalizer()

	n.PointerDown(PointerEvent{Device: DevicePen, X: 1, Y: 1, Secondary: true})

	hints := r.ofKind(EventPenButton)
	require.Len(t, hints, 1)
	assert.Equal(t, PenHintPen, hints[0].PenTool)
	assert.Empty(t, r.ofKind(EventStrokeStart))
}

func TestPenUpAlwaysClearsActiveFlag(t *testing.T) {
	n, r, _ := newTestNormalizer()

	n.PointerDown(down(DeviceEraser, 1, 1)) // no stroke opened
	n.PointerUp(PointerEvent{Device: DeviceEraser, Primary: true})

	active := r.ofKind(EventPenActive)
	require.Len(t, active, 2)
	assert.False(t, active[1].PenActive, "pen-active(false) fires even without an open stroke")
}

func TestPointerLeaveEndsGesture(t *testing.T) {
	n, r, _ := newTestNormalizer()

	n.PointerDown(down(DeviceMouse, 1, 1))
	n.PointerMove(PointerEvent{Device: DeviceMouse, X: 30, Y: 40})
	n.PointerLeave()

	ends := r.ofKind(EventStrokeEnd)
	require.Len(t, ends, 1)
	assert.Equal(t, float32(30), ends[0].X, "gesture ends at the last known position")
	assert.Empty(t, r.ofKind(EventClick))
	assert.False(t, n.IsDrawing())
}

func TestKeyForwarding(t *testing.T) {
	n, r, _ := newTestNormalizer()

	prevented := false
	n.KeyDown(KeyEvent{Key: "a", Code: "KeyA", Ctrl: true, PreventDefault: func() { prevented = true }})

	keys := r.ofKind(EventKey)
	require.Len(t, keys, 1)
	assert.Equal(t, "a", keys[0].Key.Key)
	assert.True(t, keys[0].Key.Ctrl)
	keys[0].Key.PreventDefault()
	assert.True(t, prevented)
}

func TestOffUnsubscribes(t *testing.T) {
	n := NewNormalizer()
	calls := 0
	sub := n.On(EventStrokeStart, func(Event) { calls++ })

	n.PointerDown(down(DeviceMouse, 0, 0))
	n.PointerUp(PointerEvent{Device: DeviceMouse, Primary: true})
	n.Off(sub)
	n.PointerDown(down(DeviceMouse, 0, 0))

	assert.Equal(t, 1, calls)
}

type fakeSurface struct {
	downs  func(PointerEvent)
	moves  func(PointerEvent)
	ups    func(PointerEvent)
	leaves func()
	keys   func(KeyEvent)
}

func (s *fakeSurface) SetPointerDown(fn func(PointerEvent)) { s.downs = fn }
func (s *fakeSurface) SetPointerMove(fn func(PointerEvent)) { s.moves = fn }
func (s *fakeSurface) SetPointerUp(fn func(PointerEvent))   { s.ups = fn }
func (s *fakeSurface) SetPointerLeave(fn func())            { s.leaves = fn }
func (s *fakeSurface) SetKeyDown(fn func(KeyEvent))         { s.keys = fn }

func TestAttachDetach(t *testing.T) {
	n, r, _ := newTestNormalizer()
	s := &fakeSurface{}

	n.Attach(s)
	require.NotNil(t, s.downs)
	s.downs(down(DeviceMouse, 3, 3))
	assert.Len(t, r.ofKind(EventStrokeStart), 1)

	n.Detach()
	assert.Nil(t, s.downs)
	assert.Nil(t, s.keys)
}
