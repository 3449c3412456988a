// Package input normalizes raw pointing-device and keyboard events into a
// small gesture vocabulary. It knows the device surface only; tools and
// papers live upstream of it.
package input

// Device classifies the hardware source of a pointer event.
type Device int

const (
	DeviceMouse Device = iota
	DeviceTouch
	DevicePen
	DeviceEraser // a stylus contacting with its eraser tip
)

func (d Device) String() string {
	switch d {
	case DeviceMouse:
		return "mouse"
	case DeviceTouch:
		return "touch"
	case DevicePen:
		return "pen"
	case DeviceEraser:
		return "eraser"
	}
	return "unknown"
}

// PointerEvent is a raw surface event before normalization. Coordinates are
// already relative to the drawing surface origin. Pressure 0 means the
// device does not report pressure.
type PointerEvent struct {
	Device    Device
	X, Y      float32
	Pressure  float32
	Primary   bool // primary button / tip contact
	Secondary bool // barrel or secondary button
}

// KeyEvent is forwarded verbatim to subscribers. PreventDefault, when
// non-nil, asks the surface to swallow the native action for this key.
type KeyEvent struct {
	Key            string
	Code           string
	Ctrl           bool
	Alt            bool
	Shift          bool
	Meta           bool
	PreventDefault func()
}

type EventKind int

const (
	EventStrokeStart EventKind = iota
	EventStrokeMove
	EventStrokeEnd
	EventClick
	EventKey
	EventPenButton
	EventPenActive
)

// Pen button hints carried by EventPenButton.
const (
	PenHintEraser = "eraser"
	PenHintPen    = "pen"
)

// Event is the normalized record delivered to subscribers. Which fields are
// meaningful depends on Kind: stroke and click events carry X/Y/Pressure,
// key events carry Key, pen-button events carry PenTool, pen-active events
// carry PenActive.
type Event struct {
	Kind      EventKind
	X, Y      float32
	Pressure  float32
	Key       KeyEvent
	PenTool   string
	PenActive bool
}

type Handler func(Event)

// Subscription identifies one registered handler for removal via Off.
type Subscription struct {
	kind EventKind
	id   int
}
