package core

// Key is a physical key the game reacts to, abstracted from the terminal's
// key names. Arrow keys and Enter are folded into these by the platform.
type Key int

const (
	KeyUnknown Key = iota
	KeyW           // steer up, menu up
	KeyA           // steer left
	KeyS           // steer down, menu down
	KeyD           // steer right
	KeySpace       // confirm map selection
	KeyR           // restart after death
	KeyM           // return to menu after death
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyW:
		return "W"
	case KeyA:
		return "A"
	case KeyS:
		return "S"
	case KeyD:
		return "D"
	case KeySpace:
		return "Space"
	case KeyR:
		return "R"
	case KeyM:
		return "M"
	default:
		return "Unknown"
	}
}

// SteerDirection maps a steering key to its heading.
// ok is false for keys that do not steer.
func (k Key) SteerDirection() (d Direction, ok bool) {
	switch k {
	case KeyW:
		return DirUp, true
	case KeyD:
		return DirRight, true
	case KeyS:
		return DirDown, true
	case KeyA:
		return DirLeft, true
	}
	return 0, false
}

// EventKind distinguishes input events.
type EventKind int

const (
	EventKeyDown EventKind = iota
	EventQuit
)

// Event is a single discrete input event.
type Event struct {
	Kind EventKind
	Key  Key // set for EventKeyDown
}

// KeyDown builds a key press event.
func KeyDown(k Key) Event {
	return Event{Kind: EventKeyDown, Key: k}
}

// Quit builds a quit request event.
func Quit() Event {
	return Event{Kind: EventQuit}
}

// InputFrame is the ordered batch of events collected between two ticks.
// States consume the whole frame at the start of a tick.
type InputFrame struct {
	Events []Event
}

// NewInputFrame creates a frame holding the given events in order.
func NewInputFrame(events ...Event) InputFrame {
	return InputFrame{Events: events}
}

// Push appends an event to the frame.
func (f *InputFrame) Push(e Event) {
	f.Events = append(f.Events, e)
}

// PushKey appends a key press to the frame.
func (f *InputFrame) PushKey(k Key) {
	f.Push(KeyDown(k))
}

// Clear drops all events, keeping the backing storage for the next tick.
func (f *InputFrame) Clear() {
	f.Events = f.Events[:0]
}
