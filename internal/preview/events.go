package preview

import (
	"errors"
	"sync"
)

// EventKind identifies a window level event stream.
type EventKind int

const (
	EventPointerMove EventKind = iota
	EventPointerUp
	EventTouchMove
)

// MouseButton identifies a pointer button.
type MouseButton int

const (
	ButtonPrimary MouseButton = iota
	ButtonSecondary
	ButtonMiddle
)

// PointerEvent is a mouse event in screen coordinates.
type PointerEvent struct {
	X, Y   float64
	Button MouseButton

	// Handled is set by a handler that consumed the event.
	Handled bool
}

// Point returns the event position.
func (e *PointerEvent) Point() Point {
	return Point{X: e.X, Y: e.Y}
}

// WheelEvent is a scroll event. DeltaY is in pixels, positive scrolls down.
type WheelEvent struct {
	X, Y   float64
	DeltaX float64
	DeltaY float64
}

// TouchEvent lists the active contact points, oldest first.
type TouchEvent struct {
	Touches []Point

	// DefaultPrevented is set when the host should not scroll the page.
	DefaultPrevented bool
	Handled          bool
}

// Key identifies a keyboard key the preview reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyLeft
	KeyRight
)

// KeyEvent is a key press.
type KeyEvent struct {
	Key Key
}

// ErrCrossOrigin is returned by targets that refuse listeners from an
// embedded context.
var ErrCrossOrigin = errors.New("cross-origin access denied")

// Listener receives a window level event. The argument is a *PointerEvent
// or a *TouchEvent depending on the kind.
type Listener func(ev any)

// Handle removes a bound listener.
type Handle interface {
	Remove()
}

// EventTarget accepts listeners for window level events.
type EventTarget interface {
	Bind(kind EventKind, fn Listener) (Handle, error)
}

// Target is an EventTarget that fans events out to its listeners.
type Target struct {
	mu        sync.Mutex
	listeners map[EventKind][]targetListener
	nextID    uint32
}

type targetListener struct {
	id uint32
	fn Listener
}

type targetHandle struct {
	target *Target
	kind   EventKind
	id     uint32
}

// NewTarget creates a Target with no listeners.
func NewTarget() *Target {
	return &Target{listeners: make(map[EventKind][]targetListener)}
}

// Bind implements EventTarget.
func (t *Target) Bind(kind EventKind, fn Listener) (Handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	t.listeners[kind] = append(t.listeners[kind], targetListener{id: t.nextID, fn: fn})
	return &targetHandle{target: t, kind: kind, id: t.nextID}, nil
}

// Remove implements Handle. Removing twice is a no-op.
func (h *targetHandle) Remove() {
	if h.target == nil {
		return
	}
	t := h.target
	h.target = nil

	t.mu.Lock()
	defer t.mu.Unlock()

	ls := t.listeners[h.kind]
	for i, l := range ls {
		if l.id == h.id {
			t.listeners[h.kind] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// Count returns the number of listeners bound for kind.
func (t *Target) Count(kind EventKind) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners[kind])
}

// Dispatch delivers ev to every listener of kind bound at call time.
// Listeners may unbind themselves during dispatch.
func (t *Target) Dispatch(kind EventKind, ev any) {
	t.mu.Lock()
	snapshot := make([]targetListener, len(t.listeners[kind]))
	copy(snapshot, t.listeners[kind])
	t.mu.Unlock()

	for _, l := range snapshot {
		l.fn(ev)
	}
}

// bindings collects handles so they can be removed together.
type bindings []Handle

func (b *bindings) add(h Handle) {
	*b = append(*b, h)
}

func (b *bindings) removeAll() {
	for _, h := range *b {
		h.Remove()
	}
	*b = nil
}
