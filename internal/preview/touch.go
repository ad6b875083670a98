package preview

// TouchEventType is the gesture a touch sequence is interpreted as.
type TouchEventType int

const (
	TouchNone TouchEventType = iota
	TouchMove
	TouchZoom
)

func (t TouchEventType) String() string {
	switch t {
	case TouchMove:
		return "move"
	case TouchZoom:
		return "touchZoom"
	default:
		return "none"
	}
}

// TouchPointInfo is the state of the current touch gesture. For a one finger
// move Point1 holds the finger position minus the translation at start.
type TouchPointInfo struct {
	Point1         Point
	Point2         Point
	StartTransform Transform
	EventType      TouchEventType
}

// TouchHandler implements one finger panning and two finger pinch zoom.
type TouchHandler struct {
	g        gesture
	minScale float64

	window    EventTarget
	movable   bool
	info      TouchPointInfo
	listeners bindings
}

func newTouchHandler(g gesture, minScale float64, window EventTarget) *TouchHandler {
	return &TouchHandler{g: g, minScale: minScale, window: window}
}

// Info returns the current gesture state.
func (h *TouchHandler) Info() TouchPointInfo {
	return h.info
}

// Touching reports whether a gesture is in progress.
func (h *TouchHandler) Touching() bool {
	return h.info.EventType != TouchNone
}

// SetMovable enables or disables touch gestures.
func (h *TouchHandler) SetMovable(movable bool) {
	h.movable = movable
	h.sync()
}

// sync installs the scroll-suppressing listener while open and movable.
func (h *TouchHandler) sync() {
	want := h.movable && h.g.open() && h.window != nil
	bound := len(h.listeners) > 0
	switch {
	case want && !bound:
		handle, err := h.window.Bind(EventTouchMove, func(ev any) {
			if te, ok := ev.(*TouchEvent); ok {
				te.DefaultPrevented = true
			}
		})
		if err == nil {
			h.listeners.add(handle)
		}
	case !want && bound:
		h.listeners.removeAll()
	}
}

// cancel forgets the gesture without a rebound or scale correction.
func (h *TouchHandler) cancel() {
	h.info = TouchPointInfo{}
}

// Close removes the window listener and forgets the gesture.
func (h *TouchHandler) Close() {
	h.movable = false
	h.cancel()
	h.listeners.removeAll()
}

// TouchStart begins a move or pinch depending on the finger count.
func (h *TouchHandler) TouchStart(ev *TouchEvent) {
	if !h.movable || len(ev.Touches) == 0 {
		return
	}
	ev.Handled = true

	t := h.g.store.Latest()
	if len(ev.Touches) > 1 {
		h.info = TouchPointInfo{
			Point1:         ev.Touches[0],
			Point2:         ev.Touches[1],
			StartTransform: t,
			EventType:      TouchZoom,
		}
		return
	}
	h.info = TouchPointInfo{
		Point1:         Point{X: ev.Touches[0].X - t.X, Y: ev.Touches[0].Y - t.Y},
		StartTransform: t,
		EventType:      TouchMove,
	}
}

// TouchMove pans or zooms. Pinch ratios are incremental: each move is
// measured against the previous move, not the gesture start.
func (h *TouchHandler) TouchMove(ev *TouchEvent) {
	if len(ev.Touches) == 0 {
		return
	}

	switch {
	case len(ev.Touches) > 1 && h.info.EventType == TouchZoom:
		p1, p2 := ev.Touches[0], ev.Touches[1]
		oldDist := h.info.Point1.Distance(h.info.Point2)
		if oldDist == 0 {
			h.info.Point1, h.info.Point2 = p1, p2
			return
		}
		center := p1.Midpoint(p2)
		ratio := p1.Distance(p2) / oldDist
		h.g.zoomer.Zoom(ratio, ActionTouchZoom, &center, true)
		h.info.Point1, h.info.Point2 = p1, p2

	case h.info.EventType == TouchMove:
		p := ev.Touches[0]
		h.g.store.Update(Translate(p.X-h.info.Point1.X, p.Y-h.info.Point1.Y), ActionMove)
	}
}

// TouchEnd finishes the gesture. An under-scaled image snaps back to the
// minimum scale; otherwise a moved image is rebounded.
func (h *TouchHandler) TouchEnd(ev *TouchEvent) {
	if !h.g.open() {
		return
	}
	info := h.info
	h.info = TouchPointInfo{EventType: TouchNone}

	t := h.g.store.Latest()
	if t.Scale < h.minScale {
		h.g.store.Update(ZoomTo(0, 0, h.minScale), ActionTouchZoom)
		return
	}

	if info.EventType != TouchMove {
		return
	}
	// Same both-axes test as the mouse handler.
	if t.X != info.StartTransform.X && t.Y != info.StartTransform.Y {
		h.g.rebound()
	}
}

// TouchCancel behaves like TouchEnd.
func (h *TouchHandler) TouchCancel(ev *TouchEvent) {
	h.TouchEnd(ev)
}
