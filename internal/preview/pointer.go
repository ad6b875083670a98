package preview

import "log"

// gesture bundles what the gesture handlers read and write.
type gesture struct {
	store    *Store
	zoomer   *Zoomer
	element  Element
	viewport Viewport
	open     func() bool
}

// rebound issues a dragRebound update if the image has left the viewport.
func (g gesture) rebound() {
	fix, ok := reboundFor(g.element, g.store.Latest(), g.viewport.ClientSize())
	if ok {
		g.store.Update(fix, ActionDragRebound)
	}
}

// dragStart is captured on pointer down.
type dragStart struct {
	diffX, diffY           float64
	transformX, transformY float64
}

// PointerHandler implements mouse drag panning, wheel zoom and double click.
//
// Move and up events are taken from window level targets while the image is
// movable, so a drag keeps tracking when the cursor leaves the image.
type PointerHandler struct {
	g    gesture
	step float64

	window EventTarget
	parent EventTarget // optional embedding context

	movable   bool
	moving    bool
	start     dragStart
	listeners bindings
}

func newPointerHandler(g gesture, step float64, window, parent EventTarget) *PointerHandler {
	return &PointerHandler{g: g, step: step, window: window, parent: parent}
}

// Moving reports whether a drag is in progress.
func (h *PointerHandler) Moving() bool {
	return h.moving
}

// SetMovable enables or disables dragging, binding or unbinding the window
// listeners accordingly.
func (h *PointerHandler) SetMovable(movable bool) {
	if movable == h.movable {
		return
	}
	h.movable = movable
	if !movable {
		h.moving = false
		h.listeners.removeAll()
		return
	}
	h.bind()
}

func (h *PointerHandler) bind() {
	if h.window != nil {
		h.bindTo(h.window)
	}
	if h.parent == nil {
		return
	}
	if err := h.bindTo(h.parent); err != nil {
		log.Printf("Warning: lightbox: mirrored pointer listeners unavailable: %v", err)
	}
}

func (h *PointerHandler) bindTo(target EventTarget) error {
	up, err := target.Bind(EventPointerUp, func(ev any) {
		if pe, ok := ev.(*PointerEvent); ok {
			h.PointerUp(pe)
		}
	})
	if err != nil {
		return err
	}
	h.listeners.add(up)

	move, err := target.Bind(EventPointerMove, func(ev any) {
		if pe, ok := ev.(*PointerEvent); ok {
			h.PointerMove(pe)
		}
	})
	if err != nil {
		return err
	}
	h.listeners.add(move)
	return nil
}

// cancel abandons a drag without a rebound.
func (h *PointerHandler) cancel() {
	h.moving = false
	h.start = dragStart{}
}

// Close removes every listener. The handler is unusable afterwards.
func (h *PointerHandler) Close() {
	h.movable = false
	h.cancel()
	h.listeners.removeAll()
}

// PointerDown starts a drag on a primary button press.
func (h *PointerHandler) PointerDown(ev *PointerEvent) {
	if !h.movable || ev.Button != ButtonPrimary || !h.g.open() {
		return
	}
	ev.Handled = true

	t := h.g.store.Latest()
	h.start = dragStart{
		diffX:      ev.X - t.X,
		diffY:      ev.Y - t.Y,
		transformX: t.X,
		transformY: t.Y,
	}
	h.moving = true
}

// PointerMove follows the cursor while dragging.
func (h *PointerHandler) PointerMove(ev *PointerEvent) {
	if !h.moving || !h.g.open() {
		return
	}
	h.g.store.Update(Translate(ev.X-h.start.diffX, ev.Y-h.start.diffY), ActionMove)
}

// PointerUp ends a drag and pulls the image back into view if needed.
func (h *PointerHandler) PointerUp(ev *PointerEvent) {
	if !h.moving || !h.g.open() {
		return
	}
	h.moving = false

	t := h.g.store.Latest()
	// Both axes must differ; a drag along exactly one axis is not rebounded.
	changed := t.X != h.start.transformX && t.Y != h.start.transformY
	if !changed {
		return
	}
	h.g.rebound()
}

// Wheel zooms around the cursor.
func (h *PointerHandler) Wheel(ev *WheelEvent) {
	if !h.g.open() || ev.DeltaY == 0 {
		return
	}
	h.g.zoomer.Zoom(wheelRatio(ev.DeltaY, h.step), ActionWheel, &Point{X: ev.X, Y: ev.Y}, false)
}

// DoubleClick toggles between the identity scale and one zoom step.
func (h *PointerHandler) DoubleClick(ev *PointerEvent) {
	if !h.g.open() {
		return
	}
	if h.g.store.Latest().Scale != 1 {
		h.g.store.Update(ZoomTo(0, 0, 1), ActionDoubleClick)
		return
	}
	h.g.zoomer.Zoom(baseScaleRatio+h.step, ActionDoubleClick, &Point{X: ev.X, Y: ev.Y}, false)
}
