package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"lightbox/internal/preview"
)

const (
	// wheelPixels converts one Ebiten wheel notch to browser-style pixels
	wheelPixels = 100.0
	// galleryScrollStep is the gallery scroll distance per notch
	galleryScrollStep = 60.0
)

// PointerTargets exposes what pointer and touch input is routed to.
type PointerTargets interface {
	GetGallery() *Gallery
	GetScreenSize() (int, int)
	PreviewSession() *preview.Session
	PreviewWindow() *preview.Target
	PreviewImageRect() preview.Rect
	CanNavigate() (hasSwitches, canPrev, canNext bool)
}

// InputHandler handles keyboard, mouse and touch input
type InputHandler struct {
	inputActions        InputActions
	inputState          InputState
	targets             PointerTargets
	keybindingManager   *KeybindingManager
	mousebindingManager *MousebindingManager

	touches  touchTracker
	touchIDs []ebiten.TouchID
	lastX    int
	lastY    int
	now      func() time.Time
}

// NewInputHandler creates a new InputHandler
func NewInputHandler(inputActions InputActions, inputState InputState, targets PointerTargets, keybindingManager *KeybindingManager, mousebindingManager *MousebindingManager) *InputHandler {
	return &InputHandler{
		inputActions:        inputActions,
		inputState:          inputState,
		targets:             targets,
		keybindingManager:   keybindingManager,
		mousebindingManager: mousebindingManager,
		now:                 time.Now,
	}
}

// HandleInput processes all input for the current frame
// Returns true if any input was processed, false otherwise
func (h *InputHandler) HandleInput() bool {
	inputProcessed := false

	inputProcessed = h.handleKeys() || inputProcessed
	inputProcessed = h.handleMouse() || inputProcessed
	inputProcessed = h.handleTouches() || inputProcessed

	return inputProcessed
}

func (h *InputHandler) handleKeys() bool {
	inputProcessed := false
	for _, def := range actionDefinitions {
		if h.keybindingManager.ExecuteAction(def.Name, h.inputActions, h.inputState) {
			inputProcessed = true
		}
	}
	return inputProcessed
}

func (h *InputHandler) handleMouse() bool {
	settings := h.mousebindingManager.GetSettings()
	if !settings.EnableMouse {
		return false
	}
	h.mousebindingManager.Poll(h.now())

	inputProcessed := false
	for _, def := range actionDefinitions {
		if h.mousebindingManager.ExecuteAction(def.Name, h.inputActions, h.inputState) {
			inputProcessed = true
		}
	}

	cx, cy := ebiten.CursorPosition()
	moved := cx != h.lastX || cy != h.lastY
	h.lastX, h.lastY = cx, cy
	x, y := float64(cx), float64(cy)
	_, wy := ebiten.Wheel()

	if !h.inputState.IsPreviewOpen() {
		return h.handleGalleryMouse(x, y, wy, settings) || inputProcessed
	}
	return h.handlePreviewMouse(x, y, wy, moved, settings) || inputProcessed
}

func (h *InputHandler) handleGalleryMouse(x, y, wy float64, settings MouseSettings) bool {
	inputProcessed := false
	if wy != 0 {
		h.inputActions.ScrollGallery(-wheelDelta(wy, settings) / wheelPixels * galleryScrollStep)
		inputProcessed = true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		inputProcessed = h.tapGallery(x, y) || inputProcessed
	}
	return inputProcessed
}

// tapGallery opens the preview on the thumbnail under x, y.
func (h *InputHandler) tapGallery(x, y float64) bool {
	gallery := h.targets.GetGallery()
	if gallery == nil {
		return false
	}
	w, _ := h.targets.GetScreenSize()
	item, ok := gallery.HitTest(x, y, w)
	if !ok || item.Failed {
		return false
	}
	h.inputActions.OpenPreview(item.ID, x, y)
	return true
}

// tapControl runs the overlay control under x, y.
func (h *InputHandler) tapControl(x, y float64) bool {
	w, sh := h.targets.GetScreenSize()
	hasSwitches, canPrev, canNext := h.targets.CanNavigate()
	action, ok := layoutControls(float64(w), float64(sh)).hit(x, y, hasSwitches, canPrev, canNext)
	if !ok {
		return false
	}
	globalActionExecutor.ExecuteAction(action, h.inputActions, h.inputState)
	return true
}

func (h *InputHandler) handlePreviewMouse(x, y, wy float64, moved bool, settings MouseSettings) bool {
	session := h.targets.PreviewSession()
	window := h.targets.PreviewWindow()
	inputProcessed := false

	// Movement and release go to the window listeners so a drag keeps
	// following the cursor outside the image.
	if moved {
		window.Dispatch(preview.EventPointerMove, &preview.PointerEvent{X: x, Y: y, Button: preview.ButtonPrimary})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		window.Dispatch(preview.EventPointerUp, &preview.PointerEvent{X: x, Y: y, Button: preview.ButtonPrimary})
		inputProcessed = true
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		inputProcessed = true
		switch {
		case h.tapControl(x, y):
		case contains(h.targets.PreviewImageRect(), x, y):
			ev := &preview.PointerEvent{X: x, Y: y, Button: preview.ButtonPrimary}
			session.Pointer().PointerDown(ev)
			if h.mousebindingManager.DoubleClicked(ebiten.MouseButtonLeft) {
				session.Pointer().DoubleClick(ev)
			}
		case h.inputState.IsMaskClosable():
			h.inputActions.ClosePreview()
		}
	}

	if wy != 0 {
		session.Pointer().Wheel(&preview.WheelEvent{X: x, Y: y, DeltaY: wheelDelta(wy, settings)})
		inputProcessed = true
	}
	return inputProcessed
}

// wheelDelta converts an Ebiten wheel offset (positive is up) to a
// browser-style deltaY in pixels (positive is down).
func wheelDelta(wy float64, settings MouseSettings) float64 {
	d := -wy * wheelPixels * settings.WheelSensitivity
	if settings.WheelInverted {
		d = -d
	}
	return d
}

func (h *InputHandler) handleTouches() bool {
	h.touchIDs = ebiten.AppendTouchIDs(h.touchIDs[:0])
	points := make([]touchPoint, 0, len(h.touchIDs))
	for _, id := range h.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		points = append(points, touchPoint{id: id, pos: preview.Point{X: float64(tx), Y: float64(ty)}})
	}

	steps := h.touches.Update(points)
	for _, step := range steps {
		h.dispatchTouch(step)
	}
	return len(steps) > 0
}

func (h *InputHandler) dispatchTouch(step touchStep) {
	ev := &preview.TouchEvent{Touches: step.touches}

	if !h.inputState.IsPreviewOpen() {
		if step.kind == touchStepStart && len(step.touches) == 1 {
			h.tapGallery(step.touches[0].X, step.touches[0].Y)
		}
		return
	}

	touch := h.targets.PreviewSession().Touch()
	switch step.kind {
	case touchStepStart:
		if len(step.touches) == 1 && h.tapControl(step.touches[0].X, step.touches[0].Y) {
			return
		}
		touch.TouchStart(ev)
	case touchStepMove:
		h.targets.PreviewWindow().Dispatch(preview.EventTouchMove, ev)
		touch.TouchMove(ev)
	case touchStepEnd:
		touch.TouchEnd(ev)
	}
}

type touchStepKind int

const (
	touchStepStart touchStepKind = iota
	touchStepMove
	touchStepEnd
)

func (k touchStepKind) String() string {
	switch k {
	case touchStepStart:
		return "start"
	case touchStepMove:
		return "move"
	case touchStepEnd:
		return "end"
	default:
		return "unknown"
	}
}

// touchStep is one gesture callback derived from polled touch state.
type touchStep struct {
	kind    touchStepKind
	touches []preview.Point // remaining contacts, oldest first
}

type touchPoint struct {
	id  ebiten.TouchID
	pos preview.Point
}

// touchTracker turns per-frame touch snapshots into start/move/end steps.
// A finger added or lifted mid-gesture ends the gesture and starts a new
// one with the remaining contacts.
type touchTracker struct {
	order []ebiten.TouchID
	last  map[ebiten.TouchID]preview.Point
}

// Update consumes this frame's contacts and returns the steps they imply.
func (t *touchTracker) Update(points []touchPoint) []touchStep {
	current := make(map[ebiten.TouchID]preview.Point, len(points))
	for _, p := range points {
		current[p.id] = p.pos
	}

	// keep surviving ids in first-seen order, then append new ones
	order := make([]ebiten.TouchID, 0, len(points))
	for _, id := range t.order {
		if _, ok := current[id]; ok {
			order = append(order, id)
		}
	}
	survivors := len(order)
	added := false
	for _, p := range points {
		if _, ok := t.last[p.id]; !ok {
			order = append(order, p.id)
			added = true
		}
	}
	removed := survivors < len(t.order)

	touches := make([]preview.Point, len(order))
	for i, id := range order {
		touches[i] = current[id]
	}

	var steps []touchStep
	switch {
	case len(t.order) == 0 && len(order) == 0:
	case len(t.order) == 0:
		steps = append(steps, touchStep{kind: touchStepStart, touches: touches})
	case len(order) == 0:
		steps = append(steps, touchStep{kind: touchStepEnd})
	case added || removed:
		steps = append(steps,
			touchStep{kind: touchStepEnd, touches: touches},
			touchStep{kind: touchStepStart, touches: touches})
	default:
		for _, id := range order {
			if current[id] != t.last[id] {
				steps = append(steps, touchStep{kind: touchStepMove, touches: touches})
				break
			}
		}
	}

	t.order = order
	t.last = current
	return steps
}
