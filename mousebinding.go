package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MouseSettings contains mouse-specific configuration
type MouseSettings struct {
	WheelSensitivity float64 `json:"wheel_sensitivity"`
	DoubleClickTime  int     `json:"double_click_time"` // milliseconds
	DragThreshold    int     `json:"drag_threshold"`    // pixels a double click may wander
	EnableMouse      bool    `json:"enable_mouse"`
	WheelInverted    bool    `json:"wheel_inverted"`
}

// GetDefaultMouseSettings returns the default mouse settings
func GetDefaultMouseSettings() MouseSettings {
	return MouseSettings{
		WheelSensitivity: 1.0,
		DoubleClickTime:  300,
		DragThreshold:    5,
		EnableMouse:      true,
		WheelInverted:    false,
	}
}

// DoubleClickTracker detects the second press of a double click.
type DoubleClickTracker struct {
	window    time.Duration
	threshold float64

	lastTime   time.Time
	lastButton ebiten.MouseButton
	lastX      float64
	lastY      float64
	pending    bool
}

// NewDoubleClickTracker creates a tracker accepting a second press within
// window that moved at most threshold pixels.
func NewDoubleClickTracker(window time.Duration, threshold float64) *DoubleClickTracker {
	return &DoubleClickTracker{window: window, threshold: threshold}
}

// Press records a press and reports whether it completes a double click.
func (t *DoubleClickTracker) Press(button ebiten.MouseButton, x, y float64, now time.Time) bool {
	if t.pending && button == t.lastButton &&
		now.Sub(t.lastTime) <= t.window &&
		abs(x-t.lastX) <= t.threshold && abs(y-t.lastY) <= t.threshold {
		t.pending = false
		return true
	}
	t.pending = true
	t.lastButton = button
	t.lastTime = now
	t.lastX, t.lastY = x, y
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// mouseNames maps config button names to Ebiten buttons.
var mouseNames = map[string]ebiten.MouseButton{
	"LeftClick":   ebiten.MouseButtonLeft,
	"RightClick":  ebiten.MouseButtonRight,
	"MiddleClick": ebiten.MouseButtonMiddle,
	"Back":        ebiten.MouseButton3,
	"Forward":     ebiten.MouseButton4,
}

// MouseCombination represents a mouse button with optional modifiers
type MouseCombination struct {
	Button        ebiten.MouseButton
	IsDoubleClick bool
	Shift         bool
	Ctrl          bool
	Alt           bool
}

// parseMouseString parses "Shift+LeftClick" or "DoubleRightClick". The wheel
// always zooms the preview and cannot be bound.
func parseMouseString(mouseStr string) (MouseCombination, error) {
	shift, ctrl, alt, name, err := parseModifiers(mouseStr)
	if err != nil {
		return MouseCombination{}, err
	}
	c := MouseCombination{Shift: shift, Ctrl: ctrl, Alt: alt}
	if strings.HasPrefix(name, "Double") {
		c.IsDoubleClick = true
		name = strings.TrimPrefix(name, "Double")
	}
	button, ok := mouseNames[name]
	if !ok {
		return MouseCombination{}, fmt.Errorf("unknown mouse button: %s", name)
	}
	c.Button = button
	return c, nil
}

// MousebindingManager resolves configured mouse strings to actions. Call
// Poll once per frame before CheckAction.
type MousebindingManager struct {
	mousebindings map[string][]string
	combos        map[string][]MouseCombination
	settings      MouseSettings
	tracker       *DoubleClickTracker

	pressed map[ebiten.MouseButton]bool
	doubled map[ebiten.MouseButton]bool
}

// NewMousebindingManager creates a new MousebindingManager
func NewMousebindingManager(mousebindings map[string][]string, settings MouseSettings) *MousebindingManager {
	mm := &MousebindingManager{
		settings: settings,
		tracker: NewDoubleClickTracker(
			time.Duration(settings.DoubleClickTime)*time.Millisecond,
			float64(settings.DragThreshold)),
		pressed: make(map[ebiten.MouseButton]bool),
		doubled: make(map[ebiten.MouseButton]bool),
	}
	mm.UpdateMousebindings(mousebindings)
	return mm
}

// Poll samples button presses for this frame.
func (mm *MousebindingManager) Poll(now time.Time) {
	clear(mm.pressed)
	clear(mm.doubled)
	if !mm.settings.EnableMouse {
		return
	}
	x, y := ebiten.CursorPosition()
	for _, b := range mouseNames {
		if inpututil.IsMouseButtonJustPressed(b) {
			mm.pressed[b] = true
			mm.doubled[b] = mm.tracker.Press(b, float64(x), float64(y), now)
		}
	}
}

// DoubleClicked reports whether button completed a double click this frame.
func (mm *MousebindingManager) DoubleClicked(button ebiten.MouseButton) bool {
	return mm.doubled[button]
}

// CheckAction checks if any mouse binding for the given action fired this frame
func (mm *MousebindingManager) CheckAction(action string) bool {
	for _, c := range mm.combos[action] {
		hit := mm.pressed[c.Button]
		if c.IsDoubleClick {
			hit = mm.doubled[c.Button]
		}
		if hit && modifiersMatch(c.Shift, c.Ctrl, c.Alt) {
			return true
		}
	}
	return false
}

// ExecuteAction executes the given action if its binding fired
func (mm *MousebindingManager) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	if !mm.CheckAction(action) {
		return false
	}
	return globalActionExecutor.ExecuteAction(action, inputActions, inputState)
}

// GetMousebindings returns the current mouse bindings map (for display purposes)
func (mm *MousebindingManager) GetMousebindings() map[string][]string {
	return mm.mousebindings
}

// UpdateMousebindings replaces the mouse bindings map
func (mm *MousebindingManager) UpdateMousebindings(mousebindings map[string][]string) {
	mm.mousebindings = mousebindings
	mm.combos = make(map[string][]MouseCombination, len(mousebindings))
	for action, list := range mousebindings {
		for _, s := range list {
			c, err := parseMouseString(s)
			if err != nil {
				debugLog("skipping mouse binding %q for %s: %v", s, action, err)
				continue
			}
			mm.combos[action] = append(mm.combos[action], c)
		}
	}
}

// GetSettings returns the current mouse settings
func (mm *MousebindingManager) GetSettings() MouseSettings {
	return mm.settings
}
