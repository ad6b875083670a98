// Package preview implements the transform engine behind the lightbox overlay:
// the committed transform of an open preview, zoom math, rebound correction
// and the mouse/touch gesture state machines that feed them.
package preview

// Action tags why a transform changed. It is informational only.
type Action string

const (
	ActionFlipY       Action = "flipY"
	ActionFlipX       Action = "flipX"
	ActionRotateLeft  Action = "rotateLeft"
	ActionRotateRight Action = "rotateRight"
	ActionZoomIn      Action = "zoomIn"
	ActionZoomOut     Action = "zoomOut"
	ActionClose       Action = "close"
	ActionPrev        Action = "prev"
	ActionNext        Action = "next"
	ActionWheel       Action = "wheel"
	ActionDoubleClick Action = "doubleClick"
	ActionMove        Action = "move"
	ActionDragRebound Action = "dragRebound"
	ActionTouchZoom   Action = "touchZoom"
	ActionReset       Action = "reset"
)

// Transform is the translate/rotate/scale/flip state of the previewed image
// relative to its natural centered position.
type Transform struct {
	X      float64
	Y      float64
	Rotate int // degrees, never normalized
	Scale  float64
	FlipX  bool
	FlipY  bool
}

// Identity returns the transform every session starts from.
func Identity() Transform {
	return Transform{Scale: 1}
}

// IsRotated reports whether width and height are swapped on screen.
func (t Transform) IsRotated() bool {
	return t.Rotate%180 != 0
}

// Patch is a partial transform. Nil fields are left untouched.
type Patch struct {
	X      *float64
	Y      *float64
	Rotate *int
	Scale  *float64
	FlipX  *bool
	FlipY  *bool
}

func ptr[T any](v T) *T { return &v }

// Translate returns a patch setting both translation axes.
func Translate(x, y float64) Patch {
	return Patch{X: ptr(x), Y: ptr(y)}
}

// ZoomTo returns a patch setting translation and scale together.
func ZoomTo(x, y, scale float64) Patch {
	return Patch{X: ptr(x), Y: ptr(y), Scale: ptr(scale)}
}

// RotateTo returns a patch setting the rotation.
func RotateTo(deg int) Patch {
	return Patch{Rotate: ptr(deg)}
}

// FlipTo returns a patch setting the flip flags.
func FlipTo(flipX, flipY bool) Patch {
	return Patch{FlipX: ptr(flipX), FlipY: ptr(flipY)}
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.X == nil && p.Y == nil && p.Rotate == nil && p.Scale == nil &&
		p.FlipX == nil && p.FlipY == nil
}

// Apply returns t with the set fields of p written over it.
func (p Patch) Apply(t Transform) Transform {
	if p.X != nil {
		t.X = *p.X
	}
	if p.Y != nil {
		t.Y = *p.Y
	}
	if p.Rotate != nil {
		t.Rotate = *p.Rotate
	}
	if p.Scale != nil {
		t.Scale = *p.Scale
	}
	if p.FlipX != nil {
		t.FlipX = *p.FlipX
	}
	if p.FlipY != nil {
		t.FlipY = *p.FlipY
	}
	return t
}

// Merge returns a patch holding the fields of p overridden by those of next.
func (p Patch) Merge(next Patch) Patch {
	if next.X != nil {
		p.X = next.X
	}
	if next.Y != nil {
		p.Y = next.Y
	}
	if next.Rotate != nil {
		p.Rotate = next.Rotate
	}
	if next.Scale != nil {
		p.Scale = next.Scale
	}
	if next.FlipX != nil {
		p.FlipX = next.FlipX
	}
	if next.FlipY != nil {
		p.FlipY = next.FlipY
	}
	return p
}
