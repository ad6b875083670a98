package preview

import "math"

// Point is a screen coordinate.
type Point struct {
	X, Y float64
}

// Distance returns the euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Midpoint returns the point halfway between p and q.
func (p Point) Midpoint(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// Rect is an axis aligned screen rectangle.
type Rect struct {
	Left, Top, Width, Height float64
}

// Viewport reports the usable client area of the window.
type Viewport interface {
	ClientSize() Size
}

// ViewportFunc adapts a function to the Viewport interface.
type ViewportFunc func() Size

// ClientSize implements Viewport.
func (f ViewportFunc) ClientSize() Size { return f() }

// Element is the previewed image as laid out on screen.
type Element interface {
	// Layout returns the box the image occupies at the identity transform.
	Layout() Rect
	// BoundingRect returns the visual box with the current transform applied.
	BoundingRect() Rect
}

// ImageElement lays an image out centered in a viewport, shrunk to fit it,
// and derives its bounding rect from a transform source.
type ImageElement struct {
	natural   Size
	viewport  Viewport
	transform func() Transform
}

// NewImageElement creates an element for an image of the given natural size.
func NewImageElement(natural Size, viewport Viewport, transform func() Transform) *ImageElement {
	return &ImageElement{natural: natural, viewport: viewport, transform: transform}
}

// SetNaturalSize replaces the image dimensions, e.g. after switching image.
func (e *ImageElement) SetNaturalSize(natural Size) {
	e.natural = natural
}

// Layout implements Element.
func (e *ImageElement) Layout() Rect {
	client := e.viewport.ClientSize()
	w, h := e.natural.Width, e.natural.Height
	if w <= 0 || h <= 0 {
		return Rect{Left: client.Width / 2, Top: client.Height / 2}
	}

	// Images never upscale at the identity transform.
	fit := math.Min(1, math.Min(client.Width/w, client.Height/h))
	w, h = w*fit, h*fit
	return Rect{
		Left:   (client.Width - w) / 2,
		Top:    (client.Height - h) / 2,
		Width:  w,
		Height: h,
	}
}

// BoundingRect implements Element. The transform pivots on the layout center.
func (e *ImageElement) BoundingRect() Rect {
	layout := e.Layout()
	t := e.transform()

	w, h := layout.Width*t.Scale, layout.Height*t.Scale
	if t.IsRotated() {
		w, h = h, w
	}
	cx := layout.Left + layout.Width/2 + t.X
	cy := layout.Top + layout.Height/2 + t.Y
	return Rect{Left: cx - w/2, Top: cy - h/2, Width: w, Height: h}
}
