package preview

import "math"

const (
	// DefaultMinScale is the lower zoom bound.
	DefaultMinScale = 1.0
	// DefaultMaxScale is the upper zoom bound.
	DefaultMaxScale = 50.0
	// DefaultScaleStep is added to 1 to form one zoom-in ratio.
	DefaultScaleStep = 0.5

	baseScaleRatio     = 1.0
	wheelMaxScaleRatio = 1.0
)

// Limits bounds the scale of a transform.
type Limits struct {
	MinScale float64
	MaxScale float64
}

// Zoomer turns zoom ratios into anchored scale and translation updates.
type Zoomer struct {
	store    *Store
	element  Element
	viewport Viewport
	limits   Limits
}

// NewZoomer creates a Zoomer committing through store.
func NewZoomer(store *Store, element Element, viewport Viewport, limits Limits) *Zoomer {
	return &Zoomer{store: store, element: element, viewport: viewport, limits: limits}
}

// Limits returns the configured scale bounds.
func (z *Zoomer) Limits() Limits {
	return z.limits
}

// Zoom multiplies the current scale by ratio, clamped to the limits, while
// keeping the content under anchor fixed. A nil anchor means the viewport
// center. With touch set the lower bound is not enforced so a pinch can
// shrink past it; the touch handler restores it on release.
func (z *Zoomer) Zoom(ratio float64, action Action, anchor *Point, touch bool) {
	t := z.store.Latest()
	x, y, scale := z.compute(t, ratio, anchor, touch)
	z.store.Update(ZoomTo(x, y, scale), action)
}

func (z *Zoomer) compute(t Transform, ratio float64, anchor *Point, touch bool) (x, y, scale float64) {
	effective := ratio
	scale = t.Scale * ratio
	if scale > z.limits.MaxScale {
		scale = z.limits.MaxScale
		effective = z.limits.MaxScale / t.Scale
	} else if scale < z.limits.MinScale {
		if !touch {
			scale = z.limits.MinScale
		}
		effective = scale / t.Scale
	}

	client := z.viewport.ClientSize()
	center := Point{X: client.Width / 2, Y: client.Height / 2}
	if anchor != nil {
		center = *anchor
	}

	layout := z.element.Layout()
	diff := effective - 1
	diffImgX := diff * layout.Width * 0.5
	diffImgY := diff * layout.Height * 0.5
	diffOffsetX := diff * (center.X - t.X - layout.Left)
	diffOffsetY := diff * (center.Y - t.Y - layout.Top)

	x = t.X - (diffOffsetX - diffImgX)
	y = t.Y - (diffOffsetY - diffImgY)

	// Zooming back out to 1 recenters an image that fits the window.
	if ratio < 1 && scale == 1 {
		if layout.Width*scale <= client.Width && layout.Height*scale <= client.Height {
			x, y = 0, 0
		}
	}
	return x, y, scale
}

// wheelRatio converts a wheel delta into a zoom ratio.
func wheelRatio(deltaY, step float64) float64 {
	r := math.Min(math.Abs(deltaY/100), wheelMaxScaleRatio)
	ratio := baseScaleRatio + r*step
	if deltaY > 0 {
		ratio = baseScaleRatio / ratio
	}
	return ratio
}
