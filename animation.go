package main

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"lightbox/internal/preview"
)

// DisplayTransform is the transform actually drawn this frame. It trails the
// committed preview.Transform while a transition runs.
type DisplayTransform struct {
	X, Y   float64
	Scale  float64
	Rotate float64 // degrees
	FlipX  bool
	FlipY  bool
}

func displayOf(t preview.Transform) DisplayTransform {
	return DisplayTransform{X: t.X, Y: t.Y, Scale: t.Scale, Rotate: float64(t.Rotate), FlipX: t.FlipX, FlipY: t.FlipY}
}

// Animator eases the presentation toward the committed transform and fades
// the overlay in from the click origin. Call Update once per tick.
type Animator struct {
	duration float32
	easing   ease.TweenFunc

	current DisplayTransform
	tweens  [4]*gween.Tween
	fields  [4]*float64

	open       *gween.Tween
	progress   float64
	origin     preview.Point
	fromOrigin bool
}

// NewAnimator creates an animator whose transitions last seconds.
func NewAnimator(seconds float64) *Animator {
	a := &Animator{
		duration: float32(seconds),
		easing:   ease.OutCubic,
		current:  displayOf(preview.Identity()),
	}
	a.fields = [4]*float64{&a.current.X, &a.current.Y, &a.current.Scale, &a.current.Rotate}
	return a
}

// Retarget starts a transition toward t. Without animate, or with a zero
// duration, the display jumps straight to t. Flips never animate.
func (a *Animator) Retarget(t preview.Transform, animate bool) {
	target := displayOf(t)
	a.current.FlipX, a.current.FlipY = target.FlipX, target.FlipY

	if !animate || a.duration <= 0 {
		a.current = target
		a.tweens = [4]*gween.Tween{}
		return
	}

	to := [4]float64{target.X, target.Y, target.Scale, target.Rotate}
	for i, f := range a.fields {
		a.tweens[i] = gween.New(float32(*f), float32(to[i]), a.duration, a.easing)
	}
}

// Open fades the overlay in, growing from origin when given.
func (a *Animator) Open(origin *preview.Point) {
	a.fromOrigin = origin != nil
	if origin != nil {
		a.origin = *origin
	}
	a.fadeTo(1)
}

// Close fades the overlay out.
func (a *Animator) Close() {
	a.fadeTo(0)
}

func (a *Animator) fadeTo(to float64) {
	if a.duration <= 0 {
		a.progress = to
		a.open = nil
		return
	}
	a.open = gween.New(float32(a.progress), float32(to), a.duration, a.easing)
}

// Update advances every running tween by dt seconds.
func (a *Animator) Update(dt float32) {
	for i, tw := range a.tweens {
		if tw == nil {
			continue
		}
		v, done := tw.Update(dt)
		*a.fields[i] = float64(v)
		if done {
			a.tweens[i] = nil
		}
	}

	if a.open != nil {
		v, done := a.open.Update(dt)
		a.progress = float64(v)
		if done {
			a.open = nil
		}
	}
}

// Animating reports whether any tween is still running.
func (a *Animator) Animating() bool {
	if a.open != nil {
		return true
	}
	for _, tw := range a.tweens {
		if tw != nil {
			return true
		}
	}
	return false
}

// Displayed returns the transform to draw.
func (a *Animator) Displayed() DisplayTransform {
	return a.current
}

// OpenProgress returns how far the overlay has faded in, 0 to 1, and the
// point it grows from.
func (a *Animator) OpenProgress() (float64, preview.Point, bool) {
	return a.progress, a.origin, a.fromOrigin
}

// Visible reports whether any part of the overlay should be drawn.
func (a *Animator) Visible() bool {
	return a.progress > 0 || a.open != nil
}
