package main

import (
	"math"
	"testing"

	"lightbox/internal/preview"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-4
}

func TestAnimatorRetarget(t *testing.T) {
	target := preview.Transform{X: 10, Y: -20, Scale: 2, Rotate: 90}

	t.Run("Snap", func(t *testing.T) {
		a := NewAnimator(0.3)
		a.Retarget(target, false)
		if got := a.Displayed(); got != displayOf(target) {
			t.Errorf("Displayed() = %+v, want %+v", got, displayOf(target))
		}
		if a.Animating() {
			t.Error("snap left a tween running")
		}
	})

	t.Run("Animated", func(t *testing.T) {
		a := NewAnimator(0.3)
		a.Retarget(target, true)
		if !a.Animating() {
			t.Fatal("expected a running tween")
		}
		if got := a.Displayed(); got.Scale != 1 {
			t.Errorf("Scale before Update = %v, want 1", got.Scale)
		}

		// OutCubic is seven eighths of the way at half time
		a.Update(0.15)
		got := a.Displayed()
		if !near(got.Scale, 1.875) || !near(got.X, 8.75) || !near(got.Rotate, 78.75) {
			t.Errorf("half way = %+v", got)
		}

		a.Update(0.2)
		if got := a.Displayed(); got != displayOf(target) {
			t.Errorf("finished = %+v, want %+v", got, displayOf(target))
		}
		if a.Animating() {
			t.Error("tween still running after its duration")
		}
	})

	t.Run("Flips snap", func(t *testing.T) {
		a := NewAnimator(0.3)
		a.Retarget(preview.Transform{Scale: 1, FlipX: true}, true)
		if got := a.Displayed(); !got.FlipX || got.FlipY {
			t.Errorf("Displayed() = %+v, want FlipX immediately", got)
		}
	})

	t.Run("Zero duration", func(t *testing.T) {
		a := NewAnimator(0)
		a.Retarget(target, true)
		if got := a.Displayed(); got != displayOf(target) || a.Animating() {
			t.Errorf("Displayed() = %+v, animating %v", got, a.Animating())
		}
	})
}

func TestAnimatorOpenClose(t *testing.T) {
	a := NewAnimator(0.3)
	if a.Visible() {
		t.Error("new animator is visible")
	}

	a.Open(&preview.Point{X: 40, Y: 50})
	if !a.Visible() {
		t.Error("opening animator is not visible")
	}
	a.Update(0.3)
	progress, origin, fromOrigin := a.OpenProgress()
	if progress != 1 || !fromOrigin || origin != (preview.Point{X: 40, Y: 50}) {
		t.Errorf("OpenProgress() = %v, %v, %v", progress, origin, fromOrigin)
	}

	a.Close()
	a.Update(0.15)
	if progress, _, _ := a.OpenProgress(); progress <= 0 || progress >= 1 || !a.Visible() {
		t.Errorf("mid close progress = %v, visible %v", progress, a.Visible())
	}
	a.Update(0.2)
	if progress, _, _ := a.OpenProgress(); progress != 0 || a.Visible() {
		t.Errorf("closed progress = %v, visible %v", progress, a.Visible())
	}

	a.Open(nil)
	if _, _, fromOrigin := a.OpenProgress(); fromOrigin {
		t.Error("Open(nil) grows from an origin")
	}

	instant := NewAnimator(0)
	instant.Open(nil)
	if progress, _, _ := instant.OpenProgress(); progress != 1 {
		t.Errorf("zero duration progress = %v, want 1", progress)
	}
}
