package main

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"lightbox/internal/preview"
)

func nearPoint(x, y, wx, wy float64) bool {
	return math.Abs(x-wx) < 1e-9 && math.Abs(y-wy) < 1e-9
}

func TestLayoutControls(t *testing.T) {
	c := layoutControls(800, 600)

	if c.Close != (preview.Rect{Left: 744, Top: 16, Width: 40, Height: 40}) {
		t.Errorf("Close = %+v", c.Close)
	}
	if c.Prev != (preview.Rect{Left: 16, Top: 280, Width: 40, Height: 40}) {
		t.Errorf("Prev = %+v", c.Prev)
	}
	if c.Next != (preview.Rect{Left: 744, Top: 280, Width: 40, Height: 40}) {
		t.Errorf("Next = %+v", c.Next)
	}
	if len(c.Toolbar) != len(toolbarActions) {
		t.Fatalf("toolbar has %d buttons, want %d", len(c.Toolbar), len(toolbarActions))
	}
	if first := c.Toolbar[0].Rect; first.Left != 224 || first.Top != 544 {
		t.Errorf("first toolbar button at %v, %v, want 224, 544", first.Left, first.Top)
	}
	if last := c.Toolbar[len(c.Toolbar)-1].Rect; last.Left != 224+6*52 {
		t.Errorf("last toolbar button at %v", last.Left)
	}
}

func TestControlsHit(t *testing.T) {
	c := layoutControls(800, 600)

	tests := []struct {
		name                          string
		x, y                          float64
		hasSwitches, canPrev, canNext bool
		want                          string
		wantOK                        bool
	}{
		{"Close", 760, 30, false, false, false, "close", true},
		{"First toolbar button", 230, 550, false, false, false, "flip_y", true},
		{"Reset button", 224 + 6*52 + 5, 550, false, false, false, "reset", true},
		{"Toolbar gap", 224 + 41, 550, false, false, false, "", false},
		{"Previous", 30, 300, true, true, true, "previous", true},
		{"Previous at start", 30, 300, true, false, true, "", false},
		{"Next", 760, 300, true, true, true, "next", true},
		{"Single image has no switches", 760, 300, false, true, true, "", false},
		{"Empty space", 400, 300, true, true, true, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.hit(tt.x, tt.y, tt.hasSwitches, tt.canPrev, tt.canNext)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("hit(%v, %v) = %q, %v, want %q, %v", tt.x, tt.y, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestImageGeoM(t *testing.T) {
	natural := preview.Size{Width: 200, Height: 100}
	layout := preview.Rect{Width: 200, Height: 100}
	identity := displayOf(preview.Identity())

	tests := []struct {
		name    string
		natural preview.Size
		layout  preview.Rect
		t       DisplayTransform
		in      [2]float64
		wantX   float64
		wantY   float64
	}{
		{"Identity", natural, layout, identity, [2]float64{0, 0}, 0, 0},
		{"Rotate 90", natural, layout, DisplayTransform{Scale: 1, Rotate: 90}, [2]float64{0, 0}, 150, -50},
		{"Flip x", natural, layout, DisplayTransform{Scale: 1, FlipX: true}, [2]float64{0, 0}, 200, 0},
		{"Zoom and pan", natural, layout, DisplayTransform{Scale: 2, X: 10}, [2]float64{0, 0}, -90, -50},
		{"Fit top left", preview.Size{Width: 400, Height: 200}, preview.Rect{Left: 100, Top: 50, Width: 200, Height: 100}, identity, [2]float64{0, 0}, 100, 50},
		{"Fit bottom right", preview.Size{Width: 400, Height: 200}, preview.Rect{Left: 100, Top: 50, Width: 200, Height: 100}, identity, [2]float64{400, 200}, 300, 150},
		{"No natural size", preview.Size{}, layout, identity, [2]float64{7, 9}, 7, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := imageGeoM(tt.natural, tt.layout, tt.t)
			x, y := g.Apply(tt.in[0], tt.in[1])
			if !nearPoint(x, y, tt.wantX, tt.wantY) {
				t.Errorf("Apply(%v) = %v, %v, want %v, %v", tt.in, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestTransformedRect(t *testing.T) {
	layout := preview.Rect{Left: 100, Top: 100, Width: 200, Height: 100}

	got := transformedRect(layout, displayOf(preview.Identity()))
	if !nearPoint(got.Left, got.Top, 100, 100) || !nearPoint(got.Width, got.Height, 200, 100) {
		t.Errorf("identity rect = %+v", got)
	}

	got = transformedRect(layout, DisplayTransform{Scale: 1, Rotate: 90})
	if !nearPoint(got.Left, got.Top, 150, 50) || !nearPoint(got.Width, got.Height, 100, 200) {
		t.Errorf("rotated rect = %+v", got)
	}

	got = transformedRect(layout, DisplayTransform{Scale: 2, X: 20})
	if !nearPoint(got.Left, got.Top, 20, 50) || !nearPoint(got.Width, got.Height, 400, 200) {
		t.Errorf("zoomed rect = %+v", got)
	}
}

func TestOpenGeoM(t *testing.T) {
	var g ebiten.GeoM
	half := openGeoM(g, 0.5, preview.Point{X: 100, Y: 100})
	if x, y := half.Apply(200, 100); !nearPoint(x, y, 150, 100) {
		t.Errorf("half open Apply = %v, %v, want 150, 100", x, y)
	}
	full := openGeoM(g, 1, preview.Point{X: 100, Y: 100})
	if x, y := full.Apply(200, 100); !nearPoint(x, y, 200, 100) {
		t.Errorf("open Apply = %v, %v, want 200, 100", x, y)
	}
}

func TestBindingsText(t *testing.T) {
	tests := []struct {
		keys, mouse []string
		want        string
	}{
		{[]string{"Equal", "Shift+Equal"}, nil, "Equal, Shift+Equal"},
		{[]string{"Key0"}, []string{"MiddleClick"}, "Key0 | MiddleClick"},
		{nil, []string{"Back"}, "Back"},
		{nil, nil, ""},
	}
	for _, tt := range tests {
		if got := bindingsText(tt.keys, tt.mouse); got != tt.want {
			t.Errorf("bindingsText(%v, %v) = %q, want %q", tt.keys, tt.mouse, got, tt.want)
		}
	}
}
