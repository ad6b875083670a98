package preview

import (
	"testing"
)

func TestFixPosition(t *testing.T) {
	client := Size{Width: 1080, Height: 768}
	tests := []struct {
		name          string
		width, height float64
		left, top     float64
		wantOK        bool
		wantX, wantY  *float64
	}{
		{"fits both axes recenters", 800, 600, -50, 20, true, ptr(0.0), ptr(0.0)},
		{"oversized, gap on left and top", 2000, 1000, 100, 100, true, ptr(460.0), ptr(116.0)},
		{"oversized, gap on right and bottom", 2000, 1000, -1500, -500, true, ptr(-460.0), ptr(-116.0)},
		{"oversized, covering viewport", 2000, 1000, -400, -100, false, nil, nil},
		{"wide only, height spills", 2000, 600, -400, 300, true, nil, ptr(0.0)},
		{"wide only, height inside", 2000, 600, 10, 50, true, ptr(460.0), nil},
		{"tall only, covering", 800, 1000, 100, -100, false, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fix, ok := FixPosition(tt.width, tt.height, tt.left, tt.top, client)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (fix %+v)", ok, tt.wantOK, fix)
			}
			checkAxis(t, "x", fix.X, tt.wantX)
			checkAxis(t, "y", fix.Y, tt.wantY)
		})
	}
}

func checkAxis(t *testing.T, name string, got, want *float64) {
	t.Helper()
	switch {
	case got == nil && want == nil:
	case got == nil || want == nil:
		t.Errorf("%s = %v, want %v", name, got, want)
	case *got != *want:
		t.Errorf("%s = %v, want %v", name, *got, *want)
	}
}

func TestImageElementGeometry(t *testing.T) {
	tr := Identity()
	el := NewImageElement(Size{Width: 400, Height: 200}, fixedViewport(800, 600), func() Transform { return tr })

	want := Rect{Left: 200, Top: 200, Width: 400, Height: 200}
	if got := el.Layout(); got != want {
		t.Errorf("Layout() = %+v, want %+v", got, want)
	}

	tr = Transform{X: 10, Y: -10, Scale: 2, Rotate: 90}
	// rotated: on-screen 400 wide, 800 tall around center (410, 290)
	wantBox := Rect{Left: 210, Top: -110, Width: 400, Height: 800}
	if got := el.BoundingRect(); got != wantBox {
		t.Errorf("BoundingRect() = %+v, want %+v", got, wantBox)
	}
}

func TestImageElementShrinksToFit(t *testing.T) {
	el := NewImageElement(Size{Width: 1600, Height: 600}, fixedViewport(800, 600), Identity)
	got := el.Layout()
	if got.Width != 800 || got.Height != 300 || got.Left != 0 || got.Top != 150 {
		t.Errorf("Layout() = %+v", got)
	}
}
