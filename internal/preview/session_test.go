package preview

import (
	"testing"
)

type fakeNav struct {
	count   int
	offsets []int
}

func (n *fakeNav) Count() int        { return n.count }
func (n *fakeNav) Active(offset int) { n.offsets = append(n.offsets, offset) }

func newTestSession(opts Options) (*Session, *FrameQueue, *[]commit) {
	q := NewFrameQueue()
	var commits []commit
	s := NewSession(Config{
		Options:     opts,
		Scheduler:   q,
		Viewport:    fixedViewport(800, 600),
		NaturalSize: Size{Width: 400, Height: 300},
		Window:      NewTarget(),
		OnTransform: func(t Transform, a Action) {
			commits = append(commits, commit{t, a})
		},
	})
	s.Open(nil)
	return s, q, &commits
}

func TestSessionZoomInOut(t *testing.T) {
	s, q, commits := newTestSession(DefaultOptions())

	s.ZoomIn()
	q.Tick()
	got := s.Transform()
	if got.Scale != 1.5 || got.X != 0 || got.Y != 0 {
		t.Fatalf("after zoom in: %+v", got)
	}
	if (*commits)[0].action != ActionZoomIn {
		t.Errorf("action = %q", (*commits)[0].action)
	}

	s.ZoomOut()
	q.Tick()
	if got := s.Transform().Scale; !almostEqual(got, 1) {
		t.Errorf("after zoom out: scale %v", got)
	}

	s.ZoomOut()
	q.Tick()
	if got := s.Transform().Scale; got != DefaultMinScale {
		t.Errorf("zoom out below min: scale %v", got)
	}
}

func TestSessionZoomCompoundsWithinFrame(t *testing.T) {
	s, q, commits := newTestSession(DefaultOptions())

	s.ZoomIn()
	s.ZoomIn()
	q.Tick()

	if got := s.Transform().Scale; got != 2.25 {
		t.Errorf("scale = %v, want 2.25", got)
	}
	if len(*commits) != 1 {
		t.Errorf("notifications = %d, want 1", len(*commits))
	}
}

func TestSessionRotateAndFlip(t *testing.T) {
	s, q, _ := newTestSession(DefaultOptions())

	s.RotateLeft()
	q.Tick()
	if got := s.Transform().Rotate; got != -90 {
		t.Fatalf("rotate = %d, want -90", got)
	}
	s.RotateRight()
	q.Tick()
	if got := s.Transform(); got != Identity() {
		t.Errorf("round trip = %+v, want identity", got)
	}

	s.RotateRight()
	s.RotateRight()
	s.FlipX()
	s.FlipY()
	s.FlipY()
	q.Tick()
	want := Transform{Rotate: 180, Scale: 1, FlipX: true}
	if got := s.Transform(); got != want {
		t.Errorf("transform = %+v, want %+v", got, want)
	}
}

func TestSessionResetAndClose(t *testing.T) {
	s, q, commits := newTestSession(DefaultOptions())
	s.ZoomIn()
	q.Tick()

	s.Reset()
	if got := s.Transform(); got != Identity() {
		t.Fatalf("after reset: %+v", got)
	}
	if last := (*commits)[len(*commits)-1]; last.action != ActionReset {
		t.Errorf("action = %q, want reset", last.action)
	}

	s.RotateRight()
	q.Tick()

	var visible []bool
	s.OnVisibleChange(func(open bool) { visible = append(visible, open) })
	s.Close()
	if s.IsOpen() {
		t.Fatal("still open")
	}
	if got := s.Transform(); got != Identity() {
		t.Errorf("after close: %+v", got)
	}
	if last := (*commits)[len(*commits)-1]; last.action != ActionClose {
		t.Errorf("action = %q, want close", last.action)
	}
	if len(visible) != 1 || visible[0] {
		t.Errorf("visibility callbacks = %v", visible)
	}

	// Closing twice is a no-op.
	s.Close()
	if len(visible) != 1 {
		t.Errorf("second close fired callbacks: %v", visible)
	}
}

func TestSessionOpenRecordsOrigin(t *testing.T) {
	s, _, _ := newTestSession(DefaultOptions())
	if _, ok := s.Origin(); ok {
		t.Error("origin set for Open(nil)")
	}
	s.Close()

	s.Open(&Point{X: 12, Y: 34})
	p, ok := s.Origin()
	if !ok || p != (Point{12, 34}) {
		t.Errorf("Origin() = %v, %v", p, ok)
	}
}

func TestSessionSwitchDisablesTransitionForOneFrame(t *testing.T) {
	s, q, commits := newTestSession(DefaultOptions())
	s.ZoomIn()
	q.Tick()

	if !s.TransitionEnabled() {
		t.Fatal("transition should be enabled")
	}
	s.Switch(ActionNext)
	if s.TransitionEnabled() {
		t.Error("transition enabled right after switch")
	}
	if got := s.Transform(); got != Identity() {
		t.Errorf("transform = %+v, want identity", got)
	}
	if last := (*commits)[len(*commits)-1]; last.action != ActionNext {
		t.Errorf("action = %q, want next", last.action)
	}

	s.EndFrame()
	if !s.TransitionEnabled() {
		t.Error("transition still disabled after frame")
	}
}

func TestSessionKeys(t *testing.T) {
	tests := []struct {
		name      string
		key       Key
		nav       *fakeNav
		wantOK    bool
		wantMoves []int
	}{
		{"left with group", KeyLeft, &fakeNav{count: 3}, true, []int{-1}},
		{"right with group", KeyRight, &fakeNav{count: 3}, true, []int{1}},
		{"arrow with single image", KeyRight, &fakeNav{count: 1}, false, nil},
		{"arrow without group", KeyLeft, nil, false, nil},
		{"other key", KeyUnknown, &fakeNav{count: 3}, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestSession(DefaultOptions())
			var nav Navigator
			if tt.nav != nil {
				nav = tt.nav
			}
			if ok := s.Key(KeyEvent{Key: tt.key}, nav); ok != tt.wantOK {
				t.Errorf("Key() = %v, want %v", ok, tt.wantOK)
			}
			if tt.nav != nil && len(tt.nav.offsets) != len(tt.wantMoves) {
				t.Errorf("moves = %v, want %v", tt.nav.offsets, tt.wantMoves)
			}
			if tt.nav != nil {
				for i := range tt.wantMoves {
					if tt.nav.offsets[i] != tt.wantMoves[i] {
						t.Errorf("moves = %v, want %v", tt.nav.offsets, tt.wantMoves)
					}
				}
			}
		})
	}
}

func TestSessionEscapeCloses(t *testing.T) {
	s, _, _ := newTestSession(DefaultOptions())
	if !s.Key(KeyEvent{Key: KeyEscape}, nil) {
		t.Error("escape not handled")
	}
	if s.IsOpen() {
		t.Error("escape did not close")
	}
	if s.Key(KeyEvent{Key: KeyEscape}, nil) {
		t.Error("keys handled while closed")
	}
}

func TestSessionLayoutFollowsImageSize(t *testing.T) {
	s, _, _ := newTestSession(DefaultOptions())
	if got := s.Layout(); got != (Rect{Left: 200, Top: 150, Width: 400, Height: 300}) {
		t.Errorf("Layout() = %+v", got)
	}
	s.SetImageSize(Size{Width: 1600, Height: 1200})
	if got := s.Layout(); got != (Rect{Left: 0, Top: 0, Width: 800, Height: 600}) {
		t.Errorf("Layout() after resize = %+v", got)
	}
}

func TestOptionsNormalized(t *testing.T) {
	tests := []struct {
		name string
		in   Options
		want Options
	}{
		{"defaults kept", DefaultOptions(), DefaultOptions()},
		{"zero values", Options{}, Options{MinScale: DefaultMinScale, MaxScale: DefaultMinScale, ScaleStep: DefaultScaleStep}},
		{"max below min", Options{MinScale: 2, MaxScale: 1, ScaleStep: 0.25}, Options{MinScale: 2, MaxScale: 2, ScaleStep: 0.25}},
		{"negative step", Options{MinScale: 0.5, MaxScale: 10, ScaleStep: -1, Movable: true}, Options{MinScale: 0.5, MaxScale: 10, ScaleStep: DefaultScaleStep, Movable: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.normalized(); got != tt.want {
				t.Errorf("normalized() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
