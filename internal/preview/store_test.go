package preview

import (
	"reflect"
	"testing"
)

type commit struct {
	t      Transform
	action Action
}

func newTestStore() (*Store, *FrameQueue, *[]commit) {
	q := NewFrameQueue()
	s := NewStore(q)
	var commits []commit
	s.Subscribe(func(t Transform, a Action) {
		commits = append(commits, commit{t, a})
	})
	return s, q, &commits
}

func TestStoreCoalescesUpdates(t *testing.T) {
	s, q, commits := newTestStore()

	s.Update(Translate(10, 20), ActionMove)
	s.Update(Patch{X: ptr(30.0)}, ActionMove)
	s.Update(RotateTo(90), ActionRotateRight)

	if got := s.Transform(); got != Identity() {
		t.Fatalf("committed before frame: %+v", got)
	}
	if !s.Pending() {
		t.Fatal("expected a pending frame")
	}
	if q.Pending() != 1 {
		t.Fatalf("expected exactly one scheduled frame, got %d", q.Pending())
	}

	q.Tick()

	want := Transform{X: 30, Y: 20, Rotate: 90, Scale: 1}
	if got := s.Transform(); got != want {
		t.Errorf("Transform() = %+v, want %+v", got, want)
	}
	if len(*commits) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(*commits))
	}
	if (*commits)[0].action != ActionRotateRight {
		t.Errorf("action = %q, want %q", (*commits)[0].action, ActionRotateRight)
	}
	if s.Pending() {
		t.Error("frame still pending after tick")
	}
}

func TestStoreUpdatesAcrossFramesAreLinearized(t *testing.T) {
	s, q, commits := newTestStore()

	s.Update(Translate(1, 1), ActionMove)
	q.Tick()
	s.Update(Translate(2, 2), ActionMove)
	q.Tick()

	if len(*commits) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(*commits))
	}
	if got := (*commits)[1].t; got.X != 2 || got.Y != 2 {
		t.Errorf("second commit = %+v", got)
	}
}

func TestStoreLatestIncludesQueue(t *testing.T) {
	s, _, _ := newTestStore()
	s.Update(Patch{Scale: ptr(3.0)}, ActionZoomIn)

	if got := s.Latest().Scale; got != 3 {
		t.Errorf("Latest().Scale = %v, want 3", got)
	}
	if got := s.Transform().Scale; got != 1 {
		t.Errorf("Transform().Scale = %v, want 1", got)
	}
}

func TestStoreResetIsIdempotent(t *testing.T) {
	s, q, commits := newTestStore()
	s.Update(ZoomTo(5, 5, 2), ActionZoomIn)
	q.Tick()
	*commits = nil

	s.Reset(ActionReset)
	s.Reset(ActionReset)

	if got := s.Transform(); got != Identity() {
		t.Errorf("Transform() = %+v, want identity", got)
	}
	want := []commit{{Identity(), ActionReset}}
	if !reflect.DeepEqual(*commits, want) {
		t.Errorf("notifications = %+v, want %+v", *commits, want)
	}
}

func TestStoreResetAtIdentityIsSilent(t *testing.T) {
	s, _, commits := newTestStore()
	s.Reset(ActionClose)
	if len(*commits) != 0 {
		t.Errorf("expected no notification, got %+v", *commits)
	}
}

func TestStoreResetDropsQueuedUpdates(t *testing.T) {
	s, q, commits := newTestStore()
	s.Update(Translate(7, 7), ActionMove)
	s.Reset(ActionNext)

	if ran := q.Tick(); ran != 0 {
		t.Errorf("canceled frame ran %d callbacks", ran)
	}
	if got := s.Transform(); got != Identity() {
		t.Errorf("Transform() = %+v, want identity", got)
	}
	if len(*commits) != 0 {
		t.Errorf("expected no notification, got %+v", *commits)
	}

	// A fresh update after reset schedules a new frame.
	s.Update(Translate(1, 0), ActionMove)
	q.Tick()
	if got := s.Transform().X; got != 1 {
		t.Errorf("X = %v, want 1", got)
	}
}

func TestStoreCloseCancelsFrame(t *testing.T) {
	s, q, commits := newTestStore()
	s.Update(Translate(3, 3), ActionMove)
	s.Close()
	q.Tick()

	if len(*commits) != 0 || s.Transform() != Identity() {
		t.Errorf("update committed after Close: %+v", s.Transform())
	}
}

func TestStoreUnsubscribe(t *testing.T) {
	q := NewFrameQueue()
	s := NewStore(q)
	calls := 0
	unsubscribe := s.Subscribe(func(Transform, Action) { calls++ })
	unsubscribe()

	s.Update(Translate(1, 1), ActionMove)
	q.Tick()
	if calls != 0 {
		t.Errorf("observer called %d times after unsubscribe", calls)
	}
}

func TestStoreNotifiesInSubscriptionOrder(t *testing.T) {
	q := NewFrameQueue()
	s := NewStore(q)
	var order []int
	for i := 0; i < 5; i++ {
		s.Subscribe(func(Transform, Action) { order = append(order, i) })
	}
	unsubscribe := s.Subscribe(func(Transform, Action) { order = append(order, 99) })
	s.Subscribe(func(Transform, Action) { order = append(order, 5) })
	unsubscribe()

	s.Update(Translate(1, 1), ActionMove)
	q.Tick()
	if want := []int{0, 1, 2, 3, 4, 5}; !reflect.DeepEqual(order, want) {
		t.Errorf("notification order = %v, want %v", order, want)
	}
}

func TestPatchMergeLastWriteWins(t *testing.T) {
	p := Translate(1, 2).Merge(Patch{Y: ptr(5.0), FlipX: ptr(true)})
	got := p.Apply(Identity())
	want := Transform{X: 1, Y: 5, Scale: 1, FlipX: true}
	if got != want {
		t.Errorf("Apply = %+v, want %+v", got, want)
	}
	if !(Patch{}).IsEmpty() || p.IsEmpty() {
		t.Error("IsEmpty mismatch")
	}
}

func TestIsRotated(t *testing.T) {
	tests := []struct {
		rotate int
		want   bool
	}{
		{0, false},
		{90, true},
		{-90, true},
		{180, false},
		{-270, true},
		{720, false},
	}
	for _, tt := range tests {
		if got := (Transform{Rotate: tt.rotate}).IsRotated(); got != tt.want {
			t.Errorf("IsRotated(%d) = %v, want %v", tt.rotate, got, tt.want)
		}
	}
}
