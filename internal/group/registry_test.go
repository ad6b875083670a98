package group

import (
	"reflect"
	"sync"
	"testing"
)

func srcs(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Data.Src
	}
	return out
}

func TestRegistryOrdersByID(t *testing.T) {
	r := NewRegistry()
	a, b, c := r.NewID(), r.NewID(), r.NewID()
	if a != 1 || b != 2 || c != 3 {
		t.Fatalf("ids = %d %d %d", a, b, c)
	}

	// registration order differs from id order
	r.Register(c, Entry{Data: ImageData{Src: "c.png"}, CanPreview: true})
	r.Register(a, Entry{Data: ImageData{Src: "a.png"}, CanPreview: true})
	r.Register(b, Entry{Data: ImageData{Src: "b.png"}, CanPreview: true})

	want := []string{"a.png", "b.png", "c.png"}
	if got := srcs(r.Items()); !reflect.DeepEqual(got, want) {
		t.Errorf("Items() = %v, want %v", got, want)
	}
}

func TestRegistryUpsert(t *testing.T) {
	r := NewRegistry()
	id := r.NewID()
	r.Register(id, Entry{Data: ImageData{Src: "old.png"}, CanPreview: true})
	r.Register(id, Entry{Data: ImageData{Src: "new.png"}, CanPreview: true})

	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	e, ok := r.Entry(id)
	if !ok || e.Data.Src != "new.png" {
		t.Errorf("Entry() = %+v, %v", e, ok)
	}

	r.Register(id, Entry{Data: ImageData{Src: "new.png"}, CanPreview: false})
	if n := len(r.Items()); n != 0 {
		t.Errorf("non-previewable entry listed: %d items", n)
	}
}

func TestRegistryUnregisterIsIdempotent(t *testing.T) {
	r := NewRegistry()
	a, b := r.NewID(), r.NewID()
	unregisterA := r.Register(a, Entry{CanPreview: true})
	r.Register(b, Entry{CanPreview: true})

	unregisterA()
	unregisterA()

	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	if _, ok := r.Entry(b); !ok {
		t.Error("unrelated entry removed")
	}
}

func TestRegistryExplicitItems(t *testing.T) {
	r := NewRegistry()
	id := r.NewID()
	r.Register(id, Entry{Data: ImageData{Src: "registered.png"}, CanPreview: true})

	r.SetItems([]ImageData{{Src: "x.png"}, {Src: "y.png"}})
	if !r.FromItems() {
		t.Fatal("FromItems() = false")
	}
	if got := srcs(r.Items()); !reflect.DeepEqual(got, []string{"x.png", "y.png"}) {
		t.Errorf("Items() = %v", got)
	}

	tests := []struct {
		id   int
		src  string
		want int
	}{
		{0, "y.png", 1},
		{id, "x.png", 0},
		{id, "registered.png", -1},
	}
	for _, tt := range tests {
		if got := r.IndexOf(tt.id, tt.src); got != tt.want {
			t.Errorf("IndexOf(%d, %q) = %d, want %d", tt.id, tt.src, got, tt.want)
		}
	}

	r.SetItems(nil)
	if r.FromItems() {
		t.Error("still in explicit mode")
	}
	if got := r.IndexOf(id, ""); got != 0 {
		t.Errorf("IndexOf after clearing = %d, want 0", got)
	}
}

func TestRegistryEmptyExplicitList(t *testing.T) {
	r := NewRegistry()
	r.Register(r.NewID(), Entry{CanPreview: true})
	r.SetItems([]ImageData{})

	if !r.FromItems() {
		t.Fatal("empty list should still override entries")
	}
	if n := len(r.Items()); n != 0 {
		t.Errorf("Items() has %d entries", n)
	}
}

func TestRegistryConcurrentRegistration(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unregister := r.Register(r.NewID(), Entry{CanPreview: true})
			_ = r.Items()
			unregister()
		}()
	}
	wg.Wait()

	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}
