package main

import (
	"errors"
	"image"
	"reflect"
	"testing"

	"lightbox/internal/group"
)

func newTestGallery(names ...string) (*Gallery, *group.Registry) {
	registry := group.NewRegistry()
	return NewGallery(registry, paths(names...), 100), registry
}

func TestGalleryRegistration(t *testing.T) {
	g, registry := newTestGallery("img10.png", "img2.png", "img1.png")

	var ids []int
	for _, it := range g.Items() {
		ids = append(ids, it.ID)
	}
	if !reflect.DeepEqual(ids, []int{1, 2, 3}) {
		t.Errorf("ids = %v, want [1 2 3]", ids)
	}
	if registry.Len() != 3 {
		t.Errorf("registry.Len() = %d, want 3", registry.Len())
	}
	if got := pathsToStrings(g.NavigablePaths()); !reflect.DeepEqual(got, []string{"img10.png", "img2.png", "img1.png"}) {
		t.Errorf("NavigablePaths() = %v", got)
	}
	if it, ok := g.Item(2); !ok || it.Path.Path != "img2.png" {
		t.Errorf("Item(2) = %v, %v", it, ok)
	}
	if e, _ := registry.Entry(2); e.Data.Alt != "img2.png" || !e.CanPreview {
		t.Errorf("Entry(2) = %+v", e)
	}
}

func TestGalleryMarkFailed(t *testing.T) {
	g, registry := newTestGallery("img10.png", "img2.png", "img1.png")
	version := g.Version()

	g.MarkFailed(2, errors.New("corrupt"))
	if registry.Len() != 3 {
		t.Errorf("registry.Len() = %d, want 3", registry.Len())
	}
	if n := len(registry.Items()); n != 2 {
		t.Errorf("navigable items = %d, want 2", n)
	}
	if got := pathsToStrings(g.NavigablePaths()); !reflect.DeepEqual(got, []string{"img10.png", "img1.png"}) {
		t.Errorf("NavigablePaths() = %v", got)
	}
	if g.Version() != version+1 {
		t.Errorf("Version() = %d, want %d", g.Version(), version+1)
	}
	if it, _ := g.Item(2); !it.Failed || it.Err == nil {
		t.Errorf("item 2 = %+v, want failed", it)
	}

	g.MarkFailed(2, errors.New("again"))
	g.MarkFailed(42, errors.New("unknown"))
	if g.Version() != version+1 {
		t.Errorf("repeated MarkFailed bumped version to %d", g.Version())
	}
}

func TestGalleryResort(t *testing.T) {
	g, registry := newTestGallery("img10.png", "img2.png", "img1.png")
	g.MarkFailed(2, errors.New("corrupt"))

	g.Resort(GetSortStrategy(SortNatural))

	var names []string
	var ids []int
	for _, it := range g.Items() {
		names = append(names, it.Path.Path)
		ids = append(ids, it.ID)
	}
	if !reflect.DeepEqual(names, []string{"img1.png", "img2.png", "img10.png"}) {
		t.Errorf("order = %v", names)
	}
	if !reflect.DeepEqual(ids, []int{4, 5, 6}) {
		t.Errorf("ids = %v, want fresh ascending ids", ids)
	}
	if !g.Items()[1].Failed {
		t.Error("resort lost the failed flag")
	}
	if registry.Len() != 3 {
		t.Errorf("registry.Len() = %d, want 3", registry.Len())
	}
	if got := pathsToStrings(g.NavigablePaths()); !reflect.DeepEqual(got, []string{"img1.png", "img10.png"}) {
		t.Errorf("NavigablePaths() = %v", got)
	}

	g.Close()
	if registry.Len() != 0 {
		t.Errorf("after Close registry.Len() = %d, want 0", registry.Len())
	}
}

func TestGalleryLayout(t *testing.T) {
	names := make([]string, 10)
	for i := range names {
		names[i] = string(rune('a'+i)) + ".png"
	}
	g, _ := newTestGallery(names...)
	const width = 500

	if got := g.columns(width); got != 4 {
		t.Errorf("columns = %d, want 4", got)
	}
	if r := g.CellRect(5, width); r.Left != 124 || r.Top != 124 || r.Width != 100 {
		t.Errorf("CellRect(5) = %+v", r)
	}
	if h := g.ContentHeight(width); h != 348 {
		t.Errorf("ContentHeight = %v, want 348", h)
	}

	if it, ok := g.HitTest(130, 130, width); !ok || it != g.Items()[5] {
		t.Errorf("HitTest(130, 130) = %v, %v", it, ok)
	}
	if _, ok := g.HitTest(5, 5, width); ok {
		t.Error("HitTest in the padding found an item")
	}

	g.Scroll(1000, width, 200)
	if g.ScrollY() != 148 {
		t.Errorf("ScrollY = %v, want 148", g.ScrollY())
	}
	if r := g.CellRect(0, width); r.Top != 12-148 {
		t.Errorf("scrolled CellRect(0).Top = %v", r.Top)
	}
	g.Scroll(-1000, width, 200)
	if g.ScrollY() != 0 {
		t.Errorf("ScrollY = %v, want 0", g.ScrollY())
	}
}

func TestThumbnailLoader(t *testing.T) {
	decode := func(p ImagePath) (image.Image, error) {
		if p.Path == "bad.png" {
			return nil, errors.New("bad data")
		}
		return image.NewRGBA(image.Rect(0, 0, 400, 200)), nil
	}

	t.Run("Loads", func(t *testing.T) {
		g, _ := newTestGallery("good.png", "bad.png", "skipped.png")
		g.MarkFailed(3, errors.New("already failed"))

		l := NewThumbnailLoader(160, decode)
		l.Load(g.Items())
		l.Wait()

		results := l.Drain()
		if len(results) != 2 {
			t.Fatalf("got %d results, want 2", len(results))
		}
		if results[0].ID != 1 || results[0].Err != nil {
			t.Errorf("result 0 = %+v", results[0])
		} else if b := results[0].Img.Bounds(); b.Dx() != 160 || b.Dy() != 80 {
			t.Errorf("thumbnail size = %dx%d, want 160x80", b.Dx(), b.Dy())
		}
		if results[1].ID != 2 || results[1].Err == nil {
			t.Errorf("result 1 = %+v, want an error", results[1])
		}
		if len(l.Drain()) != 0 {
			t.Error("Drain did not clear results")
		}
	})

	t.Run("Stopped", func(t *testing.T) {
		g, _ := newTestGallery("good.png")
		l := NewThumbnailLoader(160, decode)
		l.Stop()
		l.Load(g.Items())
		l.Wait()
		if n := len(l.Drain()); n != 0 {
			t.Errorf("stopped loader produced %d results", n)
		}
	})
}
