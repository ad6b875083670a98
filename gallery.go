package main

import (
	"context"
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"lightbox/internal/group"
	"lightbox/internal/preview"
)

const galleryPadding = 12

// GalleryItem is one inline thumbnail.
type GalleryItem struct {
	ID     int
	Path   ImagePath
	Thumb  *ebiten.Image
	Failed bool
	Err    error

	unregister func()
}

// Data is what the item registers into the preview group.
func (it *GalleryItem) Data() group.ImageData {
	return group.ImageData{Src: it.Path.Path, Alt: it.Path.Name()}
}

// Gallery lays out the thumbnails and keeps the preview group registry in
// step with them: every item registers under its own id, and an item whose
// image cannot be loaded re-registers as not previewable.
type Gallery struct {
	registry  *group.Registry
	items     []*GalleryItem
	byID      map[int]*GalleryItem
	thumbSize int
	scrollY   float64
	version   int
}

// NewGallery registers paths, in order, into registry.
func NewGallery(registry *group.Registry, paths []ImagePath, thumbSize int) *Gallery {
	g := &Gallery{registry: registry, thumbSize: thumbSize, byID: make(map[int]*GalleryItem)}
	for _, p := range paths {
		g.items = append(g.items, &GalleryItem{Path: p})
	}
	g.registerAll()
	return g
}

func (g *Gallery) registerAll() {
	clear(g.byID)
	for _, it := range g.items {
		it.ID = g.registry.NewID()
		it.unregister = g.registry.Register(it.ID, group.Entry{Data: it.Data(), CanPreview: !it.Failed})
		g.byID[it.ID] = it
	}
	g.version++
}

// Items returns the thumbnails in display order.
func (g *Gallery) Items() []*GalleryItem {
	return g.items
}

// Item returns the thumbnail registered under id.
func (g *Gallery) Item(id int) (*GalleryItem, bool) {
	it, ok := g.byID[id]
	return it, ok
}

// Version changes whenever the set of previewable items may have changed.
func (g *Gallery) Version() int {
	return g.version
}

// SetThumbnail stores a loaded thumbnail.
func (g *Gallery) SetThumbnail(id int, thumb *ebiten.Image) {
	if it, ok := g.byID[id]; ok {
		it.Thumb = thumb
	}
}

// MarkFailed records a load error and removes the item from navigation.
func (g *Gallery) MarkFailed(id int, err error) {
	it, ok := g.byID[id]
	if !ok || it.Failed {
		return
	}
	it.Failed = true
	it.Err = err
	it.unregister = g.registry.Register(id, group.Entry{Data: it.Data(), CanPreview: false})
	g.version++
}

// Resort reorders the thumbnails. Items re-register under fresh ids so the
// registry's id order follows the new display order.
func (g *Gallery) Resort(strategy SortStrategy) {
	byPath := make(map[string][]*GalleryItem, len(g.items))
	ordered := make([]ImagePath, len(g.items))
	for i, it := range g.items {
		it.unregister()
		byPath[it.Path.Path] = append(byPath[it.Path.Path], it)
		ordered[i] = it.Path
	}

	items := make([]*GalleryItem, 0, len(g.items))
	for _, p := range strategy.Sort(ordered) {
		queue := byPath[p.Path]
		items = append(items, queue[0])
		byPath[p.Path] = queue[1:]
	}
	g.items = items
	g.registerAll()
}

// NavigablePaths returns the paths of the previewable items in navigation
// order.
func (g *Gallery) NavigablePaths() []ImagePath {
	items := g.registry.Items()
	out := make([]ImagePath, 0, len(items))
	for _, item := range items {
		if it, ok := g.byID[item.ID]; ok {
			out = append(out, it.Path)
		}
	}
	return out
}

// Close unregisters every item.
func (g *Gallery) Close() {
	for _, it := range g.items {
		it.unregister()
	}
}

// columns returns how many cells fit in width.
func (g *Gallery) columns(width int) int {
	cell := g.thumbSize + galleryPadding
	return max(1, (width-galleryPadding)/cell)
}

// CellRect returns the screen box of the i-th cell, scroll applied.
func (g *Gallery) CellRect(i, width int) preview.Rect {
	cols := g.columns(width)
	cell := float64(g.thumbSize + galleryPadding)
	return preview.Rect{
		Left:   galleryPadding + float64(i%cols)*cell,
		Top:    galleryPadding + float64(i/cols)*cell - g.scrollY,
		Width:  float64(g.thumbSize),
		Height: float64(g.thumbSize),
	}
}

// ContentHeight returns the height of all rows.
func (g *Gallery) ContentHeight(width int) float64 {
	cols := g.columns(width)
	rows := (len(g.items) + cols - 1) / cols
	return galleryPadding + float64(rows*(g.thumbSize+galleryPadding))
}

// Scroll moves the view by dy pixels, clamped to the content.
func (g *Gallery) Scroll(dy float64, width, height int) {
	limit := max(0, g.ContentHeight(width)-float64(height))
	g.scrollY = min(max(g.scrollY+dy, 0), limit)
}

// ScrollY returns the current scroll offset.
func (g *Gallery) ScrollY() float64 {
	return g.scrollY
}

// HitTest returns the item under x, y.
func (g *Gallery) HitTest(x, y float64, width int) (*GalleryItem, bool) {
	for i, it := range g.items {
		r := g.CellRect(i, width)
		if x >= r.Left && x < r.Left+r.Width && y >= r.Top && y < r.Top+r.Height {
			return it, true
		}
	}
	return nil, false
}

// thumbResult is a finished thumbnail load.
type thumbResult struct {
	ID  int
	Img image.Image
	Err error
}

// ThumbnailLoader decodes thumbnails on a worker goroutine. Results are
// collected with Drain on the game goroutine, where GPU images are created.
type ThumbnailLoader struct {
	ctx    context.Context
	cancel context.CancelFunc
	size   int
	decode func(ImagePath) (image.Image, error)

	mu      sync.Mutex
	results []thumbResult
	wg      sync.WaitGroup
}

type thumbJob struct {
	id   int
	path ImagePath
}

// NewThumbnailLoader creates a loader producing size x size thumbnails.
// decode defaults to decodeImage.
func NewThumbnailLoader(size int, decode func(ImagePath) (image.Image, error)) *ThumbnailLoader {
	if decode == nil {
		decode = decodeImage
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &ThumbnailLoader{ctx: ctx, cancel: cancel, size: size, decode: decode}
}

// Load queues every item of the gallery that has no thumbnail yet.
func (l *ThumbnailLoader) Load(items []*GalleryItem) {
	jobs := make([]thumbJob, 0, len(items))
	for _, it := range items {
		if it.Thumb == nil && !it.Failed {
			jobs = append(jobs, thumbJob{id: it.ID, path: it.Path})
		}
	}
	if len(jobs) == 0 {
		return
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		for _, j := range jobs {
			if l.ctx.Err() != nil {
				return
			}
			img, err := l.decode(j.path)
			if err == nil {
				img = makeThumbnail(img, l.size)
			}
			l.mu.Lock()
			l.results = append(l.results, thumbResult{ID: j.id, Img: img, Err: err})
			l.mu.Unlock()
		}
	}()
}

// Drain returns and clears the finished results.
func (l *ThumbnailLoader) Drain() []thumbResult {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.results
	l.results = nil
	return out
}

// Wait blocks until queued loads finish.
func (l *ThumbnailLoader) Wait() {
	l.wg.Wait()
}

// Stop abandons queued loads.
func (l *ThumbnailLoader) Stop() {
	l.cancel()
}
