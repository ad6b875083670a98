package group

import "lightbox/internal/preview"

// Previewer is the preview session the coordinator drives.
type Previewer interface {
	Open(origin *preview.Point)
	Close()
	IsOpen() bool
	Switch(action preview.Action)
	OnVisibleChange(fn func(open bool))
}

// ChangeFunc is called after the current index moves.
type ChangeFunc func(next, prev int)

// Coordinator tracks which image of a group the overlay shows.
type Coordinator struct {
	registry *Registry
	session  Previewer

	current  int
	onChange []ChangeFunc
}

// NewCoordinator creates a coordinator over registry driving session.
func NewCoordinator(registry *Registry, session Previewer) *Coordinator {
	c := &Coordinator{registry: registry, session: session}
	session.OnVisibleChange(c.visibleChanged)
	return c
}

// Registry returns the image registry.
func (c *Coordinator) Registry() *Registry {
	return c.registry
}

// OnChange registers a callback for index changes.
func (c *Coordinator) OnChange(fn ChangeFunc) {
	c.onChange = append(c.onChange, fn)
}

// Count returns the number of navigable images.
func (c *Coordinator) Count() int {
	return len(c.registry.Items())
}

// Current returns the index of the shown image, clamped to the group.
func (c *Coordinator) Current() int {
	return clamp(c.current, c.Count())
}

// CurrentItem returns the shown image.
func (c *Coordinator) CurrentItem() (Item, bool) {
	items := c.registry.Items()
	if len(items) == 0 {
		return Item{}, false
	}
	return items[clamp(c.current, len(items))], true
}

// Progress returns the 1-based position of the shown image and the total.
func (c *Coordinator) Progress() (current, total int) {
	total = c.Count()
	if total == 0 {
		return 0, 0
	}
	return clamp(c.current, total) + 1, total
}

// HasSwitches reports whether prev/next controls apply at all.
func (c *Coordinator) HasSwitches() bool {
	return c.Count() > 1
}

// CanPrev reports whether Active(-1) would move.
func (c *Coordinator) CanPrev() bool {
	return c.Current() > 0
}

// CanNext reports whether Active(1) would move.
func (c *Coordinator) CanNext() bool {
	return c.Current() < c.Count()-1
}

// SetCurrent moves to index without the switch side effects, e.g. when the
// host restores a position. The index is clamped.
func (c *Coordinator) SetCurrent(index int) {
	c.current = clamp(index, c.Count())
}

// Active moves by offset. Moves outside the group are ignored; a zero
// offset re-shows the current image with a fresh transform.
func (c *Coordinator) Active(offset int) {
	prev := c.Current()
	next := prev + offset
	if next < 0 || next > c.Count()-1 {
		return
	}

	action := preview.ActionNext
	if offset < 0 {
		action = preview.ActionPrev
	}
	c.session.Switch(action)
	c.current = next

	for _, fn := range c.onChange {
		fn(next, prev)
	}
}

// PreviewFrom opens the overlay on the image with the given id, growing
// from the click position. In explicit item mode src identifies the image.
// Unknown images open the first one.
func (c *Coordinator) PreviewFrom(id int, src string, x, y float64) {
	index := c.registry.IndexOf(id, src)
	if index < 0 {
		index = 0
	}
	c.current = index
	c.session.Open(&preview.Point{X: x, Y: y})
}

// Open shows the overlay from the first image.
func (c *Coordinator) Open() {
	c.current = 0
	c.session.Open(nil)
}

// Close hides the overlay.
func (c *Coordinator) Close() {
	c.session.Close()
}

// IsOpen reports whether the overlay is shown.
func (c *Coordinator) IsOpen() bool {
	return c.session.IsOpen()
}

func (c *Coordinator) visibleChanged(open bool) {
	if !open {
		c.current = clamp(c.current, c.Count())
	}
}

func clamp(index, count int) int {
	if count <= 0 || index < 0 {
		return 0
	}
	if index > count-1 {
		return count - 1
	}
	return index
}
