// Package group tracks the images that share one preview overlay and the
// index of the one currently shown.
package group

import (
	"sort"
	"sync"
)

// ImageData is what the overlay needs to render an image of the group.
type ImageData struct {
	Src            string
	Alt            string
	CrossOrigin    string
	Decoding       string
	Draggable      bool
	Loading        string
	ReferrerPolicy string
	Sizes          string
	SrcSet         string
	UseMap         string
}

// Entry is one registered image.
type Entry struct {
	Data       ImageData
	CanPreview bool
}

// Item is an image eligible for navigation. ID is zero for items supplied
// through SetItems.
type Item struct {
	ID   int
	Data ImageData
}

// Registry holds the images of one group. Each image registers under an id
// obtained from NewID and unregisters when it goes away. Registry is safe
// for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	lastID  int
	entries map[int]Entry
	items   []ImageData // explicit list; overrides entries when non-nil
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[int]Entry)}
}

// NewID allocates an id unique within this registry.
func (r *Registry) NewID() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastID++
	return r.lastID
}

// Register upserts the entry for id and returns a func removing exactly
// that id. Calling Register again for the same id replaces the entry.
func (r *Registry) Register(id int, e Entry) (unregister func()) {
	r.mu.Lock()
	r.entries[id] = e
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.entries, id)
			r.mu.Unlock()
		})
	}
}

// Entry returns the registered entry for id.
func (r *Registry) Entry(id int) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e, ok
}

// Len returns the number of registered entries, previewable or not.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// SetItems switches the registry to an explicit list of images. Registered
// entries are kept but ignored until SetItems(nil).
func (r *Registry) SetItems(items []ImageData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if items == nil {
		r.items = nil
		return
	}
	r.items = append([]ImageData{}, items...)
}

// FromItems reports whether an explicit list is in use.
func (r *Registry) FromItems() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items != nil
}

// Items returns the navigable images: the explicit list if set, otherwise
// the previewable entries in id order.
func (r *Registry) Items() []Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.items != nil {
		out := make([]Item, len(r.items))
		for i, d := range r.items {
			out[i] = Item{Data: d}
		}
		return out
	}

	ids := make([]int, 0, len(r.entries))
	for id, e := range r.entries {
		if e.CanPreview {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	out := make([]Item, len(ids))
	for i, id := range ids {
		out[i] = Item{ID: id, Data: r.entries[id].Data}
	}
	return out
}

// IndexOf resolves an image id to its navigation index. In explicit list
// mode the lookup is by src instead. It returns -1 when not found.
func (r *Registry) IndexOf(id int, src string) int {
	fromItems := r.FromItems()
	for i, item := range r.Items() {
		if fromItems {
			if item.Data.Src == src {
				return i
			}
			continue
		}
		if item.ID == id {
			return i
		}
	}
	return -1
}
