package main

import (
	"sort"

	"github.com/maruel/natural"
)

// SortStrategy orders the images of a gallery. The gallery registers images
// in this order, so it is also the order of preview navigation.
type SortStrategy interface {
	// Sort returns a new sorted slice without modifying the original
	Sort(images []ImagePath) []ImagePath
	// Name returns the human-readable name of the strategy
	Name() string
	// ID returns the numeric identifier for config storage
	ID() int
}

type sortStrategy struct {
	id   int
	name string
	less func(a, b string) bool // nil keeps entry order
}

var sortStrategies = []*sortStrategy{
	{id: SortNatural, name: "Natural", less: natural.Less},
	{id: SortSimple, name: "Simple", less: func(a, b string) bool { return a < b }},
	{id: SortEntryOrder, name: "Entry Order"},
}

func (s *sortStrategy) Sort(images []ImagePath) []ImagePath {
	result := make([]ImagePath, len(images))
	copy(result, images)
	if s.less != nil {
		sort.SliceStable(result, func(i, j int) bool {
			return s.less(result[i].Path, result[j].Path)
		})
	}
	return result
}

func (s *sortStrategy) Name() string { return s.name }

func (s *sortStrategy) ID() int { return s.id }

// GetSortStrategy returns the strategy for a sort method ID, falling back to
// natural order.
func GetSortStrategy(sortMethod int) SortStrategy {
	for _, s := range sortStrategies {
		if s.id == sortMethod {
			return s
		}
	}
	return sortStrategies[0]
}

// GetAllSortStrategies returns all available sort strategies
func GetAllSortStrategies() []SortStrategy {
	out := make([]SortStrategy, len(sortStrategies))
	for i, s := range sortStrategies {
		out[i] = s
	}
	return out
}

// nextSortMethod returns the method after current in cycling order.
func nextSortMethod(current int) int {
	return (current + 1) % len(sortStrategies)
}
