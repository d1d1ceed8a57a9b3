// Package detect - decodes raw detector output and suppresses overlapping
// candidates.
package detect

import (
	"github.com/vision-works/go-regions/categories"
	"github.com/vision-works/go-regions/images"
)

// Candidate is a decoded, not-yet-filtered detection for one category.
type Candidate struct {
	// The bounding box in pixel space.
	Box images.Rect
	// The raw confidence score at the winning class index.
	Score float32
}

// Set is a category-keyed collection of candidates. Every retained category
// is present from construction, with an empty list until candidates are
// appended; iteration follows the retain order given at construction so
// results are deterministic.
//
// A Set belongs to a single detection request. It is built once by the
// decoder, shrunk in place by the suppressor, and read once by the
// extractor; nothing here is safe for concurrent use.
type Set struct {
	order []categories.ID
	items map[categories.ID][]Candidate
}

// NewSet initializes a set with an empty candidate list for every retained
// category. Duplicate IDs keep their first position.
func NewSet(retain []categories.ID) *Set {
	s := &Set{
		order: make([]categories.ID, 0, len(retain)),
		items: make(map[categories.ID][]Candidate, len(retain)),
	}
	for _, id := range retain {
		if _, ok := s.items[id]; ok {
			continue
		}
		s.order = append(s.order, id)
		s.items[id] = []Candidate{}
	}
	return s
}

// Categories returns the retained category IDs in iteration order.
func (s *Set) Categories() []categories.ID {
	out := make([]categories.ID, len(s.order))
	copy(out, s.order)
	return out
}

// Get returns the candidate list for a category. Categories outside the
// retain set return nil.
func (s *Set) Get(id categories.ID) []Candidate {
	return s.items[id]
}

// Has reports whether the category is in the retain set.
func (s *Set) Has(id categories.ID) bool {
	_, ok := s.items[id]
	return ok
}

// Len returns the total candidate count across all categories.
func (s *Set) Len() int {
	n := 0
	for _, list := range s.items {
		n += len(list)
	}
	return n
}

// Append adds a candidate to a category's list. Appending to a category
// outside the retain set does nothing; the retain set is fixed at
// construction.
func (s *Set) Append(id categories.ID, c Candidate) {
	if _, ok := s.items[id]; !ok {
		return
	}
	s.items[id] = append(s.items[id], c)
}

func (s *Set) replace(id categories.ID, list []Candidate) {
	s.items[id] = list
}
