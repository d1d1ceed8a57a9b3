// Package extract - crops surviving detections out of the source frame.
package extract

import (
	"github.com/pkg/errors"

	"github.com/vision-works/go-regions/categories"
	"github.com/vision-works/go-regions/detect"
	"github.com/vision-works/go-regions/images"
)

// Segments is a category-keyed collection of extracted image regions, one
// per surviving candidate, in the same relative order the candidates
// survived suppression. Every segment is in canonical RGB order.
type Segments struct {
	order []categories.ID
	items map[categories.ID][]*images.Frame
}

// Categories returns the category IDs in iteration order.
func (s *Segments) Categories() []categories.ID {
	out := make([]categories.ID, len(s.order))
	copy(out, s.order)
	return out
}

// Get returns the extracted frames for a category.
func (s *Segments) Get(id categories.ID) []*images.Frame {
	return s.items[id]
}

// Len returns the total segment count across all categories.
func (s *Segments) Len() int {
	n := 0
	for _, list := range s.items {
		n += len(list)
	}
	return n
}

// Extract crops the source frame at every surviving candidate box and
// converts each crop to RGB.
//
// Boxes are clamped to the frame bounds here, not earlier: a box decoded
// partially outside the image is silently intersected with the image
// rectangle. A box that clamps down to zero width or height still produces
// a segment - an empty frame - so the segment list always lines up with the
// candidate list. This happens for real with boxes near image edges and is
// not an error.
//
// Arguments:
//   - frame: The original source frame in its native channel order.
//   - set: The post-suppression candidate set.
//
// Returns:
//   - Segments grouped and ordered like the input set, or
//     detect.ErrInvalidImageDimensions for a nil or empty source frame.
func Extract(frame *images.Frame, set *detect.Set) (*Segments, error) {
	if frame == nil || frame.Empty() {
		return nil, errors.Wrap(detect.ErrInvalidImageDimensions, "source frame")
	}

	out := &Segments{
		order: set.Categories(),
		items: make(map[categories.ID][]*images.Frame, len(set.Categories())),
	}
	for _, id := range out.order {
		candidates := set.Get(id)
		list := make([]*images.Frame, 0, len(candidates))
		for _, c := range candidates {
			list = append(list, frame.Crop(c.Box).Converted(images.OrderRGB))
		}
		out.items[id] = list
	}
	return out, nil
}
