// Package images - geometry and raw frame buffers for detection post-processing.
package images

// Rect is a lightweight bounding box.
type Rect struct {
	// X2,Y2 are exclusive (like image.Rectangle).
	X1, Y1, X2, Y2 int
}

// Width returns the horizontal extent of the box.
func (r Rect) Width() int { return r.X2 - r.X1 }

// Height returns the vertical extent of the box.
func (r Rect) Height() int { return r.Y2 - r.Y1 }

// Area returns the box area in pixels. Inverted boxes report zero.
func (r Rect) Area() int {
	if r.X2 <= r.X1 || r.Y2 <= r.Y1 {
		return 0
	}
	return (r.X2 - r.X1) * (r.Y2 - r.Y1)
}

// Empty reports whether the box covers no pixels.
func (r Rect) Empty() bool { return r.Area() == 0 }

// Clamp intersects the box with the image rectangle [0,w)x[0,h).
// Each axis is clamped independently; a box fully outside the image
// collapses to a zero-width or zero-height box on the nearest edge.
func (r Rect) Clamp(w, h int) Rect {
	c := Rect{
		X1: min(max(r.X1, 0), w),
		X2: min(max(r.X2, 0), w),
		Y1: min(max(r.Y1, 0), h),
		Y2: min(max(r.Y2, 0), h),
	}
	return c
}

// CalculateIoU measures the overlap between two bounding boxes.
//
// IoU (Intersection over Union) is the ratio of the intersection area to the
// combined area of the two boxes:
//
//	IoU = Area of Intersection / Area of Union
//
//	- 1.0 means the boxes are identical.
//	- 0.0 means the boxes do not overlap at all.
//
// The union is computed by inclusion/exclusion so the overlap is not counted
// twice: Union(A, B) = Area(A) + Area(B) - Intersection(A, B). A box with
// zero area yields an IoU of 0 against any box, including itself.
//
// Arguments:
//   - r: The first rectangle.
//   - o: The other rectangle to compare against.
//
// Returns:
//   - float32: A value between 0.0 and 1.0.
func CalculateIoU(r, o Rect) float32 {
	// The intersection starts where both boxes have begun and ends as soon
	// as the first one ends.
	ix1 := max(r.X1, o.X1)
	iy1 := max(r.Y1, o.Y1)
	ix2 := min(r.X2, o.X2)
	iy2 := min(r.Y2, o.Y2)

	interW := ix2 - ix1
	interH := iy2 - iy1
	if interW <= 0 || interH <= 0 {
		return 0.0
	}
	interArea := interW * interH

	unionArea := r.Area() + o.Area() - interArea
	if unionArea <= 0 {
		return 0.0
	}

	return float32(interArea) / float32(unionArea)
}
