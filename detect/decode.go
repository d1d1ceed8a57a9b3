package detect

import (
	"github.com/pkg/errors"

	"github.com/vision-works/go-regions/categories"
	"github.com/vision-works/go-regions/images"
)

// Raw detection row layout: the first four fields are the normalized box
// center and size, the class score vector starts immediately after.
const boxFields = 4

// Decode converts the raw output tensors of one forward pass into a
// candidate Set.
//
// Each row holds normalized center-x, center-y, width and height followed by
// one score per class. The winning class is the argmax of the score vector,
// ties resolving to the lowest index; rows whose winner is not in retain are
// dropped. Boxes are converted to pixel space with truncation toward zero
// and are NOT clamped to the image: negative coordinates are legal and mean
// the box extends past the image edge.
//
// Arguments:
//   - outputs: The output tensors from one forward pass, each a slice of rows.
//   - imgWidth: The source image width in pixels.
//   - imgHeight: The source image height in pixels.
//   - retain: The category IDs to keep; everything else is discarded.
//
// Returns:
//   - A Set with every retained category present, empty input yielding a Set
//     of empty lists.
//   - ErrInvalidImageDimensions or ErrMalformedDetectionRow on bad input.
func Decode(outputs [][][]float32, imgWidth, imgHeight int, retain []categories.ID) (*Set, error) {
	if imgWidth <= 0 || imgHeight <= 0 {
		return nil, errors.Wrapf(ErrInvalidImageDimensions, "%dx%d", imgWidth, imgHeight)
	}

	set := NewSet(retain)
	maxIdx := categories.MaxIndex(retain)

	for ti, rows := range outputs {
		for ri, row := range rows {
			if err := decodeRow(set, row, maxIdx, imgWidth, imgHeight); err != nil {
				return nil, errors.Wrapf(err, "tensor %d row %d", ti, ri)
			}
		}
	}
	return set, nil
}

// DecodeRows is Decode for a single output tensor.
func DecodeRows(rows [][]float32, imgWidth, imgHeight int, retain []categories.ID) (*Set, error) {
	return Decode([][][]float32{rows}, imgWidth, imgHeight, retain)
}

func decodeRow(set *Set, row []float32, maxIdx, imgWidth, imgHeight int) error {
	scoreCount := len(row) - boxFields
	if scoreCount < 0 {
		return errors.Wrapf(ErrMalformedDetectionRow, "row has %d fields, want at least %d", len(row), boxFields)
	}
	if scoreCount <= maxIdx {
		return errors.Wrapf(ErrMalformedDetectionRow,
			"score vector has %d entries, retained class index %d out of range", scoreCount, maxIdx)
	}

	scores := row[boxFields:]
	classID := -1
	best := float32(0)
	for i, score := range scores {
		// Strict > keeps the first occurrence on ties.
		if classID < 0 || score > best {
			best = score
			classID = i
		}
	}
	if classID < 0 || !set.Has(categories.ID(classID)) {
		return nil
	}

	w := row[2] * float32(imgWidth)
	h := row[3] * float32(imgHeight)
	if w < 0 || h < 0 {
		return errors.Wrapf(ErrMalformedDetectionRow, "negative box size %fx%f", w, h)
	}
	x := row[0]*float32(imgWidth) - w/2
	y := row[1]*float32(imgHeight) - h/2

	set.Append(categories.ID(classID), Candidate{
		Box: images.Rect{
			X1: int(x), // int() truncates toward zero
			Y1: int(y),
			X2: int(x + w),
			Y2: int(y + h),
		},
		Score: best,
	})
	return nil
}
