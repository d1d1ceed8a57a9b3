package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vision-works/go-regions/categories"
	"github.com/vision-works/go-regions/detect"
	"github.com/vision-works/go-regions/images"
)

// decodeSet builds a post-suppression set by decoding synthetic rows, so
// these tests exercise the same Set shape the real pipeline produces.
func decodeSet(t *testing.T, rows [][]float32, w, h int, retain []categories.ID) *detect.Set {
	t.Helper()
	set, err := detect.DecodeRows(rows, w, h, retain)
	require.NoError(t, err)
	return set
}

// headRow builds a row whose winner is HEAD with the given box and score.
func headRow(cx, cy, w, h, score float32) []float32 {
	row := []float32{cx, cy, w, h, 0, 0, 0, 0, 0, 0, 0}
	row[4+int(categories.Head)] = score
	return row
}

func uniformFrame(w, h int, b, g, r byte) *images.Frame {
	f := images.NewFrame(w, h, images.OrderBGR)
	for i := 0; i < len(f.Data); i += 3 {
		f.Data[i] = b
		f.Data[i+1] = g
		f.Data[i+2] = r
	}
	return f
}

func TestExtractCropsAndConverts(t *testing.T) {
	frame := uniformFrame(100, 100, 10, 20, 30)
	// Box (10,50,10,50): cx=cy=0.3, w=h=0.4 on a 100x100 image.
	set := decodeSet(t, [][]float32{headRow(0.3, 0.3, 0.4, 0.4, 0.9)}, 100, 100,
		[]categories.ID{categories.Head})

	segments, err := Extract(frame, set)
	require.NoError(t, err)

	got := segments.Get(categories.Head)
	require.Len(t, got, 1)
	assert.Equal(t, 40, got[0].Width)
	assert.Equal(t, 40, got[0].Height)
	// Segments come out in canonical RGB order: BGR (10,20,30) -> RGB (30,20,10).
	assert.Equal(t, images.OrderRGB, got[0].Order)
	assert.Equal(t, []byte{30, 20, 10}, got[0].Data[:3])
}

func TestExtractClampsBoxPartiallyOutside(t *testing.T) {
	frame := uniformFrame(100, 100, 1, 2, 3)

	// Box (-5,20,-5,20) clamps to (0,20,0,20): a 20x20 segment.
	set := detect.NewSet([]categories.ID{categories.Head})
	set.Append(categories.Head, detect.Candidate{
		Box:   images.Rect{X1: -5, Y1: -5, X2: 20, Y2: 20},
		Score: 0.9,
	})

	segments, err := Extract(frame, set)
	require.NoError(t, err)

	got := segments.Get(categories.Head)
	require.Len(t, got, 1)
	assert.Equal(t, 20, got[0].Width)
	assert.Equal(t, 20, got[0].Height)
}

func TestExtractFullyOutsideBoxYieldsEmptySegment(t *testing.T) {
	frame := uniformFrame(100, 100, 1, 2, 3)

	set := detect.NewSet([]categories.ID{categories.Head})
	set.Append(categories.Head, detect.Candidate{
		Box:   images.Rect{X1: 200, Y1: 200, X2: 300, Y2: 300},
		Score: 0.9,
	})

	segments, err := Extract(frame, set)
	require.NoError(t, err)

	// The segment is present but empty; it is not omitted and not an
	// error, so segment indices stay aligned with surviving candidates.
	got := segments.Get(categories.Head)
	require.Len(t, got, 1)
	assert.True(t, got[0].Empty())
}

func TestExtractPreservesGroupingAndOrder(t *testing.T) {
	frame := uniformFrame(100, 100, 1, 2, 3)

	set := detect.NewSet([]categories.ID{categories.Head, categories.Eyes})
	set.Append(categories.Head, detect.Candidate{Box: images.Rect{X1: 0, Y1: 0, X2: 10, Y2: 10}, Score: 0.9})
	set.Append(categories.Head, detect.Candidate{Box: images.Rect{X1: 50, Y1: 50, X2: 70, Y2: 70}, Score: 0.8})

	segments, err := Extract(frame, set)
	require.NoError(t, err)

	assert.Equal(t, set.Categories(), segments.Categories())
	require.Len(t, segments.Get(categories.Head), 2)
	assert.Empty(t, segments.Get(categories.Eyes))
	assert.Equal(t, 10, segments.Get(categories.Head)[0].Width)
	assert.Equal(t, 20, segments.Get(categories.Head)[1].Width)
	assert.Equal(t, 2, segments.Len())
}

func TestExtractInvalidSourceFrame(t *testing.T) {
	set := detect.NewSet([]categories.ID{categories.Head})

	_, err := Extract(nil, set)
	assert.ErrorIs(t, err, detect.ErrInvalidImageDimensions)

	_, err = Extract(&images.Frame{Width: 0, Height: 100}, set)
	assert.ErrorIs(t, err, detect.ErrInvalidImageDimensions)
}
