package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vision-works/go-regions/categories"
	"github.com/vision-works/go-regions/images"
)

// row builds a raw detection row: normalized box fields followed by the
// class score vector.
func row(cx, cy, w, h float32, scores ...float32) []float32 {
	return append([]float32{cx, cy, w, h}, scores...)
}

// headScores returns a 7-entry score vector with the given score at the
// HEAD index and zeros elsewhere.
func headScores(score float32) []float32 {
	scores := make([]float32, 7)
	scores[categories.Head] = score
	return scores
}

func TestDecodePixelConversion(t *testing.T) {
	tests := []struct {
		name     string
		row      []float32
		expected Candidate
	}{
		{
			name: "centered box",
			// 100x100 image: w=40, h=40, x=30-20=10, y=30-20=10.
			row:      row(0.3, 0.3, 0.4, 0.4, headScores(0.9)...),
			expected: Candidate{Box: images.Rect{X1: 10, Y1: 10, X2: 50, Y2: 50}, Score: 0.9},
		},
		{
			name: "box past the left edge keeps negative coordinates",
			// x = 5 - 20 = -15; decoding never clamps.
			row:      row(0.05, 0.05, 0.4, 0.4, headScores(0.8)...),
			expected: Candidate{Box: images.Rect{X1: -15, Y1: -15, X2: 25, Y2: 25}, Score: 0.8},
		},
		{
			name: "fractional coordinates truncate toward zero",
			// w=12.5, x = 25 - 6.25 = 18.75 -> 18, x2 = trunc(31.25) -> 31.
			row:      row(0.25, 0.25, 0.125, 0.125, headScores(0.7)...),
			expected: Candidate{Box: images.Rect{X1: 18, Y1: 18, X2: 31, Y2: 31}, Score: 0.7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := DecodeRows([][]float32{tt.row}, 100, 100, []categories.ID{categories.Head})
			require.NoError(t, err)
			got := set.Get(categories.Head)
			require.Len(t, got, 1)
			assert.Equal(t, tt.expected.Box, got[0].Box)
			assert.InDelta(t, tt.expected.Score, got[0].Score, 1e-6)
		})
	}
}

func TestDecodeArgmaxTieBreak(t *testing.T) {
	// ARMS (index 0) and BODY (index 1) tie; the lower index wins.
	r := row(0.5, 0.5, 0.2, 0.2, 0.9, 0.9, 0.1)
	set, err := DecodeRows([][]float32{r}, 100, 100, []categories.ID{categories.Arms, categories.Body})
	require.NoError(t, err)

	assert.Len(t, set.Get(categories.Arms), 1)
	assert.Empty(t, set.Get(categories.Body))
}

func TestDecodeDiscardsUnretainedWinner(t *testing.T) {
	// BODY wins the argmax but only HEAD is retained; the row is dropped
	// even though HEAD has a decent score.
	scores := make([]float32, 7)
	scores[categories.Body] = 0.9
	scores[categories.Head] = 0.6
	r := row(0.5, 0.5, 0.2, 0.2, scores...)

	set, err := DecodeRows([][]float32{r}, 100, 100, []categories.ID{categories.Head})
	require.NoError(t, err)
	assert.Empty(t, set.Get(categories.Head))
}

func TestDecodeDeterminism(t *testing.T) {
	rows := [][]float32{
		row(0.3, 0.3, 0.4, 0.4, headScores(0.9)...),
		row(0.32, 0.32, 0.4, 0.4, headScores(0.8)...),
		row(0.7, 0.7, 0.2, 0.2, headScores(0.6)...),
	}
	retain := []categories.ID{categories.Head}

	first, err := DecodeRows(rows, 100, 100, retain)
	require.NoError(t, err)
	second, err := DecodeRows(rows, 100, 100, retain)
	require.NoError(t, err)

	assert.Equal(t, first.Get(categories.Head), second.Get(categories.Head))
	assert.Equal(t, first.Categories(), second.Categories())
}

func TestDecodeMultipleTensors(t *testing.T) {
	outputs := [][][]float32{
		{row(0.3, 0.3, 0.4, 0.4, headScores(0.9)...)},
		{row(0.7, 0.7, 0.2, 0.2, headScores(0.6)...)},
	}
	set, err := Decode(outputs, 100, 100, []categories.ID{categories.Head})
	require.NoError(t, err)

	got := set.Get(categories.Head)
	require.Len(t, got, 2)
	// Scan order across tensors is preserved.
	assert.InDelta(t, 0.9, got[0].Score, 1e-6)
	assert.InDelta(t, 0.6, got[1].Score, 1e-6)
}

func TestDecodeEmptyInput(t *testing.T) {
	retain := []categories.ID{categories.Head, categories.Person}

	set, err := Decode(nil, 100, 100, retain)
	require.NoError(t, err)

	// Empty input is not an error: every retained category is present
	// with an empty list.
	assert.Equal(t, retain, set.Categories())
	assert.NotNil(t, set.Get(categories.Head))
	assert.Empty(t, set.Get(categories.Head))
	assert.Equal(t, 0, set.Len())
}

func TestDecodeInvalidImageDimensions(t *testing.T) {
	rows := [][]float32{row(0.3, 0.3, 0.4, 0.4, headScores(0.9)...)}

	for _, dims := range [][2]int{{0, 100}, {100, 0}, {-1, 100}} {
		_, err := DecodeRows(rows, dims[0], dims[1], []categories.ID{categories.Head})
		assert.ErrorIs(t, err, ErrInvalidImageDimensions)
	}
}

func TestDecodeMalformedRow(t *testing.T) {
	tests := []struct {
		name   string
		row    []float32
		retain []categories.ID
	}{
		{
			name:   "row shorter than the box fields",
			row:    []float32{0.3, 0.3},
			retain: []categories.ID{categories.Head},
		},
		{
			name: "score vector shorter than the retained index",
			// PERSON is index 14 but only 7 scores are present.
			row:    row(0.3, 0.3, 0.4, 0.4, headScores(0.9)...),
			retain: []categories.ID{categories.Person},
		},
		{
			name:   "negative normalized size",
			row:    row(0.3, 0.3, -0.4, 0.4, headScores(0.9)...),
			retain: []categories.ID{categories.Head},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRows([][]float32{tt.row}, 100, 100, tt.retain)
			assert.ErrorIs(t, err, ErrMalformedDetectionRow)
		})
	}
}
