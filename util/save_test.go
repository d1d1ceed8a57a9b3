package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vision-works/go-regions/categories"
	"github.com/vision-works/go-regions/detect"
	"github.com/vision-works/go-regions/extract"
	"github.com/vision-works/go-regions/images"
)

func TestSaveSegments(t *testing.T) {
	frame := images.NewFrame(100, 100, images.OrderBGR)

	set := detect.NewSet([]categories.ID{categories.Head})
	set.Append(categories.Head, detect.Candidate{
		Box:   images.Rect{X1: 10, Y1: 10, X2: 30, Y2: 30},
		Score: 0.9,
	})
	// Clamps to nothing: counted but not written.
	set.Append(categories.Head, detect.Candidate{
		Box:   images.Rect{X1: 200, Y1: 200, X2: 300, Y2: 300},
		Score: 0.8,
	})

	segments, err := extract.Extract(frame, set)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	saved, err := SaveSegments(dir, segments)
	require.NoError(t, err)
	assert.Equal(t, 2, saved)

	// The non-empty segment landed on disk under its category name and
	// index; the empty one left no file.
	img, err := imaging.Open(filepath.Join(dir, "head-0.png"))
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())

	_, err = os.Stat(filepath.Join(dir, "head-1.png"))
	assert.True(t, os.IsNotExist(err))
}
