package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/vision-works/go-regions/extract"
)

// SaveSegments writes every non-empty segment to dir as
// <category>-<n>.png, creating the directory if needed. Empty segments
// (boxes that clamped to nothing) are skipped on disk but still counted in
// the returned total so indices stay aligned with the segment lists.
func SaveSegments(dir string, segments *extract.Segments) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, errors.Wrap(err, "creating output dir")
	}

	total := 0
	for _, id := range segments.Categories() {
		for i, frame := range segments.Get(id) {
			total++
			if frame.Empty() {
				continue
			}
			name := fmt.Sprintf("%s-%d.png", strings.ToLower(id.String()), i)
			if err := imaging.Save(frame.ToImage(), filepath.Join(dir, name)); err != nil {
				return total, errors.Wrapf(err, "saving %s", name)
			}
		}
	}
	return total, nil
}
