package util

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/vision-works/go-regions/images"
)

// ImageFile represents one decoded image file from a frame directory.
type ImageFile struct {
	// Path is the path to the image file.
	Path string
	// Frame is the decoded pixel data in native BGR order.
	Frame *images.Frame
	// Index is the frame number parsed from the file name.
	Index int
}

// LoadDirectoryImageFiles reads and decodes all image files from a
// directory. File names follow the capture convention frame-<n>.<ext>; the
// result is sorted by frame number.
//
// Arguments:
//   - dir: Directory path containing image files.
//
// Returns:
//   - []ImageFile: Decoded frames sorted by frame number.
//   - error: Error if reading, decoding or name parsing fails.
func LoadDirectoryImageFiles(dir string) ([]ImageFile, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var loaded []ImageFile
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		ext := filepath.Ext(file.Name())
		switch ext {
		case ".jpg", ".jpeg", ".png", ".bmp":
			imgPath := filepath.Join(dir, file.Name())
			img, err := imaging.Open(imgPath)
			if err != nil {
				return nil, errors.Wrapf(err, "decoding %s", imgPath)
			}
			index, err := strconv.Atoi(strings.TrimSuffix(strings.ReplaceAll(file.Name(), "frame-", ""), ext))
			if err != nil {
				return nil, errors.Wrapf(err, "frame number in %s", file.Name())
			}
			loaded = append(loaded, ImageFile{
				Path:  imgPath,
				Frame: images.FromImage(img, images.OrderBGR),
				Index: index,
			})
		}
	}

	sort.Slice(loaded, func(i, j int) bool {
		return loaded[i].Index < loaded[j].Index
	})

	return loaded, nil
}
