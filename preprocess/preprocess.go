// Package preprocess - builds the float32 input blob a detection network
// consumes from a source frame.
package preprocess

import (
	"github.com/chewxy/math32"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"github.com/vision-works/go-regions/detect"
	"github.com/vision-works/go-regions/images"
)

// BlobConfig defines how a frame is turned into a network input blob.
type BlobConfig struct {
	// InputWidth is the expected width of the network input.
	InputWidth int
	// InputHeight is the expected height of the network input.
	InputHeight int
	// ScaleFactor multiplies every channel value; 1/255 maps bytes to [0,1].
	ScaleFactor float32
}

// DefaultBlobConfig returns the blob shape used by the Darknet-style
// detectors this module targets.
func DefaultBlobConfig() BlobConfig {
	return BlobConfig{
		InputWidth:  416,
		InputHeight: 416,
		ScaleFactor: 1.0 / 255.0,
	}
}

// MakeBlob resizes the frame to the network input shape and lays it out as
// a CHW float32 blob, channels in RGB order regardless of the frame's
// native order.
//
// Arguments:
//   - frame: The source frame.
//   - cfg: The blob shape and scaling.
//
// Returns:
//   - A blob of InputWidth*InputHeight*3 float32 values,
//     detect.ErrInvalidImageDimensions for a nil or empty frame, or an
//     error for a non-positive input shape.
func MakeBlob(frame *images.Frame, cfg BlobConfig) ([]float32, error) {
	if frame == nil || frame.Empty() {
		return nil, errors.Wrap(detect.ErrInvalidImageDimensions, "source frame")
	}
	if cfg.InputWidth <= 0 || cfg.InputHeight <= 0 {
		return nil, errors.Errorf("invalid input shape %dx%d", cfg.InputWidth, cfg.InputHeight)
	}

	scaled := resize.Resize(uint(cfg.InputWidth), uint(cfg.InputHeight), frame.ToImage(), resize.Lanczos3)
	rgb := images.FromImage(scaled, images.OrderRGB)

	plane := cfg.InputWidth * cfg.InputHeight
	blob := make([]float32, 3*plane)
	for i := 0; i < plane; i++ {
		blob[i] = float32(rgb.Data[i*3]) * cfg.ScaleFactor
		blob[plane+i] = float32(rgb.Data[i*3+1]) * cfg.ScaleFactor
		blob[2*plane+i] = float32(rgb.Data[i*3+2]) * cfg.ScaleFactor
	}
	return blob, nil
}

// LetterboxScale returns the uniform scale and the horizontal and vertical
// padding that fit src inside dst while preserving aspect ratio. Padding is
// split evenly between the two sides, rounded to whole pixels.
func LetterboxScale(srcW, srcH, dstW, dstH int) (scale float32, padX, padY int) {
	scale = math32.Min(
		float32(dstW)/float32(srcW),
		float32(dstH)/float32(srcH),
	)
	padX = int(math32.Round((float32(dstW) - float32(srcW)*scale) / 2))
	padY = int(math32.Round((float32(dstH) - float32(srcH)*scale) / 2))
	return scale, padX, padY
}
