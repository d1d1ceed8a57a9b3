package detect

import "github.com/pkg/errors"

// Error kinds surfaced by the pipeline stages. All are deterministic
// functions of the input; none are retried. Callers distinguish them with
// errors.Is. An empty input row sequence is explicitly not an error.
var (
	// ErrInvalidImageDimensions reports a zero or negative image width or
	// height.
	ErrInvalidImageDimensions = errors.New("invalid image dimensions")

	// ErrMalformedDetectionRow reports a raw detection row too short for the
	// retained class indices, or one decoding to a negative-size box.
	ErrMalformedDetectionRow = errors.New("malformed detection row")

	// ErrInvalidThreshold reports a score or overlap threshold outside [0,1].
	ErrInvalidThreshold = errors.New("invalid threshold")
)
