// Package pipeline - composes decode, suppression and extraction into one
// detection request.
package pipeline

import (
	"github.com/vision-works/go-regions/categories"
	"github.com/vision-works/go-regions/detect"
	"github.com/vision-works/go-regions/extract"
	"github.com/vision-works/go-regions/images"
)

// Pipeline holds the per-call parameters shared by every request: which
// categories to retain and the suppression thresholds. A Pipeline is
// immutable after construction and safe to share across goroutines; all
// mutable state lives in the per-request Set and Segments.
type Pipeline struct {
	retain           []categories.ID
	scoreThreshold   float32
	overlapThreshold float32
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithScoreThreshold overrides the default minimum confidence.
func WithScoreThreshold(t float32) Option {
	return func(p *Pipeline) { p.scoreThreshold = t }
}

// WithOverlapThreshold overrides the default maximum IoU.
func WithOverlapThreshold(t float32) Option {
	return func(p *Pipeline) { p.overlapThreshold = t }
}

// New builds a Pipeline retaining the given categories, with default
// thresholds unless overridden.
func New(retain []categories.ID, opts ...Option) *Pipeline {
	p := &Pipeline{
		retain:           append([]categories.ID(nil), retain...),
		scoreThreshold:   detect.DefaultScoreThreshold,
		overlapThreshold: detect.DefaultOverlapThreshold,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one full detection request: decode the raw outputs, suppress
// overlapping candidates, extract the survivors from the frame. The stages
// run strictly in order and the first failing stage aborts the request; no
// partial Segments are ever returned.
//
// Arguments:
//   - outputs: The forward-pass output tensors, each a slice of raw rows.
//   - frame: The original source frame.
//
// Returns:
//   - The extracted segments, or the first stage error.
func (p *Pipeline) Run(outputs [][][]float32, frame *images.Frame) (*extract.Segments, error) {
	if frame == nil {
		return nil, detect.ErrInvalidImageDimensions
	}
	set, err := detect.Decode(outputs, frame.Width, frame.Height, p.retain)
	if err != nil {
		return nil, err
	}
	if _, err := detect.Suppress(set, p.scoreThreshold, p.overlapThreshold); err != nil {
		return nil, err
	}
	return extract.Extract(frame, set)
}
