// Package inference - the forward-pass collaborator boundary.
//
// The post-processing pipeline consumes raw output tensors and never knows
// how they were produced; Engine is the seam where a real network backend
// plugs in. The subpackages provide a gocv DNN backend for Darknet weights
// and an onnxruntime backend for ONNX models.
package inference

import "github.com/vision-works/go-regions/images"

// Engine runs one forward pass over a frame and returns the raw output
// tensors as row slices, the shape detect.Decode consumes.
type Engine interface {
	// Forward runs the network on the frame. The returned rows reference
	// memory owned by the engine and are only valid until the next call.
	Forward(frame *images.Frame) ([][][]float32, error)

	// Close releases the backend's native resources.
	Close() error
}
