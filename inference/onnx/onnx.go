// Package onnx - onnxruntime-backed forward-pass engine.
package onnx

import (
	"os"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/vision-works/go-regions/images"
	"github.com/vision-works/go-regions/preprocess"
)

// Config for the ONNX engine.
type Config struct {
	// ModelPath is the .onnx model file.
	ModelPath string
	// LibraryPath is the onnxruntime shared library; empty uses the
	// platform default already configured by the caller.
	LibraryPath string
	// InputName and OutputName are the graph tensor names.
	InputName  string
	OutputName string
	// InputWidth and InputHeight are the network input size.
	InputWidth  int
	InputHeight int
	// RowSize is the number of values per detection row in the output.
	RowSize int
	// RowCount is the number of detection rows in the output.
	RowCount int
}

// Engine owns a fixed input/output tensor pair bound to an onnxruntime
// session. Not safe for concurrent Forward calls.
type Engine struct {
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
	cfg     Config
	rows    [][]float32
}

// New initializes the onnxruntime environment if needed and creates a
// session with preallocated input and output tensors.
func New(cfg Config) (*Engine, error) {
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, errors.Wrap(err, "model file")
	}
	if cfg.RowSize <= 0 || cfg.RowCount <= 0 {
		return nil, errors.Errorf("invalid output shape %dx%d", cfg.RowCount, cfg.RowSize)
	}

	if cfg.LibraryPath != "" {
		ort.SetSharedLibraryPath(cfg.LibraryPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, errors.Wrap(err, "initializing onnxruntime")
		}
	}

	input, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 3, int64(cfg.InputHeight), int64(cfg.InputWidth)))
	if err != nil {
		return nil, errors.Wrap(err, "creating input tensor")
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(cfg.RowCount), int64(cfg.RowSize)))
	if err != nil {
		input.Destroy()
		return nil, errors.Wrap(err, "creating output tensor")
	}

	session, err := ort.NewAdvancedSession(
		cfg.ModelPath,
		[]string{cfg.InputName},
		[]string{cfg.OutputName},
		[]ort.ArbitraryTensor{input},
		[]ort.ArbitraryTensor{output},
		nil,
	)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, errors.Wrap(err, "creating session")
	}

	return &Engine{
		session: session,
		input:   input,
		output:  output,
		cfg:     cfg,
		rows:    make([][]float32, cfg.RowCount),
	}, nil
}

// Forward builds the input blob from the frame, runs the session, and
// views the output tensor as detection rows.
func (e *Engine) Forward(frame *images.Frame) ([][][]float32, error) {
	blob, err := preprocess.MakeBlob(frame, preprocess.BlobConfig{
		InputWidth:  e.cfg.InputWidth,
		InputHeight: e.cfg.InputHeight,
		ScaleFactor: 1.0 / 255.0,
	})
	if err != nil {
		return nil, err
	}
	copy(e.input.GetData(), blob)

	if err := e.session.Run(); err != nil {
		return nil, errors.Wrap(err, "running session")
	}

	data := e.output.GetData()
	for i := 0; i < e.cfg.RowCount; i++ {
		e.rows[i] = data[i*e.cfg.RowSize : (i+1)*e.cfg.RowSize]
	}
	return [][][]float32{e.rows}, nil
}

// Close destroys the session and its tensors.
func (e *Engine) Close() error {
	e.session.Destroy()
	e.input.Destroy()
	e.output.Destroy()
	return nil
}
