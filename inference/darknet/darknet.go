// Package darknet - gocv-backed forward-pass engine for Darknet networks.
package darknet

import (
	"image"
	"os"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/vision-works/go-regions/images"
)

// Config for the Darknet engine.
type Config struct {
	// ConfigPath is the network definition (.cfg) file.
	ConfigPath string
	// WeightsPath is the trained weights file.
	WeightsPath string
	// InputShape is the network input size in pixels.
	InputShape image.Point
}

// Engine wraps an OpenCV DNN network loaded from Darknet config and
// weights. Not safe for concurrent Forward calls; use one Engine per
// worker.
type Engine struct {
	net         gocv.Net
	inputShape  image.Point
	outputNames []string
}

// New loads the network definition and weights.
//
// Arguments:
//   - cfg: Paths to the network files and the input shape.
//
// Returns:
//   - An Engine ready for Forward calls, or an error if either file is
//     missing or the network fails to load.
func New(cfg Config) (*Engine, error) {
	for _, path := range []string{cfg.ConfigPath, cfg.WeightsPath} {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrap(err, "network file")
		}
	}

	net := gocv.ReadNet(cfg.WeightsPath, cfg.ConfigPath)
	if net.Empty() {
		return nil, errors.Errorf("failed to load network from %s / %s", cfg.ConfigPath, cfg.WeightsPath)
	}

	e := &Engine{net: net, inputShape: cfg.InputShape}
	for _, i := range net.GetUnconnectedOutLayers() {
		layer := net.GetLayer(i)
		e.outputNames = append(e.outputNames, layer.GetName())
		layer.Close()
	}
	if len(e.outputNames) == 0 {
		net.Close()
		return nil, errors.New("network has no output layers")
	}
	return e, nil
}

// Forward runs the network on the frame and converts each output layer's
// Mat into a slice of raw detection rows.
func (e *Engine) Forward(frame *images.Frame) ([][][]float32, error) {
	if frame == nil || frame.Empty() {
		return nil, errors.New("empty source frame")
	}

	native := frame
	if native.Order != images.OrderBGR {
		native = native.Converted(images.OrderBGR)
	}
	mat, err := gocv.NewMatFromBytes(native.Height, native.Width, gocv.MatTypeCV8UC3, native.Data)
	if err != nil {
		return nil, errors.Wrap(err, "frame to mat")
	}
	defer mat.Close()

	blob := gocv.BlobFromImage(mat, 1.0/255.0, e.inputShape, gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	e.net.SetInput(blob, "")
	outputs := e.net.ForwardLayers(e.outputNames)
	defer func() {
		for _, out := range outputs {
			out.Close()
		}
	}()

	tensors := make([][][]float32, 0, len(outputs))
	for _, out := range outputs {
		rows, err := matRows(out)
		if err != nil {
			return nil, err
		}
		tensors = append(tensors, rows)
	}
	return tensors, nil
}

// Close releases the underlying network.
func (e *Engine) Close() error {
	return e.net.Close()
}

// matRows copies a 2-D float32 output Mat into per-detection rows.
// DataPtrFloat32 is a view into the Mat's native buffer, so the rows must
// be copied out before the Mat is closed.
func matRows(m gocv.Mat) ([][]float32, error) {
	data, err := m.DataPtrFloat32()
	if err != nil {
		return nil, errors.Wrap(err, "output mat data")
	}
	cols := m.Cols()
	if cols <= 0 {
		return nil, errors.New("output mat has no columns")
	}
	return copyRows(data, cols), nil
}

// copyRows slices data into rows of cols values each, copying out of the
// backing array so the rows own their memory. A trailing partial row is
// dropped.
func copyRows(data []float32, cols int) [][]float32 {
	rows := make([][]float32, 0, len(data)/cols)
	for off := 0; off+cols <= len(data); off += cols {
		rows = append(rows, append([]float32(nil), data[off:off+cols]...))
	}
	return rows
}
