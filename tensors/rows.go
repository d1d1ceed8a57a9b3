// Package tensors - adapts dense tensors to raw detection rows.
package tensors

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Rows views a float32 tensor as detection rows for decoding. Accepts a
// 2-D (rows x fields) tensor or a 3-D one with a leading batch dimension
// of 1. The returned rows share the tensor's backing array.
//
// Arguments:
//   - t: The output tensor of a forward pass.
//
// Returns:
//   - One row per detection, or an error for unsupported shapes or dtypes.
func Rows(t tensor.Tensor) ([][]float32, error) {
	if t.Dtype() != tensor.Float32 {
		return nil, errors.Errorf("unsupported dtype %v, want float32", t.Dtype())
	}

	shape := t.Shape()
	switch {
	case len(shape) == 2:
		// rows x fields
	case len(shape) == 3 && shape[0] == 1:
		shape = shape[1:]
	default:
		return nil, errors.Errorf("unsupported shape %v", t.Shape())
	}
	numRows, rowSize := shape[0], shape[1]
	if rowSize == 0 {
		return nil, errors.Errorf("unsupported shape %v", t.Shape())
	}

	data, ok := t.Data().([]float32)
	if !ok {
		return nil, errors.New("tensor backing is not []float32")
	}
	if len(data) < numRows*rowSize {
		return nil, errors.Errorf("backing array has %d values, shape %v needs %d",
			len(data), t.Shape(), numRows*rowSize)
	}

	rows := make([][]float32, numRows)
	for i := range rows {
		rows[i] = data[i*rowSize : (i+1)*rowSize]
	}
	return rows, nil
}
