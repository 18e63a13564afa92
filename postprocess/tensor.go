package postprocess

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// TransposeOutput rearranges a detector output tensor from the ONNX
// wire layout (numAttrs, numCandidates), where each attribute is a
// contiguous row across all candidates, into candidate-major rows of
// numAttrs values each, the layout FilterDetections consumes.
//
// Arguments:
//   - data: Flat tensor data of length numAttrs*numCandidates.
//   - numAttrs: Attributes per candidate (4 + number of classes).
//   - numCandidates: Number of candidate rows.
//
// Returns:
//   - The candidate-major copy of the data.
//   - An error when the length does not match the declared shape.
func TransposeOutput(data []float32, numAttrs, numCandidates int) ([]float32, error) {
	if len(data) != numAttrs*numCandidates {
		return nil, errors.Errorf(
			"output length %d does not match %dx%d", len(data), numAttrs, numCandidates)
	}

	rows := make([]float32, len(data))
	for a := 0; a < numAttrs; a++ {
		for i := 0; i < numCandidates; i++ {
			rows[i*numAttrs+a] = data[a*numCandidates+i]
		}
	}
	return rows, nil
}

// RowsFromTensor extracts candidate-major rows from a dense tensor
// shaped (1, numAttrs, numCandidates) or (numAttrs, numCandidates).
//
// Arguments:
//   - t: The raw model output tensor.
//
// Returns:
//   - Candidate-major row data suitable for FilterDetections.
//   - The number of attributes per row.
//   - An error for unsupported shapes or element types.
func RowsFromTensor(t *tensor.Dense) ([]float32, int, error) {
	shape := t.Shape()
	switch {
	case len(shape) == 3 && shape[0] == 1:
		shape = shape[1:]
	case len(shape) == 2:
	default:
		return nil, 0, errors.Errorf("unsupported output shape %v", t.Shape())
	}

	data, ok := t.Data().([]float32)
	if !ok {
		return nil, 0, errors.Errorf("expected float32 tensor, got %v", t.Dtype())
	}

	numAttrs, numCandidates := shape[0], shape[1]
	rows, err := TransposeOutput(data, numAttrs, numCandidates)
	if err != nil {
		return nil, 0, err
	}
	return rows, numAttrs, nil
}
