package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

// TestTransposeOutput verifies attribute-major wire data becomes
// candidate-major rows.
func TestTransposeOutput(t *testing.T) {
	// Two attributes, three candidates: attribute rows [1 2 3], [4 5 6].
	data := []float32{1, 2, 3, 4, 5, 6}

	rows, err := TransposeOutput(data, 2, 3)
	require.NoError(t, err)

	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, rows,
		"candidate i's row is [attr0[i], attr1[i]]")
}

// TestTransposeOutputLengthMismatch verifies shape validation.
func TestTransposeOutputLengthMismatch(t *testing.T) {
	_, err := TransposeOutput([]float32{1, 2, 3}, 2, 2)
	assert.Error(t, err, "length must equal numAttrs*numCandidates")
}

// TestRowsFromTensor verifies the dense-tensor adapter handles both
// the batched and unbatched output shapes.
func TestRowsFromTensor(t *testing.T) {
	backing := []float32{1, 2, 3, 4, 5, 6}

	batched := tensor.New(tensor.WithShape(1, 2, 3), tensor.WithBacking(backing))
	rows, attrs, err := RowsFromTensor(batched)
	require.NoError(t, err)
	assert.Equal(t, 2, attrs, "attributes per candidate")
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, rows)

	flat := tensor.New(tensor.WithShape(2, 3), tensor.WithBacking(backing))
	rows, attrs, err = RowsFromTensor(flat)
	require.NoError(t, err)
	assert.Equal(t, 2, attrs)
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, rows)
}

// TestRowsFromTensorRejectsBadShape verifies unsupported ranks and
// batch sizes are errors.
func TestRowsFromTensorRejectsBadShape(t *testing.T) {
	bad := tensor.New(tensor.WithShape(2, 2, 3), tensor.WithBacking(make([]float32, 12)))
	_, _, err := RowsFromTensor(bad)
	assert.Error(t, err, "batch dimension other than 1 is unsupported")

	vec := tensor.New(tensor.WithShape(6), tensor.WithBacking(make([]float32, 6)))
	_, _, err = RowsFromTensor(vec)
	assert.Error(t, err, "rank-1 tensors are unsupported")
}
