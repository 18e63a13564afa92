// Package inference - ONNX Runtime session handle for detection models.
package inference

import (
	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
)

// Config describes the model a Session runs.
type Config struct {
	// ModelPath is the path to the .onnx model file.
	ModelPath string `json:"model_path" yaml:"model_path"`
	// InputName is the model's input tensor name.
	InputName string `json:"input_name" yaml:"input_name"`
	// OutputName is the model's output tensor name.
	OutputName string `json:"output_name" yaml:"output_name"`
	// InputShape is the input tensor shape, e.g. [1, 3, 640, 640].
	InputShape []int64 `json:"input_shape" yaml:"input_shape"`
	// OutputShape is the output tensor shape, e.g. [1, 84, 8400].
	OutputShape []int64 `json:"output_shape" yaml:"output_shape"`
}

// Session is an explicit inference resource handle: created once,
// reused across images, released by the caller via Close. It wraps an
// onnxruntime session with pre-allocated input and output tensors.
//
// The caller is responsible for initializing the onnxruntime
// environment (ort.InitializeEnvironment) before creating sessions.
//
// A Session is not safe for concurrent Detect calls; callers that
// parallelize across images should create one Session per worker.
type Session struct {
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
}

// NewSession loads the model and allocates its input/output tensors.
//
// Arguments:
//   - config: Model path, tensor names, and tensor shapes.
//
// Returns:
//   - The ready-to-run Session.
//   - An error if tensor allocation or session creation fails.
func NewSession(config Config) (*Session, error) {
	input, err := ort.NewEmptyTensor[float32](ort.NewShape(config.InputShape...))
	if err != nil {
		return nil, errors.Wrap(err, "allocating input tensor")
	}

	output, err := ort.NewEmptyTensor[float32](ort.NewShape(config.OutputShape...))
	if err != nil {
		input.Destroy()
		return nil, errors.Wrap(err, "allocating output tensor")
	}

	session, err := ort.NewAdvancedSession(
		config.ModelPath,
		[]string{config.InputName},
		[]string{config.OutputName},
		[]ort.ArbitraryTensor{input},
		[]ort.ArbitraryTensor{output},
		nil,
	)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, errors.Wrapf(err, "creating session for %s", config.ModelPath)
	}

	return &Session{session: session, input: input, output: output}, nil
}

// Detect runs one inference pass: the input tensor data is copied in,
// the model runs, and a copy of the raw output tensor is returned.
//
// Arguments:
//   - input: Preprocessed input data matching the input shape.
//
// Returns:
//   - A copy of the raw output tensor data.
//   - An error if the input size mismatches or the run fails.
func (s *Session) Detect(input []float32) ([]float32, error) {
	dst := s.input.GetData()
	if len(input) != len(dst) {
		return nil, errors.Errorf(
			"input size %d does not match model input size %d", len(input), len(dst))
	}
	copy(dst, input)

	if err := s.session.Run(); err != nil {
		return nil, errors.Wrap(err, "running inference")
	}

	src := s.output.GetData()
	out := make([]float32, len(src))
	copy(out, src)
	return out, nil
}

// Close releases the session and its tensors. Safe to call more than once.
func (s *Session) Close() {
	if s.input != nil {
		s.input.Destroy()
		s.input = nil
	}
	if s.output != nil {
		s.output.Destroy()
		s.output = nil
	}
	if s.session != nil {
		s.session.Destroy()
		s.session = nil
	}
}
