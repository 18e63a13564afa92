package pipeline

import (
	"image"
	"iter"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-detect/images"
	"github.com/nvr-ai/go-detect/postprocess"
	"github.com/nvr-ai/go-detect/util"
)

// Detector is the opaque inference collaborator: it maps a
// preprocessed input tensor to the model's raw output tensor in the
// (1, 4+numClasses, numCandidates) wire layout.
type Detector interface {
	Detect(input []float32) ([]float32, error)
}

// DetectorFunc adapts a plain function to the Detector interface.
type DetectorFunc func(input []float32) ([]float32, error)

// Detect calls f.
func (f DetectorFunc) Detect(input []float32) ([]float32, error) {
	return f(input)
}

// Result is the outcome of running the pipeline on one image. Boxes,
// Scores, and Classes are index-aligned and ordered by descending
// score. Best points at the box of the maximum-confidence detection
// and is nil when nothing survived filtering and suppression — an
// empty Result with a nil Err is a valid outcome, not a failure.
type Result struct {
	// Path is the opaque image identifier, passed through unchanged.
	Path string
	// Boxes are the kept detections in original-image pixel coordinates.
	Boxes []images.Rect
	// Scores are the confidence scores parallel to Boxes.
	Scores []float32
	// Classes are the class ids parallel to Boxes.
	Classes []int
	// Best is the box of the highest-scoring detection, nil when none.
	Best *images.Rect
	// Err records a per-image failure; the batch continues past it.
	Err error
}

// Pipeline drives post-processing for a detection model: letterbox,
// tensor conversion, inference, confidence filtering, NMS, and
// remapping back to original-image coordinates.
//
// A Pipeline holds no per-image state, so distinct images may be
// processed concurrently as long as the Detector allows it.
type Pipeline struct {
	detector Detector
	config   Config
}

// New creates a Pipeline around an inference handle.
//
// Arguments:
//   - detector: The model session or stub to run inference with.
//   - config: Validated before use; construction fails fast on bad
//     thresholds rather than clamping.
//
// Returns:
//   - The Pipeline.
//   - An error for a nil detector or invalid configuration.
func New(detector Detector, config Config) (*Pipeline, error) {
	if detector == nil {
		return nil, errors.New("detector is required")
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid pipeline config")
	}
	return &Pipeline{detector: detector, config: config}, nil
}

// ProcessImage runs the full pipeline on one decoded image.
//
// Arguments:
//   - path: Opaque identifier carried into the Result.
//   - img: The decoded original image.
//
// Returns:
//   - The per-image Result; Err is set on inference or shape failures.
func (p *Pipeline) ProcessImage(path string, img image.Image) Result {
	framed, mapping := images.Letterbox(img, p.config.InputWidth, p.config.InputHeight, nil)
	input := images.ToTensor(framed, p.config.InputWidth, p.config.InputHeight)

	raw, err := p.detector.Detect(input)
	if err != nil {
		return Result{Path: path, Err: errors.Wrapf(err, "inference failed for %s", path)}
	}

	numAttrs := 4 + p.config.NumClasses
	if len(raw) == 0 || len(raw)%numAttrs != 0 {
		return Result{Path: path, Err: errors.Errorf(
			"output length %d is not a multiple of %d attributes", len(raw), numAttrs)}
	}

	rows, err := postprocess.TransposeOutput(raw, numAttrs, len(raw)/numAttrs)
	if err != nil {
		return Result{Path: path, Err: err}
	}

	// The letterboxed frame is the network input frame, so no further
	// affine rescale is needed before truncation.
	candidates, err := postprocess.FilterDetections(rows, p.config.NumClasses,
		&postprocess.FilterConfig{ConfidenceThreshold: p.config.ConfidenceThreshold})
	if err != nil {
		return Result{Path: path, Err: err}
	}

	kept := postprocess.NMS(candidates.CornerBoxes(), candidates.Scores, p.config.IoUThreshold)
	boxes, scores, classes := postprocess.Assemble(candidates, kept)
	restored := mapping.Restore(boxes)

	result := Result{Path: path, Boxes: restored, Scores: scores, Classes: classes}
	if best := postprocess.BestIndex(scores); best != postprocess.NoDetection {
		result.Best = &restored[best]
	}
	return result
}

// ProcessFiles lazily runs the pipeline over a batch of image files,
// yielding one Result per path in order. A file that cannot be read or
// decoded yields a Result with Err set and the batch moves on to the
// next path; a failure never aborts the remaining images.
//
// Arguments:
//   - paths: Image file paths, treated as opaque identifiers.
//
// Returns:
//   - A lazy sequence of per-image Results.
func (p *Pipeline) ProcessFiles(paths []string) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		for _, path := range paths {
			file, err := util.ReadImageFile(path)
			if err != nil {
				if !yield(Result{Path: path, Err: err}) {
					return
				}
				continue
			}

			img, err := file.Decode()
			if err != nil {
				if !yield(Result{Path: path, Err: err}) {
					return
				}
				continue
			}

			if !yield(p.ProcessImage(path, img)) {
				return
			}
		}
	}
}
