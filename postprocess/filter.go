// Package postprocess - turns raw detector output into final boxes:
// confidence filtering, greedy Non-Maximum Suppression, and assembly
// into integer pixel coordinates.
package postprocess

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-detect/images"
)

// FilterConfig defines parameters for confidence filtering.
type FilterConfig struct {
	// ConfidenceThreshold is the strict lower bound a candidate's best
	// class score must exceed to survive filtering.
	ConfidenceThreshold float32 `json:"confidence_threshold" yaml:"confidence_threshold"`
	// ScaleX rescales box x/width coordinates from network-input
	// resolution to letterboxed-image resolution. Zero means 1.
	ScaleX float32 `json:"scale_x" yaml:"scale_x"`
	// ScaleY rescales box y/height coordinates. Zero means 1.
	ScaleY float32 `json:"scale_y" yaml:"scale_y"`
}

// Validate checks the configuration for caller errors.
//
// Returns:
//   - An error when the confidence threshold lies outside [0, 1].
func (c *FilterConfig) Validate() error {
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return errors.Errorf(
			"confidence threshold %f outside [0, 1]", c.ConfidenceThreshold)
	}
	return nil
}

// Candidates holds the parallel outputs of confidence filtering for
// one image: center-form boxes, scores, and class ids, index-aligned.
// A Candidates value is immutable once produced.
type Candidates struct {
	Boxes   []images.CenterBox
	Scores  []float32
	Classes []int
}

// Len returns the number of surviving candidates.
func (c *Candidates) Len() int {
	return len(c.Scores)
}

// CornerBoxes converts every candidate box to corner form, the
// encoding Non-Maximum Suppression operates on.
func (c *Candidates) CornerBoxes() []images.Box {
	boxes := make([]images.Box, len(c.Boxes))
	for i, b := range c.Boxes {
		boxes[i] = b.Corners()
	}
	return boxes
}

// FilterDetections reduces a raw detector output tensor to the
// candidates worth suppressing.
//
// The tensor is candidate-major: each row holds cx, cy, w, h followed
// by numClasses class probabilities. A candidate's score is the
// maximum class probability and its class id the argmax; only rows
// strictly above the confidence threshold are kept. Kept boxes are
// rescaled by the independent x/y affine scale and then truncated to
// whole pixel values, in that order.
//
// An empty result is a valid outcome, not an error.
//
// Arguments:
//   - output: Raw tensor data, length a multiple of 4+numClasses.
//   - numClasses: Number of class-probability columns per row.
//   - config: Filter configuration; validated before use.
//
// Returns:
//   - The surviving candidates as parallel slices.
//   - An error for invalid configuration or a malformed tensor.
func FilterDetections(output []float32, numClasses int, config *FilterConfig) (*Candidates, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid filter config")
	}
	if numClasses < 1 {
		return nil, errors.Errorf("numClasses must be positive, got %d", numClasses)
	}

	rowSize := 4 + numClasses
	if len(output)%rowSize != 0 {
		return nil, errors.Errorf(
			"output length %d is not a multiple of row size %d", len(output), rowSize)
	}

	scaleX := config.ScaleX
	if scaleX == 0 {
		scaleX = 1
	}
	scaleY := config.ScaleY
	if scaleY == 0 {
		scaleY = 1
	}

	numRows := len(output) / rowSize
	c := &Candidates{}

	for i := 0; i < numRows; i++ {
		row := output[i*rowSize : (i+1)*rowSize]

		classID := 0
		score := row[4]
		for j := 5; j < rowSize; j++ {
			if row[j] > score {
				score = row[j]
				classID = j - 4
			}
		}

		if score <= config.ConfidenceThreshold {
			continue
		}

		// Rescale first; truncation to whole pixels is the last step.
		c.Boxes = append(c.Boxes, images.CenterBox{
			CX: math32.Trunc(row[0] * scaleX),
			CY: math32.Trunc(row[1] * scaleY),
			W:  math32.Trunc(row[2] * scaleX),
			H:  math32.Trunc(row[3] * scaleY),
		})
		c.Scores = append(c.Scores, score)
		c.Classes = append(c.Classes, classID)
	}

	return c, nil
}
