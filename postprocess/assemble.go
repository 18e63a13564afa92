package postprocess

import "github.com/nvr-ai/go-detect/images"

// NoDetection is the sentinel returned by BestIndex when no detections
// remain. It is never a valid slice index.
const NoDetection = -1

// Assemble converts the kept candidates into final integer pixel
// boxes with their scores and class ids.
//
// Each kept center-form box is converted to corner form and rounded
// half away from zero to integer coordinates; rounding happens only
// here, at the end of the pipeline. Output order follows the kept
// index order, which NMS produces highest score first.
//
// Arguments:
//   - c: The filtered candidates for one image.
//   - kept: Indices selected by NMS.
//
// Returns:
//   - Corner-form integer boxes, one per kept index.
//   - Scores parallel to the boxes.
//   - Class ids parallel to the boxes.
func Assemble(c *Candidates, kept []int) ([]images.Rect, []float32, []int) {
	boxes := make([]images.Rect, 0, len(kept))
	scores := make([]float32, 0, len(kept))
	classes := make([]int, 0, len(kept))

	for _, idx := range kept {
		boxes = append(boxes, c.Boxes[idx].Corners().Round())
		scores = append(scores, c.Scores[idx])
		classes = append(classes, c.Classes[idx])
	}

	return boxes, scores, classes
}

// BestIndex returns the index of the maximum score, resolving ties by
// first occurrence.
//
// Arguments:
//   - scores: Scores of the assembled detections.
//
// Returns:
//   - The index of the best detection, or NoDetection when scores is
//     empty. Callers must check for the sentinel; an empty set never
//     silently resolves to index 0.
func BestIndex(scores []float32) int {
	if len(scores) == 0 {
		return NoDetection
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return best
}
