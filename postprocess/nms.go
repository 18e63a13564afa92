package postprocess

import (
	"sort"

	"github.com/nvr-ai/go-detect/images"
)

// NMS performs greedy Non-Maximum Suppression over corner-form boxes
// and their scores, returning the indices of the kept boxes.
//
// Candidates are visited in descending score order, ties broken by
// original index ascending, so equal-score inputs always suppress
// deterministically. Each visit keeps the highest-ranked remaining
// candidate and discards every remaining box whose IoU against it is
// greater than or equal to iouThreshold; a box exactly at the
// threshold is discarded. There is no cap on the kept set.
//
// O(n^2) in the number of candidates, which is small after confidence
// filtering.
//
// Arguments:
//   - boxes: Candidate boxes in corner form.
//   - scores: Confidence score per box, index-aligned with boxes.
//   - iouThreshold: Overlap at or above which a box is suppressed.
//
// Returns:
//   - Kept indices into boxes, in descending-score selection order.
//     Nil when there are no candidates.
func NMS(boxes []images.Box, scores []float32, iouThreshold float32) []int {
	n := len(boxes)
	if n == 0 {
		return nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	suppressed := make([]bool, n)
	kept := make([]int, 0, n)

	for pos, idx := range order {
		if suppressed[idx] {
			continue
		}
		kept = append(kept, idx)

		// Score the anchor against every remaining candidate in one pass.
		remaining := make([]int, 0, n-pos-1)
		remainingBoxes := make([]images.Box, 0, n-pos-1)
		for _, j := range order[pos+1:] {
			if suppressed[j] {
				continue
			}
			remaining = append(remaining, j)
			remainingBoxes = append(remainingBoxes, boxes[j])
		}

		for k, overlap := range images.IoUAll(boxes[idx], remainingBoxes) {
			if overlap >= iouThreshold {
				suppressed[remaining[k]] = true
			}
		}
	}

	return kept
}
