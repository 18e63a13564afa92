// Package images - Box geometry and letterbox coordinate transforms.
package images

import "github.com/chewxy/math32"

// Box is a bounding box in corner form. X1,Y1 is the top-left corner,
// X2,Y2 the bottom-right corner, with X1 <= X2 and Y1 <= Y2.
type Box struct {
	X1, Y1, X2, Y2 float32
}

// CenterBox is a bounding box in center form: center point plus
// width and height. Detector heads emit boxes in this encoding.
type CenterBox struct {
	CX, CY, W, H float32
}

// Corners converts a center-form box to corner form.
//
// The conversion is exact: x1 = cx - w/2, y1 = cy - h/2,
// x2 = cx + w/2, y2 = cy + h/2. No rounding is applied.
//
// Arguments:
//   - None (receiver only).
//
// Returns:
//   - The equivalent corner-form box.
func (c CenterBox) Corners() Box {
	return Box{
		X1: c.CX - c.W/2,
		Y1: c.CY - c.H/2,
		X2: c.CX + c.W/2,
		Y2: c.CY + c.H/2,
	}
}

// Center converts a corner-form box back to center form.
//
// Corners followed by Center recovers the original center-form box
// within floating-point tolerance.
//
// Returns:
//   - The equivalent center-form box.
func (b Box) Center() CenterBox {
	return CenterBox{
		CX: (b.X1 + b.X2) / 2,
		CY: (b.Y1 + b.Y2) / 2,
		W:  b.X2 - b.X1,
		H:  b.Y2 - b.Y1,
	}
}

// Area returns the area of the box. Zero or negative extents yield 0.
func (b Box) Area() float32 {
	w := b.X2 - b.X1
	h := b.Y2 - b.Y1
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Round converts the box to integer pixel coordinates, rounding each
// coordinate half away from zero.
//
// Returns:
//   - The box as an integer Rect.
func (b Box) Round() Rect {
	return Rect{
		X1: int(math32.Round(b.X1)),
		Y1: int(math32.Round(b.Y1)),
		X2: int(math32.Round(b.X2)),
		Y2: int(math32.Round(b.Y2)),
	}
}

// IoU computes the Intersection-over-Union of two corner-form boxes.
//
// The intersection is max(0, min(x2)-max(x1)) * max(0, min(y2)-max(y1));
// the union follows from inclusion-exclusion. Pairs with zero union
// area (degenerate boxes) score 0 rather than dividing by zero.
//
// Arguments:
//   - a: The first box.
//   - b: The second box.
//
// Returns:
//   - The overlap ratio in [0, 1]. Symmetric in its arguments.
func IoU(a, b Box) float32 {
	interW := math32.Min(a.X2, b.X2) - math32.Max(a.X1, b.X1)
	interH := math32.Min(a.Y2, b.Y2) - math32.Max(a.Y1, b.Y1)
	if interW <= 0 || interH <= 0 {
		return 0
	}
	inter := interW * interH
	union := a.Area() + b.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// IoUAll computes the IoU of one box against a slice of boxes.
//
// The result is elementwise identical to calling IoU pairwise; the
// one-vs-many form exists so suppression loops can score a candidate
// against every remaining box in a single pass.
//
// Arguments:
//   - a: The anchor box.
//   - others: Boxes to score against the anchor.
//
// Returns:
//   - One overlap ratio per entry of others, in the same order.
func IoUAll(a Box, others []Box) []float32 {
	scores := make([]float32, len(others))
	for i, o := range others {
		scores[i] = IoU(a, o)
	}
	return scores
}

// Rect is a bounding box in integer pixel coordinates, corner form.
type Rect struct {
	X1, Y1, X2, Y2 int
}
