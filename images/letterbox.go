package images

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/chewxy/math32"
	"github.com/nfnt/resize"
)

// DefaultFill is the padding color used for letterboxed borders.
var DefaultFill color.Color = color.RGBA{114, 114, 114, 255}

// Mapping describes the coordinate transform between an original image
// and its letterboxed rendition: the uniform scale applied to the image
// content and the padding offsets that center it inside the target
// frame. A Mapping is derived purely from the two sizes, so boxes can
// be remapped for a whole batch without retaining the images.
type Mapping struct {
	OrigWidth    int
	OrigHeight   int
	TargetWidth  int
	TargetHeight int
	Scale        float32
	PadLeft      int
	PadTop       int
}

// NewMapping computes the letterbox transform context for an image of
// the given original size fitted into the given target size.
//
// The scale is the smaller of the per-axis ratios so the content fits
// entirely inside the target; the remaining space on the limiting
// axis's counterpart becomes symmetric padding. A wide image pads top
// and bottom, a tall image pads left and right.
//
// Arguments:
//   - origWidth, origHeight: Original image dimensions in pixels.
//   - targetWidth, targetHeight: Letterboxed frame dimensions in pixels.
//
// Returns:
//   - The Mapping for the size pair.
func NewMapping(origWidth, origHeight, targetWidth, targetHeight int) Mapping {
	scale := math32.Min(
		float32(targetWidth)/float32(origWidth),
		float32(targetHeight)/float32(origHeight),
	)
	scaledW := int(float32(origWidth) * scale)
	scaledH := int(float32(origHeight) * scale)

	return Mapping{
		OrigWidth:    origWidth,
		OrigHeight:   origHeight,
		TargetWidth:  targetWidth,
		TargetHeight: targetHeight,
		Scale:        scale,
		PadLeft:      (targetWidth - scaledW) / 2,
		PadTop:       (targetHeight - scaledH) / 2,
	}
}

// Restore maps boxes from letterboxed-frame pixel coordinates back to
// original-image pixel coordinates.
//
// This is the mathematical inverse of the forward letterbox: the pad
// offset is subtracted first, then the uniform scale is undone. The
// result is clamped to the original frame so padding artifacts never
// produce out-of-bounds boxes.
//
// Arguments:
//   - boxes: Boxes in letterboxed pixel space.
//
// Returns:
//   - Boxes in original-image pixel space, same order.
func (m Mapping) Restore(boxes []Rect) []Rect {
	restored := make([]Rect, len(boxes))
	for i, b := range boxes {
		restored[i] = Rect{
			X1: clamp(int(math32.Round(float32(b.X1-m.PadLeft)/m.Scale)), 0, m.OrigWidth),
			Y1: clamp(int(math32.Round(float32(b.Y1-m.PadTop)/m.Scale)), 0, m.OrigHeight),
			X2: clamp(int(math32.Round(float32(b.X2-m.PadLeft)/m.Scale)), 0, m.OrigWidth),
			Y2: clamp(int(math32.Round(float32(b.Y2-m.PadTop)/m.Scale)), 0, m.OrigHeight),
		}
	}
	return restored
}

// Letterbox resizes an image to fit the target frame while preserving
// its aspect ratio, padding the leftover border with the fill color.
//
// Arguments:
//   - img: The source image.
//   - targetWidth, targetHeight: Output frame dimensions in pixels.
//   - fill: Border color; nil selects DefaultFill.
//
// Returns:
//   - The letterboxed image, exactly targetWidth x targetHeight.
//   - The Mapping whose Restore inverts this transform.
func Letterbox(img image.Image, targetWidth, targetHeight int, fill color.Color) (image.Image, Mapping) {
	if fill == nil {
		fill = DefaultFill
	}

	bounds := img.Bounds()
	m := NewMapping(bounds.Dx(), bounds.Dy(), targetWidth, targetHeight)

	scaledW := int(float32(m.OrigWidth) * m.Scale)
	scaledH := int(float32(m.OrigHeight) * m.Scale)
	resized := resize.Resize(uint(scaledW), uint(scaledH), img, resize.Lanczos3)

	framed := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.Draw(framed, framed.Bounds(), &image.Uniform{fill}, image.Point{}, draw.Src)
	draw.Draw(framed,
		image.Rect(m.PadLeft, m.PadTop, m.PadLeft+scaledW, m.PadTop+scaledH),
		resized, image.Point{}, draw.Over)

	return framed, m
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
