package images

import "image"

// ToTensor converts an image into a float32 tensor in channel-first
// (CHW) layout with pixel values normalized to [0, 1], the input
// contract of the detection models this module post-processes.
//
// Arguments:
//   - img: The source image, expected to already be width x height
//     (letterboxed to the network input size).
//   - width, height: Network input dimensions in pixels.
//
// Returns:
//   - A float32 slice of length 3*height*width, RGB planes in order.
func ToTensor(img image.Image, width, height int) []float32 {
	plane := width * height
	data := make([]float32, 3*plane)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			i := y*width + x
			data[i] = float32(r>>8) / 255.0
			data[plane+i] = float32(g>>8) / 255.0
			data[2*plane+i] = float32(b>>8) / 255.0
		}
	}

	return data
}
