package util

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestPNG writes a small solid PNG to path.
func writeTestPNG(t *testing.T, path string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

// TestListImageFiles verifies directory scanning picks up supported
// extensions only, sorted by name.
func TestListImageFiles(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "b.png"))
	writeTestPNG(t, filepath.Join(dir, "a.png"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	paths, err := ListImageFiles(dir)
	require.NoError(t, err)

	require.Len(t, paths, 2, "only image extensions are listed")
	assert.Equal(t, filepath.Join(dir, "a.png"), paths[0], "listing is name-sorted")
	assert.Equal(t, filepath.Join(dir, "b.png"), paths[1])
}

// TestListImageFilesMissingDir verifies an unreadable directory is an error.
func TestListImageFilesMissingDir(t *testing.T) {
	_, err := ListImageFiles(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

// TestReadAndDecode verifies the read-then-decode path on a real PNG.
func TestReadAndDecode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.png")
	writeTestPNG(t, path)

	f, err := ReadImageFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path, "path is preserved as the identifier")

	img, err := f.Decode()
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
}

// TestDecodeCorruptData verifies undecodable bytes surface an error.
func TestDecodeCorruptData(t *testing.T) {
	f := &ImageFile{Path: "bad.png", Data: []byte("not an image")}
	_, err := f.Decode()
	assert.Error(t, err, "corrupt image data must fail decode")
}

// TestReadImageFileMissing verifies a missing file surfaces an IO error.
func TestReadImageFileMissing(t *testing.T) {
	_, err := ReadImageFile(filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Error(t, err)
}
