// Package util - image file loading helpers.
package util

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
)

// ImageFile represents an image file on disk.
type ImageFile struct {
	// Path is the path to the image file, passed through to pipeline
	// results as an opaque identifier.
	Path string
	// Data is the raw bytes of the image file.
	Data []byte
}

// supportedExtensions are the image file extensions the loader picks
// up when scanning a directory.
var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ListImageFiles enumerates the image files in a directory, sorted by
// name so batch runs are deterministic.
//
// Arguments:
//   - dir: Directory path to scan.
//
// Returns:
//   - Paths of the image files found, possibly empty.
//   - An error if the directory cannot be read.
func ListImageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading image directory %s", dir)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if supportedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// ReadImageFile reads an image file from disk without decoding it.
//
// Arguments:
//   - path: The image file path.
//
// Returns:
//   - The ImageFile with its raw bytes.
//   - An error if the file cannot be read.
func ReadImageFile(path string) (*ImageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading image file %s", path)
	}
	return &ImageFile{Path: path, Data: data}, nil
}

// Decode decodes the file's bytes into an image. JPEG and PNG decode
// through the standard registry; WebP through the webp codec.
//
// Returns:
//   - The decoded image.
//   - An error if the bytes are not a decodable image.
func (f *ImageFile) Decode() (image.Image, error) {
	if strings.EqualFold(filepath.Ext(f.Path), ".webp") {
		img, err := webp.Decode(bytes.NewReader(f.Data))
		if err != nil {
			return nil, errors.Wrapf(err, "decoding webp %s", f.Path)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return nil, errors.Wrapf(err, "decoding image %s", f.Path)
	}
	return img, nil
}
