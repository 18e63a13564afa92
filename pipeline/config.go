// Package pipeline - per-image detection driver and configuration.
package pipeline

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the pipeline's tuning values. The confidence threshold
// and the IoU threshold are deliberately separate settings: the first
// gates candidates by score, the second controls suppression overlap.
// Tuning one must never silently change the other.
type Config struct {
	// ConfidenceThreshold gates raw candidates by best class score,
	// strictly greater-than. Default 0.5.
	ConfidenceThreshold float32 `json:"confidence_threshold" yaml:"confidence_threshold"`
	// IoUThreshold is the overlap at or above which NMS suppresses a
	// lower-scoring box. Default 0.6.
	IoUThreshold float32 `json:"iou_threshold" yaml:"iou_threshold"`
	// InputWidth is the network input width in pixels. Default 640.
	InputWidth int `json:"input_width" yaml:"input_width"`
	// InputHeight is the network input height in pixels. Default 640.
	InputHeight int `json:"input_height" yaml:"input_height"`
	// NumClasses is the number of class-probability rows in the model
	// output. Default 80.
	NumClasses int `json:"num_classes" yaml:"num_classes"`
}

// DefaultConfig returns the standard configuration for COCO-class
// detectors with a 640x640 input.
func DefaultConfig() Config {
	return Config{
		ConfidenceThreshold: 0.5,
		IoUThreshold:        0.6,
		InputWidth:          640,
		InputHeight:         640,
		NumClasses:          80,
	}
}

// Validate checks the configuration for caller errors and fails fast
// rather than clamping.
//
// Returns:
//   - An error naming the first invalid field, nil when valid.
func (c *Config) Validate() error {
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return errors.Errorf(
			"confidence threshold %f outside [0, 1]", c.ConfidenceThreshold)
	}
	if c.IoUThreshold < 0 || c.IoUThreshold > 1 {
		return errors.Errorf("iou threshold %f outside [0, 1]", c.IoUThreshold)
	}
	if c.InputWidth <= 0 || c.InputHeight <= 0 {
		return errors.Errorf(
			"input size %dx%d must be positive", c.InputWidth, c.InputHeight)
	}
	if c.NumClasses <= 0 {
		return errors.Errorf("num classes %d must be positive", c.NumClasses)
	}
	return nil
}

// LoadConfig reads a Config from a YAML file, applying defaults for
// omitted fields before validating.
//
// Arguments:
//   - path: Path to the YAML configuration file.
//
// Returns:
//   - The validated configuration.
//   - An error if the file is unreadable, unparsable, or invalid.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrapf(err, "parsing config %s", path)
	}
	if err := config.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %s", path)
	}

	return config, nil
}
