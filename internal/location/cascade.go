package location

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// ErrModelLoad is returned when a cascade model file can't be read.
var ErrModelLoad = errors.New("cannot load cascade model")

// cascadeScaleImage is cv::CASCADE_SCALE_IMAGE, which gocv doesn't
// export. Only old-style cascades look at it.
const cascadeScaleImage = 2

// Params tunes a multi-scale cascade search.
type Params struct {
	// Scale is how much the search window grows at each pyramid
	// level.
	Scale float64
	// MinNeighbors is how many overlapping raw hits it takes to
	// confirm a detection. Higher means fewer false positives and
	// more misses.
	MinNeighbors int
	// MinSize and MaxSize bound the size of detections. A zero
	// MaxSize means no upper bound.
	MinSize image.Point
	MaxSize image.Point
}

var (
	// FaceParams suits a frontal face filling a good part of a
	// 640x480 webcam frame.
	FaceParams = Params{
		Scale:        1.1,
		MinNeighbors: 2,
		MinSize:      image.Point{150, 150},
	}
	// EyeParams suits eyes searched for inside a face found with
	// FaceParams.
	EyeParams = Params{
		Scale:        1.1,
		MinNeighbors: 2,
		MinSize:      image.Point{30, 30},
	}
)

// RectDetector finds objects in a grayscale image.
type RectDetector interface {
	// Detect returns one rectangle per object found, in im's
	// coordinates.
	Detect(im gocv.Mat) []image.Rectangle
}

// Cascade is a RectDetector backed by a pretrained Haar cascade.
type Cascade struct {
	classifier gocv.CascadeClassifier
	params     Params
}

// LoadCascade reads the cascade model at path.
func LoadCascade(path string, params Params) (*Cascade, error) {
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(path) {
		classifier.Close()
		return nil, fmt.Errorf("%w: %s", ErrModelLoad, path)
	}
	return &Cascade{
		classifier: classifier,
		params:     params,
	}, nil
}

// Detect runs the cascade over im. Results come back in the
// classifier's scan order, which is not a confidence ranking.
func (c *Cascade) Detect(im gocv.Mat) []image.Rectangle {
	if im.Empty() {
		return nil
	}
	rects := c.classifier.DetectMultiScaleWithParams(
		im,
		c.params.Scale,
		c.params.MinNeighbors,
		cascadeScaleImage,
		c.params.MinSize,
		c.params.MaxSize,
	)
	return clip(rects, bounds(im))
}

// Close releases the model.
func (c *Cascade) Close() error {
	return c.classifier.Close()
}
