package location

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// ErrEmptyFrame is returned when asked to process a frame with no
// pixels in it.
var ErrEmptyFrame = errors.New("empty frame")

// Enhance prepares a camera frame for the detectors: it converts it
// to grayscale and equalizes its histogram, so that the cascades see
// roughly the same contrast regardless of lighting. The result has a
// single channel and the same size as frame; the caller owns it.
//
// On error nothing is allocated and the returned Mat must not be
// used.
func Enhance(frame gocv.Mat) (gocv.Mat, error) {
	if frame.Empty() {
		return gocv.Mat{}, ErrEmptyFrame
	}

	gray := gocv.NewMat()
	defer gray.Close()
	switch frame.Channels() {
	case 1:
		frame.CopyTo(&gray)
	case 3:
		gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)
	case 4:
		gocv.CvtColor(frame, &gray, gocv.ColorBGRAToGray)
	default:
		return gocv.Mat{}, fmt.Errorf("cannot convert %d-channel frame to grayscale", frame.Channels())
	}

	// Stretch the intensity distribution over the whole 0-255
	// range. Webcams in dim rooms produce very flat histograms, and
	// the Haar features are pure intensity differences.
	ret := gocv.NewMat()
	gocv.EqualizeHist(gray, &ret)
	return ret, nil
}
