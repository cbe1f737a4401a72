// Package display shows tracker output to the user.
package display

import (
	"gocv.io/x/gocv"
)

// Window names.
const (
	CameraWindow = "camera"
	EyeWindow    = "eye"
)

// pollDelay is how long, in milliseconds, Poll waits for a key. It is
// also what paces the tracking loop.
const pollDelay = 10

// Windows shows frames in OpenCV highgui windows: the annotated
// camera frame in one, and the crop of the first eye in another.
type Windows struct {
	camera *gocv.Window
	// eye is opened the first time there is an eye to show.
	eye *gocv.Window
}

// NewWindows opens the camera window.
func NewWindows() *Windows {
	return &Windows{camera: gocv.NewWindow(CameraWindow)}
}

// Show displays frame, and eye if it isn't empty. Until the next eye
// is found, the eye window keeps showing the last one.
func (w *Windows) Show(frame, eye gocv.Mat) {
	w.camera.IMShow(frame)
	if eye.Empty() {
		return
	}
	if w.eye == nil {
		w.eye = gocv.NewWindow(EyeWindow)
	}
	w.eye.IMShow(eye)
}

// Poll waits briefly for a key press, and reports whether there was
// one.
func (w *Windows) Poll() bool {
	return w.camera.WaitKey(pollDelay) > 0
}

// Close closes all windows.
func (w *Windows) Close() error {
	if w.eye != nil {
		w.eye.Close()
	}
	return w.camera.Close()
}

// Headless discards frames. It never asks to quit, so a headless run
// ends when its source does or on a signal.
type Headless struct{}

func (Headless) Show(frame, eye gocv.Mat) {}
func (Headless) Poll() bool               { return false }
func (Headless) Close() error             { return nil }
