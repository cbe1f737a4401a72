package tracker

import (
	"image/color"

	"gocv.io/x/gocv"
)

var (
	eyeColor  = color.RGBA{0, 255, 0, 0}
	irisColor = color.RGBA{255, 0, 0, 0}
)

// Render draws res onto frame: an outline around each eye, and a
// circle for each iris candidate.
func Render(frame *gocv.Mat, res *Result) {
	for _, eye := range res.Eyes {
		gocv.Rectangle(frame, eye, eyeColor, 1)
	}
	for _, c := range res.Irises {
		gocv.Circle(frame, c.Point, c.R, irisColor, 1)
	}
}
