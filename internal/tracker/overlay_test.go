package tracker

import (
	"image"
	"testing"

	"gocv.io/x/gocv"

	"go.universe.tf/eyetrack/internal/location"
)

func TestRender(t *testing.T) {
	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 240, 320, gocv.MatTypeCV8UC3)
	defer frame.Close()

	res := &Result{
		Eyes:   []image.Rectangle{image.Rect(20, 30, 80, 90)},
		Irises: []location.Circle{{Point: image.Point{200, 120}, R: 10}},
	}
	Render(&frame, res)

	// Frames are BGR.
	tests := []struct {
		desc string
		at   image.Point
		want [3]uint8
	}{
		{"eye corner", image.Point{20, 30}, [3]uint8{0, 255, 0}},
		{"inside eye", image.Point{50, 60}, [3]uint8{0, 0, 0}},
		{"iris rim", image.Point{210, 120}, [3]uint8{0, 0, 255}},
		{"iris center", image.Point{200, 120}, [3]uint8{0, 0, 0}},
	}
	for _, test := range tests {
		v := frame.GetVecbAt(test.at.Y, test.at.X)
		if got := [3]uint8{v[0], v[1], v[2]}; got != test.want {
			t.Errorf("%s %v = %v, want %v", test.desc, test.at, got, test.want)
		}
	}
}
