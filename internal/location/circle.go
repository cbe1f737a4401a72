package location

import (
	"fmt"
	"image"
)

// Circle is a circle in integer pixel coordinates.
type Circle struct {
	image.Point
	R int
}

func (p Circle) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.R)
}

// Add returns p moved by off.
func (p Circle) Add(off image.Point) Circle {
	return Circle{Point: p.Point.Add(off), R: p.R}
}

// Candidate is a raw circle transform result, in the coordinate
// space of the image the transform ran over.
type Candidate struct {
	X, Y, R float32
}

// Circle truncates c to whole pixels and moves it by origin, which is
// the offset of the searched sub-region inside the final image.
func (c Candidate) Circle(origin image.Point) Circle {
	return Circle{
		Point: image.Point{X: int(c.X), Y: int(c.Y)},
		R:     int(c.R),
	}.Add(origin)
}
