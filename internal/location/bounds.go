package location

import (
	"image"

	"gocv.io/x/gocv"
)

// bounds returns the rectangle covering every pixel of im.
func bounds(im gocv.Mat) image.Rectangle {
	return image.Rect(0, 0, im.Cols(), im.Rows())
}

// clip trims rects to b, dropping any that fall entirely outside it.
func clip(rects []image.Rectangle, b image.Rectangle) []image.Rectangle {
	ret := rects[:0]
	for _, r := range rects {
		r = r.Intersect(b)
		if r.Empty() {
			continue
		}
		ret = append(ret, r)
	}
	return ret
}
