package location

import (
	"gocv.io/x/gocv"
)

// HoughParams tunes the gradient Hough circle transform. Distances
// and radii are given as divisors of the searched image's size, so
// that the same parameters work whatever size the eye crop is.
type HoughParams struct {
	// DP is the inverse ratio of accumulator resolution to image
	// resolution.
	DP float64
	// MinDistDiv: accepted centers are at least cols/MinDistDiv
	// apart.
	MinDistDiv float64
	// EdgeThreshold is the upper Canny threshold used to find edges.
	EdgeThreshold float64
	// VoteThreshold is the accumulator count a center needs to be
	// reported.
	VoteThreshold float64
	// Radii are searched between rows/MinRadiusDiv and
	// rows/MaxRadiusDiv.
	MinRadiusDiv int
	MaxRadiusDiv int
}

// IrisParams suits an eye crop produced by a cascade with EyeParams.
var IrisParams = HoughParams{
	DP:            1,
	MinDistDiv:    8,
	EdgeThreshold: 250,
	VoteThreshold: 5,
	MinRadiusDiv:  16,
	MaxRadiusDiv:  4,
}

// CircleDetector finds circles in a grayscale image.
type CircleDetector interface {
	// Detect returns every circle found, in im's coordinates.
	Detect(im gocv.Mat) []Candidate
}

// Hough is a CircleDetector using OpenCV's gradient Hough transform.
type Hough struct {
	params HoughParams
}

// NewHough returns a Hough detector using params.
func NewHough(params HoughParams) *Hough {
	return &Hough{params: params}
}

// Detect finds iris candidates in im, which should be a single
// channel crop around one eye.
//
// The transform is noisy on webcam eye crops: it typically reports
// the iris, the pupil inside it, and a few circles around eyelids
// and glasses. All of them are returned, unranked.
func (h *Hough) Detect(im gocv.Mat) []Candidate {
	if im.Empty() {
		return nil
	}

	circles := gocv.NewMat()
	defer circles.Close()
	gocv.HoughCirclesWithParams(
		im,
		&circles,
		gocv.HoughGradient,
		h.params.DP,
		float64(im.Cols())/h.params.MinDistDiv,
		h.params.EdgeThreshold,
		h.params.VoteThreshold,
		im.Rows()/h.params.MinRadiusDiv,
		im.Rows()/h.params.MaxRadiusDiv,
	)
	if circles.Empty() {
		return nil
	}

	// circles is a 1xN matrix of (x, y, r) float triples.
	ret := make([]Candidate, 0, circles.Cols())
	for i := 0; i < circles.Cols(); i++ {
		v := circles.GetVecfAt(0, i)
		ret = append(ret, Candidate{X: v[0], Y: v[1], R: v[2]})
	}
	return ret
}
