package tracker

import (
	"image"

	"gocv.io/x/gocv"

	"go.universe.tf/eyetrack/internal/location"
)

// Stage is how far down the pipeline a frame got.
type Stage int

const (
	// StageNone: no face in the frame.
	StageNone Stage = iota
	// StageFace: a face, but not exactly two eyes in it.
	StageFace
	// StageEyes: a face and a pair of eyes, but no iris candidates.
	StageEyes
	// StageIris: iris candidates found.
	StageIris
)

func (s Stage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageFace:
		return "face"
	case StageEyes:
		return "eyes"
	case StageIris:
		return "iris"
	default:
		return "unknown"
	}
}

// Result is what the pipeline found in one frame. All coordinates
// are in full-frame space.
type Result struct {
	Stage Stage
	// Faces is everything the face detector returned. Only the first
	// one is searched for eyes.
	Faces []image.Rectangle
	// Eyes is set only when exactly two eyes were found in the first
	// face.
	Eyes []image.Rectangle
	// Irises holds every circle candidate found in the analysed
	// eyes.
	Irises []location.Circle
	// Eye is the enhanced crop of the first eye, for display. It is
	// empty unless Eyes is set.
	Eye gocv.Mat
}

// Close releases the eye crop.
func (r *Result) Close() error {
	return r.Eye.Close()
}

// Tracker finds faces, eyes and irises in frames.
type Tracker struct {
	faces    location.RectDetector
	eyes     location.RectDetector
	iris     location.CircleDetector
	bothEyes bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithBothEyes makes the tracker search both eyes for an iris. By
// default only the first eye the eye detector reports is searched.
func WithBothEyes(both bool) Option {
	return func(t *Tracker) {
		t.bothEyes = both
	}
}

// New returns a Tracker using the given detectors.
func New(faces, eyes location.RectDetector, iris location.CircleDetector, opts ...Option) *Tracker {
	t := &Tracker{
		faces: faces,
		eyes:  eyes,
		iris:  iris,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Process runs the pipeline over frame, which is left untouched.
// The caller must Close the returned Result.
func (t *Tracker) Process(frame gocv.Mat) (*Result, error) {
	gray, err := location.Enhance(frame)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	res := &Result{Stage: StageNone, Eye: gocv.NewMat()}

	res.Faces = t.faces.Detect(gray)
	face, ok := first(res.Faces)
	if !ok {
		return res, nil
	}
	res.Stage = StageFace

	faceRegion := gray.Region(face)
	defer faceRegion.Close()

	eyes, ok := t.eyePair(faceRegion)
	if !ok {
		return res, nil
	}
	res.Stage = StageEyes
	for _, eye := range eyes {
		res.Eyes = append(res.Eyes, eye.Add(face.Min))
	}

	firstEye := faceRegion.Region(eyes[0])
	firstEye.CopyTo(&res.Eye)
	firstEye.Close()

	analysed := eyes[:1]
	if t.bothEyes {
		analysed = eyes
	}
	for _, eye := range analysed {
		circles, ok := t.irisesIn(faceRegion, eye, face.Min)
		if !ok {
			continue
		}
		res.Irises = append(res.Irises, circles...)
	}
	if len(res.Irises) > 0 {
		res.Stage = StageIris
	}
	return res, nil
}

// eyePair searches face for eyes, and reports them only if there
// are exactly two. Any other count is too ambiguous to act on.
// Returned rectangles are relative to face.
func (t *Tracker) eyePair(face gocv.Mat) ([]image.Rectangle, bool) {
	eyes := t.eyes.Detect(face)
	if len(eyes) != 2 {
		return nil, false
	}
	return eyes, true
}

// irisesIn searches the eye rectangle of face for irises. faceOrigin
// is face's offset in the full frame.
func (t *Tracker) irisesIn(face gocv.Mat, eye image.Rectangle, faceOrigin image.Point) ([]location.Circle, bool) {
	region := face.Region(eye)
	defer region.Close()

	candidates := t.iris.Detect(region)
	if len(candidates) == 0 {
		return nil, false
	}
	origin := faceOrigin.Add(eye.Min)
	ret := make([]location.Circle, 0, len(candidates))
	for _, c := range candidates {
		ret = append(ret, c.Circle(origin))
	}
	return ret, true
}

func first(rects []image.Rectangle) (image.Rectangle, bool) {
	if len(rects) == 0 {
		return image.Rectangle{}, false
	}
	return rects[0], true
}
