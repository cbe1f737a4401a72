package tracker

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"gocv.io/x/gocv"

	"go.universe.tf/eyetrack/internal/location"
)

// fakeSource serves n blank frames, optionally interleaved with empty
// ones, then returns err (io.EOF if nil).
type fakeSource struct {
	n     int
	empty bool
	err   error
	reads int
}

func (s *fakeSource) Read(dst *gocv.Mat) error {
	if s.reads >= s.n {
		if s.err != nil {
			return s.err
		}
		return io.EOF
	}
	s.reads++
	if s.empty && s.reads%2 == 0 {
		dst.Close()
		*dst = gocv.NewMat()
		return nil
	}
	frame := blankFrame()
	defer frame.Close()
	frame.CopyTo(dst)
	return nil
}

type fakeDisplay struct {
	shown     int
	eyes      int
	quitAfter int
}

func (d *fakeDisplay) Show(frame, eye gocv.Mat) {
	d.shown++
	if !eye.Empty() {
		d.eyes++
	}
}

func (d *fakeDisplay) Poll() bool {
	return d.quitAfter > 0 && d.shown >= d.quitAfter
}

func TestRunUntilEOF(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	iris := &fakeCircles{out: []location.Candidate{{10, 12, 5}}}
	tr := New(fakeRects{testFace}, testEyes[:2], iris)
	src := &fakeSource{n: 6, empty: true}
	disp := &fakeDisplay{}

	stats, err := tr.Run(context.Background(), src, disp, log)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := Stats{Frames: 3, Faces: 3, EyePairs: 3, Irises: 3}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
	if disp.shown != 3 || disp.eyes != 3 {
		t.Errorf("shown %d frames with %d eye crops, want 3 and 3", disp.shown, disp.eyes)
	}
	if n := len(hook.AllEntries()); n != 3 {
		t.Errorf("got %d log entries, want 3", n)
	}
	if e := hook.LastEntry(); e == nil || e.Message != "iris detected" || e.Data["first"] != "(140,102,5)" {
		t.Errorf("last log entry = %+v", e)
	}
}

func TestRunQuit(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	tr := New(fakeRects{}, fakeRects{}, &fakeCircles{})
	src := &fakeSource{n: 100}
	disp := &fakeDisplay{quitAfter: 4}

	stats, err := tr.Run(context.Background(), src, disp, log)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Frames != 4 || src.reads != 4 {
		t.Errorf("processed %d frames over %d reads, want 4 and 4", stats.Frames, src.reads)
	}
	if stats.Faces != 0 {
		t.Errorf("found %d faces, want 0", stats.Faces)
	}
}

func TestRunReadError(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	boom := errors.New("unplugged")
	tr := New(fakeRects{}, fakeRects{}, &fakeCircles{})
	src := &fakeSource{n: 2, err: boom}

	stats, err := tr.Run(context.Background(), src, &fakeDisplay{}, log)
	if !errors.Is(err, boom) {
		t.Fatalf("Run = %v, want %v", err, boom)
	}
	if stats.Frames != 2 {
		t.Errorf("processed %d frames, want 2", stats.Frames)
	}
}

func TestRunCancelled(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := New(fakeRects{}, fakeRects{}, &fakeCircles{})
	src := &fakeSource{n: 100}
	stats, err := tr.Run(ctx, src, &fakeDisplay{}, log)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if src.reads != 0 || stats.Frames != 0 {
		t.Errorf("read %d frames after cancellation", src.reads)
	}
}

func TestStatsFields(t *testing.T) {
	f := Stats{Frames: 5, Faces: 4, EyePairs: 2, Irises: 1}.Fields()
	if f["frames"] != 5 || f["faces"] != 4 || f["eye_pairs"] != 2 || f["irises"] != 1 {
		t.Errorf("Fields() = %v", f)
	}
}
