package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// Source produces frames.
type Source interface {
	// Read blocks until the next frame is available and stores it in
	// dst. It returns io.EOF when the source is exhausted.
	Read(dst *gocv.Mat) error
}

// Display presents annotated frames to the user.
type Display interface {
	// Show presents frame, and eye if it isn't empty.
	Show(frame, eye gocv.Mat)
	// Poll gives the display a chance to process events, and reports
	// whether the user asked to quit.
	Poll() bool
}

// Stats counts what the loop saw over a run.
type Stats struct {
	Frames   int
	Faces    int
	EyePairs int
	Irises   int
}

func (s *Stats) record(res *Result) {
	s.Frames++
	if res.Stage >= StageFace {
		s.Faces++
	}
	if res.Stage >= StageEyes {
		s.EyePairs++
	}
	if res.Stage >= StageIris {
		s.Irises++
	}
}

// Fields returns s as log fields.
func (s Stats) Fields() logrus.Fields {
	return logrus.Fields{
		"frames":    s.Frames,
		"faces":     s.Faces,
		"eye_pairs": s.EyePairs,
		"irises":    s.Irises,
	}
}

// Run reads frames from src, tracks and annotates them, and shows
// them on disp, until the user quits, src runs out, or ctx is done.
// Only a failure to read or process a frame is an error.
func (t *Tracker) Run(ctx context.Context, src Source, disp Display, log logrus.FieldLogger) (Stats, error) {
	var stats Stats

	frame := gocv.NewMat()
	defer frame.Close()

	for {
		if err := ctx.Err(); err != nil {
			return stats, nil
		}

		if err := src.Read(&frame); err != nil {
			if errors.Is(err, io.EOF) {
				return stats, nil
			}
			return stats, err
		}
		if frame.Empty() {
			continue
		}

		res, err := t.Process(frame)
		if err != nil {
			return stats, fmt.Errorf("processing frame %d: %w", stats.Frames+1, err)
		}
		stats.record(res)

		if res.Stage == StageIris {
			log.WithFields(logrus.Fields{
				"frame": stats.Frames,
				"n":     len(res.Irises),
				"first": res.Irises[0].String(),
			}).Debug("iris detected")
		}

		Render(&frame, res)
		disp.Show(frame, res.Eye)
		res.Close()

		if disp.Poll() {
			return stats, nil
		}
	}
}
