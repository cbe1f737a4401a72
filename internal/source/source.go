// Package source provides frames to the tracker, from a camera or
// from still images on disk.
package source

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for image.Decode
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gocv.io/x/gocv"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrOpen is returned when a source can't be opened.
	ErrOpen = errors.New("cannot open frame source")
	// ErrRead is returned when an open source fails to deliver a
	// frame.
	ErrRead = errors.New("cannot read frame")
)

// Camera reads frames from a video capture device.
type Camera struct {
	index   int
	capture *gocv.VideoCapture
}

// OpenCamera opens the capture device with the given index.
func OpenCamera(index int) (*Camera, error) {
	vc, err := gocv.OpenVideoCapture(index)
	if err != nil {
		return nil, fmt.Errorf("%w: camera %d: %v", ErrOpen, index, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("%w: camera %d", ErrOpen, index)
	}
	return &Camera{index: index, capture: vc}, nil
}

// Read blocks until the camera delivers a frame. A camera that went
// away looks the same as any other read failure.
func (c *Camera) Read(dst *gocv.Mat) error {
	if !c.capture.Read(dst) {
		return fmt.Errorf("%w: camera %d", ErrRead, c.index)
	}
	return nil
}

// Close releases the device.
func (c *Camera) Close() error {
	return c.capture.Close()
}

// Images serves still image files as frames, in lexical order.
type Images struct {
	paths []string
	next  int
}

// OpenImages serves the files matching the glob pattern.
func OpenImages(pattern string) (*Images, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpen, pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no files match %q", ErrOpen, pattern)
	}
	sort.Strings(paths)
	return &Images{paths: paths}, nil
}

// Read decodes the next image into dst as a BGR frame. It returns
// io.EOF after the last one.
func (s *Images) Read(dst *gocv.Mat) error {
	if s.next >= len(s.paths) {
		return io.EOF
	}
	path := s.paths[s.next]
	s.next++

	im, err := decodeFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRead, err)
	}
	m, err := gocv.ImageToMatRGB(im)
	if err != nil {
		return fmt.Errorf("%w: converting %s: %v", ErrRead, path, err)
	}
	defer m.Close()
	m.CopyTo(dst)
	return nil
}

// Close is a no-op; files are only held open while decoding.
func (s *Images) Close() error {
	return nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	im, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return im, nil
}
