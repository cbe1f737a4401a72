package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewBadLevel(t *testing.T) {
	if _, err := New("loud", ""); err == nil {
		t.Fatal("New with bad level succeeded")
	}
}

func TestNewFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "eyetrack.log")
	logger, err := New("debug", file)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", logger.GetLevel())
	}

	logger.WithField("frames", 12).Debug("tracking stopped")
	logger.Trace("too verbose")

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, "tracking stopped") || !strings.Contains(got, "12") {
		t.Errorf("log file missing debug entry:\n%s", got)
	}
	if strings.Contains(got, "too verbose") {
		t.Errorf("log file has trace entry below level:\n%s", got)
	}
}

func TestSession(t *testing.T) {
	logger, err := New("info", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a, b := Session(logger), Session(logger)
	idA, _ := a.Data["session"].(string)
	idB, _ := b.Data["session"].(string)
	if idA == "" || idB == "" || idA == idB {
		t.Errorf("session ids %q and %q, want distinct non-empty ids", idA, idB)
	}
}
