// Package logging sets up eyetrack's logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger at the named level writing to stderr and, if
// file is not empty, to a size-rotated log file.
func New(level, file string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetLevel(lvl)
	logger.SetFormatter(&formatter.Formatter{
		TimestampFormat: "15:04:05.000",
		CallerFirst:     true,
		CustomCallerFormatter: func(f *runtime.Frame) string {
			s := strings.Split(f.Function, ".")
			return fmt.Sprintf(" [%s:%d][%s()]", path.Base(f.File), f.Line, s[len(s)-1])
		},
	})
	logger.SetReportCaller(true)

	writers := []io.Writer{os.Stderr}
	if file != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   file,
			LocalTime:  true,
			Compress:   true,
			MaxSize:    20,
			MaxBackups: 3,
			MaxAge:     7,
		})
	}
	logger.SetOutput(io.MultiWriter(writers...))

	return logger, nil
}

// Session returns an entry tagging everything logged through it with
// a fresh session id, so that runs can be told apart in a shared log
// file.
func Session(logger *logrus.Logger) *logrus.Entry {
	return logger.WithField("session", uuid.NewString())
}
