package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"go.universe.tf/eyetrack/internal/config"
	"go.universe.tf/eyetrack/internal/display"
	"go.universe.tf/eyetrack/internal/location"
	"go.universe.tf/eyetrack/internal/logging"
	"go.universe.tf/eyetrack/internal/source"
	"go.universe.tf/eyetrack/internal/tracker"
)

var (
	flagConfig   = flag.String("config", "", "YAML configuration file")
	flagCamera   = flag.Int("camera", -1, "camera device index, overrides the config")
	flagImages   = flag.String("images", "", "glob of still images to track instead of the camera")
	flagHeadless = flag.Bool("headless", false, "don't open any windows")
	flagBothEyes = flag.Bool("both-eyes", false, "search both eyes for an iris")
	flagVerbose  = flag.Bool("v", false, "debug logging")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logging.Session(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("tracking failed")
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*flagConfig)
	if err != nil {
		return nil, err
	}
	if *flagCamera >= 0 {
		cfg.CameraIndex = *flagCamera
	}
	if *flagImages != "" {
		cfg.Images = *flagImages
	}
	if *flagHeadless {
		cfg.DisplayEnabled = false
	}
	if *flagBothEyes {
		cfg.BothEyes = true
	}
	if *flagVerbose {
		cfg.LogLevel = "debug"
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

type frameSource interface {
	tracker.Source
	Close() error
}

func openSource(cfg *config.Config) (frameSource, error) {
	if cfg.Images != "" {
		images, err := source.OpenImages(cfg.Images)
		if err != nil {
			return nil, err
		}
		return images, nil
	}
	cam, err := source.OpenCamera(cfg.CameraIndex)
	if err != nil {
		return nil, err
	}
	return cam, nil
}

type frameDisplay interface {
	tracker.Display
	Close() error
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Entry) error {
	faces, err := location.LoadCascade(cfg.FaceModelPath, location.FaceParams)
	if err != nil {
		return err
	}
	defer faces.Close()

	eyes, err := location.LoadCascade(cfg.EyesModelPath, location.EyeParams)
	if err != nil {
		return err
	}
	defer eyes.Close()

	src, err := openSource(cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	var disp frameDisplay = display.Headless{}
	if cfg.DisplayEnabled {
		disp = display.NewWindows()
	}
	defer disp.Close()

	t := tracker.New(faces, eyes, location.NewHough(location.IrisParams), tracker.WithBothEyes(cfg.BothEyes))

	log.WithFields(logrus.Fields{
		"camera":    cfg.CameraIndex,
		"images":    cfg.Images,
		"display":   cfg.DisplayEnabled,
		"both_eyes": cfg.BothEyes,
	}).Info("tracking started")

	stats, err := t.Run(ctx, src, disp, log)
	log.WithFields(stats.Fields()).Info("tracking stopped")
	return err
}
