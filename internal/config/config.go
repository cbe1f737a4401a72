// Package config loads eyetrack's configuration.
//
// Settings come, in increasing priority, from built-in defaults, an
// optional YAML file, a .env file in the working directory, and the
// process environment. Command-line flags are applied by the caller
// before calling Validate.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the complete eyetrack configuration.
type Config struct {
	// Cascade model files.
	FaceModelPath string `yaml:"face_model_path" validate:"required,file"`
	EyesModelPath string `yaml:"eyes_model_path" validate:"required,file"`

	// CameraIndex is the capture device to read. Ignored when Images
	// is set.
	CameraIndex int `yaml:"camera_index" validate:"gte=0"`
	// Images is a glob of still images to process instead of the
	// camera.
	Images string `yaml:"images"`

	DisplayEnabled bool `yaml:"display_enabled"`
	// BothEyes searches both eyes for an iris rather than only the
	// first one found.
	BothEyes bool `yaml:"both_eyes"`

	LogLevel string `yaml:"log_level" validate:"oneof=panic fatal error warn warning info debug trace"`
	// LogFile, if set, also writes logs to a rotated file.
	LogFile string `yaml:"log_file"`
}

// Environment variables overriding the config file.
const (
	EnvFaceModel = "EYETRACK_FACE_MODEL"
	EnvEyesModel = "EYETRACK_EYES_MODEL"
	EnvCamera    = "EYETRACK_CAMERA"
	EnvImages    = "EYETRACK_IMAGES"
	EnvDisplay   = "EYETRACK_DISPLAY"
	EnvBothEyes  = "EYETRACK_BOTH_EYES"
	EnvLogLevel  = "EYETRACK_LOG_LEVEL"
	EnvLogFile   = "EYETRACK_LOG_FILE"
)

const haarcascades = "/usr/share/opencv4/haarcascades/"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		FaceModelPath:  haarcascades + "haarcascade_frontalface_alt.xml",
		EyesModelPath:  haarcascades + "haarcascade_eye_tree_eyeglasses.xml",
		CameraIndex:    0,
		DisplayEnabled: true,
		LogLevel:       "info",
	}
}

// Load builds a configuration from the defaults, the YAML file at
// path (skipped if path is empty), and the environment. The result
// is not validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// godotenv never overrides variables that are already set, so
	// the real environment wins over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvFaceModel); ok {
		cfg.FaceModelPath = v
	}
	if v, ok := os.LookupEnv(EnvEyesModel); ok {
		cfg.EyesModelPath = v
	}
	if v, ok := os.LookupEnv(EnvImages); ok {
		cfg.Images = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvLogFile); ok {
		cfg.LogFile = v
	}
	if v, ok := os.LookupEnv(EnvCamera); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCamera, err)
		}
		cfg.CameraIndex = n
	}
	for name, dst := range map[string]*bool{
		EnvDisplay:  &cfg.DisplayEnabled,
		EnvBothEyes: &cfg.BothEyes,
	} {
		v, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = b
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that cfg is usable, including that the model files
// exist.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
