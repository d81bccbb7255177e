package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Fepozopo/textools/pkg/internal/log"
	"github.com/Fepozopo/textools/pkg/texture"
)

// Environment variables read by LoadConfig.
const (
	EnvInput      = "TEXTOOLS_INPUT"
	EnvOutput     = "TEXTOOLS_OUTPUT"
	EnvThreshold  = "TEXTOOLS_THRESHOLD"
	EnvBackground = "TEXTOOLS_BACKGROUND"
	EnvDebug      = "TEXTOOLS_DEBUG"
	EnvPreview    = "TEXTOOLS_PREVIEW"
	EnvPreviewDbg = "PREVIEW_DEBUG"
)

// Config holds defaults taken from the environment. Command-line flags
// override every field. Threshold and Background stay raw until a command
// that uses them asks for the parsed value.
type Config struct {
	Input        string
	Output       string
	Threshold    string
	Background   string
	Debug        bool
	Preview      bool
	PreviewDebug bool
}

// DefaultConfig is used when no environment variable is set.
func DefaultConfig() Config {
	return Config{}
}

// loadDotEnv loads .env from the working directory. A missing file is not
// an error; an unreadable or malformed one is reported and skipped.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warningf("ignoring .env: %v", err)
	}
}

// LoadConfig builds a Config from DefaultConfig and the environment. Only
// the boolean switches are validated here.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	cfg.Input = strings.TrimSpace(os.Getenv(EnvInput))
	cfg.Output = strings.TrimSpace(os.Getenv(EnvOutput))
	cfg.Threshold = strings.TrimSpace(os.Getenv(EnvThreshold))
	cfg.Background = strings.TrimSpace(os.Getenv(EnvBackground))

	for _, b := range []struct {
		name string
		dst  *bool
	}{
		{EnvDebug, &cfg.Debug},
		{EnvPreview, &cfg.Preview},
		{EnvPreviewDbg, &cfg.PreviewDebug},
	} {
		v := os.Getenv(b.name)
		if v == "" {
			continue
		}
		on, err := parseBoolLike(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w: %v", b.name, texture.ErrInvalidArgument, err)
		}
		*b.dst = on
	}
	return cfg, nil
}

// ThresholdValue is the classifier threshold from TEXTOOLS_THRESHOLD, or
// texture.DefaultThreshold when it is unset.
func (c Config) ThresholdValue() (float64, error) {
	if c.Threshold == "" {
		return texture.DefaultThreshold, nil
	}
	t, err := ParseThreshold(c.Threshold)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", EnvThreshold, err)
	}
	return t, nil
}

// BackgroundColor is the remove-alpha background from TEXTOOLS_BACKGROUND,
// or white when it is unset.
func (c Config) BackgroundColor() (texture.Color, error) {
	if c.Background == "" {
		return texture.White, nil
	}
	bg, err := ParseBackground(c.Background)
	if err != nil {
		return texture.Color{}, fmt.Errorf("%s: %w", EnvBackground, err)
	}
	return bg, nil
}
