package cli

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/Fepozopo/textools/pkg/internal/log"
	"github.com/Fepozopo/textools/pkg/texture"
)

func TestParseChannelMask(t *testing.T) {
	cases := []struct {
		in   string
		want texture.ChannelMask
	}{
		{"r,g,b", texture.MaskR | texture.MaskG | texture.MaskB},
		{"g", texture.MaskG},
		{"G", texture.MaskG},
		{"rgba", texture.MaskR | texture.MaskG | texture.MaskB | texture.MaskA},
		{"red, alpha", texture.MaskR | texture.MaskA},
		{"0,3", texture.MaskR | texture.MaskA},
		{"l", texture.MaskR},
		{"b,b", texture.MaskB},
	}
	for _, c := range cases {
		got, err := ParseChannelMask(c.in)
		if err != nil {
			t.Fatalf("%q: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("%q: got %s, want %s", c.in, got, c.want)
		}
	}
	for _, bad := range []string{"", "x", "r,,q", "8", "-1", "gray"} {
		if _, err := ParseChannelMask(bad); !errors.Is(err, texture.ErrInvalidArgument) {
			t.Fatalf("%q: expected ErrInvalidArgument, got %v", bad, err)
		}
	}
}

func TestParseBackground(t *testing.T) {
	cases := []struct {
		in   string
		want texture.Color
	}{
		{"255,255,255", texture.White},
		{" 1, 2 ,3 ", texture.Color{R: 1, G: 2, B: 3}},
		{"#FF8000", texture.Color{R: 255, G: 128, B: 0}},
		{"black", texture.Color{}},
		{"Grey", texture.Color{R: 128, G: 128, B: 128}},
	}
	for _, c := range cases {
		got, err := ParseBackground(c.in)
		if err != nil {
			t.Fatalf("%q: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("%q: got %v, want %v", c.in, got, c.want)
		}
	}
	for _, bad := range []string{"", "1,2", "1,2,3,4", "256,0,0", "-1,0,0", "#12345", "#gggggg", "mauve"} {
		if _, err := ParseBackground(bad); !errors.Is(err, texture.ErrInvalidArgument) {
			t.Fatalf("%q: expected ErrInvalidArgument, got %v", bad, err)
		}
	}
}

func TestParseThreshold(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"0.5", 0.5},
		{"0", 0},
		{"1", 1},
		{"50%", 0.5},
		{" 12.5% ", 0.125},
	}
	for _, c := range cases {
		got, err := ParseThreshold(c.in)
		if err != nil {
			t.Fatalf("%q: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("%q: got %v, want %v", c.in, got, c.want)
		}
	}
	for _, bad := range []string{"", "abc", "1.5", "-0.1", "150%", "NaN"} {
		if _, err := ParseThreshold(bad); !errors.Is(err, texture.ErrInvalidArgument) {
			t.Fatalf("%q: expected ErrInvalidArgument, got %v", bad, err)
		}
	}
}

func TestParseBoolLike(t *testing.T) {
	for _, s := range []string{"1", "true", "YES", "on"} {
		if v, err := parseBoolLike(s); err != nil || !v {
			t.Fatalf("%q: got %v, %v", s, v, err)
		}
	}
	for _, s := range []string{"0", "false", "No", "off"} {
		if v, err := parseBoolLike(s); err != nil || v {
			t.Fatalf("%q: got %v, %v", s, v, err)
		}
	}
	if _, err := parseBoolLike("maybe"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestGenerateTooltip(t *testing.T) {
	op, ok := texture.LookupOperation(texture.OpInvertChannels)
	if !ok {
		t.Fatalf("invert-channels not registered")
	}
	tip := GenerateTooltip(op)
	for _, want := range []string{op.Description, "Accepts: RGB8, RGBA8, Gray8, Gray16", "- input (path, required)", "- channels (mask, optional)", "(default: all colour channels)"} {
		if !strings.Contains(tip, want) {
			t.Fatalf("tooltip missing %q:\n%s", want, tip)
		}
	}
}

func TestParsePercentValue(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"3%", 0.03},
		{"0.25", 0.25},
		{" 100% ", 1},
	}
	for _, c := range cases {
		got, err := parsePercentValue(c.in)
		if err != nil {
			t.Fatalf("%q: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("%q: got %v, want %v", c.in, got, c.want)
		}
	}
	for _, bad := range []string{"", "%", "x%", "1.2.3"} {
		if _, err := parsePercentValue(bad); err == nil {
			t.Fatalf("%q: expected error", bad)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if th, err := cfg.ThresholdValue(); err != nil || th != texture.DefaultThreshold {
		t.Fatalf("default threshold = %v, %v", th, err)
	}
	if bg, err := cfg.BackgroundColor(); err != nil || bg != texture.White {
		t.Fatalf("default background = %v, %v", bg, err)
	}

	t.Setenv(EnvInput, "in.png")
	t.Setenv(EnvThreshold, "25%")
	t.Setenv(EnvBackground, "black")
	t.Setenv(EnvPreviewDbg, "1")
	t.Setenv(EnvPreview, "yes")
	cfg, err = LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := Config{Input: "in.png", Threshold: "25%", Background: "black", Preview: true, PreviewDebug: true}
	if cfg != want {
		t.Fatalf("got %+v, want %+v", cfg, want)
	}
	if th, err := cfg.ThresholdValue(); err != nil || th != 0.25 {
		t.Fatalf("threshold = %v, %v", th, err)
	}
	if bg, err := cfg.BackgroundColor(); err != nil || bg != (texture.Color{}) {
		t.Fatalf("background = %v, %v", bg, err)
	}

	t.Setenv(EnvDebug, "sometimes")
	if _, err := LoadConfig(); !errors.Is(err, texture.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestMalformedEnvironmentValues(t *testing.T) {
	cfg := Config{Threshold: "lots", Background: "mauve"}
	if _, err := cfg.ThresholdValue(); !errors.Is(err, texture.ErrInvalidArgument) || !strings.Contains(err.Error(), EnvThreshold) {
		t.Fatalf("threshold: got %v", err)
	}
	if _, err := cfg.BackgroundColor(); !errors.Is(err, texture.ErrInvalidArgument) || !strings.Contains(err.Error(), EnvBackground) {
		t.Fatalf("background: got %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stdout)

	// equivalent of t.Chdir (Go 1.24+) for the Go 1.21 toolchain
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	loadDotEnv()
	if buf.Len() != 0 {
		t.Fatalf("missing .env should be silent, got %q", buf.String())
	}

	// a directory named .env cannot be read as a file
	if err := os.Mkdir(".env", 0o755); err != nil {
		t.Fatal(err)
	}
	loadDotEnv()
	if !strings.Contains(buf.String(), "WARNING: ") || !strings.Contains(buf.String(), "ignoring .env") {
		t.Fatalf("expected a warning, got %q", buf.String())
	}
}
