package cli

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/Fepozopo/textools/pkg/texture"
)

// forceInline makes the preview pick the inline backend regardless of the
// host terminal.
func forceInline(t *testing.T) {
	t.Setenv("PREVIEW_BACKEND", "inline")
	t.Setenv("TERM_PROGRAM", "WezTerm")
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("KITTY_WINDOW_ID", "")
}

// inlinePayload extracts and decodes the base64 PNG of an OSC 1337 sequence.
func inlinePayload(t *testing.T, out string) image.Image {
	t.Helper()
	start := strings.Index(out, "\x1b]1337;File=")
	if start < 0 {
		t.Fatalf("no inline sequence in %q", out)
	}
	rest := out[start:]
	colon := strings.Index(rest, ":")
	bel := strings.Index(rest, "\a")
	if colon < 0 || bel < colon {
		t.Fatalf("malformed inline sequence %q", rest)
	}
	data, err := base64.StdEncoding.DecodeString(rest[colon+1 : bel])
	if err != nil {
		t.Fatalf("base64 decode failed: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("payload is not a PNG: %v", err)
	}
	return img
}

func TestPreviewInlineSequence(t *testing.T) {
	forceInline(t)
	b, _ := texture.NewBuffer(2, 2, texture.RGBA8)
	for i := range b.Samples {
		b.Samples[i] = 200
	}
	var out bytes.Buffer
	if err := PreviewBuffer(&out, b); err != nil {
		t.Fatalf("PreviewBuffer: %v", err)
	}
	img := inlinePayload(t, out.String())
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Fatalf("unexpected preview size %v", img.Bounds())
	}
}

func TestPreviewDownscalesLargeTextures(t *testing.T) {
	forceInline(t)
	b, _ := texture.NewBuffer(2048, 1024, texture.Gray16)
	var out bytes.Buffer
	if err := PreviewBuffer(&out, b); err != nil {
		t.Fatalf("PreviewBuffer: %v", err)
	}
	img := inlinePayload(t, out.String())
	if img.Bounds().Dx() != maxCols*cellW || img.Bounds().Dy() != maxCols*cellW/2 {
		t.Fatalf("expected %dx%d, got %v", maxCols*cellW, maxCols*cellW/2, img.Bounds())
	}
}

func TestPreviewKittyChunks(t *testing.T) {
	t.Setenv("PREVIEW_BACKEND", "kitty")
	var out bytes.Buffer
	blob := bytes.Repeat([]byte{0xab}, 5000)
	if err := previewBytes(&out, blob, PreviewSize{Cols: 10, Rows: 5}); err != nil {
		t.Fatalf("previewBytes: %v", err)
	}
	s := out.String()
	if !strings.HasPrefix(s, "\x1b_Ga=T,f=100,t=d,q=2,c=10,r=5,m=1;") {
		t.Fatalf("unexpected first chunk header: %q", s[:40])
	}
	if !strings.Contains(s, "\x1b_Gm=0;") {
		t.Fatalf("missing final chunk marker")
	}
}

func TestComputePreviewSize(t *testing.T) {
	cases := []struct {
		w, h       int
		cols, rows int
	}{
		{2, 2, minCols, minRows},
		{640, 640, 80, 40},
		{4096, 4096, 80, 40},
		{4096, 1024, 80, 10},
		{320, 160, 40, 10},
	}
	for _, c := range cases {
		got := computePreviewSize(c.w, c.h)
		if got.Cols != c.cols || got.Rows != c.rows {
			t.Fatalf("%dx%d: got %dx%d cells, want %dx%d", c.w, c.h, got.Cols, got.Rows, c.cols, c.rows)
		}
		if got.PixelWidth != got.Cols*cellW || got.PixelHeight != got.Rows*cellH {
			t.Fatalf("%dx%d: pixel size out of step with cells: %+v", c.w, c.h, got)
		}
	}
}

func TestPreviewEmptyBlob(t *testing.T) {
	if err := previewBytes(&bytes.Buffer{}, nil, PreviewSize{}); err == nil {
		t.Fatalf("expected error for empty blob")
	}
}
