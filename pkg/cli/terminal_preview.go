package cli

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"os/exec"
	"strings"
	"sync/atomic"

	"golang.org/x/image/draw"

	"github.com/Fepozopo/textools/pkg/codec"
	"github.com/Fepozopo/textools/pkg/internal/log"
	"github.com/Fepozopo/textools/pkg/texture"
)

// Terminal preview for kitty, iTerm2-style inline images, sixel and chafa.
//
// Detection order when PREVIEW_BACKEND is unset: inline-capable terminals
// (iTerm2, WezTerm, Warp, VSCode...), kitty and compatibles, sixel, then chafa
// if it is on PATH. PREVIEW_BACKEND=kitty|inline|sixel|chafa is tried first
// and the usual order is used if it fails.

// previewDebug is set from PREVIEW_DEBUG. It enables the preview: debug lines
// without turning on the rest of the debug log.
var previewDebug atomic.Bool

// Character cell assumptions and clamps for preview placement.
const (
	cellW   = 8
	cellH   = 16
	minCols = 6
	minRows = 3
	maxCols = 80
	maxRows = 40
)

func isKitty() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	// ghostty implements the kitty graphics protocol
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "kitty") || strings.Contains(term, "ghostty") {
		return true
	}
	return os.Getenv("KONSOLE_VERSION") != ""
}

func isInlineImageCapable() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "VSCode", "Tabby", "Bobcat":
		log.DebugfWhen(previewDebug.Load(), "preview: TERM_PROGRAM indicates inline-capable: %s", os.Getenv("TERM_PROGRAM"))
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "wezterm") || strings.Contains(term, "warp") || strings.Contains(term, "tabby") || strings.Contains(term, "vscode") {
		return true
	}
	return os.Getenv("ITERM_SESSION_ID") != ""
}

// isSixelCapable is a heuristic; SIXEL_PREVIEW=1 forces it.
func isSixelCapable() bool {
	if os.Getenv("SIXEL_PREVIEW") == "1" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "foot") || strings.Contains(term, "mlterm") {
		return true
	}
	return os.Getenv("WT_SESSION") != ""
}

func hasChafa() bool {
	if os.Getenv("NO_CHAFA") == "1" {
		return false
	}
	_, err := exec.LookPath("chafa")
	return err == nil
}

// PreviewSupported reports whether the terminal likely supports a preview.
func PreviewSupported() bool {
	return os.Getenv("PREVIEW_BACKEND") != "" || isKitty() || isInlineImageCapable() || isSixelCapable() || hasChafa()
}

// PreviewSize is the placement of a preview in character cells and pixels.
type PreviewSize struct {
	Cols        int
	Rows        int
	PixelWidth  int
	PixelHeight int
}

// computePreviewSize fits a w x h image into the preview clamps without
// upscaling, keeping its aspect ratio.
func computePreviewSize(w, h int) PreviewSize {
	scale := 1.0
	if w > 0 && h > 0 {
		scale = math.Min(1.0, math.Min(float64(maxCols*cellW)/float64(w), float64(maxRows*cellH)/float64(h)))
	}
	targetW := int(math.Round(float64(w) * scale))
	targetH := int(math.Round(float64(h) * scale))

	cols := clamp(int(math.Round(float64(targetW)/cellW)), minCols, maxCols)
	rows := clamp(int(math.Round(float64(targetH)/cellH)), minRows, maxRows)
	return PreviewSize{Cols: cols, Rows: rows, PixelWidth: cols * cellW, PixelHeight: rows * cellH}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// downscale shrinks img to fit the preview area. Textures are often 4K or
// larger, far more than a terminal can show.
func downscale(img image.Image) image.Image {
	b := img.Bounds()
	maxW, maxH := maxCols*cellW, maxRows*cellH
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return img
	}
	scale := math.Min(float64(maxW)/float64(b.Dx()), float64(maxH)/float64(b.Dy()))
	w := max(1, int(math.Round(float64(b.Dx())*scale)))
	h := max(1, int(math.Round(float64(b.Dy())*scale)))
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// PreviewBuffer renders buf in the terminal attached to w.
func PreviewBuffer(w io.Writer, buf *texture.Buffer) error {
	img, err := codec.ToImage(buf)
	if err != nil {
		return err
	}
	return PreviewImage(w, img)
}

// PreviewImage PNG-encodes a downscaled copy of img and sends it to w.
func PreviewImage(w io.Writer, img image.Image) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	small := downscale(img)
	var blob bytes.Buffer
	if err := png.Encode(&blob, small); err != nil {
		return fmt.Errorf("png encode failed: %w", err)
	}
	size := computePreviewSize(small.Bounds().Dx(), small.Bounds().Dy())
	return previewBytes(w, blob.Bytes(), size)
}

type backend struct {
	name   string
	detect func() bool
	send   func(io.Writer, []byte, PreviewSize) error
}

var backends = []backend{
	{"inline", isInlineImageCapable, sendInlineImage},
	{"kitty", isKitty, sendKittyImage},
	{"sixel", isSixelCapable, sendSixelImage},
	{"chafa", hasChafa, sendChafaImage},
}

func previewBytes(w io.Writer, blob []byte, size PreviewSize) error {
	if len(blob) == 0 {
		return fmt.Errorf("empty image blob")
	}
	if v := strings.ToLower(os.Getenv("PREVIEW_BACKEND")); v != "" {
		switch v {
		case "iterm", "wezterm":
			v = "inline"
		}
		found := false
		for _, b := range backends {
			if b.name != v {
				continue
			}
			found = true
			if err := b.send(w, blob, size); err == nil {
				return nil
			} else {
				log.DebugfWhen(previewDebug.Load(), "preview: override %s failed: %v", v, err)
			}
		}
		if !found {
			log.DebugfWhen(previewDebug.Load(), "preview: unknown PREVIEW_BACKEND value: %s", v)
		}
	}

	var lastErr error
	for _, b := range backends {
		if !b.detect() {
			continue
		}
		log.DebugfWhen(previewDebug.Load(), "preview: attempting %s", b.name)
		if err := b.send(w, blob, size); err != nil {
			log.DebugfWhen(previewDebug.Load(), "preview: %s failed: %v", b.name, err)
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr != nil {
		return fmt.Errorf("terminal preview failed: %w", lastErr)
	}
	return fmt.Errorf("no preview protocol matched")
}

// postImageNewlines is the number of blank lines emitted after an image so
// following text lands just below it.
func postImageNewlines(rows int) int {
	switch {
	case rows <= 0, rows <= 2:
		return 1
	case rows <= 6:
		return 2
	case rows <= 20:
		return 3
	}
	return 4
}

func newlines(w io.Writer, n int) {
	fmt.Fprint(w, strings.Repeat("\n", n))
}

// sendKittyImage uses the kitty graphics protocol: base64 PNG in chunks of at
// most 4096 bytes, the first carrying the placement keys.
func sendKittyImage(w io.Writer, data []byte, size PreviewSize) error {
	enc := base64.StdEncoding.EncodeToString(data)
	const chunkSize = 4096
	for pos := 0; pos < len(enc); pos += chunkSize {
		end := min(pos+chunkSize, len(enc))
		more := "0"
		if end < len(enc) {
			more = "1"
		}
		var seq string
		if pos == 0 {
			// a=T transmit+display, f=100 PNG, q=2 suppress responses
			seq = fmt.Sprintf("\x1b_Ga=T,f=100,t=d,q=2,c=%d,r=%d,m=%s;%s\x1b\\", size.Cols, size.Rows, more, enc[pos:end])
		} else {
			seq = "\x1b_Gm=" + more + ";" + enc[pos:end] + "\x1b\\"
		}
		if _, err := io.WriteString(w, seq); err != nil {
			return err
		}
	}
	newlines(w, postImageNewlines(size.Rows))
	return nil
}

// sendInlineImage emits the iTerm2-style OSC 1337 inline file sequence.
func sendInlineImage(w io.Writer, data []byte, size PreviewSize) error {
	meta := fmt.Sprintf("size=%d;", len(data))
	if size.PixelWidth > 0 && size.PixelHeight > 0 {
		meta += fmt.Sprintf("width=%dpx;height=%dpx;", size.PixelWidth, size.PixelHeight)
	}
	seq := "\x1b]1337;File=name=preview.png;inline=1;" + meta + ":" + base64.StdEncoding.EncodeToString(data) + "\a"
	if _, err := io.WriteString(w, seq); err != nil {
		return err
	}
	newlines(w, postImageNewlines(0))
	return nil
}

// sendSixelImage pipes the PNG through img2sixel.
func sendSixelImage(w io.Writer, data []byte, size PreviewSize) error {
	if _, err := exec.LookPath("img2sixel"); err != nil {
		return fmt.Errorf("img2sixel not found in PATH: %w", err)
	}
	cmd := exec.Command("img2sixel", "-")
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = w
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("img2sixel failed: %w", err)
	}
	newlines(w, postImageNewlines(size.Rows))
	return nil
}

// sendChafaImage renders block graphics with chafa. CHAFA_FILL and
// CHAFA_SYMBOLS override the defaults.
func sendChafaImage(w io.Writer, data []byte, size PreviewSize) error {
	if !hasChafa() {
		return fmt.Errorf("chafa not available")
	}
	fill, symbols := "block", "block"
	if f := os.Getenv("CHAFA_FILL"); f != "" {
		fill = f
	}
	if s := os.Getenv("CHAFA_SYMBOLS"); s != "" {
		symbols = s
	}
	cmd := exec.Command("chafa", "--fill="+fill, "--symbols="+symbols, "-s", fmt.Sprintf("%dx%d", size.Cols, size.Rows), "-")
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = w
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("chafa failed: %w", err)
	}
	newlines(w, postImageNewlines(size.Rows))
	return nil
}
