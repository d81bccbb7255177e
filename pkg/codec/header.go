package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/Fepozopo/textools/pkg/texture"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// PNG colour types.
const (
	colorGray      = 0
	colorRGB       = 2
	colorPalette   = 3
	colorGrayAlpha = 4
	colorRGBA      = 6
)

// Header is the decoded IHDR chunk plus the list of chunk types in the file.
type Header struct {
	Width             uint32
	Height            uint32
	BitDepth          byte
	ColorType         byte
	CompressionMethod byte
	FilterMethod      byte
	InterlaceMethod   byte
	Chunks            []string
}

// HasChunk reports whether a chunk of the given type appears in the file.
func (h Header) HasChunk(typ string) bool {
	for _, c := range h.Chunks {
		if c == typ {
			return true
		}
	}
	return false
}

// colorTypeName returns a short label for a PNG colour type.
func colorTypeName(ct byte) string {
	switch ct {
	case colorGray:
		return "grayscale"
	case colorRGB:
		return "truecolor"
	case colorPalette:
		return "indexed"
	case colorGrayAlpha:
		return "grayscale+alpha"
	case colorRGBA:
		return "truecolor+alpha"
	}
	return fmt.Sprintf("colour type %d", ct)
}

// parseHeader reads the signature, IHDR and chunk layout of a PNG file.
// Chunk CRCs are left to the image/png decoder.
func parseHeader(data []byte) (Header, error) {
	if len(data) < 8 || !bytes.Equal(data[:8], pngSignature) {
		return Header{}, fmt.Errorf("%w: not a PNG file", texture.ErrIO)
	}
	var h Header
	pos := 8
	for pos+8 <= len(data) {
		n := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		typ := string(data[pos+4 : pos+8])
		body := pos + 8
		if n < 0 || body+n+4 > len(data) {
			return Header{}, fmt.Errorf("%w: truncated %s chunk", texture.ErrIO, typ)
		}
		if len(h.Chunks) == 0 {
			if typ != "IHDR" || n != 13 {
				return Header{}, fmt.Errorf("%w: missing IHDR", texture.ErrIO)
			}
			ihdr := data[body : body+13]
			h.Width = binary.BigEndian.Uint32(ihdr[0:4])
			h.Height = binary.BigEndian.Uint32(ihdr[4:8])
			h.BitDepth = ihdr[8]
			h.ColorType = ihdr[9]
			h.CompressionMethod = ihdr[10]
			h.FilterMethod = ihdr[11]
			h.InterlaceMethod = ihdr[12]
		}
		h.Chunks = append(h.Chunks, typ)
		pos = body + n + 4
		if typ == "IEND" {
			break
		}
	}
	if len(h.Chunks) == 0 {
		return Header{}, fmt.Errorf("%w: missing IHDR", texture.ErrIO)
	}
	return h, nil
}

// modeOf maps an IHDR colour type and bit depth onto the mode registry.
func modeOf(h Header) (texture.Mode, error) {
	switch {
	case h.ColorType == colorGray && h.BitDepth == 8:
		return texture.Gray8, nil
	case h.ColorType == colorGray && h.BitDepth == 16:
		return texture.Gray16, nil
	case h.ColorType == colorRGB && h.BitDepth == 8:
		return texture.RGB8, nil
	case h.ColorType == colorRGBA && h.BitDepth == 8:
		return texture.RGBA8, nil
	}
	return 0, fmt.Errorf("%w: %d-bit %s PNG", texture.ErrUnsupportedMode, h.BitDepth, colorTypeName(h.ColorType))
}

// colorTypeOf is the inverse of modeOf.
func colorTypeOf(m texture.Mode) (byte, error) {
	switch m {
	case texture.Gray8, texture.Gray16:
		return colorGray, nil
	case texture.RGB8:
		return colorRGB, nil
	case texture.RGBA8:
		return colorRGBA, nil
	}
	return 0, fmt.Errorf("%w: %v", texture.ErrUnsupportedMode, m)
}
