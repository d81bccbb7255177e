// Package codec reads and writes PNG files as texture buffers. The file's
// IHDR decides the mode so 16-bit grayscale and RGB/RGBA survive a round trip
// unchanged; pixel data itself goes through image/png.
package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/Fepozopo/textools/pkg/texture"
)

// Info is the metadata reported for a decoded image.
type Info struct {
	Path         string
	Format       string
	Width        int
	Height       int
	BitDepth     int
	ColorType    string
	Interlaced   bool
	Mode         texture.Mode
	Supported    bool // false when the colour type has no registry mode
	Transparency bool
	Chunks       []string
}

// Decode reads the PNG at path into a buffer whose mode matches the file.
// The file is read in one call and closed before any decoding happens.
func Decode(path string) (*texture.Buffer, Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Info{}, fmt.Errorf("%w: error loading image: %v", texture.ErrIO, err)
	}
	return DecodeBytes(path, data)
}

// DecodeBytes is Decode on an in-memory file; path is only used for Info.
func DecodeBytes(path string, data []byte) (*texture.Buffer, Info, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, Info{}, err
	}
	info := Info{
		Path:         path,
		Format:       "PNG",
		Width:        int(h.Width),
		Height:       int(h.Height),
		BitDepth:     int(h.BitDepth),
		ColorType:    colorTypeName(h.ColorType),
		Interlaced:   h.InterlaceMethod != 0,
		Transparency: h.ColorType == colorRGBA || h.ColorType == colorGrayAlpha || h.HasChunk("tRNS"),
		Chunks:       h.Chunks,
	}
	mode, err := modeOf(h)
	if err != nil {
		return nil, info, err
	}
	info.Mode = mode
	info.Supported = true

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, info, fmt.Errorf("%w: decode %s: %v", texture.ErrIO, path, err)
	}
	buf, err := FromImage(img, mode)
	if err != nil {
		return nil, info, err
	}
	return buf, info, nil
}

// FromImage copies img into a new buffer of the given mode. The concrete
// types produced by image/png, including the straight NRGBA forms it uses for
// tRNS keyed gray and RGB, are copied sample for sample; anything else goes
// through the matching colour model.
func FromImage(img image.Image, mode texture.Mode) (*texture.Buffer, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", texture.ErrInvalidArgument)
	}
	b := img.Bounds()
	buf, err := texture.NewBuffer(b.Dx(), b.Dy(), mode)
	if err != nil {
		return nil, err
	}
	s := buf.Samples
	i := 0
	switch mode {
	case texture.Gray8:
		if g, ok := img.(*image.Gray); ok {
			for y := b.Min.Y; y < b.Max.Y; y++ {
				row := g.Pix[g.PixOffset(b.Min.X, y):]
				for x := 0; x < b.Dx(); x++ {
					s[i] = uint16(row[x])
					i++
				}
			}
			return buf, nil
		}
		// A tRNS key turns gray into straight Y,Y,Y,A; keep Y as stored.
		if n, ok := img.(*image.NRGBA); ok {
			for y := b.Min.Y; y < b.Max.Y; y++ {
				row := n.Pix[n.PixOffset(b.Min.X, y):]
				for x := 0; x < b.Dx(); x++ {
					s[i] = uint16(row[4*x])
					i++
				}
			}
			return buf, nil
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				s[i] = uint16(color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y)
				i++
			}
		}

	case texture.Gray16:
		if g, ok := img.(*image.Gray16); ok {
			for y := b.Min.Y; y < b.Max.Y; y++ {
				row := g.Pix[g.PixOffset(b.Min.X, y):]
				for x := 0; x < b.Dx(); x++ {
					s[i] = uint16(row[2*x])<<8 | uint16(row[2*x+1])
					i++
				}
			}
			return buf, nil
		}
		if n, ok := img.(*image.NRGBA64); ok {
			for y := b.Min.Y; y < b.Max.Y; y++ {
				row := n.Pix[n.PixOffset(b.Min.X, y):]
				for x := 0; x < b.Dx(); x++ {
					s[i] = uint16(row[8*x])<<8 | uint16(row[8*x+1])
					i++
				}
			}
			return buf, nil
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				s[i] = color.Gray16Model.Convert(img.At(x, y)).(color.Gray16).Y
				i++
			}
		}

	case texture.RGB8:
		if rgba, ok := img.(*image.RGBA); ok && rgba.Opaque() {
			for y := b.Min.Y; y < b.Max.Y; y++ {
				row := rgba.Pix[rgba.PixOffset(b.Min.X, y):]
				for x := 0; x < b.Dx(); x++ {
					s[i+0] = uint16(row[4*x+0])
					s[i+1] = uint16(row[4*x+1])
					s[i+2] = uint16(row[4*x+2])
					i += 3
				}
			}
			return buf, nil
		}
		if n, ok := img.(*image.NRGBA); ok {
			for y := b.Min.Y; y < b.Max.Y; y++ {
				row := n.Pix[n.PixOffset(b.Min.X, y):]
				for x := 0; x < b.Dx(); x++ {
					s[i+0] = uint16(row[4*x+0])
					s[i+1] = uint16(row[4*x+1])
					s[i+2] = uint16(row[4*x+2])
					i += 3
				}
			}
			return buf, nil
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				s[i+0], s[i+1], s[i+2] = uint16(c.R), uint16(c.G), uint16(c.B)
				i += 3
			}
		}

	case texture.RGBA8:
		if n, ok := img.(*image.NRGBA); ok {
			for y := b.Min.Y; y < b.Max.Y; y++ {
				row := n.Pix[n.PixOffset(b.Min.X, y):]
				for x := 0; x < 4*b.Dx(); x++ {
					s[i] = uint16(row[x])
					i++
				}
			}
			return buf, nil
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				s[i+0], s[i+1], s[i+2], s[i+3] = uint16(c.R), uint16(c.G), uint16(c.B), uint16(c.A)
				i += 4
			}
		}

	default:
		return nil, fmt.Errorf("%w: %v", texture.ErrUnsupportedMode, mode)
	}
	return buf, nil
}

// ToImage converts a buffer into the matching image type: *image.Gray,
// *image.Gray16, *image.RGBA (opaque) or *image.NRGBA.
func ToImage(buf *texture.Buffer) (image.Image, error) {
	if err := texture.Validate(buf, texture.Modes...); err != nil {
		return nil, err
	}
	r := image.Rect(0, 0, buf.Width, buf.Height)
	s := buf.Samples
	switch buf.Mode {
	case texture.Gray8:
		img := image.NewGray(r)
		for i, v := range s {
			img.Pix[i] = uint8(v)
		}
		return img, nil
	case texture.Gray16:
		img := image.NewGray16(r)
		for i, v := range s {
			img.Pix[2*i] = uint8(v >> 8)
			img.Pix[2*i+1] = uint8(v)
		}
		return img, nil
	case texture.RGB8:
		img := image.NewRGBA(r)
		for p := 0; p < buf.Pixels(); p++ {
			img.Pix[4*p+0] = uint8(s[3*p+0])
			img.Pix[4*p+1] = uint8(s[3*p+1])
			img.Pix[4*p+2] = uint8(s[3*p+2])
			img.Pix[4*p+3] = 0xff
		}
		return img, nil
	case texture.RGBA8:
		img := image.NewNRGBA(r)
		for i, v := range s {
			img.Pix[i] = uint8(v)
		}
		return img, nil
	}
	return nil, fmt.Errorf("%w: %v", texture.ErrUnsupportedMode, buf.Mode)
}
