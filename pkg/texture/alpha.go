package texture

import (
	"fmt"
	"math"
)

// Color is an opaque 8-bit background colour.
type Color struct {
	R, G, B uint8
}

// White is the default background used when flattening alpha.
var White = Color{255, 255, 255}

func (c Color) String() string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

func (c Color) channels() [3]uint8 {
	return [3]uint8{c.R, c.G, c.B}
}

// RemoveAlpha composites an RGBA8 buffer over an opaque background and returns
// a new RGB8 buffer. Colour samples are straight (non-premultiplied):
//
//	out = round(bg*(1-a) + fg*a), a = alpha/max
//
// Fully transparent pixels come out as bg, fully opaque ones as fg.
func RemoveAlpha(b *Buffer, bg Color) (*Buffer, error) {
	if err := Validate(b, RGBA8); err != nil {
		return nil, err
	}
	info, _ := Describe(RGBA8)
	out, err := NewBuffer(b.Width, b.Height, RGB8)
	if err != nil {
		return nil, err
	}

	full := float64(info.MaxValue)
	back := bg.channels()
	for p := 0; p < b.Pixels(); p++ {
		src := b.Samples[p*4 : p*4+4]
		dst := out.Samples[p*3 : p*3+3]
		a := float64(src[info.AlphaIndex]) / full
		for c := 0; c < 3; c++ {
			v := float64(back[c])*(1-a) + float64(src[c])*a
			dst[c] = uint16(math.Round(v))
		}
	}
	return out, nil
}
