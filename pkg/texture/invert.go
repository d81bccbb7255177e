package texture

import (
	"fmt"
	"strings"
)

// ChannelMask is a set of channel indices; bit i selects channel i.
type ChannelMask uint8

const (
	MaskR ChannelMask = 1 << iota
	MaskG
	MaskB
	MaskA
)

// MaskOf builds a mask from channel indices.
func MaskOf(indices ...int) ChannelMask {
	var m ChannelMask
	for _, i := range indices {
		if i >= 0 && i < 8 {
			m |= 1 << i
		}
	}
	return m
}

// Has reports whether channel i is in the mask.
func (m ChannelMask) Has(i int) bool {
	return i >= 0 && i < 8 && m&(1<<i) != 0
}

// Indices returns the selected channel indices in ascending order.
func (m ChannelMask) Indices() []int {
	var out []int
	for i := 0; i < 8; i++ {
		if m.Has(i) {
			out = append(out, i)
		}
	}
	return out
}

func (m ChannelMask) String() string {
	letters := []string{"r", "g", "b", "a"}
	parts := make([]string, 0, 4)
	for _, i := range m.Indices() {
		if i < len(letters) {
			parts = append(parts, letters[i])
		} else {
			parts = append(parts, fmt.Sprint(i))
		}
	}
	return strings.Join(parts, ",")
}

// Invert returns a copy of b where every sample of each channel in mask is
// replaced by max-v, max being the mode's maximum sample value. Applying it
// twice with the same mask restores b exactly. b itself is never modified.
func Invert(b *Buffer, mask ChannelMask) (*Buffer, error) {
	if err := Validate(b, Modes...); err != nil {
		return nil, err
	}
	info, _ := Describe(b.Mode)
	if mask == 0 {
		return nil, fmt.Errorf("%w: empty channel mask", ErrInvalidArgument)
	}
	if mask>>info.Channels != 0 {
		return nil, fmt.Errorf("%w: channel mask %s exceeds %s (%d channels)", ErrInvalidArgument, mask, b.Mode, info.Channels)
	}

	out := b.Clone()
	n := info.Channels
	for c := 0; c < n; c++ {
		if !mask.Has(c) {
			continue
		}
		for i := c; i < len(out.Samples); i += n {
			out.Samples[i] = info.MaxValue - out.Samples[i]
		}
	}
	return out, nil
}
