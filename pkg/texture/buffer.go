package texture

import (
	"fmt"
	"strings"
)

// Buffer is a decoded image: channel-interleaved samples in row-major order.
// Samples are stored as uint16 for every mode; 8-bit modes never exceed 255.
type Buffer struct {
	Width   int
	Height  int
	Mode    Mode
	Samples []uint16
}

// NewBuffer allocates a zeroed buffer of the given size and mode.
func NewBuffer(width, height int, mode Mode) (*Buffer, error) {
	info, err := Describe(mode)
	if err != nil {
		return nil, err
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: negative size %dx%d", ErrInvalidArgument, width, height)
	}
	return &Buffer{
		Width:   width,
		Height:  height,
		Mode:    mode,
		Samples: make([]uint16, width*height*info.Channels),
	}, nil
}

// Pixels returns width*height.
func (b *Buffer) Pixels() int {
	return b.Width * b.Height
}

// Clone returns a deep copy of b that shares no sample storage.
func (b *Buffer) Clone() *Buffer {
	if b == nil {
		return nil
	}
	out := &Buffer{Width: b.Width, Height: b.Height, Mode: b.Mode, Samples: make([]uint16, len(b.Samples))}
	copy(out.Samples, b.Samples)
	return out
}

// PixOffset returns the index of the first sample of pixel (x, y).
func (b *Buffer) PixOffset(x, y int) int {
	info, err := Describe(b.Mode)
	if err != nil {
		return -1
	}
	return (y*b.Width + x) * info.Channels
}

// Equal reports whether a and b have the same geometry, mode and samples.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.Width != o.Width || b.Height != o.Height || b.Mode != o.Mode || len(b.Samples) != len(o.Samples) {
		return false
	}
	for i := range b.Samples {
		if b.Samples[i] != o.Samples[i] {
			return false
		}
	}
	return true
}

// Validate checks that b is well formed and that its mode is one of allowed.
// It must pass before any transform runs on b.
func Validate(b *Buffer, allowed ...Mode) error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidArgument)
	}
	info, err := Describe(b.Mode)
	if err != nil {
		return err
	}
	if !containsMode(allowed, b.Mode) {
		names := make([]string, len(allowed))
		for i, m := range allowed {
			names[i] = m.String()
		}
		return fmt.Errorf("%w: input image must be one of %s, is: %s", ErrInvalidMode, strings.Join(names, ", "), b.Mode)
	}
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrInvalidMode, b.Width, b.Height)
	}
	if want := b.Width * b.Height * info.Channels; len(b.Samples) != want {
		return fmt.Errorf("%w: %d samples for %dx%d %s, want %d", ErrInvalidMode, len(b.Samples), b.Width, b.Height, b.Mode, want)
	}
	for i, v := range b.Samples {
		if v > info.MaxValue {
			return fmt.Errorf("%w: sample %d is %d, above %s maximum %d", ErrInvalidMode, i, v, b.Mode, info.MaxValue)
		}
	}
	return nil
}

// Channel returns a copy of the samples of channel index, one per pixel.
func (b *Buffer) Channel(index int) ([]uint16, error) {
	info, err := b.checkChannel(index)
	if err != nil {
		return nil, err
	}
	out := make([]uint16, b.Pixels())
	for p := range out {
		out[p] = b.Samples[p*info.Channels+index]
	}
	return out, nil
}

// SetChannel overwrites channel index with values, one per pixel. b is left
// untouched when any value is out of range.
func (b *Buffer) SetChannel(index int, values []uint16) error {
	info, err := b.checkChannel(index)
	if err != nil {
		return err
	}
	if len(values) != b.Pixels() {
		return fmt.Errorf("%w: %d values for %d pixels", ErrInvalidArgument, len(values), b.Pixels())
	}
	for i, v := range values {
		if v > info.MaxValue {
			return fmt.Errorf("%w: value %d at %d exceeds %d", ErrInvalidArgument, v, i, info.MaxValue)
		}
	}
	for p, v := range values {
		b.Samples[p*info.Channels+index] = v
	}
	return nil
}

func (b *Buffer) checkChannel(index int) (ModeInfo, error) {
	info, err := Describe(b.Mode)
	if err != nil {
		return ModeInfo{}, err
	}
	if index < 0 || index >= info.Channels {
		return ModeInfo{}, fmt.Errorf("%w: channel %d out of range for %s (%d channels)", ErrInvalidArgument, index, b.Mode, info.Channels)
	}
	if len(b.Samples) != b.Pixels()*info.Channels {
		return ModeInfo{}, fmt.Errorf("%w: sample count does not match %dx%d %s", ErrInvalidMode, b.Width, b.Height, b.Mode)
	}
	return info, nil
}
