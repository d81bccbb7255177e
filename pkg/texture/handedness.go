package texture

import (
	"fmt"
	"math"
)

// Handedness is the Y-axis convention of a tangent-space normal map.
type Handedness int

const (
	DirectX Handedness = iota
	OpenGL
)

func (h Handedness) String() string {
	if h == DirectX {
		return "DirectX"
	}
	return "OpenGL"
}

// Abbrev returns "DX" or "GL".
func (h Handedness) Abbrev() string {
	if h == DirectX {
		return "DX"
	}
	return "GL"
}

// DefaultThreshold is the midpoint used when no threshold is configured.
const DefaultThreshold = 0.5

// GreenChannel is the channel read by Classify.
const GreenChannel = 1

// Classification is the advisory result of Classify.
type Classification struct {
	Handedness Handedness
	Mean       float64 // mean green intensity in [0,1]
	Threshold  float64
}

func (c Classification) String() string {
	if c.Handedness == DirectX {
		return fmt.Sprintf("%s (%s) - mean greens %v < %v", c.Handedness, c.Handedness.Abbrev(), c.Mean, c.Threshold)
	}
	return fmt.Sprintf("%s (%s) - mean greens %v >= %v", c.Handedness, c.Handedness.Abbrev(), c.Mean, c.Threshold)
}

// Classify guesses a normal map's handedness from the mean of its green
// channel: DirectX maps tend to be darker in green, OpenGL maps brighter.
// A mean below threshold is DirectX, anything else (including a tie) is
// OpenGL. This is a heuristic over the channel's distribution; maps near the
// threshold are easily misclassified and the result is advisory only.
func Classify(b *Buffer, threshold float64) (Classification, error) {
	if err := Validate(b, Modes...); err != nil {
		return Classification{}, err
	}
	info, _ := Describe(b.Mode)
	if info.Channels <= GreenChannel {
		return Classification{}, fmt.Errorf("%w: %s has no green channel", ErrInvalidMode, b.Mode)
	}
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return Classification{}, fmt.Errorf("%w: threshold %v outside [0,1]", ErrInvalidArgument, threshold)
	}
	n := b.Pixels()
	if n == 0 {
		return Classification{}, fmt.Errorf("%w: image has no pixels", ErrInvalidArgument)
	}

	var sum uint64
	for i := GreenChannel; i < len(b.Samples); i += info.Channels {
		sum += uint64(b.Samples[i])
	}
	mean := float64(sum) / float64(n) / float64(info.MaxValue)

	res := Classification{Handedness: OpenGL, Mean: mean, Threshold: threshold}
	if mean < threshold {
		res.Handedness = DirectX
	}
	return res, nil
}
