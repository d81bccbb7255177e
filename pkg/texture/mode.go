package texture

import "fmt"

// Mode is a pixel layout supported by the toolkit.
type Mode int

const (
	Gray8 Mode = iota
	RGB8
	RGBA8
	Gray16
)

// Modes lists every registered mode in registry order.
var Modes = []Mode{Gray8, RGB8, RGBA8, Gray16}

// ModeInfo is the registry entry for a Mode.
type ModeInfo struct {
	Mode        Mode
	Name        string
	BitDepth    int
	Channels    int
	MaxValue    uint16
	Bands       []string
	AlphaIndex  int // -1 when the mode carries no alpha channel
	Description string
}

// Describe returns the registry entry for m.
func Describe(m Mode) (ModeInfo, error) {
	switch m {
	case Gray8:
		return ModeInfo{m, "Gray8", 8, 1, 0xff, []string{"L"}, -1, "8-bit pixels, grayscale"}, nil
	case RGB8:
		return ModeInfo{m, "RGB8", 8, 3, 0xff, []string{"R", "G", "B"}, -1, "3x8-bit pixels, true color"}, nil
	case RGBA8:
		return ModeInfo{m, "RGBA8", 8, 4, 0xff, []string{"R", "G", "B", "A"}, 3, "4x8-bit pixels, true color with transparency mask"}, nil
	case Gray16:
		return ModeInfo{m, "Gray16", 16, 1, 0xffff, []string{"I"}, -1, "16-bit unsigned integer pixels, grayscale"}, nil
	}
	return ModeInfo{}, fmt.Errorf("%w: %d", ErrUnsupportedMode, int(m))
}

func (m Mode) String() string {
	info, err := Describe(m)
	if err != nil {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return info.Name
}

// ParseMode looks a mode up by its registry name (case-sensitive).
func ParseMode(name string) (Mode, error) {
	for _, m := range Modes {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedMode, name)
}

// ColorMask returns the mask of every non-alpha channel of m.
func ColorMask(m Mode) (ChannelMask, error) {
	info, err := Describe(m)
	if err != nil {
		return 0, err
	}
	var mask ChannelMask
	for c := 0; c < info.Channels; c++ {
		if c != info.AlphaIndex {
			mask |= 1 << c
		}
	}
	return mask, nil
}

func containsMode(modes []Mode, m Mode) bool {
	for _, x := range modes {
		if x == m {
			return true
		}
	}
	return false
}
