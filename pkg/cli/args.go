package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Fepozopo/textools/pkg/texture"
)

// channelLetters maps channel names accepted on the command line to indices.
var channelLetters = map[string]int{
	"r": 0, "red": 0,
	"g": 1, "green": 1,
	"b": 2, "blue": 2,
	"a": 3, "alpha": 3,
	"l": 0, "i": 0,
}

// namedColors are the background colour names accepted by ParseBackground.
var namedColors = map[string]texture.Color{
	"white": {R: 255, G: 255, B: 255},
	"black": {R: 0, G: 0, B: 0},
	"gray":  {R: 128, G: 128, B: 128},
	"grey":  {R: 128, G: 128, B: 128},
	"red":   {R: 255, G: 0, B: 0},
	"green": {R: 0, G: 255, B: 0},
	"blue":  {R: 0, G: 0, B: 255},
}

// ParseChannelMask parses a comma separated channel list such as "r,g,b",
// "g" or "0,3". Letters and indices may be mixed; "rgb" is accepted too.
// Whether an index exists in the image's mode is checked by the transform.
func ParseChannelMask(s string) (texture.ChannelMask, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, fmt.Errorf("%w: empty channel list", texture.ErrInvalidArgument)
	}
	var parts []string
	if !strings.ContainsAny(s, ", ") && isLetterRun(s) && len(s) > 1 {
		if _, ok := channelLetters[s]; !ok {
			for _, r := range s {
				parts = append(parts, string(r))
			}
		}
	}
	if parts == nil {
		parts = strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	}

	var mask texture.ChannelMask
	for _, p := range parts {
		if idx, ok := channelLetters[p]; ok {
			mask |= texture.MaskOf(idx)
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 7 {
			return 0, fmt.Errorf("%w: unknown channel %q", texture.ErrInvalidArgument, p)
		}
		mask |= texture.MaskOf(n)
	}
	if mask == 0 {
		return 0, fmt.Errorf("%w: empty channel list", texture.ErrInvalidArgument)
	}
	return mask, nil
}

func isLetterRun(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// ParseBackground parses "r,g,b", "#rrggbb" or a colour name.
func ParseBackground(s string) (texture.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 {
			return texture.Color{}, fmt.Errorf("%w: invalid colour %q", texture.ErrInvalidArgument, s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return texture.Color{}, fmt.Errorf("%w: invalid colour %q", texture.ErrInvalidArgument, s)
		}
		return texture.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return texture.Color{}, fmt.Errorf("%w: background must be r,g,b, got %q", texture.ErrInvalidArgument, s)
	}
	var out [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return texture.Color{}, fmt.Errorf("%w: background component %q is not in 0..255", texture.ErrInvalidArgument, p)
		}
		out[i] = uint8(v)
	}
	return texture.Color{R: out[0], G: out[1], B: out[2]}, nil
}

// ParseThreshold parses a classifier threshold given as a fraction ("0.5")
// or a percentage ("50%"). The result must lie in [0,1].
func ParseThreshold(s string) (float64, error) {
	raw := strings.TrimSpace(s)
	f, err := parsePercentValue(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: threshold: %v", texture.ErrInvalidArgument, err)
	}
	if math.IsNaN(f) || f < 0 || f > 1 {
		return 0, fmt.Errorf("%w: threshold %s is outside [0,1]", texture.ErrInvalidArgument, raw)
	}
	return f, nil
}

// parseBoolLike accepts common truthy/falsy forms.
func parseBoolLike(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean: %q", s)
	}
}

// parsePercentValue parses a percent string like "3%" as 0.03, or a bare
// number as is.
func parsePercentValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid percent value: %q", s)
		}
		return f / 100, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid percent/float value: %q", s)
	}
	return f, nil
}

// GenerateTooltip produces the long help text of an operation from its
// registry entry.
func GenerateTooltip(op texture.OperationSpec) string {
	var sb strings.Builder
	if op.Description != "" {
		sb.WriteString(op.Description)
	} else {
		sb.WriteString("No description")
	}
	modes := make([]string, len(op.Accepts))
	for i, m := range op.Accepts {
		modes[i] = m.String()
	}
	fmt.Fprintf(&sb, "\n\nAccepts: %s\nOutput: %s\n", strings.Join(modes, ", "), op.Output)
	if len(op.Args) == 0 {
		return strings.TrimSpace(sb.String())
	}
	sb.WriteString("\nParameters:\n")
	for _, a := range op.Args {
		req := "optional"
		if a.Required {
			req = "required"
		}
		fmt.Fprintf(&sb, "- %s (%s, %s)", a.Name, a.Type, req)
		if a.Description != "" {
			sb.WriteString(": " + a.Description)
		}
		if a.Default != "" {
			sb.WriteString(" (default: " + a.Default + ")")
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}
