// Operation registry: the one table naming every transform, the modes it
// accepts and what it produces. The CLI builds its help from it and Apply
// validates against it, so adding an operation starts here.

package texture

// Operation names.
const (
	OpInvertChannels     = "invert-channels"
	OpConvertHandedness  = "convert-handedness"
	OpInvertDisplacement = "invert-displacement"
	OpRemoveAlpha        = "remove-alpha"
	OpClassifyHandedness = "classify-handedness"
)

// OutputSameAsInput marks operations whose output mode equals the input mode.
const OutputSameAsInput = "same as input"

// OutputReport marks operations that only report and produce no image.
const OutputReport = "n/a (report only)"

// ArgSpec describes a command-line argument of an operation, for help text.
type ArgSpec struct {
	Name        string
	Type        string // "path", "mask", "color", "float_or_percent"
	Required    bool
	Default     string
	Description string
}

// OperationSpec describes one operation.
type OperationSpec struct {
	Name        string
	Args        []ArgSpec
	Usage       string
	Description string
	Accepts     []Mode
	Output      string
}

// Accepted reports whether m is an accepted input mode.
func (s OperationSpec) Accepted(m Mode) bool {
	return containsMode(s.Accepts, m)
}

var (
	inputArg  = ArgSpec{"input", "path", true, "", "input PNG (\"/\" picks one with fzf)"}
	outputArg = ArgSpec{"output", "path", true, "", "output PNG"}
)

// Operations is the authoritative list of operations.
var Operations = []OperationSpec{
	{
		Name:        OpInvertChannels,
		Args:        []ArgSpec{inputArg, outputArg, {"channels", "mask", false, "all colour channels", "channels to invert, e.g. r,g,b,a"}},
		Usage:       "invert-channels --input <path> --output <path> [--channels r,g,b,a]",
		Description: "Invert selected channels (max - value) at the image's own bit depth.",
		Accepts:     []Mode{RGB8, RGBA8, Gray8, Gray16},
		Output:      OutputSameAsInput,
	},
	{
		Name:        OpConvertHandedness,
		Args:        []ArgSpec{inputArg, outputArg},
		Usage:       "convert-handedness --input <path> --output <path>",
		Description: "Convert a normal map between DirectX and OpenGL conventions by inverting green.",
		Accepts:     []Mode{RGB8, RGBA8},
		Output:      OutputSameAsInput,
	},
	{
		Name:        OpInvertDisplacement,
		Args:        []ArgSpec{inputArg, outputArg},
		Usage:       "invert-displacement --input <path> --output <path>",
		Description: "Invert a displacement map (every colour channel).",
		Accepts:     []Mode{RGB8, Gray16},
		Output:      OutputSameAsInput,
	},
	{
		Name:        OpRemoveAlpha,
		Args:        []ArgSpec{inputArg, outputArg, {"background", "color", false, "255,255,255", "background as r,g,b, #rrggbb or a colour name"}},
		Usage:       "remove-alpha --input <path> --output <path> [--background r,g,b]",
		Description: "Composite an RGBA image over an opaque background and drop alpha.",
		Accepts:     []Mode{RGBA8},
		Output:      RGB8.String(),
	},
	{
		Name:        OpClassifyHandedness,
		Args:        []ArgSpec{inputArg, {"threshold", "float_or_percent", false, "0.5", "mean-green threshold in [0,1] or percent"}},
		Usage:       "classify-handedness --input <path> [--threshold 0.5]",
		Description: "Guess whether a normal map is DirectX or OpenGL from its mean green (advisory).",
		Accepts:     []Mode{RGB8, RGBA8},
		Output:      OutputReport,
	},
}

// LookupOperation finds an operation by name.
func LookupOperation(name string) (OperationSpec, bool) {
	for _, op := range Operations {
		if op.Name == name {
			return op, true
		}
	}
	return OperationSpec{}, false
}
