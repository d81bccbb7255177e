package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/Fepozopo/textools/pkg/codec"
	"github.com/Fepozopo/textools/pkg/texture"
)

// PrintInfo writes the metadata report for a decoded image.
func PrintInfo(w io.Writer, info codec.Info) {
	row := func(k string, v any) { fmt.Fprintf(w, "%-13s: %v\n", k, v) }
	mode, as, bands := "unsupported", fmt.Sprintf("%d-bit %s", info.BitDepth, info.ColorType), "()"
	if mi, err := texture.Describe(info.Mode); err == nil && info.Supported {
		mode, as, bands = mi.Name, mi.Description, "("+strings.Join(mi.Bands, ", ")+")"
	}
	row("image", info.Path)
	row("mode", mode)
	row("as", as)
	row("format", info.Format)
	row("size", fmt.Sprintf("(%d, %d)", info.Width, info.Height))
	row("width", info.Width)
	row("height", info.Height)
	row("bands", bands)
	row("bit depth", info.BitDepth)
	row("color type", info.ColorType)
	row("interlaced", info.Interlaced)
	row("chunks", strings.Join(info.Chunks, ", "))
	row("transparency", info.Transparency)
}

// PrintClassification writes the classifier verdict.
func PrintClassification(w io.Writer, c texture.Classification) {
	fmt.Fprintf(w, "Normal map format: %s\n", c)
	fmt.Fprintln(w, "note: this is a heuristic; maps with a mean green near the threshold may be misclassified")
}
