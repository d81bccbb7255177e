package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Fepozopo/textools/pkg/codec"
	"github.com/Fepozopo/textools/pkg/internal/log"
	"github.com/Fepozopo/textools/pkg/texture"
)

// pathFlags are the --input/--output flags shared by the image commands.
type pathFlags struct {
	input  string
	output string
}

func (p *pathFlags) bind(cmd *cobra.Command, withOutput bool) {
	cmd.Flags().StringVarP(&p.input, "input", "i", "", "input PNG, \"/\" to pick one with fzf (env "+EnvInput+")")
	if withOutput {
		cmd.Flags().StringVarP(&p.output, "output", "o", "", "output PNG (env "+EnvOutput+")")
	}
}

// inputPath resolves --input against the environment default.
func (p *pathFlags) inputPath(cmd *cobra.Command, cfg *Config) (string, error) {
	in := p.input
	if in == "" {
		in = cfg.Input
	}
	if in == "" {
		return "", fmt.Errorf("%w: missing --input", texture.ErrInvalidArgument)
	}
	return resolveInputPath(cmd.InOrStdin(), cmd.OutOrStdout(), in)
}

// outputPath resolves --output against the environment default.
func (p *pathFlags) outputPath(cfg *Config) (string, error) {
	out := p.output
	if out == "" {
		out = cfg.Output
	}
	if out == "" {
		return "", fmt.Errorf("%w: missing --output", texture.ErrInvalidArgument)
	}
	return out, nil
}

// operationCmd builds a command whose help comes from the operation registry.
func operationCmd(name string) *cobra.Command {
	op, _ := texture.LookupOperation(name)
	return &cobra.Command{
		Use:   op.Name,
		Short: op.Description,
		Long:  GenerateTooltip(op),
		Args:  noArgs,
	}
}

// runTransform decodes the input, applies req and writes the result. The
// output file is only created once the transform has succeeded.
func runTransform(cmd *cobra.Command, cfg *Config, paths *pathFlags, req texture.Request, withInfo bool) error {
	out, err := paths.outputPath(cfg)
	if err != nil {
		return err
	}
	in, err := paths.inputPath(cmd, cfg)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	buf, info, err := codec.Decode(in)
	if withInfo && info.Format != "" {
		PrintInfo(w, info)
	}
	if err != nil {
		return err
	}
	log.Debugf("%s: decoded %s (%dx%d %s)", req.Operation(), in, buf.Width, buf.Height, buf.Mode)

	res, err := texture.Apply(buf, req)
	if err != nil {
		return err
	}
	if err := codec.Encode(out, res.Buffer); err != nil {
		return err
	}
	fmt.Fprintf(w, "converted image saved to %s\n", out)
	showPreview(cmd, cfg, res.Buffer)
	return nil
}

// showPreview renders buf when previews are enabled. Failures are logged and
// never fail the command.
func showPreview(cmd *cobra.Command, cfg *Config, buf *texture.Buffer) {
	if !cfg.Preview {
		return
	}
	if err := PreviewBuffer(cmd.OutOrStdout(), buf); err != nil {
		log.Warningf("preview unavailable: %v", err)
	}
}

func newInvertChannelsCmd(cfg *Config) *cobra.Command {
	var paths pathFlags
	var channels string
	cmd := operationCmd(texture.OpInvertChannels)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		var mask texture.ChannelMask
		if cmd.Flags().Changed("channels") {
			m, err := ParseChannelMask(channels)
			if err != nil {
				return err
			}
			mask = m
		}
		return runTransform(cmd, cfg, &paths, texture.InvertChannelsRequest{Mask: mask}, false)
	}
	paths.bind(cmd, true)
	cmd.Flags().StringVarP(&channels, "channels", "c", "", "channels to invert, e.g. r,g,b,a (default: every colour channel)")
	return cmd
}

func newConvertHandednessCmd(cfg *Config) *cobra.Command {
	var paths pathFlags
	cmd := operationCmd(texture.OpConvertHandedness)
	cmd.Aliases = []string{"dx-to-gl", "gl-to-dx"}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runTransform(cmd, cfg, &paths, texture.ConvertHandedness(), false)
	}
	paths.bind(cmd, true)
	return cmd
}

func newInvertDisplacementCmd(cfg *Config) *cobra.Command {
	var paths pathFlags
	cmd := operationCmd(texture.OpInvertDisplacement)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runTransform(cmd, cfg, &paths, texture.InvertDisplacement(), false)
	}
	paths.bind(cmd, true)
	return cmd
}

func newRemoveAlphaCmd(cfg *Config) *cobra.Command {
	var paths pathFlags
	var background string
	cmd := operationCmd(texture.OpRemoveAlpha)
	cmd.Aliases = []string{"rgba-to-rgb"}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		var bg texture.Color
		var err error
		if cmd.Flags().Changed("background") {
			bg, err = ParseBackground(background)
		} else {
			bg, err = cfg.BackgroundColor()
		}
		if err != nil {
			return err
		}
		return runTransform(cmd, cfg, &paths, texture.RemoveAlphaRequest{Background: bg}, true)
	}
	paths.bind(cmd, true)
	cmd.Flags().StringVarP(&background, "background", "b", "", "background colour as r,g,b, #rrggbb or a name (env "+EnvBackground+", default 255,255,255)")
	return cmd
}

func newClassifyHandednessCmd(cfg *Config) *cobra.Command {
	var paths pathFlags
	var threshold string
	cmd := operationCmd(texture.OpClassifyHandedness)
	cmd.Aliases = []string{"detect-handedness"}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		var t float64
		var err error
		if cmd.Flags().Changed("threshold") {
			t, err = ParseThreshold(threshold)
		} else {
			t, err = cfg.ThresholdValue()
		}
		if err != nil {
			return err
		}
		in, err := paths.inputPath(cmd, cfg)
		if err != nil {
			return err
		}
		buf, _, err := codec.Decode(in)
		if err != nil {
			return err
		}
		res, err := texture.Apply(buf, texture.ClassifyHandednessRequest{Threshold: t})
		if err != nil {
			return err
		}
		PrintClassification(cmd.OutOrStdout(), *res.Classification)
		showPreview(cmd, cfg, buf)
		return nil
	}
	paths.bind(cmd, false)
	cmd.Flags().StringVarP(&threshold, "threshold", "t", "", "mean-green threshold in [0,1] or a percentage (env "+EnvThreshold+", default 0.5)")
	return cmd
}

func newInfoCmd(cfg *Config) *cobra.Command {
	var paths pathFlags
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print the metadata of a PNG image",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := paths.inputPath(cmd, cfg)
			if err != nil {
				return err
			}
			buf, info, err := codec.Decode(in)
			if info.Format != "" {
				PrintInfo(cmd.OutOrStdout(), info)
			}
			if err != nil {
				return err
			}
			showPreview(cmd, cfg, buf)
			return nil
		},
	}
	paths.bind(cmd, false)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the textools version",
		Args:  noArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "textools %s\n", Version)
		},
	}
}

func newUpdateCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Check GitHub for a newer release and update in place",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return CheckForUpdates(cmd.OutOrStdout(), cmd.InOrStdin(), yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "update without asking")
	return cmd
}
