package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Fepozopo/textools/pkg/internal/log"
	"github.com/Fepozopo/textools/pkg/texture"
)

// NewRootCmd builds the textools command tree. Environment defaults are read
// when a command runs, so a fresh tree sees the current environment.
func NewRootCmd() *cobra.Command {
	cfg := &Config{}
	var debug, preview bool

	root := &cobra.Command{
		Use:           "textools",
		Short:         "Texture map utilities: channel inversion, alpha removal, normal map handedness",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := LoadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("debug") {
				c.Debug = debug
			}
			if cmd.Flags().Changed("preview") {
				c.Preview = preview
			}
			*cfg = c
			log.SetOutput(cmd.OutOrStdout())
			log.SetDebug(cfg.Debug)
			previewDebug.Store(cfg.PreviewDebug)
			log.Debugf("config: input=%q output=%q preview=%v", cfg.Input, cfg.Output, cfg.Preview)
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging (env "+EnvDebug+")")
	root.PersistentFlags().BoolVar(&preview, "preview", false, "show the result in the terminal (env "+EnvPreview+")")
	root.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", texture.ErrInvalidArgument, err)
	})

	root.AddCommand(
		newInvertChannelsCmd(cfg),
		newConvertHandednessCmd(cfg),
		newInvertDisplacementCmd(cfg),
		newRemoveAlphaCmd(cfg),
		newClassifyHandednessCmd(cfg),
		newInfoCmd(cfg),
		newVersionCmd(),
		newUpdateCmd(),
	)
	return root
}

// Execute runs textools with the process arguments and returns the exit
// code: 0 on success, 1 on any error.
func Execute() int {
	loadDotEnv()
	return run(NewRootCmd(), os.Args[1:], os.Stdout, os.Stdin)
}

func run(root *cobra.Command, args []string, out io.Writer, in io.Reader) int {
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(out)
	root.SetIn(in)
	defer log.SetOutput(os.Stdout)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return 1
	}
	return 0
}

// noArgs rejects positional arguments; every input goes through flags.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: unexpected argument %q for %s", texture.ErrInvalidArgument, args[0], cmd.CommandPath())
	}
	return nil
}
