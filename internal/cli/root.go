// Package cli implements the skyscape command-line interface.
//
// The default command opens the animated sky in a window. term runs the
// same sky in the terminal, simulate steps it headlessly and reports what
// each layer drew, and config prints the effective configuration.
//
// Every command accepts --config for a TOML file and --verbose for debug
// logging. Loggers are passed through context.Context.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"skyscape/internal/config"
	"skyscape/internal/sky"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	verbose       bool
	configPath    string
	device        string
	reducedMotion bool
	hiddenPolicy  string
	layers        []string

	cfg config.Config
}

// Execute runs the skyscape CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "skyscape",
		Short:        "Skyscape draws an animated night sky",
		Long:         `Skyscape draws a layered, animated sky of twinkling stars, drifting nebula dust, daytime clouds and pointer-reactive particles, in a window or in the terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd.Context(), opts)
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	pf.StringVar(&opts.device, "device", "", "device class: auto, desktop or mobile")
	pf.BoolVar(&opts.reducedMotion, "reduced-motion", false, "paint once and never animate")
	pf.StringVar(&opts.hiddenPolicy, "hidden-policy", "", "layers paused while hidden: stars or all")
	pf.StringSliceVar(&opts.layers, "layers", nil, "layers to draw (star, nebula, cloud, interactive)")

	root.AddCommand(newWindowCmd(opts))
	root.AddCommand(newTermCmd(opts))
	root.AddCommand(newSimulateCmd(opts))
	root.AddCommand(newConfigCmd(opts))

	return root
}

// load reads the configuration file and applies the flags that were set.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("device") {
		cfg.Device = o.device
	}
	if flags.Changed("reduced-motion") {
		cfg.ReducedMotion = o.reducedMotion
	}
	if flags.Changed("hidden-policy") {
		cfg.HiddenPolicy = o.hiddenPolicy
	}
	if flags.Changed("layers") {
		cfg.Layers = o.layers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

// skyOptions resolves the startup capabilities of the sky.
func (o *rootOptions) skyOptions(ctx context.Context) (sky.Options, error) {
	caps, err := o.cfg.Resolve()
	if err != nil {
		return sky.Options{}, err
	}
	policy, err := o.cfg.Policy()
	if err != nil {
		return sky.Options{}, err
	}
	return sky.Options{
		Device:        caps.Device,
		ReducedMotion: caps.ReducedMotion,
		Counts:        o.cfg.CountsFor(caps.Device),
		HiddenPolicy:  policy,
		Debounce:      o.cfg.ResizeDebounce.Duration,
		Logger:        loggerFromContext(ctx),
	}, nil
}
