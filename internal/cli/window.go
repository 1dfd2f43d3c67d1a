package cli

import (
	"context"

	"github.com/spf13/cobra"

	"skyscape/internal/app"
)

func newWindowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "Open the sky in a window (default)",
		Long: `Open the sky in a resizable window.

Keys: Enter or click to dismiss the splash, M or Space to toggle music,
T to switch theme, F to maximize and Esc to restore.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd.Context(), opts)
		},
	}
}

func runWindow(ctx context.Context, opts *rootOptions) error {
	logger := loggerFromContext(ctx)
	so, err := opts.skyOptions(ctx)
	if err != nil {
		return err
	}
	g, err := app.New(opts.cfg, so)
	if err != nil {
		return err
	}
	logger.Debug("opening window", "width", opts.cfg.Width, "height", opts.cfg.Height, "device", so.Device)
	return app.Run(g)
}
