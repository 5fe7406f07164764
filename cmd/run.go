package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

func newRunCmd(flags *rootFlags, runner Runner) *cobra.Command {
	var portrait, landscape string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the preview window",
		Example: `  # Start with an empty upload screen
  wallpreview run

  # Preload both artwork versions
  wallpreview run --portrait tall.jpg --landscape wide.jpg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runner == nil {
				return errors.New("no shell available in this build")
			}
			cfg := loadConfig(cmd, flags)
			logger := NewLogger(cmd.OutOrStdout(), cfg.Debug)
			return runner(cmd.Context(), RunOptions{
				Config:     cfg,
				ConfigPath: flags.configPath,
				Portrait:   portrait,
				Landscape:  landscape,
			}, logger)
		},
	}

	cmd.Flags().StringVar(&portrait, "portrait", "", "Portrait image to load at start")
	cmd.Flags().StringVar(&landscape, "landscape", "", "Landscape image to load at start")

	return cmd
}
