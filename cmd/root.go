package cmd

import (
	"context"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/soocke/wallpreview-go/config"
)

// DefaultConfigPath is used when --config is not given.
const DefaultConfigPath = "wallpreview.json"

// RunOptions is what the run command hands to the shell.
type RunOptions struct {
	Config     *config.Config
	ConfigPath string
	Portrait   string
	Landscape  string
}

// Runner launches the desktop shell and blocks until it exits.
type Runner func(ctx context.Context, opts RunOptions, logger *slog.Logger) error

type rootFlags struct {
	configPath string
}

// NewRootCmd builds the command tree. runner backs the run subcommand.
func NewRootCmd(runner Runner) *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "wallpreview",
		Short: "Preview artwork at true scale on your wall",
		Long: `Wallpreview overlays a print, at its physical size, on a live camera view
of your wall. Place it with a click, zoom it, and switch between sizes.

Settings come from a JSON config file and WALLPREVIEW_* environment variables.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", DefaultConfigPath, "Path to the JSON config file")

	cmd.AddCommand(newRunCmd(flags, runner))
	cmd.AddCommand(newSizesCmd(flags))
	cmd.AddCommand(newConvertCmd(flags))

	return cmd
}

// loadConfig reads the config named by --config. A broken file is reported
// and replaced by defaults.
func loadConfig(cmd *cobra.Command, flags *rootFlags) *config.Config {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		cmd.PrintErrf("config: %v (using defaults)\n", err)
		_ = cfg.Validate()
	}
	return cfg
}
