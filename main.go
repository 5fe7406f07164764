package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/soocke/wallpreview-go/app"
	"github.com/soocke/wallpreview-go/cmd"
)

var version = "dev"

func runShell(ctx context.Context, opts cmd.RunOptions, logger *slog.Logger) error {
	return app.Run(ctx, app.Options{
		Title:      "Wall Preview",
		Config:     opts.Config,
		ConfigPath: opts.ConfigPath,
		Portrait:   opts.Portrait,
		Landscape:  opts.Landscape,
	}, logger)
}

func main() {
	if err := fang.Execute(
		context.Background(),
		cmd.NewRootCmd(runShell),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
