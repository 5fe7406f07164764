package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soocke/wallpreview-go/assets"
)

func newConvertCmd(flags *rootFlags) *cobra.Command {
	sf := &sizingFlags{}
	var sizeID string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Print the on-screen size of one catalog entry",
		Example: `  wallpreview convert --size 16x20
  wallpreview convert --size 24x36 --mode calibrated --profile close --zoom 1.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sizeID == "" {
				return errors.New("--size is required")
			}
			cfg := loadConfig(cmd, flags)
			catalog, err := assets.LoadCatalog(cfg.CatalogPath, cfg.DefaultSize)
			if err != nil {
				return err
			}
			opt, ok := catalog.Find(sizeID)
			if !ok {
				return fmt.Errorf("unknown size %q", sizeID)
			}
			conv, profile, err := sf.resolve(cfg)
			if err != nil {
				return err
			}
			d := conv.DisplaySize(opt, profile, sf.zoom)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (%gx%g in): %s px (%.2f x %.2f)\n",
				opt.Label, opt.WidthInches, opt.HeightInches, pixels(d), d.WidthPx, d.HeightPx)
			return err
		},
	}
	cmd.Flags().StringVar(&sizeID, "size", "", "Size id from the catalog")
	sf.register(cmd)
	return cmd
}
