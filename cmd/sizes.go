package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/soocke/wallpreview-go/assets"
	"github.com/soocke/wallpreview-go/config"
	"github.com/soocke/wallpreview-go/domain/sizing"
)

// sizingFlags are shared by sizes and convert.
type sizingFlags struct {
	profile string
	zoom    float64
	mode    string
}

func (f *sizingFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.profile, "profile", "", "Calibration profile id (used in calibrated mode)")
	cmd.Flags().Float64Var(&f.zoom, "zoom", sizing.DefaultZoom, "Zoom factor, clamped to [0.5, 2.0]")
	cmd.Flags().StringVar(&f.mode, "mode", "", "Scale mode override: fixed or calibrated")
}

// resolve returns the converter and the calibration profile to apply.
func (f *sizingFlags) resolve(cfg *config.Config) (sizing.Converter, *sizing.CalibrationProfile, error) {
	conv := cfg.Converter()
	if f.mode != "" {
		conv.Policy = sizing.ParsePolicy(f.mode)
	}
	id := f.profile
	if id == "" {
		id = cfg.DefaultProfile
	}
	p, ok := sizing.FindProfile(cfg.CalibrationProfiles(), id)
	if !ok {
		if f.profile != "" {
			return conv, nil, fmt.Errorf("unknown profile %q", f.profile)
		}
		return conv, nil, nil
	}
	return conv, &p, nil
}

func newSizesCmd(flags *rootFlags) *cobra.Command {
	sf := &sizingFlags{}
	cmd := &cobra.Command{
		Use:   "sizes",
		Short: "List the size catalog with on-screen dimensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd, flags)
			catalog, err := assets.LoadCatalog(cfg.CatalogPath, cfg.DefaultSize)
			if err != nil {
				return err
			}
			conv, profile, err := sf.resolve(cfg)
			if err != nil {
				return err
			}
			return writeSizes(cmd.OutOrStdout(), catalog, conv, profile, sf.zoom)
		},
	}
	sf.register(cmd)
	return cmd
}

func writeSizes(w io.Writer, catalog *sizing.Catalog, conv sizing.Converter, profile *sizing.CalibrationProfile, zoom float64) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tLABEL\tORIENTATION\tINCHES\tPIXELS\t\n")
	def := catalog.Default().ID
	for _, opt := range catalog.Options() {
		id := opt.ID
		if id == def {
			id += "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%gx%g\t%s\t\n", id, opt.Label, opt.Orientation, opt.WidthInches, opt.HeightInches, pixels(conv.DisplaySize(opt, profile, zoom)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "scale: %s, %.2f px/in, zoom %d%%\n", conv.Policy, conv.PixelsPerInch(profile), sizing.ZoomOf(zoom).Percent())
	return err
}

func pixels(d sizing.DisplaySize) string {
	w, h := d.Round()
	return fmt.Sprintf("%dx%d", w, h)
}
