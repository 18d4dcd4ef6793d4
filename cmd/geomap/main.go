package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"geomap/internal/config"
)

var cfg *config.Config

// dataFlags override the data.* settings when set on the command line.
var dataFlags config.DataConfig

var rootCmd = &cobra.Command{
	Use:   "geomap",
	Short: "District map geometry pipeline",
	Long:  "Normalizes district, neighborhood and marker collections into planar map geometry: extruded regions, border outlines and a Voronoi tessellation around the markers.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c
		applyFlags(cmd, cfg)

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		switch cmd.Name() {
		case "view", "export", "stats":
			return cfg.Validate(cmd.Name())
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&dataFlags.Districts, "districts", "", "district GeoJSON (overrides data.districts)")
	f.StringVar(&dataFlags.Neighborhoods, "neighborhoods", "", "neighborhood GeoJSON (overrides data.neighborhoods)")
	f.StringVar(&dataFlags.Markers, "markers", "", "marker file: GeoJSON, CSV, KML or WKT (overrides data.markers)")
}

// applyFlags lays explicitly set command-line flags over the loaded config.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("districts") {
		c.Data.Districts = dataFlags.Districts
	}
	if flags.Changed("neighborhoods") {
		c.Data.Neighborhoods = dataFlags.Neighborhoods
	}
	if flags.Changed("markers") {
		c.Data.Markers = dataFlags.Markers
	}
	if flags.Changed("zoom") {
		c.View.Zoom = zoomFlag
	}
	if flags.Changed("output") {
		c.Export.Output = exportOutput
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
