package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"geomap/internal/export"
)

var (
	exportOutput     string
	exportGeographic bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the map geometry as GeoJSON",
	Long:  "Runs the pipeline and writes regions, neighborhood outlines, tessellation cells and markers to one GeoJSON FeatureCollection.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := loadScene(cfg.Data)
		if err != nil {
			return err
		}
		fc := export.Build(s, export.Options{Geographic: exportGeographic})
		if err := export.WriteFile(cfg.Export.Output, fc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d features to %s\n", len(fc.Features), cfg.Export.Output)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output path (overrides export.output)")
	exportCmd.Flags().BoolVar(&exportGeographic, "geographic", false, "write source lon/lat instead of planar coordinates")
	rootCmd.AddCommand(exportCmd)
}
