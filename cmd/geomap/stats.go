package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"geomap/internal/scene"
)

var (
	statsWidth  float64
	statsHeight float64
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show pipeline statistics",
	Long:  "Runs the pipeline and prints the normalization, layer sizes, extruded mesh totals and where each district label lands for the default camera.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := loadScene(cfg.Data)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		p, _ := s.Params()
		st := s.Stats()
		fmt.Fprintf(out, "scale:          %.6f\n", p.Scale)
		fmt.Fprintf(out, "center:         %.6f, %.6f\n", p.CenterX, p.CenterY)
		fmt.Fprintf(out, "regions:        %d\n", st.Regions)
		fmt.Fprintf(out, "neighborhoods:  %d\n", st.Neighborhoods)
		fmt.Fprintf(out, "markers:        %d\n", st.Markers)
		fmt.Fprintf(out, "cells:          %d\n", st.Cells)

		mt := s.Meshes()
		fmt.Fprintf(out, "mesh vertices:  %d\n", mt.Vertices)
		fmt.Fprintf(out, "mesh triangles: %d\n", mt.Triangles)
		if mt.Failed > 0 {
			fmt.Fprintf(out, "mesh failures:  %d\n", mt.Failed)
		}

		labels := s.Labels(scene.DefaultCamera(), statsWidth, statsHeight)
		if len(labels) == 0 {
			return nil
		}
		fmt.Fprintf(out, "\nlabels (%gx%g):\n", statsWidth, statsHeight)
		for _, l := range labels {
			if !l.Visible {
				fmt.Fprintf(out, "  %-24s hidden\n", l.Text)
				continue
			}
			fmt.Fprintf(out, "  %-24s %7.1f %7.1f\n", l.Text, l.Screen.X, l.Screen.Y)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Float64Var(&statsWidth, "width", 1280, "viewport width in pixels for label placement")
	statsCmd.Flags().Float64Var(&statsHeight, "height", 720, "viewport height in pixels for label placement")
	rootCmd.AddCommand(statsCmd)
}
