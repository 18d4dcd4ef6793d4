package main

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"geomap/internal/tui"
)

var zoomFlag float64

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Preview the map in the terminal",
	Long:  "Loads the configured collections and draws districts, neighborhoods, markers and their cells with braille glyphs. Click a cell to highlight it.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := loadScene(cfg.Data)
		if err != nil {
			return err
		}

		// the alt screen owns the terminal until the program exits
		restore := zap.ReplaceGlobals(zap.NewNop())
		defer restore()

		m := tui.New(s, tui.Options{
			Title: filepath.Base(cfg.Data.Districts),
			Zoom:  cfg.View.Zoom,
		})
		if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
			return eris.Wrap(err, "view: run program")
		}
		return nil
	},
}

func init() {
	viewCmd.Flags().Float64Var(&zoomFlag, "zoom", 0, "initial zoom (overrides view.zoom)")
	rootCmd.AddCommand(viewCmd)
}
