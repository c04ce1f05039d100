package main

import (
	"fmt"
	"os"

	"natal-chart/config"
	"natal-chart/internal/domain"
	"natal-chart/utils/logger"

	"github.com/spf13/cobra"
)

// Render command flags
var (
	renderName       string
	renderUTC        string
	renderLat        float64
	renderLon        float64
	renderWidth      int
	renderBackground string
	renderOut        string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one decorated chart to a file or stdout",
	Long: `Render a decorated natal chart without starting the server.

Examples:
  # Write to stdout
  natal-chart render --name Ana --utc-dt "1990-03-15 14:30" --lat 40.7128 --lon -74.006

  # Transparent variant, custom width, to a file
  natal-chart render --name Ana --utc-dt "1990-03-15 14:30" --lat 40.7 --lon -74 \
    --background transparent --width 300 --out ana.svg`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderName, "name", "", "chart subject name")
	renderCmd.Flags().StringVar(&renderUTC, "utc-dt", "", `birth time in UTC, "YYYY-MM-DD HH:MM"`)
	renderCmd.Flags().Float64Var(&renderLat, "lat", 0, "latitude in degrees")
	renderCmd.Flags().Float64Var(&renderLon, "lon", 0, "longitude in degrees")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "render width in px (0 uses the variant default)")
	renderCmd.Flags().StringVar(&renderBackground, "background", "", `background id, or "transparent"`)
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (default stdout)")

	for _, f := range []string{"name", "utc-dt", "lat", "lon"} {
		_ = renderCmd.MarkFlagRequired(f)
	}
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Keep stdout clean for the SVG.
	log := logger.New(logger.Options{Level: cfg.LogLevel, Output: cmd.ErrOrStderr()})

	svc := newServices(cfg, log)
	out, err := svc.generate.Execute(cmd.Context(), domain.ChartRequest{
		Name:         renderName,
		Timestamp:    renderUTC,
		Latitude:     renderLat,
		Longitude:    renderLon,
		RenderWidth:  renderWidth,
		BackgroundID: renderBackground,
	})
	if err != nil {
		return err
	}

	if renderOut == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	}
	if err := os.WriteFile(renderOut, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", renderOut, err)
	}
	log.Info("chart written", "path", renderOut, "bytes", len(out))
	return nil
}
