package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"

	// Global flags
	cfgFile string
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "natal-chart",
	Short: "Natal chart generator with decorated SVG output",
	Long: `Serves a form and a JSON endpoint that turns birth data into a
decorated natal chart SVG. Running without a subcommand starts the server.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check the local server's /health endpoint",
	RunE:  runHealthcheck,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "optional YAML config file (environment variables take precedence)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(healthcheckCmd)
}
