package main

import (
	"fmt"
	"net/http"
	"time"

	"natal-chart/config"

	"github.com/spf13/cobra"
)

// runHealthcheck performs a health check against the local server, for
// container healthchecks in images without curl.
func runHealthcheck(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	return checkHealth(cmd, fmt.Sprintf("http://127.0.0.1:%s/health", cfg.Port))
}

func checkHealth(cmd *cobra.Command, url string) error {
	client := &http.Client{Timeout: 2 * time.Second}
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status: %d", resp.StatusCode)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}
