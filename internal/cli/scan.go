package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube3d/internal/smartcube"
)

var scanTimeout time.Duration

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List nearby GoCube smart cubes",
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 0, "Scan duration (default: smartcube.scan_timeout from config)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(cfg, "")
	if err != nil {
		return err
	}
	defer closer.Close()

	timeout := scanTimeout
	if timeout == 0 {
		timeout = cfg.SmartCube.ScanTimeout.Duration
	}

	_, results, err := scanForGoCube(cmd.Context(), logger, timeout)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No GoCube found.")
		return nil
	}
	for _, r := range results {
		fmt.Printf("%-20s %4d dBm  %s\n", r.Name, r.RSSI, r.Address.String())
	}
	return nil
}

// scanForGoCube scans once for GoCube devices. The client is returned even
// when nothing was found so the caller can retry without re-enabling BLE.
func scanForGoCube(ctx context.Context, logger *log.Logger, timeout time.Duration) (*smartcube.Client, []smartcube.ScanResult, error) {
	fmt.Println("Scanning for GoCube devices...")

	client, err := smartcube.NewClient(logger)
	if err != nil {
		return nil, nil, fmt.Errorf("BLE not available: %w", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results, err := client.Scan(ctx, timeout)
	if err != nil {
		return client, nil, fmt.Errorf("scan failed: %w", err)
	}
	if len(results) > 0 {
		fmt.Printf("Found: %s\n", results[0].Name)
	}
	return client, results, nil
}
