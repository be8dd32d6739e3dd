// Package cli implements the command-line interface for gocube3d.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube3d"
	"github.com/SeamusWaldron/gocube3d/internal/config"
	"github.com/SeamusWaldron/gocube3d/internal/logging"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	logLevel   string
	logFile    string
	verbose    bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "gocube3d",
	Short: "Turn a 3D Rubik's cube with the mouse",
	Long: `gocube3d - A virtual 3x3 Rubik's cube you turn by dragging stickers.

Drag across two stickers to turn the layer that contains both, drag the
background to orbit the cube, shuffle it and solve it against the clock.
A GoCube smart cube can be mirrored into the game over Bluetooth.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.gocube3d/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// getConfigPath returns the config path from flag or default.
func getConfigPath() string {
	if configPath != "" {
		return configPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gocube3d", "config.toml")
}

// loadConfig reads the config file and applies global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	return cfg, nil
}

// newLogger builds the process logger. Full-screen commands pass a default
// file so log lines do not tear the screen.
func newLogger(cfg *config.Config, fallbackFile string) (*log.Logger, io.Closer, error) {
	file := cfg.Log.File
	if file == "" {
		file = fallbackFile
	}
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	return logging.New(logging.Options{
		Level:  cfg.Log.Level,
		File:   file,
		Prefix: "gocube3d",
	})
}

// defaultLogFile is where full-screen commands log when no file is set.
func defaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gocube3d", "logs", "gocube3d.log")
}

// newController builds a controller from cfg, posed at the configured view.
func newController(cfg *config.Config, logger *log.Logger, projector gocube3d.Projector) (*gocube3d.Controller, error) {
	opts := []gocube3d.Option{
		gocube3d.WithTurnDuration(cfg.Game.TurnDuration.Duration),
		gocube3d.WithRequireShuffle(cfg.Game.RequireShuffle),
		gocube3d.WithLogger(logger),
	}
	if cfg.Game.Seed != 0 {
		opts = append(opts, gocube3d.WithSeed(cfg.Game.Seed))
	}
	ctrl, err := gocube3d.NewController(projector, opts...)
	if err != nil {
		return nil, err
	}
	ctrl.Cube().SetOrientation(gocube3d.ViewRotation(cfg.Camera.Yaw, cfg.Camera.Pitch))
	return ctrl, nil
}

// newCamera builds a camera from cfg.
func newCamera(cfg *config.Config, width, height int) *gocube3d.Camera {
	cam := gocube3d.NewCamera(width, height)
	cam.FovY = cfg.Camera.Fov
	cam.SetDistance(cfg.Camera.Distance)
	return cam
}
