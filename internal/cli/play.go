package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube3d/internal/config"
	"github.com/SeamusWaldron/gocube3d/internal/smartcube"
	"github.com/SeamusWaldron/gocube3d/internal/tui"
)

var (
	playMirror       bool
	playTurnDuration string
	playSeed         int64
	playFree         bool
	playFollow       bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start an interactive terminal session.

Mouse:
  drag across stickers  - Turn the layer containing both
  drag the background   - Orbit the cube
  [Shuffle] (hold)      - Shuffle until released
  [Undo] (hold)         - Undo turns until released
  [Pause]               - Pause or resume

Keyboard shortcuts:
  R L U D F B M E S  - Turn clockwise (lower case: counter-clockwise)
  :                  - Type a move sequence, e.g. R U R' U'
  x                  - Shuffle (game.shuffle_turns turns)
  z/Backspace        - Undo
  Space/p            - Pause
  Arrows             - Orbit the cube
  q/Esc              - Quit

With --mirror, turns made on a GoCube smart cube are played on screen.
Add --follow to also turn the view with the cube in your hands.
Changes to the config file are applied while playing.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&playMirror, "mirror", false, "Mirror a GoCube smart cube over Bluetooth")
	playCmd.Flags().StringVar(&playTurnDuration, "turn-duration", "", "Quarter turn animation time, e.g. 150ms (overrides config)")
	playCmd.Flags().Int64Var(&playSeed, "seed", 0, "Shuffle seed (overrides config)")
	playCmd.Flags().BoolVar(&playFree, "free", false, "Report a solve even if the cube was never shuffled")
	playCmd.Flags().BoolVar(&playFollow, "follow", false, "Turn the view with the smart cube's attitude (implies --mirror)")
	rootCmd.AddCommand(playCmd)
}

// applyGameFlags lays the game flags shared by play and window over cfg.
func applyGameFlags(cfg *config.Config, turnDuration string, seed int64, free bool) error {
	if turnDuration != "" {
		var d config.Duration
		if err := d.UnmarshalText([]byte(turnDuration)); err != nil {
			return fmt.Errorf("invalid --turn-duration: %w", err)
		}
		cfg.Game.TurnDuration = d
	}
	if seed != 0 {
		cfg.Game.Seed = seed
	}
	if free {
		cfg.Game.RequireShuffle = false
	}
	return cfg.Validate()
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyGameFlags(cfg, playTurnDuration, playSeed, playFree); err != nil {
		return err
	}
	if playFollow {
		cfg.SmartCube.Follow = true
	}
	if playMirror || cfg.SmartCube.Follow {
		cfg.SmartCube.Enabled = true
	}

	logger, closer, err := newLogger(cfg, defaultLogFile())
	if err != nil {
		return err
	}
	defer closer.Close()

	cam := newCamera(cfg, 80, 48)
	ctrl, err := newController(cfg, logger, cam)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Controller:   ctrl,
		Camera:       cam,
		Logger:       logger,
		ShuffleTurns: cfg.Game.ShuffleTurns,
	}

	if watcher, err := config.Watch(getConfigPath(), logger); err != nil {
		logger.Warn("config hot reload disabled", "err", err)
	} else {
		defer watcher.Close()
		opts.Configs = watcher.Updates()
	}

	if cfg.SmartCube.Enabled {
		mir, err := connectMirror(cmd, cfg, logger)
		if err != nil {
			return err
		}
		defer mir.client.Disconnect()
		opts.Rotations = mir.rotations
		opts.Orientations = mir.orientations
		opts.DeviceName = mir.client.DeviceName()
	}

	p := tea.NewProgram(tui.New(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// mirror is a connected smart cube and the channels its callbacks feed.
type mirror struct {
	client       *smartcube.Client
	rotations    chan []smartcube.RotationEvent
	orientations chan *smartcube.OrientationEvent // nil unless following
}

func newMirror(client *smartcube.Client, follow bool, logger *log.Logger) *mirror {
	m := &mirror{
		client:    client,
		rotations: make(chan []smartcube.RotationEvent, 100),
	}
	client.OnRotation(func(evs []smartcube.RotationEvent) {
		select {
		case m.rotations <- evs:
		default:
			logger.Warn("dropping smart cube rotation, queue full")
		}
	})
	if follow {
		m.orientations = make(chan *smartcube.OrientationEvent, 1)
		client.OnOrientation(m.pushOrientation)
	}
	return m
}

// pushOrientation keeps only the newest attitude in the channel.
func (m *mirror) pushOrientation(ev *smartcube.OrientationEvent) {
	for {
		select {
		case m.orientations <- ev:
			return
		default:
		}
		select {
		case <-m.orientations:
		default:
		}
	}
}

// connectMirror connects to the first GoCube found and forwards its face
// turns, and its attitude when following, to the game.
func connectMirror(cmd *cobra.Command, cfg *config.Config, logger *log.Logger) (*mirror, error) {
	client, results, err := scanForGoCube(cmd.Context(), logger, cfg.SmartCube.ScanTimeout.Duration)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, smartcube.ErrDeviceNotFound
	}

	m := newMirror(client, cfg.SmartCube.Follow, logger)
	if err := client.Connect(results[0]); err != nil {
		return nil, fmt.Errorf("connection failed: %w", err)
	}
	// The game starts solved, so the cube's own solved state must match.
	if err := client.ResetSolved(); err != nil {
		logger.Warn("could not reset smart cube state", "err", err)
	}
	if cfg.SmartCube.Follow {
		if err := client.SetOrientationUpdates(true); err != nil {
			logger.Warn("could not enable orientation updates", "err", err)
		}
	}
	return m, nil
}
