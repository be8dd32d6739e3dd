//go:build ebiten

package cli

import (
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube3d"
	"github.com/SeamusWaldron/gocube3d/internal/window"
)

var (
	windowWidth        int
	windowHeight       int
	windowScale        int
	windowMoves        string
	windowTurnDuration string
	windowSeed         int64
	windowFree         bool
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open the cube in a desktop window. Drag with the mouse or a finger.

Keyboard shortcuts:
  R L U D F B M E S  - Turn clockwise (Shift: counter-clockwise)
  X                  - Shuffle
  Z/Backspace        - Undo
  Space/P            - Pause
  Q/Esc              - Quit`,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&windowWidth, "width", 720, "Window width")
	windowCmd.Flags().IntVar(&windowHeight, "height", 720, "Window height")
	windowCmd.Flags().IntVar(&windowScale, "scale", 2, "Screen pixels per raycast sample")
	windowCmd.Flags().StringVar(&windowMoves, "moves", "", "Play this move sequence after opening")
	windowCmd.Flags().StringVar(&windowTurnDuration, "turn-duration", "", "Quarter turn animation time (overrides config)")
	windowCmd.Flags().Int64Var(&windowSeed, "seed", 0, "Shuffle seed (overrides config)")
	windowCmd.Flags().BoolVar(&windowFree, "free", false, "Report a solve even if the cube was never shuffled")
	rootCmd.AddCommand(windowCmd)
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyGameFlags(cfg, windowTurnDuration, windowSeed, windowFree); err != nil {
		return err
	}

	var moves []gocube3d.Move
	if windowMoves != "" {
		if moves, err = gocube3d.ParseMoves(windowMoves); err != nil {
			return err
		}
	}

	logger, closer, err := newLogger(cfg, "")
	if err != nil {
		return err
	}
	defer closer.Close()

	cam := newCamera(cfg, windowWidth, windowHeight)
	ctrl, err := newController(cfg, logger, cam)
	if err != nil {
		return err
	}

	g := window.New(ctrl, cam, logger, cfg.Game.ShuffleTurns, windowScale)
	g.Queue(moves...)
	return window.Run(g, "gocube3d")
}
