//go:build !ebiten

package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window (requires the ebiten build tag)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.New("the window frontend requires the ebiten build tag; rebuild with `go build -tags ebiten ./cmd/gocube3d`")
	},
}

func init() {
	rootCmd.AddCommand(windowCmd)
}
