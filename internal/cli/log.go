package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// newLogger creates the logger for a command. Debug records are written to
// the command's stderr only when --verbose is set.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
