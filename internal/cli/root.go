// Package cli implements the outliner command line interface.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

// configPath is the --config persistent flag.
var configPath string

var rootCmd = &cobra.Command{
	Use:   "outliner",
	Short: "Extract document outlines from PDFs",
	Long: `outliner extracts a structured outline (title plus H1-H4 headings)
from PDF documents using font and layout signals. It handles Latin,
Devanagari, CJK, Hangul, and Arabic scripts.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the process logger at the configured level.
func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
