package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X github.com/mkraj/apiprobe/cmd.Version=..."
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "apiprobe",
	Short: "Spec-driven API endpoint prober and capture tooling",
	Long: `Apiprobe reads a machine-readable API description, probes every safely
callable read operation against the live service, and records one structured
outcome per operation. It also ships the capture daemon, flattener and file
server built around the same service.`,
	Version: Version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("log-level", "l", "warning", "Log level (debug, info, warning, error)")
}

// setupLogger installs a text slog handler at the requested level as the
// process default and returns it.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	levelStr, _ := cmd.Flags().GetString("log-level")

	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
