package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mkraj/apiprobe/internal/config"
	"github.com/mkraj/apiprobe/internal/poller"
	"github.com/mkraj/apiprobe/internal/store"
	"github.com/spf13/cobra"
)

var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Run the periodic capture daemon",
	Long: `Poll captures the controller and device endpoints on a fixed interval,
writing a timestamped snapshot plus latest.json to the log directory and,
when a database is configured, archiving each snapshot to SQLite.

The API key file is re-read every cycle, so rotating the key does not
require a restart.`,
	RunE: runPoll,
}

func init() {
	pollCmd.Flags().String("config", "", "YAML config file")
	pollCmd.Flags().String("base-url", "", "Service base URL (overrides config)")
	pollCmd.Flags().IntP("interval", "i", 0, "Minutes between captures (overrides config)")
	pollCmd.Flags().StringP("api-key", "s", "", "API key file (overrides config)")
	pollCmd.Flags().String("log-dir", "", "Snapshot directory (overrides config)")
	pollCmd.Flags().String("database", "", "SQLite archive path (overrides config)")
	rootCmd.AddCommand(pollCmd)
}

func runPoll(cmd *cobra.Command, args []string) error {
	logger := setupLogger(cmd)

	cfg, err := pollConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("shutdown signal received")
		cancel()
	}()

	p := poller.New(cfg)
	p.Logger = logger

	if cfg.Database != "" {
		s, err := store.Open(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer s.Close()
		p.Store = s
	}

	logger.Info("starting poller",
		"base_url", cfg.BaseURL,
		"interval_minutes", cfg.Interval,
		"log_dir", cfg.LogDir,
	)
	return p.Run(ctx)
}

// pollConfig loads the config file (when given) and overlays any flags the
// user set explicitly.
func pollConfig(cmd *cobra.Command) (*config.PollConfig, error) {
	cfgFile, _ := cmd.Flags().GetString("config")

	var cfg *config.PollConfig
	if cfgFile != "" {
		loaded, err := config.LoadPollConfig(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.DefaultPollConfig()
	}

	if cmd.Flags().Changed("base-url") {
		cfg.BaseURL, _ = cmd.Flags().GetString("base-url")
	}
	if cmd.Flags().Changed("interval") {
		cfg.Interval, _ = cmd.Flags().GetInt("interval")
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKeyFile, _ = cmd.Flags().GetString("api-key")
	}
	if cmd.Flags().Changed("log-dir") {
		cfg.LogDir, _ = cmd.Flags().GetString("log-dir")
	}
	if cmd.Flags().Changed("database") {
		cfg.Database, _ = cmd.Flags().GetString("database")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
