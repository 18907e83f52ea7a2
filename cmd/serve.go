package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mkraj/apiprobe/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the capture directory over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogger(cmd)

		addr, _ := cmd.Flags().GetString("addr")
		dir, _ := cmd.Flags().GetString("log-dir")

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigCh
			slog.Info("shutdown signal received")
			cancel()
		}()

		return web.NewServer(addr, dir).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", web.DefaultAddr, "Listen address")
	serveCmd.Flags().StringP("log-dir", "d", "./logs", "Directory to serve")
	rootCmd.AddCommand(serveCmd)
}
