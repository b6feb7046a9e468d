package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wehjee/brocs-mahjong/internal/config"
	"github.com/wehjee/brocs-mahjong/internal/logging"
	"github.com/wehjee/brocs-mahjong/internal/transport"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "mahjongtable",
	Short: "mahjongtable room server",
	Long:  "Authoritative room server for four-player Singapore mahjong.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configFile, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
			os.Exit(1)
		}
		logging.Init(cfg.ID, cfg.LogConf.Level)

		if err := run(context.Background(), cfg); err != nil {
			logging.Error("server exited: %v", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "configFile", "", "path to a YAML config file (optional, overrides Default())")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Configuration) error {
	srv := transport.NewServer(cfg)
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Engine(),
	}

	go func() {
		logging.Info("listening on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("http server failed: %v", err)
		}
	}()

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logging.Error("http server shutdown failed: %v", err)
		} else {
			logging.Info("http server shut down cleanly")
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	select {
	case <-ctx.Done():
		stop()
	case s := <-sig:
		logging.Info("received signal %v, shutting down", s)
		stop()
	}
	return nil
}
