package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagarc03/filegate"
	"github.com/sagarc03/filegate/config"
	filegatehttp "github.com/sagarc03/filegate/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the filegate HTTP server.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 5708, "HTTP server port")
	serveCmd.Flags().Bool("debug", false, "log the reason for every fallthrough")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	opts, err := cfg.ServeOptions()
	if err != nil {
		return fmt.Errorf("build serve options: %w", err)
	}

	serveConfig, err := filegate.NewServeConfig(opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := serveConfig.Close(); err != nil {
			slog.Warn("failed to close serving root", "err", err)
		}
	}()

	handlerConfig := cfg.HandlerConfig()
	handler := filegatehttp.NewHandler(&handlerConfig, serveConfig)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	// No WriteTimeout: large files stream for as long as the client reads.
	server := &http.Server{
		Addr:              addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-sigCh:
		case <-ctx.Done():
			return
		}

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server",
		"addr", addr,
		"root", serveConfig.Root(),
		"mount", serveConfig.Mount(),
		"mode", serveConfig.Mode(),
		"signing", serveConfig.SigningEnabled(),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
