package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"article-uploader/internal/config"
	"article-uploader/internal/discovery"
	"article-uploader/internal/receiver"
	"article-uploader/internal/security"

	"github.com/mama165/sdk-go/logs"
)

const shutdownTimeout = 10 * time.Second

func main() {
	envFile := flag.String("env", ".env", "Optional .env file")
	flag.Parse()

	if err := run(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(envFile string) error {
	// 1. Configuration & Logger
	var cfg config.Server
	if err := config.Load(&cfg, envFile); err != nil {
		return err
	}
	log := logs.GetLoggerFromString(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Inbox
	inbox, err := receiver.NewInbox(cfg.InboxDir)
	if err != nil {
		return err
	}

	// 3. Discovery Listener
	if cfg.EnableDiscovery {
		go func() {
			if err := discovery.Listen(ctx, log, cfg.DiscoveryAddr, cfg.BaseURL()); err != nil {
				log.Warn("UDP discovery disabled", "error", err)
			}
		}()
	}

	// 4. HTTP Server
	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      receiver.NewServer(log, inbox, receiver.Options{MaxUploadSize: cfg.MaxUploadSize, ImagesOnly: cfg.ImagesOnly}).Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	listener, err := net.Listen("tcp", cfg.Address())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Address(), err)
	}

	if cfg.EnableTLS {
		tlsConfig, err := security.GenerateTLSConfig("localhost", "127.0.0.1", cfg.Host)
		if err != nil {
			return fmt.Errorf("error configuring TLS: %w", err)
		}
		srv.TLSConfig = tlsConfig
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Receiver listening", "addr", cfg.Address(), "tls", cfg.EnableTLS, "inbox", inbox.Dir())
		if cfg.EnableTLS {
			errCh <- srv.ServeTLS(listener, "", "")
		} else {
			errCh <- srv.Serve(listener)
		}
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("receiver stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down receiver...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
