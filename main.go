// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/ltungv/poll/backend"
	"github.com/ltungv/poll/cliparse"
	"github.com/ltungv/poll/middleware"
	"github.com/ltungv/poll/router"
)

func main() {
	var err error

	// .env first so flags and real env vars win
	if err := cliparse.LoadEnv(); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect and create schema
	logger := slog.Default()
	st, err := backend.Connect(context.Background(), cfg, logger)
	if err != nil {
		slog.Error("database setup failed", "error", err, "type", cfg.DatabaseType)
		os.Exit(1)
	}
	defer st.Close()
	slog.Info("Database ready", "type", cfg.DatabaseType)

	// Create router
	mux := router.NewRouter(st, cfg, logger)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
