// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"log/slog"
	"net/http"

	"github.com/ltungv/poll/cliparse"
	"github.com/ltungv/poll/handlers"
	"github.com/ltungv/poll/middleware"
	"github.com/ltungv/poll/service"
	"github.com/ltungv/poll/store"
)

func NewRouter(st store.Store, cfg cliparse.Config, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	// Services
	ballotSvc := service.NewBallotService(st, logger)
	itemSvc := service.NewItemService(st, logger)
	rankingSvc := service.NewRankingService(st, logger)

	// Handlers
	ballotHandler := handlers.NewBallotHandler(ballotSvc, itemSvc, rankingSvc, cfg)
	itemHandler := handlers.NewItemHandler(itemSvc, cfg)
	resultsHandler := handlers.NewResultsHandler(rankingSvc)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Results (public)
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.GetResults))

	// Ballots (X-Ballot-UUID identifies the voter)
	mux.HandleFunc("POST /ballots", middleware.WithLogging(ballotHandler.Register))
	mux.HandleFunc("POST /login", middleware.WithLogging(ballotHandler.Login))
	mux.HandleFunc("GET /ballot", middleware.WithLogging(ballotHandler.GetBallot))
	mux.HandleFunc("PUT /ballot", middleware.WithLogging(ballotHandler.UpdateRankings))

	// Items (mutations require X-Admin-Key)
	mux.HandleFunc("GET /items", middleware.WithLogging(itemHandler.ListItems))
	mux.HandleFunc("POST /items", middleware.WithLogging(itemHandler.CreateItem))
	mux.HandleFunc("POST /items/{id}/retire", middleware.WithLogging(itemHandler.RetireItem))
	mux.HandleFunc("POST /items/{id}/restore", middleware.WithLogging(itemHandler.RestoreItem))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("poll API v1"))
	})

	return mux
}
