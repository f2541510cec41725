// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ltungv/poll/middleware"
	"github.com/ltungv/poll/service"
)

type ResultsHandler struct {
	rankings *service.RankingService
}

func NewResultsHandler(rankings *service.RankingService) *ResultsHandler {
	return &ResultsHandler{rankings: rankings}
}

// GetResults handles GET /results
// Tabulates every ballot on each request; nothing is cached
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	result, err := h.rankings.Result(r.Context())
	if err != nil {
		slog.Error("failed to compute result", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}
