// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/ltungv/poll/auth"
	"github.com/ltungv/poll/cliparse"
	"github.com/ltungv/poll/middleware"
	"github.com/ltungv/poll/models"
	"github.com/ltungv/poll/service"
	"github.com/ltungv/poll/store"
)

// BallotUUIDHeader carries the voter's ballot UUID
const BallotUUIDHeader = "X-Ballot-UUID"

type BallotHandler struct {
	ballots  *service.BallotService
	items    *service.ItemService
	rankings *service.RankingService
	cfg      cliparse.Config
}

func NewBallotHandler(ballots *service.BallotService, items *service.ItemService, rankings *service.RankingService, cfg cliparse.Config) *BallotHandler {
	return &BallotHandler{ballots: ballots, items: items, rankings: rankings, cfg: cfg}
}

// Register handles POST /ballots
// The body is optional; without a usable uuid a new one is issued
func (h *BallotHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ballot, err := h.ballots.Register(r.Context(), req.UUID)
	if err != nil {
		slog.Error("failed to register ballot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("ballot issued",
		"ballot_id", ballot.ID,
		"client", auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterBallotResponse{
		BallotUUID: ballot.UUID.String(),
	})
}

// Login handles POST /login
func (h *BallotHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UUID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "uuid is required")
		return
	}

	ballot, ok := h.findBallot(w, r, req.UUID)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RegisterBallotResponse{
		BallotUUID: ballot.UUID.String(),
	})
}

// GetBallot handles GET /ballot
// Returns the current poll result and the voter's ranked and unranked items
func (h *BallotHandler) GetBallot(w http.ResponseWriter, r *http.Request) {
	ballot, ok := h.ballotFromHeader(w, r)
	if !ok {
		return
	}

	result, err := h.rankings.Result(r.Context())
	if err != nil {
		slog.Error("failed to compute result", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	ranked, unranked, err := h.items.BallotItems(r.Context(), ballot.ID)
	if err != nil {
		slog.Error("failed to load ballot items", "error", err, "ballot_id", ballot.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BallotResponse{
		BallotUUID:    ballot.UUID.String(),
		Result:        result,
		RankedItems:   ranked,
		UnrankedItems: unranked,
	})
}

// UpdateRankings handles PUT /ballot
// Replaces the voter's whole ranking, most preferred item first
func (h *BallotHandler) UpdateRankings(w http.ResponseWriter, r *http.Request) {
	ballot, ok := h.ballotFromHeader(w, r)
	if !ok {
		return
	}

	var req models.UpdateRankingsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := h.rankings.ReplaceRankings(r.Context(), ballot.ID, req.RankedItemIDs)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrDuplicateItem),
		errors.Is(err, service.ErrUnknownItem),
		errors.Is(err, store.ErrConflict):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "UUID not found")
		return
	default:
		slog.Error("failed to update rankings", "error", err, "ballot_id", ballot.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusAccepted, models.UpdateRankingsResponse{
		BallotUUID:  ballot.UUID.String(),
		RankedCount: len(req.RankedItemIDs),
	})
}

func (h *BallotHandler) ballotFromHeader(w http.ResponseWriter, r *http.Request) (models.Ballot, bool) {
	raw := r.Header.Get(BallotUUIDHeader)
	if raw == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, BallotUUIDHeader+" header required")
		return models.Ballot{}, false
	}
	return h.findBallot(w, r, raw)
}

func (h *BallotHandler) findBallot(w http.ResponseWriter, r *http.Request, raw string) (models.Ballot, bool) {
	ballot, err := h.ballots.Find(r.Context(), raw)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "UUID not found")
		return models.Ballot{}, false
	}
	if err != nil {
		slog.Error("failed to query ballot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Ballot{}, false
	}
	return ballot, true
}
