// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ltungv/poll/models"
	"github.com/ltungv/poll/store"
)

// BallotService registers voters and looks their ballots up by UUID
type BallotService struct {
	ballots store.BallotRepository
	logger  *slog.Logger
}

func NewBallotService(st store.BallotRepository, logger *slog.Logger) *BallotService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BallotService{ballots: st, logger: logger}
}

// Register stores a ballot for raw. A value that is not a UUID is replaced
// with a fresh random one. Registering an existing UUID returns its ballot.
func (s *BallotService) Register(ctx context.Context, raw string) (models.Ballot, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		id = uuid.New()
		if raw != "" {
			s.logger.Warn("invalid ballot uuid, generated a new one", "input", raw, "uuid", id.String())
		}
	}

	ballot, err := s.ballots.CreateBallot(ctx, id)
	if err != nil {
		return models.Ballot{}, fmt.Errorf("failed to register ballot: %w", err)
	}

	s.logger.Info("ballot registered", "ballot_id", ballot.ID)
	return ballot, nil
}

// Find returns the ballot for raw, or store.ErrNotFound
func (s *BallotService) Find(ctx context.Context, raw string) (models.Ballot, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return models.Ballot{}, store.ErrNotFound
	}
	return s.ballots.FindBallotByUUID(ctx, id)
}

// Count returns the number of registered ballots
func (s *BallotService) Count(ctx context.Context) (int, error) {
	return s.ballots.CountBallots(ctx)
}
