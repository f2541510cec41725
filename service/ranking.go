// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/ltungv/poll/irv"
	"github.com/ltungv/poll/models"
	"github.com/ltungv/poll/store"
)

// RankingService tabulates the poll and updates ballot rankings
type RankingService struct {
	rankings store.RankingRepository
	items    store.ItemRepository
	logger   *slog.Logger
}

func NewRankingService(st store.Store, logger *slog.Logger) *RankingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RankingService{rankings: st, items: st, logger: logger}
}

// Result reads one snapshot of all rankings and runs instant-runoff over it
func (s *RankingService) Result(ctx context.Context) (models.PollResult, error) {
	rows, err := s.rankings.GetAll(ctx)
	if err != nil {
		return models.PollResult{}, fmt.Errorf("failed to load rankings: %w", err)
	}

	ballots, itemsByID := groupBallots(rows)
	result := Explain(irv.Tabulate(ballots), itemsByID)
	result.BallotCount = len(ballots)

	s.logger.Info("poll tabulated",
		"outcome", result.Outcome,
		"ballots", humanize.Comma(int64(result.BallotCount)),
		"rounds", len(result.Rounds),
	)
	return result, nil
}

// ReplaceRankings validates itemIDs against the active items and replaces
// the ballot's rankings with them. An empty list clears the ballot.
func (s *RankingService) ReplaceRankings(ctx context.Context, ballotID string, itemIDs []string) error {
	seen := make(map[string]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateItem, id)
		}
		seen[id] = struct{}{}
	}

	if len(itemIDs) > 0 {
		active, err := s.items.ListActiveItems(ctx)
		if err != nil {
			return fmt.Errorf("failed to load items: %w", err)
		}
		activeIDs := make(map[string]struct{}, len(active))
		for _, item := range active {
			activeIDs[item.ID] = struct{}{}
		}
		for _, id := range itemIDs {
			if _, ok := activeIDs[id]; !ok {
				return fmt.Errorf("%w: %s", ErrUnknownItem, id)
			}
		}
	}

	if err := s.rankings.ReplaceBallotRankings(ctx, ballotID, itemIDs); err != nil {
		return fmt.Errorf("failed to replace rankings: %w", err)
	}

	s.logger.Info("rankings replaced", "ballot_id", ballotID, "count", len(itemIDs))
	return nil
}

// groupBallots turns rows ordered by (ballot, ord) into one item ID list per ballot
func groupBallots(rows []models.Ranking) ([][]string, map[string]models.Item) {
	var ballots [][]string
	itemsByID := make(map[string]models.Item)

	lastBallot := ""
	for i, row := range rows {
		if i == 0 || row.Ballot.ID != lastBallot {
			ballots = append(ballots, nil)
			lastBallot = row.Ballot.ID
		}
		ballots[len(ballots)-1] = append(ballots[len(ballots)-1], row.Item.ID)
		itemsByID[row.Item.ID] = row.Item
	}
	return ballots, itemsByID
}

// Explain maps a tabulation over item IDs back to items, with per-round tallies
// sorted by votes descending then item ID
func Explain(res irv.Result[string], itemsByID map[string]models.Item) models.PollResult {
	lookup := func(id string) models.Item {
		if item, ok := itemsByID[id]; ok {
			return item
		}
		return models.Item{ID: id, Title: id}
	}

	out := models.PollResult{
		Outcome: res.Outcome.String(),
		Rounds:  make([]models.RoundSummary, 0, len(res.Rounds)),
	}

	switch res.Outcome {
	case irv.Winner:
		winner := lookup(res.Winner)
		out.Winner = &winner
	case irv.Tied:
		for _, id := range res.Tied {
			out.Tied = append(out.Tied, lookup(id))
		}
	}

	for _, round := range res.Rounds {
		summary := models.RoundSummary{
			Round:      round.Number,
			Tallies:    make([]models.ItemTally, 0, len(round.Tally)),
			Eliminated: round.Eliminated,
		}
		for id, votes := range round.Tally {
			summary.Tallies = append(summary.Tallies, models.ItemTally{ItemID: id, Votes: votes})
		}
		slices.SortFunc(summary.Tallies, func(a, b models.ItemTally) int {
			if a.Votes != b.Votes {
				return b.Votes - a.Votes
			}
			return strings.Compare(a.ItemID, b.ItemID)
		})
		out.Rounds = append(out.Rounds, summary)
	}

	return out
}
