// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ltungv/poll/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record conflicts with existing data")
)

// ItemRepository gives access to candidate items
type ItemRepository interface {
	ListItems(ctx context.Context) ([]models.Item, error)
	ListActiveItems(ctx context.Context) ([]models.Item, error)
	CreateItem(ctx context.Context, item models.Item) error
	// SetItemDone retires (done=true) or restores an item
	SetItemDone(ctx context.Context, itemID string, done bool) error
	// FindRankedByBallot returns the ballot's active items in rank order
	FindRankedByBallot(ctx context.Context, ballotID string) ([]models.Item, error)
	// FindUnrankedByBallot returns active items the ballot has not ranked
	FindUnrankedByBallot(ctx context.Context, ballotID string) ([]models.Item, error)
}

// BallotRepository gives access to voter ballots
type BallotRepository interface {
	FindBallotByUUID(ctx context.Context, id uuid.UUID) (models.Ballot, error)
	// CreateBallot stores a ballot for id unless one exists, and returns the stored ballot
	CreateBallot(ctx context.Context, id uuid.UUID) (models.Ballot, error)
	CountBallots(ctx context.Context) (int, error)
}

// RankingRepository is the snapshot provider and ranking mutator used by tabulation
type RankingRepository interface {
	// GetAll returns every ranking of an active item, ordered by ballot then rank
	// position, read in one consistent snapshot.
	GetAll(ctx context.Context) ([]models.Ranking, error)
	// ReplaceBallotRankings atomically discards the ballot's rankings and stores
	// itemIDs in order, numbering positions from 0. On failure nothing changes.
	ReplaceBallotRankings(ctx context.Context, ballotID string, itemIDs []string) error
}

// Store is one backing store implementing every repository
type Store interface {
	ItemRepository
	BallotRepository
	RankingRepository
	Close() error
}

// NewRankings numbers itemIDs from 0 in list order for ballotID
func NewRankings(ballotID string, itemIDs []string) []models.NewRanking {
	rankings := make([]models.NewRanking, len(itemIDs))
	for i, itemID := range itemIDs {
		rankings[i] = models.NewRanking{Ord: i, ItemID: itemID, BallotID: ballotID}
	}
	return rankings
}
