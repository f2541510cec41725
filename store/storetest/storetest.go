// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package storetest is a conformance suite every store.Store backend must pass.
package storetest

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ltungv/poll/models"
	"github.com/ltungv/poll/store"
)

// Factory returns an empty store; the suite closes it
type Factory func(t *testing.T) store.Store

func Run(t *testing.T, newStore Factory) {
	t.Run("Items", func(t *testing.T) { testItems(t, newStore(t)) })
	t.Run("Ballots", func(t *testing.T) { testBallots(t, newStore(t)) })
	t.Run("ReplaceRankings", func(t *testing.T) { testReplaceRankings(t, newStore(t)) })
	t.Run("ReplaceRankingsFailureKeepsPrevious", func(t *testing.T) { testReplaceFailure(t, newStore(t)) })
	t.Run("SnapshotSkipsRetiredItems", func(t *testing.T) { testSnapshotSkipsRetired(t, newStore(t)) })
	t.Run("RankedAndUnranked", func(t *testing.T) { testRankedAndUnranked(t, newStore(t)) })
	t.Run("ConcurrentReplace", func(t *testing.T) { testConcurrentReplace(t, newStore(t)) })
}

func seedItems(t *testing.T, s store.Store, titles ...string) []models.Item {
	t.Helper()
	items := make([]models.Item, len(titles))
	for i, title := range titles {
		items[i] = models.Item{ID: "item-" + title, Title: title, Content: "about " + title}
		require.NoError(t, s.CreateItem(context.Background(), items[i]))
	}
	return items
}

func newBallot(t *testing.T, s store.Store) models.Ballot {
	t.Helper()
	ballot, err := s.CreateBallot(context.Background(), uuid.New())
	require.NoError(t, err)
	return ballot
}

func itemIDs(items []models.Item) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

// ballotItems extracts one ballot's item IDs from a snapshot
func ballotItems(rankings []models.Ranking, ballotID string) []string {
	var ids []string
	for _, r := range rankings {
		if r.Ballot.ID == ballotID {
			ids = append(ids, r.Item.ID)
		}
	}
	return ids
}

func testItems(t *testing.T, s store.Store) {
	defer s.Close()
	ctx := context.Background()

	items := seedItems(t, s, "bob", "alice", "carol")

	all, err := s.ListItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, titles(all))

	assert.ErrorIs(t, s.CreateItem(ctx, items[0]), store.ErrConflict)

	require.NoError(t, s.SetItemDone(ctx, items[0].ID, true))
	active, err := s.ListActiveItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "carol"}, titles(active))

	all, err = s.ListItems(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, s.SetItemDone(ctx, items[0].ID, false))
	active, err = s.ListActiveItems(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 3)

	assert.ErrorIs(t, s.SetItemDone(ctx, "missing", true), store.ErrNotFound)
}

func testBallots(t *testing.T, s store.Store) {
	defer s.Close()
	ctx := context.Background()

	id := uuid.New()
	_, err := s.FindBallotByUUID(ctx, id)
	assert.ErrorIs(t, err, store.ErrNotFound)

	created, err := s.CreateBallot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, created.UUID)
	assert.NotEmpty(t, created.ID)

	again, err := s.CreateBallot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, created, again, "creating an existing ballot must be a no-op")

	found, err := s.FindBallotByUUID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	newBallot(t, s)
	count, err := s.CountBallots(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func testReplaceRankings(t *testing.T, s store.Store) {
	defer s.Close()
	ctx := context.Background()

	items := seedItems(t, s, "a", "b", "c")
	ballot := newBallot(t, s)

	require.NoError(t, s.ReplaceBallotRankings(ctx, ballot.ID, itemIDs(items)))
	require.NoError(t, s.ReplaceBallotRankings(ctx, ballot.ID, []string{items[2].ID, items[0].ID}))

	rankings, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, rankings, 2)
	assert.Equal(t, items[2].ID, rankings[0].Item.ID)
	assert.Equal(t, 0, rankings[0].Ord)
	assert.Equal(t, items[0].ID, rankings[1].Item.ID)
	assert.Equal(t, 1, rankings[1].Ord)
	assert.Equal(t, ballot, rankings[0].Ballot)

	require.NoError(t, s.ReplaceBallotRankings(ctx, ballot.ID, nil))
	rankings, err = s.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rankings)

	err = s.ReplaceBallotRankings(ctx, "missing-ballot", []string{items[0].ID})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testReplaceFailure(t *testing.T, s store.Store) {
	defer s.Close()
	ctx := context.Background()

	items := seedItems(t, s, "a", "b", "c")
	ballot := newBallot(t, s)
	previous := []string{items[1].ID, items[0].ID}
	require.NoError(t, s.ReplaceBallotRankings(ctx, ballot.ID, previous))

	tests := []struct {
		name    string
		itemIDs []string
	}{
		{"duplicate item", []string{items[2].ID, items[2].ID}},
		{"unknown item", []string{items[2].ID, "no-such-item"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.ReplaceBallotRankings(ctx, ballot.ID, tt.itemIDs)
			assert.ErrorIs(t, err, store.ErrConflict)

			rankings, err := s.GetAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, previous, ballotItems(rankings, ballot.ID))
		})
	}
}

func testSnapshotSkipsRetired(t *testing.T, s store.Store) {
	defer s.Close()
	ctx := context.Background()

	items := seedItems(t, s, "a", "b", "c")
	first := newBallot(t, s)
	second := newBallot(t, s)
	require.NoError(t, s.ReplaceBallotRankings(ctx, first.ID, []string{items[0].ID, items[1].ID, items[2].ID}))
	require.NoError(t, s.ReplaceBallotRankings(ctx, second.ID, []string{items[1].ID}))

	require.NoError(t, s.SetItemDone(ctx, items[1].ID, true))

	rankings, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{items[0].ID, items[2].ID}, ballotItems(rankings, first.ID))
	assert.Empty(t, ballotItems(rankings, second.ID))

	// Rankings are grouped by ballot
	seen := map[string]bool{}
	last := ""
	for _, r := range rankings {
		if r.Ballot.ID != last {
			assert.False(t, seen[r.Ballot.ID], "ballot %s is not contiguous", r.Ballot.ID)
			seen[r.Ballot.ID] = true
			last = r.Ballot.ID
		}
	}
}

func testRankedAndUnranked(t *testing.T, s store.Store) {
	defer s.Close()
	ctx := context.Background()

	items := seedItems(t, s, "a", "b", "c", "d")
	ballot := newBallot(t, s)
	require.NoError(t, s.ReplaceBallotRankings(ctx, ballot.ID, []string{items[2].ID, items[0].ID, items[3].ID}))
	require.NoError(t, s.SetItemDone(ctx, items[3].ID, true))

	ranked, err := s.FindRankedByBallot(ctx, ballot.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{items[2].ID, items[0].ID}, itemIDs(ranked))

	unranked, err := s.FindUnrankedByBallot(ctx, ballot.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{items[1].ID}, itemIDs(unranked))

	other := newBallot(t, s)
	ranked, err = s.FindRankedByBallot(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, ranked)
	unranked, err = s.FindUnrankedByBallot(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{items[0].ID, items[1].ID, items[2].ID}, itemIDs(unranked))
}

func testConcurrentReplace(t *testing.T, s store.Store) {
	defer s.Close()
	ctx := context.Background()

	items := seedItems(t, s, "a", "b", "c")
	orders := [][]string{
		{items[0].ID, items[1].ID, items[2].ID},
		{items[2].ID, items[1].ID},
		{items[1].ID},
	}
	ballot := newBallot(t, s)

	var wg sync.WaitGroup
	errs := make(chan error, 30)
	for i := 0; i < 10; i++ {
		for _, order := range orders {
			wg.Add(1)
			go func(order []string) {
				defer wg.Done()
				errs <- s.ReplaceBallotRankings(ctx, ballot.ID, order)
			}(order)
		}
	}

	// Readers must only ever observe one complete order
	for i := 0; i < 10; i++ {
		rankings, err := s.GetAll(ctx)
		require.NoError(t, err)
		got := ballotItems(rankings, ballot.ID)
		if got != nil {
			assert.Contains(t, orders, got)
		}
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	rankings, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Contains(t, orders, ballotItems(rankings, ballot.ID))
}

func titles(items []models.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Title
	}
	return out
}
