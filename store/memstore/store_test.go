// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package memstore

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ltungv/poll/models"
	"github.com/ltungv/poll/store"
	"github.com/ltungv/poll/store/storetest"
)

func TestConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return New(nil)
	})
}

func TestNewSeedsItems(t *testing.T) {
	s := New([]models.Item{
		{ID: "1", Title: "Tacos"},
		{ID: "2", Title: "Curry", Done: true},
	})

	active, err := s.ListActiveItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Item{{ID: "1", Title: "Tacos"}}, active)
}

func TestReplaceCopiesInput(t *testing.T) {
	s := New([]models.Item{{ID: "1", Title: "a"}, {ID: "2", Title: "b"}})
	ctx := context.Background()
	ballot := newTestBallot(t, s)

	order := []string{"1", "2"}
	require.NoError(t, s.ReplaceBallotRankings(ctx, ballot.ID, order))
	order[0] = "2"

	ranked, err := s.FindRankedByBallot(ctx, ballot.ID)
	require.NoError(t, err)
	assert.Equal(t, "1", ranked[0].ID)
}

func newTestBallot(t *testing.T, s *Store) models.Ballot {
	t.Helper()
	ballot, err := s.CreateBallot(context.Background(), uuid.New())
	require.NoError(t, err)
	return ballot
}
