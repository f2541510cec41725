// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ltungv/poll/models"
	"github.com/ltungv/poll/store"
	"github.com/ltungv/poll/store/storetest"
	"github.com/ltungv/poll/testutil"
)

func TestConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return New(testutil.SetupTestDB(t), nil)
	})
}

func TestBulkInsertRankings(t *testing.T) {
	query, args := bulkInsertRankings(store.NewRankings("b1", []string{"x", "y"}))

	assert.Equal(t, "INSERT INTO rankings (ballot_id, item_id, ord) VALUES ($1, $2, $3), ($4, $5, $6)", query)
	assert.Equal(t, []any{"b1", "x", 0, "b1", "y", 1}, args)
}

func TestNewRankingsNumbersFromZero(t *testing.T) {
	assert.Equal(t, []models.NewRanking{
		{Ord: 0, ItemID: "x", BallotID: "b1"},
		{Ord: 1, ItemID: "y", BallotID: "b1"},
		{Ord: 2, ItemID: "z", BallotID: "b1"},
	}, store.NewRankings("b1", []string{"x", "y", "z"}))
}
