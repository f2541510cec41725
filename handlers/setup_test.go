// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ltungv/poll/auth"
	"github.com/ltungv/poll/cliparse"
	"github.com/ltungv/poll/models"
	"github.com/ltungv/poll/service"
	"github.com/ltungv/poll/store/sqlstore"
	"github.com/ltungv/poll/testutil"
)

type testEnv struct {
	db       *sql.DB
	cfg      cliparse.Config
	adminKey string
	ballots  *BallotHandler
	items    *ItemHandler
	results  *ResultsHandler
}

// newTestEnv wires handlers to services over a fresh in-memory SQLite store
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	st := sqlstore.New(db, nil)

	ballotSvc := service.NewBallotService(st, nil)
	itemSvc := service.NewItemService(st, nil)
	rankingSvc := service.NewRankingService(st, nil)

	return &testEnv{
		db:       db,
		cfg:      cfg,
		adminKey: auth.GenerateAdminKey(auth.AdminScope, cfg.AdminKeySalt),
		ballots:  NewBallotHandler(ballotSvc, itemSvc, rankingSvc, cfg),
		items:    NewItemHandler(itemSvc, cfg),
		results:  NewResultsHandler(rankingSvc),
	}
}

// rank sends PUT /ballot for the ballot and returns the recorder
func (e *testEnv) rank(ballot models.Ballot, itemIDs ...string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest("PUT", "/ballot", models.UpdateRankingsRequest{RankedItemIDs: itemIDs}, map[string]string{
		BallotUUIDHeader: ballot.UUID.String(),
	})
	w := httptest.NewRecorder()
	e.ballots.UpdateRankings(w, req)
	return w
}

// getResults calls GET /results and decodes the body
func (e *testEnv) getResults(t *testing.T) models.PollResult {
	t.Helper()

	w := httptest.NewRecorder()
	e.results.GetResults(w, testutil.MakeRequest("GET", "/results", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var result models.PollResult
	testutil.AssertJSON(t, w, &result)
	return result
}
