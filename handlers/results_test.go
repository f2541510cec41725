// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"testing"

	"github.com/ltungv/poll/models"
	"github.com/ltungv/poll/testutil"
)

func TestGetResultsNoBallots(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateTestItem(t, env.db, "Pizza")

	result := env.getResults(t)

	if result.Outcome != models.OutcomeNoWinner {
		t.Errorf("Expected no_winner, got %s", result.Outcome)
	}
	if result.Winner != nil || len(result.Tied) != 0 {
		t.Errorf("Expected no winner or tie, got %+v", result)
	}
	if result.BallotCount != 0 {
		t.Errorf("Expected 0 ballots, got %d", result.BallotCount)
	}
}

func TestGetResultsRunoff(t *testing.T) {
	env := newTestEnv(t)
	bob := testutil.CreateTestItem(t, env.db, "Bob")
	bill := testutil.CreateTestItem(t, env.db, "Bill")
	sue := testutil.CreateTestItem(t, env.db, "Sue")

	testutil.CreateTestVoter(t, env.db, bob.ID, bill.ID, sue.ID)
	testutil.CreateTestVoter(t, env.db, sue.ID, bob.ID, bill.ID)
	testutil.CreateTestVoter(t, env.db, bill.ID, sue.ID, bob.ID)
	testutil.CreateTestVoter(t, env.db, bob.ID, bill.ID, sue.ID)
	testutil.CreateTestVoter(t, env.db, sue.ID, bob.ID, bill.ID)

	result := env.getResults(t)

	if result.Outcome != models.OutcomeWinner || result.Winner == nil {
		t.Fatalf("Expected a winner, got %+v", result)
	}
	if result.Winner.ID != sue.ID {
		t.Errorf("Expected Sue to win, got %s", result.Winner.Title)
	}
	if result.BallotCount != 5 {
		t.Errorf("Expected 5 ballots, got %d", result.BallotCount)
	}
	if len(result.Rounds) != 2 {
		t.Fatalf("Expected 2 rounds, got %d", len(result.Rounds))
	}
	if got := result.Rounds[0].Eliminated; len(got) != 1 || got[0] != bill.ID {
		t.Errorf("Expected Bill eliminated in round 1, got %v", got)
	}
	if got := result.Rounds[1].Tallies[0]; got.ItemID != sue.ID || got.Votes != 3 {
		t.Errorf("Expected Sue with 3 votes in round 2, got %+v", got)
	}
}

func TestGetResultsTie(t *testing.T) {
	env := newTestEnv(t)
	pizza := testutil.CreateTestItem(t, env.db, "Pizza")
	sushi := testutil.CreateTestItem(t, env.db, "Sushi")

	testutil.CreateTestVoter(t, env.db, pizza.ID, sushi.ID)
	testutil.CreateTestVoter(t, env.db, sushi.ID, pizza.ID)

	result := env.getResults(t)

	if result.Outcome != models.OutcomeTied {
		t.Fatalf("Expected tied, got %s", result.Outcome)
	}
	if len(result.Tied) != 2 {
		t.Errorf("Expected 2 tied items, got %d", len(result.Tied))
	}
}

func TestGetResultsSkipsRetiredItems(t *testing.T) {
	env := newTestEnv(t)
	pizza := testutil.CreateTestItem(t, env.db, "Pizza")
	sushi := testutil.CreateTestItem(t, env.db, "Sushi")

	testutil.CreateTestVoter(t, env.db, pizza.ID, sushi.ID)
	testutil.CreateTestVoter(t, env.db, pizza.ID, sushi.ID)
	testutil.CreateTestVoter(t, env.db, sushi.ID)

	if r := env.getResults(t); r.Winner == nil || r.Winner.ID != pizza.ID {
		t.Fatalf("Expected Pizza to win before retiring, got %+v", r)
	}

	testutil.RetireTestItem(t, env.db, pizza.ID)

	result := env.getResults(t)
	if result.Winner == nil || result.Winner.ID != sushi.ID {
		t.Fatalf("Expected Sushi to win after retiring Pizza, got %+v", result)
	}
	if result.Rounds[0].Tallies[0].Votes != 3 {
		t.Errorf("Expected all 3 ballots to move to Sushi, got %+v", result.Rounds[0].Tallies)
	}
}
