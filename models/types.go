// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "github.com/google/uuid"

// Poll outcome constants
const (
	OutcomeNoWinner = "no_winner"
	OutcomeTied     = "tied"
	OutcomeWinner   = "winner"
)

// Request types

type RegisterBallotRequest struct {
	UUID string `json:"uuid"`
}

type LoginRequest struct {
	UUID string `json:"uuid"`
}

// Item IDs in preference order, most preferred first
type UpdateRankingsRequest struct {
	RankedItemIDs []string `json:"ranked_item_ids"`
}

type CreateItemRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Response types

type RegisterBallotResponse struct {
	BallotUUID string `json:"ballot_uuid"`
}

type BallotResponse struct {
	BallotUUID    string     `json:"ballot_uuid"`
	Result        PollResult `json:"result"`
	RankedItems   []Item     `json:"ranked_items"`
	UnrankedItems []Item     `json:"unranked_items"`
}

type UpdateRankingsResponse struct {
	BallotUUID  string `json:"ballot_uuid"`
	RankedCount int    `json:"ranked_count"`
}

type CreateItemResponse struct {
	ItemID string `json:"item_id"`
}

type ItemStatusResponse struct {
	ItemID string `json:"item_id"`
	Done   bool   `json:"done"`
}

// Domain types

type Item struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Done    bool   `json:"done"`
}

type Ballot struct {
	ID   string    `json:"-"` // Storage key, never exposed
	UUID uuid.UUID `json:"uuid"`
}

// Ranking is one stored (ballot, item, position) row
type Ranking struct {
	Ord    int
	Item   Item
	Ballot Ballot
}

type NewRanking struct {
	Ord      int
	ItemID   string
	BallotID string
}

// IRV Result Types

type ItemTally struct {
	ItemID string `json:"item_id"`
	Votes  int    `json:"votes"`
}

type RoundSummary struct {
	Round      int         `json:"round"`
	Tallies    []ItemTally `json:"tallies"`
	Eliminated []string    `json:"eliminated,omitempty"`
}

type PollResult struct {
	Outcome     string         `json:"outcome"`
	Winner      *Item          `json:"winner,omitempty"`
	Tied        []Item         `json:"tied,omitempty"`
	Rounds      []RoundSummary `json:"rounds"`
	BallotCount int            `json:"ballot_count"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
