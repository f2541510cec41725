// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterBallotRequest: optional uuid
  - LoginRequest: uuid
  - UpdateRankingsRequest: ranked_item_ids (most preferred first)
  - CreateItemRequest: title, content

# Response Types

Types for JSON responses:

  - RegisterBallotResponse: ballot_uuid
  - BallotResponse: ballot_uuid, result, ranked_items, unranked_items
  - CreateItemResponse: item_id
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Item: candidate option; retired when Done is set
  - Ballot: anonymous voter ballot, identified by UUID
  - Ranking: stored (ballot, item, ord) row
  - NewRanking: ranking row to insert
  - PollResult: instant-runoff outcome with per-round tallies

# Constants

Outcome values:

	OutcomeNoWinner = "no_winner"
	OutcomeTied     = "tied"
	OutcomeWinner   = "winner"
*/
package models
