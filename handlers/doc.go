// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the poll API.

# Handler Types

Each handler is a struct over the services it needs plus the config:

  - BallotHandler: Ballot registration, login, ranking view and update
  - ItemHandler: Item listing and administration
  - ResultsHandler: Instant-runoff results

	ballotHandler := handlers.NewBallotHandler(ballotSvc, itemSvc, rankingSvc, cfg)

# Voting Flow

	POST /ballots → Register (returns ballot_uuid)
	POST /login   → Login (404 "UUID not found" for unknown ballots)
	GET  /ballot  → GetBallot (current result, ranked and unranked items)
	PUT  /ballot  → UpdateRankings (replaces the whole ranking, 202)

Ballot operations other than Register and Login require the X-Ballot-UUID header.
Ranking lists that repeat an item or name an unknown or retired item are
rejected with 400 and leave the stored ranking untouched.

# Item Administration

	GET  /items              → ListItems
	POST /items              → CreateItem
	POST /items/{id}/retire  → RetireItem
	POST /items/{id}/restore → RestoreItem

Mutations require the X-Admin-Key header (see auth.GenerateAdminKey).
Retired items keep their stored rankings but are skipped when tabulating.

# Results

	GET /results → GetResults

Results are recomputed from a fresh snapshot on every request.
*/
package handlers
