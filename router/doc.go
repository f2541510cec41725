// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the poll API.

# Route Registration

NewRouter builds the services over a store and returns a configured
http.ServeMux with all endpoints:

	mux := router.NewRouter(st, cfg, logger)

# Endpoints

Health:

	GET /health

Results (public):

	GET /results - Instant-runoff outcome with per-round tallies

Ballots:

	POST /ballots - Register, optionally with a client-chosen uuid
	POST /login   - Check that a uuid has a ballot
	GET  /ballot  - Current result and the voter's items (X-Ballot-UUID)
	PUT  /ballot  - Replace the voter's ranking (X-Ballot-UUID)

Items:

	GET  /items              - All items, retired included
	POST /items              - Create item (X-Admin-Key)
	POST /items/{id}/retire  - Exclude from tabulation (X-Admin-Key)
	POST /items/{id}/restore - Include again (X-Admin-Key)
*/
package router
