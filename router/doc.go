// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the ballotwatch API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	svc := election.New(conn, cfg)
	mux := router.NewRouter(svc)

# Endpoints

Health:

	GET /health

Candidate roster (in memory):

	GET    /api/candidates      - List candidates
	POST   /api/candidates      - Add candidate
	PUT    /api/candidates/{id} - Partial update
	DELETE /api/candidates/{id} - Remove (idempotent)

Demo generator:

	POST /api/candidates/generate - Start adding random candidates
	POST /api/candidates/stop     - Stop (idempotent)

Voters:

	POST /api/voters/register - Register identifier + secret
	POST /api/voters/login    - Check credentials, report has_voted
	POST /api/votes           - Cast the voter's single vote
	GET  /api/votes/tally     - Votes per party

Live stats:

	GET /api/stats - Current snapshot
	GET /ws        - WebSocket stream of {"type":"stats","stats":{...}}

The root path also accepts the WebSocket upgrade.
*/
package router
