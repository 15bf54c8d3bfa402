// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the ballotwatch API.

# Handler Types

Each handler is a struct holding the one component it drives:

  - CandidateHandler: roster CRUD on *registry.Registry
  - GeneratorHandler: demo generator start/stop
  - VoterHandler: registration, login and vote casting on *ledger.Ledger
  - StatsHandler: current stats and the WebSocket stream on *hub.Hub

Handlers are created via constructor functions:

	candidateHandler := handlers.NewCandidateHandler(svc.Registry)

# Roster

	GET    /api/candidates          → List
	POST   /api/candidates          → Create
	PUT    /api/candidates/{id}     → Update (partial)
	DELETE /api/candidates/{id}     → Delete (idempotent)
	POST   /api/candidates/generate → Start generator
	POST   /api/candidates/stop     → Stop generator

Every roster change is pushed to connected observers by the hub.

# Voting

	POST /api/voters/register → Register
	POST /api/voters/login    → Login
	POST /api/votes           → CastVote
	GET  /api/votes/tally     → Tally

A voter casts at most one vote. Failed preconditions map to status codes
in this order: unknown voter 404, already voted 409, unknown candidate 404.

# Live Stats

	GET /api/stats → Get
	GET /ws        → Stream

Stream upgrades to a WebSocket, sends the current snapshot immediately
and then every later snapshot in mutation order.
*/
package handlers
