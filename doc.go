// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ballotwatch API server.

ballotwatch is a live election tracker. It keeps a roster of candidates,
accepts one vote per registered voter, and pushes per-party statistics to
every connected observer over a WebSocket whenever the roster changes or a
vote is cast.

# Starting the Server

Only the secret salt is required; everything else has defaults:

	SECRET_SALT=change-me go run .

Or with flags:

	go run . -p 4000 -t postgres -d "postgres://..." --secret-salt change-me

A .env file in the working directory is loaded first, if present.

# Configuration

  - PORT (-p): Server port (default: 4000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): connection string (default: file:ballotwatch.db)
  - SECRET_SALT (--secret-salt): Secret for voter secret HMAC (required)
  - GENERATOR_PERIOD (--generator-period): demo generator interval (default: 500ms)
  - LOG_LEVEL, LOG_FORMAT: slog level and text/json output

# Architecture

  - registry: in-memory candidate roster
  - ledger: voters and votes in SQL, one vote per voter
  - stats: party -> candidate count
  - hub: WebSocket fan-out of stats snapshots
  - generator: demo candidate generator
  - election: wires the above together
  - handlers, router, middleware: HTTP layer
  - db, cliparse, auth, models: supporting packages

Voters and votes survive a restart. The candidate roster does not; it is
reseeded with three candidates on every start.
*/
package main
