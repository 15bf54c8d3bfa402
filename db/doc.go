// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the voter database and creates its schema.

# Drivers

Two backends are supported, selected by DATABASE_TYPE:

  - sqlite (default): modernc.org/sqlite, pure Go, single connection
  - postgres: github.com/lib/pq

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call CreateSchema multiple times - uses IF NOT EXISTS.

# Tables

  - voter: identifier (unique), secret hash, has_voted flag
  - vote: one row per voter (voter_id is unique), with the candidate's
    name and party copied in at cast time

Candidates are not stored here. The roster lives in memory and is reseeded
on every start.

# Relationships

	voter 1──0..1 vote
*/
package db
