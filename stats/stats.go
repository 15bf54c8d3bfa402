// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package stats aggregates the candidate roster into per-party counts.
//
// Counts are candidates per party, not votes per party. Vote totals are
// served separately by ledger.Tally.
package stats

import "github.com/danielhkuo/ballotwatch/models"

// Compute returns the number of candidates in each party
func Compute(candidates []models.Candidate) models.Stats {
	s := make(models.Stats, len(candidates))
	for _, c := range candidates {
		s[c.Party]++
	}
	return s
}

// Message wraps a snapshot in the frame pushed to observers
func Message(s models.Stats) models.StatsMessage {
	return models.StatsMessage{Type: models.MessageTypeStats, Stats: s}
}
