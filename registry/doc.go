// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package registry holds the candidate roster in memory.

The roster is reseeded with DefaultSeed on every start. Ids are assigned
from a counter that only grows, so an id is never handed out twice within a
process.

Every mutating call (Add, Update, Remove, Refresh) invokes the onChange hook
while still holding the write lock. The hook therefore sees roster versions in
the same order the mutations happened, and must not block:

	reg := registry.New(registry.DefaultSeed(), func(cs []models.Candidate) {
		h.Publish(stats.Compute(cs))
	})
*/
package registry
