// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger stores voters and their votes.

# One Vote Per Voter

CastVote runs in a single transaction that first flips voter.has_voted from
false to true with a conditional UPDATE, then inserts the vote row. If any
step fails the transaction rolls back, so a voter never ends up flagged
without a vote or with a vote but no flag. A mutex serializes CastVote within
the process and vote.voter_id is UNIQUE in the schema as a storage-level
backstop.

# Removed Candidates

A vote copies the candidate's name and party at cast time. Removing the
candidate later leaves the vote readable through VoteFor and Tally.

# Errors

	ErrDuplicateIdentifier  Register: identifier taken (UNIQUE constraint)
	ErrInvalidCredentials   Authenticate: unknown identifier or wrong secret
	ErrVoterNotFound        CastVote, Voter
	ErrAlreadyVoted         CastVote
	ErrVoteNotFound         VoteFor

CastVote also returns registry.ErrCandidateNotFound from the roster.
*/
package ledger
