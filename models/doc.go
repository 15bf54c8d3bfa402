// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateCandidateRequest: name, party, photo
  - CandidatePatch: optional name, party, photo (partial update)
  - CredentialsRequest: identifier, secret
  - CastVoteRequest: voter_id, candidate_id

# Response Types

Types for JSON responses:

  - RegisterVoterResponse: voter_id
  - LoginResponse: voter_id, has_voted
  - CastVoteResponse: voted
  - GeneratorStartedResponse / GeneratorStoppedResponse
  - HealthResponse: status, observers, candidates, started
  - ErrorResponse: error, message

# Domain Types

  - Candidate: roster entry, lives in memory only
  - Voter: registered voter with the has_voted flag
  - Vote: one per voter, keeps the candidate's name and party at cast time
  - Stats: party -> candidate count
  - StatsMessage: the {"type":"stats","stats":{...}} frame pushed to observers
*/
package models
