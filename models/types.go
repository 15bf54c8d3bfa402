// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Stream message type constants
const (
	MessageTypeStats = "stats"
)

// Request types

type CreateCandidateRequest struct {
	Name  string `json:"name"`
	Party string `json:"party"`
	Photo string `json:"photo"`
}

// Nil fields are left untouched on update
type CandidatePatch struct {
	Name  *string `json:"name,omitempty"`
	Party *string `json:"party,omitempty"`
	Photo *string `json:"photo,omitempty"`
}

type CredentialsRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

type CastVoteRequest struct {
	VoterID     int64 `json:"voter_id"`
	CandidateID int64 `json:"candidate_id"`
}

// Response types

type RegisterVoterResponse struct {
	VoterID int64 `json:"voter_id"`
}

type LoginResponse struct {
	VoterID  int64 `json:"voter_id"`
	HasVoted bool  `json:"has_voted"`
}

type CastVoteResponse struct {
	Voted bool `json:"voted"`
}

type GeneratorStartedResponse struct {
	Started bool `json:"started"`
}

type GeneratorStoppedResponse struct {
	Stopped bool `json:"stopped"`
}

type HealthResponse struct {
	Status     string `json:"status"`
	Observers  int    `json:"observers"`
	Candidates int    `json:"candidates"`
	Started    string `json:"started"`
}

// Domain types

type Candidate struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Party string `json:"party"`
	Photo string `json:"photo"`
}

type Voter struct {
	ID         int64     `json:"id"`
	Identifier string    `json:"identifier"`
	SecretHash string    `json:"-"` // Never expose in JSON
	HasVoted   bool      `json:"has_voted"`
	CreatedAt  time.Time `json:"created_at"`
}

// Vote keeps a copy of the candidate's name and party as they were when the
// vote was cast, so removing the candidate later does not orphan the record.
type Vote struct {
	ID             int64     `json:"id"`
	VoterID        int64     `json:"voter_id"`
	CandidateID    int64     `json:"candidate_id"`
	CandidateName  string    `json:"candidate_name"`
	CandidateParty string    `json:"candidate_party"`
	CastAt         time.Time `json:"cast_at"`
}

// party -> number of candidates
type Stats map[string]int

type StatsMessage struct {
	Type  string `json:"type"`
	Stats Stats  `json:"stats"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
