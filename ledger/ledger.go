// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/ballotwatch/auth"
	"github.com/danielhkuo/ballotwatch/models"
)

var (
	ErrDuplicateIdentifier = errors.New("identifier already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrVoterNotFound       = errors.New("voter not found")
	ErrAlreadyVoted        = errors.New("voter has already voted")
	ErrVoteNotFound        = errors.New("vote not found")
)

// Roster is the view of the candidate registry the ledger needs
type Roster interface {
	Get(id int64) (models.Candidate, error)
	// Refresh re-announces the roster after a vote
	Refresh()
}

// Ledger persists voters and their votes.
type Ledger struct {
	db     *sql.DB
	salt   string
	roster Roster

	// serializes CastVote so two attempts for one voter never interleave
	voteMu sync.Mutex
}

func New(db *sql.DB, secretSalt string, roster Roster) *Ledger {
	return &Ledger{db: db, salt: secretSalt, roster: roster}
}

// Register creates a voter that has not voted yet.
// Identifier uniqueness is enforced by the voter table.
func (l *Ledger) Register(ctx context.Context, identifier, secret string) (models.Voter, error) {
	v := models.Voter{
		Identifier: identifier,
		SecretHash: auth.HashSecret(secret, l.salt),
		CreatedAt:  time.Now().UTC(),
	}

	err := l.db.QueryRowContext(ctx, `
		INSERT INTO voter (identifier, secret_hash, has_voted, created_at)
		VALUES ($1, $2, FALSE, $3)
		RETURNING id
	`, v.Identifier, v.SecretHash, v.CreatedAt).Scan(&v.ID)

	if isUniqueViolation(err) {
		return models.Voter{}, ErrDuplicateIdentifier
	}
	if err != nil {
		return models.Voter{}, fmt.Errorf("failed to insert voter: %w", err)
	}

	return v, nil
}

// Authenticate returns the voter whose identifier and secret both match.
// Unknown identifiers and wrong secrets fail the same way.
func (l *Ledger) Authenticate(ctx context.Context, identifier, secret string) (models.Voter, error) {
	v, err := l.scanVoter(l.db.QueryRowContext(ctx, `
		SELECT id, identifier, secret_hash, has_voted, created_at
		FROM voter WHERE identifier = $1
	`, identifier))

	if errors.Is(err, ErrVoterNotFound) {
		// same amount of work as a real comparison
		_ = auth.VerifySecret(secret, "", l.salt)
		return models.Voter{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Voter{}, err
	}

	if err := auth.VerifySecret(secret, v.SecretHash, l.salt); err != nil {
		return models.Voter{}, ErrInvalidCredentials
	}
	return v, nil
}

// Voter looks up a voter by id
func (l *Ledger) Voter(ctx context.Context, id int64) (models.Voter, error) {
	return l.scanVoter(l.db.QueryRowContext(ctx, `
		SELECT id, identifier, secret_hash, has_voted, created_at
		FROM voter WHERE id = $1
	`, id))
}

// CastVote records the voter's vote and marks them as having voted, in one
// transaction. Either both happen or neither does.
//
// Preconditions are checked in order: the voter exists (ErrVoterNotFound),
// has not voted (ErrAlreadyVoted), and the candidate is on the roster
// (registry.ErrCandidateNotFound).
func (l *Ledger) CastVote(ctx context.Context, voterID, candidateID int64) error {
	l.voteMu.Lock()
	defer l.voteMu.Unlock()

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Claim the vote; only one attempt can flip the flag
	res, err := tx.ExecContext(ctx, `
		UPDATE voter SET has_voted = TRUE
		WHERE id = $1 AND has_voted = FALSE
	`, voterID)
	if err != nil {
		return fmt.Errorf("failed to mark voter: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to mark voter: %w", err)
	}

	if n == 0 {
		var exists bool
		err := tx.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM voter WHERE id = $1)
		`, voterID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to look up voter: %w", err)
		}
		if !exists {
			return ErrVoterNotFound
		}
		return ErrAlreadyVoted
	}

	candidate, err := l.roster.Get(candidateID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO vote (voter_id, candidate_id, candidate_name, candidate_party, cast_at)
		VALUES ($1, $2, $3, $4, $5)
	`, voterID, candidate.ID, candidate.Name, candidate.Party, time.Now().UTC())
	if isUniqueViolation(err) {
		return ErrAlreadyVoted
	}
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vote: %w", err)
	}

	slog.Info("vote cast", "voter_id", voterID, "candidate_id", candidate.ID, "party", candidate.Party)

	l.roster.Refresh()
	return nil
}

// VoteFor returns the vote cast by the voter
func (l *Ledger) VoteFor(ctx context.Context, voterID int64) (models.Vote, error) {
	var v models.Vote
	err := l.db.QueryRowContext(ctx, `
		SELECT id, voter_id, candidate_id, candidate_name, candidate_party, cast_at
		FROM vote WHERE voter_id = $1
	`, voterID).Scan(&v.ID, &v.VoterID, &v.CandidateID, &v.CandidateName, &v.CandidateParty, &v.CastAt)

	if err == sql.ErrNoRows {
		return models.Vote{}, ErrVoteNotFound
	}
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to query vote: %w", err)
	}
	return v, nil
}

// CountVotes returns the total number of votes cast
func (l *Ledger) CountVotes(ctx context.Context) (int, error) {
	var n int
	if err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vote`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return n, nil
}

// Tally returns votes per party, using the party each candidate had when the
// vote was cast.
func (l *Ledger) Tally(ctx context.Context) (map[string]int, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT candidate_party, COUNT(*) FROM vote GROUP BY candidate_party
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tally: %w", err)
	}
	defer rows.Close()

	tally := make(map[string]int)
	for rows.Next() {
		var party string
		var count int
		if err := rows.Scan(&party, &count); err != nil {
			return nil, fmt.Errorf("failed to scan tally: %w", err)
		}
		tally[party] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tally: %w", err)
	}
	return tally, nil
}

func (l *Ledger) scanVoter(row *sql.Row) (models.Voter, error) {
	var v models.Voter
	err := row.Scan(&v.ID, &v.Identifier, &v.SecretHash, &v.HasVoted, &v.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Voter{}, ErrVoterNotFound
	}
	if err != nil {
		return models.Voter{}, fmt.Errorf("failed to query voter: %w", err)
	}
	return v, nil
}
