// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotwatch/ledger"
	"github.com/danielhkuo/ballotwatch/middleware"
	"github.com/danielhkuo/ballotwatch/models"
	"github.com/danielhkuo/ballotwatch/registry"
)

type VoterHandler struct {
	ledger *ledger.Ledger
}

func NewVoterHandler(l *ledger.Ledger) *VoterHandler {
	return &VoterHandler{ledger: l}
}

// Register handles POST /api/voters/register
func (h *VoterHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := parseCredentials(w, r)
	if !ok {
		return
	}

	v, err := h.ledger.Register(r.Context(), req.Identifier, req.Secret)
	if errors.Is(err, ledger.ErrDuplicateIdentifier) {
		middleware.ErrorResponse(w, http.StatusConflict, "Identifier already registered")
		return
	}
	if err != nil {
		slog.Error("failed to register voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("voter registered", "voter_id", v.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterVoterResponse{VoterID: v.ID})
}

// Login handles POST /api/voters/login
func (h *VoterHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := parseCredentials(w, r)
	if !ok {
		return
	}

	v, err := h.ledger.Authenticate(r.Context(), req.Identifier, req.Secret)
	if errors.Is(err, ledger.ErrInvalidCredentials) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		slog.Error("failed to authenticate voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		VoterID:  v.ID,
		HasVoted: v.HasVoted,
	})
}

// CastVote handles POST /api/votes
func (h *VoterHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.BodyError(w, err)
		return
	}

	err := h.ledger.CastVote(r.Context(), req.VoterID, req.CandidateID)
	switch {
	case err == nil:
	case errors.Is(err, ledger.ErrVoterNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Voter not found")
		return
	case errors.Is(err, registry.ErrCandidateNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	case errors.Is(err, ledger.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, "Voter has already voted")
		return
	default:
		slog.Error("failed to cast vote", "error", err, "voter_id", req.VoterID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{Voted: true})
}

// Tally handles GET /api/votes/tally
// Votes per party, separate from the live candidate stats.
func (h *VoterHandler) Tally(w http.ResponseWriter, r *http.Request) {
	tally, err := h.ledger.Tally(r.Context())
	if err != nil {
		slog.Error("failed to compute tally", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tally)
}

func parseCredentials(w http.ResponseWriter, r *http.Request) (models.CredentialsRequest, bool) {
	var req models.CredentialsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.BodyError(w, err)
		return req, false
	}

	if req.Identifier == "" || req.Secret == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "identifier and secret are required")
		return req, false
	}

	return req, true
}
