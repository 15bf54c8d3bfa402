// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/ballotwatch/middleware"
	"github.com/danielhkuo/ballotwatch/models"
	"github.com/danielhkuo/ballotwatch/registry"
)

type CandidateHandler struct {
	reg *registry.Registry
}

func NewCandidateHandler(reg *registry.Registry) *CandidateHandler {
	return &CandidateHandler{reg: reg}
}

// List handles GET /api/candidates
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.reg.List())
}

// Create handles POST /api/candidates
func (h *CandidateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.BodyError(w, err)
		return
	}

	c := h.reg.Add(req.Name, req.Party, req.Photo)

	slog.Info("candidate added", "id", c.ID, "party", c.Party)

	middleware.JSONResponse(w, http.StatusOK, c)
}

// Update handles PUT /api/candidates/{id}
func (h *CandidateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var patch models.CandidatePatch
	if err := middleware.ParseJSONBody(r, &patch); err != nil {
		middleware.BodyError(w, err)
		return
	}

	c, err := h.reg.Update(id, patch)
	if errors.Is(err, registry.ErrCandidateNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}
	if err != nil {
		slog.Error("failed to update candidate", "error", err, "id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update candidate")
		return
	}

	slog.Info("candidate updated", "id", c.ID)

	middleware.JSONResponse(w, http.StatusOK, c)
}

// Delete handles DELETE /api/candidates/{id}
// Deleting a candidate that does not exist still succeeds.
func (h *CandidateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	h.reg.Remove(id)

	slog.Info("candidate removed", "id", id)

	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} path value, writing a 400 when it is not a number
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id must be an integer")
		return 0, false
	}
	return id, true
}
