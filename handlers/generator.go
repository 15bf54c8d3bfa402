// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotwatch/generator"
	"github.com/danielhkuo/ballotwatch/middleware"
	"github.com/danielhkuo/ballotwatch/models"
)

type GeneratorHandler struct {
	gen *generator.Generator
}

func NewGeneratorHandler(gen *generator.Generator) *GeneratorHandler {
	return &GeneratorHandler{gen: gen}
}

// Start handles POST /api/candidates/generate
func (h *GeneratorHandler) Start(w http.ResponseWriter, r *http.Request) {
	err := h.gen.Start()
	if errors.Is(err, generator.ErrAlreadyRunning) {
		middleware.JSONResponse(w, http.StatusBadRequest, models.ErrorResponse{Error: "Already generating"})
		return
	}
	if err != nil {
		slog.Error("failed to start generator", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start generator")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.GeneratorStartedResponse{Started: true})
}

// Stop handles POST /api/candidates/stop
func (h *GeneratorHandler) Stop(w http.ResponseWriter, r *http.Request) {
	h.gen.Stop()
	middleware.JSONResponse(w, http.StatusOK, models.GeneratorStoppedResponse{Stopped: true})
}
