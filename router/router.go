// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/websocket"

	"github.com/danielhkuo/ballotwatch/election"
	"github.com/danielhkuo/ballotwatch/handlers"
	"github.com/danielhkuo/ballotwatch/middleware"
	"github.com/danielhkuo/ballotwatch/models"
)

// NewRouter registers every API route, the stats WebSocket and /health on a
// fresh mux. Handlers share the components held by svc.
func NewRouter(svc *election.Service) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	candidateHandler := handlers.NewCandidateHandler(svc.Registry)
	generatorHandler := handlers.NewGeneratorHandler(svc.Generator)
	voterHandler := handlers.NewVoterHandler(svc.Ledger)
	statsHandler := handlers.NewStatsHandler(svc.Hub)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
			Status:     "ok",
			Observers:  svc.Hub.NumSessions(),
			Candidates: svc.Registry.Len(),
			Started:    humanize.Time(svc.StartedAt),
		})
	})

	// Candidate roster
	mux.HandleFunc("GET /api/candidates", middleware.WithLogging(candidateHandler.List))
	mux.HandleFunc("POST /api/candidates", middleware.WithLogging(candidateHandler.Create))
	mux.HandleFunc("PUT /api/candidates/{id}", middleware.WithLogging(candidateHandler.Update))
	mux.HandleFunc("DELETE /api/candidates/{id}", middleware.WithLogging(candidateHandler.Delete))

	// Demo generator
	mux.HandleFunc("POST /api/candidates/generate", middleware.WithLogging(generatorHandler.Start))
	mux.HandleFunc("POST /api/candidates/stop", middleware.WithLogging(generatorHandler.Stop))

	// Voters and votes
	mux.HandleFunc("POST /api/voters/register", middleware.WithLogging(voterHandler.Register))
	mux.HandleFunc("POST /api/voters/login", middleware.WithLogging(voterHandler.Login))
	mux.HandleFunc("POST /api/votes", middleware.WithLogging(voterHandler.CastVote))
	mux.HandleFunc("GET /api/votes/tally", middleware.WithLogging(voterHandler.Tally))

	// Live stats
	mux.HandleFunc("GET /api/stats", middleware.WithLogging(statsHandler.Get))
	mux.HandleFunc("GET /ws", middleware.WithLogging(statsHandler.Stream))

	// Root endpoint; also accepts the stats WebSocket
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			statsHandler.Stream(w, r)
			return
		}
		w.Write([]byte("ballotwatch API v1"))
	})

	return mux
}
