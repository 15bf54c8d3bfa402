// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("POST /api/votes", middleware.WithLogging(handler))

Logs one "request completed" line per request with method, path, status,
bytes, client IP and duration_ms. Failed requests log at warn (4xx) or
error (5xx), so rejected votes show up without debug logging. The wrapper
stays hijackable, so WebSocket upgrades work behind it and log status 101.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Any origin may call the JSON API. An explicit Origin is echoed back with
credentials allowed; requests without one get "*". Preflights answer 204.
WebSocket upgrades bypass CORS entirely.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")

Request bodies are limited to MaxBodyBytes and must hold exactly one JSON
value:

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.BodyError(w, err) // 413 or 400
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

First X-Forwarded-For hop, then X-Real-IP, then the RemoteAddr host.
*/
package middleware
