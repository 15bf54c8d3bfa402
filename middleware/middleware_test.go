// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/ballotwatch/models"
)

// captureLogs routes the default logger to a JSON buffer for one test
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

// completedLine returns the "request completed" record from captured logs
func completedLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		if rec["msg"] == "request completed" {
			return rec
		}
	}
	t.Fatalf("no completion line in logs:\n%s", buf.String())
	return nil
}

func TestWithLogging_RecordsStatus(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantCode  int
		wantLevel string
	}{
		{
			name: "vote accepted",
			handler: func(w http.ResponseWriter, r *http.Request) {
				JSONResponse(w, http.StatusCreated, models.CastVoteResponse{Voted: true})
			},
			wantCode:  http.StatusCreated,
			wantLevel: "INFO",
		},
		{
			name: "already voted",
			handler: func(w http.ResponseWriter, r *http.Request) {
				ErrorResponse(w, http.StatusConflict, "Voter has already voted")
			},
			wantCode:  http.StatusConflict,
			wantLevel: "WARN",
		},
		{
			name: "storage failure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				ErrorResponse(w, http.StatusInternalServerError, "Database error")
			},
			wantCode:  http.StatusInternalServerError,
			wantLevel: "ERROR",
		},
		{
			name:      "candidate removed",
			handler:   func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) },
			wantCode:  http.StatusNoContent,
			wantLevel: "INFO",
		},
		{
			name:      "handler wrote nothing",
			handler:   func(w http.ResponseWriter, r *http.Request) {},
			wantCode:  http.StatusOK,
			wantLevel: "INFO",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)

			req := httptest.NewRequest("POST", "/api/votes", nil)
			req.Header.Set("X-Forwarded-For", "203.0.113.9")
			w := httptest.NewRecorder()
			WithLogging(tt.handler)(w, req)

			assert.Equal(t, tt.wantCode, w.Code)

			rec := completedLine(t, logs)
			assert.Equal(t, tt.wantLevel, rec["level"])
			assert.EqualValues(t, tt.wantCode, rec["status"])
			assert.Equal(t, "/api/votes", rec["path"])
			assert.Equal(t, "203.0.113.9", rec["remote"])
			assert.EqualValues(t, w.Body.Len(), rec["bytes"])
		})
	}
}

func TestWithLogging_KeepsWebSocketUpgrade(t *testing.T) {
	logs := captureLogs(t)

	upgrader := websocket.Upgrader{}
	logged := make(chan struct{})
	stream := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn.WriteJSON(models.StatsMessage{Type: models.MessageTypeStats, Stats: models.Stats{"Party A": 1}})
		conn.Close()
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stream(w, r)
		close(logged)
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	var msg models.StatsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, models.Stats{"Party A": 1}, msg.Stats)

	<-logged
	assert.EqualValues(t, http.StatusSwitchingProtocols, completedLine(t, logs)["status"])
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusNotFound, "Candidate not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.ErrorResponse{Error: "Not Found", Message: "Candidate not found"}, resp)
}

func TestParseJSONBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		check   func(t *testing.T, req models.CastVoteRequest)
	}{
		{
			name: "vote",
			body: `{"voter_id": 7, "candidate_id": 2}`,
			check: func(t *testing.T, req models.CastVoteRequest) {
				assert.Equal(t, models.CastVoteRequest{VoterID: 7, CandidateID: 2}, req)
			},
		},
		{
			name: "trailing whitespace is fine",
			body: "{\"voter_id\": 1, \"candidate_id\": 1}\n\n",
		},
		{name: "empty", body: "", wantErr: ErrEmptyBody},
		{name: "two values", body: `{"voter_id":1}{"voter_id":2}`, wantErr: ErrTrailingData},
		{name: "wrong type", body: `{"voter_id": "seven"}`},
		{name: "truncated", body: `{"voter_id": 1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/votes", strings.NewReader(tt.body))
			var req models.CastVoteRequest
			err := ParseJSONBody(r, &req)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.check != nil:
				require.NoError(t, err)
				tt.check(t, req)
			case strings.HasPrefix(tt.name, "trailing"):
				assert.NoError(t, err)
			default:
				assert.Error(t, err)
			}
		})
	}
}

func TestParseJSONBody_TooLarge(t *testing.T) {
	photo := strings.Repeat("x", MaxBodyBytes)
	body, err := json.Marshal(models.CreateCandidateRequest{Name: "Alice", Party: "Party A", Photo: photo})
	require.NoError(t, err)

	r := httptest.NewRequest("POST", "/api/candidates", bytes.NewReader(body))
	var req models.CreateCandidateRequest
	err = ParseJSONBody(r, &req)

	var tooLarge *http.MaxBytesError
	require.True(t, errors.As(err, &tooLarge), "got %v", err)

	w := httptest.NewRecorder()
	BodyError(w, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestBodyError_Malformed(t *testing.T) {
	w := httptest.NewRecorder()
	BodyError(w, ErrEmptyBody)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid JSON", resp.Message)
}

func TestCORS(t *testing.T) {
	var reached bool
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("explicit origin is echoed with credentials", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest("GET", "/api/candidates", nil)
		req.Header.Set("Origin", "http://dashboard.local")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.True(t, reached)
		assert.Equal(t, "http://dashboard.local", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "Origin", w.Header().Get("Vary"))
	})

	t.Run("no origin gets wildcard without credentials", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/stats", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight stops here", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest("OPTIONS", "/api/votes", nil)
		req.Header.Set("Origin", "http://dashboard.local")
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.False(t, reached)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
		assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("websocket upgrade passes through bare", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest("GET", "/ws", nil)
		req.Header.Set("Origin", "http://dashboard.local")
		req.Header.Set("Connection", "Upgrade")
		req.Header.Set("Upgrade", "websocket")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.True(t, reached)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, "10.0.0.2:5000", "203.0.113.9"},
		{"real ip", map[string]string{"X-Real-IP": " 198.51.100.4 "}, "10.0.0.2:5000", "198.51.100.4"},
		{"forwarded wins over real ip", map[string]string{"X-Forwarded-For": "203.0.113.9", "X-Real-IP": "198.51.100.4"}, "10.0.0.2:5000", "203.0.113.9"},
		{"ipv4 remote", nil, "192.0.2.1:41234", "192.0.2.1"},
		{"ipv6 remote", nil, "[2001:db8::1]:41234", "2001:db8::1"},
		{"remote without port", nil, "192.0.2.1", "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, GetClientIP(req))
		})
	}
}
