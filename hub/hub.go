// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballotwatch/models"
	"github.com/danielhkuo/ballotwatch/stats"
)

const (
	// QueueSize is how many undelivered snapshots a session may hold before
	// it is considered not writable and dropped
	QueueSize = 64

	DefaultSendTimeout = 5 * time.Second
)

var ErrHubClosed = errors.New("hub is closed")

// Sink is one observer connection.
// Send is only ever called from a single goroutine per sink.
type Sink interface {
	Send(ctx context.Context, msg models.StatsMessage) error
	Close() error
}

// Hub fans stats snapshots out to every connected observer.
type Hub struct {
	mu          sync.Mutex
	latest      models.Stats
	sessions    map[uuid.UUID]*Session
	closed      bool
	sendTimeout time.Duration
}

// New creates a hub whose first snapshot is initial.
// Snapshots passed to the hub are shared between sessions and must not be
// modified afterwards.
func New(initial models.Stats) *Hub {
	return &Hub{
		latest:      initial,
		sessions:    make(map[uuid.UUID]*Session),
		sendTimeout: DefaultSendTimeout,
	}
}

// SetSendTimeout bounds a single Send call
func (h *Hub) SetSendTimeout(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sendTimeout = d
}

// Join registers a sink and queues the current snapshot for it, so a new
// observer never waits for the next mutation to see data.
func (h *Hub) Join(sink Sink) (*Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:       uuid.New(),
		JoinedAt: time.Now(),
		hub:      h,
		sink:     sink,
		queue:    make(chan models.StatsMessage, QueueSize),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	// fresh queue, cannot be full
	s.queue <- stats.Message(h.latest)
	h.sessions[s.ID] = s

	go s.run(h.sendTimeout)

	slog.Debug("observer joined", "session", s.ID, "observers", len(h.sessions))
	return s, nil
}

// Publish stores the snapshot and queues it for every open session.
// It never blocks. A session whose queue is full is disconnected, not
// skipped for one update: its observer has to reconnect, and gets the
// latest snapshot on join. The sink is closed by the session's own
// goroutine, never by the caller.
func (h *Hub) Publish(snapshot models.Stats) {
	msg := stats.Message(snapshot)

	var dropped []*Session
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.latest = snapshot
	for id, s := range h.sessions {
		select {
		case s.queue <- msg:
		default:
			delete(h.sessions, id)
			dropped = append(dropped, s)
		}
	}
	h.mu.Unlock()

	for _, s := range dropped {
		slog.Warn("observer too slow, dropping session", "session", s.ID)
		s.Close()
	}
}

// Leave closes and forgets the session. Unknown ids are ignored.
func (h *Hub) Leave(id uuid.UUID) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	h.mu.Unlock()
	if ok {
		s.Close()
	}
}

// Latest returns a copy of the most recent snapshot
func (h *Hub) Latest() models.Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return maps.Clone(h.latest)
}

// NumSessions reports how many observers are connected
func (h *Hub) NumSessions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Close drops every session and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	clear(h.sessions)
	h.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}

func (h *Hub) forget(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, id)
}

// Session is one observer registered with the hub.
type Session struct {
	ID       uuid.UUID
	JoinedAt time.Time

	hub       *Hub
	sink      Sink
	queue     chan models.StatsMessage
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
	delivered atomic.Int64
}

// run delivers queued snapshots in order until the session is closed.
// It owns the sink: Close on a slow connection can block, so only this
// goroutine calls it.
func (s *Session) run(sendTimeout time.Duration) {
	defer close(s.done)
	defer func() {
		if err := s.sink.Close(); err != nil {
			slog.Debug("failed to close observer sink", "session", s.ID, "error", err)
		}
	}()

	for {
		if s.ctx.Err() != nil {
			return
		}
		select {
		case <-s.ctx.Done():
			return
		case msg := <-s.queue:
			ctx, cancel := context.WithTimeout(s.ctx, sendTimeout)
			err := s.sink.Send(ctx, msg)
			cancel()
			if err != nil {
				if s.ctx.Err() == nil {
					slog.Warn("failed to send stats to observer", "session", s.ID, "error", err)
				}
				s.Close()
				return
			}
			s.delivered.Add(1)
		}
	}
}

// Close removes the session from the hub and stops delivery. It returns
// without waiting; the sink is closed before Done is. Idempotent.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.hub.forget(s.ID)
		s.cancel()
	})
}

// Done is closed once the session has stopped delivering and its sink is closed
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Delivered reports how many snapshots reached the sink
func (s *Session) Delivered() int64 {
	return s.delivered.Load()
}
