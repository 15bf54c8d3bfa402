// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package election assembles the roster, ledger, broadcast hub, and
// generator into one service.
//
// Every roster change and every successful vote recomputes the stats from
// the full roster and publishes the snapshot to the hub.
package election

import (
	"database/sql"
	"time"

	"github.com/danielhkuo/ballotwatch/cliparse"
	"github.com/danielhkuo/ballotwatch/generator"
	"github.com/danielhkuo/ballotwatch/hub"
	"github.com/danielhkuo/ballotwatch/ledger"
	"github.com/danielhkuo/ballotwatch/models"
	"github.com/danielhkuo/ballotwatch/registry"
	"github.com/danielhkuo/ballotwatch/stats"
)

type Service struct {
	Registry  *registry.Registry
	Ledger    *ledger.Ledger
	Hub       *hub.Hub
	Generator *generator.Generator
	StartedAt time.Time
}

// New wires a service around an open database, seeding the default roster
func New(conn *sql.DB, cfg cliparse.Config) *Service {
	return NewWithSeed(conn, cfg, registry.DefaultSeed())
}

func NewWithSeed(conn *sql.DB, cfg cliparse.Config, seed []models.Candidate) *Service {
	h := hub.New(stats.Compute(seed))
	reg := registry.New(seed, func(candidates []models.Candidate) {
		h.Publish(stats.Compute(candidates))
	})

	return &Service{
		Registry:  reg,
		Ledger:    ledger.New(conn, cfg.SecretSalt, reg),
		Hub:       h,
		Generator: generator.New(reg, cfg.GeneratorPeriod, nil),
		StartedAt: time.Now(),
	}
}

// Close stops the generator and disconnects every observer
func (s *Service) Close() {
	s.Generator.Stop()
	s.Hub.Close()
}
