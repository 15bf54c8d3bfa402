// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"testing"
	"time"

	"github.com/danielhkuo/ballotwatch/election"
	"github.com/danielhkuo/ballotwatch/testutil"
)

// newTestService builds a service on a fresh in-memory database.
// Cleanup stops the generator and the hub.
func newTestService(t *testing.T) *election.Service {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	cfg.GeneratorPeriod = 5 * time.Millisecond

	svc := election.New(conn, cfg)
	t.Cleanup(func() {
		svc.Close()
		conn.Close()
	})
	return svc
}
