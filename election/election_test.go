// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/ballotwatch/election"
	"github.com/danielhkuo/ballotwatch/models"
	"github.com/danielhkuo/ballotwatch/testutil"
)

func TestMutationsPublishStats(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	svc := election.New(conn, testutil.GetTestConfig())
	defer svc.Close()

	assert.Equal(t, models.Stats{"Party A": 1, "Party B": 1, "Party C": 1}, svc.Hub.Latest())

	svc.Registry.Add("Dario Neri", "Party A", "")
	assert.Equal(t, models.Stats{"Party A": 2, "Party B": 1, "Party C": 1}, svc.Hub.Latest())

	svc.Registry.Remove(3)
	assert.Equal(t, models.Stats{"Party A": 2, "Party B": 1}, svc.Hub.Latest())
}

func TestCustomSeed(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	seed := []models.Candidate{{ID: 10, Name: "Only", Party: "Solo"}}
	svc := election.NewWithSeed(conn, testutil.GetTestConfig(), seed)
	defer svc.Close()

	assert.Equal(t, models.Stats{"Solo": 1}, svc.Hub.Latest())
	assert.Equal(t, int64(11), svc.Registry.Add("Next", "Solo", "").ID)
}

func TestVoteGoesThroughRoster(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	svc := election.New(conn, testutil.GetTestConfig())
	defer svc.Close()

	v := testutil.RegisterTestVoter(t, svc.Ledger, "V1", "secret1")
	require.NoError(t, svc.Ledger.CastVote(context.Background(), v.ID, 2))

	vote, err := svc.Ledger.VoteFor(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob Bianchi", vote.CandidateName)
	assert.Equal(t, "Party B", vote.CandidateParty)
}

func TestCloseStopsGenerator(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	cfg.GeneratorPeriod = time.Millisecond
	svc := election.New(conn, cfg)

	require.NoError(t, svc.Generator.Start())
	require.Eventually(t, func() bool { return svc.Registry.Len() > 3 }, 2*time.Second, time.Millisecond)

	svc.Close()
	assert.False(t, svc.Generator.Running())

	n := svc.Registry.Len()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, n, svc.Registry.Len())
}
