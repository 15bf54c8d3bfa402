// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package generator

import (
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/ballotwatch/models"
)

type countingAdder struct {
	mu    sync.Mutex
	added []models.Candidate
}

func (a *countingAdder) Add(name, party, photo string) models.Candidate {
	a.mu.Lock()
	defer a.mu.Unlock()
	c := models.Candidate{ID: int64(len(a.added) + 1), Name: name, Party: party, Photo: photo}
	a.added = append(a.added, c)
	return c
}

func (a *countingAdder) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.added)
}

func TestStartTwiceFails(t *testing.T) {
	g := New(&countingAdder{}, time.Hour, nil)
	defer g.Stop()

	require.NoError(t, g.Start())
	assert.True(t, g.Running())
	assert.ErrorIs(t, g.Start(), ErrAlreadyRunning)
	assert.True(t, g.Running())
}

func TestStopIsIdempotent(t *testing.T) {
	g := New(&countingAdder{}, time.Hour, nil)

	// stopping an idle generator is a no-op
	g.Stop()
	assert.False(t, g.Running())

	require.NoError(t, g.Start())
	g.Stop()
	g.Stop()
	assert.False(t, g.Running())

	// can be started again after stopping
	require.NoError(t, g.Start())
	g.Stop()
}

func TestTicksAddCandidates(t *testing.T) {
	adder := &countingAdder{}
	g := New(adder, 5*time.Millisecond, rand.New(rand.NewPCG(1, 2)))

	require.NoError(t, g.Start())
	require.Eventually(t, func() bool { return adder.count() >= 3 }, 2*time.Second, time.Millisecond)
	g.Stop()

	for _, c := range adder.added {
		assert.Contains(t, parties, c.Party)
		parts := strings.Split(c.Name, " ")
		require.Len(t, parts, 2)
		assert.Contains(t, firstNames, parts[0])
		assert.Contains(t, lastNames, parts[1])
		assert.True(t, strings.HasPrefix(c.Photo, "https://randomuser.me/api/portraits/"), c.Photo)
	}
}

func TestNoTicksAfterStop(t *testing.T) {
	adder := &countingAdder{}
	g := New(adder, time.Millisecond, nil)

	require.NoError(t, g.Start())
	require.Eventually(t, func() bool { return adder.count() >= 1 }, 2*time.Second, time.Millisecond)
	g.Stop()

	after := adder.count()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, adder.count(), "candidates added after Stop returned")
}

func TestConcurrentStart(t *testing.T) {
	g := New(&countingAdder{}, time.Hour, nil)
	defer g.Stop()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- g.Start()
		}()
	}
	wg.Wait()
	close(errs)

	started := 0
	for err := range errs {
		if err == nil {
			started++
		} else {
			assert.ErrorIs(t, err, ErrAlreadyRunning)
		}
	}
	assert.Equal(t, 1, started)
}

func TestDefaultPeriod(t *testing.T) {
	g := New(&countingAdder{}, 0, nil)
	assert.Equal(t, DefaultPeriod, g.period)
}
