// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/danielhkuo/ballotwatch/models"
)

const DefaultPeriod = 500 * time.Millisecond

var ErrAlreadyRunning = errors.New("generator already running")

var (
	firstNames = []string{"Alex", "Sam", "Chris", "Jamie", "Taylor", "Jordan", "Morgan", "Casey"}
	lastNames  = []string{"Smith", "Johnson", "Lee", "Brown", "Garcia", "Martinez", "Davis", "Lopez"}
	parties    = []string{"Party A", "Party B", "Party C", "Party D", "Party E"}
)

// Adder is the part of the candidate registry the generator needs
type Adder interface {
	Add(name, party, photo string) models.Candidate
}

// Generator adds a random candidate every period while running.
type Generator struct {
	reg    Adder
	period time.Duration

	mu      sync.Mutex
	rnd     *rand.Rand
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates an idle generator. A nil rnd uses a randomly seeded source.
func New(reg Adder, period time.Duration, rnd *rand.Rand) *Generator {
	if period <= 0 {
		period = DefaultPeriod
	}
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{reg: reg, period: period, rnd: rnd}
}

// Start begins ticking. Returns ErrAlreadyRunning if already started.
func (g *Generator) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.running {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	g.running = true
	g.cancel = cancel
	g.wg.Add(1)
	go g.loop(ctx)

	slog.Info("candidate generator started", "period", g.period)
	return nil
}

// Stop halts the generator and waits for an in-flight tick to finish.
// No tick starts after Stop returns. Stopping an idle generator is a no-op.
func (g *Generator) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.running {
		return
	}
	g.cancel()
	g.wg.Wait()
	g.running = false
	g.cancel = nil

	slog.Info("candidate generator stopped")
}

func (g *Generator) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}

func (g *Generator) loop(ctx context.Context) {
	defer g.wg.Done()

	ticker := time.NewTicker(g.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// a tick that lost the race with Stop must not fire
			if ctx.Err() != nil {
				return
			}
			c := g.reg.Add(g.randomName(), g.randomParty(), g.randomPhoto())
			slog.Debug("generated candidate", "id", c.ID, "party", c.Party)
		}
	}
}

// only called from loop, one goroutine at a time

func (g *Generator) randomName() string {
	return firstNames[g.rnd.IntN(len(firstNames))] + " " + lastNames[g.rnd.IntN(len(lastNames))]
}

func (g *Generator) randomParty() string {
	return parties[g.rnd.IntN(len(parties))]
}

func (g *Generator) randomPhoto() string {
	gender := "women"
	if g.rnd.Float64() > 0.5 {
		gender = "men"
	}
	return fmt.Sprintf("https://randomuser.me/api/portraits/%s/%d.jpg", gender, g.rnd.IntN(99))
}
