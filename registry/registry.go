// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"errors"
	"slices"
	"sync"

	"github.com/danielhkuo/ballotwatch/models"
)

var ErrCandidateNotFound = errors.New("candidate not found")

// Registry is the in-memory candidate roster.
type Registry struct {
	mu         sync.RWMutex
	candidates []models.Candidate
	nextID     int64

	// called under the write lock after every mutation
	onChange func([]models.Candidate)
}

// New creates a registry seeded with the given candidates.
// onChange may be nil.
func New(seed []models.Candidate, onChange func([]models.Candidate)) *Registry {
	r := &Registry{
		candidates: slices.Clone(seed),
		nextID:     1,
		onChange:   onChange,
	}
	for _, c := range seed {
		if c.ID >= r.nextID {
			r.nextID = c.ID + 1
		}
	}
	return r
}

// DefaultSeed returns the roster every process starts with
func DefaultSeed() []models.Candidate {
	return []models.Candidate{
		{ID: 1, Name: "Alice Rossi", Party: "Party A", Photo: "https://randomuser.me/api/portraits/women/68.jpg"},
		{ID: 2, Name: "Bob Bianchi", Party: "Party B", Photo: "https://randomuser.me/api/portraits/men/65.jpg"},
		{ID: 3, Name: "Carla Verdi", Party: "Party C", Photo: "https://randomuser.me/api/portraits/women/65.jpg"},
	}
}

// List returns a copy of all candidates in insertion order
func (r *Registry) List() []models.Candidate {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.candidates)
}

// Len reports the roster size
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.candidates)
}

// Get returns the candidate with the given id, or ErrCandidateNotFound
func (r *Registry) Get(id int64) (models.Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := r.indexOf(id)
	if idx == -1 {
		return models.Candidate{}, ErrCandidateNotFound
	}
	return r.candidates[idx], nil
}

// Add appends a candidate under a fresh id
func (r *Registry) Add(name, party, photo string) models.Candidate {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := models.Candidate{ID: r.nextID, Name: name, Party: party, Photo: photo}
	r.nextID++
	r.candidates = append(r.candidates, c)
	r.changed()
	return c
}

// Update merges the non-nil fields of patch into the candidate
func (r *Registry) Update(id int64, patch models.CandidatePatch) (models.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx == -1 {
		return models.Candidate{}, ErrCandidateNotFound
	}

	c := &r.candidates[idx]
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Party != nil {
		c.Party = *patch.Party
	}
	if patch.Photo != nil {
		c.Photo = *patch.Photo
	}
	updated := *c
	r.changed()
	return updated, nil
}

// Remove deletes the candidate if present. Removing an unknown id is not an
// error, and listeners are still notified.
func (r *Registry) Remove(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.candidates = slices.DeleteFunc(r.candidates, func(c models.Candidate) bool {
		return c.ID == id
	})
	r.changed()
}

// Refresh notifies listeners with the current roster without changing it.
// Mutations that happen outside the registry (votes) go through here so
// their notifications are ordered with roster changes.
func (r *Registry) Refresh() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changed()
}

func (r *Registry) indexOf(id int64) int {
	return slices.IndexFunc(r.candidates, func(c models.Candidate) bool {
		return c.ID == id
	})
}

func (r *Registry) changed() {
	if r.onChange != nil {
		r.onChange(slices.Clone(r.candidates))
	}
}
